package similarity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
)

// Repair restores the partition over stored groups: groups sharing a member
// are merged into the first of them in List order (least recently updated),
// and groups left with fewer than MinVisibleMembers members are deleted.
// Audit records carry the nil user id.
func (s *Service) Repair(ctx context.Context) (*RepairReport, error) {
	report := &RepairReport{}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Lock(txCtx); err != nil {
			return fmt.Errorf("lock similarity groups: %w", err)
		}

		groups, err := s.groups.List(txCtx, 0)
		if err != nil {
			return fmt.Errorf("list similarity groups: %w", err)
		}
		report.GroupsScanned = len(groups)

		for _, component := range overlappingComponents(groups) {
			kept := component[0]
			members := kept.MushroomIDs
			for _, g := range component[1:] {
				members = domain.UnionIDs(members, g.MushroomIDs)
			}

			if len(component) > 1 {
				if _, err := s.groups.UpdateMembers(txCtx, kept.ID, members); err != nil {
					return fmt.Errorf("merge similarity groups: %w", err)
				}
				for _, g := range component[1:] {
					if err := s.groups.Delete(txCtx, g.ID); err != nil {
						return fmt.Errorf("delete merged similarity group: %w", err)
					}
				}
				report.GroupsMerged += len(component) - 1
			}

			if len(members) < MinVisibleMembers {
				if err := s.groups.Delete(txCtx, kept.ID); err != nil {
					return fmt.Errorf("prune similarity group: %w", err)
				}
				report.GroupsPruned++
			}
		}

		if report.GroupsMerged == 0 && report.GroupsPruned == 0 {
			return nil
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     uuid.Nil,
			EntityType: domain.EntityTypeSimilarityGroup,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"repair_merged": report.GroupsMerged,
				"repair_pruned": report.GroupsPruned,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "similarity groups repaired",
		slog.Int("scanned", report.GroupsScanned),
		slog.Int("merged", report.GroupsMerged),
		slog.Int("pruned", report.GroupsPruned),
	)

	return report, nil
}

// overlappingComponents partitions groups into sets that transitively share
// a member. Components and their groups keep the input order.
func overlappingComponents(groups []domain.SimilarityGroup) [][]domain.SimilarityGroup {
	parent := make([]int, len(groups))
	for i := range parent {
		parent[i] = i
	}

	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(i, j int) {
		ri, rj := find(i), find(j)
		if ri == rj {
			return
		}
		if rj < ri {
			ri, rj = rj, ri
		}
		parent[rj] = ri
	}

	owner := make(map[uuid.UUID]int)
	for i, g := range groups {
		for _, id := range g.MushroomIDs {
			if j, ok := owner[id]; ok {
				union(i, j)
				continue
			}
			owner[id] = i
		}
	}

	index := make(map[int]int)
	var out [][]domain.SimilarityGroup
	for i, g := range groups {
		root := find(i)
		k, ok := index[root]
		if !ok {
			k = len(out)
			index[root] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], g)
	}
	return out
}
