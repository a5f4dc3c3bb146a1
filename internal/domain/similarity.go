package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// SimilarityGroup is a set of mushrooms that look alike. Groups partition
// the mushrooms that take part in at least one similarity link.
type SimilarityGroup struct {
	ID          uuid.UUID
	MushroomIDs []uuid.UUID
	UpdatedAt   time.Time
}

// Contains reports whether id is a member of the group.
func (g *SimilarityGroup) Contains(id uuid.UUID) bool {
	return slices.Contains(g.MushroomIDs, id)
}

// UnionIDs appends the ids of b that are missing from a, keeping a's order
// first. Duplicates inside either input are dropped.
func UnionIDs(a, b []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	out := make([]uuid.UUID, 0, len(a)+len(b))
	for _, list := range [][]uuid.UUID{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// WithoutID returns ids with every occurrence of id removed.
func WithoutID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, m := range ids {
		if m != id {
			out = append(out, m)
		}
	}
	return out
}
