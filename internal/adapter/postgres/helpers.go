package postgres

import (
	"strings"

	"github.com/google/uuid"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns free text into an ILIKE pattern matching it anywhere,
// with LIKE wildcards in the input escaped.
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}

// EmptyIDFilter reports whether an id filter was given but holds no ids.
// Such a filter matches nothing, so callers return early instead of
// issuing an unconstrained query.
func EmptyIDFilter(ids []uuid.UUID) bool {
	return ids != nil && len(ids) == 0
}

// NonNilIDs returns ids, or an empty slice when ids is nil, so that array
// columns are written as '{}' rather than NULL.
func NonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

// ColumnList joins column names for RETURNING clauses.
func ColumnList(columns []string) string {
	return strings.Join(columns, ", ")
}

// NullIfEmpty maps "" to SQL NULL for optional text columns.
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
