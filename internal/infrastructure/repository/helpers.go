package repository

import (
	"sort"
	"strings"
)

// setClause builds a deterministic "col1 = ?, col2 = ?" fragment from an
// update set. Callers must have whitelisted the field names already; only
// values travel as bind parameters.
func setClause(fields map[string]any) (string, []any) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" = ?")
		args = append(args, fields[name])
	}

	return strings.Join(parts, ", "), args
}

// whereClause builds a deterministic "col1 = ? AND col2 = ?" fragment from
// search criteria. Same whitelisting contract as setClause.
func whereClause(criteria map[string]any) (string, []any) {
	names := make([]string, 0, len(criteria))
	for name := range criteria {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	args := make([]any, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" = ?")
		args = append(args, criteria[name])
	}

	return strings.Join(parts, " AND "), args
}
