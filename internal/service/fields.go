package service

import (
	"sort"

	domain "university-registrar/internal/domain/records"
)

// checkFields rejects the whole update set when any field name falls outside
// the entity's whitelist. Nothing is written on rejection.
func checkFields(entity string, fields map[string]any, allowed map[string]bool) error {
	var unknown []string
	for name := range fields {
		if !allowed[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return &domain.UnknownFieldError{Entity: entity, Fields: unknown}
	}
	return nil
}
