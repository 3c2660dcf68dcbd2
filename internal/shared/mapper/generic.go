// Package mapper holds generic slice conversions used by the DTO and
// persistence mappers.
package mapper

import "fmt"

// MapSlice applies fn to each element. A nil slice maps to nil.
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	if items == nil {
		return nil
	}

	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, fn(item))
	}
	return result
}

// MapRows converts persisted rows with a fallible mapper, skipping nil rows.
// The first failure is returned with the row's ID.
func MapRows[T any, R any, ID any](rows []*T, fn func(*T) (R, error), id func(*T) ID) ([]R, error) {
	result := make([]R, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		mapped, err := fn(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map row %v: %w", id(row), err)
		}
		result = append(result, mapped)
	}
	return result, nil
}
