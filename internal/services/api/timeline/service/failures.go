package service

import (
	"sort"

	"activitycal/internal/services/api/timeline/domain"
)

func sortFailures(fs []domain.Source) {
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
}

func failureNames(fs []domain.Source) []string {
	if len(fs) == 0 {
		return nil
	}
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}
