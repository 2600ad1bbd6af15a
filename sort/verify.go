package main

import (
	"github.com/cockroachdb/errors"

	"segsort/segsort"
)

// verifySorted 결과가 오름차순이고 원본의 순열인지 확인한다.
func verifySorted(original, sorted []int) error {
	if len(original) != len(sorted) {
		return errors.Newf("length changed: %d -> %d", len(original), len(sorted))
	}
	if !segsort.IsSorted(sorted) {
		for i := 1; i < len(sorted); i++ {
			if sorted[i] < sorted[i-1] {
				return errors.Newf("not sorted at index %d: %d > %d", i, sorted[i-1], sorted[i])
			}
		}
	}

	counts := make(map[int]int, len(original))
	for _, v := range original {
		counts[v]++
	}
	for _, v := range sorted {
		counts[v]--
		if counts[v] < 0 {
			return errors.Newf("value %d appears more often than in the input", v)
		}
	}
	return nil
}
