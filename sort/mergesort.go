package main

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// mergeSort 하향식 병합정렬. 매 단계 새 슬라이스를 만드는 O(n) 보조 메모리 기준선.
// 입력은 건드리지 않고 정렬된 새 슬라이스를 돌려준다.
func mergeSort[E constraints.Ordered](arr []E) []E {
	if len(arr) <= 1 {
		return arr
	}
	if len(arr) <= insertionThreshold {
		result := slices.Clone(arr)
		insertionSort(result, 0, len(result)-1)
		return result
	}

	mid := len(arr) / 2
	return mergeTwo(mergeSort(arr[:mid]), mergeSort(arr[mid:]))
}

// mergeTwo 두 정렬된 슬라이스를 새 슬라이스로 병합 (같으면 왼쪽 먼저: 안정)
func mergeTwo[E constraints.Ordered](left, right []E) []E {
	result := make([]E, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}
	result = append(result, left[i:]...)
	return append(result, right[j:]...)
}
