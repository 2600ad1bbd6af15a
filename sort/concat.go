package main

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// concatSegmentSort 같은 런 감지/균형 스택 정책을 쓰지만 런마다 새 슬라이스를
// 만들고 병합도 새 슬라이스로 하는 변형. 보조 메모리가 O(n) 이라 제자리 버전과
// 메모리 사용량을 비교하기 위한 기준선으로만 쓴다.
func concatSegmentSort[E constraints.Ordered](arr []E) []E {
	n := len(arr)
	if n <= 1 {
		return arr
	}

	var stack [][]E
	for i := 0; i < n; {
		seg, next := collectSegment(arr, i)
		i = next

		for len(stack) > 0 && len(stack[len(stack)-1]) <= len(seg) {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			seg = mergeTwo(top, seg)
		}
		stack = append(stack, seg)
	}

	for len(stack) > 1 {
		a := stack[len(stack)-1]
		b := stack[len(stack)-2]
		stack = stack[:len(stack)-2]
		stack = append(stack, mergeTwo(b, a))
	}

	copy(arr, stack[0])
	return arr
}

// collectSegment start 부터의 단조 런을 새 슬라이스로 복사한다 (내림차순은 뒤집음).
func collectSegment[E constraints.Ordered](arr []E, start int) ([]E, int) {
	end := start + 1
	if end < len(arr) && arr[end] < arr[start] {
		for end < len(arr) && arr[end] < arr[end-1] {
			end++
		}
		seg := slices.Clone(arr[start:end])
		slices.Reverse(seg)
		return seg, end
	}
	for end < len(arr) && arr[end-1] <= arr[end] {
		end++
	}
	return slices.Clone(arr[start:end]), end
}
