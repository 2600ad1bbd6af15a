package main

import (
	"math"
	"slices"

	"golang.org/x/exp/constraints"
)

// 병합 버퍼 크기는 sqrt(n) 을 이 범위로 자른다.
const (
	blockBufferMin = 256
	blockBufferMax = 4096
)

func blockBufferSize(n int) int {
	return min(max(int(math.Sqrt(float64(n))), blockBufferMin), blockBufferMax)
}

// blockMergeSegmentSort 세그먼트 병합정렬과 같은 런 감지/스택 규칙을 쓰지만,
// 한쪽 구간이 버퍼에 들어가면 선형 병합하고 둘 다 크면 회전 병합으로 쪼갠다.
func blockMergeSegmentSort[E constraints.Ordered](arr []E) []E {
	n := len(arr)
	if n <= 1 {
		return arr
	}
	m := blockMerger[E]{arr: arr, buf: make([]E, blockBufferSize(n))}

	var stack []segment
	for i := 0; i < n; {
		end := nextSegment(arr, i)
		cur := segment{start: i, end: end}
		i = end

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if cur.len() < top.len() {
				break
			}
			m.merge(top.start, cur.start, cur.end)
			cur.start = top.start
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, cur)
	}

	for len(stack) > 1 {
		a := stack[len(stack)-1]
		b := &stack[len(stack)-2]
		m.merge(b.start, a.start, a.end)
		b.end = a.end
		stack = stack[:len(stack)-1]
	}
	return arr
}

type blockMerger[E constraints.Ordered] struct {
	arr []E
	buf []E
}

// merge [first, middle) 와 [middle, last) 를 안정 병합한다.
func (m *blockMerger[E]) merge(first, middle, last int) {
	if first >= middle || middle >= last {
		return
	}
	arr := m.arr
	if arr[middle-1] <= arr[middle] {
		return
	}
	if middle-first <= len(m.buf) {
		m.mergeLeft(first, middle, last)
		return
	}
	if last-middle <= len(m.buf) {
		m.mergeRight(first, middle, last)
		return
	}

	mid1 := first + (middle-first)/2
	off, _ := slices.BinarySearch(arr[middle:last], arr[mid1])
	mid2 := middle + off
	newMid := mid1 + (mid2 - middle)

	slices.Reverse(arr[mid1:middle])
	slices.Reverse(arr[middle:mid2])
	slices.Reverse(arr[mid1:mid2])

	m.merge(first, mid1, newMid)
	m.merge(newMid+1, mid2, last)
}

// mergeLeft 왼쪽 구간을 버퍼로 옮기고 앞에서부터 채운다.
func (m *blockMerger[E]) mergeLeft(first, middle, last int) {
	arr := m.arr
	left := m.buf[:middle-first]
	copy(left, arr[first:middle])

	i, j, k := 0, middle, first
	for i < len(left) && j < last {
		if left[i] <= arr[j] {
			arr[k] = left[i]
			i++
		} else {
			arr[k] = arr[j]
			j++
		}
		k++
	}
	copy(arr[k:], left[i:])
}

// mergeRight 오른쪽 구간을 버퍼로 옮기고 뒤에서부터 채운다.
func (m *blockMerger[E]) mergeRight(first, middle, last int) {
	arr := m.arr
	right := m.buf[:last-middle]
	copy(right, arr[middle:last])

	i, j, k := middle-1, len(right)-1, last-1
	for i >= first && j >= 0 {
		if arr[i] > right[j] {
			arr[k] = arr[i]
			i--
		} else {
			arr[k] = right[j]
			j--
		}
		k--
	}
	copy(arr[first:k+1], right[:j+1])
}
