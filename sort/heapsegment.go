package main

import (
	"container/heap"
	"slices"

	"golang.org/x/exp/constraints"
)

// segment 입력 위의 오름차순 구간 [start, end)
type segment struct {
	start, end int
}

func (s segment) len() int { return s.end - s.start }

// nextSegment start 부터의 단조 런 끝을 돌려준다. 엄격한 내림차순 런은 제자리에서 뒤집는다.
// start < len(arr) 이어야 한다.
func nextSegment[E constraints.Ordered](arr []E, start int) int {
	n := len(arr)
	end := start + 1
	if end < n && arr[end] < arr[start] {
		for end < n && arr[end] < arr[end-1] {
			end++
		}
		slices.Reverse(arr[start:end])
		return end
	}
	for end < n && arr[end-1] <= arr[end] {
		end++
	}
	return end
}

// detectSegments arr 전체를 런으로 나눈다.
func detectSegments[E constraints.Ordered](arr []E) []segment {
	var segs []segment
	for i := 0; i < len(arr); {
		end := nextSegment(arr, i)
		segs = append(segs, segment{start: i, end: end})
		i = end
	}
	return segs
}

// segmentCursor 런 하나에서 다음에 꺼낼 위치
type segmentCursor struct {
	pos, end int
	seg      int // 런 번호. 같은 값이면 앞 런이 먼저 나온다.
}

// segmentHeap heap.Interface 구현. 각 런의 현재 원소 기준 최소 힙.
type segmentHeap[E constraints.Ordered] struct {
	arr     []E
	cursors []segmentCursor
}

func (h *segmentHeap[E]) Len() int { return len(h.cursors) }

func (h *segmentHeap[E]) Less(i, j int) bool {
	a, b := h.arr[h.cursors[i].pos], h.arr[h.cursors[j].pos]
	if a != b {
		return a < b
	}
	return h.cursors[i].seg < h.cursors[j].seg
}

func (h *segmentHeap[E]) Swap(i, j int) { h.cursors[i], h.cursors[j] = h.cursors[j], h.cursors[i] }

func (h *segmentHeap[E]) Push(x any) { h.cursors = append(h.cursors, x.(segmentCursor)) }

func (h *segmentHeap[E]) Pop() any {
	old := h.cursors
	c := old[len(old)-1]
	h.cursors = old[:len(old)-1]
	return c
}

// segmentIterator 런을 감지한 뒤 작은 값부터 하나씩 내놓는다.
// 필요한 만큼만 꺼내면 상위 k 개를 전체 정렬 없이 얻는다.
type segmentIterator[E constraints.Ordered] struct {
	h segmentHeap[E]
}

// newSegmentIterator arr 의 내림차순 런을 뒤집는다. 순회 중에 arr 를 바꾸면 안 된다.
func newSegmentIterator[E constraints.Ordered](arr []E) *segmentIterator[E] {
	segs := detectSegments(arr)
	it := &segmentIterator[E]{h: segmentHeap[E]{arr: arr, cursors: make([]segmentCursor, len(segs))}}
	for i, s := range segs {
		it.h.cursors[i] = segmentCursor{pos: s.start, end: s.end, seg: i}
	}
	heap.Init(&it.h)
	return it
}

func (it *segmentIterator[E]) next() (E, bool) {
	if it.h.Len() == 0 {
		var zero E
		return zero, false
	}
	c := &it.h.cursors[0]
	v := it.h.arr[c.pos]
	c.pos++
	if c.pos == c.end {
		heap.Pop(&it.h)
	} else {
		heap.Fix(&it.h, 0)
	}
	return v, true
}

// heapSegmentSort 런 감지 + 최소 힙 k-way 병합. 보조 메모리 O(n + 런 수).
func heapSegmentSort[E constraints.Ordered](arr []E) []E {
	if len(arr) <= 1 {
		return arr
	}
	it := newSegmentIterator(arr)
	out := make([]E, 0, len(arr))
	for v, ok := it.next(); ok; v, ok = it.next() {
		out = append(out, v)
	}
	copy(arr, out)
	return arr
}

// smallestK 작은 값부터 k 개. arr 의 내림차순 런은 뒤집힌다.
func smallestK[E constraints.Ordered](arr []E, k int) []E {
	it := newSegmentIterator(arr)
	out := make([]E, 0, min(k, len(arr)))
	for len(out) < k {
		v, ok := it.next()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}
