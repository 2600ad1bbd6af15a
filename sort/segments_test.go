package main

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segsort/dataset"
)

func TestDetectSegments(t *testing.T) {
	arr := []int{5, 3, 2, 4, 6, 8, 7, 19, 10, 12, 13, 14, 17, 18}
	segs := detectSegments(arr)
	assert.Equal(t, []segment{{0, 3}, {3, 6}, {6, 8}, {8, 14}}, segs)
	// 내림차순 런은 뒤집혀 있다
	assert.Equal(t, []int{2, 3, 5}, arr[:3])

	// 같은 값은 내림차순 런을 끊는다
	arr = []int{3, 2, 2, 1}
	assert.Equal(t, []segment{{0, 2}, {2, 4}}, detectSegments(arr))
	assert.Equal(t, []int{2, 3, 1, 2}, arr)

	assert.Empty(t, detectSegments([]int{}))
}

// 0 과 -0 은 같은 값으로 비교되지만 부호 비트로 원래 위치를 구분할 수 있다.
func signedZeros() []float64 {
	negZero := math.Copysign(0, -1)
	return []float64{1, 0, 2, negZero, 3, 0, negZero, -1}
}

func assertZerosInInputOrder(t *testing.T, got []float64) {
	t.Helper()
	require.True(t, slices.IsSorted(got))
	var signs []bool
	for _, v := range got {
		if v == 0 {
			signs = append(signs, math.Signbit(v))
		}
	}
	assert.Equal(t, []bool{false, true, false, true}, signs)
}

func TestSegmentVariantsAreStable(t *testing.T) {
	assertZerosInInputOrder(t, heapSegmentSort(signedZeros()))
	assertZerosInInputOrder(t, blockMergeSegmentSort(signedZeros()))
	assertZerosInInputOrder(t, concatSegmentSort(signedZeros()))
}

func TestSmallestK(t *testing.T) {
	data, err := dataset.Generate(dataset.DefaultSpec(dataset.Random, 3000))
	require.NoError(t, err)
	want := slices.Sorted(slices.Values(data))

	assert.Equal(t, want[:10], smallestK(slices.Clone(data), 10))
	assert.Equal(t, want, smallestK(slices.Clone(data), 5000))
	assert.Empty(t, smallestK(slices.Clone(data), 0))
	assert.Empty(t, smallestK([]int{}, 3))
}

func TestBlockBufferSize(t *testing.T) {
	assert.Equal(t, blockBufferMin, blockBufferSize(10))
	assert.Equal(t, 1000, blockBufferSize(1_000_000))
	assert.Equal(t, blockBufferMax, blockBufferSize(100_000_000))
}

func TestBlockMergeFallsBackToRotation(t *testing.T) {
	// 두 런 모두 버퍼보다 길어 회전 병합 경로를 탄다
	const half = 20000
	data := make([]int, 0, 2*half)
	for i := range half {
		data = append(data, 2*i+1)
	}
	for i := range half {
		data = append(data, 2*i)
	}
	require.Greater(t, half, blockBufferSize(len(data)))

	got := blockMergeSegmentSort(slices.Clone(data))
	require.NoError(t, verifySorted(data, got))
}

func TestBlockMergeBufferedPaths(t *testing.T) {
	m := blockMerger[int]{buf: make([]int, 4)}

	// 왼쪽이 짧다
	m.arr = []int{2, 5, 1, 3, 4, 6, 7}
	m.merge(0, 2, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, m.arr)

	// 오른쪽이 짧다
	m.arr = []int{1, 3, 4, 6, 7, 8, 2, 5}
	m.merge(0, 6, 8)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, m.arr)

	// 이미 순서대로면 건드리지 않는다
	m.arr = []int{1, 2, 3, 4}
	m.merge(0, 2, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, m.arr)
}
