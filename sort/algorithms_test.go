package main

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segsort/dataset"
)

func TestAlgorithmsSortEveryDistribution(t *testing.T) {
	pool := newWorkerPool(4)
	sizes := []int{0, 1, 2, 17, 1000, 12000}

	for _, algo := range algorithms {
		t.Run(algo.Name, func(t *testing.T) {
			for _, kind := range dataset.Kinds() {
				for _, n := range sizes {
					data, err := dataset.Generate(dataset.DefaultSpec(kind, n))
					require.NoError(t, err)

					got := algo.run(slices.Clone(data), pool)
					require.NoError(t, verifySorted(data, got), "%s n=%d", kind, n)
				}
			}
			used, _ := pool.status()
			assert.Zero(t, used, "pool slots leaked")
		})
	}
}

func TestConcatMatchesInPlace(t *testing.T) {
	data, err := dataset.Generate(dataset.DefaultSpec(dataset.Segmented, 5000))
	require.NoError(t, err)

	want := slices.Clone(data)
	slices.Sort(want)
	assert.Equal(t, want, concatSegmentSort(slices.Clone(data)))

	// 내림차순 런은 뒤집어서 모은다
	seg, next := collectSegment([]int{9, 7, 7, 1}, 0)
	assert.Equal(t, []int{7, 9}, seg)
	assert.Equal(t, 2, next)
}

func TestParallelSortsWithExhaustedPool(t *testing.T) {
	// 슬롯이 없으면 순차로 물러나야 한다
	pool := newWorkerPool(1)
	require.True(t, pool.tryAcquire())
	defer pool.release()

	data, err := dataset.Generate(dataset.DefaultSpec(dataset.Random, 50000))
	require.NoError(t, err)

	qs := slices.Clone(data)
	parallelQuickSort(qs, pool)
	require.NoError(t, verifySorted(data, qs))

	ms := parallelMergeSort(slices.Clone(data), pool)
	require.NoError(t, verifySorted(data, ms))
}

func TestLookupAlgorithm(t *testing.T) {
	a, err := lookupAlgorithm("segsort")
	require.NoError(t, err)
	assert.True(t, a.Stable)
	assert.Equal(t, "세그먼트 병합정렬", a.Label)

	_, err = lookupAlgorithm("bogosort")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogosort")

	names := algorithmNames()
	assert.Len(t, names, len(algorithms))
	assert.Equal(t, "segsort", names[0])
}

func TestVerifySorted(t *testing.T) {
	orig := []int{3, 1, 2, 2}

	require.NoError(t, verifySorted(orig, []int{1, 2, 2, 3}))

	err := verifySorted(orig, []int{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length")

	err = verifySorted(orig, []int{1, 2, 3, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 3")

	// 정렬돼 있지만 원본의 순열이 아님
	err = verifySorted(orig, []int{1, 1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value 1")
}
