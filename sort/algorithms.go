package main

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"

	"segsort/segsort"
)

// algorithm 벤치마크 대상 정렬. run 은 정렬된 결과를 돌려주며
// 제자리 정렬이면 입력 슬라이스 그 자체다.
type algorithm struct {
	Name   string
	Label  string // 보고서 표시 이름
	Stable bool
	run    func(data []int, pool workerPool) []int
}

// 보고서 출력 순서
var algorithms = []algorithm{
	{Name: "segsort", Label: "세그먼트 병합정렬", Stable: true, run: func(d []int, _ workerPool) []int {
		return segsort.Sort(d)
	}},
	{Name: "segsort_concat", Label: "세그먼트 병합정렬(복사)", Stable: true, run: func(d []int, _ workerPool) []int {
		return concatSegmentSort(d)
	}},
	{Name: "segsort_heap", Label: "세그먼트 정렬(힙 병합)", Stable: true, run: func(d []int, _ workerPool) []int {
		return heapSegmentSort(d)
	}},
	{Name: "segsort_block", Label: "블록 병합 세그먼트 정렬", Stable: true, run: func(d []int, _ workerPool) []int {
		return blockMergeSegmentSort(d)
	}},
	{Name: "quicksort", Label: "퀵소트", run: func(d []int, _ workerPool) []int {
		quickSort(d)
		return d
	}},
	{Name: "parallel_quicksort", Label: "병렬퀵소트", run: func(d []int, p workerPool) []int {
		parallelQuickSort(d, p)
		return d
	}},
	{Name: "mergesort", Label: "머지소트", Stable: true, run: func(d []int, _ workerPool) []int {
		return mergeSort(d)
	}},
	{Name: "parallel_mergesort", Label: "병렬머지소트", Stable: true, run: func(d []int, p workerPool) []int {
		return parallelMergeSort(d, p)
	}},
	{Name: "stdlib", Label: "표준 안정정렬", Stable: true, run: func(d []int, _ workerPool) []int {
		slices.SortStableFunc(d, cmp.Compare[int])
		return d
	}},
}

// algorithmNames 등록된 이름 목록
func algorithmNames() []string {
	names := make([]string, len(algorithms))
	for i, a := range algorithms {
		names[i] = a.Name
	}
	return names
}

// lookupAlgorithm 이름으로 찾기
func lookupAlgorithm(name string) (algorithm, error) {
	for _, a := range algorithms {
		if a.Name == name {
			return a, nil
		}
	}
	return algorithm{}, errors.Newf("unknown algorithm %q (known: %v)", name, algorithmNames())
}
