package main

import (
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"
)

// parallelMergeSort 양쪽 절반을 고루틴으로 정렬한 뒤 병합한다.
func parallelMergeSort[E constraints.Ordered](arr []E, pool workerPool) []E {
	return parallelMergeSortDepth(arr, runtime.NumCPU(), pool)
}

func parallelMergeSortDepth[E constraints.Ordered](arr []E, depth int, pool workerPool) []E {
	if len(arr) <= 1 {
		return arr
	}
	if depth <= 1 || len(arr) <= parallelThreshold(len(arr)) {
		return mergeSort(arr)
	}

	mid := len(arr) / 2
	var left, right []E

	// 각 고루틴이 독립적으로 슬롯을 잡고 반환한다.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if pool.tryAcquire() {
			defer pool.release()
			left = parallelMergeSortDepth(arr[:mid], depth/2, pool)
			return
		}
		left = mergeSort(arr[:mid])
	}()
	go func() {
		defer wg.Done()
		if pool.tryAcquire() {
			defer pool.release()
			right = parallelMergeSortDepth(arr[mid:], depth/2, pool)
			return
		}
		right = mergeSort(arr[mid:])
	}()
	wg.Wait()

	return mergeTwo(left, right)
}
