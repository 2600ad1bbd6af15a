package main

import (
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"
)

// parallelQuickSort 분할 후 양쪽을 고루틴으로 나눠 정렬한다.
// 풀에 빈 슬롯이 없으면 그 자리에서 순차 정렬한다.
func parallelQuickSort[E constraints.Ordered](arr []E, pool workerPool) {
	if len(arr) < 2 {
		return
	}
	parallelQuickSortRange(arr, 0, len(arr)-1, runtime.NumCPU(), pool)
}

func parallelQuickSortRange[E constraints.Ordered](arr []E, low, high, depth int, pool workerPool) {
	if low >= high {
		return
	}
	if depth <= 1 || high-low+1 <= parallelThreshold(len(arr)) {
		quickSortRange(arr, low, high)
		return
	}

	lt, gt := partition3Way(arr, low, high)

	var wg sync.WaitGroup
	wg.Add(2)
	spawn := func(lo, hi int) {
		defer wg.Done()
		if pool.tryAcquire() {
			defer pool.release()
			parallelQuickSortRange(arr, lo, hi, depth/2, pool)
			return
		}
		quickSortRange(arr, lo, hi)
	}
	go spawn(low, lt-1)
	go spawn(gt+1, high)
	wg.Wait()
}

// parallelThreshold 전체 크기에 따른 병렬 분할 임계값
func parallelThreshold(totalSize int) int {
	switch {
	case totalSize < 1000:
		return totalSize // 작은 데이터는 병렬처리 안함
	case totalSize < 10000:
		return 300
	case totalSize < 100000:
		return 800
	default:
		return 1500
	}
}
