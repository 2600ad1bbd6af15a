package main

import "golang.org/x/exp/constraints"

// 이 크기 이하의 구간은 삽입정렬로 처리한다.
const insertionThreshold = 16

// quickSort 하이브리드 퀵소트 (불안정, 비교 기준선)
func quickSort[E constraints.Ordered](arr []E) {
	if len(arr) < 2 {
		return
	}
	quickSortRange(arr, 0, len(arr)-1)
}

// quickSortRange 닫힌 구간 [low, high] 정렬
func quickSortRange[E constraints.Ordered](arr []E, low, high int) {
	for low < high {
		if high-low+1 <= insertionThreshold {
			insertionSort(arr, low, high)
			return
		}

		// 3-way 파티셔닝으로 중복값 처리
		lt, gt := partition3Way(arr, low, high)

		// 작은 쪽만 재귀하고 큰 쪽은 반복 (스택 깊이 O(log n))
		if lt-low < high-gt {
			quickSortRange(arr, low, lt-1)
			low = gt + 1
		} else {
			quickSortRange(arr, gt+1, high)
			high = lt - 1
		}
	}
}

// partition3Way arr[low..lt-1] < pivot, arr[lt..gt] == pivot, arr[gt+1..high] > pivot
func partition3Way[E constraints.Ordered](arr []E, low, high int) (int, int) {
	medianOfThree(arr, low, low+(high-low)/2, high)
	pivot := arr[low]

	lt, i, gt := low, low+1, high+1
	for i < gt {
		switch {
		case arr[i] < pivot:
			arr[lt], arr[i] = arr[i], arr[lt]
			lt++
			i++
		case arr[i] > pivot:
			gt--
			arr[i], arr[gt] = arr[gt], arr[i]
		default:
			i++
		}
	}
	return lt, gt - 1
}

// medianOfThree 세 값의 중앙값을 a 위치로 옮긴다.
func medianOfThree[E constraints.Ordered](arr []E, a, b, c int) {
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	if arr[b] > arr[c] {
		arr[b], arr[c] = arr[c], arr[b]
	}
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	arr[a], arr[b] = arr[b], arr[a]
}

// insertionSort 닫힌 구간 [low, high] 삽입정렬 (안정)
func insertionSort[E constraints.Ordered](arr []E, low, high int) {
	for i := low + 1; i <= high; i++ {
		key := arr[i]
		j := i - 1
		for j >= low && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}
