package segsort

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Sort 자연 순서로 x 를 제자리 안정 정렬하고 x 를 그대로 반환한다.
// 부동소수점의 NaN 은 다른 모든 값보다 앞에 온다.
func Sort[S ~[]E, E constraints.Ordered](x S) S {
	if len(x) < 2 {
		return x
	}
	s := sorter[orderedSlice[E]]{data: orderedSlice[E](x), n: len(x)}
	s.run()
	return x
}

// SortFunc cmp 기준으로 x 를 제자리 안정 정렬한다.
// cmp(a, b) 는 a < b 이면 음수, a == b 이면 0, a > b 이면 양수를 반환해야 한다.
// cmp 에서 발생한 panic 은 그대로 호출자에게 전파된다.
func SortFunc[S ~[]E, E any](x S, cmp func(a, b E) int) S {
	if len(x) < 2 {
		return x
	}
	s := sorter[funcSlice[E]]{data: funcSlice[E]{x: x, cmp: cmp}, n: len(x)}
	s.run()
	return x
}

// Stable sort.Interface 에 대해 같은 알고리즘을 수행한다.
// Less 와 Swap 만 사용하므로 임의의 인덱스 기반 컨테이너에 쓸 수 있다.
func Stable(data sort.Interface) {
	n := data.Len()
	if n < 2 {
		return
	}
	s := sorter[sort.Interface]{data: data, n: n}
	s.run()
}

// SortWithStats Sort 와 같지만 실행 중 수집한 계측값을 함께 반환한다.
func SortWithStats[S ~[]E, E constraints.Ordered](x S) (S, Stats) {
	var st Stats
	if len(x) < 2 {
		return x, st
	}
	s := sorter[orderedSlice[E]]{data: orderedSlice[E](x), n: len(x), stats: &st}
	s.run()
	return x, st
}

// SortFuncWithStats SortFunc 의 계측 버전.
func SortFuncWithStats[S ~[]E, E any](x S, cmp func(a, b E) int) (S, Stats) {
	var st Stats
	if len(x) < 2 {
		return x, st
	}
	s := sorter[funcSlice[E]]{data: funcSlice[E]{x: x, cmp: cmp}, n: len(x), stats: &st}
	s.run()
	return x, st
}

// IsSorted x 가 오름차순(비내림차순)인지 확인한다.
func IsSorted[S ~[]E, E constraints.Ordered](x S) bool {
	for i := len(x) - 1; i > 0; i-- {
		if less(x[i], x[i-1]) {
			return false
		}
	}
	return true
}

// IsSortedFunc cmp 기준으로 x 가 정렬되어 있는지 확인한다.
func IsSortedFunc[S ~[]E, E any](x S, cmp func(a, b E) int) bool {
	for i := len(x) - 1; i > 0; i-- {
		if cmp(x[i], x[i-1]) < 0 {
			return false
		}
	}
	return true
}

// sorter 한 번의 정렬 호출이 소유하는 상태. 전역 상태는 없다.
type sorter[D sort.Interface] struct {
	data  D
	n     int
	stack runStack
	stats *Stats

	// 현재 symMerge 재귀 깊이
	depth int
}

// run 런 감지 -> 스택 병합을 커서가 끝에 닿을 때까지 반복한 뒤 남은 런을 접는다.
func (s *sorter[D]) run() {
	for cursor := 0; cursor < s.n; {
		r := s.detectRun(cursor)
		cursor = r.end
		s.pushRun(r)
	}
	s.collapse()
}
