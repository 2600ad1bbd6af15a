package segsort

import "golang.org/x/exp/constraints"

// less NaN 을 가장 작은 값으로 취급하는 전순서 비교.
func less[E constraints.Ordered](a, b E) bool {
	return (isNaN(a) && !isNaN(b)) || a < b
}

func isNaN[E constraints.Ordered](x E) bool {
	return x != x
}

// orderedSlice 자연 순서를 쓰는 슬라이스 어댑터.
type orderedSlice[E constraints.Ordered] []E

func (x orderedSlice[E]) Len() int           { return len(x) }
func (x orderedSlice[E]) Less(i, j int) bool { return less(x[i], x[j]) }
func (x orderedSlice[E]) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

// funcSlice 삼중 비교 함수를 쓰는 슬라이스 어댑터.
type funcSlice[E any] struct {
	x   []E
	cmp func(a, b E) int
}

func (f funcSlice[E]) Len() int           { return len(f.x) }
func (f funcSlice[E]) Less(i, j int) bool { return f.cmp(f.x[i], f.x[j]) < 0 }
func (f funcSlice[E]) Swap(i, j int)      { f.x[i], f.x[j] = f.x[j], f.x[i] }
