package segsort

import "fmt"

// run 배열 위의 반열린 구간 [start, end). 기록 시점에 오름차순이다.
type run struct {
	start, end int
}

func (r run) len() int { return r.end - r.start }

func (r run) String() string { return fmt.Sprintf("[%d,%d)", r.start, r.end) }

// runStack 아직 병합되지 않은 런들. 아래에서 위로 인접하며
// 합집합은 항상 처리된 접두사 [0, cursor) 와 같다.
type runStack []run

func (st *runStack) push(r run) { *st = append(*st, r) }

func (st *runStack) pop() run {
	old := *st
	r := old[len(old)-1]
	*st = old[:len(old)-1]
	return r
}

func (st runStack) top() run { return st[len(st)-1] }

// pushRun 새 런을 스택에 올린다.
// 꼭대기 런이 새 런보다 길지 않은 동안 둘을 병합하므로, 쉬는 상태의
// 스택은 아래로 갈수록 길이가 엄격히 커진다.
func (s *sorter[D]) pushRun(cur run) {
	for len(s.stack) > 0 {
		top := s.stack.top()
		if top.end != cur.start {
			panic(fmt.Sprintf("segsort: run %v does not follow stack top %v", cur, top))
		}
		if top.len() > cur.len() {
			break
		}
		s.stack.pop()
		s.merge(top.start, cur.start, cur.end)
		cur.start = top.start
	}
	s.stack.push(cur)
	s.stats.observeStack(len(s.stack))
}

// collapse 입력을 다 읽은 뒤 남은 런을 위에서부터 병합해 하나로 만든다.
func (s *sorter[D]) collapse() {
	for len(s.stack) > 1 {
		a := s.stack.pop()
		b := s.stack.pop()
		s.merge(b.start, a.start, a.end)
		s.stack.push(run{start: b.start, end: a.end})
	}
}
