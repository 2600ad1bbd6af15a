package segsort

// detectRun start 부터 이어지는 최대 단조 런 [start, end) 를 찾는다.
// 내림차순 런은 제자리에서 뒤집어 오름차순으로 돌려준다.
//
// 내림차순은 엄격한 감소(a[i-1] > a[i])만 이어가므로 같은 값이 뒤집기로
// 순서가 바뀌는 일은 없다. 오름차순은 a[i-1] <= a[i] 를 이어간다.
func (s *sorter[D]) detectRun(start int) run {
	n := s.n
	if start >= n {
		return run{start: start, end: start}
	}
	end := start + 1
	if end == n {
		s.stats.addRun(false)
		return run{start: start, end: end}
	}

	if s.data.Less(end, start) {
		end++
		for end < n && s.data.Less(end, end-1) {
			end++
		}
		s.reverse(start, end)
		s.stats.addRun(true)
	} else {
		end++
		for end < n && !s.data.Less(end, end-1) {
			end++
		}
		s.stats.addRun(false)
	}
	return run{start: start, end: end}
}

// reverse [i, j) 구간을 뒤집는다.
func (s *sorter[D]) reverse(i, j int) {
	for j--; i < j; i, j = i+1, j-1 {
		s.data.Swap(i, j)
	}
}
