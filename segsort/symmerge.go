package segsort

// merge 인접한 두 오름차순 구간 [first, middle) 과 [middle, last) 를 병합한다.
func (s *sorter[D]) merge(first, middle, last int) {
	s.stats.addMerge()
	s.symMerge(first, middle, last)
}

// symMerge 보조 배열 없이 제자리에서 안정 병합한다.
//
// 왼쪽 구간의 가운데 원소를 피벗으로 잡고 오른쪽 구간에서 피벗의 하한을
// 찾는다. [middle, mid2) 블록을 피벗 앞까지 회전시키면 피벗은 최종 위치
// newMid 에 놓이고, 양쪽을 재귀적으로 병합한다. 하한(상한이 아님)을 써야
// 왼쪽의 같은 값이 오른쪽의 같은 값보다 앞에 남는다.
func (s *sorter[D]) symMerge(first, middle, last int) {
	if first >= middle || middle >= last {
		return
	}
	if last-first == 2 {
		if s.data.Less(middle, first) {
			s.data.Swap(first, middle)
		}
		return
	}

	s.depth++
	s.stats.observeMerge(s.depth)

	mid1 := int(uint(first+middle) >> 1)
	mid2 := s.lowerBound(middle, last, mid1)
	newMid := mid1 + (mid2 - middle)

	s.rotate(mid1, middle, mid2)

	s.symMerge(first, mid1, newMid)
	s.symMerge(newMid+1, mid2, last)
	s.depth--
}

// lowerBound [first, last) 에서 data[i] >= data[pivot] 인 첫 인덱스.
// pivot 은 탐색 구간 밖에 있어야 한다.
func (s *sorter[D]) lowerBound(first, last, pivot int) int {
	for first < last {
		h := int(uint(first+last) >> 1)
		if s.data.Less(h, pivot) {
			first = h + 1
		} else {
			last = h
		}
	}
	return first
}

// rotate [middle, last) 블록을 [first, middle) 앞으로 옮긴다 (삼중 뒤집기).
func (s *sorter[D]) rotate(first, middle, last int) {
	if first >= middle || middle >= last {
		return
	}
	s.reverse(first, middle)
	s.reverse(middle, last)
	s.reverse(first, last)
}
