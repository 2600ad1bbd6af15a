package segsort

// Stats 한 번의 정렬에서 관측한 계측값.
type Stats struct {
	Runs          int `json:"runs"`            // 감지한 자연 런 수
	Reversed      int `json:"reversed"`        // 뒤집은 내림차순 런 수
	Merges        int `json:"merges"`          // 런 병합 횟수 (최종 접기 포함)
	MaxStackDepth int `json:"max_stack_depth"` // 런 스택의 최대 깊이
	MaxMergeDepth int `json:"max_merge_depth"` // symMerge 재귀의 최대 깊이
}

// nil 수신자면 아무것도 기록하지 않는다.

func (st *Stats) addRun(reversed bool) {
	if st == nil {
		return
	}
	st.Runs++
	if reversed {
		st.Reversed++
	}
}

func (st *Stats) addMerge() {
	if st == nil {
		return
	}
	st.Merges++
}

func (st *Stats) observeStack(depth int) {
	if st != nil && depth > st.MaxStackDepth {
		st.MaxStackDepth = depth
	}
}

func (st *Stats) observeMerge(depth int) {
	if st != nil && depth > st.MaxMergeDepth {
		st.MaxMergeDepth = depth
	}
}
