package dataset

// 선형 합동 생성기 상수. C/JS/Python 벤치마크와 같은 수열을 만든다.
const (
	lcgA = 1103515245
	lcgC = 12345
	lcgM = 1 << 31
)

// DefaultSeed 벤치마크 데이터셋의 고정 시드
const DefaultSeed uint64 = 12345

// LCG 시드를 명시적으로 가지는 난수 생성기. 전역 상태가 없으므로
// 테스트마다 독립적으로 재현 가능하다.
type LCG struct {
	state uint64
}

// NewLCG seed 로 초기화된 생성기
func NewLCG(seed uint64) *LCG {
	return &LCG{state: seed % lcgM}
}

// Float64 [0, 1) 구간의 다음 값
func (g *LCG) Float64() float64 {
	g.state = (lcgA*g.state + lcgC) % lcgM
	return float64(g.state) / lcgM
}

// IntRange [min, max] 구간의 다음 정수
func (g *LCG) IntRange(min, max int) int {
	return min + int(g.Float64()*float64(max-min+1))
}

// Index [0, n) 구간의 다음 인덱스
func (g *LCG) Index(n int) int {
	return int(g.Float64() * float64(n))
}
