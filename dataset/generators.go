package dataset

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind 입력 분포 종류
type Kind string

const (
	Random       Kind = "random"
	Sorted       Kind = "sorted"
	Reverse      Kind = "reverse"
	KSorted      Kind = "ksorted"
	NearlySorted Kind = "nearly_sorted"
	Duplicates   Kind = "duplicates"
	Plateau      Kind = "plateau"
	Segmented    Kind = "segmented"
)

// Kinds 지원하는 모든 분포 (보고서 출력 순서)
func Kinds() []Kind {
	return []Kind{Random, Sorted, Reverse, KSorted, NearlySorted, Duplicates, Plateau, Segmented}
}

// ParseKind 이름으로 분포를 찾는다.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if string(k) == name {
			return k, nil
		}
	}
	return "", errors.Newf("unknown dataset kind %q", name)
}

// Spec 데이터셋 하나를 완전히 결정하는 파라미터.
// Param 의 의미는 분포마다 다르다: ksorted 는 k, nearly_sorted 는 교환 횟수,
// duplicates 는 서로 다른 값의 수, plateau/segmented 는 구간 크기.
type Spec struct {
	Kind  Kind   `json:"kind" toml:"kind"`
	Size  int    `json:"size" toml:"size"`
	Param int    `json:"param" toml:"param"`
	Min   int    `json:"min" toml:"min"`
	Max   int    `json:"max" toml:"max"`
	Seed  uint64 `json:"seed" toml:"seed"`
}

// DefaultSpec 분포별 기본 파라미터 (값 범위 [0, 1000], 고정 시드)
func DefaultSpec(kind Kind, n int) Spec {
	s := Spec{Kind: kind, Size: n, Min: 0, Max: 1000, Seed: DefaultSeed}
	switch kind {
	case KSorted, Plateau, Segmented:
		s.Param = max(n/10, 1)
	case NearlySorted:
		s.Param = n / 20
	case Duplicates:
		s.Param = 20
		s.Max = 100
	}
	return s
}

// Key 저장소 키로 쓰는 안정적인 식별자
func (s Spec) Key() string {
	return fmt.Sprintf("%s/n=%d/p=%d/r=%d..%d/seed=%d", s.Kind, s.Size, s.Param, s.Min, s.Max, s.Seed)
}

// Validate 생성 불가능한 조합을 거른다.
func (s Spec) Validate() error {
	if _, err := ParseKind(string(s.Kind)); err != nil {
		return err
	}
	if s.Size < 0 {
		return errors.Newf("dataset %s: negative size %d", s.Kind, s.Size)
	}
	if s.Max < s.Min {
		return errors.Newf("dataset %s: empty value range [%d, %d]", s.Kind, s.Min, s.Max)
	}
	switch s.Kind {
	case Duplicates, Plateau, Segmented:
		if s.Param < 1 {
			return errors.Newf("dataset %s: param must be positive, got %d", s.Kind, s.Param)
		}
	case KSorted, NearlySorted:
		if s.Param < 0 {
			return errors.Newf("dataset %s: param must not be negative, got %d", s.Kind, s.Param)
		}
	}
	return nil
}

// Generate spec 에 맞는 데이터를 만든다. 같은 spec 은 항상 같은 결과를 낸다.
func Generate(s Spec) ([]int, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g := NewLCG(s.Seed)
	arr := make([]int, s.Size)
	switch s.Kind {
	case Random:
		for i := range arr {
			arr[i] = g.IntRange(s.Min, s.Max)
		}
	case Sorted:
		fillSorted(arr, s.Min, s.Max)
	case Reverse:
		fillReverse(arr, s.Min, s.Max)
	case KSorted:
		fillSorted(arr, s.Min, s.Max)
		n := len(arr)
		for i := range arr {
			maxJ := min(i+s.Param+1, n)
			j := i + int(g.Float64()*float64(maxJ-i))
			if j < n {
				arr[i], arr[j] = arr[j], arr[i]
			}
		}
	case NearlySorted:
		fillSorted(arr, s.Min, s.Max)
		if len(arr) > 0 {
			for range s.Param {
				i := g.Index(len(arr))
				j := g.Index(len(arr))
				arr[i], arr[j] = arr[j], arr[i]
			}
		}
	case Duplicates:
		for i := range arr {
			v := g.Index(s.Param)
			arr[i] = s.Min + v*(s.Max-s.Min)/s.Param
		}
	case Plateau:
		fillPlateau(arr, s.Param, s.Min, s.Max)
	case Segmented:
		fillSegmented(arr, s.Param, s.Min, s.Max)
	}
	return arr, nil
}

// fillSorted 균등 간격 오름차순
func fillSorted(arr []int, lo, hi int) {
	if len(arr) == 0 {
		return
	}
	step := float64(hi-lo) / float64(len(arr))
	for i := range arr {
		arr[i] = lo + int(float64(i)*step)
	}
}

// fillReverse 균등 간격 내림차순
func fillReverse(arr []int, lo, hi int) {
	if len(arr) == 0 {
		return
	}
	step := float64(hi-lo) / float64(len(arr))
	for i := range arr {
		arr[i] = hi - int(float64(i)*step)
	}
}

// fillPlateau 같은 값이 size 개씩 이어지는 계단
func fillPlateau(arr []int, size, lo, hi int) {
	n := len(arr)
	plateaus := (n + size - 1) / size
	idx := 0
	for p := 0; p < plateaus && idx < n; p++ {
		v := lo + p*(hi-lo)/plateaus
		for c := min(size, n-idx); c > 0; c-- {
			arr[idx] = v
			idx++
		}
	}
}

// fillSegmented 각 구간은 오름차순이고 구간끼리는 값 범위가 겹치지 않는다.
func fillSegmented(arr []int, size, lo, hi int) {
	n := len(arr)
	segments := (n + size - 1) / size
	segRange := float64(hi-lo) / float64(max(segments, 1))
	for s, idx := 0, 0; s < segments && idx < n; s++ {
		end := min(idx+size, n)
		segMin := lo + int(float64(s)*segRange)
		segMax := segMin + int(segRange)
		step := float64(segMax-segMin) / float64(end-idx)
		for i := idx; i < end; i++ {
			arr[i] = segMin + int(float64(i-idx)*step)
		}
		idx = end
	}
}
