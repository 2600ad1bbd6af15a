package segsort

import (
	"cmp"
	"math"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segsort/dataset"
)

func TestSortScenarios(t *testing.T) {
	cases := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", []int{}, []int{}},
		{"single", []int{42}, []int{42}},
		{"pair", []int{2, 1}, []int{1, 2}},
		{"already sorted", []int{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5}},
		{"reverse", []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"mixed runs",
			[]int{5, 3, 2, 4, 6, 8, 7, 19, 10, 12, 13, 14, 17, 18},
			[]int{2, 3, 4, 5, 6, 7, 8, 10, 12, 13, 14, 17, 18, 19}},
		{"duplicates", []int{3, 1, 4, 1, 5, 9, 2, 6}, []int{1, 1, 2, 3, 4, 5, 6, 9}},
		{"all identical", []int{5, 5, 5, 5, 5}, []int{5, 5, 5, 5, 5}},
		{"negatives", []int{10, -2, 5, -2, 0, 5, 10, -8}, []int{-8, -2, -2, 0, 5, 5, 10, 10}},
		{"longer", []int{31, 41, 59, 26, 53, 58, 97, 93, 23, 84}, []int{23, 26, 31, 41, 53, 58, 59, 84, 93, 97}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sort(slices.Clone(tc.in))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSortReturnsSameSlice(t *testing.T) {
	x := []int{3, 2, 1}
	got := Sort(x)
	require.Same(t, &x[0], &got[0])
	assert.Equal(t, []int{1, 2, 3}, x)

	var empty []int
	assert.Nil(t, Sort(empty))
}

// record 안정성 검사용: key 로만 정렬하고 pos 로 원래 위치를 추적한다.
type record struct {
	key, pos int
}

func byKey(a, b record) int { return cmp.Compare(a.key, b.key) }

func tagged(keys []int) []record {
	recs := make([]record, len(keys))
	for i, k := range keys {
		recs[i] = record{key: k, pos: i}
	}
	return recs
}

func requireStable(t *testing.T, recs []record) {
	t.Helper()
	for i := 1; i < len(recs); i++ {
		prev, cur := recs[i-1], recs[i]
		require.LessOrEqual(t, prev.key, cur.key, "order broken at %d", i)
		if prev.key == cur.key {
			require.Less(t, prev.pos, cur.pos, "stability broken at %d (key %d)", i, cur.key)
		}
	}
}

func TestSortFuncStableDuplicateScenario(t *testing.T) {
	recs := SortFunc(tagged([]int{3, 1, 4, 1, 5, 9, 2, 6}), byKey)
	require.Equal(t, record{1, 1}, recs[0])
	require.Equal(t, record{1, 3}, recs[1])
	requireStable(t, recs)
}

var testSizes = []int{0, 1, 2, 3, 7, 8, 15, 16, 31, 64, 100, 257, 1000, 4099}

func TestSortProperties(t *testing.T) {
	for _, kind := range dataset.Kinds() {
		for _, n := range testSizes {
			spec := dataset.DefaultSpec(kind, n)
			in, err := dataset.Generate(spec)
			require.NoError(t, err)

			want := slices.Clone(in)
			slices.Sort(want)

			got := Sort(slices.Clone(in))
			require.Equal(t, want, got, "%s n=%d", kind, n)
			require.True(t, IsSorted(got))

			// 이미 정렬된 입력을 다시 정렬해도 같다.
			again := Sort(slices.Clone(got))
			require.Equal(t, got, again, "idempotence %s n=%d", kind, n)
		}
	}
}

func TestSortFuncStabilityAcrossDistributions(t *testing.T) {
	for _, kind := range dataset.Kinds() {
		spec := dataset.DefaultSpec(kind, 3000)
		// 키 공간을 줄여 같은 키가 많이 생기게 한다.
		spec.Max = spec.Min + 15
		keys, err := dataset.Generate(spec)
		require.NoError(t, err)

		recs := SortFunc(tagged(keys), byKey)
		requireStable(t, recs)
	}
}

func TestSortFuncMatchesStdlibStable(t *testing.T) {
	g := dataset.NewLCG(99)
	keys := make([]int, 5000)
	for i := range keys {
		keys[i] = g.IntRange(0, 50)
	}
	want := tagged(keys)
	slices.SortStableFunc(want, byKey)

	got := SortFunc(tagged(keys), byKey)
	assert.Equal(t, want, got)
}

func TestSortFuncDescending(t *testing.T) {
	desc := func(a, b int) int { return cmp.Compare(b, a) }
	got := SortFunc([]int{1, 5, 2, 4, 3}, desc)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, got)
	assert.True(t, IsSortedFunc(got, desc))
	assert.False(t, IsSortedFunc([]int{1, 2}, desc))
}

func TestSortStrings(t *testing.T) {
	got := Sort([]string{"pear", "apple", "fig", "apple", "banana"})
	assert.Equal(t, []string{"apple", "apple", "banana", "fig", "pear"}, got)
}

func TestSortFloatsWithNaN(t *testing.T) {
	nan := math.NaN()
	got := Sort([]float64{3, nan, 1, math.Inf(-1), nan, 2})
	require.True(t, math.IsNaN(got[0]))
	require.True(t, math.IsNaN(got[1]))
	assert.Equal(t, []float64{math.Inf(-1), 1, 2, 3}, got[2:])
	assert.True(t, IsSorted(got))
}

// recordsByKey sort.Interface 구현
type recordsByKey []record

func (r recordsByKey) Len() int           { return len(r) }
func (r recordsByKey) Less(i, j int) bool { return r[i].key < r[j].key }
func (r recordsByKey) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }

func TestStableInterface(t *testing.T) {
	spec := dataset.DefaultSpec(dataset.Duplicates, 2000)
	keys, err := dataset.Generate(spec)
	require.NoError(t, err)

	recs := tagged(keys)
	Stable(recordsByKey(recs))
	requireStable(t, recs)
	assert.True(t, sort.IsSorted(recordsByKey(recs)))

	Stable(recordsByKey(nil))
}

func TestComparatorPanicPropagates(t *testing.T) {
	calls := 0
	boom := func(a, b int) int {
		calls++
		if calls == 5 {
			panic("comparator exploded")
		}
		return cmp.Compare(a, b)
	}
	assert.PanicsWithValue(t, "comparator exploded", func() {
		SortFunc([]int{9, 1, 8, 2, 7, 3, 6, 4, 5}, boom)
	})
}

func TestSortDoesNotCallComparatorForTrivialInput(t *testing.T) {
	never := func(a, b int) int { panic("unexpected compare") }
	assert.NotPanics(t, func() {
		SortFunc([]int{}, never)
		SortFunc([]int{1}, never)
	})
}

func TestConcurrentSortsAreIndependent(t *testing.T) {
	done := make(chan []int)
	for seed := range uint64(8) {
		go func() {
			spec := dataset.DefaultSpec(dataset.Random, 2000)
			spec.Seed = seed + 1
			data, _ := dataset.Generate(spec)
			done <- Sort(data)
		}()
	}
	for range 8 {
		assert.True(t, IsSorted(<-done))
	}
}
