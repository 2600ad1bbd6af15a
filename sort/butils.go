package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"segsort/segsort"
)

// BenchmarkResult 정렬 한 번의 측정 결과
type BenchmarkResult struct {
	Algorithm    string         `json:"algorithm"`
	Distribution string         `json:"distribution"`
	DataSize     int            `json:"data_size"`
	StorageType  string         `json:"storage_type"`
	TestRun      int            `json:"test_run"`
	Duration     time.Duration  `json:"duration"`
	MemoryUsage  uint64         `json:"memory_usage_bytes"`
	GoroutineNum int            `json:"goroutine_num"`
	Verified     bool           `json:"verified"`
	Error        string         `json:"error,omitempty"`
	Sort         *segsort.Stats `json:"segsort_stats,omitempty"`
}

// SystemStats 측정 시작 시점의 시계/메모리 상태
type SystemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

// startStats GC 를 두 번 돌려 이전 측정의 잔여 할당을 치운 뒤 시작한다.
func startStats() *SystemStats {
	runtime.GC()
	runtime.GC()

	s := &SystemStats{}
	runtime.ReadMemStats(&s.startMem)
	s.startTime = time.Now()
	return s
}

// endStats 경과 시간과 그 사이 누적 할당 바이트
func (s *SystemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)
	return duration, s.endMem.TotalAlloc - s.startMem.TotalAlloc
}

// benchCase 한 데이터셋에 대한 측정 단위
type benchCase struct {
	algo    algorithm
	dist    string
	storage string
	run     int
	data    []int // 원본. 측정마다 복사해서 쓴다.
}

// runBenchmark 원본을 복사해 정렬하고 결과를 검증한다.
// segsort 계측은 측정 구간 밖에서 별도 복사본으로 한 번 더 돌린다.
func runBenchmark(bc benchCase, pool workerPool, metrics *benchMetrics) BenchmarkResult {
	result := BenchmarkResult{
		Algorithm:    bc.algo.Name,
		Distribution: bc.dist,
		DataSize:     len(bc.data),
		StorageType:  bc.storage,
		TestRun:      bc.run,
	}

	testData := slices.Clone(bc.data)

	stats := startStats()
	sorted := bc.algo.run(testData, pool)
	result.Duration, result.MemoryUsage = stats.endStats()
	result.GoroutineNum = runtime.NumGoroutine()

	if err := verifySorted(bc.data, sorted); err != nil {
		result.Error = err.Error()
	} else {
		result.Verified = true
	}

	if bc.algo.Name == "segsort" {
		_, st := segsort.SortWithStats(slices.Clone(bc.data))
		result.Sort = &st
	}

	if metrics != nil {
		metrics.observeRun(result.Algorithm, result.Distribution, result.Duration, result.MemoryUsage)
		if !result.Verified {
			metrics.observeFailure(result.Algorithm, result.Distribution)
		}
		if result.Sort != nil {
			metrics.observeSegsort(result.Distribution, strconv.Itoa(result.DataSize), *result.Sort)
		}
	}
	return result
}

// groupKey 요약 통계의 그룹 단위
type groupKey struct {
	Distribution string
	DataSize     int
	StorageType  string
}

// groupResults 보고서 출력 순서(분포, 크기, 저장소)대로 묶는다.
func groupResults(results []BenchmarkResult) ([]groupKey, map[groupKey][]BenchmarkResult) {
	var keys []groupKey
	groups := make(map[groupKey][]BenchmarkResult)
	for _, r := range results {
		k := groupKey{r.Distribution, r.DataSize, r.StorageType}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	return keys, groups
}

var storageNames = map[string]string{
	"memory": "인메모리",
	"bbolt":  "bbolt",
	"badger": "badger",
	"pebble": "pebble",
}

func storageLabel(s string) string {
	if name, ok := storageNames[s]; ok {
		return name
	}
	return s
}

func stableMark(stable bool) string {
	if stable {
		return "O"
	}
	return "X"
}

func algorithmLabel(name string) string {
	if a, err := lookupAlgorithm(name); err == nil {
		return a.Label
	}
	return name
}

// writeMarkdown 측정별 표와 알고리즘별 요약 통계 표
func writeMarkdown(w io.Writer, results []BenchmarkResult, now time.Time) error {
	var builder strings.Builder
	builder.Grow(64 * 1024)

	builder.WriteString("# 정렬 알고리즘 벤치마크 결과\n\n")
	fmt.Fprintf(&builder, "실행 시간: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&builder, "CPU 코어 수: %d\n", runtime.NumCPU())
	fmt.Fprintf(&builder, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	keys, groups := groupResults(results)

	for _, k := range keys {
		fmt.Fprintf(&builder, "## %s - %s - %d개 데이터\n\n", k.Distribution, storageLabel(k.StorageType), k.DataSize)
		builder.WriteString("| 알고리즘 | 테스트 | 실행시간 | 메모리사용량 | 고루틴수 | 검증 |\n")
		builder.WriteString("|----------|--------|----------|--------------|----------|------|\n")
		for _, r := range groups[k] {
			verified := "OK"
			if !r.Verified {
				verified = "실패"
			}
			fmt.Fprintf(&builder, "| %s | %d | %v | %d bytes | %d | %s |\n",
				algorithmLabel(r.Algorithm), r.TestRun, r.Duration, r.MemoryUsage, r.GoroutineNum, verified)
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## 요약 통계\n\n")
	for _, k := range keys {
		fmt.Fprintf(&builder, "### %s - %s - %d개 데이터\n\n", k.Distribution, storageLabel(k.StorageType), k.DataSize)
		builder.WriteString("| 알고리즘 | 안정 | 평균 | 중앙값 | 표준편차 | 최소 | 최대 | p5 | p95 | 평균 메모리사용량 |\n")
		builder.WriteString("|----------|------|------|--------|----------|------|------|----|-----|-------------------|\n")
		for _, s := range summarize(groups[k]) {
			fmt.Fprintf(&builder, "| %s | %s | %v | %v | %v | %v | %v | %v | %v | %d bytes |\n",
				algorithmLabel(s.Algorithm), stableMark(s.Stable), s.Mean, s.Median, s.StdDev, s.Min, s.Max, s.P5, s.P95, s.MeanMemory)
		}
		builder.WriteString("\n")
	}

	if depth := segsortDepthRows(results); len(depth) > 0 {
		builder.WriteString("## 세그먼트 병합정렬 계측\n\n")
		builder.WriteString("| 분포 | 크기 | 런 | 뒤집은 런 | 병합 | 최대 스택 깊이 | 최대 병합 재귀 |\n")
		builder.WriteString("|------|------|----|-----------|------|----------------|----------------|\n")
		for _, r := range depth {
			st := r.Sort
			fmt.Fprintf(&builder, "| %s | %d | %d | %d | %d | %d | %d |\n",
				r.Distribution, r.DataSize, st.Runs, st.Reversed, st.Merges, st.MaxStackDepth, st.MaxMergeDepth)
		}
		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

// segsortDepthRows 분포/크기마다 첫 번째 segsort 계측 결과
func segsortDepthRows(results []BenchmarkResult) []BenchmarkResult {
	seen := make(map[string]bool)
	var rows []BenchmarkResult
	for _, r := range results {
		if r.Sort == nil {
			continue
		}
		key := r.Distribution + "/" + strconv.Itoa(r.DataSize)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, r)
	}
	return rows
}

// jsonReport JSON 보고서 최상위 구조
type jsonReport struct {
	GeneratedAt time.Time         `json:"generated_at"`
	NumCPU      int               `json:"num_cpu"`
	GOMAXPROCS  int               `json:"gomaxprocs"`
	Results     []BenchmarkResult `json:"results"`
	Summary     []Summary         `json:"summary"`
}

func writeJSON(w io.Writer, results []BenchmarkResult, now time.Time) error {
	report := jsonReport{
		GeneratedAt: now,
		NumCPU:      runtime.NumCPU(),
		GOMAXPROCS:  runtime.GOMAXPROCS(0),
		Results:     results,
	}
	keys, groups := groupResults(results)
	for _, k := range keys {
		report.Summary = append(report.Summary, summarize(groups[k])...)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// saveReport 버퍼링된 파일에 write 로 보고서를 쓴다.
func saveReport(path string, results []BenchmarkResult, write func(io.Writer, []BenchmarkResult, time.Time) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	if err := write(writer, results, time.Now()); err != nil {
		return errors.Wrapf(err, "write report %s", path)
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "flush report %s", path)
	}
	return errors.Wrapf(file.Close(), "close report %s", path)
}
