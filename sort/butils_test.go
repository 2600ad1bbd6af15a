package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segsort/dataset"
	"segsort/segsort"
)

func TestRunBenchmarkRecordsSegsortStats(t *testing.T) {
	data, err := dataset.Generate(dataset.DefaultSpec(dataset.Segmented, 2000))
	require.NoError(t, err)
	orig := slices.Clone(data)

	algo, err := lookupAlgorithm("segsort")
	require.NoError(t, err)
	metrics := newBenchMetrics()

	r := runBenchmark(benchCase{algo: algo, dist: "segmented", storage: "memory", run: 2, data: data}, newWorkerPool(2), metrics)
	assert.Equal(t, "segsort", r.Algorithm)
	assert.Equal(t, 2000, r.DataSize)
	assert.Equal(t, 2, r.TestRun)
	assert.True(t, r.Verified, r.Error)
	require.NotNil(t, r.Sort)
	assert.Positive(t, r.Sort.Runs)
	assert.Positive(t, r.Sort.MaxStackDepth)
	// 원본은 건드리지 않는다
	assert.Equal(t, orig, data)

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.sortDuration))
	assert.Equal(t, float64(r.Sort.MaxStackDepth), testutil.ToFloat64(metrics.stackDepth.WithLabelValues("segmented", "2000")))
	assert.Zero(t, testutil.ToFloat64(metrics.failures.WithLabelValues("segsort", "segmented")))
}

func TestRunBenchmarkFlagsBrokenSort(t *testing.T) {
	broken := algorithm{Name: "broken", Label: "깨진 정렬", run: func(d []int, _ workerPool) []int {
		return d[:len(d)-1]
	}}
	metrics := newBenchMetrics()

	r := runBenchmark(benchCase{algo: broken, dist: "random", storage: "memory", run: 1, data: []int{3, 2, 1}}, newWorkerPool(1), metrics)
	assert.False(t, r.Verified)
	assert.Contains(t, r.Error, "length")
	assert.Nil(t, r.Sort)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.failures.WithLabelValues("broken", "random")))
}

// 역순 1000개는 런 하나를 뒤집고 병합 없이 끝난다.
var reverseStats = segsort.Stats{Runs: 1, Reversed: 1, MaxStackDepth: 1}

func sampleResults() []BenchmarkResult {
	var out []BenchmarkResult
	for run := 1; run <= 2; run++ {
		r := BenchmarkResult{Algorithm: "segsort", Distribution: "reverse", DataSize: 1000, StorageType: "memory",
			TestRun: run, Duration: time.Duration(run) * time.Millisecond, MemoryUsage: 64, Verified: true}
		if run == 1 {
			st := reverseStats
			r.Sort = &st
		}
		out = append(out, r, BenchmarkResult{Algorithm: "quicksort", Distribution: "reverse", DataSize: 1000, StorageType: "memory",
			TestRun: run, Duration: time.Duration(2*run) * time.Millisecond, Verified: true})
	}
	return out
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, writeMarkdown(&buf, sampleResults(), now))

	md := buf.String()
	assert.True(t, strings.HasPrefix(md, "# 정렬 알고리즘 벤치마크 결과"))
	assert.Contains(t, md, "실행 시간: 2025-03-01 12:00:00")
	assert.Contains(t, md, "## reverse - 인메모리 - 1000개 데이터")
	assert.Contains(t, md, "| 세그먼트 병합정렬 | 1 | 1ms | 64 bytes |")
	assert.Contains(t, md, "## 요약 통계")
	assert.Contains(t, md, "| 세그먼트 병합정렬 | O | 1.5ms |")
	assert.Contains(t, md, "| 퀵소트 | X | 3ms |")
	assert.NotContains(t, md, "파일")
	assert.Contains(t, md, "## 세그먼트 병합정렬 계측")
	assert.Contains(t, md, "| reverse | 1000 | 1 | 1 | 0 | 1 | 0 |")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, writeJSON(&buf, sampleResults(), now))

	var got jsonReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.GeneratedAt.Equal(now))
	assert.Len(t, got.Results, 4)
	require.Len(t, got.Summary, 2)
	assert.Equal(t, "segsort", got.Summary[0].Algorithm)
	assert.Equal(t, 1500*time.Microsecond, got.Summary[0].Mean)
	assert.True(t, got.Summary[0].Stable)
	assert.False(t, got.Summary[1].Stable)
	require.NotNil(t, got.Results[0].Sort)
	assert.Equal(t, 1, got.Results[0].Sort.Runs)
	assert.Nil(t, got.Results[1].Sort)
}

func TestSaveReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, saveReport(path, sampleResults(), writeJSON))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(b))

	err = saveReport(filepath.Join(t.TempDir(), "missing", "out.md"), nil, writeMarkdown)
	require.Error(t, err)
}
