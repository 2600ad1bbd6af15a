package main

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"segsort/segsort"
)

// Summary 같은 분포/크기/저장소에서 한 알고리즘의 반복 측정 요약
type Summary struct {
	Algorithm    string        `json:"algorithm"`
	Distribution string        `json:"distribution"`
	DataSize     int           `json:"data_size"`
	StorageType  string        `json:"storage_type"`
	Stable       bool          `json:"stable"`
	Runs         int           `json:"runs"`
	Failures     int           `json:"failures"`
	Mean         time.Duration `json:"mean"`
	Median       time.Duration `json:"median"`
	StdDev       time.Duration `json:"std_dev"`
	Min          time.Duration `json:"min"`
	Max          time.Duration `json:"max"`
	P5           time.Duration `json:"p5"`
	P95          time.Duration `json:"p95"`
	MeanMemory   uint64        `json:"mean_memory_bytes"`
}

// summarize 알고리즘별로 묶어 등장 순서대로 요약한다.
func summarize(results []BenchmarkResult) []Summary {
	var order []string
	byAlgo := make(map[string][]BenchmarkResult)
	for _, r := range results {
		if _, ok := byAlgo[r.Algorithm]; !ok {
			order = append(order, r.Algorithm)
		}
		byAlgo[r.Algorithm] = append(byAlgo[r.Algorithm], r)
	}

	out := make([]Summary, 0, len(order))
	for _, name := range order {
		out = append(out, summarizeRuns(byAlgo[name]))
	}
	return out
}

// summarizeRuns rs 는 비어 있지 않고 같은 알고리즘의 측정이어야 한다.
func summarizeRuns(rs []BenchmarkResult) Summary {
	first := rs[0]
	s := Summary{
		Algorithm:    first.Algorithm,
		Distribution: first.Distribution,
		DataSize:     first.DataSize,
		StorageType:  first.StorageType,
		Runs:         len(rs),
	}
	if a, err := lookupAlgorithm(first.Algorithm); err == nil {
		s.Stable = a.Stable
	}

	durations := make([]float64, len(rs))
	var mem uint64
	for i, r := range rs {
		durations[i] = float64(r.Duration)
		mem += r.MemoryUsage
		if !r.Verified {
			s.Failures++
		}
	}
	s.MeanMemory = mem / uint64(len(rs))

	mean, std := stat.PopMeanStdDev(durations, nil)
	s.Mean = time.Duration(mean)
	s.StdDev = time.Duration(std)

	// Quantile 은 정렬된 입력을 요구한다.
	segsort.Sort(durations)
	s.Min = time.Duration(durations[0])
	s.Max = time.Duration(durations[len(durations)-1])
	s.Median = time.Duration(stat.Quantile(0.5, stat.Empirical, durations, nil))
	s.P5 = time.Duration(stat.Quantile(0.05, stat.Empirical, durations, nil))
	s.P95 = time.Duration(stat.Quantile(0.95, stat.Empirical, durations, nil))
	return s
}
