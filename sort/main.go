package main

import (
	"fmt"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"segsort/dataset"
	"segsort/segsort"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

// rootOptions 모든 하위 명령이 공유하는 플래그
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "segbench",
		Short:         "정렬 알고리즘 벤치마크 (세그먼트 병합정렬 vs 기준 정렬)",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML 설정 파일")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "로그 레벨 (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "회전 로그 파일 경로")

	root.AddCommand(newRunCmd(opts), newGenCmd(opts), newVerifyCmd(opts))
	return root
}

// load 설정 파일 -> 공통 플래그 순으로 덮어쓴 뒤 로거를 만든다.
func (o *rootOptions) load() (Config, *zap.Logger, error) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return cfg, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

// benchFlags run/gen 이 공유하는 데이터셋 관련 플래그
type benchFlags struct {
	sizes         []int
	runs          int
	algorithms    []string
	distributions []string
	seed          uint64
	workers       int
	backend       string
	storeDir      string
	datDir        string
	markdown      string
	json          string
	metrics       string
}

func (f *benchFlags) register(cmd *cobra.Command, withOutput bool) {
	fs := cmd.Flags()
	fs.IntSliceVar(&f.sizes, "sizes", nil, "데이터 크기 목록")
	fs.StringSliceVar(&f.distributions, "distributions", nil, "입력 분포 목록")
	fs.Uint64Var(&f.seed, "seed", 0, "LCG 시드")
	fs.IntVar(&f.workers, "workers", 0, "동시 작업 수 (0 이면 CPU 코어 수)")
	fs.StringVar(&f.backend, "backend", "", "데이터셋 저장소 (memory, bbolt, badger, pebble)")
	fs.StringVar(&f.storeDir, "store-dir", "", "저장소 디렉터리")
	fs.StringVar(&f.datDir, "dat-dir", "", ".dat 파일을 쓸 디렉터리")
	if withOutput {
		fs.IntVar(&f.runs, "runs", 0, "조합당 반복 횟수")
		fs.StringSliceVar(&f.algorithms, "algorithms", nil, "알고리즘 목록")
		fs.StringVar(&f.markdown, "markdown", "", "마크다운 보고서 경로")
		fs.StringVar(&f.json, "json", "", "JSON 보고서 경로")
		fs.StringVar(&f.metrics, "metrics", "", "prometheus 텍스트 파일 경로")
	}
}

// apply 명시된 플래그만 설정에 덮어쓴다.
func (f *benchFlags) apply(cmd *cobra.Command, cfg *Config) {
	changed := cmd.Flags().Changed
	if changed("sizes") {
		cfg.Sizes = f.sizes
	}
	if changed("runs") {
		cfg.Runs = f.runs
	}
	if changed("algorithms") {
		cfg.Algorithms = f.algorithms
	}
	if changed("distributions") {
		cfg.Distributions = f.distributions
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("backend") {
		cfg.Storage.Backend = f.backend
	}
	if changed("store-dir") {
		cfg.Storage.Dir = f.storeDir
	}
	if changed("dat-dir") {
		cfg.Storage.DatDir = f.datDir
	}
	if changed("markdown") {
		cfg.Output.Markdown = f.markdown
	}
	if changed("json") {
		cfg.Output.JSON = f.json
	}
	if changed("metrics") {
		cfg.Output.Metrics = f.metrics
	}
}

func newRunCmd(opts *rootOptions) *cobra.Command {
	flags := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "벤치마크를 실행하고 보고서를 쓴다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			flags.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runAndReport(cfg, logger)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newGenCmd(opts *rootOptions) *cobra.Command {
	flags := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "데이터셋을 생성해 저장소와 .dat 파일로 남긴다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			flags.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return generate(cfg, logger)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify FILE...",
		Short: ".dat 또는 텍스트 파일을 세그먼트 병합정렬로 정렬하고 결과를 검증한다",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			for _, path := range args {
				if err := verifyFile(path, logger); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

const verifyHead = 16

// verifyFile path 를 정렬하고 순서/순열을 확인한다.
func verifyFile(path string, logger *zap.Logger) error {
	data, err := dataset.ReadFile(path)
	if err != nil {
		return err
	}
	original := slices.Clone(data)

	start := time.Now()
	sorted, st := segsort.SortWithStats(data)
	elapsed := time.Since(start)

	if err := verifySorted(original, sorted); err != nil {
		return errors.Wrapf(err, "verify %s", path)
	}
	// 힙 병합으로 따로 뽑은 앞부분과도 맞춰 본다.
	head := smallestK(slices.Clone(original), verifyHead)
	if !slices.Equal(head, sorted[:len(head)]) {
		return errors.Newf("verify %s: smallest %d values disagree", path, len(head))
	}
	logger.Info("verified",
		zap.String("file", path),
		zap.Int("n", len(sorted)),
		zap.Duration("elapsed", elapsed),
		zap.Int("runs", st.Runs),
		zap.Int("merges", st.Merges),
		zap.Int("max_stack_depth", st.MaxStackDepth),
		zap.Int("max_merge_depth", st.MaxMergeDepth))
	return nil
}

// generate 데이터셋을 준비만 하고 끝낸다.
func generate(cfg Config, logger *zap.Logger) (err error) {
	specs, err := cfg.specs()
	if err != nil {
		return err
	}
	st, err := dataset.OpenStore(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return err
	}
	defer closeStore(st, &err)

	sets, err := prepareDatasets(st, specs, cfg.Workers, cfg.Storage.DatDir, logger)
	if err != nil {
		return err
	}
	for _, p := range sets {
		logger.Info("dataset",
			zap.String("kind", string(p.spec.Kind)),
			zap.Int("n", p.spec.Size),
			zap.Bool("cached", p.cached))
	}
	if cfg.Storage.Backend != dataset.BackendMemory {
		size, err := dataset.DiskUsage(cfg.Storage.Dir)
		if err != nil {
			return err
		}
		logger.Info("store size",
			zap.String("backend", cfg.Storage.Backend),
			zap.String("dir", cfg.Storage.Dir),
			zap.Int64("bytes", size))
	}
	return nil
}

// closeStore 앞선 오류가 없을 때만 Close 오류를 돌려준다.
func closeStore(st dataset.Store, err *error) {
	if cerr := st.Close(); cerr != nil && *err == nil {
		*err = errors.Wrap(cerr, "close store")
	}
}

// runAndReport 벤치마크를 돌리고 설정된 보고서를 모두 쓴다.
func runAndReport(cfg Config, logger *zap.Logger) error {
	logger.Info("정렬 알고리즘 벤치마크 시작",
		zap.Int("num_cpu", runtime.NumCPU()),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
		zap.String("backend", cfg.Storage.Backend))

	metrics := newBenchMetrics()
	results, err := runBench(cfg, metrics, logger)
	if err != nil {
		return err
	}

	if cfg.Output.Markdown != "" {
		if err := saveReport(cfg.Output.Markdown, results, writeMarkdown); err != nil {
			return err
		}
		logger.Info("report written", zap.String("file", cfg.Output.Markdown))
	}
	if cfg.Output.JSON != "" {
		if err := saveReport(cfg.Output.JSON, results, writeJSON); err != nil {
			return err
		}
		logger.Info("report written", zap.String("file", cfg.Output.JSON))
	}
	if cfg.Output.Metrics != "" {
		if err := metrics.writeTextfile(cfg.Output.Metrics); err != nil {
			return err
		}
		logger.Info("metrics written", zap.String("file", cfg.Output.Metrics))
	}

	failed := 0
	for _, r := range results {
		if !r.Verified {
			failed++
		}
	}
	if failed > 0 {
		return errors.Newf("%d of %d sort results failed verification", failed, len(results))
	}
	logger.Info("벤치마크 완료", zap.Int("results", len(results)))
	return nil
}

// runBench 분포 x 크기 x 알고리즘 x 반복을 순서대로 측정한다.
// memory 가 아닌 저장소는 측정마다 저장소에서 다시 읽는다.
func runBench(cfg Config, metrics *benchMetrics, logger *zap.Logger) (_ []BenchmarkResult, err error) {
	specs, err := cfg.specs()
	if err != nil {
		return nil, err
	}
	algos := make([]algorithm, 0, len(cfg.Algorithms))
	for _, name := range cfg.Algorithms {
		a, err := lookupAlgorithm(name)
		if err != nil {
			return nil, err
		}
		algos = append(algos, a)
	}

	st, err := dataset.OpenStore(cfg.Storage.Backend, cfg.Storage.Dir)
	if err != nil {
		return nil, err
	}
	defer closeStore(st, &err)

	sets, err := prepareDatasets(st, specs, cfg.Workers, cfg.Storage.DatDir, logger)
	if err != nil {
		return nil, err
	}

	pool := newWorkerPool(cfg.Workers)
	reload := cfg.Storage.Backend != dataset.BackendMemory
	pause := time.Duration(cfg.PauseMillis) * time.Millisecond

	var results []BenchmarkResult
	for _, set := range sets {
		logger.Info("테스트 중",
			zap.String("distribution", string(set.spec.Kind)),
			zap.Int("n", set.spec.Size))
		for _, algo := range algos {
			for run := 1; run <= cfg.Runs; run++ {
				data := set.data
				if reload {
					if data, err = st.Get(set.spec); err != nil {
						return nil, errors.Wrapf(err, "reload %s", set.spec.Key())
					}
				}
				result := runBenchmark(benchCase{
					algo:    algo,
					dist:    string(set.spec.Kind),
					storage: cfg.Storage.Backend,
					run:     run,
					data:    data,
				}, pool, metrics)
				if !result.Verified {
					logger.Error("verification failed",
						zap.String("algorithm", algo.Name),
						zap.String("distribution", result.Distribution),
						zap.Int("n", result.DataSize),
						zap.String("error", result.Error))
				}
				used, capacity := pool.status()
				logger.Debug("run",
					zap.String("algorithm", algo.Name),
					zap.Int("test", run),
					zap.Duration("duration", result.Duration),
					zap.Uint64("alloc_bytes", result.MemoryUsage),
					zap.Int("pool_used", used),
					zap.Int("pool_capacity", capacity))
				results = append(results, result)
				if pause > 0 {
					time.Sleep(pause)
				}
			}
		}
	}
	return results, nil
}
