package main

import (
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"

	"segsort/dataset"
)

// Config 벤치마크 설정. TOML 파일로 덮어쓰고 다시 플래그로 덮어쓴다.
type Config struct {
	Sizes         []int    `toml:"sizes"`
	Runs          int      `toml:"runs"`
	Algorithms    []string `toml:"algorithms"`
	Distributions []string `toml:"distributions"`
	Seed          uint64   `toml:"seed"`
	Workers       int      `toml:"workers"`
	PauseMillis   int      `toml:"pause_millis"` // 측정 사이 시스템 안정화 시간

	Storage StorageConfig `toml:"storage"`
	Output  OutputConfig  `toml:"output"`
	Log     LogConfig     `toml:"log"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	DatDir  string `toml:"dat_dir"` // 비어 있지 않으면 .dat 파일도 남긴다
}

type OutputConfig struct {
	Markdown string `toml:"markdown"`
	JSON     string `toml:"json"`
	Metrics  string `toml:"metrics"` // prometheus 텍스트 포맷, 비어 있으면 생략
}

type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"` // console | json
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// DefaultConfig 기존 벤치마크와 같은 크기/반복 횟수
func DefaultConfig() Config {
	kinds := dataset.Kinds()
	dists := make([]string, len(kinds))
	for i, k := range kinds {
		dists[i] = string(k)
	}
	return Config{
		Sizes:         []int{1000, 10000, 100000},
		Runs:          3,
		Algorithms:    algorithmNames(),
		Distributions: dists,
		Seed:          dataset.DefaultSeed,
		PauseMillis:   50,
		Storage: StorageConfig{
			Backend: dataset.BackendMemory,
			Dir:     "datasets",
		},
		Output: OutputConfig{
			Markdown: "benchmark_results.md",
			JSON:     "benchmark_results.json",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  64,
			MaxBackups: 3,
		},
	}
}

// LoadConfig 기본값 위에 path 의 TOML 을 덮어쓴다. 모르는 키는 오류.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Newf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// Validate 실행 전에 잘못된 설정을 거른다.
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errors.New("config: no sizes")
	}
	for _, n := range c.Sizes {
		if n <= 0 {
			return errors.Newf("config: size must be positive, got %d", n)
		}
	}
	if c.Runs <= 0 {
		return errors.Newf("config: runs must be positive, got %d", c.Runs)
	}
	if len(c.Algorithms) == 0 {
		return errors.New("config: no algorithms")
	}
	for _, name := range c.Algorithms {
		if _, err := lookupAlgorithm(name); err != nil {
			return errors.Wrap(err, "config")
		}
	}
	if len(c.Distributions) == 0 {
		return errors.New("config: no distributions")
	}
	for _, name := range c.Distributions {
		if _, err := dataset.ParseKind(name); err != nil {
			return errors.Wrap(err, "config")
		}
	}
	if !slices.Contains(dataset.Backends(), c.Storage.Backend) {
		return errors.Newf("config: unknown storage backend %q (known: %v)", c.Storage.Backend, dataset.Backends())
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return errors.Newf("config: unknown log format %q", c.Log.Format)
	}
	return nil
}

// specs 분포 x 크기 조합의 데이터셋 목록
func (c Config) specs() ([]dataset.Spec, error) {
	var specs []dataset.Spec
	for _, name := range c.Distributions {
		kind, err := dataset.ParseKind(name)
		if err != nil {
			return nil, err
		}
		for _, n := range c.Sizes {
			spec := dataset.DefaultSpec(kind, n)
			spec.Seed = c.Seed
			specs = append(specs, spec)
		}
	}
	return specs, nil
}
