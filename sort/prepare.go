package main

import (
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"segsort/dataset"
)

// prepared 저장소에 준비된 데이터셋
type prepared struct {
	spec   dataset.Spec
	data   []int
	cached bool
}

// prepareDatasets specs 를 ants 풀에서 동시에 Load 한다.
// workers 가 0 이하면 CPU 코어 수만큼 돌린다.
// datDir 이 비어 있지 않으면 <kind>_<n>.dat 파일도 쓴다.
// 결과는 specs 와 같은 순서다.
func prepareDatasets(st dataset.Store, specs []dataset.Spec, workers int, datDir string, logger *zap.Logger) ([]prepared, error) {
	var (
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	pool, err := newPreparePool(workerCount(workers), setErr)
	if err != nil {
		return nil, err
	}
	defer pool.Release()
	logger.Debug("prepare pool", zap.Int("workers", pool.Cap()), zap.Int("datasets", len(specs)))

	out := make([]prepared, len(specs))
	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			data, cached, err := dataset.Load(st, spec)
			if err != nil {
				setErr(errors.Wrapf(err, "load %s", spec.Key()))
				return
			}
			if datDir != "" {
				path := filepath.Join(datDir, dataset.DatFileName(spec.Kind, spec.Size))
				if err := dataset.WriteDatFile(path, data); err != nil {
					setErr(err)
					return
				}
			}
			out[i] = prepared{spec: spec, data: data, cached: cached}
			logger.Debug("dataset ready",
				zap.String("key", spec.Key()),
				zap.Bool("cached", cached))
		})
		if err != nil {
			wg.Done()
			setErr(errors.Wrap(err, "submit prepare task"))
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// newPreparePool 작업 panic 은 onErr 로 넘긴다.
func newPreparePool(workers int, onErr func(error)) (*ants.Pool, error) {
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v interface{}) {
		onErr(errors.Newf("prepare dataset panicked: %v", v))
	}))
	return pool, errors.Wrap(err, "create prepare pool")
}
