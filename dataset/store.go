package dataset

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrNotFound 저장소에 해당 spec 의 데이터가 없음
var ErrNotFound = errors.New("dataset not found")

// 저장소 백엔드 이름
const (
	BackendMemory = "memory"
	BackendBolt   = "bbolt"
	BackendBadger = "badger"
	BackendPebble = "pebble"
)

// Backends 지원하는 백엔드 목록
func Backends() []string {
	return []string{BackendMemory, BackendBolt, BackendBadger, BackendPebble}
}

// Store 생성한 데이터셋을 spec 단위로 보관한다. 구현은 동시 사용에 안전하다.
type Store interface {
	Put(spec Spec, data []int) error
	Get(spec Spec) ([]int, error)
	Close() error
}

// OpenStore backend 로 dir 아래에 저장소를 연다. memory 는 dir 을 무시한다.
func OpenStore(backend, dir string) (Store, error) {
	if !slices.Contains(Backends(), backend) {
		return nil, errors.Newf("unknown store backend %q", backend)
	}
	if backend != BackendMemory {
		if dir == "" {
			return nil, errors.Newf("store %s: directory is required", backend)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "store %s: create %s", backend, dir)
		}
	}
	var (
		st  Store
		err error
	)
	switch backend {
	case BackendMemory:
		st = NewMemoryStore()
	case BackendBolt:
		st, err = openBoltStore(dir)
	case BackendBadger:
		st, err = openBadgerStore(dir)
	case BackendPebble:
		st, err = openPebbleStore(dir)
	}
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Load 저장소에 있으면 꺼내고, 없으면 생성해서 저장한 뒤 돌려준다.
// cached 는 저장소에서 꺼냈는지 여부.
func Load(st Store, spec Spec) (data []int, cached bool, err error) {
	data, err = st.Get(spec)
	if err == nil {
		return data, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	data, err = Generate(spec)
	if err != nil {
		return nil, false, err
	}
	if err := st.Put(spec, data); err != nil {
		return nil, false, err
	}
	return data, false, nil
}

// MemoryStore 맵 기반 저장소. 넣고 꺼낼 때 복사한다.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string][]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string][]int)}
}

func (m *MemoryStore) Put(spec Spec, data []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[spec.Key()] = slices.Clone(data)
	return nil
}

func (m *MemoryStore) Get(spec Spec) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.sets[spec.Key()]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, spec.Key())
	}
	return slices.Clone(data), nil
}

func (m *MemoryStore) Close() error { return nil }

// DiskUsage dir 아래 일반 파일 크기의 합. 저장소가 디스크에 차지하는 크기 보고용.
func DiskUsage(dir string) (int64, error) {
	var size int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, errors.Wrapf(err, "disk usage %s", dir)
}
