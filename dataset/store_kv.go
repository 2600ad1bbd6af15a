package dataset

import (
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/dgraph-io/badger/v3"
	"go.etcd.io/bbolt"
)

const (
	boltFileName = "datasets.db"
	bucketName   = "datasets"
)

// ====================================================================================
// bbolt: 단일 파일, 버킷 하나
// ====================================================================================

type boltStore struct {
	db *bbolt.DB
}

func openBoltStore(dir string) (*boltStore, error) {
	path := filepath.Join(dir, boltFileName)
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "bbolt open %s", path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "bbolt create bucket")
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Put(spec Spec, data []int) error {
	val, err := EncodeDat(data)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(spec.Key()), val)
	})
	return errors.Wrapf(err, "bbolt put %s", spec.Key())
}

func (s *boltStore) Get(spec Spec) ([]int, error) {
	var data []int
	err := s.db.View(func(tx *bbolt.Tx) error {
		// 값은 트랜잭션 안에서만 유효하므로 여기서 디코딩(복사)한다.
		v := tx.Bucket([]byte(bucketName)).Get([]byte(spec.Key()))
		if v == nil {
			return ErrNotFound
		}
		var err error
		data, err = DecodeDat(v)
		return err
	})
	return data, errors.Wrapf(err, "bbolt get %s", spec.Key())
}

func (s *boltStore) Close() error { return errors.Wrap(s.db.Close(), "bbolt close") }

// ====================================================================================
// BadgerDB: LSM + 값 로그
// ====================================================================================

type badgerStore struct {
	db *badger.DB
}

func openBadgerStore(dir string) (*badgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, errors.Wrapf(err, "badger open %s", dir)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Put(spec Spec, data []int) error {
	val, err := EncodeDat(data)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(spec.Key()), val)
	})
	return errors.Wrapf(err, "badger put %s", spec.Key())
}

func (s *badgerStore) Get(spec Spec) ([]int, error) {
	var data []int
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(spec.Key()))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			data, err = DecodeDat(v)
			return err
		})
	})
	return data, errors.Wrapf(err, "badger get %s", spec.Key())
}

func (s *badgerStore) Close() error { return errors.Wrap(s.db.Close(), "badger close") }

// ====================================================================================
// PebbleDB
// ====================================================================================

type pebbleStore struct {
	db *pebble.DB
}

func openPebbleStore(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{Logger: quietLogger{}})
	if err != nil {
		return nil, errors.Wrapf(err, "pebble open %s", dir)
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) Put(spec Spec, data []int) error {
	val, err := EncodeDat(data)
	if err != nil {
		return err
	}
	return errors.Wrapf(s.db.Set([]byte(spec.Key()), val, pebble.Sync), "pebble put %s", spec.Key())
}

func (s *pebbleStore) Get(spec Spec) ([]int, error) {
	v, closer, err := s.db.Get([]byte(spec.Key()))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, errors.Wrapf(ErrNotFound, "pebble get %s", spec.Key())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "pebble get %s", spec.Key())
	}
	defer closer.Close()
	return DecodeDat(v)
}

func (s *pebbleStore) Close() error { return errors.Wrap(s.db.Close(), "pebble close") }

// quietLogger pebble 의 정보 로그를 버린다. Fatalf 는 기본 로거처럼 실행을 멈춘다.
type quietLogger struct{}

func (quietLogger) Infof(string, ...interface{}) {}

func (quietLogger) Fatalf(format string, args ...interface{}) {
	panic(errors.Newf("pebble: "+format, args...))
}
