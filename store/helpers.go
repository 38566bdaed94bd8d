package store

import (
	"github.com/iov-one/quorum/errors"
)

// SliceIterator iterates over a preloaded list of models.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.models)
}

func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrDatabase, "iterator exhausted")
	}
	s.pos++
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator exhausted")
	}
	return s.models[s.pos]
}

func (s *SliceIterator) Close() {
	s.models = nil
}

// EmptyKVStore holds nothing and ignores writes. It is the bottom layer
// of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete(key []byte) error { return nil }
func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a single write recorded by a NonAtomicBatch.
type Op struct {
	Key   []byte
	Value []byte
	// Delete is set for deletions, Value is then nil.
	Delete bool
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failure halfway leaves the target partially written, so it must only
// be used in front of in memory layers.
type NonAtomicBatch struct {
	target SetDeleter
	ops    []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(target SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{target: target}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, Op{Key: key, Value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, Op{Key: key, Delete: true})
	return nil
}

func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		var err error
		if op.Delete {
			err = b.target.Delete(op.Key)
		} else {
			err = b.target.Set(op.Key, op.Value)
		}
		if err != nil {
			return errors.Wrapf(err, "write %X", op.Key)
		}
	}
	b.ops = nil
	return nil
}

// Ops returns the writes recorded since the last Write.
func (b *NonAtomicBatch) Ops() []Op {
	return b.ops
}
