package store

import (
	"bytes"

	"github.com/google/btree"
)

// degree of every btree created by this package.
const degree = 2

// BTreeCacheable gives any KVStore a btree backed cache wrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an empty in memory store. Nothing is persisted.
func MemStore() CacheableKVStore {
	var base EmptyKVStore
	return NewBTreeCacheWrap(base, base.NewBatch(), nil)
}

// BTreeCacheWrap keeps pending writes in a btree in front of a read
// only parent. Every write is also recorded in the batch, which is
// applied to the parent on Write.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over parent whose writes are flushed
// through batch. A nil free list allocates a new one. Nested caches
// share the free list of their parent.
func NewBTreeCacheWrap(parent ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(degree, free),
		free:   free,
		parent: parent,
		batch:  batch,
	}
}

func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

func (c BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write applies all pending writes to the parent and empties the cache.
func (c BTreeCacheWrap) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all pending writes.
func (c BTreeCacheWrap) Discard() {
	for c.tree.DeleteMin() != nil {
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, value: value})
	return c.batch.Set(key, value)
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, deleted: true})
	return c.batch.Delete(key)
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e := c.lookup(key)
	if e == nil {
		return c.parent.Get(key)
	}
	if e.deleted {
		return nil, nil
	}
	return e.value, nil
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	e := c.lookup(key)
	if e == nil {
		return c.parent.Has(key)
	}
	return !e.deleted, nil
}

func (c BTreeCacheWrap) lookup(key []byte) *entry {
	if it := c.tree.Get(&entry{key: key}); it != nil {
		return it.(*entry)
	}
	return nil
}

func (c BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	models, err := c.rangeModels(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(models), nil
}

func (c BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	models, err := c.rangeModels(start, end)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return NewSliceIterator(models), nil
}

// rangeModels returns the content of [start, end) in ascending order.
// Cached entries take precedence over the parent and deleted entries
// hide the parent value.
func (c BTreeCacheWrap) rangeModels(start, end []byte) ([]Model, error) {
	it, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	pending := c.pending(start, end)
	var res []Model
	for it.Valid() || len(pending) != 0 {
		if len(pending) == 0 || (it.Valid() && bytes.Compare(it.Key(), pending[0].key) < 0) {
			res = append(res, Model{Key: it.Key(), Value: it.Value()})
			if err := it.Next(); err != nil {
				return nil, err
			}
			continue
		}
		head := pending[0]
		pending = pending[1:]
		if it.Valid() && bytes.Equal(it.Key(), head.key) {
			if err := it.Next(); err != nil {
				return nil, err
			}
		}
		if !head.deleted {
			res = append(res, Model{Key: head.key, Value: head.value})
		}
	}
	return res, nil
}

// pending returns cached entries within [start, end) in ascending order.
func (c BTreeCacheWrap) pending(start, end []byte) []*entry {
	var res []*entry
	collect := func(it btree.Item) bool {
		res = append(res, it.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.tree.Ascend(collect)
	case start == nil:
		c.tree.AscendLessThan(&entry{key: end}, collect)
	case end == nil:
		c.tree.AscendGreaterOrEqual(&entry{key: start}, collect)
	default:
		c.tree.AscendRange(&entry{key: start}, &entry{key: end}, collect)
	}
	return res
}

// entry is a pending write. A deleted entry shadows the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = (*entry)(nil)

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}
