package quorum

// ReadOnlyKVStore is the query side of a store. Get returns nil for a
// missing key.
type ReadOnlyKVStore interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks keys in [start, end) in ascending order. A nil
	// bound is open. The range must not be written while iterating.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks the same range in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Callers
// must not modify key or value after passing them in.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the storage every handler works against.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range:
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		key, value := it.Key(), it.Value()
//	}
//
// Key and Value panic once the iterator is no longer valid.
type Iterator interface {
	Valid() bool
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack an uncommitted layer on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch layer over a store. Reads see the pending
// writes. Write flushes them to the parent store, Discard drops them.
// Execution of a multisig transaction runs inside one, so a failed
// action leaves no trace.
type KVCacheWrap interface {
	CacheableKVStore

	Write() error
	Discard()
}

// CommitID identifies a committed state by version and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model is a single key value pair.
type Model struct {
	Key   []byte
	Value []byte
}
