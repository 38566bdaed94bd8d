package store

import "github.com/iov-one/quorum"

// Short names for the storage interfaces declared by the root package.
type (
	ReadOnlyKVStore  = quorum.ReadOnlyKVStore
	SetDeleter       = quorum.SetDeleter
	KVStore          = quorum.KVStore
	Batch            = quorum.Batch
	Iterator         = quorum.Iterator
	CacheableKVStore = quorum.CacheableKVStore
	KVCacheWrap      = quorum.KVCacheWrap
	CommitID         = quorum.CommitID
	Model            = quorum.Model
)
