package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Savepoint runs the next handler against a cache wrap of the store and
// writes it back only if the handler succeeds. It is disabled for both
// Check and Deliver until OnCheck or OnDeliver turns it on.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ quorum.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for Check calls.
func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

// OnDeliver enables the savepoint for Deliver calls.
func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	var res *quorum.CheckResult
	err := guarded(s.check, db, func(db quorum.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	var res *quorum.DeliverResult
	err := guarded(s.deliver, db, func(db quorum.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// guarded calls fn directly when disabled or when db cannot be cache
// wrapped. Otherwise fn operates on a cache that is discarded on failure.
func guarded(enabled bool, db quorum.KVStore, fn func(quorum.KVStore) error) error {
	cacheable, ok := db.(quorum.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write savepoint")
	}
	return nil
}
