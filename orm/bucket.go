/*
Package orm stores models in buckets: named key prefixes holding a single
type of record. Buckets can allocate keys from a sequence stored next to
them.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects of one type under "<name>:<key>".
type Bucket struct {
	name   string
	prefix []byte
	proto  Object
}

// NewBucket returns a bucket for objects shaped like proto. It panics
// on a malformed name.
func NewBucket(name string, proto Object) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":"), proto: proto}
}

func (b Bucket) Name() string {
	return b.name
}

// Sequence returns a counter owned by this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

func (b Bucket) dbKey(key []byte) []byte {
	k := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(k, b.prefix...), key...)
}

// Get returns the object stored under key, or nil when there is none.
func (b Bucket) Get(db quorum.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.dbKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	obj := b.proto.Clone()
	obj.SetKey(key)
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "%s %X: %s", b.name, key, err)
	}
	return obj, nil
}

// One loads the model stored under key into dest. It fails with
// ErrNotFound when nothing is stored.
func (b Bucket) One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "%s %X: %s", b.name, key, err)
	}
	return nil
}

func (b Bucket) Has(db quorum.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.dbKey(key))
}

// Save validates and stores obj under its key.
func (b Bucket) Save(db quorum.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", b.name)
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %s: %s", b.name, err)
	}
	return db.Set(b.dbKey(obj.Key()), raw)
}

func (b Bucket) Delete(db quorum.KVStore, key []byte) error {
	return db.Delete(b.dbKey(key))
}
