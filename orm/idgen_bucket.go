package orm

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// IDGenBucket is a Bucket whose keys are allocated from a Sequence.
type IDGenBucket struct {
	Bucket
	ids Sequence
}

// NewIDGenBucket allocates the keys of b from its sequence with the
// given name.
func NewIDGenBucket(b Bucket, seqName string) IDGenBucket {
	return IDGenBucket{Bucket: b, ids: b.Sequence(seqName)}
}

// Create stores m under the next free ID and returns the stored object.
func (b IDGenBucket) Create(db quorum.KVStore, m Model) (Object, error) {
	n, err := b.ids.Next(db)
	if err != nil {
		return nil, errors.Wrap(err, "next id")
	}
	obj := NewSimpleObj(EncodeSequence(n), m)
	if err := b.Save(db, obj); err != nil {
		return nil, err
	}
	return obj, nil
}
