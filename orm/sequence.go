package orm

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Sequence is a counter stored next to a bucket. Its values start at 1
// and are never handed out twice, so IDs of deleted records are not
// reused.
type Sequence struct {
	key []byte
}

// NewSequence returns the counter stored under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// Next increments the counter and returns the new value.
func (s Sequence) Next(db quorum.KVStore) (int64, error) {
	n, err := s.Current(db)
	if err != nil {
		return 0, err
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(err, "save sequence")
	}
	return n, nil
}

// Current returns the last value handed out, 0 when none was.
func (s Sequence) Current(db quorum.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(err, "load sequence")
	}
	return DecodeSequence(raw), nil
}

// EncodeSequence returns the 8 byte big endian form of a sequence value,
// the format of registry and transaction IDs.
func EncodeSequence(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}

// DecodeSequence is the inverse of EncodeSequence. Malformed input
// decodes to 0, a value never handed out.
func DecodeSequence(raw []byte) int64 {
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}
