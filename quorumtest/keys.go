package quorumtest

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/orm"
)

// NewKey returns a new random ed25519 key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a new random key.
func NewCondition() quorum.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns the n-th ID allocated by a bucket sequence.
func SequenceID(n uint64) []byte {
	return orm.EncodeSequence(int64(n))
}
