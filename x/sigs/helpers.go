package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
)

// StdTx is a minimal signed transaction carrying a single message.
type StdTx struct {
	Msg        quorum.Msg
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ quorum.Tx = (*StdTx)(nil)

// NewStdTx wraps the message into an unsigned transaction.
func NewStdTx(msg quorum.Msg) *StdTx {
	return &StdTx{Msg: msg}
}

// GetMsg returns the carried message.
func (tx *StdTx) GetMsg() (quorum.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	return tx.Msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the message path followed by the serialized
// message, so a signature cannot be replayed against another route.
func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	bz, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal msg")
	}
	out := make([]byte, 0, len(msg.Path())+1+len(bz))
	out = append(out, msg.Path()...)
	out = append(out, 0)
	return append(out, bz...), nil
}

// Sign appends a signature for the given key and sequence.
func (tx *StdTx) Sign(key *crypto.PrivateKey, chainID string, seq int64) error {
	sig, err := SignTx(key, tx, chainID, seq)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}
