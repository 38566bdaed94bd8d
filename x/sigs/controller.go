package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
)

// SignCodeV1 prefixes every signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks every signature of tx and consumes the
// sequence of each signer. It returns the signer conditions in signature
// order, or the first verification error.
func VerifyTxSignatures(db quorum.KVStore, tx SignedTx, chainID string) ([]quorum.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	accounts := NewBucket()
	var signers []quorum.Condition
	for i, sig := range tx.GetSignatures() {
		if err := verify(db, accounts, sig, payload, chainID); err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, sig.Pubkey.Condition())
	}
	return signers, nil
}

func verify(db quorum.KVStore, accounts Bucket, sig *StdSignature, payload []byte, chainID string) error {
	if err := sig.Validate(); err != nil {
		return err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	acc, err := accounts.Account(db, sig.Pubkey)
	if err != nil {
		return err
	}
	if err := acc.UseSequence(sig.Sequence); err != nil {
		return err
	}
	return accounts.StoreAccount(db, acc)
}

// BuildSignBytes returns the sha512 digest that a signer signs:
//
//   SignCodeV1 | len(chainID) uint8 | chainID | sequence int64 big endian | payload
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !quorum.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	h := sha512.New()
	h.Write(SignCodeV1)
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	h.Write(nonce[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs tx with key for the given chain and sequence.
func SignTx(key *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Sequence: seq, Pubkey: key.PublicKey(), Signature: sig}, nil
}
