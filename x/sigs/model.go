package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// BucketName is the prefix of the signer accounts.
const BucketName = "sigs"

// maxSequence is the largest nonce a javascript client can represent
// without losing precision.
const maxSequence = 1<<53 - 1

// UserData is the account of a signer: its public key and the sequence
// the next signature must carry.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	return errors.Wrap(u.Pubkey.Validate(), "pubkey")
}

func (u *UserData) Copy() orm.Model {
	cp := *u
	return &cp
}

// UseSequence consumes seq. It must equal the stored sequence, which is
// then advanced by one.
func (u *UserData) UseSequence(seq int64) error {
	if seq != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, seq)
	}
	if u.Sequence >= maxSequence {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	u.Sequence++
	return nil
}

func (u *UserData) Marshal() ([]byte, error) { return proto.Marshal((*userDataWire)(u)) }
func (u *UserData) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*userDataWire)(u)) }

type userDataWire UserData

func (m *userDataWire) Reset()         { *m = userDataWire{} }
func (m *userDataWire) String() string { return proto.CompactTextString(m) }
func (*userDataWire) ProtoMessage()    {}

// Bucket stores one UserData per signer, keyed by the key address.
type Bucket struct {
	orm.Bucket
}

func NewBucket() Bucket {
	empty := orm.NewSimpleObj(nil, &UserData{})
	return Bucket{Bucket: orm.NewBucket(BucketName, empty)}
}

// Account returns the stored account of pubkey, or a fresh one at
// sequence zero when the key has never signed.
func (b Bucket) Account(db quorum.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := b.One(db, pubkey.Address(), &u); {
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	case err != nil:
		return nil, err
	}
	return &u, nil
}

// StoreAccount saves u under the address of its key.
func (b Bucket) StoreAccount(db quorum.KVStore, u *UserData) error {
	return b.Save(db, orm.NewSimpleObj(u.Pubkey.Address(), u))
}
