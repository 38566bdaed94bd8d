package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// MultisigBucket stores registries under a sequence allocated ID.
type MultisigBucket struct {
	orm.IDGenBucket
}

// NewMultisigBucket returns a bucket for registries.
func NewMultisigBucket() MultisigBucket {
	b := orm.NewBucket("msig", orm.NewSimpleObj(nil, &Multisig{}))
	return MultisigBucket{
		IDGenBucket: orm.NewIDGenBucket(b, "id"),
	}
}

// GetMultisig loads the registry with the given ID. A missing registry
// is ErrNotFound.
func (b MultisigBucket) GetMultisig(db quorum.ReadOnlyKVStore, id []byte) (*Multisig, error) {
	var ms Multisig
	if err := b.One(db, id, &ms); err != nil {
		return nil, errors.Wrap(err, "load multisig")
	}
	return &ms, nil
}

// Update overwrites the registry stored under the given ID.
func (b MultisigBucket) Update(db quorum.KVStore, id []byte, ms *Multisig) error {
	return b.Save(db, orm.NewSimpleObj(id, ms))
}

// TransactionBucket stores proposals under a sequence allocated ID.
type TransactionBucket struct {
	orm.IDGenBucket
}

// NewTransactionBucket returns a bucket for proposals.
func NewTransactionBucket() TransactionBucket {
	b := orm.NewBucket("msigtx", orm.NewSimpleObj(nil, &Transaction{}))
	return TransactionBucket{
		IDGenBucket: orm.NewIDGenBucket(b, "id"),
	}
}

// GetTransaction loads the proposal with the given ID. A missing
// proposal is ErrNotFound.
func (b TransactionBucket) GetTransaction(db quorum.ReadOnlyKVStore, id []byte) (*Transaction, error) {
	var tx Transaction
	if err := b.One(db, id, &tx); err != nil {
		return nil, errors.Wrap(err, "load transaction")
	}
	return &tx, nil
}

// Update overwrites the proposal stored under the given ID.
func (b TransactionBucket) Update(db quorum.KVStore, id []byte, tx *Transaction) error {
	return b.Save(db, orm.NewSimpleObj(id, tx))
}
