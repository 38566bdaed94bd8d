package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x"
	common "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	tagMultisig    = "multisig"
	tagTransaction = "multisig_tx"
	tagAction      = "action"
)

// RegisterRoutes registers the public handlers of this package. The
// executor performs the actions of approved transactions.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, exec Executor) {
	msigs := NewMultisigBucket()
	txs := NewTransactionBucket()
	r.Handle(pathCreateMultisigMsg, CreateMultisigHandler{msigs: msigs})
	r.Handle(pathCreateTransactionMsg, CreateTransactionHandler{auth: auth, msigs: msigs, txs: txs})
	r.Handle(pathApproveMsg, ApproveHandler{auth: auth, msigs: msigs, txs: txs})
	r.Handle(pathExecuteMsg, ExecuteTransactionHandler{msigs: msigs, txs: txs, exec: exec})
	r.Handle(pathDeleteTransactionMsg, DeleteTransactionHandler{auth: auth, txs: txs})
}

// RegisterActions registers the handlers that only an executed
// transaction may reach. The registry must be the handler given to the
// executor and never the public router.
func RegisterActions(r quorum.Registry) {
	msigs := NewMultisigBucket()
	r.Handle(pathSetOwnersMsg, SetOwnersHandler{msigs: msigs})
	r.Handle(pathCloseMultisigMsg, CloseMultisigHandler{msigs: msigs})
}

// ActionDecoders returns the decoders of messages registered by
// RegisterActions.
func ActionDecoders() Decoders {
	return Decoders{
		pathSetOwnersMsg:     DecodeAs(func() quorum.Msg { return &SetOwnersMsg{} }),
		pathCloseMultisigMsg: DecodeAs(func() quorum.Msg { return &CloseMultisigMsg{} }),
	}
}

func logger(ctx quorum.Context) log.Logger {
	return quorum.GetLogger(ctx).With("module", "multisig")
}

func tags(action string, kv ...common.KVPair) []common.KVPair {
	return append(kv, common.KVPair{Key: []byte(tagAction), Value: []byte(action)})
}

// CreateMultisigHandler creates registries.
type CreateMultisigHandler struct {
	msigs MultisigBucket
}

var _ quorum.Handler = CreateMultisigHandler{}

func (h CreateMultisigHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h CreateMultisigHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ms := &Multisig{
		Owners:    cloneAddresses(msg.Owners),
		Threshold: msg.Threshold,
		Nonce:     msg.Nonce,
	}
	obj, err := h.msigs.Create(db, ms)
	if err != nil {
		return nil, errors.Wrap(err, "cannot save multisig")
	}
	multisigsCreated.Inc()
	logger(ctx).Info("multisig created",
		"multisig", orm.DecodeSequence(obj.Key()),
		"owners", len(ms.Owners),
		"threshold", ms.Threshold)
	return &quorum.DeliverResult{
		Data: obj.Key(),
		Tags: tags("create", common.KVPair{Key: []byte(tagMultisig), Value: obj.Key()}),
	}, nil
}

func (h CreateMultisigHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*CreateMultisigMsg, error) {
	var msg CreateMultisigMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := checkOwnersLimit(db, len(msg.Owners)); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreateTransactionHandler creates transactions proposed by an owner.
type CreateTransactionHandler struct {
	auth  x.Authenticator
	msigs MultisigBucket
	txs   TransactionBucket
}

var _ quorum.Handler = CreateTransactionHandler{}

func (h CreateTransactionHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h CreateTransactionHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, ms, proposer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	mtx := NewTransaction(msg.MultisigID, ms, msg.Action, proposer)
	obj, err := h.txs.Create(db, mtx)
	if err != nil {
		return nil, errors.Wrap(err, "cannot save transaction")
	}
	transactionsProposed.Inc()
	logger(ctx).Info("transaction proposed",
		"multisig", orm.DecodeSequence(msg.MultisigID),
		"transaction", orm.DecodeSequence(obj.Key()),
		"target", msg.Action.Target,
		"proposer", proposer)
	return &quorum.DeliverResult{
		Data: obj.Key(),
		Tags: tags("propose",
			common.KVPair{Key: []byte(tagMultisig), Value: msg.MultisigID},
			common.KVPair{Key: []byte(tagTransaction), Value: obj.Key()}),
	}, nil
}

func (h CreateTransactionHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*CreateTransactionMsg, *Multisig, quorum.Address, error) {
	var msg CreateTransactionMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	ms, err := h.msigs.GetMultisig(db, msg.MultisigID)
	if err != nil {
		return nil, nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	proposer := signer.Address()
	if !ms.HasOwner(proposer) {
		return nil, nil, nil, errors.Wrapf(ErrInvalidOwner, "proposer %s", proposer)
	}
	return &msg, ms, proposer, nil
}

// ApproveHandler marks the approval of an owner.
type ApproveHandler struct {
	auth  x.Authenticator
	msigs MultisigBucket
	txs   TransactionBucket
}

var _ quorum.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, mtx, approver, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	mtx.Approve(approver)
	if err := h.txs.Update(db, msg.TransactionID, mtx); err != nil {
		return nil, errors.Wrap(err, "cannot save transaction")
	}
	transactionsApproved.Inc()
	logger(ctx).Debug("transaction approved",
		"transaction", orm.DecodeSequence(msg.TransactionID),
		"approver", approver)
	return &quorum.DeliverResult{
		Tags: tags("approve", common.KVPair{Key: []byte(tagTransaction), Value: msg.TransactionID}),
	}, nil
}

func (h ApproveHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*ApproveMsg, *Transaction, quorum.Address, error) {
	var msg ApproveMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	mtx, err := h.txs.GetTransaction(db, msg.TransactionID)
	if err != nil {
		return nil, nil, nil, err
	}
	ms, err := h.msigs.GetMultisig(db, mtx.MultisigID)
	if err != nil {
		return nil, nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	approver := signer.Address()
	if !ms.HasOwner(approver) {
		return nil, nil, nil, errors.Wrapf(ErrInvalidOwner, "approver %s", approver)
	}
	// Owners added after the proposal was created cannot approve it.
	if mtx.approval(approver) == nil {
		return nil, nil, nil, errors.Wrapf(ErrInvalidOwner, "approver %s not an owner at proposal time", approver)
	}
	return &msg, mtx, approver, nil
}

// ExecuteTransactionHandler executes approved transactions. Anyone may
// submit the execution.
type ExecuteTransactionHandler struct {
	msigs MultisigBucket
	txs   TransactionBucket
	exec  Executor
}

var _ quorum.Handler = ExecuteTransactionHandler{}

func (h ExecuteTransactionHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

// Deliver marks the transaction executed and performs its action as the
// registry Execution Authority. Both happen in a cache wrap that is only
// written when the action succeeds, so a failed action can be retried.
func (h ExecuteTransactionHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, mtx, ms, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	cache := cacheWrap(db)
	mtx.Executed = true
	if err := h.txs.Update(cache, msg.TransactionID, mtx); err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "cannot save transaction")
	}
	authority := AuthorityCondition(mtx.MultisigID, ms.Nonce)
	action := signAsAuthority(mtx.Action, authority.Address())
	err = h.exec(withAuthority(ctx, authority), cache, action)
	observeExecution(err)
	if err != nil {
		cache.Discard()
		logger(ctx).Info("transaction execution failed",
			"transaction", orm.DecodeSequence(msg.TransactionID),
			"target", action.Target,
			"err", err)
		return nil, errors.Wrap(err, "execute action")
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write execution")
	}

	logger(ctx).Info("transaction executed",
		"multisig", orm.DecodeSequence(mtx.MultisigID),
		"transaction", orm.DecodeSequence(msg.TransactionID),
		"target", action.Target)
	return &quorum.DeliverResult{
		Tags: tags("execute",
			common.KVPair{Key: []byte(tagMultisig), Value: mtx.MultisigID},
			common.KVPair{Key: []byte(tagTransaction), Value: msg.TransactionID}),
	}, nil
}

func (h ExecuteTransactionHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*ExecuteTransactionMsg, *Transaction, *Multisig, error) {
	var msg ExecuteTransactionMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	mtx, err := h.txs.GetTransaction(db, msg.TransactionID)
	if err != nil {
		return nil, nil, nil, err
	}
	if mtx.Executed {
		return nil, nil, nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %X", msg.TransactionID)
	}
	ms, err := h.msigs.GetMultisig(db, mtx.MultisigID)
	if err != nil {
		return nil, nil, nil, err
	}
	approvals, err := mtx.ApprovalCount()
	if err != nil {
		return nil, nil, nil, err
	}
	if approvals < ms.Threshold {
		return nil, nil, nil, errors.Wrapf(ErrNotEnoughSigners, "%d approvals, threshold %d", approvals, ms.Threshold)
	}
	return &msg, mtx, ms, nil
}

func cacheWrap(db quorum.KVStore) quorum.KVCacheWrap {
	if c, ok := db.(quorum.CacheableKVStore); ok {
		return c.CacheWrap()
	}
	return store.BTreeCacheable{KVStore: db}.CacheWrap()
}

// DeleteTransactionHandler allows the proposer to withdraw a transaction
// no other owner approved.
type DeleteTransactionHandler struct {
	auth x.Authenticator
	txs  TransactionBucket
}

var _ quorum.Handler = DeleteTransactionHandler{}

func (h DeleteTransactionHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h DeleteTransactionHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.txs.Delete(db, msg.TransactionID); err != nil {
		return nil, errors.Wrap(err, "cannot delete transaction")
	}
	logger(ctx).Info("transaction deleted", "transaction", orm.DecodeSequence(msg.TransactionID))
	return &quorum.DeliverResult{
		Tags: tags("delete_tx", common.KVPair{Key: []byte(tagTransaction), Value: msg.TransactionID}),
	}, nil
}

func (h DeleteTransactionHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*DeleteTransactionMsg, error) {
	var msg DeleteTransactionMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	mtx, err := h.txs.GetTransaction(db, msg.TransactionID)
	if err != nil {
		return nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil || !signer.Address().Equals(mtx.Proposer) {
		return nil, errors.Wrap(ErrUnableToDelete, "only the proposer can delete")
	}
	if mtx.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %X", msg.TransactionID)
	}
	for _, a := range mtx.Approvals {
		if a.Approved && !a.Owner.Equals(mtx.Proposer) {
			return nil, errors.Wrapf(ErrTransactionSigned, "approved by %s", a.Owner)
		}
	}
	return &msg, nil
}

// SetOwnersHandler replaces the owners of a registry. It requires the
// Execution Authority of that registry.
type SetOwnersHandler struct {
	msigs MultisigBucket
}

var _ quorum.Handler = SetOwnersHandler{}

func (h SetOwnersHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h SetOwnersHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, ms, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ms.SetOwners(msg.Owners)
	if err := h.msigs.Update(db, msg.MultisigID, ms); err != nil {
		return nil, errors.Wrap(err, "cannot save multisig")
	}
	logger(ctx).Info("multisig owners changed",
		"multisig", orm.DecodeSequence(msg.MultisigID),
		"owners", len(ms.Owners),
		"threshold", ms.Threshold)
	return &quorum.DeliverResult{
		Tags: tags("set_owners", common.KVPair{Key: []byte(tagMultisig), Value: msg.MultisigID}),
	}, nil
}

func (h SetOwnersHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*SetOwnersMsg, *Multisig, error) {
	var msg SetOwnersMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ms, err := loadAsAuthority(ctx, db, h.msigs, msg.MultisigID)
	if err != nil {
		return nil, nil, err
	}
	if err := checkOwnersLimit(db, len(msg.Owners)); err != nil {
		return nil, nil, err
	}
	return &msg, ms, nil
}

// CloseMultisigHandler deletes a registry. It requires the Execution
// Authority of that registry.
type CloseMultisigHandler struct {
	msigs MultisigBucket
}

var _ quorum.Handler = CloseMultisigHandler{}

func (h CloseMultisigHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h CloseMultisigHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.msigs.Delete(db, msg.MultisigID); err != nil {
		return nil, errors.Wrap(err, "cannot delete multisig")
	}
	logger(ctx).Info("multisig closed", "multisig", orm.DecodeSequence(msg.MultisigID))
	return &quorum.DeliverResult{
		Tags: tags("close", common.KVPair{Key: []byte(tagMultisig), Value: msg.MultisigID}),
	}, nil
}

func (h CloseMultisigHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*CloseMultisigMsg, error) {
	var msg CloseMultisigMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := loadAsAuthority(ctx, db, h.msigs, msg.MultisigID); err != nil {
		return nil, err
	}
	return &msg, nil
}

// loadAsAuthority returns the registry if its Execution Authority is
// authenticated.
func loadAsAuthority(ctx quorum.Context, db quorum.KVStore, msigs MultisigBucket, id []byte) (*Multisig, error) {
	ms, err := msigs.GetMultisig(db, id)
	if err != nil {
		return nil, err
	}
	if !(Authenticate{}).HasAddress(ctx, AuthorityAddress(id, ms.Nonce)) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "multisig authority required")
	}
	return ms, nil
}
