package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x"
)

const actionPath = "test/action"

// fixture wires the public router and the action router the way an
// application does.
type fixture struct {
	db      quorum.CacheableKVStore
	auth    *quorumtest.CtxAuth
	public  *app.Router
	actions *app.Router
	action  *actionHandler
	decoder Decoders
	exec    Executor
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	f := &fixture{
		db:      store.MemStore(),
		auth:    &quorumtest.CtxAuth{Key: "auth"},
		public:  app.NewRouter(),
		actions: app.NewRouter(),
		action:  &actionHandler{},
		decoder: ActionDecoders(),
	}
	f.decoder[actionPath] = DecodeAs(func() quorum.Msg {
		return &quorumtest.Msg{RoutePath: actionPath}
	})
	f.actions.Handle(actionPath, f.action)
	RegisterActions(f.actions)
	f.exec = HandlerExecutor(f.actions, f.decoder, x.ChainAuth(Authenticate{}, f.auth))
	RegisterRoutes(f.public, f.auth, f.exec)
	return f
}

func (f *fixture) ctx(signers ...quorum.Condition) quorum.Context {
	return f.auth.SetConditions(context.Background(), signers...)
}

func (f *fixture) deliver(signer quorum.Condition, msg quorum.Msg) (*quorum.DeliverResult, error) {
	var signers []quorum.Condition
	if signer != nil {
		signers = append(signers, signer)
	}
	return f.public.Deliver(f.ctx(signers...), f.db, &quorumtest.Tx{Msg: msg})
}

func (f *fixture) check(signer quorum.Condition, msg quorum.Msg) (*quorum.CheckResult, error) {
	var signers []quorum.Condition
	if signer != nil {
		signers = append(signers, signer)
	}
	return f.public.Check(f.ctx(signers...), f.db, &quorumtest.Tx{Msg: msg})
}

func (f *fixture) createMultisig(t testing.TB, threshold uint32, owners ...quorum.Condition) []byte {
	t.Helper()
	res, err := f.deliver(nil, &CreateMultisigMsg{
		Owners:    addresses(owners...),
		Threshold: threshold,
	})
	if err != nil {
		t.Fatalf("cannot create multisig: %s", err)
	}
	return res.Data
}

func (f *fixture) propose(t testing.TB, proposer quorum.Condition, multisigID []byte, action *Action) []byte {
	t.Helper()
	res, err := f.deliver(proposer, &CreateTransactionMsg{
		MultisigID: multisigID,
		Action:     action,
	})
	if err != nil {
		t.Fatalf("cannot propose: %s", err)
	}
	return res.Data
}

func (f *fixture) approve(t testing.TB, approver quorum.Condition, txID []byte) {
	t.Helper()
	if _, err := f.deliver(approver, &ApproveMsg{TransactionID: txID}); err != nil {
		t.Fatalf("cannot approve: %s", err)
	}
}

func (f *fixture) execute(txID []byte) error {
	_, err := f.deliver(nil, &ExecuteTransactionMsg{TransactionID: txID})
	return err
}

func (f *fixture) multisig(t testing.TB, id []byte) *Multisig {
	t.Helper()
	ms, err := NewMultisigBucket().GetMultisig(f.db, id)
	if err != nil {
		t.Fatalf("cannot load multisig: %s", err)
	}
	return ms
}

func (f *fixture) transaction(t testing.TB, id []byte) *Transaction {
	t.Helper()
	tx, err := NewTransactionBucket().GetTransaction(f.db, id)
	if err != nil {
		t.Fatalf("cannot load transaction: %s", err)
	}
	return tx
}

// testAction returns an action routed to the fixture action handler.
func testAction(t testing.TB, participants ...*Participant) *Action {
	t.Helper()
	action, err := NewAction(&quorumtest.Msg{
		RoutePath:  actionPath,
		Serialized: []byte("payload"),
	}, participants...)
	if err != nil {
		t.Fatalf("cannot create action: %s", err)
	}
	return action
}

// msgAction returns an action delivering the given message.
func msgAction(t testing.TB, msg quorum.Msg, participants ...*Participant) *Action {
	t.Helper()
	action, err := NewAction(msg, participants...)
	if err != nil {
		t.Fatalf("cannot create action: %s", err)
	}
	return action
}

func addresses(conds ...quorum.Condition) []quorum.Address {
	res := make([]quorum.Address, len(conds))
	for i, c := range conds {
		res[i] = c.Address()
	}
	return res
}

func approvals(tx *Transaction) []bool {
	res := make([]bool, len(tx.Approvals))
	for i, a := range tx.Approvals {
		res[i] = a.Approved
	}
	return res
}

// actionHandler is the handler of the test action. Each delivery writes a
// marker to the store before returning the configured error.
type actionHandler struct {
	calls int
	err   error
	// authorities holds the authorities authenticated during the last
	// delivery.
	authorities []quorum.Condition
}

var _ quorum.Handler = (*actionHandler)(nil)

var actionMarker = []byte("_test:action")

func (h *actionHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return &quorum.CheckResult{}, nil
}

func (h *actionHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h.calls++
	h.authorities = Authenticate{}.GetConditions(ctx)
	if err := db.Set(actionMarker, []byte{byte(h.calls)}); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &quorum.DeliverResult{}, nil
}
