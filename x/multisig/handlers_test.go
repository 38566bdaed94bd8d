package multisig

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestCreateMultisig(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()

	cases := map[string]struct {
		msg     *CreateMultisigMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg:     &CreateMultisigMsg{Owners: addresses(a, b, c), Threshold: 2, Nonce: 255},
			wantErr: nil,
		},
		"single owner": {
			msg:     &CreateMultisigMsg{Owners: addresses(a), Threshold: 1},
			wantErr: nil,
		},
		"no owners": {
			msg:     &CreateMultisigMsg{Threshold: 1},
			wantErr: ErrInvalidOwner,
		},
		"duplicated owner": {
			msg:     &CreateMultisigMsg{Owners: addresses(a, b, a), Threshold: 1},
			wantErr: ErrInvalidOwner,
		},
		"malformed owner": {
			msg:     &CreateMultisigMsg{Owners: []quorum.Address{a.Address(), quorum.Address("short")}, Threshold: 1},
			wantErr: ErrInvalidOwner,
		},
		"zero threshold": {
			msg:     &CreateMultisigMsg{Owners: addresses(a, b), Threshold: 0},
			wantErr: ErrInvalidThreshold,
		},
		"threshold greater than owners": {
			msg:     &CreateMultisigMsg{Owners: addresses(a, b), Threshold: 3},
			wantErr: ErrInvalidThreshold,
		},
		"nonce out of range": {
			msg:     &CreateMultisigMsg{Owners: addresses(a, b), Threshold: 1, Nonce: 256},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)

			if _, err := f.check(nil, tc.msg); !tc.wantErr.Is(err) {
				t.Fatalf("check: want %q, got %+v", tc.wantErr, err)
			}
			res, err := f.deliver(nil, tc.msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("deliver: want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				ok, err := NewMultisigBucket().Has(f.db, quorumtest.SequenceID(1))
				assert.Nil(t, err)
				assert.Equal(t, false, ok)
				return
			}

			assert.Equal(t, quorumtest.SequenceID(1), res.Data)
			ms := f.multisig(t, res.Data)
			assert.Equal(t, tc.msg.Owners, ms.Owners)
			assert.Equal(t, tc.msg.Threshold, ms.Threshold)
			assert.Equal(t, tc.msg.Nonce, ms.Nonce)
		})
	}
}

func TestCreateMultisigNeverReusesID(t *testing.T) {
	a := quorumtest.NewCondition()
	f := newFixture(t)

	first := f.createMultisig(t, 1, a)
	closeMultisig(t, f, a, first)
	second := f.createMultisig(t, 1, a)

	assert.Equal(t, quorumtest.SequenceID(1), first)
	assert.Equal(t, quorumtest.SequenceID(2), second)
}

func TestPropose(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()
	stranger := quorumtest.NewCondition()

	cases := map[string]struct {
		signer        quorum.Condition
		multisigID    []byte
		action        func(t testing.TB) *Action
		wantErr       *errors.Error
		wantApprovals []bool
	}{
		"proposer approves its own transaction": {
			signer:        b,
			multisigID:    quorumtest.SequenceID(1),
			action:        func(t testing.TB) *Action { return testAction(t) },
			wantApprovals: []bool{false, true, false},
		},
		"stranger cannot propose": {
			signer:     stranger,
			multisigID: quorumtest.SequenceID(1),
			action:     func(t testing.TB) *Action { return testAction(t) },
			wantErr:    ErrInvalidOwner,
		},
		"signature required": {
			signer:     nil,
			multisigID: quorumtest.SequenceID(1),
			action:     func(t testing.TB) *Action { return testAction(t) },
			wantErr:    errors.ErrUnauthorized,
		},
		"unknown multisig": {
			signer:     a,
			multisigID: quorumtest.SequenceID(7),
			action:     func(t testing.TB) *Action { return testAction(t) },
			wantErr:    errors.ErrNotFound,
		},
		"missing action": {
			signer:     a,
			multisigID: quorumtest.SequenceID(1),
			action:     func(testing.TB) *Action { return nil },
			wantErr:    errors.ErrEmpty,
		},
		"malformed target": {
			signer:     a,
			multisigID: quorumtest.SequenceID(1),
			action:     func(testing.TB) *Action { return &Action{Target: "no spaces allowed"} },
			wantErr:    errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			f.createMultisig(t, 2, a, b, c)

			msg := &CreateTransactionMsg{MultisigID: tc.multisigID, Action: tc.action(t)}
			res, err := f.deliver(tc.signer, msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr != nil {
				ok, err := NewTransactionBucket().Has(f.db, quorumtest.SequenceID(1))
				assert.Nil(t, err)
				assert.Equal(t, false, ok)
				return
			}

			mtx := f.transaction(t, res.Data)
			assert.Equal(t, tc.wantApprovals, approvals(mtx))
			assert.Equal(t, false, mtx.Executed)
			assert.Equal(t, tc.multisigID, mtx.MultisigID)
			assert.Equal(t, tc.signer.Address(), mtx.Proposer)
		})
	}
}

func TestApprove(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()
	stranger := quorumtest.NewCondition()

	cases := map[string]struct {
		approvers     []quorum.Condition
		txID          []byte
		wantErr       *errors.Error
		wantApprovals []bool
	}{
		"owner approves": {
			approvers:     []quorum.Condition{c},
			txID:          quorumtest.SequenceID(1),
			wantApprovals: []bool{true, false, true},
		},
		"approving twice is idempotent": {
			approvers:     []quorum.Condition{a, a},
			txID:          quorumtest.SequenceID(1),
			wantApprovals: []bool{true, false, false},
		},
		"non owner cannot approve": {
			approvers:     []quorum.Condition{stranger},
			txID:          quorumtest.SequenceID(1),
			wantErr:       ErrInvalidOwner,
			wantApprovals: []bool{true, false, false},
		},
		"signature required": {
			approvers:     []quorum.Condition{nil},
			txID:          quorumtest.SequenceID(1),
			wantErr:       errors.ErrUnauthorized,
			wantApprovals: []bool{true, false, false},
		},
		"unknown transaction": {
			approvers:     []quorum.Condition{b},
			txID:          quorumtest.SequenceID(9),
			wantErr:       errors.ErrNotFound,
			wantApprovals: []bool{true, false, false},
		},
		"malformed transaction id": {
			approvers:     []quorum.Condition{b},
			txID:          []byte{1},
			wantErr:       errors.ErrInput,
			wantApprovals: []bool{true, false, false},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			msID := f.createMultisig(t, 2, a, b, c)
			txID := f.propose(t, a, msID, testAction(t))

			var err error
			for _, approver := range tc.approvers {
				_, err = f.deliver(approver, &ApproveMsg{TransactionID: tc.txID})
			}
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			assert.Equal(t, tc.wantApprovals, approvals(f.transaction(t, txID)))
		})
	}
}

func TestTwoOfThreeScenario(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()
	f := newFixture(t)

	msID := f.createMultisig(t, 2, a, b, c)
	txID := f.propose(t, a, msID, testAction(t))
	assert.Equal(t, []bool{true, false, false}, approvals(f.transaction(t, txID)))

	assert.IsErr(t, ErrNotEnoughSigners, f.execute(txID))
	assert.Equal(t, 0, f.action.calls)
	assert.Equal(t, false, f.transaction(t, txID).Executed)

	f.approve(t, b, txID)
	assert.Equal(t, []bool{true, true, false}, approvals(f.transaction(t, txID)))

	if _, err := f.check(nil, &ExecuteTransactionMsg{TransactionID: txID}); err != nil {
		t.Fatalf("check: %s", err)
	}
	assert.Equal(t, 0, f.action.calls)

	assert.Nil(t, f.execute(txID))
	assert.Equal(t, 1, f.action.calls)
	assert.Equal(t, true, f.transaction(t, txID).Executed)

	// A transaction is authorized at most once.
	assert.IsErr(t, ErrAlreadyExecuted, f.execute(txID))
	assert.Equal(t, 1, f.action.calls)
	assert.Equal(t, true, f.transaction(t, txID).Executed)

	// Approving an executed transaction has no effect.
	f.approve(t, c, txID)
	assert.Equal(t, true, f.transaction(t, txID).Executed)
	assert.Equal(t, 1, f.action.calls)
}

func TestExecuteAsAuthority(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	f := newFixture(t)

	res, err := f.deliver(nil, &CreateMultisigMsg{Owners: addresses(a, b), Threshold: 1, Nonce: 7})
	assert.Nil(t, err)
	msID := res.Data
	authority := AuthorityCondition(msID, 7)

	// The authority is named as a writable non signer. Execution turns it
	// into a signer.
	txID := f.propose(t, a, msID, testAction(t, &Participant{
		Address:    authority.Address(),
		IsWritable: true,
	}))
	assert.Nil(t, f.execute(txID))
	assert.Equal(t, []quorum.Condition{authority}, f.action.authorities)

	// Authorities are never present outside of execution.
	assert.Equal(t, 0, len(Authenticate{}.GetConditions(f.ctx(a))))
}

func TestExecuteRequiresParticipantSignatures(t *testing.T) {
	a := quorumtest.NewCondition()
	stranger := quorumtest.NewCondition()
	f := newFixture(t)

	msID := f.createMultisig(t, 1, a)
	txID := f.propose(t, a, msID, testAction(t, &Participant{
		Address:  stranger.Address(),
		IsSigner: true,
	}))

	assert.IsErr(t, errors.ErrUnauthorized, f.execute(txID))
	assert.Equal(t, 0, f.action.calls)
	assert.Equal(t, false, f.transaction(t, txID).Executed)

	// The participant may co-sign the execution.
	_, err := f.deliver(stranger, &ExecuteTransactionMsg{TransactionID: txID})
	assert.Nil(t, err)
	assert.Equal(t, 1, f.action.calls)
}

func TestFailedExecutionIsRetryable(t *testing.T) {
	a := quorumtest.NewCondition()
	f := newFixture(t)

	msID := f.createMultisig(t, 1, a)
	txID := f.propose(t, a, msID, testAction(t))

	f.action.err = errors.Wrap(errors.ErrState, "not yet")
	assert.IsErr(t, errors.ErrState, f.execute(txID))
	assert.Equal(t, false, f.transaction(t, txID).Executed)
	marker, err := f.db.Get(actionMarker)
	assert.Nil(t, err)
	assert.Nil(t, marker)

	f.action.err = nil
	assert.Nil(t, f.execute(txID))
	assert.Equal(t, true, f.transaction(t, txID).Executed)
	marker, err = f.db.Get(actionMarker)
	assert.Nil(t, err)
	assert.Equal(t, []byte{2}, marker)
}

func TestReentrantExecution(t *testing.T) {
	a := quorumtest.NewCondition()
	f := newFixture(t)
	f.actions.Handle(pathExecuteMsg, ExecuteTransactionHandler{
		msigs: NewMultisigBucket(),
		txs:   NewTransactionBucket(),
		exec:  f.exec,
	})
	f.decoder[pathExecuteMsg] = DecodeAs(func() quorum.Msg { return &ExecuteTransactionMsg{} })

	msID := f.createMultisig(t, 1, a)
	txID := f.propose(t, a, msID, msgAction(t, &ExecuteTransactionMsg{TransactionID: quorumtest.SequenceID(1)}))
	assert.Equal(t, quorumtest.SequenceID(1), txID)

	assert.IsErr(t, ErrAlreadyExecuted, f.execute(txID))
	assert.Equal(t, false, f.transaction(t, txID).Executed)
}

func TestExecuteUsesCurrentThreshold(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()
	f := newFixture(t)

	msID := f.createMultisig(t, 3, a, b, c)
	pending := f.propose(t, a, msID, testAction(t))
	f.approve(t, b, pending)
	assert.IsErr(t, ErrNotEnoughSigners, f.execute(pending))

	// Dropping c lowers the threshold to two.
	setOwners(t, f, []quorum.Condition{a, b, c}, msID, a, b)
	ms := f.multisig(t, msID)
	assert.Equal(t, addresses(a, b), ms.Owners)
	assert.Equal(t, uint32(2), ms.Threshold)

	assert.Nil(t, f.execute(pending))
	assert.Equal(t, 1, f.action.calls)
}

func TestApprovalsFollowCapturedOwners(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	c := quorumtest.NewCondition()
	d := quorumtest.NewCondition()
	f := newFixture(t)

	msID := f.createMultisig(t, 2, a, b, c)
	pending := f.propose(t, c, msID, testAction(t))

	setOwners(t, f, []quorum.Condition{a, b}, msID, b, c, d)

	// a is no longer an owner.
	_, err := f.deliver(a, &ApproveMsg{TransactionID: pending})
	assert.IsErr(t, ErrInvalidOwner, err)
	// d was not an owner when the transaction was proposed.
	_, err = f.deliver(d, &ApproveMsg{TransactionID: pending})
	assert.IsErr(t, ErrInvalidOwner, err)
	assert.Equal(t, []bool{false, false, true}, approvals(f.transaction(t, pending)))

	f.approve(t, b, pending)
	assert.Equal(t, []bool{false, true, true}, approvals(f.transaction(t, pending)))
	assert.Nil(t, f.execute(pending))
}

func TestSetOwnersIsNotPublic(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	f := newFixture(t)
	msID := f.createMultisig(t, 1, a)

	msg := &SetOwnersMsg{MultisigID: msID, Owners: addresses(b)}
	_, err := f.deliver(a, msg)
	assert.IsErr(t, errors.ErrNotFound, err)

	// Even when routed, an owner signature is not the authority.
	_, err = SetOwnersHandler{msigs: NewMultisigBucket()}.Deliver(f.ctx(a), f.db, &quorumtest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Nor is the authority of another registry.
	other := f.createMultisig(t, 1, b)
	ctx := withAuthority(f.ctx(b), AuthorityCondition(other, 0))
	_, err = f.actions.Deliver(ctx, f.db, &quorumtest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	assert.Equal(t, addresses(a), f.multisig(t, msID).Owners)
}

func TestSetOwnersRejectsInvalidOwners(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	f := newFixture(t)
	msID := f.createMultisig(t, 2, a, b)

	cases := map[string][]quorum.Address{
		"no owners":        nil,
		"duplicated owner": addresses(a, a),
	}
	for testName, owners := range cases {
		t.Run(testName, func(t *testing.T) {
			ms := f.multisig(t, msID)
			ctx := withAuthority(f.ctx(), AuthorityCondition(msID, ms.Nonce))
			_, err := f.actions.Deliver(ctx, f.db, &quorumtest.Tx{Msg: &SetOwnersMsg{MultisigID: msID, Owners: owners}})
			assert.IsErr(t, ErrInvalidOwner, err)
			assert.Equal(t, addresses(a, b), f.multisig(t, msID).Owners)
		})
	}
}

func TestCloseMultisig(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()
	f := newFixture(t)

	msID := f.createMultisig(t, 1, a, b)
	dangling := f.propose(t, b, msID, testAction(t))

	_, err := f.deliver(a, &CloseMultisigMsg{MultisigID: msID})
	assert.IsErr(t, errors.ErrNotFound, err)

	closeMultisig(t, f, a, msID)

	ok, err := NewMultisigBucket().Has(f.db, msID)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
	assert.IsErr(t, errors.ErrNotFound, f.execute(dangling))
	assert.Equal(t, 0, f.action.calls)
}

func TestDeleteTransaction(t *testing.T) {
	a := quorumtest.NewCondition()
	b := quorumtest.NewCondition()

	cases := map[string]struct {
		prepare func(t testing.TB, f *fixture, txID []byte)
		signer  quorum.Condition
		wantErr *errors.Error
	}{
		"proposer deletes": {
			signer:  a,
			wantErr: nil,
		},
		"only the proposer can delete": {
			signer:  b,
			wantErr: ErrUnableToDelete,
		},
		"signature required": {
			signer:  nil,
			wantErr: ErrUnableToDelete,
		},
		"approved by another owner": {
			prepare: func(t testing.TB, f *fixture, txID []byte) {
				f.approve(t, b, txID)
			},
			signer:  a,
			wantErr: ErrTransactionSigned,
		},
		"executed": {
			prepare: func(t testing.TB, f *fixture, txID []byte) {
				f.approve(t, b, txID)
				if err := f.execute(txID); err != nil {
					t.Fatalf("cannot execute: %s", err)
				}
			},
			signer:  a,
			wantErr: ErrAlreadyExecuted,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			msID := f.createMultisig(t, 2, a, b)
			txID := f.propose(t, a, msID, testAction(t))
			if tc.prepare != nil {
				tc.prepare(t, f, txID)
			}

			_, err := f.deliver(tc.signer, &DeleteTransactionMsg{TransactionID: txID})
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			ok, err := NewTransactionBucket().Has(f.db, txID)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantErr != nil, ok)
		})
	}
}

// setOwners replaces the owners through an executed transaction approved
// by all approvers.
func setOwners(t testing.TB, f *fixture, approvers []quorum.Condition, msID []byte, owners ...quorum.Condition) {
	t.Helper()
	action := msgAction(t, &SetOwnersMsg{MultisigID: msID, Owners: addresses(owners...)})
	txID := f.propose(t, approvers[0], msID, action)
	for _, a := range approvers[1:] {
		f.approve(t, a, txID)
	}
	if err := f.execute(txID); err != nil {
		t.Fatalf("cannot set owners: %s", err)
	}
}

func closeMultisig(t testing.TB, f *fixture, proposer quorum.Condition, msID []byte) {
	t.Helper()
	txID := f.propose(t, proposer, msID, msgAction(t, &CloseMultisigMsg{MultisigID: msID}))
	if err := f.execute(txID); err != nil {
		t.Fatalf("cannot close: %s", err)
	}
}
