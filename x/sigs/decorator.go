/*
Package sigs verifies the ed25519 signatures of a transaction and keeps a
per signer sequence that protects against replays. The verified signers
are exposed through Authenticate.
*/
package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Decorator verifies signatures before passing the transaction on.
// Transactions that do not implement SignedTx pass unchanged.
type Decorator struct {
	optional bool
}

var _ quorum.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects signed transactions
// carrying no signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets transactions without signatures through.
func (d Decorator) AllowMissingSigs() Decorator {
	d.optional = true
	return d
}

func (d Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (quorum.Context, error) {
	signed, ok := tx.(SignedTx)
	if !ok {
		return ctx, nil
	}
	signers, err := VerifyTxSignatures(db, signed, quorum.GetChainID(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "verify signatures")
	}
	if len(signers) == 0 && !d.optional {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	quorum.GetLogger(ctx).Debug("signatures verified", "path", quorum.GetPath(tx), "signers", len(signers))
	return withSigners(ctx, signers), nil
}
