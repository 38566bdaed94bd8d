package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Recovery converts a panic raised further down the stack into an
// ErrPanic error and logs it together with the message path.
type Recovery struct{}

var _ quorum.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (r Recovery) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (res *quorum.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, panicked(ctx, tx, p)
		}
	}()
	return next.Check(ctx, db, tx)
}

func (r Recovery) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (res *quorum.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, panicked(ctx, tx, p)
		}
	}()
	return next.Deliver(ctx, db, tx)
}

func panicked(ctx quorum.Context, tx quorum.Tx, p interface{}) error {
	err := errors.Wrapf(errors.ErrPanic, "%v", p)
	quorum.GetLogger(ctx).Error("recovered from panic", "path", quorum.GetPath(tx), "err", err)
	return err
}
