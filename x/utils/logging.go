/*
Package utils provides generic decorators: logging, panic recovery and
savepoints.
*/
package utils

import (
	"time"

	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging records the path, duration and outcome of every message.
// Failures are logged as errors, successful deliveries as info and
// successful checks as debug.
type Logging struct{}

var _ quorum.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := newCallLog(ctx, tx, start)
	if err != nil {
		l.fail(err)
	} else {
		l.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := newCallLog(ctx, tx, start)
	if err != nil {
		l.fail(err)
	} else {
		l.Info(res.Log)
	}
	return res, err
}

type callLog struct {
	log.Logger
}

func newCallLog(ctx quorum.Context, tx quorum.Tx, start time.Time) callLog {
	elapsed := time.Since(start) / time.Microsecond
	return callLog{quorum.GetLogger(ctx).With("path", quorum.GetPath(tx), "duration", elapsed)}
}

func (l callLog) fail(err error) {
	l.Error("message failed", "err", err)
}
