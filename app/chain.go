package app

import (
	"reflect"

	"github.com/iov-one/quorum"
)

// Decorators is an ordered list of decorators waiting for the handler
// they wrap. The first decorator runs outermost.
type Decorators []quorum.Decorator

// ChainDecorators collects the given decorators, skipping nil ones.
//
//   app.ChainDecorators(
//     utils.NewLogging(),
//     utils.NewRecovery(),
//     sigs.NewDecorator(),
//   ).WithHandler(router)
func ChainDecorators(ds ...quorum.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns a new list with ds appended. The receiver is not modified.
func (d Decorators) Chain(ds ...quorum.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNilDecorator(d quorum.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler wraps h so every call passes through the decorators in
// order before reaching h.
func (d Decorators) WithHandler(h quorum.Handler) quorum.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer binds one decorator to the handler it wraps.
type layer struct {
	dec  quorum.Decorator
	next quorum.Handler
}

var _ quorum.Handler = layer{}

func (l layer) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
