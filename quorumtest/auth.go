package quorumtest

import (
	"context"
	"fmt"

	"github.com/iov-one/quorum"
)

// Auth authenticates a fixed set of conditions. Signer, when set, is
// reported after Signers.
type Auth struct {
	Signer  quorum.Condition
	Signers []quorum.Condition
}

func (a *Auth) GetConditions(quorum.Context) []quorum.Condition {
	conds := append([]quorum.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the conditions stored on the context under Key.
// Use distinct keys to mimic independent authenticators, for example
// signatures and the multisig Execution Authority.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context authenticating conds. Conditions set
// earlier under the same key are replaced.
func (a *CtxAuth) SetConditions(ctx quorum.Context, conds ...quorum.Condition) quorum.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []quorum.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []quorum.Condition, addr quorum.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
