package multisig

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

type contextKey int // local to the multisig module

const (
	contextKeyAuthority contextKey = iota
)

// AuthorityCondition returns the Execution Authority of the registry with
// the given ID and derivation nonce. No key exists for this condition. It
// is only ever authenticated while an approved transaction of the
// registry is being executed.
func AuthorityCondition(multisigID []byte, nonce uint32) quorum.Condition {
	seed := make([]byte, 0, len(multisigID)+1)
	seed = append(seed, multisigID...)
	seed = append(seed, byte(nonce))
	return quorum.NewCondition("multisig", "authority", seed)
}

// AuthorityAddress returns the address of the Execution Authority.
func AuthorityAddress(multisigID []byte, nonce uint32) quorum.Address {
	return AuthorityCondition(multisigID, nonce).Address()
}

// withAuthority returns a context authenticating the given authority.
// The most recent authority is the first condition, so that the main
// signer of a nested execution is the innermost registry.
func withAuthority(ctx quorum.Context, cond quorum.Condition) quorum.Context {
	prev, _ := ctx.Value(contextKeyAuthority).([]quorum.Condition)
	conds := make([]quorum.Condition, 0, len(prev)+1)
	conds = append(conds, cond)
	conds = append(conds, prev...)
	return context.WithValue(ctx, contextKeyAuthority, conds)
}

// Authenticate exposes the Execution Authorities of the transactions
// being executed.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the authorities set on this context.
func (Authenticate) GetConditions(ctx quorum.Context) []quorum.Condition {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeyAuthority).([]quorum.Condition)
	return val
}

// HasAddress returns true if the address is one of the authorities.
func (a Authenticate) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
