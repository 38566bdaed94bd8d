/*
Package x holds what every extension shares: the Authenticator through
which handlers learn who signed a request, and small validation helpers.
*/
package x

import (
	"github.com/iov-one/quorum"
)

// Authenticator reports the conditions a request satisfies, such as the
// public keys that signed it or the Execution Authority of a multisig
// registry. Handlers take one in their constructor so the source of the
// conditions can be swapped.
type Authenticator interface {
	GetConditions(ctx quorum.Context) []quorum.Condition
	HasAddress(ctx quorum.Context, addr quorum.Address) bool
}

// ChainAuth returns an Authenticator satisfied by any of auths.
func ChainAuth(auths ...Authenticator) Authenticator {
	return multiAuth(auths)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	var conds []quorum.Condition
	for _, a := range m {
		conds = append(conds, a.GetConditions(ctx)...)
	}
	return conds
}

func (m multiAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition reported by auth, or nil. It
// is the identity of the proposer or approver of a request.
func MainSigner(ctx quorum.Context, auth Authenticator) quorum.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

// HasAllAddresses reports whether every address is authenticated.
func HasAllAddresses(ctx quorum.Context, auth Authenticator, addrs []quorum.Address) bool {
	for _, a := range addrs {
		if !auth.HasAddress(ctx, a) {
			return false
		}
	}
	return true
}
