package x

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ValidateAddresses checks that every address is well formed and that no
// address is listed twice.
func ValidateAddresses(addrs []quorum.Address) error {
	seen := make(map[string]struct{}, len(addrs))
	for i, a := range addrs {
		if err := a.Validate(); err != nil {
			return errors.Wrapf(err, "address %d", i)
		}
		if _, ok := seen[string(a)]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "address %s", a)
		}
		seen[string(a)] = struct{}{}
	}
	return nil
}
