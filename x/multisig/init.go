package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis stores the "multisig" configuration of the "conf" section,
// if present, and creates the registries listed under the "multisig" key.
// Registries are assigned IDs in the order they are listed.
func (*Initializer) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	err := gconf.InitConfig(kv, opts, packageName, &Configuration{})
	if err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}

	var registries []struct {
		Owners    []quorum.Address `json:"owners"`
		Threshold uint32           `json:"threshold"`
		Nonce     uint32           `json:"nonce"`
	}
	if err := opts.ReadOptions(packageName, &registries); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	bucket := NewMultisigBucket()
	for i, r := range registries {
		ms := Multisig{
			Owners:    r.Owners,
			Threshold: r.Threshold,
			Nonce:     r.Nonce,
		}
		if err := ms.Validate(); err != nil {
			return errors.Wrapf(err, "multisig #%d", i)
		}
		if err := checkOwnersLimit(kv, len(ms.Owners)); err != nil {
			return errors.Wrapf(err, "multisig #%d", i)
		}
		if _, err := bucket.Create(kv, &ms); err != nil {
			return errors.Wrapf(err, "cannot save #%d multisig", i)
		}
	}
	return nil
}
