package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

const packageName = "multisig"

// Configuration holds the chain wide settings of the multisig extension.
type Configuration struct {
	// MaxOwners lowers the greatest number of owners a registry can
	// hold. It cannot exceed the hard limit of 100 owners.
	MaxOwners uint32 `protobuf:"varint,1,opt,name=max_owners,json=maxOwners,proto3" json:"max_owners"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if c.MaxOwners == 0 || c.MaxOwners > maxOwners {
		return errors.Wrapf(errors.ErrInput, "max owners must be in range 1..%d", maxOwners)
	}
	return nil
}

// loadConf returns the stored configuration, or the default one if none
// was stored at genesis.
func loadConf(db quorum.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, packageName, &conf); {
	case errors.ErrNotFound.Is(err):
		return &Configuration{MaxOwners: maxOwners}, nil
	case err != nil:
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// checkOwnersLimit returns ErrInvalidOwner if the number of owners
// exceeds the configured maximum.
func checkOwnersLimit(db quorum.ReadOnlyKVStore, owners int) error {
	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if int64(owners) > int64(conf.MaxOwners) {
		return errors.Wrapf(ErrInvalidOwner, "%d owners, max %d", owners, conf.MaxOwners)
	}
	return nil
}
