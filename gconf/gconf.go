package gconf

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Configuration is the settings object of one package.
type Configuration interface {
	quorum.Persistent
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db quorum.KVStore, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := conf.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %s configuration: %s", pkg, err)
	}
	return db.Set(key(pkg), raw)
}

// Load reads the configuration of pkg into dst. It fails with
// ErrNotFound when none was saved.
func Load(db quorum.ReadOnlyKVStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(err, "load %s configuration", pkg)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig saves the genesis entry conf.<pkg> as the configuration of
// pkg. It fails with ErrNotFound when the genesis has no such entry and
// with ErrInput when the entry cannot be decoded.
func InitConfig(db quorum.KVStore, opts quorum.Options, pkg string, conf Configuration) error {
	var all quorum.Options
	if err := opts.ReadOptions("conf", &all); err != nil {
		return errors.Wrapf(errors.ErrInput, "conf: %s", err)
	}
	if _, ok := all[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis conf.%s", pkg)
	}
	if err := all.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "conf.%s: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
