package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Genesis is the subset of a tendermint genesis document the engine
// reads: the chain id and the per-extension app_state.
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	AppState quorum.Options `json:"app_state"`
}

// LoadGenesis decodes the genesis document at path.
func LoadGenesis(path string) (Genesis, error) {
	var g Genesis
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return g, errors.Wrapf(errors.ErrInput, "read genesis %q: %s", path, err)
	}
	if err := json.Unmarshal(raw, &g); err != nil {
		return g, errors.Wrapf(errors.ErrInput, "decode genesis %q: %s", path, err)
	}
	return g, nil
}

// The chain id lives under a reserved key outside every bucket prefix.
var chainIDKey = []byte("_app:chain_id")

func loadChainID(db quorum.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	return string(raw), err
}

// saveChainID records the chain id once. A second call fails with
// ErrImmutable.
func saveChainID(db quorum.KVStore, chainID string) error {
	if !quorum.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	ok, err := db.Has(chainIDKey)
	if err != nil {
		return err
	}
	if ok {
		return errors.Wrap(errors.ErrImmutable, "chain id already set")
	}
	return db.Set(chainIDKey, []byte(chainID))
}
