package quorum

import (
	"encoding/json"

	common "github.com/tendermint/tendermint/libs/common"
)

// Handler processes the messages of one route, for example
// "multisig/approve". Check only validates, Deliver also writes.
type Handler interface {
	Checker
	Deliverer
}

// Checker is the validating half of a Handler.
type Checker interface {
	Check(ctx Context, db KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is the executing half of a Handler.
type Deliverer interface {
	Deliver(ctx Context, db KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs before a Handler, for example to verify signatures and
// put the signers on the context. It decides whether next is called.
type Decorator interface {
	Check(ctx Context, db KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, db KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(path string, h Handler)
}

// CheckResult is returned by a successful Check.
type CheckResult struct {
	// Data is a machine readable value, such as the ID of a record.
	Data []byte
	// Log is a human readable note.
	Log string
}

// DeliverResult is returned by a successful Deliver.
type DeliverResult struct {
	// Data is a machine readable value, such as the ID of a record.
	Data []byte
	// Log is a human readable note.
	Log string
	// Tags index the transaction by the records it touched.
	Tags []common.KVPair
}

// Options is the application state of a genesis file. Every extension
// reads the entry under its own name.
type Options map[string]json.RawMessage

// ReadOptions decodes the entry under key into obj. A missing entry
// leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// ChainInitializers returns an Initializer calling all of inits in
// order and stopping at the first failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (in initializers) FromGenesis(opts Options, db KVStore) error {
	for _, i := range in {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
