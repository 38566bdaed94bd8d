package app

import (
	"fmt"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// CommitKVStore is a root store that can persist its state.
type CommitKVStore interface {
	quorum.CacheableKVStore

	// Commit persists the current state and returns the new version.
	Commit() (quorum.CommitID, error)

	// LatestVersion returns the last committed version.
	LatestVersion() quorum.CommitID
}

// StoreApp contains a data store and the handler stack that processes
// transactions against it.
//
// Every delivered transaction runs in its own cache wrap, written to the
// block state only when the handler succeeds. Checked transactions run
// against a separate cache that is dropped on every commit.
type StoreApp struct {
	logger log.Logger

	// name is used in the log output
	name string

	store   CommitKVStore
	deliver quorum.KVCacheWrap
	check   quorum.KVCacheWrap

	handler     quorum.Handler
	initializer quorum.Initializer

	chainID string
}

// NewStoreApp initializes this app into a ready state with some defaults.
func NewStoreApp(name string, store CommitKVStore, handler quorum.Handler) (*StoreApp, error) {
	s := &StoreApp{
		name:    name,
		store:   store,
		deliver: store.CacheWrap(),
		check:   store.CacheWrap(),
		handler: handler,
		logger:  log.NewNopLogger(),
	}
	chainID, err := loadChainID(s.deliver)
	if err != nil {
		return nil, errors.Wrap(err, "load chain id")
	}
	s.chainID = chainID
	return s, nil
}

// WithInit is used to set the init function we call
func (s *StoreApp) WithInit(init quorum.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithLogger sets the logger on the StoreApp and returns it,
// to make it easy to chain in initialization
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger.With("app", s.name)
	return s
}

// ChainID returns the chain id set at genesis.
func (s *StoreApp) ChainID() string {
	return s.chainID
}

// InitChain stores the chain id and loads the application state from the
// genesis. It can be called only once in the lifetime of the store.
func (s *StoreApp) InitChain(gen Genesis) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "app state previously loaded for chain %s", s.chainID)
	}
	if err := saveChainID(s.deliver, gen.ChainID); err != nil {
		return err
	}
	if s.initializer != nil {
		if err := s.initializer.FromGenesis(gen.AppState, s.deliver); err != nil {
			return errors.Wrap(err, "initialize from genesis")
		}
	}
	s.chainID = gen.ChainID
	s.logger.Info("Chain initialized", "chain_id", gen.ChainID)
	return nil
}

// context returns the base context shared by all transactions.
func (s *StoreApp) context(ctx quorum.Context) quorum.Context {
	ctx = quorum.WithLogInfo(quorum.WithLogger(ctx, s.logger), "chain_id", s.chainID)
	if s.chainID != "" {
		ctx = quorum.WithChainID(ctx, s.chainID)
	}
	return ctx
}

// CheckTx validates the transaction against the check state.
func (s *StoreApp) CheckTx(ctx quorum.Context, tx quorum.Tx) (*quorum.CheckResult, error) {
	cache := s.check.CacheWrap()
	res, err := s.handler.Check(s.context(ctx), cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write check state")
	}
	return res, nil
}

// DeliverTx processes the transaction. State changes are kept only when
// the handler succeeds.
func (s *StoreApp) DeliverTx(ctx quorum.Context, tx quorum.Tx) (*quorum.DeliverResult, error) {
	cache := s.deliver.CacheWrap()
	res, err := s.handler.Deliver(s.context(ctx), cache, tx)
	if err != nil {
		cache.Discard()
		s.logger.Debug("Deliver failed", "path", quorum.GetPath(tx), "err", err)
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "write deliver state")
	}
	return res, nil
}

// Commit writes the block state to the underlying store and resets the
// check state.
func (s *StoreApp) Commit() (quorum.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return quorum.CommitID{}, errors.Wrap(err, "write block state")
	}
	id, err := s.store.Commit()
	if err != nil {
		return quorum.CommitID{}, err
	}
	s.deliver = s.store.CacheWrap()
	s.check.Discard()
	s.check = s.store.CacheWrap()

	s.logger.Info("Commit synced", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return id, nil
}

// LatestVersion returns the last committed version of the store.
func (s *StoreApp) LatestVersion() quorum.CommitID {
	return s.store.LatestVersion()
}

// DeliverStore returns the current block state.
func (s *StoreApp) DeliverStore() quorum.CacheableKVStore {
	return s.deliver
}
