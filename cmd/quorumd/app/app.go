/*
Package app wires the multisig engine into a runnable application: the
decorator chain, the public router, the action router used by executed
transactions and the iavl backed store.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/multisig"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/iov-one/quorum/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Authenticator returns the authentication of public messages: the
// verified signatures of the transaction.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Executor returns the executor of approved actions. Actions can only
// reach the routes registered by multisig.RegisterActions, and are
// authenticated by the Execution Authority of their multisig together
// with the signatures of the enclosing transaction.
func Executor() multisig.Executor {
	actions := app.NewRouter()
	multisig.RegisterActions(actions)
	auth := x.ChainAuth(multisig.Authenticate{}, Authenticator())
	return multisig.HandlerExecutor(actions, multisig.ActionDecoders(), auth)
}

// Router returns the router of messages submitted by users.
func Router(auth x.Authenticator, exec multisig.Executor) *app.Router {
	r := app.NewRouter()
	multisig.RegisterRoutes(r, auth, exec)
	return r
}

// Chain returns the decorators every transaction passes through.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Stack returns the complete handler of the application.
func Stack() quorum.Handler {
	return Chain().WithHandler(Router(Authenticator(), Executor()))
}

// CommitKVStore opens the store at dbPath. An empty path returns a store
// kept in memory. A trailing extension such as ".db" is ignored.
func CommitKVStore(dbPath string) (*iavl.CommitStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStore("", "")
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q: %s", dbPath, err)
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	db, err := iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if err := db.LoadLatestVersion(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "load latest version")
	}
	return db, nil
}

// Application returns a store application running h, usually Stack(),
// on top of the store at dbPath. Genesis loads the multisig extension.
func Application(name string, h quorum.Handler, dbPath string, logger log.Logger) (*app.StoreApp, error) {
	db, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	sa, err := app.NewStoreApp(name, db, h)
	if err != nil {
		db.Close()
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	genesis := quorum.ChainInitializers(&multisig.Initializer{})
	return sa.WithInit(genesis).WithLogger(logger), nil
}
