package quorum

import (
	"context"
	"regexp"

	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the logger, the chain ID and the authenticated
// conditions of a request.
type Context = context.Context

type ctxKey int

const (
	ctxKeyLogger ctxKey = iota
	ctxKeyChainID
)

// IsValidChainID reports whether id can be used as a chain ID.
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,25}$`).MatchString

// DefaultLogger is returned by GetLogger when the context has none.
var DefaultLogger = log.NewNopLogger()

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

// WithLogInfo attaches keyvals to the logger of the context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(ctxKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithChainID sets the chain ID signatures are bound to. It panics on an
// invalid ID or when the context already has one.
func WithChainID(ctx Context, chainID string) Context {
	if _, ok := ctx.Value(ctxKeyChainID).(string); ok {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic("invalid chain id: " + chainID)
	}
	return context.WithValue(ctx, ctxKeyChainID, chainID)
}

// GetChainID panics when no chain ID was set.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(ctxKeyChainID).(string)
	if !ok {
		panic("chain id not set")
	}
	return id
}
