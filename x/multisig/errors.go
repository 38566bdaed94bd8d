package multisig

import (
	"github.com/iov-one/quorum/errors"
)

// Multisig reserves 1030~1039 error codes
var (
	ErrInvalidOwner      = errors.Register(1030, "invalid owner")
	ErrNotEnoughSigners  = errors.Register(1031, "not enough signers")
	ErrAlreadyExecuted   = errors.Register(1032, "already executed")
	ErrInvalidThreshold  = errors.Register(1033, "invalid threshold")
	ErrTransactionSigned = errors.Register(1034, "transaction signed by an owner")
	ErrUnableToDelete    = errors.Register(1035, "unable to delete")
)
