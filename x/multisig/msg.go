package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathCreateMultisigMsg    = "multisig/create"
	pathCreateTransactionMsg = "multisig/propose"
	pathApproveMsg           = "multisig/approve"
	pathSetOwnersMsg         = "multisig/set_owners"
	pathExecuteMsg           = "multisig/execute"
	pathCloseMultisigMsg     = "multisig/close"
	pathDeleteTransactionMsg = "multisig/delete_tx"
)

var _ quorum.Msg = (*CreateMultisigMsg)(nil)

// CreateMultisigMsg creates a new registry.
type CreateMultisigMsg struct {
	Owners    []quorum.Address `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners"`
	Threshold uint32           `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
	Nonce     uint32           `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce"`
}

// Path returns the routing path for this message.
func (CreateMultisigMsg) Path() string {
	return pathCreateMultisigMsg
}

// Validate enforces the owner, threshold and nonce constraints.
func (m *CreateMultisigMsg) Validate() error {
	if err := validateOwners(m.Owners); err != nil {
		return err
	}
	if err := validateThreshold(m.Threshold, len(m.Owners)); err != nil {
		return err
	}
	return validateNonce(m.Nonce)
}

var _ quorum.Msg = (*CreateTransactionMsg)(nil)

// CreateTransactionMsg proposes an action for a registry.
type CreateTransactionMsg struct {
	MultisigID []byte  `protobuf:"bytes,1,opt,name=multisig_id,json=multisigId,proto3" json:"multisig_id"`
	Action     *Action `protobuf:"bytes,2,opt,name=action" json:"action"`
}

func (CreateTransactionMsg) Path() string {
	return pathCreateTransactionMsg
}

func (m *CreateTransactionMsg) Validate() error {
	if err := validateID(m.MultisigID); err != nil {
		return errors.Wrap(err, "multisig id")
	}
	return errors.Wrap(m.Action.Validate(), "action")
}

var _ quorum.Msg = (*ApproveMsg)(nil)

// ApproveMsg approves a transaction on behalf of the signer.
type ApproveMsg struct {
	TransactionID []byte `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id"`
}

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	return errors.Wrap(validateID(m.TransactionID), "transaction id")
}

var _ quorum.Msg = (*SetOwnersMsg)(nil)

// SetOwnersMsg replaces the owner set of a registry. It can only be
// delivered by executing an approved transaction of that registry.
type SetOwnersMsg struct {
	MultisigID []byte           `protobuf:"bytes,1,opt,name=multisig_id,json=multisigId,proto3" json:"multisig_id"`
	Owners     []quorum.Address `protobuf:"bytes,2,rep,name=owners,proto3" json:"owners"`
}

func (SetOwnersMsg) Path() string {
	return pathSetOwnersMsg
}

func (m *SetOwnersMsg) Validate() error {
	if err := validateID(m.MultisigID); err != nil {
		return errors.Wrap(err, "multisig id")
	}
	return validateOwners(m.Owners)
}

var _ quorum.Msg = (*ExecuteTransactionMsg)(nil)

// ExecuteTransactionMsg executes an approved transaction.
type ExecuteTransactionMsg struct {
	TransactionID []byte `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id"`
}

func (ExecuteTransactionMsg) Path() string {
	return pathExecuteMsg
}

func (m *ExecuteTransactionMsg) Validate() error {
	return errors.Wrap(validateID(m.TransactionID), "transaction id")
}

var _ quorum.Msg = (*CloseMultisigMsg)(nil)

// CloseMultisigMsg deletes a registry. It can only be delivered by
// executing an approved transaction of that registry.
type CloseMultisigMsg struct {
	MultisigID []byte `protobuf:"bytes,1,opt,name=multisig_id,json=multisigId,proto3" json:"multisig_id"`
}

func (CloseMultisigMsg) Path() string {
	return pathCloseMultisigMsg
}

func (m *CloseMultisigMsg) Validate() error {
	return errors.Wrap(validateID(m.MultisigID), "multisig id")
}

var _ quorum.Msg = (*DeleteTransactionMsg)(nil)

// DeleteTransactionMsg withdraws a transaction that only its proposer
// approved.
type DeleteTransactionMsg struct {
	TransactionID []byte `protobuf:"bytes,1,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id"`
}

func (DeleteTransactionMsg) Path() string {
	return pathDeleteTransactionMsg
}

func (m *DeleteTransactionMsg) Validate() error {
	return errors.Wrap(validateID(m.TransactionID), "transaction id")
}
