package multisig

import (
	"math"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x"
)

const (
	// maxOwners is the greatest number of owners a registry can hold.
	maxOwners = 100

	// maxNonce is the greatest derivation nonce value. The nonce is a
	// single byte but protobuf represents it as uint32.
	maxNonce = math.MaxUint8
)

var isTarget = regexp.MustCompile(`^[a-zA-Z0-9_/]{1,64}$`).MatchString

// Multisig is the registry configuration: who may approve transactions
// and how many approvals a transaction needs before it is executed.
type Multisig struct {
	Owners    []quorum.Address `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners"`
	Threshold uint32           `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold"`
	Nonce     uint32           `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce"`
}

var _ orm.Model = (*Multisig)(nil)

// Validate ensures the registry invariants hold.
func (m *Multisig) Validate() error {
	if err := validateOwners(m.Owners); err != nil {
		return err
	}
	if err := validateThreshold(m.Threshold, len(m.Owners)); err != nil {
		return err
	}
	return validateNonce(m.Nonce)
}

// Copy returns a deep copy of the registry.
func (m *Multisig) Copy() orm.Model {
	return &Multisig{
		Owners:    cloneAddresses(m.Owners),
		Threshold: m.Threshold,
		Nonce:     m.Nonce,
	}
}

// HasOwner returns true if the address belongs to the current owner set.
func (m *Multisig) HasOwner(addr quorum.Address) bool {
	for _, o := range m.Owners {
		if o.Equals(addr) {
			return true
		}
	}
	return false
}

// SetOwners replaces the owner set. The threshold is lowered to the new
// number of owners when it would exceed it.
func (m *Multisig) SetOwners(owners []quorum.Address) {
	m.Owners = cloneAddresses(owners)
	if n := uint32(len(owners)); m.Threshold > n {
		m.Threshold = n
	}
}

// Transaction is a proposal to execute an action on behalf of a
// registry.
type Transaction struct {
	MultisigID []byte         `protobuf:"bytes,1,opt,name=multisig_id,json=multisigId,proto3" json:"multisig_id"`
	Action     *Action        `protobuf:"bytes,2,opt,name=action" json:"action"`
	Approvals  []*Approval    `protobuf:"bytes,3,rep,name=approvals" json:"approvals"`
	Executed   bool           `protobuf:"varint,4,opt,name=executed,proto3" json:"executed"`
	Proposer   quorum.Address `protobuf:"bytes,5,opt,name=proposer,proto3" json:"proposer"`
}

var _ orm.Model = (*Transaction)(nil)

// Action describes the operation a transaction authorizes. Payload is
// opaque to this package and decoded only by the executor.
type Action struct {
	Target       string         `protobuf:"bytes,1,opt,name=target,proto3" json:"target"`
	Participants []*Participant `protobuf:"bytes,2,rep,name=participants" json:"participants"`
	Payload      []byte         `protobuf:"bytes,3,opt,name=payload,proto3" json:"payload"`
}

// Participant is an identity the action touches. IsSigner requires the
// identity to be authenticated when the action is executed.
type Participant struct {
	Address    quorum.Address `protobuf:"bytes,1,opt,name=address,proto3" json:"address"`
	IsSigner   bool           `protobuf:"varint,2,opt,name=is_signer,json=isSigner,proto3" json:"is_signer"`
	IsWritable bool           `protobuf:"varint,3,opt,name=is_writable,json=isWritable,proto3" json:"is_writable"`
}

// Approval records whether an owner, captured when the transaction was
// created, approved it.
type Approval struct {
	Owner    quorum.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner"`
	Approved bool           `protobuf:"varint,2,opt,name=approved,proto3" json:"approved"`
}

// Validate ensures the transaction is well formed.
func (t *Transaction) Validate() error {
	if err := validateID(t.MultisigID); err != nil {
		return errors.Wrap(err, "multisig id")
	}
	if err := t.Action.Validate(); err != nil {
		return errors.Wrap(err, "action")
	}
	if len(t.Approvals) == 0 {
		return errors.Wrap(errors.ErrModel, "no approvals")
	}
	owners := make([]quorum.Address, len(t.Approvals))
	for i, a := range t.Approvals {
		if a == nil {
			return errors.Wrapf(errors.ErrModel, "approval %d is nil", i)
		}
		owners[i] = a.Owner
	}
	if err := validateOwners(owners); err != nil {
		return errors.Wrap(err, "approvals")
	}
	if err := t.Proposer.Validate(); err != nil {
		return errors.Wrap(err, "proposer")
	}
	return nil
}

// Copy returns a deep copy of the transaction.
func (t *Transaction) Copy() orm.Model {
	approvals := make([]*Approval, len(t.Approvals))
	for i, a := range t.Approvals {
		approvals[i] = &Approval{Owner: a.Owner.Clone(), Approved: a.Approved}
	}
	return &Transaction{
		MultisigID: append([]byte(nil), t.MultisigID...),
		Action:     t.Action.Copy(),
		Approvals:  approvals,
		Executed:   t.Executed,
		Proposer:   t.Proposer.Clone(),
	}
}

// ApprovalCount returns how many of the captured owners approved.
func (t *Transaction) ApprovalCount() (uint32, error) {
	var n uint64
	for _, a := range t.Approvals {
		if a.Approved {
			n++
		}
	}
	if n > math.MaxUint32 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d approvals", n)
	}
	return uint32(n), nil
}

// Approve marks the approval of the given owner. It returns false if the
// owner was not captured when the transaction was created.
func (t *Transaction) Approve(owner quorum.Address) bool {
	a := t.approval(owner)
	if a == nil {
		return false
	}
	a.Approved = true
	return true
}

// IsApprovedBy returns true if the given owner approved the transaction.
func (t *Transaction) IsApprovedBy(owner quorum.Address) bool {
	a := t.approval(owner)
	return a != nil && a.Approved
}

func (t *Transaction) approval(owner quorum.Address) *Approval {
	for _, a := range t.Approvals {
		if a.Owner.Equals(owner) {
			return a
		}
	}
	return nil
}

// NewTransaction returns a transaction bound to the registry with one
// approval entry per current owner. The proposer entry is approved.
func NewTransaction(multisigID []byte, ms *Multisig, action *Action, proposer quorum.Address) *Transaction {
	approvals := make([]*Approval, len(ms.Owners))
	for i, o := range ms.Owners {
		approvals[i] = &Approval{Owner: o.Clone(), Approved: o.Equals(proposer)}
	}
	return &Transaction{
		MultisigID: multisigID,
		Action:     action.Copy(),
		Approvals:  approvals,
		Proposer:   proposer.Clone(),
	}
}

// Validate ensures the action is well formed.
func (a *Action) Validate() error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "action")
	}
	if !isTarget(a.Target) {
		return errors.Wrapf(errors.ErrInput, "target %q", a.Target)
	}
	for i, p := range a.Participants {
		if p == nil {
			return errors.Wrapf(errors.ErrInput, "participant %d is nil", i)
		}
		if err := p.Address.Validate(); err != nil {
			return errors.Wrapf(err, "participant %d", i)
		}
	}
	return nil
}

// Copy returns a deep copy of the action.
func (a *Action) Copy() *Action {
	if a == nil {
		return nil
	}
	ps := make([]*Participant, len(a.Participants))
	for i, p := range a.Participants {
		ps[i] = &Participant{
			Address:    p.Address.Clone(),
			IsSigner:   p.IsSigner,
			IsWritable: p.IsWritable,
		}
	}
	return &Action{
		Target:       a.Target,
		Participants: ps,
		Payload:      append([]byte(nil), a.Payload...),
	}
}

// Signers returns the addresses of all participants required to sign.
func (a *Action) Signers() []quorum.Address {
	var res []quorum.Address
	for _, p := range a.Participants {
		if p.IsSigner {
			res = append(res, p.Address)
		}
	}
	return res
}

// NewAction serializes the message into an action targeting the message
// path.
func NewAction(msg quorum.Msg, participants ...*Participant) (*Action, error) {
	payload, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal action msg")
	}
	return &Action{
		Target:       msg.Path(),
		Participants: participants,
		Payload:      payload,
	}, nil
}

func validateOwners(owners []quorum.Address) error {
	switch n := len(owners); {
	case n == 0:
		return errors.Wrap(ErrInvalidOwner, "no owners")
	case n > maxOwners:
		return errors.Wrapf(ErrInvalidOwner, "%d owners, max %d", n, maxOwners)
	}
	if err := x.ValidateAddresses(owners); err != nil {
		return errors.Wrapf(ErrInvalidOwner, "owners: %s", err)
	}
	return nil
}

func validateThreshold(threshold uint32, owners int) error {
	if threshold == 0 {
		return errors.Wrap(ErrInvalidThreshold, "threshold must be greater than 0")
	}
	if int64(threshold) > int64(owners) {
		return errors.Wrapf(ErrInvalidThreshold, "threshold %d is greater than %d owners", threshold, owners)
	}
	return nil
}

func validateNonce(nonce uint32) error {
	if nonce > maxNonce {
		return errors.Wrapf(errors.ErrInput, "nonce %d must not be greater than %d", nonce, maxNonce)
	}
	return nil
}

// validateID checks the format of a sequence generated identifier.
func validateID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "invalid id length %d", len(id))
	}
	return nil
}

func cloneAddresses(addrs []quorum.Address) []quorum.Address {
	res := make([]quorum.Address, len(addrs))
	for i, a := range addrs {
		res[i] = a.Clone()
	}
	return res
}
