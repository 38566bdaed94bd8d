package multisig

import (
	"github.com/gogo/protobuf/proto"
)

// Persisted and routed types are encoded with gogo/protobuf reflection.
// Each type marshals through a method-less alias so the codec does not
// call back into Marshal.

func (m *Multisig) Marshal() ([]byte, error) { return proto.Marshal((*multisigWire)(m)) }
func (m *Multisig) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*multisigWire)(m)) }

type multisigWire Multisig

func (m *multisigWire) Reset()         { *m = multisigWire{} }
func (m *multisigWire) String() string { return proto.CompactTextString(m) }
func (*multisigWire) ProtoMessage()    {}

func (m *Transaction) Marshal() ([]byte, error) { return proto.Marshal((*transactionWire)(m)) }
func (m *Transaction) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*transactionWire)(m)) }

type transactionWire Transaction

func (m *transactionWire) Reset()         { *m = transactionWire{} }
func (m *transactionWire) String() string { return proto.CompactTextString(m) }
func (*transactionWire) ProtoMessage()    {}

func (m *CreateMultisigMsg) Marshal() ([]byte, error) { return proto.Marshal((*createMultisigMsgWire)(m)) }
func (m *CreateMultisigMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*createMultisigMsgWire)(m)) }

type createMultisigMsgWire CreateMultisigMsg

func (m *createMultisigMsgWire) Reset()         { *m = createMultisigMsgWire{} }
func (m *createMultisigMsgWire) String() string { return proto.CompactTextString(m) }
func (*createMultisigMsgWire) ProtoMessage()    {}

func (m *CreateTransactionMsg) Marshal() ([]byte, error) { return proto.Marshal((*createTransactionMsgWire)(m)) }
func (m *CreateTransactionMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*createTransactionMsgWire)(m)) }

type createTransactionMsgWire CreateTransactionMsg

func (m *createTransactionMsgWire) Reset()         { *m = createTransactionMsgWire{} }
func (m *createTransactionMsgWire) String() string { return proto.CompactTextString(m) }
func (*createTransactionMsgWire) ProtoMessage()    {}

func (m *ApproveMsg) Marshal() ([]byte, error) { return proto.Marshal((*approveMsgWire)(m)) }
func (m *ApproveMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*approveMsgWire)(m)) }

type approveMsgWire ApproveMsg

func (m *approveMsgWire) Reset()         { *m = approveMsgWire{} }
func (m *approveMsgWire) String() string { return proto.CompactTextString(m) }
func (*approveMsgWire) ProtoMessage()    {}

func (m *SetOwnersMsg) Marshal() ([]byte, error) { return proto.Marshal((*setOwnersMsgWire)(m)) }
func (m *SetOwnersMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*setOwnersMsgWire)(m)) }

type setOwnersMsgWire SetOwnersMsg

func (m *setOwnersMsgWire) Reset()         { *m = setOwnersMsgWire{} }
func (m *setOwnersMsgWire) String() string { return proto.CompactTextString(m) }
func (*setOwnersMsgWire) ProtoMessage()    {}

func (m *ExecuteTransactionMsg) Marshal() ([]byte, error) { return proto.Marshal((*executeTransactionMsgWire)(m)) }
func (m *ExecuteTransactionMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*executeTransactionMsgWire)(m)) }

type executeTransactionMsgWire ExecuteTransactionMsg

func (m *executeTransactionMsgWire) Reset()         { *m = executeTransactionMsgWire{} }
func (m *executeTransactionMsgWire) String() string { return proto.CompactTextString(m) }
func (*executeTransactionMsgWire) ProtoMessage()    {}

func (m *CloseMultisigMsg) Marshal() ([]byte, error) { return proto.Marshal((*closeMultisigMsgWire)(m)) }
func (m *CloseMultisigMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*closeMultisigMsgWire)(m)) }

type closeMultisigMsgWire CloseMultisigMsg

func (m *closeMultisigMsgWire) Reset()         { *m = closeMultisigMsgWire{} }
func (m *closeMultisigMsgWire) String() string { return proto.CompactTextString(m) }
func (*closeMultisigMsgWire) ProtoMessage()    {}

func (m *DeleteTransactionMsg) Marshal() ([]byte, error) { return proto.Marshal((*deleteTransactionMsgWire)(m)) }
func (m *DeleteTransactionMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*deleteTransactionMsgWire)(m)) }

type deleteTransactionMsgWire DeleteTransactionMsg

func (m *deleteTransactionMsgWire) Reset()         { *m = deleteTransactionMsgWire{} }
func (m *deleteTransactionMsgWire) String() string { return proto.CompactTextString(m) }
func (*deleteTransactionMsgWire) ProtoMessage()    {}

func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationWire)(m)) }
func (m *Configuration) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*configurationWire)(m)) }

type configurationWire Configuration

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}
