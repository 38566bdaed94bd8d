package crypto

import (
	"github.com/gogo/protobuf/proto"
)

// Marshal serializes the key to its protobuf representation.
func (p *PublicKey) Marshal() ([]byte, error) { return proto.Marshal((*publicKeyWire)(p)) }

// Unmarshal loads the key from its protobuf representation.
func (p *PublicKey) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*publicKeyWire)(p)) }

// Marshal serializes the signature to its protobuf representation.
func (s *Signature) Marshal() ([]byte, error) { return proto.Marshal((*signatureWire)(s)) }

// Unmarshal loads the signature from its protobuf representation.
func (s *Signature) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*signatureWire)(s)) }

// The wire types share the layout of the exported ones but carry no
// Marshal method, so the reflection based codec handles their fields.

type publicKeyWire PublicKey

func (m *publicKeyWire) Reset()         { *m = publicKeyWire{} }
func (m *publicKeyWire) String() string { return proto.CompactTextString(m) }
func (*publicKeyWire) ProtoMessage()    {}

type signatureWire Signature

func (m *signatureWire) Reset()         { *m = signatureWire{} }
func (m *signatureWire) String() string { return proto.CompactTextString(m) }
func (*signatureWire) ProtoMessage()    {}
