package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum/errors"
)

// counter is a minimal model used to exercise buckets.
type counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) { return proto.Marshal((*counterWire)(c)) }
func (c *counter) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*counterWire)(c)) }

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

func (c *counter) Copy() Model {
	return &counter{Count: c.Count}
}

type counterWire counter

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

func newCounterObj(key []byte, count int64) Object {
	return NewSimpleObj(key, &counter{Count: count})
}
