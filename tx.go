package quorum

import (
	"reflect"

	"github.com/iov-one/quorum/errors"
)

// Msg is a request for a state change, such as proposing or approving a
// multisig transaction. Authentication data lives in the Tx carrying it.
type Msg interface {
	Persistent

	// Path routes the message to its Handler.
	Path() string

	// Validate checks the message without looking at the store.
	Validate() error
}

// Marshaller serializes itself to binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is a Marshaller that can also load itself. Unmarshal
// usually requires a pointer receiver.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: a single message plus whatever the
// decorators need to authenticate it.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message carried by tx, or "(missing)"
// when there is none.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into dest and validates it. dest must
// be a non nil pointer to the concrete message type.
func LoadMsg(tx Tx, dest interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}

	dst := reflect.ValueOf(dest)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination %T is not a pointer", dest)
	}
	src := reflect.Indirect(reflect.ValueOf(msg))
	if src.Type() != dst.Elem().Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", dest, msg)
	}
	dst.Elem().Set(src)

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
