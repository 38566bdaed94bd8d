package orm

import "github.com/iov-one/quorum"

// Model is a record kept in a bucket, such as a multisig registry or one
// of its transactions.
type Model interface {
	quorum.Persistent
	Validate() error
	// Copy returns a deep copy. Buckets use it to get empty instances
	// to unmarshal into.
	Copy() Model
}

// Object binds a Model to the key it is stored under.
type Object interface {
	Key() []byte
	SetKey(key []byte)
	Value() Model
	Validate() error
	// Clone returns an object with an empty value of the same type.
	Clone() Object
}
