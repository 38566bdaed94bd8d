package orm

import (
	"reflect"

	"github.com/iov-one/quorum/errors"
)

// SimpleObj is the Object implementation used by every bucket.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o *SimpleObj) Key() []byte {
	return o.key
}

func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

func (o *SimpleObj) Value() Model {
	return o.value
}

// Validate requires a key and a valid value.
func (o *SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	return o.value.Validate()
}

func (o *SimpleObj) Clone() Object {
	empty := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	return &SimpleObj{key: append([]byte(nil), o.key...), value: empty}
}
