package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceIterator(t *testing.T) {
	keys := randKeys(5, 8)
	values := randKeys(5, 32)
	models := make([]Model, len(keys))
	for i := range keys {
		models[i] = Model{Key: keys[i], Value: values[i]}
	}

	it := NewSliceIterator(models)
	var n int
	for ; it.Valid(); require.NoError(t, it.Next()) {
		assert.Equal(t, keys[n], it.Key())
		assert.Equal(t, values[n], it.Value())
		n++
	}
	assert.Equal(t, len(models), n)
	assert.Error(t, it.Next())
	assert.Panics(t, func() { it.Key() })

	it = NewSliceIterator(models)
	require.True(t, it.Valid())
	it.Close()
	assert.False(t, it.Valid())
}

func TestEmptyKVStore(t *testing.T) {
	var db EmptyKVStore
	require.NoError(t, db.Set([]byte("a"), []byte("b")))
	assertGet(t, db, []byte("a"), nil)

	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	assert.False(t, it.Valid())
}
