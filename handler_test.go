package quorum_test

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestReadOptions(t *testing.T) {
	var opts quorum.Options
	assert.Nil(t, json.Unmarshal([]byte(`{"list": [{"key": 1}, {"key": 2}], "broken": "x"}`), &opts))

	var list []struct{ Key int }
	assert.Nil(t, opts.ReadOptions("list", &list))
	assert.Equal(t, []struct{ Key int }{{Key: 1}, {Key: 2}}, list)

	var missing []struct{ Key int }
	assert.Nil(t, opts.ReadOptions("missing", &missing))
	assert.Equal(t, 0, len(missing))

	var broken []int
	if err := opts.ReadOptions("broken", &broken); err == nil {
		t.Fatal("want an error")
	}
}

type initializer struct {
	calls int
	err   error
}

func (i *initializer) FromGenesis(quorum.Options, quorum.KVStore) error {
	i.calls++
	return i.err
}

func TestChainInitializers(t *testing.T) {
	first := &initializer{}
	failing := &initializer{err: errors.ErrState}
	last := &initializer{}

	err := quorum.ChainInitializers(first, failing, last).FromGenesis(nil, store.MemStore())
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 0, last.calls)
}
