package quorum_test

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      quorum.Tx
		dest    interface{}
		wantErr *errors.Error
		wantMsg interface{}
	}{
		"success": {
			tx:      &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "a/b"}},
			dest:    &quorumtest.Msg{},
			wantMsg: &quorumtest.Msg{RoutePath: "a/b"},
		},
		"invalid message": {
			tx:      &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "a/b", Err: errors.ErrInput}},
			dest:    &quorumtest.Msg{},
			wantErr: errors.ErrInput,
		},
		"missing message": {
			tx:      &quorumtest.Tx{},
			dest:    &quorumtest.Msg{},
			wantErr: errors.ErrMsg,
		},
		"transaction error": {
			tx:      &quorumtest.Tx{Err: errors.ErrDatabase},
			dest:    &quorumtest.Msg{},
			wantErr: errors.ErrDatabase,
		},
		"destination is not a pointer": {
			tx:      &quorumtest.Tx{Msg: &quorumtest.Msg{}},
			dest:    quorumtest.Msg{},
			wantErr: errors.ErrHuman,
		},
		"wrong destination type": {
			tx:      &quorumtest.Tx{Msg: &quorumtest.Msg{}},
			dest:    &struct{}{},
			wantErr: errors.ErrType,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := quorum.LoadMsg(tc.tx, tc.dest)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantMsg, tc.dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "a/b", quorum.GetPath(&quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "a/b"}}))
	assert.Equal(t, "(missing)", quorum.GetPath(&quorumtest.Tx{}))
}
