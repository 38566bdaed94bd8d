package x_test

import (
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/x"
)

func TestValidateAddresses(t *testing.T) {
	a := quorumtest.NewCondition().Address()
	b := quorumtest.NewCondition().Address()

	cases := map[string]struct {
		addrs   []quorum.Address
		wantErr *errors.Error
	}{
		"empty list":  {addrs: nil},
		"valid":       {addrs: []quorum.Address{a, b}},
		"malformed":   {addrs: []quorum.Address{a, quorum.Address("short")}, wantErr: errors.ErrInput},
		"nil address": {addrs: []quorum.Address{nil}, wantErr: errors.ErrInput},
		"duplicated":  {addrs: []quorum.Address{a, b, a}, wantErr: errors.ErrDuplicate},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, x.ValidateAddresses(tc.addrs))
		})
	}
}
