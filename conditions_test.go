package quorum_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := quorum.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", b))
		So(quorum.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexademical condition printing", t, func() {
		cond := quorum.NewCondition("multisig", "authority", []byte{0xca, 0xfe})

		So(cond.String(), ShouldEqual, "multisig/authority/CAFE")
		So(quorum.Condition("nope").String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond     quorum.Condition
		wantExt  string
		wantType string
		wantData []byte
		wantErr  *errors.Error
	}{
		"valid": {
			cond:     quorum.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			wantExt:  "sigs",
			wantType: "ed25519",
			wantData: []byte{1, 2, 3},
		},
		"data with a newline": {
			cond:     quorum.NewCondition("multisig", "authority", []byte{0, '\n', 1}),
			wantExt:  "multisig",
			wantType: "authority",
			wantData: []byte{0, '\n', 1},
		},
		"missing data": {
			cond:    quorum.NewCondition("sigs", "ed25519", nil),
			wantErr: errors.ErrInput,
		},
		"extension too short": {
			cond:    quorum.NewCondition("x", "ed25519", []byte{1}),
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, data, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantType, typ)
			assert.Equal(t, tc.wantData, data)
			if tc.wantErr == nil {
				assert.NoError(t, tc.cond.Validate())
			}
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := quorum.NewCondition("sigs", "ed25519", []byte{1})
	b := quorum.NewCondition("sigs", "ed25519", []byte{2})

	assert.Len(t, a.Address(), quorum.AddressLength)
	assert.NoError(t, a.Address().Validate())
	assert.True(t, a.Address().Equals(a.Address()))
	assert.False(t, a.Address().Equals(b.Address()))
	assert.Nil(t, quorum.NewAddress(nil))
}

func TestParseAddress(t *testing.T) {
	cond := quorum.NewCondition("sigs", "ed25519", []byte{0xde, 0xad})
	addr := cond.Address()
	b32, err := addr.Bech32("iov")
	require.NoError(t, err)

	cases := map[string]struct {
		enc     string
		want    quorum.Address
		wantErr *errors.Error
	}{
		"hex without prefix": {enc: addr.String(), want: addr},
		"hex":                {enc: "hex:" + addr.String(), want: addr},
		"condition":          {enc: "cond:sigs/ed25519/DEAD", want: addr},
		"bech32":             {enc: "bech32:" + b32, want: addr},
		"empty":              {enc: "", want: nil},
		"short hex":          {enc: "hex:CAFE", wantErr: errors.ErrInput},
		"invalid hex":        {enc: "zz", wantErr: errors.ErrInput},
		"malformed cond":     {enc: "cond:sigs/ed25519", wantErr: errors.ErrInput},
		"malformed bech32":   {enc: "bech32:iov1xxx", wantErr: errors.ErrInput},
		"unknown format":     {enc: "base64:AAAA", wantErr: errors.ErrType},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := quorum.ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %q, got %+v", tc.wantErr, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := quorum.NewCondition("sigs", "ed25519", []byte{7}).Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got quorum.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	err = json.Unmarshal([]byte(`42`), &got)
	assert.True(t, errors.ErrInput.Is(err))
}
