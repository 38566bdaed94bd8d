package multisig

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

// Executor performs the action of an approved transaction. The context
// authenticates the Execution Authority of the registry. Returning an
// error leaves the transaction unexecuted.
type Executor func(ctx quorum.Context, db quorum.KVStore, action *Action) error

// ActionDecoder deserializes an action payload into a message.
type ActionDecoder func(payload []byte) (quorum.Msg, error)

// DecodeAs returns a decoder unmarshaling payloads into a fresh message
// created by newMsg.
func DecodeAs(newMsg func() quorum.Msg) ActionDecoder {
	return func(payload []byte) (quorum.Msg, error) {
		msg := newMsg()
		if err := msg.Unmarshal(payload); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot decode %T: %s", msg, err)
		}
		return msg, nil
	}
}

// Decoders maps action targets to their decoders.
type Decoders map[string]ActionDecoder

// Decode returns the message described by the action.
func (d Decoders) Decode(action *Action) (quorum.Msg, error) {
	decode, ok := d[action.Target]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no decoder for %q", action.Target)
	}
	msg, err := decode(action.Payload)
	if err != nil {
		return nil, err
	}
	if msg.Path() != action.Target {
		return nil, errors.Wrapf(errors.ErrType, "decoded %q message for %q target", msg.Path(), action.Target)
	}
	return msg, nil
}

// HandlerExecutor returns an executor delivering the decoded action to
// the handler, usually a router holding the actions a registry may
// authorize. All signing participants must be authenticated.
func HandlerExecutor(h quorum.Handler, decoders Decoders, auth x.Authenticator) Executor {
	return func(ctx quorum.Context, db quorum.KVStore, action *Action) error {
		if !x.HasAllAddresses(ctx, auth, action.Signers()) {
			return errors.Wrap(errors.ErrUnauthorized, "missing action signer")
		}
		msg, err := decoders.Decode(action)
		if err != nil {
			return err
		}
		_, err = h.Deliver(ctx, db, &actionTx{msg: msg})
		return err
	}
}

type actionTx struct {
	msg quorum.Msg
}

var _ quorum.Tx = (*actionTx)(nil)

func (tx *actionTx) GetMsg() (quorum.Msg, error) {
	return tx.msg, nil
}

// signAsAuthority returns a copy of the action in which every participant
// naming the authority is a read-only signer.
func signAsAuthority(action *Action, authority quorum.Address) *Action {
	res := action.Copy()
	for _, p := range res.Participants {
		if p.Address.Equals(authority) {
			p.IsSigner = true
			p.IsWritable = false
		}
	}
	return res
}
