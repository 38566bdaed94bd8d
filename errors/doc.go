/*
Package errors implements the error taxonomy shared by all quorum packages.

Reuse the root errors declared in this package whenever possible and
register a package specific error only when no root error describes the
failure. Each root error carries a unique code that allows clients to
distinguish failures without parsing messages.

Register a custom error during program initialization:

	var ErrSomething = errors.Register(1100, "something went wrong")

Create error instances at the point of failure so that a stack trace is
attached:

	return errors.Wrap(errors.ErrNotFound, "multisig")
	return errors.Wrapf(ErrSomething, "owner %s", addr)

Test the kind of an error with the Is method of the root error:

	if errors.ErrNotFound.Is(err) { ... }

Format an error with %+v to print the stack trace of its creation point.
*/
package errors
