/*
Package multisig implements an M-of-N authorization engine.

A Multisig registry holds an ordered set of owners, an approval threshold
and a derivation nonce. Owners propose transactions, each carrying an
opaque action, and approve them. Once the number of approvals reaches the
current threshold, anyone may execute the transaction exactly once. The
action is then delivered on behalf of the registry Execution Authority, a
condition derived from the registry ID and nonce that no owner controls.

Changing the owner set and closing a registry are not public operations.
Their handlers are registered only with the router used to execute
actions and require the Execution Authority of the registry, so the only
way to invoke them is an approved and executed transaction.
*/
package multisig
