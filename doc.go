/*
Package quorum defines the common interfaces that tie together the storage,
authentication, routing and multisig packages of this repository, as well
as the identity primitives (Condition and Address) shared by all of them.

Operations are expressed as messages (Msg) carried by a transaction (Tx)
and processed by a Handler against a KVStore. Decorators wrap handlers to
provide cross cutting functionality such as signature verification.

We pass context through context.Context between middleware and handlers.
Extensions may add their own keys to enrich the context with specific
data, using a private key type so that no other package can forge them.
*/
package quorum
