/*
Package quorumtest provides mocks and helpers for testing handlers,
decorators and authentication.
*/
package quorumtest
