/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object, loaded from the "conf"
section of the genesis file and stored under a key derived from the
extension name.
*/
package gconf
