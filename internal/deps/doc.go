// Package deps reports the availability of the external binaries subreel
// shells out to, for preflight checks and the deps CLI command.
package deps
