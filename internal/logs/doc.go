// Package logs reads back the renderer's own log file for the CLI. It
// supports tail-style access: the last N lines, incremental reads from a
// saved offset, and polling follow mode.
package logs
