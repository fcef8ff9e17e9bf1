// Package history persists recording session outcomes in SQLite so past
// renders can be listed and inspected from the CLI.
package history
