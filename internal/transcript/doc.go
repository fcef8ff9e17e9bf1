// Package transcript defines the immutable segment/token data model and the
// SRT and JSON parsers that populate it.
//
// Both parsers resolve loosely structured input into one fixed schema at parse
// time: SRT lines are classified by script into primary and translation text,
// and JSON documents may use any of several field aliases and container
// shapes. Documents with no resolvable segment array are rejected with a
// schema error; the caller keeps its previous transcript in that case.
package transcript
