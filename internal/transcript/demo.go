package transcript

import _ "embed"

//go:embed demo_transcript.json
var demoTranscript []byte

// Demo returns the bundled sample transcript, used by preview mode when no
// transcript file is supplied.
func Demo() *Transcript {
	tr, err := ParseJSON(demoTranscript)
	if err != nil {
		// The embedded document is validated by tests; a parse failure
		// here means a broken build, not bad user input.
		panic(err)
	}
	return tr
}
