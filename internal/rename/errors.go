package rename

import "errors"

var (
	// ErrNoMatch indicates no episode matched the file with confidence.
	ErrNoMatch = errors.New("no confident episode match")

	// ErrAmbiguous indicates several episodes tied for the file.
	ErrAmbiguous = errors.New("ambiguous episode match")

	// ErrCollision indicates two source files resolved to the same
	// destination.
	ErrCollision = errors.New("destination collision")

	// ErrSourceMissing indicates the source file disappeared before
	// execution.
	ErrSourceMissing = errors.New("source file missing")

	// ErrDestinationExists indicates the destination already exists and
	// is not the source itself.
	ErrDestinationExists = errors.New("destination file already exists")
)
