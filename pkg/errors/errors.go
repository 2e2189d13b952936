// Package errors holds the sentinel errors chatlens callers branch on and the
// StageError wrapper used by the pipeline.
//
// Malformed transcript lines are never errors; they are reported as skipped
// lines. The sentinels cover what makes a run impossible:
//
//	if chaterrors.IsConfiguration(err) {
//	    // bad config or missing stopwords, fix the setup and rerun
//	}
package errors

import "errors"

var (
	// ErrNotFound means an input file (transcript, stopwords) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means a caller-supplied value was rejected, such as an
	// unknown sentiment label.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration means the tool is set up wrong, such as a missing
	// stopword list or an invalid output format.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmptyInput means the transcript contained no lines at all.
	ErrEmptyInput = errors.New("empty input")
)

// IsNotFound reports whether any error in err's chain is ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsValidation reports whether any error in err's chain is ErrValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsConfiguration reports whether any error in err's chain is ErrConfiguration.
func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

// IsEmptyInput reports whether any error in err's chain is ErrEmptyInput.
func IsEmptyInput(err error) bool { return errors.Is(err, ErrEmptyInput) }
