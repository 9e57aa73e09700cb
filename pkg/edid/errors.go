package edid

import (
	"errors"

	"github.com/tuomas56/edidblock/internal/cursor"
)

// Decoding is fail-fast: every error below is terminal for the call
// and no partial Record is ever returned alongside one.
var (
	// ErrHeaderInvalid reports that the fixed 8-byte header fingerprint
	// did not match.
	ErrHeaderInvalid = errors.New("invalid EDID header")

	// ErrMissingPreferredTiming reports a zero pixel clock in the first
	// detailed timing slot, which the format requires to hold a timing.
	ErrMissingPreferredTiming = errors.New("first detailed timing slot holds no timing")

	// ErrMalformedTimingGeometry reports blanking intervals too small to
	// cover the sync pulse and front porch on some axis.
	ErrMalformedTimingGeometry = errors.New("malformed timing geometry")

	// ErrMalformedDescriptor reports a terminator, padding, or guard
	// byte violation inside a monitor descriptor.
	ErrMalformedDescriptor = errors.New("malformed monitor descriptor")

	// ErrUnexpectedEndOfData reports that the byte source ran dry
	// mid-block.
	ErrUnexpectedEndOfData = cursor.ErrUnexpectedEndOfData

	// ErrSourceFailure reports a read failure from the byte source.
	ErrSourceFailure = cursor.ErrSourceFailure
)
