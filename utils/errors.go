package utils

import "fmt"

// UnsupportedProfileError indicates that no hardware-acceptable profile
// exists for the bitstream's signaled profile and constraint flags.
// Fatal to the current stream.
type UnsupportedProfileError struct {
	ProfileIDC uint8
}

// Error returns the error message for UnsupportedProfileError.
func (e UnsupportedProfileError) Error() string {
	return fmt.Sprintf("unsupported profile: %d", e.ProfileIDC)
}

// UnsupportedFormatError indicates a chroma format and bit depth
// combination with no hardware render-target format. Fatal to the
// current stream.
type UnsupportedFormatError struct {
	ChromaFormatIDC uint8
	BitDepthLuma    uint8
}

// Error returns the error message for UnsupportedFormatError.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported chroma format: %d (with depth luma: %d)",
		e.ChromaFormatIDC, e.BitDepthLuma)
}

// OverflowError indicates an integer overflow while computing a scaled
// output size. The whole fixation attempt is void; no default geometry
// may be substituted.
type OverflowError struct {
}

// Error returns the error message for OverflowError.
func (OverflowError) Error() string {
	return "error calculating the output scaled size - integer overflow"
}

// SubmissionError indicates the driver rejected a parameter or slice
// buffer. Decode of the affected picture is abandoned, not retried.
type SubmissionError struct {
	Reason error
}

// Error returns the error message for SubmissionError.
func (e SubmissionError) Error() string {
	return fmt.Sprintf("buffer submission rejected: %v", e.Reason)
}

// Unwrap exposes the driver's own error.
func (e SubmissionError) Unwrap() error {
	return e.Reason
}

// InvalidConfRecordError indicates a truncated or malformed decoder
// configuration record.
type InvalidConfRecordError struct {
}

// Error returns the error message for InvalidConfRecordError.
func (InvalidConfRecordError) Error() string {
	return "invalid decoder configuration record"
}

// NotNegotiatedError indicates processing was attempted before format
// negotiation completed.
type NotNegotiatedError struct {
}

// Error returns the error message for NotNegotiatedError.
func (NotNegotiatedError) Error() string {
	return "format not negotiated"
}
