package vabridge

// Orientation represents a video orientation transform applied by the
// hardware post-processor.
type Orientation uint8

// Constants representing the supported orientation transforms.
const (
	OrientIdentity Orientation = iota // no transform
	Orient90R                         // rotate 90 degrees clockwise
	Orient180                         // rotate 180 degrees
	Orient90L                         // rotate 90 degrees counter-clockwise
	OrientHorizFlip                   // flip horizontally
	OrientVertFlip                    // flip vertically
	OrientULLR                        // flip across upper-left/lower-right diagonal
	OrientURLL                        // flip across upper-right/lower-left diagonal
	OrientAuto                        // follow the stream's orientation tag
)

// SwapsDimensions reports whether the transform exchanges the width and
// height axes of the frame.
func (o Orientation) SwapsDimensions() bool {
	switch o {
	case Orient90R, Orient90L, OrientULLR, OrientURLL:
		return true
	default:
		return false
	}
}

// String returns the human-readable string representation of an Orientation.
func (o Orientation) String() string {
	switch o {
	case OrientIdentity:
		return "identity"
	case Orient90R:
		return "90r"
	case Orient180:
		return "180"
	case Orient90L:
		return "90l"
	case OrientHorizFlip:
		return "horizontal-flip"
	case OrientVertFlip:
		return "vertical-flip"
	case OrientULLR:
		return "upper-left-diagonal"
	case OrientURLL:
		return "upper-right-diagonal"
	case OrientAuto:
		return "auto"
	}
	return "unknown"
}
