// Package frames converts the top-level frames of a Figma document into content modules.
package frames

import (
	"errors"
	"fmt"

	"github.com/jonathan/academy-frames/internal/figma"
)

// ErrUnsupportedFrame is returned for frames whose name matches no module kind.
var ErrUnsupportedFrame = errors.New("unsupported frame")

// MissingNodeError reports a node a frame needs but does not contain.
type MissingNodeError struct {
	Frame   string
	Type    figma.NodeType
	Pattern string
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("frame %q: no %s node matching %q", e.Frame, e.Type, e.Pattern)
}

// ExtractError wraps a failure to extract a single frame.
type ExtractError struct {
	Frame  string
	NodeID string
	Cause  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error: frame %q (%s): %v", e.Frame, e.NodeID, e.Cause)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}
