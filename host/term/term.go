// Package term renders the LED row as a line of text, one frame per Flush
package term

import (
	"fmt"
	"io"
	"strings"

	"ledseq/core"
)

const (
	onGlyph  = "●"
	offGlyph = "○"
)

// Sink prints one line per frame to w
type Sink struct {
	w      io.Writer
	levels []bool
	frames uint64
}

// New creates a sink for count positions
func New(w io.Writer, count int) *Sink {
	return &Sink{w: w, levels: make([]bool, count)}
}

// Drive sets the pending level for one position
func (s *Sink) Drive(index int, on bool) error {
	if index < 0 || index >= len(s.levels) {
		return core.ErrUnknownPosition
	}
	s.levels[index] = on
	return nil
}

// Flush writes the pending frame
func (s *Sink) Flush() error {
	s.frames++
	_, err := fmt.Fprintf(s.w, "%6d  %s\n", s.frames, Row(s.levels))
	return err
}

// Row formats levels as glyphs separated by spaces
func Row(levels []bool) string {
	var b strings.Builder
	for i, on := range levels {
		if i > 0 {
			b.WriteByte(' ')
		}
		if on {
			b.WriteString(onGlyph)
		} else {
			b.WriteString(offGlyph)
		}
	}
	return b.String()
}
