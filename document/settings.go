// Package document drives pagination: it measures and draws content trees
// page by page, twice, so that page numbers known only at the end of the
// document can be printed anywhere in it.
package document

import (
	"io"

	"github.com/charmbracelet/log"
)

// DefaultMaxPages is the page ceiling used when Settings.MaxPages is zero.
const DefaultMaxPages = 250

// Settings configure one render. They are read once when the render starts.
type Settings struct {
	// MaxPages fails the render when content needs more pages than this.
	// Content that grows forever is the usual cause.
	MaxPages int
	// EnableCaching memoizes measurements of cacheable elements.
	EnableCaching bool
	// EnableDebugging turns an unexpected wrap into a diagnosis: the
	// offending element is marked in red and rendering continues.
	EnableDebugging bool
	// CheckGlyphs fails the render when a font cannot draw a character.
	CheckGlyphs bool
	// Logger receives progress and diagnostics. Nil discards them.
	Logger *log.Logger
}

// DefaultSettings returns the settings used by the command line tool.
func DefaultSettings() Settings {
	return Settings{MaxPages: DefaultMaxPages, EnableCaching: true}
}

func (s Settings) maxPages() int {
	if s.MaxPages <= 0 {
		return DefaultMaxPages
	}
	return s.MaxPages
}

var discard = log.New(io.Discard)

func (s Settings) logger() *log.Logger {
	if s.Logger == nil {
		return discard
	}
	return s.Logger
}

// Strategy selects page numbering across the parts of a merged document.
type Strategy int

const (
	// Continuous numbers pages across all parts, as one document.
	Continuous Strategy = iota
	// Separate restarts page numbers and sections in every part.
	Separate
)

func (s Strategy) String() string {
	if s == Separate {
		return "separate"
	}
	return "continuous"
}
