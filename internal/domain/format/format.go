// Package format builds serialized rich-text fragments for the preview
// editor's formatting actions.
//
// Each apply wraps the selected text in the markup for the requested
// format; the caller splices the fragment back into the window content
// and records exactly one history snapshot per action.
package format

import (
	"fmt"
	"html"
)

// Kind identifies a formatting action
type Kind string

const (
	Bold      Kind = "bold"
	Italic    Kind = "italic"
	Underline Kind = "underline"
	H1        Kind = "h1"
	H2        Kind = "h2"
	H3        Kind = "h3"
	Highlight Kind = "highlight"
	Color     Kind = "color"
)

// Known reports whether k is a supported formatting action
func Known(k Kind) bool {
	switch k {
	case Bold, Italic, Underline, H1, H2, H3, Highlight, Color:
		return true
	}
	return false
}

// Apply wraps selected text in the markup for the given format. The
// selection is escaped; an unknown kind returns the escaped selection
// unchanged, mirroring the editor's permissive behavior. param carries
// the color value for the Color kind and is ignored otherwise.
func Apply(selection string, kind Kind, param string) string {
	escaped := html.EscapeString(selection)

	switch kind {
	case Bold:
		return "<strong>" + escaped + "</strong>"
	case Italic:
		return "<em>" + escaped + "</em>"
	case Underline:
		return "<u>" + escaped + "</u>"
	case H1:
		return `<h1 style="font-size: 2em; margin: 0.67em 0;">` + escaped + "</h1>"
	case H2:
		return `<h2 style="font-size: 1.5em; margin: 0.83em 0;">` + escaped + "</h2>"
	case H3:
		return `<h3 style="font-size: 1.17em; margin: 1em 0;">` + escaped + "</h3>"
	case Highlight:
		return "<mark>" + escaped + "</mark>"
	case Color:
		return fmt.Sprintf(`<span style="color:%s">%s</span>`, html.EscapeString(param), escaped)
	default:
		return escaped
	}
}
