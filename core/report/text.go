// Package report projects groups into shareable text and a table document.
// Columns always come from the group's fields, kinds and labels.
package report

import (
	"fmt"
	"strings"

	"github.com/JaMeS-18-18/ForPluto/core/roster"
)

const (
	DoneGlyph    = "✅"
	NotDoneGlyph = "❌"
)

// Glyph renders a boolean value.
func Glyph(b bool) string {
	if b {
		return DoneGlyph
	}
	return NotDoneGlyph
}

// FormatText renders the group as a plain text message:
//
//	📚 <group>
//
//	1. <name>
//	<label>: ✅
//	<label>: <text>
//	<notes label>:
//	  1. <note>
func FormatText(g roster.Group) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s\n\n", g.Name)

	for i, st := range g.Students {
		fmt.Fprintf(&b, "%d. %s\n", i+1, st.Name())
		for _, field := range g.Fields {
			if field == roster.FieldName {
				continue
			}
			val, _ := st.Value(field)
			label := g.Label(field)

			switch g.Kinds[field] {
			case roster.KindNoteList:
				if len(val.Notes) == 0 {
					continue
				}
				fmt.Fprintf(&b, "%s:\n", label)
				for j, note := range val.Notes {
					fmt.Fprintf(&b, "  %d. %s\n", j+1, note)
				}
			case roster.KindBoolean:
				fmt.Fprintf(&b, "%s: %s\n", label, Glyph(val.Bool))
			default:
				if val.Text != "" {
					fmt.Fprintf(&b, "%s: %s\n", label, val.Text)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
