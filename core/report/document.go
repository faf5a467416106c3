package report

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core/roster"
)

const DocumentTitle = "O'quvchilar hisoboti"

var (
	//go:embed templates/document.gohtml
	templatesFS embed.FS

	documentTmpl = template.Must(template.ParseFS(templatesFS, "templates/document.gohtml"))
)

type (
	documentData struct {
		Title  string
		Groups []groupTable
	}

	groupTable struct {
		Name    string
		Columns []column
		Rows    [][]cell
	}

	column struct {
		Key   string
		Label string
	}

	cell struct {
		Name  bool
		Text  string
		Notes []string
	}
)

// FormatDocument renders one table per group as an HTML document that word processors can open.
// User content is escaped.
func FormatDocument(groups ...roster.Group) ([]byte, error) {
	data := documentData{
		Title:  DocumentTitle,
		Groups: make([]groupTable, 0, len(groups)),
	}
	for _, g := range groups {
		data.Groups = append(data.Groups, newGroupTable(g))
	}

	var buf bytes.Buffer
	if err := documentTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "rendering document")
	}
	return buf.Bytes(), nil
}

func newGroupTable(g roster.Group) groupTable {
	tbl := groupTable{
		Name:    g.Name,
		Columns: make([]column, 0, len(g.Fields)),
		Rows:    make([][]cell, 0, len(g.Students)),
	}
	for _, field := range g.Fields {
		tbl.Columns = append(tbl.Columns, column{Key: field, Label: g.Label(field)})
	}
	for _, st := range g.Students {
		row := make([]cell, 0, len(g.Fields))
		for _, field := range g.Fields {
			val, _ := st.Value(field)
			c := cell{Name: field == roster.FieldName}
			switch g.Kinds[field] {
			case roster.KindBoolean:
				c.Text = Glyph(val.Bool)
			case roster.KindNoteList:
				c.Notes = val.Notes
			default:
				c.Text = val.Text
			}
			row = append(row, c)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}
