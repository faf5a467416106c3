package roster

import "strings"

// Normalize returns a copy of snap migrated to SchemaVersion where every group and student is complete:
//   - fields: defaults when missing, `name` first, no duplicates, no `id` or `actions`;
//   - kinds: one per field (declared, else inferred from stored values, else DefaultKind);
//   - labels: defaults when missing, default keys without a label get their default;
//   - students: exactly one value per field, of the field's kind;
//   - ids: generated when missing.
func Normalize(snap Snapshot) Snapshot {
	out := Snapshot{Version: SchemaVersion, Groups: make([]Group, 0, len(snap.Groups))}

	var lastID int64
	for _, g := range snap.Groups {
		if g.ID > lastID {
			lastID = g.ID
		}
	}
	seen := make(map[int64]bool, len(snap.Groups))
	for _, g := range snap.Groups {
		g = normalizeGroup(g.Clone())
		if g.ID == 0 || seen[g.ID] {
			g.ID = newGroupID(lastID)
			lastID = g.ID
		}
		seen[g.ID] = true
		out.Groups = append(out.Groups, g)
	}
	return out
}

func normalizeGroup(g Group) Group {
	g.Name = strings.TrimSpace(g.Name)

	if len(g.Fields) == 0 {
		g.Fields = DefaultFields()
	}
	fields := make([]string, 0, len(g.Fields)+1)
	fields = append(fields, FieldName)
	dedup := map[string]bool{FieldID: true, FieldName: true, FieldActions: true}
	for _, f := range g.Fields {
		if f == "" || dedup[f] {
			continue
		}
		dedup[f] = true
		fields = append(fields, f)
	}
	g.Fields = fields

	defaults := DefaultLabels()
	if len(g.Labels) == 0 {
		g.Labels = defaults
	}
	for key, label := range defaults {
		if _, ok := g.Labels[key]; !ok && (key == FieldActions || g.HasField(key)) {
			g.Labels[key] = label
		}
	}

	kinds := make(map[string]FieldKind, len(g.Fields))
	for _, f := range g.Fields {
		kind := g.Kinds[f]
		if !kind.Valid() {
			kind = inferKind(f, g.Students)
		}
		kinds[f] = kind
	}
	kinds[FieldName] = KindText
	g.Kinds = kinds

	students := make([]Student, 0, len(g.Students))
	for _, st := range g.Students {
		if st.ID == "" {
			st.ID = newStudentID()
		}
		values := make(map[string]Value, len(g.Fields))
		for _, f := range g.Fields {
			values[f] = coerce(st.Values[f], g.Kinds[f])
		}
		st.Values = values
		students = append(students, st)
	}
	g.Students = students
	return g
}

// inferKind guesses the kind of a field without declaration.
// Known keys keep their default kind; custom keys follow the shape of the first stored value.
func inferKind(field string, students []Student) FieldKind {
	for _, def := range defaultFieldDefs {
		if def.key == field {
			return def.kind
		}
	}
	for _, st := range students {
		if v, ok := st.Values[field]; ok && v.Kind.Valid() {
			return v.Kind
		}
	}
	return DefaultKind(field)
}

// coerce converts v to kind, falling back to the default value when the shapes cannot be reconciled.
func coerce(v Value, kind FieldKind) Value {
	if v.Kind == kind {
		return v.clone()
	}
	switch kind {
	case KindNoteList:
		// the fixed-column releases stored the notes as a single text
		if v.Kind == KindText && strings.TrimSpace(v.Text) != "" {
			return NotesValue(v.Text)
		}
	case KindText:
		if v.Kind == KindNoteList {
			return TextValue(strings.Join(v.Notes, "\n"))
		}
	}
	return DefaultValue(kind)
}
