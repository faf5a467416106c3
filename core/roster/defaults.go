package roster

type fieldDef struct {
	key   string
	kind  FieldKind
	label string
}

var defaultFieldDefs = []fieldDef{
	{FieldName, KindText, "Name"},
	{FieldDoska, KindBoolean, "Doska"},
	{FieldEssential, KindBoolean, "Essential"},
	{FieldSpeaking, KindBoolean, "Speaking"},
	{FieldListening, KindBoolean, "Listening"},
	{FieldMindset, KindBoolean, "Mindset"},
	{FieldMurphy, KindBoolean, "Murphy"},
	{FieldAdditionalTask, KindNoteList, "Additional task"},
	{FieldDestination, KindText, "Destination"},
	{FieldDone, KindBoolean, "Done"},
}

const defaultActionsLabel = "Actions"

// DefaultFields returns the field list of a new group.
func DefaultFields() []string {
	fields := make([]string, 0, len(defaultFieldDefs))
	for _, def := range defaultFieldDefs {
		fields = append(fields, def.key)
	}
	return fields
}

// DefaultKinds returns the field kinds of a new group.
func DefaultKinds() map[string]FieldKind {
	kinds := make(map[string]FieldKind, len(defaultFieldDefs))
	for _, def := range defaultFieldDefs {
		kinds[def.key] = def.kind
	}
	return kinds
}

// DefaultLabels returns the labels of a new group, the actions header included.
func DefaultLabels() map[string]string {
	labels := make(map[string]string, len(defaultFieldDefs)+1)
	for _, def := range defaultFieldDefs {
		labels[def.key] = def.label
	}
	labels[FieldActions] = defaultActionsLabel
	return labels
}

// DefaultKind is the kind given to a column added without one.
// The notes column is recognized by name, every other key is text.
func DefaultKind(key string) FieldKind {
	if key == FieldAdditionalTask {
		return KindNoteList
	}
	return KindText
}

func isReserved(key string) bool {
	return key == FieldID || key == FieldName || key == FieldActions
}
