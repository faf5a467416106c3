package roster

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Reserved keys
const (
	FieldID      = "id" // student id in the stored record, never a column
	FieldName    = "name"
	FieldActions = "actions" // presentation only: never a data field, may have a label

	FieldDoska          = "doska"
	FieldEssential      = "essential"
	FieldSpeaking       = "speaking"
	FieldListening      = "listening"
	FieldMindset        = "mindset"
	FieldMurphy         = "murphy"
	FieldAdditionalTask = "additionalTask"
	FieldDestination    = "destination"
	FieldDone           = "done"
)

// FieldKind is the declared type of a field.
type FieldKind int

const (
	KindUnset FieldKind = iota
	KindBoolean
	KindText
	KindNoteList
)

var kindNames = map[FieldKind]string{
	KindBoolean:  "boolean",
	KindText:     "text",
	KindNoteList: "notes",
}

func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unset"
}

func (k FieldKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind parses "boolean", "text" or "notes". An empty string gives KindUnset.
func ParseKind(s string) (FieldKind, error) {
	if s == "" {
		return KindUnset, nil
	}
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnset, errors.Errorf("unknown field kind %q", s)
}

func (k FieldKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.Errorf("cannot marshal field kind %d", int(k))
	}
	return json.Marshal(k.String())
}

func (k *FieldKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kind, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// Value is one student's value for one field: a tagged variant over the field kinds.
type Value struct {
	Kind  FieldKind
	Bool  bool
	Text  string
	Notes []string
}

func BoolValue(b bool) Value       { return Value{Kind: KindBoolean, Bool: b} }
func TextValue(s string) Value     { return Value{Kind: KindText, Text: s} }
func NotesValue(n ...string) Value { return Value{Kind: KindNoteList, Notes: append([]string{}, n...)} }

// DefaultValue returns the empty value of kind.
func DefaultValue(kind FieldKind) Value {
	switch kind {
	case KindBoolean:
		return BoolValue(false)
	case KindNoteList:
		return NotesValue()
	default:
		return TextValue("")
	}
}

// IsEmpty reports whether v holds its kind's default value.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindBoolean:
		return !v.Bool
	case KindNoteList:
		return len(v.Notes) == 0
	default:
		return v.Text == ""
	}
}

func (v Value) clone() Value {
	if v.Notes != nil {
		v.Notes = append([]string{}, v.Notes...)
	}
	return v
}

func (v Value) String() string {
	switch v.Kind {
	case KindBoolean:
		return fmt.Sprint(v.Bool)
	case KindNoteList:
		return fmt.Sprint(v.Notes)
	default:
		return v.Text
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBoolean:
		return json.Marshal(v.Bool)
	case KindNoteList:
		if v.Notes == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Notes)
	default:
		return json.Marshal(v.Text)
	}
}

// UnmarshalJSON infers the kind from the stored shape; Normalize reconciles it with the group's kinds.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case bool:
		*v = BoolValue(val)
	case string:
		*v = TextValue(val)
	case []interface{}:
		notes := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				notes = append(notes, s)
			} else if item != nil {
				notes = append(notes, fmt.Sprint(item))
			}
		}
		*v = NotesValue(notes...)
	case nil:
		*v = Value{}
	default:
		*v = TextValue(fmt.Sprint(val))
	}
	return nil
}

// ParseValue decodes a value given by a user: a boolean, a string or a list of strings.
// Unlike UnmarshalJSON it does not tolerate other shapes.
func ParseValue(data []byte) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Value{}, errors.Wrap(err, "decoding value")
	}
	switch val := raw.(type) {
	case bool:
		return BoolValue(val), nil
	case string:
		return TextValue(val), nil
	case []interface{}:
		notes := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return Value{}, ErrKindMismatch
			}
			notes = append(notes, s)
		}
		return NotesValue(notes...), nil
	default:
		return Value{}, ErrKindMismatch
	}
}

// Student is one row of a group. Values holds one entry per field of the owning group, `name` included.
type Student struct {
	ID     string
	Values map[string]Value
}

func (s Student) Name() string {
	return s.Values[FieldName].Text
}

// Value returns the student's value for field and whether it is set.
func (s Student) Value(field string) (Value, bool) {
	v, ok := s.Values[field]
	return v, ok
}

func (s Student) Clone() Student {
	values := make(map[string]Value, len(s.Values))
	for k, v := range s.Values {
		values[k] = v.clone()
	}
	return Student{ID: s.ID, Values: values}
}

// MarshalJSON writes the student as a flat record: {"id": .., "name": .., "<field>": <value>, ...}.
func (s Student) MarshalJSON() ([]byte, error) {
	rec := make(map[string]interface{}, len(s.Values)+1)
	for k, v := range s.Values {
		rec[k] = v
	}
	rec[FieldID] = s.ID
	return json.Marshal(rec)
}

func (s *Student) UnmarshalJSON(data []byte) error {
	var rec map[string]json.RawMessage
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	st := Student{Values: make(map[string]Value, len(rec))}
	for k, raw := range rec {
		if k == FieldID {
			id, err := decodeStudentID(raw)
			if err != nil {
				return errors.Wrap(err, "decoding student id")
			}
			st.ID = id
			continue
		}
		var v Value
		if err := json.Unmarshal(raw, &v); err != nil {
			return errors.Wrapf(err, "decoding student field %q", k)
		}
		st.Values[k] = v
	}
	*s = st
	return nil
}

// decodeStudentID accepts the string ids of current snapshots and the numeric ids of the first releases.
func decodeStudentID(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var id interface{}
	if err := dec.Decode(&id); err != nil {
		return "", err
	}
	switch id := id.(type) {
	case nil:
		return "", nil
	case string:
		return id, nil
	case json.Number:
		return id.String(), nil
	default:
		return "", errors.Errorf("unexpected student id %s", raw)
	}
}

// Group is a named collection of students sharing one column schema.
type Group struct {
	ID       int64                `json:"id"`
	Name     string               `json:"groupName"`
	Students []Student            `json:"students"`
	Fields   []string             `json:"fields"`
	Kinds    map[string]FieldKind `json:"kinds"`
	Labels   map[string]string    `json:"labels"`
}

// HasField reports whether field is a data field of the group.
func (g Group) HasField(field string) bool {
	for _, f := range g.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Kind returns the declared kind of field, KindUnset if field is not a data field.
func (g Group) Kind(field string) FieldKind {
	if !g.HasField(field) {
		return KindUnset
	}
	return g.Kinds[field]
}

// Label returns the display label of key, falling back to the raw key.
func (g Group) Label(key string) string {
	if label, ok := g.Labels[key]; ok && label != "" {
		return label
	}
	return key
}

// StudentIndex returns the position of the student with id, -1 if absent.
func (g Group) StudentIndex(id string) int {
	for i, st := range g.Students {
		if st.ID == id {
			return i
		}
	}
	return -1
}

// NewStudentValues returns a value set holding the default value of every field of the group.
func (g Group) NewStudentValues() map[string]Value {
	values := make(map[string]Value, len(g.Fields))
	for _, f := range g.Fields {
		values[f] = DefaultValue(g.Kinds[f])
	}
	return values
}

func (g Group) Clone() Group {
	c := g
	c.Students = make([]Student, len(g.Students))
	for i, st := range g.Students {
		c.Students[i] = st.Clone()
	}
	c.Fields = append([]string{}, g.Fields...)
	c.Kinds = make(map[string]FieldKind, len(g.Kinds))
	for k, v := range g.Kinds {
		c.Kinds[k] = v
	}
	c.Labels = make(map[string]string, len(g.Labels))
	for k, v := range g.Labels {
		c.Labels[k] = v
	}
	return c
}

// Snapshot is the full serializable state of all groups.
type Snapshot struct {
	Version int     `json:"version"`
	Groups  []Group `json:"groups"`
}

// SchemaVersion is the current snapshot schema version.
// 1: bare array of groups, no kinds (written by the first releases). 2: versioned envelope with kinds.
const SchemaVersion = 2

func (s Snapshot) Clone() Snapshot {
	c := Snapshot{Version: s.Version, Groups: make([]Group, len(s.Groups))}
	for i, g := range s.Groups {
		c.Groups[i] = g.Clone()
	}
	return c
}
