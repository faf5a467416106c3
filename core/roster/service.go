package roster

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/JaMeS-18-18/ForPluto/core"
)

var (
	// errors
	ErrNoGroupSelected = errors.New("no group selected")
	ErrNotSelected     = errors.New("group is not the selected group")
	ErrGroupNotFound   = errors.New("group not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrUnknownField    = errors.New("unknown field")
	ErrReservedColumn  = errors.New("id, name and actions are reserved column keys")
	ErrColumnExists    = errors.New("a column with this key already exists")
	ErrKindMismatch    = errors.New("value kind does not match the field kind")
	ErrNoteIndex       = errors.New("note index out of range")
	ErrIndexOutOfRange = errors.New("student index out of range")
)

type (
	// Repository persists whole snapshots. *Store is the production implementation.
	Repository interface {
		Load(ctx context.Context) (Snapshot, bool)
		Save(ctx context.Context, snap Snapshot) error
	}

	// Service owns the group list and the selected group. Every mutation replaces the touched group
	// with a new value and writes the whole snapshot; on a failed write the previous state is kept.
	Service struct {
		repo   Repository
		logger core.Logger

		mu       sync.Mutex
		groups   []Group
		selected int64 // 0: none
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger, groups: []Group{}}
}

// Init loads and normalizes the persisted snapshot. A missing or malformed snapshot gives an empty roster.
func (svc *Service) Init(ctx context.Context) {
	snap, ok := svc.repo.Load(ctx)
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.selected = 0
	if !ok {
		svc.groups = []Group{}
		return
	}
	svc.groups = Normalize(snap).Groups
	svc.logger.Debug("roster.Service.Init: snapshot loaded", map[string]interface{}{
		"version": snap.Version,
		"groups":  len(svc.groups),
	})
}

// Groups returns a copy of every group, newest first.
func (svc *Service) Groups() []Group {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	groups := make([]Group, len(svc.groups))
	for i, g := range svc.groups {
		groups[i] = g.Clone()
	}
	return groups
}

// Snapshot returns a copy of the current state.
func (svc *Service) Snapshot() Snapshot {
	return Snapshot{Version: SchemaVersion, Groups: svc.Groups()}
}

func (svc *Service) Group(id int64) (Group, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := svc.groupIndex(id)
	if idx < 0 {
		return Group{}, ErrGroupNotFound
	}
	return svc.groups[idx].Clone(), nil
}

// Selected returns the selected group id and whether a group is selected.
func (svc *Service) Selected() (int64, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.selected, svc.selected != 0
}

func (svc *Service) SelectGroup(id int64) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.groupIndex(id) < 0 {
		return ErrGroupNotFound
	}
	svc.selected = id
	return nil
}

func (svc *Service) ClearSelection() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.selected = 0
}

// Groups

// NewGroup contains information needed to create a new Group.
type NewGroup struct {
	Name string `json:"groupName" validate:"required"`
}

func (ng *NewGroup) Validate() error {
	ng.Name = core.CleanString(ng.Name)
	return core.CheckStruct(ng)
}

// AddGroup puts a new group with the default columns in front of the list.
func (svc *Service) AddGroup(ctx context.Context, name string) (Group, error) {
	ng := NewGroup{Name: name}
	if err := ng.Validate(); err != nil {
		return Group{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	var lastID int64
	for _, g := range svc.groups {
		if g.ID > lastID {
			lastID = g.ID
		}
	}
	grp := Group{
		ID:       newGroupID(lastID),
		Name:     ng.Name,
		Students: []Student{},
		Fields:   DefaultFields(),
		Kinds:    DefaultKinds(),
		Labels:   DefaultLabels(),
	}

	groups := make([]Group, 0, len(svc.groups)+1)
	groups = append(groups, grp)
	groups = append(groups, svc.groups...)
	if err := svc.commit(ctx, groups); err != nil {
		return Group{}, err
	}
	return grp.Clone(), nil
}

// RemoveGroup deletes a group and its students, clearing the selection if it was selected.
func (svc *Service) RemoveGroup(ctx context.Context, id int64) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	idx := svc.groupIndex(id)
	if idx < 0 {
		return ErrGroupNotFound
	}
	groups := make([]Group, 0, len(svc.groups)-1)
	groups = append(groups, svc.groups[:idx]...)
	groups = append(groups, svc.groups[idx+1:]...)
	if err := svc.commit(ctx, groups); err != nil {
		return err
	}
	if svc.selected == id {
		svc.selected = 0
	}
	return nil
}

// Students

// NewStudent contains information needed to add a Student to a Group.
type NewStudent struct {
	Name string `json:"name" validate:"required"`
}

func (ns *NewStudent) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	return core.CheckStruct(ns)
}

// AddStudent puts a new student with default values in front of the group's students.
func (svc *Service) AddStudent(ctx context.Context, groupID int64, name string) (Student, error) {
	ns := NewStudent{Name: name}
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}

	var st Student
	err := svc.mutateGroup(ctx, groupID, func(g *Group) error {
		st = Student{ID: newStudentID(), Values: g.NewStudentValues()}
		st.Values[FieldName] = TextValue(ns.Name)

		students := make([]Student, 0, len(g.Students)+1)
		students = append(students, st)
		g.Students = append(students, g.Students...)
		return nil
	})
	if err != nil {
		return Student{}, err
	}
	return st.Clone(), nil
}

// InsertStudentBelow inserts a blank student right after position index; -1 inserts at the top.
func (svc *Service) InsertStudentBelow(ctx context.Context, groupID int64, index int) (Student, error) {
	var st Student
	err := svc.mutateGroup(ctx, groupID, func(g *Group) error {
		if index < -1 || index >= len(g.Students) {
			return ErrIndexOutOfRange
		}
		st = Student{ID: newStudentID(), Values: g.NewStudentValues()}

		pos := index + 1
		students := make([]Student, 0, len(g.Students)+1)
		students = append(students, g.Students[:pos]...)
		students = append(students, st)
		g.Students = append(students, g.Students[pos:]...)
		return nil
	})
	if err != nil {
		return Student{}, err
	}
	return st.Clone(), nil
}

func (svc *Service) RemoveStudent(ctx context.Context, groupID int64, studentID string) error {
	return svc.mutateGroup(ctx, groupID, func(g *Group) error {
		idx := g.StudentIndex(studentID)
		if idx < 0 {
			return ErrStudentNotFound
		}
		students := make([]Student, 0, len(g.Students)-1)
		students = append(students, g.Students[:idx]...)
		g.Students = append(students, g.Students[idx+1:]...)
		return nil
	})
}

// UpdateField replaces one value; its kind must be the field's kind.
func (svc *Service) UpdateField(ctx context.Context, groupID int64, studentID, field string, value Value) error {
	return svc.mutateStudent(ctx, groupID, studentID, field, func(g *Group, st *Student) error {
		if value.Kind != g.Kinds[field] {
			return ErrKindMismatch
		}
		st.Values[field] = value.clone()
		return nil
	})
}

// ToggleField flips a boolean field and returns its new value.
func (svc *Service) ToggleField(ctx context.Context, groupID int64, studentID, field string) (bool, error) {
	var toggled bool
	err := svc.mutateStudent(ctx, groupID, studentID, field, func(g *Group, st *Student) error {
		if g.Kinds[field] != KindBoolean {
			return ErrKindMismatch
		}
		toggled = !st.Values[field].Bool
		st.Values[field] = BoolValue(toggled)
		return nil
	})
	return toggled, err
}

// Columns

// NewColumn contains information needed to add a column to a Group.
type NewColumn struct {
	Key  string    `json:"key" validate:"required"`
	Kind FieldKind `json:"kind"`
}

func (nc *NewColumn) Validate() error {
	nc.Key = core.CleanString(nc.Key)
	if err := core.CheckStruct(nc); err != nil {
		return err
	}
	if isReserved(nc.Key) {
		return ErrReservedColumn
	}
	if nc.Kind == KindUnset {
		nc.Kind = DefaultKind(nc.Key)
	}
	if !nc.Kind.Valid() {
		return core.NewValidationError(errors.Errorf("invalid kind %d", int(nc.Kind)),
			core.FieldError{Field: "kind", Error: "invalid field kind"})
	}
	return nil
}

// AddColumn appends a field to the group, labels it with its key and back-fills every student.
// A zero kind makes `additionalTask` a notes column and anything else a text column.
func (svc *Service) AddColumn(ctx context.Context, groupID int64, key string, kind FieldKind) error {
	nc := NewColumn{Key: key, Kind: kind}
	if err := nc.Validate(); err != nil {
		return err
	}

	return svc.mutateGroup(ctx, groupID, func(g *Group) error {
		if g.HasField(nc.Key) {
			return ErrColumnExists
		}
		g.Fields = append(g.Fields, nc.Key)
		g.Kinds[nc.Key] = nc.Kind
		g.Labels[nc.Key] = nc.Key
		for i := range g.Students {
			g.Students[i].Values[nc.Key] = DefaultValue(nc.Kind)
		}
		return nil
	})
}

// RemoveColumn drops a field, its label and every student's value for it.
func (svc *Service) RemoveColumn(ctx context.Context, groupID int64, field string) error {
	if isReserved(field) {
		return ErrReservedColumn
	}
	return svc.mutateGroup(ctx, groupID, func(g *Group) error {
		idx := -1
		for i, f := range g.Fields {
			if f == field {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrUnknownField
		}
		fields := make([]string, 0, len(g.Fields)-1)
		fields = append(fields, g.Fields[:idx]...)
		g.Fields = append(fields, g.Fields[idx+1:]...)
		delete(g.Kinds, field)
		delete(g.Labels, field)
		for i := range g.Students {
			delete(g.Students[i].Values, field)
		}
		return nil
	})
}

// UpdateLabel relabels a field or the actions header.
func (svc *Service) UpdateLabel(ctx context.Context, groupID int64, field, text string) error {
	return svc.mutateGroup(ctx, groupID, func(g *Group) error {
		if field != FieldActions && !g.HasField(field) {
			return ErrUnknownField
		}
		g.Labels[field] = strings.TrimSpace(text)
		return nil
	})
}

// Notes

// AddNote appends an empty note to a notes field and returns its index.
func (svc *Service) AddNote(ctx context.Context, groupID int64, studentID, field string) (int, error) {
	var index int
	err := svc.mutateNotes(ctx, groupID, studentID, field, func(notes []string) ([]string, error) {
		index = len(notes)
		return append(notes, ""), nil
	})
	return index, err
}

func (svc *Service) UpdateNote(ctx context.Context, groupID int64, studentID, field string, index int, text string) error {
	return svc.mutateNotes(ctx, groupID, studentID, field, func(notes []string) ([]string, error) {
		if index < 0 || index >= len(notes) {
			return nil, ErrNoteIndex
		}
		notes[index] = text
		return notes, nil
	})
}

func (svc *Service) RemoveNote(ctx context.Context, groupID int64, studentID, field string, index int) error {
	return svc.mutateNotes(ctx, groupID, studentID, field, func(notes []string) ([]string, error) {
		if index < 0 || index >= len(notes) {
			return nil, ErrNoteIndex
		}
		return append(notes[:index], notes[index+1:]...), nil
	})
}

// helpers; callers must hold svc.mu

func (svc *Service) groupIndex(id int64) int {
	if id == 0 {
		return -1
	}
	for i, g := range svc.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// commit persists groups and only then makes them the current state.
func (svc *Service) commit(ctx context.Context, groups []Group) error {
	if err := svc.repo.Save(ctx, Snapshot{Version: SchemaVersion, Groups: groups}); err != nil {
		svc.logger.Error("roster.Service: saving snapshot", err)
		return errors.Wrap(err, "saving snapshot")
	}
	svc.groups = groups
	return nil
}

// mutateGroup applies fn to a copy of the group and commits it. Only the selected group can be changed.
func (svc *Service) mutateGroup(ctx context.Context, groupID int64, fn func(g *Group) error) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.selected == 0 {
		return ErrNoGroupSelected
	}
	idx := svc.groupIndex(groupID)
	if idx < 0 {
		return ErrGroupNotFound
	}
	if groupID != svc.selected {
		return ErrNotSelected
	}

	grp := svc.groups[idx].Clone()
	if err := fn(&grp); err != nil {
		return err
	}
	groups := make([]Group, len(svc.groups))
	copy(groups, svc.groups)
	groups[idx] = grp
	return svc.commit(ctx, groups)
}

func (svc *Service) mutateStudent(
	ctx context.Context,
	groupID int64,
	studentID, field string,
	fn func(g *Group, st *Student) error,
) error {
	return svc.mutateGroup(ctx, groupID, func(g *Group) error {
		idx := g.StudentIndex(studentID)
		if idx < 0 {
			return ErrStudentNotFound
		}
		if !g.HasField(field) {
			return ErrUnknownField
		}
		return fn(g, &g.Students[idx])
	})
}

func (svc *Service) mutateNotes(
	ctx context.Context,
	groupID int64,
	studentID, field string,
	fn func(notes []string) ([]string, error),
) error {
	return svc.mutateStudent(ctx, groupID, studentID, field, func(g *Group, st *Student) error {
		if g.Kinds[field] != KindNoteList {
			return ErrKindMismatch
		}
		notes, err := fn(append([]string{}, st.Values[field].Notes...))
		if err != nil {
			return err
		}
		st.Values[field] = NotesValue(notes...)
		return nil
	})
}
