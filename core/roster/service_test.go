package roster_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
	logsvc "github.com/JaMeS-18-18/ForPluto/services/logger"
	"github.com/JaMeS-18-18/ForPluto/tests"
)

var ctx = context.Background()

// assertInSync checks that every student holds exactly the group's fields, with values of the declared kinds.
func assertInSync(t *testing.T, grp roster.Group) {
	t.Helper()

	want := append([]string{}, grp.Fields...)
	sort.Strings(want)
	for _, st := range grp.Students {
		got := make([]string, 0, len(st.Values))
		for k, v := range st.Values {
			got = append(got, k)
			if v.Kind != grp.Kinds[k] {
				t.Errorf("student %s: field %q has kind %v, want %v", st.ID, k, v.Kind, grp.Kinds[k])
			}
		}
		sort.Strings(got)
		assert.Equal(t, want, got, "student %s keys", st.ID)
	}
	for _, f := range grp.Fields {
		if !grp.Kinds[f].Valid() {
			t.Errorf("field %q has no kind", f)
		}
	}
}

func TestService_AddGroup(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	testutil.CreateGroup(t, svc, "English")

	tests := []struct {
		name      string
		groupName string
		wantErr   bool
	}{
		{name: "empty name", groupName: "", wantErr: true},
		{name: "blank name", groupName: "   ", wantErr: true},
		{name: "valid name", groupName: "Math"},
		{name: "name is trimmed", groupName: "  Physics "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := svc.Groups()

			grp, err := svc.AddGroup(ctx, tt.groupName)
			after := svc.Groups()
			if tt.wantErr {
				assert.True(t, core.IsValidationError(err), "AddGroup() error = %v, want validation error", err)
				assert.Equal(t, before, after)
				return
			}
			require.NoError(t, err)
			require.Len(t, after, len(before)+1)
			assert.Equal(t, grp.ID, after[0].ID, "new group must come first")
			assert.Equal(t, core.CleanString(tt.groupName), after[0].Name)
			assert.Equal(t, roster.DefaultFields(), after[0].Fields)
			assert.Equal(t, roster.DefaultLabels(), after[0].Labels)
			assert.Equal(t, roster.DefaultKinds(), after[0].Kinds)
			assert.Empty(t, after[0].Students)
		})
	}
}

func TestService_AddGroup_uniqueIDs(t *testing.T) {
	svc, _, _ := testutil.NewService(t)

	seen := make(map[int64]bool)
	for i := 0; i < 20; i++ {
		grp, err := svc.AddGroup(ctx, "G")
		require.NoError(t, err)
		require.False(t, seen[grp.ID], "duplicate group id %d", grp.ID)
		seen[grp.ID] = true
	}
}

func TestService_RemoveGroup(t *testing.T) {
	t.Run("selected group clears the selection", func(t *testing.T) {
		svc, _, _ := testutil.NewService(t)
		grp := testutil.CreateGroup(t, svc, "A")
		testutil.CreateStudents(t, svc, grp.ID, "Ali", "Vali")

		require.NoError(t, svc.RemoveGroup(ctx, grp.ID))
		_, selected := svc.Selected()
		assert.False(t, selected)
		assert.Empty(t, svc.Groups())
		_, err := svc.Group(grp.ID)
		assert.Equal(t, roster.ErrGroupNotFound, err)
	})

	t.Run("other group keeps the selection", func(t *testing.T) {
		svc, _, _ := testutil.NewService(t)
		other := testutil.CreateGroup(t, svc, "A")
		grp := testutil.CreateGroup(t, svc, "B")

		require.NoError(t, svc.RemoveGroup(ctx, other.ID))
		id, selected := svc.Selected()
		assert.True(t, selected)
		assert.Equal(t, grp.ID, id)
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, _, _ := testutil.NewService(t)
		assert.Equal(t, roster.ErrGroupNotFound, svc.RemoveGroup(ctx, 42))
	})
}

func TestService_SelectGroup(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")

	assert.Equal(t, roster.ErrGroupNotFound, svc.SelectGroup(grp.ID+1))
	id, _ := svc.Selected()
	assert.Equal(t, grp.ID, id, "failed selection must keep the previous one")

	svc.ClearSelection()
	_, selected := svc.Selected()
	assert.False(t, selected)
}

func TestService_requiresSelection(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	st := testutil.CreateStudents(t, svc, grp.ID, "Ali")[0]
	svc.ClearSelection()
	before := svc.Groups()

	ops := map[string]func() error{
		"AddStudent": func() error { _, err := svc.AddStudent(ctx, grp.ID, "Vali"); return err },
		"InsertStudentBelow": func() error {
			_, err := svc.InsertStudentBelow(ctx, grp.ID, 0)
			return err
		},
		"RemoveStudent": func() error { return svc.RemoveStudent(ctx, grp.ID, st.ID) },
		"UpdateField": func() error {
			return svc.UpdateField(ctx, grp.ID, st.ID, roster.FieldDestination, roster.TextValue("x"))
		},
		"ToggleField":  func() error { _, err := svc.ToggleField(ctx, grp.ID, st.ID, roster.FieldDoska); return err },
		"AddColumn":    func() error { return svc.AddColumn(ctx, grp.ID, "homework", roster.KindUnset) },
		"RemoveColumn": func() error { return svc.RemoveColumn(ctx, grp.ID, roster.FieldDoska) },
		"UpdateLabel":  func() error { return svc.UpdateLabel(ctx, grp.ID, roster.FieldDoska, "Board") },
		"AddNote": func() error {
			_, err := svc.AddNote(ctx, grp.ID, st.ID, roster.FieldAdditionalTask)
			return err
		},
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, roster.ErrNoGroupSelected, op())
			assert.Equal(t, before, svc.Groups())
		})
	}
}

func TestService_AddStudent(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")

	_, err := svc.AddStudent(ctx, grp.ID, "  ")
	assert.True(t, core.IsValidationError(err), "AddStudent() error = %v, want validation error", err)

	first := testutil.CreateStudents(t, svc, grp.ID, "Ali")[0]
	second, err := svc.AddStudent(ctx, grp.ID, " Vali ")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	grp = testutil.MustGroup(t, svc, grp.ID)
	require.Len(t, grp.Students, 2)
	assert.Equal(t, "Vali", grp.Students[0].Name(), "new student must come first")
	assert.Equal(t, "Ali", grp.Students[1].Name())

	st := grp.Students[0]
	assert.Equal(t, roster.BoolValue(false), st.Values[roster.FieldDoska])
	assert.Equal(t, roster.TextValue(""), st.Values[roster.FieldDestination])
	assert.Equal(t, roster.NotesValue(), st.Values[roster.FieldAdditionalTask])
	assertInSync(t, grp)
}

func TestService_InsertStudentBelow(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	testutil.CreateStudents(t, svc, grp.ID, "C", "B", "A") // A, B, C

	tests := []struct {
		name    string
		index   int
		wantPos int
		wantErr error
	}{
		{name: "below first", index: 0, wantPos: 1},
		{name: "below last", index: 3, wantPos: 4},
		{name: "top", index: -1, wantPos: 0},
		{name: "too big", index: 99, wantErr: roster.ErrIndexOutOfRange},
		{name: "too small", index: -2, wantErr: roster.ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.MustGroup(t, svc, grp.ID)
			st, err := svc.InsertStudentBelow(ctx, grp.ID, tt.index)
			after := testutil.MustGroup(t, svc, grp.ID)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Equal(t, before, after)
				return
			}
			require.NoError(t, err)
			require.Len(t, after.Students, len(before.Students)+1)
			assert.Equal(t, st.ID, after.Students[tt.wantPos].ID)
			assert.Equal(t, "", after.Students[tt.wantPos].Name())
			assertInSync(t, after)
		})
	}
}

func TestService_RemoveStudent(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	sts := testutil.CreateStudents(t, svc, grp.ID, "Ali", "Vali")

	require.NoError(t, svc.RemoveStudent(ctx, grp.ID, sts[0].ID))
	assert.Equal(t, roster.ErrStudentNotFound, svc.RemoveStudent(ctx, grp.ID, sts[0].ID))

	grp = testutil.MustGroup(t, svc, grp.ID)
	require.Len(t, grp.Students, 1)
	assert.Equal(t, sts[1].ID, grp.Students[0].ID)
}

func TestService_UpdateField(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	st := testutil.CreateStudents(t, svc, grp.ID, "Ali")[0]

	tests := []struct {
		name    string
		field   string
		value   roster.Value
		wantErr error
	}{
		{name: "text", field: roster.FieldDestination, value: roster.TextValue("Tashkent")},
		{name: "rename", field: roster.FieldName, value: roster.TextValue("Alisher")},
		{name: "boolean", field: roster.FieldDone, value: roster.BoolValue(true)},
		{name: "notes", field: roster.FieldAdditionalTask, value: roster.NotesValue("essay", "analysis")},
		{name: "bool into text", field: roster.FieldDestination, value: roster.BoolValue(true), wantErr: roster.ErrKindMismatch},
		{name: "text into notes", field: roster.FieldAdditionalTask, value: roster.TextValue("essay"), wantErr: roster.ErrKindMismatch},
		{name: "unknown field", field: "homework", value: roster.TextValue("x"), wantErr: roster.ErrUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.MustGroup(t, svc, grp.ID)
			err := svc.UpdateField(ctx, grp.ID, st.ID, tt.field, tt.value)
			after := testutil.MustGroup(t, svc, grp.ID)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Equal(t, before, after)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, after.Students[0].Values[tt.field])
		})
	}

	assert.Equal(t, roster.ErrStudentNotFound,
		svc.UpdateField(ctx, grp.ID, "nope", roster.FieldDestination, roster.TextValue("x")))
}

func TestService_ToggleField(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	st := testutil.CreateStudents(t, svc, grp.ID, "Ali")[0]

	val, err := svc.ToggleField(ctx, grp.ID, st.ID, roster.FieldDoska)
	require.NoError(t, err)
	assert.True(t, val)
	val, err = svc.ToggleField(ctx, grp.ID, st.ID, roster.FieldDoska)
	require.NoError(t, err)
	assert.False(t, val)

	for _, field := range []string{roster.FieldName, roster.FieldDestination, roster.FieldAdditionalTask} {
		_, err = svc.ToggleField(ctx, grp.ID, st.ID, field)
		assert.Equal(t, roster.ErrKindMismatch, err, "ToggleField(%q)", field)
	}
}

func TestService_Columns(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	testutil.CreateStudents(t, svc, grp.ID, "Ali", "Vali", "Soli")

	steps := []struct {
		add, remove string
		kind        roster.FieldKind
		wantErr     error
	}{
		{add: "homework"},
		{add: "attended", kind: roster.KindBoolean},
		{remove: roster.FieldDoska},
		{remove: roster.FieldAdditionalTask},
		{add: roster.FieldAdditionalTask},
		{add: "homework", wantErr: roster.ErrColumnExists},
		{add: roster.FieldName, wantErr: roster.ErrReservedColumn},
		{add: roster.FieldActions, wantErr: roster.ErrReservedColumn},
		{add: roster.FieldID, wantErr: roster.ErrReservedColumn},
		{remove: roster.FieldName, wantErr: roster.ErrReservedColumn},
		{remove: roster.FieldID, wantErr: roster.ErrReservedColumn},
		{remove: roster.FieldActions, wantErr: roster.ErrReservedColumn},
		{remove: "missing", wantErr: roster.ErrUnknownField},
		{remove: "homework"},
		{add: "homework", kind: roster.KindNoteList},
		{remove: "attended"},
	}
	for _, step := range steps {
		before := testutil.MustGroup(t, svc, grp.ID)
		var err error
		if step.add != "" {
			err = svc.AddColumn(ctx, grp.ID, step.add, step.kind)
		} else {
			err = svc.RemoveColumn(ctx, grp.ID, step.remove)
		}
		after := testutil.MustGroup(t, svc, grp.ID)

		if step.wantErr != nil {
			assert.Equal(t, step.wantErr, err, "step %+v", step)
			assert.Equal(t, before, after, "step %+v must not change the group", step)
		} else {
			require.NoError(t, err, "step %+v", step)
		}
		assertInSync(t, after)
		assert.True(t, after.HasField(roster.FieldName))
		assert.False(t, after.HasField(roster.FieldActions))
	}

	grp = testutil.MustGroup(t, svc, grp.ID)
	assert.Equal(t, []string{
		roster.FieldName, roster.FieldEssential, roster.FieldSpeaking, roster.FieldListening, roster.FieldMindset,
		roster.FieldMurphy, roster.FieldDestination, roster.FieldDone, roster.FieldAdditionalTask, "homework",
	}, grp.Fields)
	assert.Equal(t, roster.KindNoteList, grp.Kinds[roster.FieldAdditionalTask], "additionalTask defaults to a notes column")
	assert.Equal(t, roster.KindNoteList, grp.Kinds["homework"])
	assert.Equal(t, "homework", grp.Labels["homework"])
	_, hasLabel := grp.Labels[roster.FieldDoska]
	assert.False(t, hasLabel, "removed column must lose its label")
}

func TestService_AddColumn_otherGroupsUntouched(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	other := testutil.CreateGroup(t, svc, "A")
	testutil.CreateStudents(t, svc, other.ID, "Ali")
	grp := testutil.CreateGroup(t, svc, "B")

	require.NoError(t, svc.AddColumn(ctx, grp.ID, " homework ", roster.KindUnset))
	assert.True(t, testutil.MustGroup(t, svc, grp.ID).HasField("homework"), "key must be trimmed")
	assert.Equal(t, testutil.MustGroup(t, svc, other.ID).Fields, roster.DefaultFields())

	err := svc.AddColumn(ctx, grp.ID, "  ", roster.KindUnset)
	assert.True(t, core.IsValidationError(err), "AddColumn() error = %v, want validation error", err)
}

func TestService_AddColumn_zeroKind(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	testutil.CreateStudents(t, svc, grp.ID, "Ali")

	tests := []struct {
		key  string
		want roster.FieldKind
	}{
		{key: roster.FieldAdditionalTask, want: roster.KindNoteList},
		{key: roster.FieldDone, want: roster.KindText},
		{key: roster.FieldDoska, want: roster.KindText},
		{key: "homework", want: roster.KindText},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if testutil.MustGroup(t, svc, grp.ID).HasField(tt.key) {
				require.NoError(t, svc.RemoveColumn(ctx, grp.ID, tt.key))
			}
			require.NoError(t, svc.AddColumn(ctx, grp.ID, tt.key, roster.KindUnset))

			got := testutil.MustGroup(t, svc, grp.ID)
			assert.Equal(t, tt.want, got.Kinds[tt.key])
			assert.Equal(t, roster.DefaultValue(tt.want), got.Students[0].Values[tt.key])
		})
	}
}

func TestService_onlySelectedGroupChanges(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	other := testutil.CreateGroup(t, svc, "A")
	st := testutil.CreateStudents(t, svc, other.ID, "Ali")[0]
	testutil.CreateGroup(t, svc, "B")
	before := testutil.MustGroup(t, svc, other.ID)

	_, err := svc.AddStudent(ctx, other.ID, "Vali")
	assert.Equal(t, roster.ErrNotSelected, err)
	assert.Equal(t, roster.ErrNotSelected, svc.UpdateField(ctx, other.ID, st.ID, roster.FieldDestination, roster.TextValue("x")))
	assert.Equal(t, roster.ErrNotSelected, svc.AddColumn(ctx, other.ID, "homework", roster.KindUnset))
	assert.Equal(t, before, testutil.MustGroup(t, svc, other.ID))

	require.NoError(t, svc.SelectGroup(other.ID))
	_, err = svc.AddStudent(ctx, other.ID, "Vali")
	assert.NoError(t, err)
}

func TestService_UpdateLabel(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")

	require.NoError(t, svc.UpdateLabel(ctx, grp.ID, roster.FieldDoska, "Board"))
	require.NoError(t, svc.UpdateLabel(ctx, grp.ID, roster.FieldActions, "Amallar"))
	assert.Equal(t, roster.ErrUnknownField, svc.UpdateLabel(ctx, grp.ID, "missing", "x"))

	grp = testutil.MustGroup(t, svc, grp.ID)
	assert.Equal(t, "Board", grp.Label(roster.FieldDoska))
	assert.Equal(t, "Amallar", grp.Label(roster.FieldActions))
	assert.Equal(t, roster.DefaultFields(), grp.Fields)
}

func TestService_Notes(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	st := testutil.CreateStudents(t, svc, grp.ID, "Ali")[0]
	field := roster.FieldAdditionalTask

	notes := func() []string {
		return testutil.MustGroup(t, svc, grp.ID).Students[0].Values[field].Notes
	}
	require.NoError(t, svc.UpdateField(ctx, grp.ID, st.ID, field, roster.NotesValue("essay")))
	initial := len(notes())

	idx, err := svc.AddNote(ctx, grp.ID, st.ID, field)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	require.NoError(t, svc.UpdateNote(ctx, grp.ID, st.ID, field, idx, "analysis"))
	assert.Equal(t, []string{"essay", "analysis"}, notes())
	require.NoError(t, svc.RemoveNote(ctx, grp.ID, st.ID, field, 0))
	assert.Equal(t, []string{"analysis"}, notes())
	require.NoError(t, svc.RemoveNote(ctx, grp.ID, st.ID, field, 0))
	assert.Len(t, notes(), initial-1)

	t.Run("add update remove keeps length", func(t *testing.T) {
		before := len(notes())
		idx, err := svc.AddNote(ctx, grp.ID, st.ID, field)
		require.NoError(t, err)
		require.NoError(t, svc.UpdateNote(ctx, grp.ID, st.ID, field, idx, "text"))
		require.NoError(t, svc.RemoveNote(ctx, grp.ID, st.ID, field, idx))
		assert.Len(t, notes(), before)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := svc.AddNote(ctx, grp.ID, st.ID, field)
		require.NoError(t, err)
		before := notes()
		for _, i := range []int{-1, 1, 10} {
			assert.Equal(t, roster.ErrNoteIndex, svc.RemoveNote(ctx, grp.ID, st.ID, field, i))
			assert.Equal(t, roster.ErrNoteIndex, svc.UpdateNote(ctx, grp.ID, st.ID, field, i, "x"))
			assert.Equal(t, before, notes())
		}
	})

	t.Run("not a notes field", func(t *testing.T) {
		_, err := svc.AddNote(ctx, grp.ID, st.ID, roster.FieldDestination)
		assert.Equal(t, roster.ErrKindMismatch, err)
	})
}

func TestService_persistence(t *testing.T) {
	t.Run("empty roster round trip", func(t *testing.T) {
		svc, kv, _ := testutil.NewService(t)
		grp := testutil.CreateGroup(t, svc, "A")
		require.NoError(t, svc.RemoveGroup(ctx, grp.ID))

		data, err := kv.Get(ctx, testutil.StoreKey)
		require.NoError(t, err, "an empty roster must still be written")

		reloaded := roster.NewService(roster.NewStore(kv, testutil.StoreKey, logsvc.NewMemoryLogger()), logsvc.NewMemoryLogger())
		reloaded.Init(ctx)
		assert.Empty(t, reloaded.Groups())
		assert.JSONEq(t, `{"version":2,"groups":[]}`, string(data))
	})

	t.Run("custom column survives reload", func(t *testing.T) {
		svc, kv, _ := testutil.NewService(t)
		grp := testutil.CreateGroup(t, svc, "A")
		sts := testutil.CreateStudents(t, svc, grp.ID, "Ali", "Vali")
		require.NoError(t, svc.AddColumn(ctx, grp.ID, "homework", roster.KindUnset))
		require.NoError(t, svc.UpdateField(ctx, grp.ID, sts[0].ID, "homework", roster.TextValue("p. 12")))

		reloaded := roster.NewService(roster.NewStore(kv, testutil.StoreKey, logsvc.NewMemoryLogger()), logsvc.NewMemoryLogger())
		reloaded.Init(ctx)
		got, err := reloaded.Group(grp.ID)
		require.NoError(t, err)
		assert.Equal(t, testutil.MustGroup(t, svc, grp.ID), got)
		for _, st := range got.Students {
			_, ok := st.Value("homework")
			assert.True(t, ok, "student %s lost the custom column", st.Name())
		}
		_, selected := reloaded.Selected()
		assert.False(t, selected, "selection is not persisted")
	})

	t.Run("id cannot shadow the student id", func(t *testing.T) {
		svc, kv, _ := testutil.NewService(t)
		grp := testutil.CreateGroup(t, svc, "A")
		st := testutil.CreateStudents(t, svc, grp.ID, "Ali")[0]
		assert.Equal(t, roster.ErrReservedColumn, svc.AddColumn(ctx, grp.ID, "id", roster.KindUnset))

		reloaded := roster.NewService(roster.NewStore(kv, testutil.StoreKey, logsvc.NewMemoryLogger()), logsvc.NewMemoryLogger())
		reloaded.Init(ctx)
		got, err := reloaded.Group(grp.ID)
		require.NoError(t, err)
		assert.False(t, got.HasField("id"))
		assert.Equal(t, st.ID, got.Students[0].ID)
	})
}

type failingRepo struct {
	roster.Repository
	fail bool
}

func (r *failingRepo) Save(ctx context.Context, snap roster.Snapshot) error {
	if r.fail {
		return errors.New("disk full")
	}
	return r.Repository.Save(ctx, snap)
}

func TestService_saveFailureKeepsState(t *testing.T) {
	_, kv, logger := testutil.NewService(t)
	repo := &failingRepo{Repository: roster.NewStore(kv, testutil.StoreKey, logger)}
	svc := roster.NewService(repo, logger)
	svc.Init(ctx)
	grp := testutil.CreateGroup(t, svc, "A")

	repo.fail = true
	before := svc.Groups()
	_, err := svc.AddStudent(ctx, grp.ID, "Ali")
	assert.Error(t, err)
	assert.Error(t, svc.RemoveGroup(ctx, grp.ID))
	assert.Equal(t, before, svc.Groups())
	id, _ := svc.Selected()
	assert.Equal(t, grp.ID, id)
	assert.NotEmpty(t, logger.Entries("ERROR"))
}

func TestService_returnsCopies(t *testing.T) {
	svc, _, _ := testutil.NewService(t)
	grp := testutil.CreateGroup(t, svc, "A")
	testutil.CreateStudents(t, svc, grp.ID, "Ali")

	snap := svc.Groups()
	snap[0].Name = "changed"
	snap[0].Fields[1] = "changed"
	snap[0].Labels[roster.FieldDoska] = "changed"
	snap[0].Students[0].Values[roster.FieldName] = roster.TextValue("changed")

	got := testutil.MustGroup(t, svc, grp.ID)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, roster.FieldDoska, got.Fields[1])
	assert.Equal(t, "Doska", got.Labels[roster.FieldDoska])
	assert.Equal(t, "Ali", got.Students[0].Name())
}
