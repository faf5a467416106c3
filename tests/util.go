package testutil

import (
	"context"
	"testing"

	"github.com/JaMeS-18-18/ForPluto/core"
	"github.com/JaMeS-18-18/ForPluto/core/roster"
	logsvc "github.com/JaMeS-18-18/ForPluto/services/logger"
	inmemdb "github.com/JaMeS-18-18/ForPluto/storage/database/inmem"
)

const StoreKey = "groups"

// NewService returns an initialized roster.Service over a fresh in-memory store.
func NewService(t *testing.T) (*roster.Service, core.KVStore, *logsvc.MemoryLogger) {
	t.Helper()

	kv := inmemdb.Open()
	logger := logsvc.NewMemoryLogger()
	svc := roster.NewService(roster.NewStore(kv, StoreKey, logger), logger)
	svc.Init(context.Background())
	return svc, kv, logger
}

// CreateGroup adds a group and selects it.
func CreateGroup(t *testing.T, svc *roster.Service, name string) roster.Group {
	t.Helper()

	grp, err := svc.AddGroup(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	if err = svc.SelectGroup(grp.ID); err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	return grp
}

// CreateStudents adds students to a selected group; the last name ends up first.
func CreateStudents(t *testing.T, svc *roster.Service, groupID int64, names ...string) []roster.Student {
	t.Helper()

	students := make([]roster.Student, 0, len(names))
	for _, name := range names {
		st, err := svc.AddStudent(context.Background(), groupID, name)
		if err != nil {
			t.Fatalf("CreateStudents() failed: %v", err)
		}
		students = append(students, st)
	}
	return students
}

// MustGroup fetches a group.
func MustGroup(t *testing.T, svc *roster.Service, id int64) roster.Group {
	t.Helper()

	grp, err := svc.Group(id)
	if err != nil {
		t.Fatalf("MustGroup() failed: %v", err)
	}
	return grp
}
