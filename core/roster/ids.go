package roster

import (
	"time"

	"github.com/google/uuid"
)

var nowFunc = time.Now // mockable

// newGroupID returns a creation-time derived id (unix milliseconds), bumped past last to stay unique.
func newGroupID(last int64) int64 {
	id := nowFunc().UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// newStudentID returns a time-ordered random id (UUIDv7).
func newStudentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
