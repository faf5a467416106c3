package sqlxstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaMeS-18-18/ForPluto/tests"
)

func TestStore(t *testing.T) {
	testutil.RunKVStoreTests(t, NewStore(testutil.PrepareDB(t)))
}

func TestStore_singleRowPerKey(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareDB(t)
	s := NewStore(db)

	for _, payload := range []string{"[]", `{"version":2,"groups":[]}`, "[]"} {
		require.NoError(t, s.Set(ctx, "groups", []byte(payload)))
	}

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM kv_store WHERE store_key = 'groups'`))
	assert.Equal(t, 1, count)
}
