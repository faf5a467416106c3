package testutil

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaMeS-18-18/ForPluto/core"
)

// RunKVStoreTests checks the behaviour every core.KVStore backend must share.
func RunKVStoreTests(t *testing.T, kv core.KVStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get(ctx, "missing")
		assert.Equal(t, core.ErrKeyNotFound, errors.Cause(err))
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "groups", []byte(`{"version":2,"groups":[]}`)))
		got, err := kv.Get(ctx, "groups")
		require.NoError(t, err)
		assert.Equal(t, `{"version":2,"groups":[]}`, string(got))
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "groups", []byte(`[1, 2, 3]`)))
		require.NoError(t, kv.Set(ctx, "groups", []byte(`[]`)))
		got, err := kv.Get(ctx, "groups")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, kv.Set(ctx, "a", []byte("A")))
		require.NoError(t, kv.Set(ctx, "b", []byte("B")))
		got, err := kv.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "A", string(got))
	})

	t.Run("utf-8 payload", func(t *testing.T) {
		payload := `{"groupName":"O'quvchilar ✅"}`
		require.NoError(t, kv.Set(ctx, "utf8", []byte(payload)))
		got, err := kv.Get(ctx, "utf8")
		require.NoError(t, err)
		assert.Equal(t, payload, string(got))
	})
}
