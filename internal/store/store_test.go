package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/bikeshare/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListExplorations(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	cities := []string{"chicago", "washington", "chicago"}
	var ids []int64
	for i, city := range cities {
		start := time.Unix(0, 0).UTC().Add(time.Duration(i) * time.Minute)
		id, err := st.InsertExploration(ctx, model.Exploration{
			StartedAt:   start,
			EndedAt:     start.Add(30 * time.Second),
			City:        city,
			Month:       "all",
			Day:         "friday",
			Rows:        100 + i,
			PagesViewed: i,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := st.ListExplorations(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, 102, all[2].Rows)
	assert.Equal(t, "friday", all[2].Day)
	assert.True(t, all[0].EndedAt.Equal(time.Unix(30, 0)))

	last, err := st.ListExplorations(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	assert.Equal(t, ids[1], last[0].ID)
	assert.Equal(t, ids[2], last[1].ID)

	chi, err := st.ListExplorations(ctx, "chicago", 0)
	require.NoError(t, err)
	require.Len(t, chi, 2)
	assert.Equal(t, ids[0], chi[0].ID)
	assert.Equal(t, ids[2], chi[1].ID)
}
