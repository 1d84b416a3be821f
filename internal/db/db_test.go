package db

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	assert.Error(t, err)
}

func TestSeedGroups(t *testing.T) {
	conn, err := Open("sqlite", "file:seed_groups?mode=memory&cache=shared")
	require.NoError(t, err)
	ctx := context.Background()

	seeds := [][2]string{{"cats", "Cats"}, {"dogs", "Dogs"}}
	require.NoError(t, SeedGroups(ctx, conn, seeds))

	var groups []models.Group
	require.NoError(t, conn.Order("id ASC").Find(&groups).Error)
	require.Len(t, groups, 2)
	assert.Equal(t, "cats", groups[0].Slug)
	assert.Equal(t, "Dogs", groups[1].Title)

	// A non-empty catalog is left alone.
	require.NoError(t, SeedGroups(ctx, conn, [][2]string{{"birds", "Birds"}}))
	var count int64
	conn.Model(&models.Group{}).Count(&count)
	assert.EqualValues(t, 2, count)
}
