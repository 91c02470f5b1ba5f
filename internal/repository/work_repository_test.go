package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backend/internal/model"
)

func TestListAllNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkRepository(db)

	base := time.Now().Add(-time.Hour)
	older := &model.Work{UserID: 1, Title: "older", ImageURL: "https://cdn.example.com/1.jpg", CreatedAt: base}
	newer := &model.Work{UserID: 1, Title: "newer", ImageURL: "https://cdn.example.com/2.jpg", CreatedAt: base.Add(time.Minute)}
	tied := &model.Work{UserID: 2, Title: "tied", ImageURL: "https://cdn.example.com/3.jpg", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(tied))

	works, err := repo.ListAll()
	require.NoError(t, err)
	require.Len(t, works, 3)
	// Creation time descending; equal timestamps resolved by id, latest insert first.
	assert.Equal(t, "tied", works[0].Title)
	assert.Equal(t, "newer", works[1].Title)
	assert.Equal(t, "older", works[2].Title)
}

func TestListFavoritedBy(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkRepository(db)
	favRepo := NewFavoriteRepository(db)

	first := seedWork(t, db, 1, "first")
	_ = seedWork(t, db, 1, "unloved")
	third := seedWork(t, db, 2, "third")

	_, err := favRepo.Toggle(7, first.ID)
	require.NoError(t, err)
	_, err = favRepo.Toggle(7, third.ID)
	require.NoError(t, err)

	works, err := repo.ListFavoritedBy(7)
	require.NoError(t, err)
	require.Len(t, works, 2)
	assert.Equal(t, third.ID, works[0].ID)
	assert.Equal(t, first.ID, works[1].ID)

	none, err := repo.ListFavoritedBy(99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteWithFavorites(t *testing.T) {
	db := newTestDB(t)
	repo := NewWorkRepository(db)
	favRepo := NewFavoriteRepository(db)

	doomed := seedWork(t, db, 1, "doomed")
	kept := seedWork(t, db, 1, "kept")
	_, err := favRepo.Toggle(7, doomed.ID)
	require.NoError(t, err)
	_, err = favRepo.Toggle(7, kept.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteWithFavorites(doomed.ID))

	var workCount, favCount int64
	require.NoError(t, db.Model(&model.Work{}).Count(&workCount).Error)
	require.NoError(t, db.Model(&model.Favorite{}).Count(&favCount).Error)
	assert.EqualValues(t, 1, workCount)
	assert.EqualValues(t, 1, favCount)

	// Absent work: zero rows affected, still no error.
	require.NoError(t, repo.DeleteWithFavorites(doomed.ID))
}
