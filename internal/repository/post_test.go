package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"venturelink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndGetPreloadsAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.UserTypeStartup)

	post := &models.Post{
		UserID:  author.ID,
		Title:   "Launch update",
		Content: "We shipped the beta.",
	}
	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch update", got.Title)
	assert.Equal(t, author.Username, got.Author.Username)
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.UserTypeInvestor)

	var last *models.Post
	for i := 0; i < 3; i++ {
		p := &models.Post{UserID: author.ID, Title: fmt.Sprintf("post %d", i), Content: "body"}
		require.NoError(t, repo.Create(ctx, p))
		require.NoError(t, db.Model(p).Update("created_at", time.Now().Add(time.Duration(i)*time.Minute)).Error)
		last = p
	}

	posts, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, last.ID, posts[0].ID)
}

func TestPostRepository_GetByUserID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.UserTypeStartup)
	other := createTestUser(t, db, "other", models.UserTypeInvestor)

	require.NoError(t, repo.Create(ctx, &models.Post{UserID: author.ID, Title: "mine", Content: "x"}))
	require.NoError(t, repo.Create(ctx, &models.Post{UserID: other.ID, Title: "theirs", Content: "y"}))

	posts, err := repo.GetByUserID(ctx, author.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "mine", posts[0].Title)
}

func TestPostRepository_DeleteSoftDeletes(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author", models.UserTypeStartup)

	post := &models.Post{UserID: author.ID, Title: "gone soon", Content: "x"}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.Delete(ctx, post.ID))

	_, err := repo.GetByID(ctx, post.ID)
	require.Error(t, err)

	// The row survives for audit under the soft delete.
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Post{}).Where("id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
