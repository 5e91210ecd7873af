package pg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/domain"
	internal_errors "github.com/inkwell-blog/inkwell/internal/errors"
)

func TestSavePostAndGet(t *testing.T) {
	authorId := mustSaveUser(t, "Author One", "author1@example.com")

	id, err := storage.SavePost(domain.PostCreationData{
		Title:     "First post",
		Subtitle:  "A subtitle",
		Body:      "Some **markdown** body",
		ImgUrl:    "https://example.com/header.png",
		Published: "May 1, 2025",
		Author:    authorId,
	})
	require.NoError(t, err, "SavePost should not return an error")
	assert.Greater(t, id, int64(0))

	post, err := storage.Post(id)
	require.NoError(t, err)
	assert.Equal(t, "First post", post.Title)
	assert.Equal(t, "A subtitle", post.Subtitle)
	assert.Equal(t, "May 1, 2025", post.Published)
	assert.Equal(t, "Author One", post.Author, "author name should be joined in")
	require.NotNil(t, post.AuthorId)
	assert.Equal(t, authorId, *post.AuthorId)
}

func TestSavePostDuplicateTitle(t *testing.T) {
	authorId := mustSaveUser(t, "Author Two", "author2@example.com")

	_, err := storage.SavePost(domain.PostCreationData{
		Title: "Unique title", Subtitle: "s", Body: "b",
		ImgUrl: "https://example.com/i.png", Published: "May 1, 2025", Author: authorId,
	})
	require.NoError(t, err)

	_, err = storage.SavePost(domain.PostCreationData{
		Title: "Unique title", Subtitle: "other", Body: "other",
		ImgUrl: "https://example.com/j.png", Published: "May 2, 2025", Author: authorId,
	})
	require.Error(t, err, "Duplicate title should return an error")
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, http.StatusConflict, e.StatusCode)
}

func TestPostNotFound(t *testing.T) {
	_, err := storage.Post(999999)
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
}

func TestPostsOrderedByCreation(t *testing.T) {
	authorId := mustSaveUser(t, "Author Three", "author3@example.com")

	first, err := storage.SavePost(domain.PostCreationData{
		Title: "Ordered A", Subtitle: "s", Body: "b",
		ImgUrl: "https://example.com/a.png", Published: "May 1, 2025", Author: authorId,
	})
	require.NoError(t, err)
	second, err := storage.SavePost(domain.PostCreationData{
		Title: "Ordered B", Subtitle: "s", Body: "b",
		ImgUrl: "https://example.com/b.png", Published: "May 2, 2025", Author: authorId,
	})
	require.NoError(t, err)

	posts, err := storage.Posts()
	require.NoError(t, err)

	var firstIdx, secondIdx int = -1, -1
	for i, p := range posts {
		switch p.Id {
		case first:
			firstIdx = i
		case second:
			secondIdx = i
		}
	}
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, firstIdx, secondIdx, "older posts come first")
}

func TestUpdatePostPreservesDateAndAuthor(t *testing.T) {
	authorId := mustSaveUser(t, "Author Four", "author4@example.com")

	id, err := storage.SavePost(domain.PostCreationData{
		Title: "Before edit", Subtitle: "old sub", Body: "old body",
		ImgUrl: "https://example.com/old.png", Published: "May 1, 2025", Author: authorId,
	})
	require.NoError(t, err)

	err = storage.UpdatePost(domain.PostUpdateData{
		Id:       id,
		Title:    "After edit",
		Subtitle: "new sub",
		Body:     "new body",
		ImgUrl:   "https://example.com/new.png",
	})
	require.NoError(t, err)

	post, err := storage.Post(id)
	require.NoError(t, err)
	assert.Equal(t, "After edit", post.Title)
	assert.Equal(t, "new sub", post.Subtitle)
	assert.Equal(t, "new body", post.Body)
	assert.Equal(t, "https://example.com/new.png", post.ImgUrl)
	assert.Equal(t, "May 1, 2025", post.Published, "edit must not touch the publication date")
	require.NotNil(t, post.AuthorId)
	assert.Equal(t, authorId, *post.AuthorId, "edit must not touch the author")
}

func TestUpdateMissingPost(t *testing.T) {
	err := storage.UpdatePost(domain.PostUpdateData{
		Id: 999999, Title: "t", Subtitle: "s", Body: "b", ImgUrl: "https://example.com/i.png",
	})
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
}

func TestDeletePost(t *testing.T) {
	authorId := mustSaveUser(t, "Author Five", "author5@example.com")

	id, err := storage.SavePost(domain.PostCreationData{
		Title: "Doomed", Subtitle: "s", Body: "b",
		ImgUrl: "https://example.com/d.png", Published: "May 1, 2025", Author: authorId,
	})
	require.NoError(t, err)

	require.NoError(t, storage.DeletePost(id))

	_, err = storage.Post(id)
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, http.StatusNotFound, e.StatusCode)

	err = storage.DeletePost(id)
	require.Error(t, err, "deleting twice should return an error")
	e, ok = err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Expected ErrorWithStatusCode")
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
}
