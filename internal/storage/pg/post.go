package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/inkwell-blog/inkwell/internal/domain"
	internal_errors "github.com/inkwell-blog/inkwell/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.PostStorage interface)
// =========================================================================

// SavePost inserts a new post. The title column is unique; a duplicate
// surfaces as a 409 with a user-facing message.
func (s *Storage) SavePost(data domain.PostCreationData) (domain.PostId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id domain.PostId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.savePost(tx, data)
		return err
	})
	return id, err
}

// Post fetches a single post with its author name resolved via a query-time
// join. Missing ids map to 404, never to a nil dereference.
func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	return s.post(s.db, id)
}

// Posts returns all posts in creation order for the index page.
func (s *Storage) Posts() ([]domain.Post, error) {
	return s.posts(s.db)
}

// UpdatePost overwrites title/subtitle/img_url/body in place. Published and
// author_id are deliberately untouched.
func (s *Storage) UpdatePost(data domain.PostUpdateData) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePost(tx, data)
	})
}

// DeletePost removes a post. The comments.post_id foreign key carries
// ON DELETE CASCADE, so dependent comments go away in the same transaction.
func (s *Storage) DeletePost(id domain.PostId) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deletePost(tx, id)
	})
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) savePost(q Querier, data domain.PostCreationData) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRow(`
        INSERT INTO posts(author_id, title, subtitle, published, body, img_url)
        VALUES($1, $2, $3, $4, $5, $6)
        RETURNING id`,
		data.Author, data.Title, data.Subtitle, data.Published, data.Body, data.ImgUrl,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return -1, &internal_errors.ErrorWithStatusCode{Message: "A post with this title already exists", StatusCode: http.StatusConflict}
		}
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) post(q Querier, id domain.PostId) (domain.Post, error) {
	var post domain.Post
	var author sql.NullString
	err := q.QueryRow(`
        SELECT p.id, p.author_id, COALESCE(u.name, ''), p.title, p.subtitle, p.published, p.body, p.img_url
        FROM posts p
        LEFT JOIN users u ON u.id = p.author_id
        WHERE p.id = $1`, id).
		Scan(&post.Id, &post.AuthorId, &author, &post.Title, &post.Subtitle, &post.Published, &post.Body, &post.ImgUrl)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	post.Author = author.String
	return post, nil
}

func (s *Storage) posts(q Querier) ([]domain.Post, error) {
	rows, err := q.Query(`
        SELECT p.id, p.author_id, COALESCE(u.name, ''), p.title, p.subtitle, p.published, p.body, p.img_url
        FROM posts p
        LEFT JOIN users u ON u.id = p.author_id
        ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var post domain.Post
		var author sql.NullString
		if err := rows.Scan(&post.Id, &post.AuthorId, &author, &post.Title, &post.Subtitle, &post.Published, &post.Body, &post.ImgUrl); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		post.Author = author.String
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (s *Storage) updatePost(q Querier, data domain.PostUpdateData) error {
	result, err := q.Exec(`
        UPDATE posts SET title = $1, subtitle = $2, body = $3, img_url = $4
        WHERE id = $5`,
		data.Title, data.Subtitle, data.Body, data.ImgUrl, data.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return &internal_errors.ErrorWithStatusCode{Message: "A post with this title already exists", StatusCode: http.StatusConflict}
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post update: %w", err)
	}
	if rowsAffected == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}
	return nil
}

func (s *Storage) deletePost(q Querier, id domain.PostId) error {
	result, err := q.Exec("DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}
	return nil
}
