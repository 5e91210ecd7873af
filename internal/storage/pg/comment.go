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

// SaveComment creates a comment after verifying the target post still
// exists, all inside one transaction.
func (s *Storage) SaveComment(data domain.CommentCreationData) (domain.CommentId, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id domain.CommentId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// Verify post exists
		var postId domain.PostId
		err := tx.QueryRow("SELECT id FROM posts WHERE id = $1", data.Post).Scan(&postId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &internal_errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
			}
			return fmt.Errorf("failed to validate post: %w", err)
		}

		err = tx.QueryRow("INSERT INTO comments(body, author_id, post_id) VALUES($1, $2, $3) RETURNING id",
			data.Body, data.Author, data.Post).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert comment: %w", err)
		}
		return nil
	})
	return id, err
}

// CommentsForPost returns a post's comments in creation order, with the
// commenter's name and email joined in for display and avatar generation.
func (s *Storage) CommentsForPost(postId domain.PostId) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
        SELECT c.id, c.body, c.author_id, u.name, u.email, c.post_id
        FROM comments c
        JOIN users u ON u.id = c.author_id
        WHERE c.post_id = $1
        ORDER BY c.id`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.Body, &c.AuthorId, &c.AuthorName, &c.AuthorEmail, &c.PostId); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
