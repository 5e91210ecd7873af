package service

import (
	"github.com/inkwell-blog/inkwell/internal/domain"
)

type CommentService interface {
	Create(data domain.CommentCreationData) (domain.CommentId, error)
	ForPost(id domain.PostId) ([]domain.Comment, error)
}

type CommentStorage interface {
	SaveComment(data domain.CommentCreationData) (domain.CommentId, error)
	CommentsForPost(postId domain.PostId) ([]domain.Comment, error)
}

type Comments struct {
	storage CommentStorage
}

func NewComments(storage CommentStorage) *Comments {
	return &Comments{storage: storage}
}

func (c *Comments) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	return c.storage.SaveComment(data)
}

func (c *Comments) ForPost(id domain.PostId) ([]domain.Comment, error) {
	return c.storage.CommentsForPost(id)
}
