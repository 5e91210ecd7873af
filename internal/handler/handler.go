package handler

import (
	"html/template"

	"github.com/go-playground/validator/v10"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/domain"
	"github.com/inkwell-blog/inkwell/internal/markdown"
)

type AuthService interface {
	Register(name, email, password string) (domain.User, string, error)
	Login(email, password string) (domain.User, string, error)
}

type PostService interface {
	Create(data domain.PostCreationData) (domain.PostId, error)
	Get(id domain.PostId) (domain.Post, error)
	All() ([]domain.Post, error)
	Update(data domain.PostUpdateData) error
	Delete(id domain.PostId) error
}

type CommentService interface {
	Create(data domain.CommentCreationData) (domain.CommentId, error)
	ForPost(id domain.PostId) ([]domain.Comment, error)
}

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public

	auth     AuthService
	posts    PostService
	comments CommentService
	renderer *markdown.Renderer
	validate *validator.Validate
}

func New(templates map[string]*template.Template, publicCfg config.Public, auth AuthService, posts PostService, comments CommentService, renderer *markdown.Renderer) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		auth:      auth,
		posts:     posts,
		comments:  comments,
		renderer:  renderer,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}
