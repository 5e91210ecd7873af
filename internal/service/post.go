package service

import (
	"time"

	"github.com/inkwell-blog/inkwell/internal/domain"
)

// publishedLayout is the human-readable date form stored with each post.
const publishedLayout = "January 2, 2006"

type PostService interface {
	Create(data domain.PostCreationData) (domain.PostId, error)
	Get(id domain.PostId) (domain.Post, error)
	All() ([]domain.Post, error)
	Update(data domain.PostUpdateData) error
	Delete(id domain.PostId) error
}

type PostStorage interface {
	SavePost(data domain.PostCreationData) (domain.PostId, error)
	Post(id domain.PostId) (domain.Post, error)
	Posts() ([]domain.Post, error)
	UpdatePost(data domain.PostUpdateData) error
	DeletePost(id domain.PostId) error
}

type Posts struct {
	storage PostStorage
	now     func() time.Time
}

func NewPosts(storage PostStorage) *Posts {
	return &Posts{storage: storage, now: time.Now}
}

// Create stamps the publication date with today's date; the caller supplies
// the acting user as the author.
func (p *Posts) Create(data domain.PostCreationData) (domain.PostId, error) {
	data.Published = p.now().Format(publishedLayout)
	return p.storage.SavePost(data)
}

func (p *Posts) Get(id domain.PostId) (domain.Post, error) {
	return p.storage.Post(id)
}

func (p *Posts) All() ([]domain.Post, error) {
	return p.storage.Posts()
}

// Update overwrites title/subtitle/img_url/body only. Identifier, date and
// author stay as they were at creation.
func (p *Posts) Update(data domain.PostUpdateData) error {
	return p.storage.UpdatePost(data)
}

func (p *Posts) Delete(id domain.PostId) error {
	return p.storage.DeletePost(id)
}
