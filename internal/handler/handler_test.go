package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/domain"
	"github.com/inkwell-blog/inkwell/internal/markdown"
	"github.com/inkwell-blog/inkwell/internal/middleware"
)

// ---------------------------------------------------------------------------
// Service mocks
// ---------------------------------------------------------------------------

type MockAuthService struct {
	MockRegister func(name, email, password string) (domain.User, string, error)
	MockLogin    func(email, password string) (domain.User, string, error)
}

func (m *MockAuthService) Register(name, email, password string) (domain.User, string, error) {
	if m.MockRegister != nil {
		return m.MockRegister(name, email, password)
	}
	return domain.User{Id: 1, Name: name, Email: email}, "token", nil
}

func (m *MockAuthService) Login(email, password string) (domain.User, string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(email, password)
	}
	return domain.User{Id: 1, Email: email}, "token", nil
}

type MockPostService struct {
	MockCreate func(data domain.PostCreationData) (domain.PostId, error)
	MockGet    func(id domain.PostId) (domain.Post, error)
	MockAll    func() ([]domain.Post, error)
	MockUpdate func(data domain.PostUpdateData) error
	MockDelete func(id domain.PostId) error
}

func (m *MockPostService) Create(data domain.PostCreationData) (domain.PostId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockPostService) Get(id domain.PostId) (domain.Post, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return domain.Post{Id: id, Title: "t", Subtitle: "s", Published: "May 1, 2025", Body: "b", ImgUrl: "https://example.com/i.png"}, nil
}

func (m *MockPostService) All() ([]domain.Post, error) {
	if m.MockAll != nil {
		return m.MockAll()
	}
	return nil, nil
}

func (m *MockPostService) Update(data domain.PostUpdateData) error {
	if m.MockUpdate != nil {
		return m.MockUpdate(data)
	}
	return nil
}

func (m *MockPostService) Delete(id domain.PostId) error {
	if m.MockDelete != nil {
		return m.MockDelete(id)
	}
	return nil
}

type MockCommentService struct {
	MockCreate  func(data domain.CommentCreationData) (domain.CommentId, error)
	MockForPost func(id domain.PostId) ([]domain.Comment, error)
}

func (m *MockCommentService) Create(data domain.CommentCreationData) (domain.CommentId, error) {
	if m.MockCreate != nil {
		return m.MockCreate(data)
	}
	return 1, nil
}

func (m *MockCommentService) ForPost(id domain.PostId) ([]domain.Comment, error) {
	if m.MockForPost != nil {
		return m.MockForPost(id)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Test fixtures
// ---------------------------------------------------------------------------

func testTemplates(t *testing.T) map[string]*template.Template {
	t.Helper()

	const base = `{{template "content" .}}`
	pages := map[string]string{
		"index.html":     `{{define "content"}}{{range .Data.Posts}}<h2>{{.Title}}</h2>{{end}}{{end}}`,
		"register.html":  `{{define "content"}}register {{.Common.Error}}{{end}}`,
		"login.html":     `{{define "content"}}login {{.Common.Error}}{{end}}`,
		"post.html":      `{{define "content"}}{{.Data.Post.Title}} {{.Data.Body}} {{range .Data.Comments}}{{.AuthorName}}:{{.Html}};{{end}}{{end}}`,
		"make-post.html": `{{define "content"}}form {{.Data.Form.Title}} {{.Common.Error}}{{end}}`,
		"about.html":     `{{define "content"}}about{{end}}`,
		"contact.html":   `{{define "content"}}contact{{end}}`,
	}

	templates := make(map[string]*template.Template)
	for name, src := range pages {
		tmpl := template.Must(template.New("base.html").Parse(base))
		template.Must(tmpl.Parse(src))
		templates[name] = tmpl
	}
	return templates
}

func testConfig() config.Public {
	return config.Public{
		JwtTTL:         time.Hour,
		PasswordMinLen: 8,
		TitleMaxLen:    250,
	}
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return New(testTemplates(t), testConfig(), &MockAuthService{}, &MockPostService{}, &MockCommentService{}, markdown.New())
}

// withUser injects an authenticated user the way the auth middleware would.
func withUser(r *http.Request, user *domain.User) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserClaimsKey, user)
	return r.WithContext(ctx)
}

func formRequest(t *testing.T, target string, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func newPostRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/post/{id}", h.ShowPostGetHandler)
	r.Post("/post/{id}", h.ShowPostPostHandler)
	r.Get("/edit-post/{id}", h.EditPostGetHandler)
	r.Post("/edit-post/{id}", h.EditPostPostHandler)
	r.Get("/delete/{id}", h.DeletePostHandler)
	return r
}

func requireRedirect(t *testing.T, rr *httptest.ResponseRecorder, target string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, target, rr.Header().Get("Location"))
}
