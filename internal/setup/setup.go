package setup

import (
	"html/template"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/handler"
	"github.com/inkwell-blog/inkwell/internal/jwt"
	"github.com/inkwell-blog/inkwell/internal/markdown"
	"github.com/inkwell-blog/inkwell/internal/middleware"
	"github.com/inkwell-blog/inkwell/internal/service"
	"github.com/inkwell-blog/inkwell/internal/storage/pg"
)

const baseTemplate = "base.html"

// Dependencies holds all initialized application components.
type Dependencies struct {
	Storage *pg.Storage
	Handler *handler.Handler
	Auth    *middleware.Auth
	Public  config.Public
}

// SetupDependencies initializes everything required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtSvc := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtSvc)
	posts := service.NewPosts(storage)
	comments := service.NewComments(storage)

	templates := MustLoadTemplates(cfg.Public.TemplatesDir)
	h := handler.New(templates, cfg.Public, auth, posts, comments, markdown.New())

	return &Dependencies{
		Storage: storage,
		Handler: h,
		Auth:    middleware.NewAuth(jwtSvc, cfg.Public.SecureCookies),
		Public:  cfg.Public,
	}, nil
}

// MustLoadTemplates compiles one template per page file, each sharing the
// base layout.
func MustLoadTemplates(tmplPath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	files, err := os.ReadDir(tmplPath)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range files {
		if filepath.Ext(f.Name()) == ".html" && f.Name() != baseTemplate {
			templates[f.Name()] = template.Must(template.New(baseTemplate).ParseFiles(
				path.Join(tmplPath, baseTemplate),
				path.Join(tmplPath, f.Name()),
			))
		}
	}
	return templates
}
