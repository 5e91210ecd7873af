package handler

import (
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/domain"
	"github.com/inkwell-blog/inkwell/internal/logger"
)

type indexPage struct {
	Posts []domain.Post
}

func (h *Handler) IndexGetHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.All()
	if err != nil {
		logger.Log.Error("listing posts", "error", err)
		writeError(w, err)
		return
	}

	h.renderTemplate(w, r, "index.html", indexPage{Posts: posts})
}
