package handler

import (
	"fmt"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/domain"
	"github.com/inkwell-blog/inkwell/internal/errors"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/middleware"
)

// Admin-only post management. Access control lives in the router: these
// handlers run behind the RequireAdmin middleware.

type postForm struct {
	Title    string `validate:"required,max=250"`
	Subtitle string `validate:"required,max=250"`
	ImgUrl   string `validate:"required,url,max=250"`
	Body     string `validate:"required"`
}

// makePostPage feeds the shared create/edit form template.
type makePostPage struct {
	IsEdit bool
	Action string
	Form   postForm
}

func parsePostForm(r *http.Request) postForm {
	return postForm{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		ImgUrl:   r.FormValue("img_url"),
		Body:     r.FormValue("body"),
	}
}

func (h *Handler) NewPostGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "make-post.html", makePostPage{Action: "/new-post"})
}

func (h *Handler) NewPostPostHandler(w http.ResponseWriter, r *http.Request) {
	page := makePostPage{Action: "/new-post", Form: parsePostForm(r)}

	if err := h.validate.Struct(page.Form); err != nil {
		h.renderTemplateWithError(w, r, "make-post.html", page, "Please fill in all fields (image must be a valid URL).")
		return
	}

	user := middleware.GetUserFromContext(r)
	id, err := h.posts.Create(domain.PostCreationData{
		Title:    page.Form.Title,
		Subtitle: page.Form.Subtitle,
		Body:     page.Form.Body,
		ImgUrl:   page.Form.ImgUrl,
		Author:   user.Id,
	})
	if err != nil {
		if errors.IsConflict(err) {
			h.renderTemplateWithError(w, r, "make-post.html", page, err.Error())
			return
		}
		logger.Log.Error("creating post", "error", err)
		writeError(w, err)
		return
	}

	logger.Log.Info("post created", "post_id", id, "author_id", user.Id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) EditPostGetHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}

	page := makePostPage{
		IsEdit: true,
		Action: fmt.Sprintf("/edit-post/%d", id),
		Form: postForm{
			Title:    post.Title,
			Subtitle: post.Subtitle,
			ImgUrl:   post.ImgUrl,
			Body:     post.Body,
		},
	}
	h.renderTemplate(w, r, "make-post.html", page)
}

func (h *Handler) EditPostPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	page := makePostPage{IsEdit: true, Action: fmt.Sprintf("/edit-post/%d", id), Form: parsePostForm(r)}

	if err := h.validate.Struct(page.Form); err != nil {
		h.renderTemplateWithError(w, r, "make-post.html", page, "Please fill in all fields (image must be a valid URL).")
		return
	}

	err = h.posts.Update(domain.PostUpdateData{
		Id:       id,
		Title:    page.Form.Title,
		Subtitle: page.Form.Subtitle,
		Body:     page.Form.Body,
		ImgUrl:   page.Form.ImgUrl,
	})
	if err != nil {
		if errors.IsConflict(err) {
			h.renderTemplateWithError(w, r, "make-post.html", page, err.Error())
			return
		}
		writeError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

func (h *Handler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.posts.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	logger.Log.Info("post deleted", "post_id", id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
