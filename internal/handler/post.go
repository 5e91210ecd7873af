package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/domain"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/middleware"
)

const avatarSize = 100

type commentForm struct {
	Body string `validate:"required,max=5000"`
}

// commentView pairs a comment with its rendered body and avatar URL.
type commentView struct {
	domain.Comment
	Html      template.HTML
	AvatarURL string
}

type postPage struct {
	Post     domain.Post
	Body     template.HTML
	Comments []commentView
}

func (h *Handler) buildPostPage(post domain.Post) (postPage, error) {
	comments, err := h.comments.ForPost(post.Id)
	if err != nil {
		return postPage{}, err
	}

	page := postPage{
		Post:     post,
		Body:     h.renderer.Render(post.Body),
		Comments: make([]commentView, len(comments)),
	}
	for i, c := range comments {
		page.Comments[i] = commentView{
			Comment:   c,
			Html:      h.renderer.Render(c.Body),
			AvatarURL: gravatarURL(c.AuthorEmail, avatarSize),
		}
	}
	return page, nil
}

func (h *Handler) ShowPostGetHandler(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.buildPostPage(post)
	if err != nil {
		logger.Log.Error("loading comments", "post_id", id, "error", err)
		writeError(w, err)
		return
	}

	h.renderTemplate(w, r, "post.html", page)
}

// ShowPostPostHandler accepts the comment form on a post page. An anonymous
// submission is discarded and redirected to login.
func (h *Handler) ShowPostPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseId(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	user := middleware.GetUserFromContext(r)
	if !user.IsAuthenticated() {
		h.redirectWithFlash(w, r, "/login", flashCookieError, "You need to login or register to comment.")
		return
	}

	target := fmt.Sprintf("/post/%d", id)

	form := commentForm{Body: r.FormValue("comment")}
	if err := h.validate.Struct(form); err != nil {
		h.redirectWithFlash(w, r, target, flashCookieError, "Comment cannot be empty.")
		return
	}

	_, err = h.comments.Create(domain.CommentCreationData{
		Body:   form.Body,
		Author: user.Id,
		Post:   id,
	})
	if err != nil {
		logger.Log.Error("creating comment", "post_id", id, "user_id", user.Id, "error", err)
		writeError(w, err)
		return
	}

	// Back to the post so the fresh comment is visible.
	http.Redirect(w, r, target, http.StatusSeeOther)
}
