package handler

import (
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/errors"
	"github.com/inkwell-blog/inkwell/internal/logger"
)

type registerForm struct {
	Name     string `validate:"required,max=250"`
	Email    string `validate:"required,email,max=250"`
	Password string `validate:"required,min=8,max=250"`
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

func (h *Handler) RegisterGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", nil)
}

func (h *Handler) RegisterPostHandler(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		h.renderTemplateWithError(w, r, "register.html", nil, "Please fill in all fields (password must be at least 8 characters).")
		return
	}

	user, token, err := h.auth.Register(form.Name, form.Email, form.Password)
	if err != nil {
		if errors.IsConflict(err) {
			// An account with this email exists: no second user is ever
			// created, send them to login instead.
			h.redirectWithFlash(w, r, "/login", flashCookieError, "Email already registered, log in instead.")
			return
		}
		logger.Log.Error("registering user", "error", err)
		writeError(w, err)
		return
	}

	// Successful registration logs the new user in immediately.
	logger.Log.Info("user registered", "user_id", user.Id)
	h.setAccessCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LoginGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", nil)
}

func (h *Handler) LoginPostHandler(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	// The failure message is identical for every path so the endpoint
	// reveals nothing about which emails are registered.
	if err := h.validate.Struct(form); err != nil {
		h.redirectWithFlash(w, r, "/login", flashCookieError, "Invalid email or password.")
		return
	}

	user, token, err := h.auth.Login(form.Email, form.Password)
	if err != nil {
		if e, ok := err.(*errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusUnauthorized {
			h.redirectWithFlash(w, r, "/login", flashCookieError, "Invalid email or password.")
			return
		}
		logger.Log.Error("logging in", "error", err)
		writeError(w, err)
		return
	}

	logger.Log.Info("user logged in", "user_id", user.Id)
	h.setAccessCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	h.clearAccessCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
