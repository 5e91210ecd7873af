package handler

import "net/http"

func (h *Handler) AboutGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "about.html", nil)
}

func (h *Handler) ContactGetHandler(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "contact.html", nil)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
