package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/inkwell-blog/inkwell/internal/domain"
	"github.com/inkwell-blog/inkwell/internal/logger"
	"github.com/inkwell-blog/inkwell/internal/middleware"
)

// TemplateData wraps page-specific data with common template data.
// Templates access page data via .Data and common data via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

// CommonTemplateData holds fields shared by all page templates.
type CommonTemplateData struct {
	Error      string
	Success    string
	User       *domain.User
	Validation ValidationData
}

// ValidationData exposes validation constants to templates so the markup
// and the server agree on limits.
type ValidationData struct {
	PasswordMinLen int
	TitleMaxLen    int
}

func (h *Handler) initCommonTemplateData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	return CommonTemplateData{
		Error:   h.popFlash(w, r, flashCookieError),
		Success: h.popFlash(w, r, flashCookieSuccess),
		User:    middleware.GetUserFromContext(r),
		Validation: ValidationData{
			PasswordMinLen: h.Public.PasswordMinLen,
			TitleMaxLen:    h.Public.TitleMaxLen,
		},
	}
}

func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	h.renderTemplateWithError(w, r, name, data, "")
}

func (h *Handler) renderTemplateWithError(w http.ResponseWriter, r *http.Request, name string, data any, errMsg string) {
	tmpl, ok := h.Templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	common := h.initCommonTemplateData(w, r)
	if errMsg != "" {
		common.Error = errMsg
	}

	wrapped := TemplateData{
		Data:   data,
		Common: common,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, wrapped); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	_, _ = buf.WriteTo(w)
}
