// Package web serves the BookFinder page to browsers.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"bookfinder/page"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// maxQueryBytes bounds the form body.
const maxQueryBytes = 64 << 10

// Handler renders the page and handles submissions.
type Handler struct {
	controller *page.Controller
	markdown   *Markdown
	logger     *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(controller *page.Controller, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		controller: controller,
		markdown:   NewMarkdown(),
		logger:     logger,
	}
}

// RegisterRoutes registers the page routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Show)
	r.Post("/", h.Submit)
}

// view is the template data of one page render.
type view struct {
	Title         string
	Description   template.HTML
	InputLabel    string
	Placeholder   string
	Query         string
	ButtonLabel   string
	SpinnerText   string
	Warning       string
	Heading       string
	Result        template.HTML
	Error         string
	FooterCaption string
}

func (h *Handler) newView(query string) *view {
	return &view{
		Title:         page.Title,
		Description:   h.markdown.Render(page.Description),
		InputLabel:    page.InputLabel,
		Placeholder:   page.Placeholder,
		Query:         query,
		ButtonLabel:   page.ButtonLabel,
		SpinnerText:   page.SpinnerText,
		FooterCaption: page.FooterCaption,
	}
}

// Show renders the page with the session's last query in the text box.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	query, err := h.controller.Restore(r.Context(), SessionIDFromContext(r.Context()))
	if err != nil {
		h.logger.Warn("failed to restore session state", "error", err)
	}
	h.render(w, http.StatusOK, h.newView(query))
}

// Submit handles a press of the button.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxQueryBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	query := r.PostForm.Get("query")
	sessionID := SessionIDFromContext(r.Context())

	v := h.newView(query)

	out, err := h.controller.Submit(r.Context(), sessionID, query)
	if err != nil {
		h.logger.Error("recommendation request failed", "session_id", sessionID, "error", err)
		v.Error = err.Error()
		h.render(w, http.StatusInternalServerError, v)
		return
	}

	if out.IsWarning() {
		v.Warning = out.Warning
	} else {
		v.Heading = out.Heading
		v.Result = h.markdown.Render(out.Markdown)
	}
	h.render(w, http.StatusOK, v)
}

func (h *Handler) render(w http.ResponseWriter, status int, v *view) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
