package web

import (
	"encoding/json"
	"html"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/90umut/mailtrash/internal/logging"
	"github.com/90umut/mailtrash/internal/metrics"
	"github.com/90umut/mailtrash/internal/models"
)

type viewData struct {
	From     string
	Subject  string
	Received string
	Body     template.HTML
}

type indexData struct {
	Domain string
	Count  int
}

// handleView renders a stored message. Unknown, malformed and expired ids
// all land on the same not-found page so the URL leaks nothing about what
// the store once held.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	msg, ok := s.store.Get(id)
	if !ok {
		metrics.ViewMisses.Inc()
		renderHTML(w, http.StatusNotFound, notFoundTmpl, nil)
		return
	}

	metrics.ViewHits.Inc()
	logging.Log.WithField("trace_id", msg.TraceID).Debugf("Serving message view for %s", id)

	renderHTML(w, http.StatusOK, viewTmpl, viewData{
		From:     msg.From,
		Subject:  msg.Subject,
		Received: msg.ReceivedAt.Format(time.RFC1123),
		Body:     s.renderBody(msg),
	})
}

// renderBody prefers the HTML part and serves it as-is, optionally run
// through the sanitizer. Plain text is escaped and wrapped in a pre block
// so raw angle brackets in the mail cannot turn into markup.
func (s *Server) renderBody(msg *models.Message) template.HTML {
	if msg.HTMLBody != "" {
		body := msg.HTMLBody
		if s.policy != nil {
			body = s.policy.Sanitize(body)
		}
		return template.HTML(body)
	}
	return template.HTML("<pre>" + html.EscapeString(msg.TextBody) + "</pre>")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderHTML(w, http.StatusOK, indexTmpl, indexData{
		Domain: s.domain,
		Count:  s.store.Len(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"messages": s.store.Len(),
	})
}

func renderHTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		logging.Log.WithError(err).Error("Template rendering failed")
	}
}
