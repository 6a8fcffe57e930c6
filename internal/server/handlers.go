package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/leapstack-labs/minisql/pkg/highlight"
	"github.com/leapstack-labs/minisql/pkg/lint"
)

const maxBodyBytes = 1 << 20

// sqlRequest is the body accepted by the SQL endpoints.
type sqlRequest struct {
	SQL    string `json:"sql"`
	Cursor *int   `json:"cursor,omitempty"`
	Theme  string `json:"theme,omitempty"`
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (sqlRequest, bool) {
	var req sqlRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------- stateless ----------

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, lint.Validate(req.SQL))
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	theme := highlight.DefaultTheme
	if req.Theme != "" {
		t, found := highlight.ThemeByName(req.Theme)
		if !found {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown theme %q", req.Theme))
			return
		}
		theme = t
	}
	segs := highlight.HighlightWithTheme(req.SQL, theme)
	writeJSON(w, http.StatusOK, map[string]any{
		"segments": segs,
		"html":     highlight.RenderHTML(segs),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	cursor := len(req.SQL)
	if req.Cursor != nil {
		cursor = *req.Cursor
	}

	var tables []string
	if sess := s.peekSession(r); sess != nil {
		tables = sess.tables()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suggestions": lint.SuggestWithTables(req.SQL, cursor, tables),
	})
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	theme := highlight.DefaultTheme
	if name := r.URL.Query().Get("theme"); name != "" {
		if t, ok := highlight.ThemeByName(name); ok {
			theme = t
		}
	}
	writeJSON(w, http.StatusOK, highlight.GrammarWithTheme(theme))
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	rules := lint.GetAll()
	infos := make([]any, len(rules))
	for i, rule := range rules {
		infos[i] = rule.Info()
	}
	writeJSON(w, http.StatusOK, infos)
}

// peekSession returns the caller's existing session without creating one.
func (s *Server) peekSession(r *http.Request) *session {
	sess, err := s.sessionStore.Get(r, sessionName)
	if err != nil || sess.IsNew {
		return nil
	}
	id, ok := sess.Values[sessionIDKey].(string)
	if !ok || id == "" {
		return nil
	}
	return s.sessions.get(id)
}

// ---------- per session ----------

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.eng.Execute(req.SQL))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.eng.Plan(req.SQL))
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tables": sessionFrom(r.Context()).tables()})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sess.eng.Export())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to read body: %v", err))
		return
	}
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()

	status := http.StatusOK
	ok := sess.eng.ImportJSON(data)
	if !ok {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]bool{"success": ok})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.eng.Reset()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
