package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leapstack-labs/minisql/internal/state"
	"github.com/leapstack-labs/minisql/pkg/engine"
)

const (
	sessionName   = "minisql"
	sessionIDKey  = "id"
	sessionMaxAge = 86400 // seconds
)

type ctxKey struct{}

// session pairs an engine with the mutex that serializes access to it.
type session struct {
	mu       sync.Mutex
	id       string
	eng      *engine.Engine
	lastUsed time.Time // guarded by registry.mu
}

func (s *session) tables() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Tables()
}

// registry maps session IDs to engines.
type registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	store    state.Store
	logger   *slog.Logger
	now      func() time.Time
}

func newRegistry(store state.Store, logger *slog.Logger) *registry {
	return &registry{
		sessions: make(map[string]*session),
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

// get returns the session for id, creating it on first use.
func (reg *registry) get(id string) *session {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	now := reg.now()
	if s, ok := reg.sessions[id]; ok {
		s.lastUsed = now
		return s
	}
	s := &session{id: id, lastUsed: now}
	s.eng = engine.New(engine.Config{
		Logger:    reg.logger.With("session_id", id),
		OnExecute: reg.recordHistory(id),
	})
	reg.sessions[id] = s
	reg.logger.Debug("session created", "session_id", id)
	return s
}

// evictIdle drops sessions not used since cutoff and returns how many were
// dropped. A request holding an evicted session finishes on its engine.
func (reg *registry) evictIdle(cutoff time.Time) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	n := 0
	for id, s := range reg.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(reg.sessions, id)
			n++
		}
	}
	return n
}

// len returns the number of live sessions.
func (reg *registry) len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

func (reg *registry) recordHistory(sessionID string) engine.ExecuteHook {
	if reg.store == nil {
		return nil
	}
	return func(sql string, res *engine.Result) {
		err := reg.store.RecordHistory(context.Background(), state.HistoryEntry{
			SessionID:    sessionID,
			SQL:          sql,
			Success:      res.Success,
			RowsAffected: res.RowsAffected,
			Error:        res.Error,
			Duration:     res.ExecutionTime,
		})
		if err != nil {
			reg.logger.Warn("failed to record history", "session_id", sessionID, "error", err)
		}
	}
}

// withSession resolves the caller's session from the cookie, issuing a new
// one when absent, and stores it in the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A cookie that fails to decode yields a fresh session.
		sess, _ := s.sessionStore.Get(r, sessionName)
		id, ok := sess.Values[sessionIDKey].(string)
		if !ok || id == "" {
			id = uuid.NewString()
			sess.Values[sessionIDKey] = id
			if err := sess.Save(r, w); err != nil {
				s.logger.Error("failed to save session", "error", err)
				writeError(w, http.StatusInternalServerError, "failed to save session")
				return
			}
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, s.sessions.get(id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the session stored by withSession.
func sessionFrom(ctx context.Context) *session {
	sess, _ := ctx.Value(ctxKey{}).(*session)
	return sess
}
