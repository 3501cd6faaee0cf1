package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"twin3-assistant-backend/internal/chat"
	"twin3-assistant-backend/internal/config"
	"twin3-assistant-backend/internal/session"
	"twin3-assistant-backend/internal/types"
)

type Server struct {
	router   *chi.Mux
	cfg      config.Config
	sessions *session.Manager
	log      *zap.Logger
}

func NewServer(cfg config.Config, log *zap.Logger) (*Server, error) {
	inv := chat.DefaultInventory()
	if cfg.InventoryFile != "" {
		loaded, err := chat.LoadInventory(cfg.InventoryFile)
		if err != nil {
			return nil, fmt.Errorf("load inventory %s: %w", cfg.InventoryFile, err)
		}
		inv = loaded
		log.Info("inventory loaded", zap.String("file", cfg.InventoryFile), zap.Int("nodes", inv.Len()))
	}
	client := openai.NewClient(cfg.OpenAIAPIKey)
	remote := chat.NewOpenAIDispatcher(client, cfg.Model)
	return newServer(cfg, inv, remote, log), nil
}

// newServer wires the router around an arbitrary completer; tests inject a
// fake one here.
func newServer(cfg config.Config, inv *chat.Inventory, remote chat.Completer, log *zap.Logger) *Server {
	opts := session.Options{
		CardStagger: msDuration(cfg.CardStaggerMS),
		MaxDelay:    msDuration(cfg.MaxDelayMS),
		MaxHistory:  cfg.MaxHistory,
	}
	mgr := session.NewManager(inv, remote, opts, log)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Session-Id"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s := &Server{router: r, cfg: cfg, sessions: mgr, log: log}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/session", s.handleCreateSession)
	s.router.Get("/api/session", s.handleGetSession)
	s.router.Delete("/api/session", s.handleDeleteSession)
	s.router.Post("/api/chat", s.handleChat)
	s.router.Post("/api/action", s.handleAction)
	s.router.Post("/api/suggestion", s.handleSuggestion)
	s.router.Post("/api/verify", s.handleVerify)
}

func (s *Server) Router() http.Handler { return s.router }

// Shutdown closes all live sessions.
func (s *Server) Shutdown() { s.sessions.Shutdown() }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleCreateSession starts a fresh conversation and plays the welcome node
// before returning the first snapshot.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	SetSessionCookie(w, sess.ID())
	sess.Start(r.Context())
	s.writeSession(w, sess)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "no active session")
		return
	}
	s.writeSession(w, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "no active session")
		return
	}
	s.sessions.Remove(sess.ID())
	ClearSessionCookie(w)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "closed"})
}

// handleChat runs one user turn. A session is created on the fly for clients
// that skipped POST /api/session.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	sess := s.sessionFor(r, w)
	if err := sess.Submit(r.Context(), req.Message); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeSession(w, sess)
}

// handleAction dispatches an explicit node id (quick actions, card buttons).
func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req types.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ActionID) == "" {
		s.writeError(w, http.StatusBadRequest, "actionId is required")
		return
	}
	sess := s.sessionFor(r, w)
	sess.HandleQuickAction(r.Context(), req.ActionID)
	s.writeSession(w, sess)
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	var req types.SuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sess, ok := s.lookupSession(r)
	if !ok {
		s.writeError(w, http.StatusNotFound, "no active session")
		return
	}
	if err := sess.ChooseSuggestion(r.Context(), req.ID); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeSession(w, sess)
}

// handleVerify is the mocked verification-confirmed callback from the
// identity-connect widget.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		s.writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	sess := s.sessionFor(r, w)
	sess.ConfirmVerification(r.Context(), req.Username)
	s.writeSession(w, sess)
}

// getSessionID retrieves the session ID from cookie, header, or query param.
func getSessionID(r *http.Request) string {
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

func (s *Server) lookupSession(r *http.Request) (*session.Session, bool) {
	sid := getSessionID(r)
	if sid == "" {
		return nil, false
	}
	return s.sessions.Get(sid)
}

// sessionFor returns the caller's live session, creating one (and setting
// the cookie) when the id is absent or stale.
func (s *Server) sessionFor(r *http.Request, w http.ResponseWriter) *session.Session {
	if sess, ok := s.lookupSession(r); ok {
		return sess
	}
	sess := s.sessions.Create()
	SetSessionCookie(w, sess.ID())
	return sess
}

func (s *Server) writeSession(w http.ResponseWriter, sess *session.Session) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Session-Id", sess.ID())
	_ = json.NewEncoder(w).Encode(types.SessionResponse{SessionID: sess.ID(), State: sess.Snapshot()})
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
