package types

import "twin3-assistant-backend/internal/session"

type ChatRequest struct {
	Message string `json:"message"`
}

type ActionRequest struct {
	ActionID string `json:"actionId"`
}

type SuggestionRequest struct {
	ID string `json:"id"`
}

type VerifyRequest struct {
	Username string `json:"username"`
}

// SessionResponse carries the post-turn state snapshot; the presentation
// layer renders entirely from it.
type SessionResponse struct {
	SessionID string        `json:"sessionId"`
	State     session.State `json:"state"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
