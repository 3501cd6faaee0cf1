package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twin3-assistant-backend/internal/chat"
)

// apologyText is the single user-visible message for a failed remote turn.
// The session stays live for the next turn.
const apologyText = "Sorry, I encountered an error. Please try again."

// remoteTurn sends an unmatched message to the completion service and
// replays its directive through the same widget/card surface the scripted
// sequencer uses. Called with the turn lock held.
func (s *Session) remoteTurn(ctx context.Context, text string, hist []chat.HistoryEntry) {
	s.beginTyping()
	res, err := s.remote.Complete(ctx, text, s.isVerified(), hist)
	if err != nil {
		s.log.Warn("remote dispatch failed", zap.Error(err))
		s.mu.Lock()
		if !s.closed {
			now := time.Now()
			s.messages = append(s.messages, Message{
				ID:        s.nextMessageIDLocked(now),
				Role:      RoleAssistant,
				Kind:      KindText,
				Content:   apologyText,
				Timestamp: now,
			})
			s.typing = false
		}
		s.mu.Unlock()
		return
	}
	s.applyRemote(res)
}

// applyRemote commits a remote action directive: widget/card reveal first,
// then the text reply, then wholesale suggestion replacement.
func (s *Session) applyRemote(res *chat.RemoteResult) {
	switch res.Action {
	case chat.ActionShowInstagram:
		s.appendWidget(chat.WidgetInstagramConnect, "Connect your Instagram to verify your identity:")
	case chat.ActionShowTwinMatrix:
		s.appendWidget(chat.WidgetTwinMatrix, "Here is your Twin Matrix visualization:")
	case chat.ActionShowDashboard:
		s.appendWidget(chat.WidgetGlobalDashboard, "Here is your dashboard:")
	case chat.ActionShowTasks:
		tasks, ok := res.Tasks()
		if !ok {
			tasks = chat.DefaultTasks()
		}
		cards := make([]chat.CardData, 0, len(tasks))
		for i := range tasks {
			t := tasks[i]
			cards = append(cards, chat.CardData{Type: chat.CardTaskOpportunity, Task: &t})
		}
		s.burstCards(cards)
	case chat.ActionNone:
	}

	if res.Response != "" {
		s.appendAssistantText(res.Response)
	}

	s.mu.Lock()
	if !s.closed {
		s.suggestions = make([]Suggestion, 0, len(res.Suggestions))
		for _, text := range res.Suggestions {
			s.suggestions = append(s.suggestions, Suggestion{
				ID:   "ai-sug-" + uuid.NewString(),
				Text: text,
			})
		}
		s.typing = false
	}
	s.mu.Unlock()
}
