package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"twin3-assistant-backend/internal/chat"
)

// Submit runs one free-text user turn: local resolution first, remote
// dispatch when no scripted node matches. Turns are serialized per session.
func (s *Session) Submit(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("message is required")
	}
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	node, ok := s.inv.Match(text)
	if !ok {
		// History is captured before the echo so the remote sees the prior
		// turns; the current message travels separately.
		hist := s.history()
		s.appendUserText(text)
		s.remoteTurn(ctx, text, hist)
		return nil
	}

	node, gated := s.inv.ApplyGate(node, s.isVerified())
	if gated {
		s.log.Info("gated unverified task browse")
	} else {
		s.appendUserText(text)
	}
	s.playNode(node)
	return nil
}

// DispatchNode plays a node by explicit id, the path taken by suggestion
// payloads, quick actions, and card buttons. A lookup miss is the caller's
// broken reference.
func (s *Session) DispatchNode(ctx context.Context, id string) error {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	node, err := s.inv.Get(id)
	if err != nil {
		return err
	}
	node, _ = s.inv.ApplyGate(node, s.isVerified())
	s.playNode(node)
	return nil
}

// HandleQuickAction dispatches a button/quick-action id, failing closed to
// the fallback node on a dangling reference.
func (s *Session) HandleQuickAction(ctx context.Context, actionID string) {
	if err := s.DispatchNode(ctx, actionID); err != nil {
		s.log.Error("dangling action reference", zap.String("actionId", actionID), zap.Error(err))
		_ = s.DispatchNode(ctx, chat.NodeFallback)
	}
}

// ChooseSuggestion replays a currently offered suggestion: node-id payloads
// dispatch directly, free-text payloads resubmit as chat input.
func (s *Session) ChooseSuggestion(ctx context.Context, id string) error {
	sug, ok := s.findSuggestion(id)
	if !ok {
		return fmt.Errorf("unknown suggestion %q", id)
	}
	if sug.Action != "" {
		s.HandleQuickAction(ctx, sug.Action)
		return nil
	}
	return s.Submit(ctx, sug.Text)
}

// ConfirmVerification is the callback fired when the identity-connect widget
// reports success. It replays the verification-success node, which latches
// the verified flag on commit.
func (s *Session) ConfirmVerification(ctx context.Context, handle string) {
	s.log.Info("verification confirmed", zap.String("handle", handle))
	s.HandleQuickAction(ctx, chat.NodeVerificationSuccess)
}

// Start plays the welcome node into a fresh session.
func (s *Session) Start(ctx context.Context) {
	s.HandleQuickAction(ctx, chat.NodeWelcome)
}

// playNode walks one response through the sequencer states: typing on and
// suggestions cleared, the scripted delay, then the atomic commit. Card
// payloads continue as a staggered burst after the commit.
func (s *Session) playNode(node *chat.Node) {
	s.beginTyping()
	if !s.sleep(s.delayFor(node)) {
		return
	}
	s.commit(node)
	if len(node.Response.Cards) > 0 {
		s.burstCards(node.Response.Cards)
	}
}

// commit appends the assistant message, installs the node's suggestions,
// clears typing, and latches the verified flag when the node is the
// verification-success confirmation, all as one mutation.
func (s *Session) commit(node *chat.Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	kind := KindText
	if node.Response.Widget != chat.WidgetNone {
		kind = KindWidget
	}
	now := time.Now()
	s.messages = append(s.messages, Message{
		ID:        s.nextMessageIDLocked(now),
		Role:      RoleAssistant,
		Kind:      kind,
		Content:   node.Response.Text,
		Widget:    node.Response.Widget,
		Timestamp: now,
	})
	s.suggestions = make([]Suggestion, 0, len(node.SuggestedActions))
	for i, sa := range node.SuggestedActions {
		s.suggestions = append(s.suggestions, Suggestion{
			ID:     fmt.Sprintf("%s-suggestion-%d", node.ID, i),
			Text:   sa.Label,
			Action: sa.Payload,
		})
	}
	s.typing = false
	if node.ID == chat.NodeVerificationSuccess {
		s.verified = true
	}
}

// burstCards appends each card as its own message, staggered by a fixed gap.
// A single goroutine appends sequentially, so timeline order is the source
// order no matter how timers fire.
func (s *Session) burstCards(cards []chat.CardData) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	burst := make([]chat.CardData, len(cards))
	copy(burst, cards)
	go func() {
		defer s.wg.Done()
		for i, card := range burst {
			if i > 0 && !s.sleep(s.stagger()) {
				return
			}
			s.appendCard(card)
		}
	}()
}
