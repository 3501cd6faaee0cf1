// Package session owns the conversational state machine: the append-only
// message timeline, the response sequencer with its timed commits, and the
// replay of remote action directives. One Session is exclusive to one
// conversation.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"twin3-assistant-backend/internal/chat"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type MessageKind string

const (
	KindText   MessageKind = "text"
	KindWidget MessageKind = "widget"
	KindCard   MessageKind = "card"
)

// Message is one immutable timeline entry. Messages are appended, never
// mutated or removed.
type Message struct {
	ID        string         `json:"id"`
	Role      Role           `json:"role"`
	Kind      MessageKind    `json:"kind"`
	Content   string         `json:"content,omitempty"`
	Widget    chat.Widget    `json:"widget,omitempty"`
	Card      *chat.CardData `json:"cardData,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Suggestion is an ephemeral quick reply. An empty Action means the text is
// resubmitted as free input when chosen.
type Suggestion struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

// State is a point-in-time snapshot of a session. Readers only ever see
// whole snapshots, never partial mutations.
type State struct {
	Messages    []Message    `json:"messages"`
	Suggestions []Suggestion `json:"suggestions"`
	Verified    bool         `json:"isVerified"`
	Typing      bool         `json:"isTyping"`
}

// Options tune the sequencer timings. Zero values fall back to the scripted
// defaults.
type Options struct {
	// CardStagger is the gap between consecutive card appends in a burst.
	CardStagger time.Duration
	// MaxDelay, when positive, clamps scripted response delays.
	MaxDelay time.Duration
	// MaxHistory limits how many prior messages accompany a remote call.
	MaxHistory int
}

const (
	defaultCardStagger = 200 * time.Millisecond
	defaultMaxHistory  = 5
)

func (o Options) withDefaults() Options {
	if o.CardStagger <= 0 {
		o.CardStagger = defaultCardStagger
	}
	if o.MaxHistory <= 0 {
		o.MaxHistory = defaultMaxHistory
	}
	return o
}

// Session holds one conversation's state and plays responses into it.
type Session struct {
	id     string
	inv    *chat.Inventory
	remote chat.Completer
	opts   Options
	log    *zap.Logger

	// lifetime of scheduled work; cancelled on Close so no stale callback
	// ever mutates a torn-down session
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// turnMu serializes turns: one user submission runs resolve-to-commit
	// before the next begins
	turnMu sync.Mutex

	mu          sync.Mutex
	closed      bool
	messages    []Message
	suggestions []Suggestion
	verified    bool
	typing      bool
	msgCounter  int
}

func New(id string, inv *chat.Inventory, remote chat.Completer, opts Options, log *zap.Logger) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:     id,
		inv:    inv,
		remote: remote,
		opts:   opts.withDefaults(),
		log:    log.With(zap.String("session", id)),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Session) ID() string { return s.id }

// Close tears the session down and waits for scheduled work to drain.
// After Close returns, the state can no longer change.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
	s.wg.Wait()
}

// Snapshot copies the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		Messages:    make([]Message, len(s.messages)),
		Suggestions: make([]Suggestion, len(s.suggestions)),
		Verified:    s.verified,
		Typing:      s.typing,
	}
	copy(st.Messages, s.messages)
	copy(st.Suggestions, s.suggestions)
	return st
}

func (s *Session) isVerified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verified
}

// nextMessageIDLocked joins the millisecond timestamp with a per-session
// counter so rapid same-millisecond appends never collide.
func (s *Session) nextMessageIDLocked(now time.Time) string {
	s.msgCounter++
	return fmt.Sprintf("%d-%d", now.UnixMilli(), s.msgCounter)
}

// append adds a message to the timeline. It is a no-op on a closed session.
func (s *Session) append(role Role, kind MessageKind, content string, widget chat.Widget, card *chat.CardData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	now := time.Now()
	s.messages = append(s.messages, Message{
		ID:        s.nextMessageIDLocked(now),
		Role:      role,
		Kind:      kind,
		Content:   content,
		Widget:    widget,
		Card:      card,
		Timestamp: now,
	})
}

func (s *Session) appendUserText(text string) {
	s.append(RoleUser, KindText, text, chat.WidgetNone, nil)
}

func (s *Session) appendAssistantText(text string) {
	s.append(RoleAssistant, KindText, text, chat.WidgetNone, nil)
}

func (s *Session) appendWidget(widget chat.Widget, content string) {
	s.append(RoleAssistant, KindWidget, content, widget, nil)
}

func (s *Session) appendCard(card chat.CardData) {
	c := card
	s.append(RoleAssistant, KindCard, "", chat.WidgetNone, &c)
}

// beginTyping opens the thinking window: typing on, stale suggestions gone.
func (s *Session) beginTyping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.typing = true
	s.suggestions = nil
}

func (s *Session) clearTyping() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.typing = false
}

// findSuggestion looks an offered suggestion up by id.
func (s *Session) findSuggestion(id string) (Suggestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sug := range s.suggestions {
		if sug.ID == id {
			return sug, true
		}
	}
	return Suggestion{}, false
}

// history returns the most recent messages as role/content pairs for the
// remote call, most recent last.
func (s *Session) history() []chat.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := len(s.messages) - s.opts.MaxHistory
	if start < 0 {
		start = 0
	}
	out := make([]chat.HistoryEntry, 0, len(s.messages)-start)
	for _, m := range s.messages[start:] {
		out = append(out, chat.HistoryEntry{Role: string(m.Role), Content: m.Content})
	}
	return out
}

// sleep waits for d or until the session is closed. Reports whether the
// full wait elapsed.
func (s *Session) sleep(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Session) delayFor(n *chat.Node) time.Duration {
	d := n.Response.Delay()
	if s.opts.MaxDelay > 0 && d > s.opts.MaxDelay {
		d = s.opts.MaxDelay
	}
	return d
}

func (s *Session) stagger() time.Duration {
	return s.opts.CardStagger
}

// Wait blocks until background card bursts currently in flight finish.
// Intended for tests and shutdown paths.
func (s *Session) Wait() {
	s.wg.Wait()
}
