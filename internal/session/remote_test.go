package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twin3-assistant-backend/internal/chat"
)

type fakeCompleter struct {
	res *chat.RemoteResult
	err error

	calls       int
	gotMessage  string
	gotVerified bool
	gotHistory  []chat.HistoryEntry
}

func (f *fakeCompleter) Complete(_ context.Context, message string, verified bool, history []chat.HistoryEntry) (*chat.RemoteResult, error) {
	f.calls++
	f.gotMessage = message
	f.gotVerified = verified
	f.gotHistory = history
	return f.res, f.err
}

func TestRemoteTaskDirective(t *testing.T) {
	actionData, _ := json.Marshal(map[string]any{
		"tasks": []chat.TaskPayload{
			{Title: "First", Brand: chat.Brand{Name: "A"}},
			{Title: "Second", Brand: chat.Brand{Name: "B"}},
		},
	})
	fake := &fakeCompleter{res: &chat.RemoteResult{
		Response:    "Here are tasks",
		Action:      chat.ActionShowTasks,
		ActionData:  actionData,
		Suggestions: []string{"a", "b"},
	}}
	s := newTestSession(t, fake)

	require.NoError(t, s.Submit(context.Background(), "tell me a joke"))
	s.Wait()

	st := s.Snapshot()
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "tell me a joke", fake.gotMessage)

	cards := cardMessages(st)
	require.Len(t, cards, 2)
	assert.Equal(t, "First", cards[0].Card.Task.Title)
	assert.Equal(t, "Second", cards[1].Card.Task.Title)

	var texts []Message
	for _, m := range st.Messages {
		if m.Role == RoleAssistant && m.Kind == KindText {
			texts = append(texts, m)
		}
	}
	require.Len(t, texts, 1)
	assert.Equal(t, "Here are tasks", texts[0].Content)

	require.Len(t, st.Suggestions, 2)
	assert.Equal(t, "a", st.Suggestions[0].Text)
	assert.Equal(t, "b", st.Suggestions[1].Text)
	assert.True(t, strings.HasPrefix(st.Suggestions[0].ID, "ai-sug-"))
	assert.Empty(t, st.Suggestions[0].Action, "remote suggestions resubmit as free text")
	assert.False(t, st.Typing)
}

func TestRemoteTasksDefaultWhenNoActionData(t *testing.T) {
	fake := &fakeCompleter{res: &chat.RemoteResult{
		Response: "Here are the available brand opportunities for you:",
		Action:   chat.ActionShowTasks,
	}}
	s := newTestSession(t, fake)

	require.NoError(t, s.Submit(context.Background(), "tell me a joke"))
	s.Wait()

	cards := cardMessages(s.Snapshot())
	require.Len(t, cards, 2)
	assert.Equal(t, "L'Oréal Paris", cards[0].Card.Task.Brand.Name)
	assert.Equal(t, "Starbucks", cards[1].Card.Task.Brand.Name)
}

func TestRemoteWidgetDirectives(t *testing.T) {
	cases := []struct {
		action chat.Action
		widget chat.Widget
	}{
		{chat.ActionShowInstagram, chat.WidgetInstagramConnect},
		{chat.ActionShowTwinMatrix, chat.WidgetTwinMatrix},
		{chat.ActionShowDashboard, chat.WidgetGlobalDashboard},
	}
	for _, tc := range cases {
		fake := &fakeCompleter{res: &chat.RemoteResult{Response: "ok", Action: tc.action}}
		s := newTestSession(t, fake)
		require.NoError(t, s.Submit(context.Background(), "tell me a joke"))

		st := s.Snapshot()
		// Widget reveal first, then the text reply.
		require.Len(t, st.Messages, 3, tc.action)
		assert.Equal(t, KindWidget, st.Messages[1].Kind)
		assert.Equal(t, tc.widget, st.Messages[1].Widget)
		assert.Equal(t, KindText, st.Messages[2].Kind)
		assert.Equal(t, "ok", st.Messages[2].Content)
		s.Close()
	}
}

func TestRemoteFailureAppendsSingleApology(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("boom")}
	s := newTestSession(t, fake)

	require.NoError(t, s.Submit(context.Background(), "tell me a joke"))

	st := s.Snapshot()
	assistant := assistantMessages(st)
	require.Len(t, assistant, 1)
	assert.Equal(t, KindText, assistant[0].Kind)
	assert.Equal(t, apologyText, assistant[0].Content)
	assert.Empty(t, cardMessages(st))
	assert.False(t, st.Typing)

	// The failure is terminal for that turn only; the next turn proceeds.
	fake.err = nil
	fake.res = &chat.RemoteResult{Response: "recovered"}
	require.NoError(t, s.Submit(context.Background(), "tell me a joke"))
	assistant = assistantMessages(s.Snapshot())
	require.Len(t, assistant, 2)
	assert.Equal(t, "recovered", assistant[1].Content)
}

func TestRemoteEmptySuggestionsClearStaleOnes(t *testing.T) {
	fake := &fakeCompleter{res: &chat.RemoteResult{Response: "plain answer"}}
	s := newTestSession(t, fake)

	s.Start(context.Background())
	require.NotEmpty(t, s.Snapshot().Suggestions)

	require.NoError(t, s.Submit(context.Background(), "tell me a joke"))
	assert.Empty(t, s.Snapshot().Suggestions)
}

func TestRemoteReceivesVerifiedFlagAndHistoryWindow(t *testing.T) {
	fake := &fakeCompleter{res: &chat.RemoteResult{Response: "ok"}}
	s := newTestSession(t, fake)

	s.ConfirmVerification(context.Background(), "jane_doe")
	require.NoError(t, s.Submit(context.Background(), "hi"))
	require.NoError(t, s.Submit(context.Background(), "how it works"))
	require.NoError(t, s.Submit(context.Background(), "tell me a joke"))

	assert.True(t, fake.gotVerified)
	// History excludes the in-flight message and holds at most five prior
	// entries, most recent last.
	require.Len(t, fake.gotHistory, 5)
	for _, h := range fake.gotHistory {
		assert.NotEqual(t, "tell me a joke", h.Content)
	}
	last := fake.gotHistory[len(fake.gotHistory)-1]
	assert.Equal(t, string(RoleAssistant), last.Role)
}
