package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// HistoryEntry is one prior message re-sent with every remote call; the
// remote service is stateless from our point of view.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RemoteResult is the structured action directive returned by the remote
// completion service.
type RemoteResult struct {
	Response    string          `json:"response"`
	Action      Action          `json:"action"`
	ActionData  json.RawMessage `json:"actionData,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// Tasks decodes actionData.tasks if present and non-empty.
func (r *RemoteResult) Tasks() ([]TaskPayload, bool) {
	if len(r.ActionData) == 0 {
		return nil, false
	}
	var data struct {
		Tasks []TaskPayload `json:"tasks"`
	}
	if err := json.Unmarshal(r.ActionData, &data); err != nil {
		return nil, false
	}
	if len(data.Tasks) == 0 {
		return nil, false
	}
	return data.Tasks, true
}

// Completer is the remote text-completion collaborator.
type Completer interface {
	Complete(ctx context.Context, message string, verified bool, history []HistoryEntry) (*RemoteResult, error)
}

const completeTimeout = 10 * time.Second

const systemPromptFmt = `You are twin3 AI, an intelligent assistant for twin3.ai - a platform connecting influencers with brand partnerships.

**Your Capabilities:**
1. Show Instagram verification widget (when user needs to verify)
2. Show Twin Matrix widget (256-dimensional identity visualization)
3. Show brand task opportunities
4. Show user dashboard
5. Answer questions about the platform

**User Status:**
- Verified: %s

**Important Rules:**
1. If user wants to browse tasks but is NOT verified, explain they need to verify first and return action: "show_instagram_widget"
2. If user wants to browse tasks and IS verified, return action: "show_tasks"
3. If user asks about their matrix/score/profile, return action: "show_twin_matrix" (always, even if not verified)
4. If user asks about dashboard/progress, return action: "show_dashboard" (always, even if not verified)
5. If user wants to verify or mentions Instagram, return action: "show_instagram_widget"
6. For general questions, just provide a helpful text response (no action needed)

Only require verification for browsing/accepting TASKS. Everything else (matrix, dashboard) should be shown freely.

**Response Format:**
You must respond with a JSON object:
{
  "response": "your text message to the user",
  "action": "show_instagram_widget" | "show_twin_matrix" | "show_tasks" | "show_dashboard" | null,
  "actionData": {},
  "suggestions": []
}

Provide 2-4 short suggestions (3-6 words each) based on context to guide the user. Output ONLY the JSON object.`

// OpenAIDispatcher sends unmatched input to a hosted chat-completion
// endpoint and decodes the action directive it returns.
type OpenAIDispatcher struct {
	client *openai.Client
	model  string
}

func NewOpenAIDispatcher(client *openai.Client, model string) *OpenAIDispatcher {
	return &OpenAIDispatcher{client: client, model: model}
}

func (d *OpenAIDispatcher) Complete(ctx context.Context, message string, verified bool, history []HistoryEntry) (*RemoteResult, error) {
	status := "NO"
	if verified {
		status = "YES"
	}
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPromptFmt, status)},
	}
	for _, h := range history {
		role := h.Role
		if role == "" {
			role = openai.ChatMessageRoleUser
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: h.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	ctx, cancel := context.WithTimeout(ctx, completeTimeout)
	defer cancel()
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     d.model,
		Messages:  messages,
		MaxTokens: 500,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion: no choices")
	}
	return decodeRemoteResult(resp.Choices[0].Message.Content)
}

// decodeRemoteResult parses the completion output, salvaging the outermost
// JSON object when the model wraps it in prose.
func decodeRemoteResult(raw string) (*RemoteResult, error) {
	var out RemoteResult
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		first := strings.Index(raw, "{")
		last := strings.LastIndex(raw, "}")
		if first < 0 || last <= first {
			return nil, fmt.Errorf("decode remote result: %w", err)
		}
		if err2 := json.Unmarshal([]byte(raw[first:last+1]), &out); err2 != nil {
			return nil, fmt.Errorf("decode remote result: %w", err)
		}
	}
	if !out.Action.Valid() {
		return nil, fmt.Errorf("decode remote result: unknown action %q", out.Action)
	}
	return &out, nil
}
