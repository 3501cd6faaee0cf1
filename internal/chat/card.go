package chat

// CardType distinguishes the structured card payloads the engine can emit.
type CardType string

const (
	CardTaskOpportunity CardType = "task_opportunity"
	CardTaskDetail      CardType = "task_detail"
)

type Brand struct {
	Name    string `json:"name" yaml:"name"`
	LogoURL string `json:"logoUrl,omitempty" yaml:"logoUrl,omitempty"`
}

type Reward struct {
	Tokens string `json:"tokens" yaml:"tokens"`
	Gift   string `json:"gift,omitempty" yaml:"gift,omitempty"`
}

// TaskPayload describes one brand collaboration opportunity.
type TaskPayload struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Brand       Brand  `json:"brand" yaml:"brand"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Reward      Reward `json:"reward" yaml:"reward"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	SpotsLeft   int    `json:"spotsLeft,omitempty" yaml:"spotsLeft,omitempty"`
	Deadline    string `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// CardAction is a button on a card. ActionID is dispatched back through the
// resolver as an explicit node id when the button is pressed.
type CardAction struct {
	Label    string `json:"label" yaml:"label"`
	ActionID string `json:"actionId" yaml:"actionId"`
	Variant  string `json:"variant,omitempty" yaml:"variant,omitempty"`
}

// CardData is the payload of a card-kind message.
type CardData struct {
	Type        CardType     `json:"type" yaml:"type"`
	Task        *TaskPayload `json:"taskPayload,omitempty" yaml:"taskPayload,omitempty"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	ImageURL    string       `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Actions     []CardAction `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// DefaultTasks is the task list used when the remote service asks to show
// tasks without supplying any.
func DefaultTasks() []TaskPayload {
	return []TaskPayload{
		{
			ID:          "task1",
			Brand:       Brand{Name: "L'Oréal Paris"},
			Title:       "Share your favorite lipstick shade",
			Description: "Create a 30-second video showcasing your favorite L'Oréal lipstick",
			Reward:      Reward{Tokens: "150"},
			Status:      "open",
		},
		{
			ID:          "task2",
			Brand:       Brand{Name: "Starbucks"},
			Title:       "Coffee Vlog Challenge",
			Description: "Vlog your Starbucks morning routine",
			Reward:      Reward{Tokens: "200"},
			Status:      "open",
		},
	}
}
