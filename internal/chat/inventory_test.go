package chat

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultInventoryIsValid(t *testing.T) {
	inv := DefaultInventory()
	require.NotNil(t, inv)
	assert.Equal(t, 14, inv.Len())

	for _, id := range []string{NodeWelcome, NodeBrowseTasks, NodeVerificationRequired, NodeVerificationSuccess, NodeFallback} {
		_, err := inv.Get(id)
		assert.NoError(t, err, id)
	}
}

func TestDefaultInventorySuggestionPayloadsResolve(t *testing.T) {
	// Every suggested-action payload in the built-in script is a node id;
	// a dangling one is a defect.
	inv := DefaultInventory()
	for _, n := range defaultNodes() {
		for _, sa := range n.SuggestedActions {
			_, err := inv.Get(sa.Payload)
			assert.NoError(t, err, "node %s suggestion %q", n.ID, sa.Label)
		}
	}
}

func TestNewInventoryRejectsDuplicateIDs(t *testing.T) {
	_, err := NewInventory([]Node{
		{ID: NodeWelcome}, {ID: NodeWelcome},
	})
	assert.ErrorContains(t, err, "duplicate node id")
}

func TestNewInventoryRejectsMissingRequiredNodes(t *testing.T) {
	_, err := NewInventory([]Node{{ID: NodeWelcome}})
	assert.ErrorContains(t, err, "missing required node")
}

func TestNewInventoryRejectsDanglingCardButton(t *testing.T) {
	nodes := requiredNodes()
	nodes[0].Response.Cards = []CardData{{
		Type:    CardTaskOpportunity,
		Actions: []CardAction{{Label: "Go", ActionID: "missing_node"}},
	}}
	_, err := NewInventory(nodes)
	assert.ErrorContains(t, err, "unknown node")
}

func TestNewInventoryRejectsUnknownWidget(t *testing.T) {
	nodes := requiredNodes()
	nodes[0].Response.Widget = Widget("hologram")
	_, err := NewInventory(nodes)
	assert.ErrorContains(t, err, "unknown widget")
}

func TestResponseDelayDefaultsToBaseline(t *testing.T) {
	assert.Equal(t, DefaultDelay, Response{}.Delay())
	assert.Equal(t, 800*time.Millisecond, Response{DelayMS: 800}.Delay())
}

func TestLoadInventoryFromYAML(t *testing.T) {
	doc := `
- id: welcome
  triggers: [hi, HELLO]
  response:
    text: "hey"
    delayMs: 100
    widget: feature_grid
  suggestedActions:
    - label: Tasks
      payload: browse_tasks
- id: browse_tasks
  triggers: [task]
  response:
    text: "tasks"
- id: verification_required
  response:
    text: "verify first"
    widget: instagram_connect
- id: verification_success
  response:
    text: "done"
- id: fallback
  response:
    text: "hmm"
`
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	inv, err := LoadInventory(path)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Len())

	// Triggers are normalized to lowercase at load.
	n, ok := inv.Match("WELL HELLO")
	require.True(t, ok)
	assert.Equal(t, NodeWelcome, n.ID)
	assert.Equal(t, WidgetFeatureGrid, n.Response.Widget)
	assert.Equal(t, 100, n.Response.DelayMS)
}

func TestLoadInventoryMissingFile(t *testing.T) {
	_, err := LoadInventory(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func requiredNodes() []Node {
	return []Node{
		{ID: NodeWelcome},
		{ID: NodeBrowseTasks},
		{ID: NodeVerificationRequired},
		{ID: NodeVerificationSuccess},
		{ID: NodeFallback},
	}
}
