// Package chat holds the scripted conversation domain: the interaction
// inventory, free-text node resolution, the verification gate, and the
// remote completion dispatcher.
package chat

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Well-known node ids the engine depends on. A custom inventory must define
// all of them.
const (
	NodeWelcome              = "welcome"
	NodeBrowseTasks          = "browse_tasks"
	NodeVerificationRequired = "verification_required"
	NodeVerificationSuccess  = "verification_success"
	NodeFallback             = "fallback"
)

// DefaultDelay applies when a node declares no response delay.
const DefaultDelay = 500 * time.Millisecond

var (
	// ErrNodeNotFound signals an explicit-id lookup miss: a broken reference,
	// not a routing outcome.
	ErrNodeNotFound = errors.New("interaction node not found")
)

// SuggestedAction is a follow-up quick reply offered after a response.
// Payload is either another node id or free text to resubmit.
type SuggestedAction struct {
	Label   string `yaml:"label"`
	Payload string `yaml:"payload"`
}

// Response is the payload a node commits when it plays.
type Response struct {
	Text    string     `yaml:"text"`
	DelayMS int        `yaml:"delayMs"`
	Widget  Widget     `yaml:"widget"`
	Cards   []CardData `yaml:"cards"`
}

// Delay returns the response delay, falling back to DefaultDelay.
func (r Response) Delay() time.Duration {
	if r.DelayMS <= 0 {
		return DefaultDelay
	}
	return time.Duration(r.DelayMS) * time.Millisecond
}

// Node is one scripted conversational unit.
type Node struct {
	ID               string            `yaml:"id"`
	Triggers         []string          `yaml:"triggers"`
	Response         Response          `yaml:"response"`
	SuggestedActions []SuggestedAction `yaml:"suggestedActions"`
}

// Inventory is the ordered, immutable collection of interaction nodes.
// Declaration order is part of the routing contract: free-text matching
// returns the earliest declared node whose trigger matches.
type Inventory struct {
	nodes []Node
	byID  map[string]*Node
}

// NewInventory validates the node list and builds the lookup index.
func NewInventory(nodes []Node) (*Inventory, error) {
	inv := &Inventory{nodes: nodes, byID: make(map[string]*Node, len(nodes))}
	for i := range inv.nodes {
		n := &inv.nodes[i]
		if strings.TrimSpace(n.ID) == "" {
			return nil, fmt.Errorf("node at index %d has no id", i)
		}
		if _, dup := inv.byID[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}
		// Triggers match lowercased input; normalize once at load.
		for j, t := range n.Triggers {
			n.Triggers[j] = strings.ToLower(strings.TrimSpace(t))
		}
		inv.byID[n.ID] = n
	}
	if err := inv.validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

func (inv *Inventory) validate() error {
	for _, id := range []string{NodeWelcome, NodeBrowseTasks, NodeVerificationRequired, NodeVerificationSuccess, NodeFallback} {
		if _, ok := inv.byID[id]; !ok {
			return fmt.Errorf("inventory is missing required node %q", id)
		}
	}
	for i := range inv.nodes {
		n := &inv.nodes[i]
		if !n.Response.Widget.Valid() {
			return fmt.Errorf("node %q references unknown widget %q", n.ID, n.Response.Widget)
		}
		for _, c := range n.Response.Cards {
			if c.Type != CardTaskOpportunity && c.Type != CardTaskDetail {
				return fmt.Errorf("node %q has card of unknown type %q", n.ID, c.Type)
			}
			for _, a := range c.Actions {
				if _, ok := inv.byID[a.ActionID]; !ok {
					return fmt.Errorf("node %q card button %q references unknown node %q", n.ID, a.Label, a.ActionID)
				}
			}
		}
	}
	return nil
}

// Get looks a node up by id. A miss is a broken reference (ErrNodeNotFound).
func (inv *Inventory) Get(id string) (*Node, error) {
	n, ok := inv.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return n, nil
}

// Match scans the inventory in declared order and returns the first node with
// a trigger contained in the lowercased input. The second return is false
// when nothing matches, which routes the turn to the remote dispatcher.
func (inv *Inventory) Match(input string) (*Node, bool) {
	text := strings.ToLower(strings.TrimSpace(input))
	if text == "" {
		return nil, false
	}
	for i := range inv.nodes {
		n := &inv.nodes[i]
		for _, trigger := range n.Triggers {
			if trigger != "" && strings.Contains(text, trigger) {
				return n, true
			}
		}
	}
	return nil, false
}

// ApplyGate substitutes the verification-required node when the resolved node
// is the protected one and the session is unverified. The returned bool
// reports whether the substitution happened; a gated turn does not echo the
// user's raw input. Every other node passes through untouched.
func (inv *Inventory) ApplyGate(n *Node, verified bool) (*Node, bool) {
	if n.ID != NodeBrowseTasks || verified {
		return n, false
	}
	gate, err := inv.Get(NodeVerificationRequired)
	if err != nil {
		// Unreachable after validate; fail open rather than drop the turn.
		return n, false
	}
	return gate, true
}

// Fallback returns the catch-all node.
func (inv *Inventory) Fallback() *Node {
	n, _ := inv.Get(NodeFallback)
	return n
}

// Len reports the number of declared nodes.
func (inv *Inventory) Len() int { return len(inv.nodes) }

// LoadInventory reads an inventory from a YAML file. The file holds a plain
// list of nodes in routing order.
func LoadInventory(path string) (*Inventory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var nodes []Node
	if err := yaml.Unmarshal(b, &nodes); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	return NewInventory(nodes)
}
