package ax

import (
	"fmt"
	"strconv"
)

// DefaultMaxDepth bounds tree descent. Branches deeper than this are
// truncated (children omitted) rather than failing the whole call.
const DefaultMaxDepth = 40

// Node is the serialized, agent-consumable form of a UI element. IDs are
// "/"-joined child indices from the root window (the root itself is "0")
// and are re-resolvable with Resolve against the same tree. Name and
// Actions are always present on the wire, empty when the element has
// neither; Children is omitted when empty.
type Node struct {
	ID       string   `json:"id"                 yaml:"id"`
	Role     Role     `json:"role"               yaml:"role"`
	Name     string   `json:"name"               yaml:"name"`
	Actions  []string `json:"actions"            yaml:"actions"`
	Children []Node   `json:"children,omitempty" yaml:"children,omitempty"`
	Err      string   `json:"error,omitempty"    yaml:"error,omitempty"`

	// Center is the element's on-screen center, kept for annotation
	// overlays. Not part of the wire shape.
	Center []int `json:"-" yaml:"-"`
}

// actionableActions are the action names that mark an element as a control
// the caller can activate. Used for role promotion and label absorption.
var actionableActions = map[string]bool{
	"press":         true,
	"open":          true,
	"showmenu":      true,
	"showdefaultui": true,
}

// Serializer walks a live element tree into Nodes.
type Serializer struct {
	// MaxDepth overrides DefaultMaxDepth when > 0.
	MaxDepth int
}

// Serialize walks the tree rooted at root and returns its Node form.
// Failures local to one subtree produce a stub node carrying an error
// marker at that position; only an unreadable root fails the whole call.
//
// Structural simplification happens on the way back up, per child:
// the child's actions are folded into the parent; a container/element
// parent that gains an actionable action is promoted to button; and a
// nameless actionable parent absorbs the name of a text child, dropping
// that child from the output. Absorbed children cannot be addressed
// afterwards. Window elements are exempt from all three steps.
func (s Serializer) Serialize(root Element) (*Node, error) {
	if root == nil {
		return nil, ErrNotFound
	}
	if _, err := root.Attr(AttrRole); err != nil {
		return nil, fmt.Errorf("root element unreadable: %w", err)
	}
	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	n := serializeNode(root, "0", 0, maxDepth)
	return &n, nil
}

func serializeNode(el Element, id string, depth, maxDepth int) Node {
	rawRole, err := el.Attr(AttrRole)
	if err != nil {
		// The handle passed the retention check but died since: leave a
		// stub so the caller can see a node existed here.
		return Node{ID: id, Role: RoleElement, Actions: []string{}, Err: "element could not be serialized"}
	}

	node := Node{
		ID:      id,
		Role:    Classify(rawRole, SupportedActions(el)),
		Name:    DisplayName(el),
		Actions: SupportedActions(el),
	}
	if node.Actions == nil {
		// A nil slice would serialize as JSON null instead of [].
		node.Actions = []string{}
	}
	if cx, cy, ok := Center(el); ok {
		node.Center = []int{cx, cy}
	}

	if depth >= maxDepth {
		return node
	}

	mergeable := !isWindowRole(rawRole)
	for i, child := range RetainedChildren(el) {
		childNode := serializeNode(child, id+"/"+strconv.Itoa(i), depth+1, maxDepth)
		if !mergeable {
			node.Children = append(node.Children, childNode)
			continue
		}

		node.Actions = unionActions(node.Actions, childNode.Actions)
		if (node.Role == RoleContainer || node.Role == RoleElement) && hasActionable(node.Actions) {
			node.Role = RoleButton
		}
		if childNode.Err == "" && childNode.Role == RoleText &&
			node.Name == "" && childNode.Name != "" && hasActionable(node.Actions) {
			// Label absorption: the child is the control's visible label.
			node.Name = childNode.Name
			continue
		}
		node.Children = append(node.Children, childNode)
	}
	return node
}

func hasActionable(actions []string) bool {
	for _, a := range actions {
		if actionableActions[a] {
			return true
		}
	}
	return false
}

// unionActions appends the actions from extra not already in base,
// preserving order of first appearance.
func unionActions(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	for _, a := range base {
		seen[a] = true
	}
	for _, a := range extra {
		if !seen[a] {
			seen[a] = true
			base = append(base, a)
		}
	}
	return base
}
