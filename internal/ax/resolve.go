package ax

import (
	"fmt"
	"strconv"
	"strings"
)

// searchNodeBudget bounds the identifier scan so a direct-identifier
// lookup never degenerates into a full scan of a pathological tree.
const searchNodeBudget = 4096

// Resolve re-locates the live element addressed by id under root.
//
// Three id forms are accepted:
//   - a path of child indices from the root, e.g. "0/2/5";
//   - the same path as an "@" suffix, e.g. "button[5]@0/2/5";
//   - a native stable identifier, matched by a bounded breadth-first
//     search.
//
// Path resolution is an exact positional re-walk: any mismatch between the
// remembered tree shape and the current one (an index out of range, an
// unreadable child list) returns ErrNotFound. The caller should re-list
// and re-address rather than retry.
func Resolve(root Element, id string) (Element, error) {
	if root == nil {
		return nil, ErrNotFound
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	if at := strings.LastIndex(id, "@"); at >= 0 {
		id = id[at+1:]
	}
	if indices, ok := parsePath(id); ok {
		return resolvePath(root, indices)
	}
	return findByIdentifier(root, id)
}

// parsePath parses a "/"-joined index path. ok is false when any segment
// is not a non-negative integer.
func parsePath(id string) ([]int, bool) {
	parts := strings.Split(strings.Trim(id, "/"), "/")
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		indices = append(indices, n)
	}
	return indices, len(indices) > 0
}

func resolvePath(root Element, indices []int) (Element, error) {
	cur := root
	// The first index addresses the root itself.
	for _, idx := range indices[1:] {
		kids := RetainedChildren(cur)
		if idx >= len(kids) {
			return nil, fmt.Errorf("%w: child index %d out of range", ErrNotFound, idx)
		}
		cur = kids[idx]
	}
	return cur, nil
}

// findByIdentifier scans breadth-first for an element whose native stable
// identifier equals id. The scan is bounded by searchNodeBudget nodes.
func findByIdentifier(root Element, id string) (Element, error) {
	queue := []Element{root}
	visited := 0
	for len(queue) > 0 && visited < searchNodeBudget {
		el := queue[0]
		queue = queue[1:]
		visited++
		if ident, ok := Get(el, AttrIdentifier); ok && ident == id {
			return el, nil
		}
		queue = append(queue, RetainedChildren(el)...)
	}
	return nil, fmt.Errorf("%w: no element with identifier %q", ErrNotFound, id)
}

// PathOf returns the descent indices of id, for callers that need to
// reason about tree positions (e.g. tests). Errors on non-path ids.
func PathOf(id string) ([]int, error) {
	if at := strings.LastIndex(id, "@"); at >= 0 {
		id = id[at+1:]
	}
	indices, ok := parsePath(id)
	if !ok {
		return nil, fmt.Errorf("not a path id: %q", id)
	}
	return indices, nil
}
