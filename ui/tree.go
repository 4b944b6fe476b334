package ui

import (
	"image"

	"github.com/clktmr/n64demo/debug"
)

// Tree owns the root item and tracks the focus. The focus is stored as a path
// of child indices leading from the root to the focused leaf.
type Tree struct {
	root  *Item
	focus []int
}

// NewTree returns an empty tree. Its root is a vertical container which holds
// the focus until the first child is added.
func NewTree() *Tree {
	t := &Tree{}
	t.root = newItem(t, Container, "", NoID)
	return t
}

func (t *Tree) Root() *Item { return t.root }

// Focused returns the focused leaf or nil if the tree has no children.
func (t *Tree) Focused() *Item {
	if t.root.Leaf() {
		return nil
	}
	return t.end()
}

// FocusPath returns a copy of the child indices leading to the focused leaf.
func (t *Tree) FocusPath() []int {
	return append([]int(nil), t.focus...)
}

// Selected reports whether the item lies on the path from the root to the
// focused leaf.
func (it *Item) Selected() bool {
	if it.tree == nil {
		return false
	}
	_, ok := it.tree.depth(it)
	return ok
}

// end returns the last item on the focus path.
func (t *Tree) end() *Item {
	it := t.root
	for _, i := range t.focus {
		it = it.children[i]
	}
	return it
}

// depth returns the position of it on the focus path.
func (t *Tree) depth(it *Item) (int, bool) {
	node := t.root
	for d := 0; ; d++ {
		if node == it {
			return d, true
		}
		if d >= len(t.focus) {
			return 0, false
		}
		node = node.children[t.focus[d]]
	}
}

// selectNearest extends the focus path below it, choosing the child nearest to
// p on each level until a leaf is reached.
func (t *Tree) selectNearest(it *Item, p image.Point) {
	for !it.Leaf() {
		i := it.nearestChild(p)
		t.focus = append(t.focus, i)
		it = it.children[i]
	}
}

// Update is called once per frame. It moves the focus according to the
// directional input and then lets the focused widget handle the input.
func (t *Tree) Update(in Input) {
	nav := in.navigation()
	t.navigate(t.root, 0, &nav)
	t.updateFocused(in)
}

// navigate handles the navigation bottom up: the deepest container on the
// focus path whose direction matches the input and that isn't at its edge
// consumes the input.
func (t *Tree) navigate(it *Item, depth int, nav *image.Point) {
	if it.Leaf() {
		return
	}
	debug.Assert(depth < len(t.focus), "ui: focused container without focused child")
	if depth >= len(t.focus) {
		return
	}

	cur := t.focus[depth]
	t.navigate(it.children[cur], depth+1, nav)

	axis := &nav.Y
	if it.dir == Horizontal {
		axis = &nav.X
	}
	if *axis == 0 {
		return
	}

	next := cur + *axis
	if next < 0 || next >= len(it.children) {
		return
	}
	*axis = 0

	old := center(t.end().rect)
	t.focus = append(t.focus[:depth], next)
	t.selectNearest(it.children[next], old)
}

func (t *Tree) updateFocused(in Input) {
	it := t.Focused()
	if it == nil {
		return
	}

	switch it.kind {
	case Checkbox:
		if in.Confirm {
			if it.value != 0 {
				it.value = 0
			} else {
				it.value = 1
			}
		}
	case Slider:
		step := it.step
		if in.Fast {
			step *= 10
		}
		if in.Left && it.value > it.min {
			it.value = max(it.value-step, it.min)
		} else if in.Right && it.value < it.max {
			it.value = min(it.value+step, it.max)
		}
	}
}
