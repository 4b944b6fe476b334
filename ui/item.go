// Package ui implements a retained mode widget tree for settings panels.
//
// A Tree is built once from Items: containers that split their rectangle
// evenly between their children along a Direction, and leaf widgets (labels,
// checkboxes and sliders). Every frame Update moves the single focused leaf
// with the D-pad and edits the value of the focused widget. Rendering is left
// to the caller, see Render for the default look.
package ui

import (
	"image"
	"slices"
)

// Kind selects the behaviour of an Item. An Item with children is always
// treated as a container, regardless of its Kind.
type Kind uint8

const (
	Container Kind = iota
	Label
	Checkbox
	Slider
)

var kindNames = [...]string{"Container", "Label", "Checkbox", "Slider"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Direction is the axis along which a container lays out its children.
type Direction uint8

const (
	Vertical Direction = iota
	Horizontal
)

// NoID is the id of items which don't map to an application parameter.
const NoID = -1

// Item is a node of the UI tree. Containers lay out their children, all
// other kinds are leaves that can be focused.
type Item struct {
	tree *Tree

	kind     Kind
	id       int
	text     string
	children []*Item
	dir      Direction
	rect     image.Rectangle

	value          int
	min, max, step int
}

func newItem(t *Tree, kind Kind, text string, id int) *Item {
	return &Item{
		tree: t,
		kind: kind,
		id:   id,
		text: text,
		max:  100,
		step: 1,
	}
}

func (it *Item) Kind() Kind                  { return it.kind }
func (it *Item) ID() int                     { return it.id }
func (it *Item) Text() string                { return it.text }
func (it *Item) Children() []*Item           { return it.children }
func (it *Item) Direction() Direction        { return it.dir }
func (it *Item) Rect() image.Rectangle       { return it.rect }
func (it *Item) Value() int                  { return it.value }
func (it *Item) SetValue(value int)          { it.value = value }
func (it *Item) Leaf() bool                  { return len(it.children) == 0 }
func (it *Item) Range() (min, max, step int) { return it.min, it.max, it.step }

// AddChild appends a new item and returns it. The first child added to the
// focused item takes over the focus, all later children start unfocused.
// If the item already has a size, the layout is updated immediately.
func (it *Item) AddChild(kind Kind, text string, id int) *Item {
	child := newItem(it.tree, kind, text, id)

	if len(it.children) == 0 && it.tree != nil && it.tree.end() == it {
		it.tree.focus = append(it.tree.focus, 0)
	}
	it.children = append(it.children, child)

	if !it.rect.Empty() {
		it.layout()
	}
	return child
}

// RemoveChild detaches child from the item and reports whether it was found.
// If the focus was inside the removed subtree, it moves to the remaining
// sibling nearest to the previously focused leaf.
func (it *Item) RemoveChild(child *Item) bool {
	i := slices.Index(it.children, child)
	if i < 0 {
		return false
	}

	t := it.tree
	sel, depth := -1, 0
	var old image.Point
	if t != nil {
		if d, ok := t.depth(it); ok && d < len(t.focus) {
			sel, depth = t.focus[d], d
			old = center(t.end().rect)
		}
	}

	it.children = slices.Delete(it.children, i, i+1)
	child.detach()

	if !it.rect.Empty() {
		it.layout()
	}

	switch {
	case sel < 0:
	case sel > i:
		t.focus[depth]--
	case sel == i:
		t.focus = t.focus[:depth]
		if len(it.children) > 0 {
			t.selectNearest(it, old)
		}
	}
	return true
}

func (it *Item) detach() {
	it.tree = nil
	for _, c := range it.children {
		c.detach()
	}
}

// Walk calls fn for the item and all its descendants in depth-first order.
func (it *Item) Walk(fn func(*Item)) {
	fn(it)
	for _, c := range it.children {
		c.Walk(fn)
	}
}

// SetDisplayRect sets the area the item and its children occupy on the
// screen.
func (it *Item) SetDisplayRect(r image.Rectangle) {
	if r == it.rect {
		return
	}
	it.rect = r
	it.layout()
}

func (it *Item) SetDirection(dir Direction) {
	if it.dir == dir {
		return
	}
	it.dir = dir
	if !it.rect.Empty() {
		it.layout()
	}
}

// SetRange configures a slider. The values are not validated, the caller must
// ensure min <= value <= max.
func (it *Item) SetRange(min, max, step, value int) *Item {
	it.min, it.max, it.step, it.value = min, max, step, value
	return it
}

// layout splits the rect evenly between the children. Each child gets the
// truncated share, so up to n-1 pixels at the far edge stay unused.
func (it *Item) layout() {
	n := len(it.children)
	if n == 0 {
		return
	}

	child := it.rect
	var step image.Point
	if it.dir == Horizontal {
		step.X = it.rect.Dx() / n
		child.Max.X = child.Min.X + step.X
	} else {
		step.Y = it.rect.Dy() / n
		child.Max.Y = child.Min.Y + step.Y
	}

	for _, c := range it.children {
		c.SetDisplayRect(child)
		child = child.Add(step)
	}
}

func center(r image.Rectangle) image.Point {
	return r.Min.Add(r.Size().Div(2))
}

// nearestChild returns the index of the child whose center has the smallest
// distance to p. Ties go to the first child.
func (it *Item) nearestChild(p image.Point) int {
	nearest, dist := 0, int(^uint(0)>>1)
	for i, c := range it.children {
		d := center(c.rect).Sub(p)
		if n := d.X*d.X + d.Y*d.Y; n < dist {
			nearest, dist = i, n
		}
	}
	return nearest
}
