package ui

import (
	"image"
	"image/color"
	"strconv"

	"golang.org/x/exp/constraints"
	"golang.org/x/image/colornames"
)

// Canvas is the surface a tree is rendered to. Text is drawn with its top left
// corner at p.
type Canvas interface {
	Fill(r image.Rectangle, c color.Color)
	Text(s string, p image.Point, c color.Color)
	MeasureText(s string) image.Point
}

var (
	highlightColor = color.NRGBA{0xff, 0xff, 0xff, 90}
	uncheckedColor = color.NRGBA{0xff, 0xff, 0xff, 127}
	trackColor     = color.RGBA{127, 127, 127, 0xff}
	textColor      = colornames.White
)

// Render draws the item and all its descendants. The focused leaf is
// highlighted.
func Render(c Canvas, it *Item) {
	var focused *Item
	if it.tree != nil {
		focused = it.tree.Focused()
	}
	render(c, it, focused)
}

func render(c Canvas, it *Item, focused *Item) {
	r := it.rect
	if it == focused {
		c.Fill(r, highlightColor)
	}

	switch it.kind {
	case Label:
		ts := c.MeasureText(it.text)
		c.Text(it.text, center(r).Sub(ts.Div(2)), textColor)

	case Checkbox:
		ts := c.MeasureText(it.text)
		size := min(r.Dx(), r.Dy()-ts.Y) - 8
		off := image.Pt((r.Dx()-size)/2, (r.Dy()-(size+ts.Y))/2)

		c.Text(it.text, image.Pt(r.Min.X+r.Dx()/2-ts.X/2, r.Min.Y+off.Y+size+4), textColor)

		var col color.Color = textColor
		if it.value == 0 {
			col = uncheckedColor
		}
		if size > 0 {
			box := image.Rectangle{Min: r.Min.Add(off)}
			box.Max = box.Min.Add(image.Pt(size, size))
			c.Fill(box, col)
		}

	case Slider:
		ts := c.MeasureText(it.text)
		h := (r.Dy() - (ts.Y + 4)) / 2

		bar := image.Rectangle{Min: r.Min.Add(image.Pt(4, h/2))}
		bar.Max = bar.Min.Add(image.Pt(r.Dx()-8, h))
		c.Fill(bar, trackColor)

		bar.Max.X = bar.Min.X + barWidth(it.value, it.min, it.max, bar.Dx())
		c.Fill(bar, textColor)

		c.Text(it.text, image.Pt(r.Min.X+4, r.Max.Y-2-ts.Y), textColor)
		val := strconv.Itoa(it.value)
		vs := c.MeasureText(val)
		c.Text(val, image.Pt(r.Max.X-4-vs.X, r.Max.Y-2-vs.Y), textColor)
	}

	for _, child := range it.children {
		render(c, child, focused)
	}
}

// barWidth returns the filled part of a slider bar of width w.
func barWidth(value, lo, hi, w int) int {
	if hi <= lo || w <= 0 {
		return 0
	}
	return clamp((value-lo)*w/(hi-lo), 0, w)
}

func clamp[T constraints.Integer](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
