package label

import (
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/report"
)

// RenderFunc renders a report for a display target.
type RenderFunc func(target domain.DisplayTarget, r report.Report, includeUnknown bool) (string, error)

// TextCache keeps the last rendered text and the inputs it came from. The
// text is reused while the target, the unknown policy and the report
// instance stay the same.
type TextCache struct {
	render RenderFunc

	valid          bool
	target         domain.DisplayTarget
	includeUnknown bool
	report         report.Report
	text           string
	renders        int
}

// NewTextCache uses Render when render is nil.
func NewTextCache(render RenderFunc) *TextCache {
	if render == nil {
		render = Render
	}
	return &TextCache{render: render}
}

// GetText returns cached text or renders it. When rendering fails the
// previous text stays cached and is still available through Last.
func (c *TextCache) GetText(target domain.DisplayTarget, r report.Report, includeUnknown bool) (string, error) {
	if c.valid && c.target == target && c.includeUnknown == includeUnknown && c.report == r {
		return c.text, nil
	}
	text, err := c.render(target, r, includeUnknown)
	if err != nil {
		return "", err
	}
	c.valid = true
	c.target = target
	c.includeUnknown = includeUnknown
	c.report = r
	c.text = text
	c.renders++
	return text, nil
}

// Last returns the most recently rendered text, if any.
func (c *TextCache) Last() (string, bool) {
	return c.text, c.valid
}

// Renders counts how many times the cache had to render.
func (c *TextCache) Renders() int {
	return c.renders
}
