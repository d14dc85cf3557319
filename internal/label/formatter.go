// Package label turns reports into ordered lines of display text.
package label

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/report"
)

// Placeholder is substituted for a value the player does not know.
const Placeholder = "?"

const lineSeparator = "\n"

var (
	ErrUnmappedLine      = errors.New("label: line is not mapped")
	ErrUnmappedTarget    = errors.New("label: display target is not mapped")
	ErrUnsupportedReport = errors.New("label: no formatter for report type")
)

// Line is how one line id renders for a report type. Template holds exactly
// one %s verb. Value returns the formatted value and whether it is known.
type Line[R report.Report] struct {
	Template string
	Value    func(R) (string, bool)
}

// Formatter is the table-driven label strategy for one report type.
type Formatter[R report.Report] struct {
	kind    domain.EntityKind
	lines   map[domain.LineID]Line[R]
	targets map[domain.DisplayTarget][]domain.LineID
}

// MustFormatter validates the tables and panics on any omission: every
// display target must be mapped, every line a target lists must have a
// Line, and every template must take one value.
func MustFormatter[R report.Report](kind domain.EntityKind, lines map[domain.LineID]Line[R], targets map[domain.DisplayTarget][]domain.LineID) *Formatter[R] {
	for id, l := range lines {
		if l.Value == nil {
			panic(fmt.Sprintf("label: %s line %q has no value extractor", kind, id))
		}
		if strings.Count(l.Template, "%s") != 1 {
			panic(fmt.Sprintf("label: %s line %q template %q must hold one %%s", kind, id, l.Template))
		}
	}
	for _, target := range domain.AllDisplayTargets() {
		ids, ok := targets[target]
		if !ok {
			panic(fmt.Sprintf("label: %s has no lines for target %q", kind, target))
		}
		for _, id := range ids {
			if _, ok := lines[id]; !ok {
				panic(fmt.Sprintf("label: %s target %q lists unmapped line %q", kind, target, id))
			}
		}
	}
	return &Formatter[R]{kind: kind, lines: lines, targets: targets}
}

func (f *Formatter[R]) Kind() domain.EntityKind {
	return f.kind
}

// LineIDsFor returns the lines for target in declaration order.
func (f *Formatter[R]) LineIDsFor(target domain.DisplayTarget) ([]domain.LineID, error) {
	ids, ok := f.targets[target]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnmappedTarget, f.kind, target)
	}
	out := make([]domain.LineID, len(ids))
	copy(out, ids)
	return out, nil
}

// TryFormatLine renders one line. An unknown value omits the line unless
// includeUnknown is set, in which case Placeholder stands in for it.
func (f *Formatter[R]) TryFormatLine(id domain.LineID, r R, includeUnknown bool) (string, bool, error) {
	l, ok := f.lines[id]
	if !ok {
		return "", false, fmt.Errorf("%w: %s/%s", ErrUnmappedLine, f.kind, id)
	}
	value, known := l.Value(r)
	if !known {
		if !includeUnknown {
			return "", false, nil
		}
		value = Placeholder
	}
	return fmt.Sprintf(l.Template, value), true, nil
}

// RenderText joins the lines of target that format, skipping omitted ones.
func (f *Formatter[R]) RenderText(target domain.DisplayTarget, r R, includeUnknown bool) (string, error) {
	ids, ok := f.targets[target]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrUnmappedTarget, f.kind, target)
	}
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		line, ok, err := f.TryFormatLine(id, r, includeUnknown)
		if err != nil {
			return "", err
		}
		if ok {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, lineSeparator), nil
}

// field builds a Line from a report accessor and a value formatter.
func field[R report.Report, T any](template string, get func(R) report.Field[T], format func(T) string) Line[R] {
	return Line[R]{
		Template: template,
		Value: func(r R) (string, bool) {
			v, ok := get(r).Get()
			if !ok {
				return "", false
			}
			return format(v), true
		},
	}
}

func text(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func count(n int) string { return fmt.Sprintf("%d", n) }

func padded(n int) string { return fmt.Sprintf("%02d", n) }

func percent(v float64) string { return fmt.Sprintf("%.0f%%", v*100) }

func speed(v float64) string { return fmt.Sprintf("%.1f", v) }
