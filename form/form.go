// Package form builds an editing form for any dataset out of its schema and
// applies the result to the store.
package form

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
	"github.com/pkg/errors"
)

var ErrUnknownField = errors.New("unknown field")

type Mode int

const (
	Add Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "Edit"
	}
	return "Add"
}

var (
	labelStyle        = lipgloss.NewStyle().Bold(true)
	focusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	titleStyle        = lipgloss.NewStyle().Bold(true).Underline(true).MarginBottom(1)
)

// Form holds one input per schema field of a dataset.
type Form struct {
	dataset schema.Dataset
	mode    Mode
	id      string
	index   int
	inputs  []Input
	seeds   []seed
	focus   int
}

// seed is what an input was filled with and what the widget made of it.
// Widgets sanitize their content (tabs, control runes), so an input still
// showing its seed reports the seed value rather than the widget text.
type seed struct {
	value string
	shown string
}

// New builds a form for d. A nil rec gives an add form; otherwise every
// input is pre-filled from rec and the form edits the record at index.
func New(d schema.Dataset, rec *record.Record, index int) *Form {
	s := schema.For(d)

	f := &Form{
		dataset: d,
		mode:    Add,
		index:   -1,
		inputs:  make([]Input, 0, s.Len()),
		seeds:   make([]seed, 0, s.Len()),
	}

	if rec != nil {
		f.mode = Edit
		f.id = rec.ID()
		f.index = index
	}

	for _, field := range s.Fields() {
		in := newInput(field)
		var v string
		if rec != nil {
			v = rec.Display(field.Key)
			in.SetValue(v)
		}
		f.inputs = append(f.inputs, in)
		f.seeds = append(f.seeds, seed{value: v, shown: in.Value()})
	}

	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}

	return f
}

func (f *Form) Dataset() schema.Dataset { return f.dataset }
func (f *Form) Mode() Mode              { return f.mode }

// ID is the identifier of the record being edited; empty in add mode.
func (f *Form) ID() string { return f.id }

// Index is the position of the record being edited; -1 in add mode.
func (f *Form) Index() int { return f.index }

// Title reads like "Add Follow-Up" or "Edit Land Record".
func (f *Form) Title() string {
	return f.mode.String() + " " + f.dataset.Title()
}

func (f *Form) Inputs() []Input {
	out := make([]Input, len(f.inputs))
	copy(out, f.inputs)
	return out
}

func (f *Form) Focused() Input {
	if len(f.inputs) == 0 {
		return nil
	}
	return f.inputs[f.focus]
}

func (f *Form) Value(key string) (string, error) {
	i, err := f.input(key)
	if err != nil {
		return "", err
	}
	return f.value(i), nil
}

// Set fills the input for key. The value is kept exactly as given even when
// the widget can only show a sanitized version of it.
func (f *Form) Set(key, value string) error {
	i, err := f.input(key)
	if err != nil {
		return err
	}
	in := f.inputs[i]
	in.SetValue(value)
	f.seeds[i] = seed{value: value, shown: in.Value()}
	return nil
}

func (f *Form) value(i int) string {
	v := f.inputs[i].Value()
	if s := f.seeds[i]; v == s.shown {
		return s.value
	}
	return v
}

func (f *Form) input(key string) (int, error) {
	for i, in := range f.inputs {
		if in.Field().Key == key {
			return i, nil
		}
	}
	return -1, errors.Wrapf(ErrUnknownField, "%q in %s form", key, f.dataset)
}

// Record assembles every schema key, in schema order, from the inputs.
func (f *Form) Record() *record.Record {
	r := record.New()
	if f.id != "" {
		r = r.WithID(f.id)
	}

	for i, in := range f.inputs {
		r.Set(in.Field().Key, f.value(i))
	}
	return r
}

func (f *Form) Next() tea.Cmd {
	return f.move(1)
}

func (f *Form) Prev() tea.Cmd {
	return f.move(-1)
}

func (f *Form) move(delta int) tea.Cmd {
	n := len(f.inputs)
	if n == 0 {
		return nil
	}

	f.inputs[f.focus].Blur()
	f.focus = ((f.focus+delta)%n + n) % n
	return f.inputs[f.focus].Focus()
}

// Update forwards msg to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	in := f.Focused()
	if in == nil {
		return nil
	}
	return in.Update(msg)
}

func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.Title()))
	b.WriteString("\n")

	for i, in := range f.inputs {
		style := labelStyle
		if i == f.focus {
			style = focusedLabelStyle
		}
		b.WriteString(style.Render(in.Field().Label))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	return b.String()
}
