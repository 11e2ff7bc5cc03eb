package form

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/denismitr/estatebook/schema"
)

const (
	inputWidth = 48
	areaHeight = 3
)

// Input is one editable field of a form.
type Input interface {
	Field() schema.Field
	Value() string
	SetValue(v string)
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Update(msg tea.Msg) tea.Cmd
	View() string
}

type constructor func(f schema.Field) Input

// constructors picks the widget for every field kind.
var constructors = map[schema.Kind]constructor{
	schema.Text:      line(""),
	schema.Phone:     line("+91 98xxx xxxxx"),
	schema.Date:      line("YYYY-MM-DD"),
	schema.Time:      line("HH:MM"),
	schema.Number:    line("0"),
	schema.Multiline: area,
}

func newInput(f schema.Field) Input {
	c, ok := constructors[f.Kind]
	if !ok {
		c = constructors[schema.Text]
	}
	return c(f)
}

type lineInput struct {
	field schema.Field
	m     textinput.Model
}

func line(placeholder string) constructor {
	return func(f schema.Field) Input {
		m := textinput.New()
		m.Prompt = ""
		m.CharLimit = 0
		m.Width = inputWidth
		m.Placeholder = placeholder
		m.Blur()
		return &lineInput{field: f, m: m}
	}
}

func (in *lineInput) Field() schema.Field { return in.field }
func (in *lineInput) Value() string       { return in.m.Value() }
func (in *lineInput) SetValue(v string)   { in.m.SetValue(v) }
func (in *lineInput) Focus() tea.Cmd      { return in.m.Focus() }
func (in *lineInput) Blur()               { in.m.Blur() }
func (in *lineInput) Focused() bool       { return in.m.Focused() }
func (in *lineInput) View() string        { return in.m.View() }

func (in *lineInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	in.m, cmd = in.m.Update(msg)
	return cmd
}

type areaInput struct {
	field schema.Field
	m     textarea.Model
}

func area(f schema.Field) Input {
	m := textarea.New()
	m.CharLimit = 0
	m.MaxHeight = 0
	m.ShowLineNumbers = false
	m.SetWidth(inputWidth)
	m.SetHeight(areaHeight)
	m.Blur()
	return &areaInput{field: f, m: m}
}

func (in *areaInput) Field() schema.Field { return in.field }
func (in *areaInput) Value() string       { return in.m.Value() }
func (in *areaInput) SetValue(v string)   { in.m.SetValue(v) }
func (in *areaInput) Focus() tea.Cmd      { return in.m.Focus() }
func (in *areaInput) Blur()               { in.m.Blur() }
func (in *areaInput) Focused() bool       { return in.m.Focused() }
func (in *areaInput) View() string        { return in.m.View() }

func (in *areaInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	in.m, cmd = in.m.Update(msg)
	return cmd
}
