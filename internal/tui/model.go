// Package tui is the interactive terminal front end: one tab per dataset
// with search, status filter, an add/edit form, delete confirmation and
// exports.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/denismitr/estatebook/export"
	"github.com/denismitr/estatebook/form"
	"github.com/denismitr/estatebook/schema"
	"github.com/denismitr/estatebook/store"
	"go.uber.org/zap"
)

type pendingDelete struct {
	dataset schema.Dataset
	id      string
	index   int
}

type Model struct {
	ctx      context.Context
	store    *store.Store
	forms    *form.Controller
	exporter *export.Exporter
	log      *zap.Logger

	keys   keyMap
	help   help.Model
	search textinput.Model

	tabs      []*tab
	active    int
	searching bool
	pending   *pendingDelete

	message string
	failed  bool
	width   int
}

// New wires a model to s and subscribes it to store changes.
func New(ctx context.Context, s *store.Store, ex *export.Exporter, log *zap.Logger) *Model {
	if log == nil {
		log = zap.NewNop()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search all fields"
	search.CharLimit = 0

	m := &Model{
		ctx:      ctx,
		store:    s,
		forms:    form.NewController(s, log),
		exporter: ex,
		log:      log,
		keys:     defaultKeyMap(),
		help:     help.New(),
		search:   search,
	}

	for _, d := range schema.Datasets {
		m.tabs = append(m.tabs, newTab(d))
	}

	m.refreshAll()
	s.Subscribe(func(schema.Dataset) { m.refreshAll() })

	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) tab() *tab {
	return m.tabs[m.active]
}

// refreshAll re-renders every dataset and its status options.
func (m *Model) refreshAll() {
	for _, t := range m.tabs {
		t.refresh(m.store.Records(t.dataset))
	}
}

func (m *Model) refresh(t *tab) {
	t.refresh(m.store.Records(t.dataset))
}

func (m *Model) info(format string, args ...interface{}) {
	m.message = fmt.Sprintf(format, args...)
	m.failed = false
}

func (m *Model) fail(err error) {
	m.message = err.Error()
	m.failed = true
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch {
		case m.pending != nil:
			return m, m.updateConfirm(msg)
		case m.forms.Active():
			return m, m.updateForm(msg)
		case m.searching:
			return m, m.updateSearch(msg)
		default:
			return m, m.updateBrowse(msg)
		}
	}

	switch {
	case m.forms.Active():
		return m, m.forms.Form().Update(msg)
	case m.searching:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) tea.Cmd {
	t := m.tab()

	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.nextTab):
		m.active = (m.active + 1) % len(m.tabs)
	case key.Matches(msg, m.keys.prevTab):
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
	case key.Matches(msg, m.keys.up):
		t.move(-1)
	case key.Matches(msg, m.keys.down):
		t.move(1)
	case key.Matches(msg, m.keys.search):
		m.searching = true
		m.search.SetValue(t.query.Search)
		m.search.CursorEnd()
		return m.search.Focus()
	case key.Matches(msg, m.keys.filter):
		t.nextStatus()
		m.refresh(t)
	case key.Matches(msg, m.keys.add):
		return m.openForm(t, "")
	case key.Matches(msg, m.keys.edit):
		if row, ok := t.selected(); ok {
			return m.openForm(t, row.ID)
		}
	case key.Matches(msg, m.keys.remove):
		if row, ok := t.selected(); ok {
			m.pending = &pendingDelete{dataset: t.dataset, id: row.ID, index: row.Index}
		}
	case key.Matches(msg, m.keys.exportJSON):
		m.export(t, export.FormatJSON)
	case key.Matches(msg, m.keys.exportXLSX):
		m.export(t, export.FormatXLSX)
	}

	return nil
}

func (m *Model) openForm(t *tab, id string) tea.Cmd {
	if id == "" {
		if _, err := m.forms.Open(t.dataset, nil); err != nil {
			m.fail(err)
		}
		return nil
	}

	rec, err := m.store.Get(t.dataset, id)
	if err != nil {
		m.fail(err)
		return nil
	}

	if _, err := m.forms.Open(t.dataset, rec); err != nil {
		m.fail(err)
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	f := m.forms.Form()

	switch {
	case key.Matches(msg, m.keys.save):
		title := f.Title()
		if err := m.forms.Save(m.ctx); err != nil {
			m.fail(err)
			return nil
		}
		m.info("%s: saved", title)
		return nil
	case key.Matches(msg, m.keys.cancel):
		m.forms.Cancel()
		return nil
	case key.Matches(msg, m.keys.nextField):
		return f.Next()
	case key.Matches(msg, m.keys.prevField):
		return f.Prev()
	}

	return f.Update(msg)
}

func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.leaveSearch) {
		m.searching = false
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	t := m.tab()
	t.query.Search = m.search.Value()
	t.cursor = 0
	m.refresh(t)

	return cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	p := m.pending
	m.pending = nil

	if !key.Matches(msg, m.keys.confirm) {
		m.info("delete cancelled")
		return nil
	}

	if err := m.store.Remove(m.ctx, p.dataset, p.id); err != nil {
		m.fail(err)
		return nil
	}

	m.log.Info("record deleted", zap.String("dataset", p.dataset.String()), zap.String("id", p.id))
	m.info("%s record %d deleted", p.dataset.Title(), p.index+1)
	return nil
}

func (m *Model) export(t *tab, format string) {
	if m.exporter == nil {
		return
	}

	path, err := m.exporter.Write(t.dataset, format, m.store.Records(t.dataset))
	if err != nil {
		m.fail(err)
		return
	}

	m.info("exported %s", path)
}

// Run starts the full screen program and blocks until it exits.
func Run(ctx context.Context, m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
