package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/denismitr/estatebook/export"
	"github.com/denismitr/estatebook/internal/kv"
	"github.com/denismitr/estatebook/record"
	"github.com/denismitr/estatebook/schema"
	"github.com/denismitr/estatebook/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

var specialKeys = map[string]tea.KeyType{
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+c":    tea.KeyCtrlC,
	"down":      tea.KeyDown,
	"up":        tea.KeyUp,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := specialKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

type modelTestSuite struct {
	suite.Suite

	ctx   context.Context
	dir   string
	store *store.Store
	model *Model
	close kv.Closer
}

func (s *modelTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()

	db, closer, err := kv.Open(filepath.Join(s.dir, "records.ldb"), &kv.Config{SkipFsync: true})
	s.Require().NoError(err)
	s.close = closer

	s.store = store.New(db, zap.NewNop())
	s.Require().NoError(s.store.Load(s.ctx))

	s.Require().NoError(s.store.InsertFront(s.ctx, schema.Followup, record.FromPairs("clientName", "Ravi", "currentStatus", "Closed")))
	s.Require().NoError(s.store.InsertFront(s.ctx, schema.Followup, record.FromPairs("clientName", "Meera", "currentStatus", "")))
	s.Require().NoError(s.store.InsertFront(s.ctx, schema.Followup, record.FromPairs("clientName", "Asha", "currentStatus", "Open")))

	s.model = New(s.ctx, s.store, export.NewExporter(filepath.Join(s.dir, "exports"), nil), nil)
}

func (s *modelTestSuite) TearDownTest() {
	s.Require().NoError(s.close())
}

func (s *modelTestSuite) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = s.model.Update(keyMsg(k))
	}
	return cmd
}

func (s *modelTestSuite) names() []string {
	var out []string
	for _, row := range s.model.tab().table.Rows {
		out = append(out, row.Cells[0])
	}
	return out
}

func (s *modelTestSuite) TestInitialRender() {
	s.Equal([]string{"Asha", "Meera", "Ravi"}, s.names())

	out := s.model.View()
	s.Contains(out, "Follow-Ups (3)")
	s.Contains(out, "Land Records (0)")
	s.Contains(out, "Client Name")
	s.Contains(out, "All Status")
}

func (s *modelTestSuite) TestAddThroughForm() {
	s.press("a")
	s.Require().True(s.model.forms.Active())
	s.Contains(s.model.View(), "Add Follow-Up")

	s.press("Kiran")
	for i := 0; i < 12; i++ {
		s.press("tab")
	}
	s.Equal("currentStatus", s.model.forms.Form().Focused().Field().Key)
	s.press("Follow up")
	s.press("ctrl+s")

	s.False(s.model.forms.Active())
	s.Equal(4, s.store.Len(schema.Followup))

	first, err := s.store.At(schema.Followup, 0)
	s.Require().NoError(err)
	s.Equal("Kiran", first.Get("clientName"))
	s.Equal("Follow up", first.Get("currentStatus"))

	s.Equal([]string{"Kiran", "Asha", "Meera", "Ravi"}, s.names())
	s.Contains(s.model.View(), "saved")
}

func (s *modelTestSuite) TestQuitKeyTypesInsideForm() {
	s.press("a", "q")
	s.True(s.model.forms.Active())
	v, err := s.model.forms.Form().Value("clientName")
	s.Require().NoError(err)
	s.Equal("q", v)

	s.press("esc")
	s.False(s.model.forms.Active())
	s.Equal(3, s.store.Len(schema.Followup))
}

func (s *modelTestSuite) TestEditSelectedRow() {
	s.press("down", "e")
	s.Require().True(s.model.forms.Active())

	f := s.model.forms.Form()
	s.Equal("Edit Follow-Up", f.Title())
	v, err := f.Value("clientName")
	s.Require().NoError(err)
	s.Equal("Meera", v)

	s.Require().NoError(f.Set("currentStatus", "Dropped"))
	s.press("ctrl+s")

	s.Equal(3, s.store.Len(schema.Followup))
	got, err := s.store.At(schema.Followup, 1)
	s.Require().NoError(err)
	s.Equal("Meera", got.Get("clientName"))
	s.Equal("Dropped", got.Get("currentStatus"))

	s.Equal(
		[]string{"", "Open", "Dropped", "Closed"},
		optionValues(s.model.tab()),
	)
}

func (s *modelTestSuite) TestDeleteNeedsConfirmation() {
	s.press("d")
	s.Contains(s.model.View(), "Delete Follow-Up record 1? (y/N)")
	s.press("n")
	s.Equal(3, s.store.Len(schema.Followup))
	s.Contains(s.model.View(), "delete cancelled")

	s.press("d", "y")
	s.Equal(2, s.store.Len(schema.Followup))
	s.Equal([]string{"Meera", "Ravi"}, s.names())
}

func (s *modelTestSuite) TestSearch() {
	s.press("/", "asha")
	s.True(s.model.searching)
	s.Equal([]string{"Asha"}, s.names())

	s.press("enter")
	s.False(s.model.searching)
	s.Equal("asha", s.model.tab().query.Search)

	s.press("/", "esc")
	s.Equal([]string{"Asha"}, s.names())
}

func (s *modelTestSuite) TestStatusFilterCycle() {
	s.press("f")
	s.Equal("Open", s.model.tab().query.Status)
	s.Equal([]string{"Asha"}, s.names())

	s.press("f")
	s.Equal("Closed", s.model.tab().query.Status)
	s.Equal([]string{"Ravi"}, s.names())

	s.press("d", "y")
	s.Equal("", s.model.tab().query.Status)
	s.Equal([]string{"Asha", "Meera"}, s.names())
}

func (s *modelTestSuite) TestTabsAreIndependent() {
	s.press("tab")
	s.Equal(schema.Land, s.model.tab().dataset)
	s.Empty(s.model.tab().table.Rows)

	s.press("a")
	s.Contains(s.model.View(), "Add Land Record")
	s.press("L-42", "ctrl+s")

	s.Equal(1, s.store.Len(schema.Land))
	s.Equal(3, s.store.Len(schema.Followup))

	s.press("shift+tab")
	s.Equal(schema.Followup, s.model.tab().dataset)
}

func (s *modelTestSuite) TestExport() {
	s.press("J", "X")

	for _, name := range []string{"followup_export.json", "followup_export.xlsx"} {
		_, err := os.Stat(filepath.Join(s.dir, "exports", name))
		s.NoError(err, name)
	}
	s.Contains(s.model.View(), "followup_export.xlsx")
}

func (s *modelTestSuite) TestQuit() {
	cmd := s.press("q")
	s.Require().NotNil(cmd)
	s.Equal(tea.QuitMsg{}, cmd())
}

func optionValues(t *tab) []string {
	out := make([]string, len(t.options))
	for i, o := range t.options {
		out[i] = o.Value
	}
	return out
}

func TestModel(t *testing.T) {
	suite.Run(t, new(modelTestSuite))
}

func TestTab_NextStatusWraps(t *testing.T) {
	tb := newTab(schema.Land)
	tb.refresh([]*record.Record{
		record.FromPairs("landId", "1", "status", "Open"),
	})

	tb.nextStatus()
	assert.Equal(t, "Open", tb.query.Status)
	tb.nextStatus()
	assert.Equal(t, "", tb.query.Status)
	assert.Equal(t, "All Status", tb.statusLabel())
}

func TestPad(t *testing.T) {
	require.Equal(t, "abc  ", pad("abc", 5))
	require.Equal(t, "abcd…", pad("abcdefgh", 5))
	require.Equal(t, "a b  ", pad("a\nb", 5))
}
