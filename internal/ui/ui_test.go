package ui

import (
	"bytes"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDetectsMode(t *testing.T) {
	var out, errOut bytes.Buffer

	u := New(&out, &errOut, "terminal")
	assert.Equal(t, OutputModePlain, u.Mode)
	assert.False(t, u.Styles.Enabled())
	assert.False(t, u.ShowsProgress())

	for _, format := range []string{"json", "markdown", "html"} {
		assert.True(t, New(&out, &errOut, format).IsMachine(), format)
	}
}

func TestScoreStyleBands(t *testing.T) {
	s := NewStyles(false)
	assert.Equal(t, "85.0", s.Render(s.ScoreStyle(85), "85.0"))
	assert.Equal(t, "ERROR:", s.IconError)

	on := NewStyles(true)
	assert.Equal(t, on.Good, on.ScoreStyle(GoodScore))
	assert.Equal(t, on.Fair, on.ScoreStyle(FairScore))
	assert.Equal(t, on.Poor, on.ScoreStyle(FairScore-0.1))
}

func TestNilProgressControllerIsSafe(t *testing.T) {
	var pc *ProgressController
	assert.NotPanics(t, func() {
		pc.SetStage("Parsing files")
		pc.SetTotal(3)
		pc.FileDone("a.rb")
		pc.Done(nil)
	})
}

func TestModelCountsFiles(t *testing.T) {
	var m tea.Model = NewModel()
	m, _ = m.Update(StageMsg("Parsing files"))
	m, _ = m.Update(TotalMsg(4))
	m, _ = m.Update(FileDoneMsg("app/a.rb"))

	model, ok := m.(Model)
	require.True(t, ok)
	assert.Equal(t, 0.25, model.Percent())
	assert.Contains(t, model.View(), "Parsing files (1/4) a.rb")

	m, cmd := m.Update(DoneMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, m.View())
}
