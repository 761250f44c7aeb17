// Package tui is the interactive dashboard. It never patches its own copy of
// the data: every mutation is followed by a fresh Dashboard read.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/tracker"
	"github.com/julianstephens/alpha/internal/tui/components/domains"
	"github.com/julianstephens/alpha/internal/tui/components/habits"
)

type HabitFormModel struct {
	Title       string
	Description string
	Domain      string
}

type Model struct {
	tracker *tracker.Tracker
	user    string

	state   constants.SessionState
	keys    KeyMap
	help    help.Model
	habits  habits.Model
	domains domains.Model

	snapshot tracker.Snapshot
	loaded   bool

	form          *huh.Form
	habitForm     *HabitFormModel
	habitToDelete habits.DeleteHabitMsg

	status    string
	statusErr bool
	quitting  bool
	width     int
	height    int
}

func New(tr *tracker.Tracker, userID string) Model {
	return Model{
		tracker: tr,
		user:    userID,
		state:   constants.StateDashboard,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		habits:  habits.New(nil, 0, 0),
		domains: domains.New(40, 8),
	}
}

// snapshotMsg carries a full Dashboard read.
type snapshotMsg struct {
	snap tracker.Snapshot
	err  error
}

// actionMsg reports the outcome of a mutation.
type actionMsg struct {
	status string
	err    error
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	tr, user := m.tracker, m.user
	return func() tea.Msg {
		snap, err := tr.Dashboard(user)
		return snapshotMsg{snap: snap, err: err}
	}
}

func perform(status string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: status}
	}
}

func (m *Model) applySnapshot(snap tracker.Snapshot) {
	m.snapshot = snap
	m.loaded = true
	m.habits.SetStats(snap.Habits)
	m.domains.SetAverages(snap.Domains, snap.BestDomain, snap.HasBest)
}

func (m *Model) resize() {
	listWidth := m.width / 2
	m.habits.SetSize(listWidth, max(m.height-8, 3))
	m.domains.SetSize(max(m.width-listWidth-8, 20), max(m.height/3, 6))
	m.help.Width = m.width
}
