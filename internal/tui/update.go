package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/errors"
	"github.com/julianstephens/alpha/internal/logger"
	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/tracker"
	"github.com/julianstephens/alpha/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case snapshotMsg:
		if msg.err != nil {
			// Keep showing the previous snapshot.
			m.setError(msg.err)
			return m, nil
		}
		m.applySnapshot(msg.snap)
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.status, m.statusErr = msg.status, false
		}
		return m, m.refresh()
	}

	switch m.state {
	case constants.StateAddHabit:
		return m.updateAddHabit(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.status = ""
			return m, m.refresh()
		case key.Matches(msg, m.keys.Tab):
			if m.state == constants.StateDashboard {
				m.state = constants.StateScores
			} else {
				m.state = constants.StateDashboard
			}
			return m, nil
		}
	}

	if m.state == constants.StateDashboard {
		var cmd tea.Cmd
		m.habits, cmd = m.habits.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) setError(err error) {
	logger.Warn("Dashboard action failed", "error", err)
	m.status, m.statusErr = errors.Transient(err), true
}

// handleHabitMessages reacts to requests from the habits list.
func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	tr := m.tracker
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
		m.state = constants.StateAddHabit
		return true, m.form.Init()

	case habits.ToggleHabitMsg:
		return true, perform("", func() error {
			today, err := tr.Today()
			if err != nil {
				return err
			}
			_, err = tr.ToggleCompletion(msg.ID, today)
			return err
		})

	case habits.PinHabitMsg:
		verb := "Unpinned"
		if msg.Pinned {
			verb = "Pinned"
		}
		pinned := msg.Pinned
		return true, perform(verb+" habit", func() error {
			_, err := tr.UpdateHabit(msg.ID, tracker.HabitChange{Pinned: &pinned})
			return err
		})

	case habits.DeleteHabitMsg:
		m.habitToDelete = msg
		m.state = constants.StateConfirmDelete
		return true, nil
	}
	return false, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateDashboard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = constants.StateDashboard
		tr, user, f := m.tracker, m.user, *m.habitForm
		return m, perform(fmt.Sprintf("Added habit %q", f.Title), func() error {
			_, err := tr.AddHabit(user, f.Title, f.Description, models.Domain(f.Domain))
			return err
		})
	case huh.StateAborted:
		m.state = constants.StateDashboard
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		m.state = constants.StateDashboard
		tr, target := m.tracker, m.habitToDelete
		m.habitToDelete = habits.DeleteHabitMsg{}
		return m, perform(fmt.Sprintf("Deleted habit %q", target.Title), func() error {
			return tr.DeleteHabit(target.ID)
		})
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = constants.StateDashboard
		m.habitToDelete = habits.DeleteHabitMsg{}
	}
	return m, nil
}
