package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/alpha/internal/progress"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type PinHabitMsg struct {
	ID     string
	Pinned bool
}

type DeleteHabitMsg struct {
	ID    string
	Title string
}

type Item struct {
	Stat progress.HabitStat
}

func (i Item) Title() string {
	mark := "○ "
	if i.Stat.CompletedToday {
		mark = "✓ "
	}
	title := mark + i.Stat.Habit.Title
	if i.Stat.Habit.Pinned {
		title += " ★"
	}
	return title
}

func (i Item) Description() string {
	return fmt.Sprintf("%s · streak %d · %d%% %s · week %d%%",
		i.Stat.Habit.Domain.Label(), i.Stat.Streak.Current, i.Stat.Rate, i.Stat.Status, i.Stat.WeeklyRate)
}

func (i Item) FilterValue() string { return i.Stat.Habit.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Pin    key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "toggle today"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(stats []progress.HabitStat, width, height int) Model {
	l := list.New(items(stats), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Pin, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Pin, keys.Delete}
	}
	return Model{list: l, keys: keys}
}

func items(stats []progress.HabitStat) []list.Item {
	out := make([]list.Item, len(stats))
	for i, st := range stats {
		out[i] = Item{Stat: st}
	}
	return out
}

// SetStats replaces the list contents and keeps the cursor in range.
func (m *Model) SetStats(stats []progress.HabitStat) {
	m.list.SetItems(items(stats))
}

func (m Model) Selected() (progress.HabitStat, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Stat, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if st, ok := m.Selected(); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: st.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Pin):
			if st, ok := m.Selected(); ok {
				return m, func() tea.Msg { return PinHabitMsg{ID: st.Habit.ID, Pinned: !st.Habit.Pinned} }
			}
		case key.Matches(msg, m.keys.Delete):
			if st, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{ID: st.Habit.ID, Title: st.Habit.Title} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
