package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/alpha/internal/constants"
	"github.com/julianstephens/alpha/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateAddHabit:
		content = docStyle.Render(titleStyle.Render("New habit") + "\n\n" + m.form.View())
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	case constants.StateScores:
		content = m.viewProgress()
	default:
		content = m.viewDashboard()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for _, tab := range []struct {
		title string
		state constants.SessionState
	}{
		{"Dashboard", constants.StateDashboard},
		{"Progress", constants.StateScores},
	} {
		if m.state == tab.state {
			tabs = append(tabs, activeTabStyle.Render(tab.title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(tab.title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	if !m.loaded {
		return mutedStyle.Render("Loading...")
	}
	day := m.snapshot.Today.Format("Monday, January 2, 2006")
	if m.snapshot.Profile.Mission == "" {
		return mutedStyle.Render(day)
	}
	return mutedStyle.Render(day + "  ·  " + m.snapshot.Profile.Mission)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return dangerStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewDashboard() string {
	done := 0
	for _, st := range m.snapshot.Habits {
		if st.CompletedToday {
			done++
		}
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Today %d/%d", done, len(m.snapshot.Habits))),
		m.habits.View(),
	)
	right := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Domains"),
		m.domains.View(),
	))
	return docStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
}

func (m Model) viewProgress() string {
	sections := []string{m.viewSprint(), m.viewScore(), m.viewChallenges()}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewSprint() string {
	sp := m.snapshot.Sprint
	if sp == nil {
		return panelStyle.Render(titleStyle.Render("Sprint") + "\n" + mutedStyle.Render("No active sprint"))
	}
	tl := m.snapshot.Timeline
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render("Sprint: "+sp.Name))
	fmt.Fprintf(&b, "Objectives %s %d%%\n", meter(sp.Progress, 20), sp.Progress)
	fmt.Fprintf(&b, "Time       %s %d%%  (day %d of %d, %d left)", meter(tl.Percent, 20), tl.Percent, tl.ElapsedDays, tl.TotalDays, tl.RemainingDays)
	return panelStyle.Render(b.String())
}

func (m Model) viewScore() string {
	score := m.snapshot.LatestScore
	if score == nil {
		return panelStyle.Render(titleStyle.Render("Alpha Score") + "\n" + mutedStyle.Render("No score recorded yet"))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("Alpha Score %d  (Q%d %d)", score.Total, score.Quarter, score.Year)))
	for _, d := range models.Domains {
		if cat := score.Category(d); cat != nil {
			fmt.Fprintf(&b, "%-14s %s %3d\n", d.Label(), meter(cat.Score, 20), cat.Score)
		}
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewChallenges() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Challenges"))
	if len(m.snapshot.Challenges) == 0 {
		b.WriteString("\n" + mutedStyle.Render("No challenges this month"))
	}
	for _, v := range m.snapshot.Challenges {
		mark := " "
		if v.Challenge.CompletedAt != nil {
			mark = "✓"
		}
		fmt.Fprintf(&b, "\n%s %-24s %s %d/%d", mark, v.Challenge.Title, meter(v.Percent, 10), v.Challenge.Progress, v.Challenge.Target)
	}
	return panelStyle.Render(b.String())
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(max(m.width, 40), max(m.height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete %q and its entire history?", m.habitToDelete.Title)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func meter(pct, width int) string {
	pct = max(0, min(pct, 100))
	filled := pct * width / 100
	return strings.Repeat("█", filled) + mutedStyle.Render(strings.Repeat("░", width-filled))
}
