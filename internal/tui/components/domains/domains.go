// Package domains charts the average completion rate of each life domain.
package domains

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/progress"
)

var domainColors = map[models.Domain]lipgloss.Color{
	models.DomainMind:          lipgloss.Color("63"),
	models.DomainBody:          lipgloss.Color("42"),
	models.DomainPurpose:       lipgloss.Color("214"),
	models.DomainRelationships: lipgloss.Color("205"),
}

var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

type Model struct {
	chart   barchart.Model
	avgs    []progress.DomainAverage
	best    models.Domain
	hasBest bool
	width   int
	height  int
}

func New(width, height int) Model {
	return Model{chart: barchart.New(width, height), width: width, height: height}
}

func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.redraw()
}

// SetAverages replaces the charted data. Domains without habits are drawn
// at zero and left out of the best-domain label.
func (m *Model) SetAverages(avgs []progress.DomainAverage, best models.Domain, hasBest bool) {
	m.avgs, m.best, m.hasBest = avgs, best, hasBest
	m.redraw()
}

func (m *Model) redraw() {
	w, h := max(m.width, 20), max(m.height, 5)
	m.chart = barchart.New(w, h)

	bars := make([]barchart.BarData, 0, len(m.avgs))
	for _, a := range m.avgs {
		bars = append(bars, barchart.BarData{
			Label: label(a.Domain),
			Values: []barchart.BarValue{{
				Name:  a.Domain.Label(),
				Value: float64(a.Average),
				Style: lipgloss.NewStyle().Foreground(domainColors[a.Domain]),
			}},
		})
	}
	if len(bars) == 0 {
		return
	}
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func label(d models.Domain) string {
	l := d.Label()
	if len(l) > 5 {
		l = l[:5]
	}
	return l
}

func (m Model) View() string {
	if len(m.avgs) == 0 {
		return mutedStyle.Render("No domain data yet")
	}

	var legend []string
	for _, a := range m.avgs {
		dot := lipgloss.NewStyle().Foreground(domainColors[a.Domain]).Render("●")
		text := fmt.Sprintf("%s %s %d%%", dot, a.Domain.Label(), a.Average)
		if a.HabitCount == 0 {
			text = fmt.Sprintf("%s %s %s", dot, a.Domain.Label(), mutedStyle.Render("no habits"))
		}
		legend = append(legend, text)
	}

	best := mutedStyle.Render("Best domain: none yet")
	if m.hasBest {
		best = "Best domain: " + lipgloss.NewStyle().Bold(true).Foreground(domainColors[m.best]).Render(m.best.Label())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.chart.View(),
		strings.Join(legend, "  "),
		best,
	)
}
