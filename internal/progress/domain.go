package progress

import "github.com/julianstephens/alpha/internal/models"

// DomainAverage is the mean completion rate of the active habits in one domain
type DomainAverage struct {
	Domain     models.Domain `json:"domain"`
	Average    int           `json:"average"`
	HabitCount int           `json:"habit_count"`
}

// DomainAverages returns one entry per domain in canonical order. Inactive habits
// are ignored; a domain without habits averages 0.
func DomainAverages(stats []HabitStat) []DomainAverage {
	sums := make(map[models.Domain]int)
	counts := make(map[models.Domain]int)
	for _, s := range stats {
		if !s.Habit.Active {
			continue
		}
		sums[s.Habit.Domain] += s.Rate
		counts[s.Habit.Domain]++
	}

	out := make([]DomainAverage, 0, len(models.Domains))
	for _, d := range models.Domains {
		out = append(out, DomainAverage{
			Domain:     d,
			Average:    percent(float64(sums[d]), float64(counts[d]*100)),
			HabitCount: counts[d],
		})
	}
	return out
}

// BestDomain picks the highest average among domains that have habits. Ties keep
// the first domain in iteration order. ok is false when no domain has habits.
func BestDomain(avgs []DomainAverage) (best models.Domain, ok bool) {
	top := -1
	for _, a := range avgs {
		if a.HabitCount == 0 {
			continue
		}
		if a.Average > top {
			top = a.Average
			best = a.Domain
			ok = true
		}
	}
	return best, ok
}
