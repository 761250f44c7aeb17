package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/alpha/internal/models"
	"github.com/julianstephens/alpha/internal/tracker"
)

type ScoreCmd struct {
	Record  ScoreRecordCmd  `cmd:"" help:"Record this quarter's Alpha Score."`
	Latest  ScoreLatestCmd  `cmd:"" help:"Show the most recent Alpha Score." default:"1"`
	History ScoreHistoryCmd `cmd:"" help:"Show every recorded Alpha Score."`
}

type ScoreRecordCmd struct {
	Quarter int            `help:"Quarter (1-4). Defaults to the current quarter."`
	Year    int            `help:"Year. Defaults to the current year."`
	Sprint  string         `help:"Sprint ID or name to link the score to."`
	Set     map[string]int `help:"Metric value as domain.metric=N, e.g. --set mind.reading=7. Repeatable." short:"s"`
	Form    bool           `help:"Enter every metric in an interactive form." short:"f"`
}

func (c *ScoreRecordCmd) Run(ctx *Context) error {
	values, err := parseMetricValues(c.Set)
	if err != nil {
		return err
	}
	if c.Form {
		form, apply := metricForm(values)
		if err := form.Run(); err != nil {
			return fmt.Errorf("score form: %w", err)
		}
		apply()
	}
	if len(values) == 0 {
		return fmt.Errorf("no metric values given, use --set domain.metric=N or --form")
	}

	in := tracker.ScoreInput{Quarter: c.Quarter, Year: c.Year, Values: values}
	if c.Sprint != "" {
		sp, err := findSprint(ctx, c.Sprint)
		if err != nil {
			return err
		}
		in.SprintID = sp.ID
	}

	res, err := ctx.Tracker.RecordScore(ctx.User, in)
	if err != nil {
		return err
	}
	ctx.Printf("Recorded Alpha Score for Q%d %d\n\n", res.Score.Quarter, res.Score.Year)
	printScore(ctx, res)
	return nil
}

// parseMetricValues turns {"mind.reading": 7} into per-domain maps.
func parseMetricValues(set map[string]int) (map[models.Domain]map[string]int, error) {
	values := make(map[models.Domain]map[string]int)
	for key, v := range set {
		d, metric, ok := strings.Cut(key, ".")
		if !ok || metric == "" {
			return nil, fmt.Errorf("invalid metric %q, expected domain.metric", key)
		}
		domain, err := models.ParseDomain(d)
		if err != nil {
			return nil, err
		}
		if values[domain] == nil {
			values[domain] = make(map[string]int)
		}
		values[domain][strings.ToLower(metric)] = v
	}
	return values, nil
}

// metricForm builds one page per domain prefilled from values. Calling the
// returned func after the form completes copies the answers into values.
func metricForm(values map[models.Domain]map[string]int) (*huh.Form, func()) {
	answers := make(map[models.Domain]map[string]*int)
	var groups []*huh.Group
	for _, d := range models.Domains {
		answers[d] = make(map[string]*int)
		var fields []huh.Field
		for _, spec := range models.MetricSchema[d] {
			opts := make([]huh.Option[int], 0, spec.Max+1)
			for v := 0; v <= spec.Max; v += max(spec.Step, 1) {
				opts = append(opts, huh.NewOption(fmt.Sprintf("%d", v), v))
			}
			v := values[d][spec.Key]
			answers[d][spec.Key] = &v
			fields = append(fields, huh.NewSelect[int]().Title(spec.Name).Options(opts...).Value(&v))
		}
		groups = append(groups, huh.NewGroup(fields...).Title(d.Label()))
	}

	apply := func() {
		for d, byKey := range answers {
			if values[d] == nil {
				values[d] = make(map[string]int)
			}
			for key, v := range byKey {
				values[d][key] = *v
			}
		}
	}
	return huh.NewForm(groups...), apply
}

type ScoreLatestCmd struct{}

func (c *ScoreLatestCmd) Run(ctx *Context) error {
	res, err := ctx.Tracker.LatestScore(ctx.User)
	if err != nil {
		return err
	}
	if res == nil {
		ctx.Println("No Alpha Score recorded yet. Use 'alpha score record --form'.")
		return nil
	}
	ctx.Printf("Alpha Score, Q%d %d\n\n", res.Score.Quarter, res.Score.Year)
	printScore(ctx, *res)
	return nil
}

type ScoreHistoryCmd struct{}

func (c *ScoreHistoryCmd) Run(ctx *Context) error {
	history, err := ctx.Tracker.ScoreHistory(ctx.User)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		ctx.Println("No Alpha Score recorded yet.")
		return nil
	}

	ctx.Printf("%-8s  %5s  %6s", "QUARTER", "TOTAL", "CHANGE")
	for _, d := range models.Domains {
		ctx.Printf("  %13s", strings.ToUpper(d.Label()))
	}
	ctx.Println()
	for _, res := range history {
		ctx.Printf("%-8s  %5d  %6s", fmt.Sprintf("Q%d %d", res.Score.Quarter, res.Score.Year), res.Score.Total, deltaText(res.Delta, nil))
		for _, d := range models.Domains {
			score := 0
			if cat := res.Score.Category(d); cat != nil {
				score = cat.Score
			}
			ctx.Printf("  %13d", score)
		}
		ctx.Println()
	}
	return nil
}

func printScore(ctx *Context, res tracker.ScoreResult) {
	ctx.Printf("  %-14s %3d  %s\n", "Total", res.Score.Total, deltaText(res.Delta, nil))
	for _, d := range models.Domains {
		cat := res.Score.Category(d)
		if cat == nil {
			continue
		}
		dom := d
		ctx.Printf("  %-14s %3d  %s\n", d.Label(), cat.Score, deltaText(res.Delta, &dom))
	}
	if res.Delta == nil {
		ctx.Println("\n  First snapshot, no earlier quarter to compare.")
	}

	// Weakest metrics first, as a nudge for next quarter.
	var metrics []models.Metric
	for _, cat := range res.Score.Categories {
		metrics = append(metrics, cat.Metrics...)
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].Value*metrics[j].Max < metrics[j].Value*metrics[i].Max
	})
	if len(metrics) > 3 {
		metrics = metrics[:3]
	}
	if len(metrics) > 0 {
		ctx.Println("\n  Lowest metrics:")
		for _, m := range metrics {
			ctx.Printf("    %-18s %d/%d\n", m.Name, m.Value, m.Max)
		}
	}
}

// deltaText formats the total change, or one domain's when d is set.
func deltaText(delta *models.ScoreDelta, d *models.Domain) string {
	if delta == nil {
		return "-"
	}
	v := delta.Total
	if d != nil {
		v = delta.Categories[*d]
	}
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprintf("%d", v)
}
