package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/gssem/internal/params"
	"github.com/san-kum/gssem/internal/storage"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// ParamTable lists every parameter entry with its group and the total count.
func ParamTable(entries []params.Entry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("NAME", "VALUE", "GROUP").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		})

	for _, e := range entries {
		group := e.Group
		if e.Derived {
			group += " (derived)"
		}
		t.Row(e.Name, formatValue(e.Value), group)
	}

	return t.String() + "\n" + mutedStyle.Render(fmt.Sprintf("%d parameters", len(entries)))
}

// RunTable lists stored runs, oldest first.
func RunTable(runs []storage.RunMetadata) string {
	if len(runs) == 0 {
		return mutedStyle.Render("no runs")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "TIME", "T", "SEED", "MODE", "PEAK TEMP").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headStyle
			}
			return cellStyle
		})

	for _, r := range runs {
		mode := "deterministic"
		if r.Stochastic {
			mode = "stochastic"
		}
		peak := "-"
		if v, ok := r.Metrics["peak_temperature"]; ok {
			peak = fmt.Sprintf("%.3f", v)
		}
		t.Row(r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), strconv.Itoa(r.Horizon),
			strconv.FormatInt(r.Seed, 10), mode, peak)
	}
	return t.String()
}

// Summary renders a run's shapes and metrics in a panel, with a temperature
// sparkline when temp is non-empty.
func Summary(meta storage.RunMetadata, temp []float64) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("run "+meta.ID) + "\n\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("x shape", fmt.Sprint(meta.XShape))
	row("y shape", fmt.Sprint(meta.YShape))
	row("seed", strconv.FormatInt(meta.Seed, 10))
	row("stochastic", strconv.FormatBool(meta.Stochastic))
	if meta.Preset != "" {
		row("preset", meta.Preset)
	}

	names := make([]string, 0, len(meta.Metrics))
	for name := range meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		sb.WriteString("\n")
	}
	for _, name := range names {
		row(name, formatValue(meta.Metrics[name]))
	}

	if len(temp) > 0 {
		sb.WriteString("\n" + labelStyle.Render("temperature") + Sparkline(temp, 40))
	}
	return panelStyle.Render(strings.TrimRight(sb.String(), "\n"))
}
