package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/CodeStranger-Fred/gridworld-eval/mdp"
)

// ConvergenceChart plots the max delta of every sweep.
func ConvergenceChart(deltas []float64, threshold float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Policy evaluation",
			Subtitle: fmt.Sprintf("max delta per sweep, threshold %g", threshold),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "log",
		}),
	)

	var steps []string
	items := make([]opts.LineData, 0, len(deltas))
	for i, d := range deltas {
		steps = append(steps, fmt.Sprintf("%d", i+1))
		// log axis cannot show 0
		items = append(items, opts.LineData{Value: math.Max(d, 1e-12)})
	}

	line.SetXAxis(steps).AddSeries("delta", items)
	return line
}

// ValueHeatMap shows V over the grid; the wall cell is left out.
func ValueHeatMap(env *mdp.GridWorld, V mdp.ValueFunction) *charts.HeatMap {
	var cols, rows []string
	for c := 0; c < env.Width(); c++ {
		cols = append(cols, fmt.Sprintf("%d", c))
	}
	// top row last so the chart reads like the printed table
	for r := env.Height() - 1; r >= 0; r-- {
		rows = append(rows, fmt.Sprintf("%d", r))
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	var items []opts.HeatMapData
	for s := range env.States() {
		if s == env.Wall() {
			continue
		}
		v := V.Estimate(s)
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		items = append(items, opts.HeatMapData{
			Value: [3]interface{}{s.Col, env.Height() - 1 - s.Row, math.Round(v*1000) / 1000},
		})
	}
	if lo > hi {
		lo, hi = 0, 0
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "State values"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#d73027", "#ffffbf", "#1a9850"},
			},
		}),
	)
	hm.SetXAxis(cols).AddSeries("value", items)
	return hm
}

// WriteReport renders the convergence chart and value heat map as one HTML
// page.
func WriteReport(w io.Writer, env *mdp.GridWorld, res *mdp.Result, threshold float64) error {
	page := components.NewPage()
	page.PageTitle = "gridworld-eval " + res.RunID.String()
	page.AddCharts(
		ConvergenceChart(res.Deltas, threshold),
		ValueHeatMap(env, res.Values),
	)
	return page.Render(w)
}

func WriteReportFile(path string, env *mdp.GridWorld, res *mdp.Result, threshold float64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteReport(f, env, res, threshold); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
