package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// BenchmarkResult mirrors the fields of cmd/bench's report that the graph needs.
type BenchmarkResult struct {
	Workload      string `json:"workload"`
	NumSessions   int    `json:"num_sessions"`
	NumActions    int64  `json:"num_actions"`
	ActualElapsed string `json:"actual_elapsed"`
}

// FullReport is one cmd/bench run.
type FullReport struct {
	ID          string            `json:"id"`
	SessionTime string            `json:"session_time"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// categoryTicks implements a categorical X-axis: 0,1,2,... => labels for session counts.
type categoryTicks struct {
	positions []float64
	labels    []string
}

func (ct categoryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, pos := range ct.positions {
		if pos >= min && pos <= max {
			ticks = append(ticks, plot.Tick{Value: pos, Label: ct.labels[i]})
		}
	}
	return ticks
}

// nsPerAction groups samples by workload -> session count -> ns/action.
func nsPerAction(reports []FullReport) map[string]map[float64][]float64 {
	points := make(map[string]map[float64][]float64)
	for _, report := range reports {
		for _, b := range report.Benchmarks {
			dur, err := time.ParseDuration(b.ActualElapsed)
			if err != nil || b.NumActions == 0 {
				continue
			}
			x := float64(b.NumSessions)
			if _, ok := points[b.Workload]; !ok {
				points[b.Workload] = make(map[float64][]float64)
			}
			// Sessions run in parallel, so scale to per-session cost.
			ns := float64(dur.Nanoseconds()) * x / float64(b.NumActions)
			points[b.Workload][x] = append(points[b.Workload][x], ns)
		}
	}
	return points
}

func buildPlot(points map[string]map[float64][]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Time per action (5%-avg-min / Median / 5%-avg-max) vs. parallel sessions"
	p.X.Label.Text = "Parallel sessions"
	p.Y.Label.Text = "Time per action per session"

	// Dark theme.
	p.BackgroundColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	p.Title.TextStyle.Color = white
	p.X.Label.TextStyle.Color = white
	p.Y.Label.TextStyle.Color = white
	p.X.Color = white
	p.Y.Color = white
	p.X.Tick.Label.Color = white
	p.Y.Tick.Label.Color = white
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.TextStyle.Color = white

	p.Y.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(min, max)
		for i := range ticks {
			if ticks[i].Label != "" {
				ticks[i].Label = formatNs(ticks[i].Value)
			}
		}
		return ticks
	})
	p.Add(plotter.NewGrid())

	// Map session counts => category index.
	sessionSet := make(map[float64]struct{})
	for _, byCount := range points {
		for x := range byCount {
			sessionSet[x] = struct{}{}
		}
	}
	var counts []float64
	for x := range sessionSet {
		counts = append(counts, x)
	}
	sort.Float64s(counts)

	mapping := make(map[float64]float64, len(counts))
	var positions []float64
	var labels []string
	for i, x := range counts {
		mapping[x] = float64(i)
		positions = append(positions, float64(i))
		labels = append(labels, strconv.FormatFloat(x, 'f', -1, 64))
	}
	p.X.Tick.Marker = categoryTicks{positions: positions, labels: labels}

	// Sort workloads alphabetically for consistent legend ordering.
	var workloads []string
	for name := range points {
		workloads = append(workloads, name)
	}
	sort.Strings(workloads)

	colors := plotutil.SoftColors
	shapes := []draw.GlyphDrawer{
		draw.CircleGlyph{},
		draw.SquareGlyph{},
		draw.TriangleGlyph{},
		draw.CrossGlyph{},
		draw.PlusGlyph{},
	}

	// Slight offset so each workload is visually separated.
	offsetRange := 0.4
	offsetStep := offsetRange / float64(max(len(workloads), 1))
	startOffset := -offsetRange/2 + offsetStep/2

	for i, name := range workloads {
		stats := buildStats(points[name])
		if len(stats) == 0 {
			continue
		}
		for j := range stats {
			stats[j].x = mapping[stats[j].orig] + startOffset + float64(i)*offsetStep
		}
		sp := statsPoints(stats)

		line, err := plotter.NewLine(sp)
		if err != nil {
			return nil, fmt.Errorf("line for %s: %w", name, err)
		}
		line.Color = colors[i%len(colors)]

		scatter, err := plotter.NewScatter(sp)
		if err != nil {
			return nil, fmt.Errorf("scatter for %s: %w", name, err)
		}
		scatter.GlyphStyle.Radius = vg.Points(5)
		scatter.Color = colors[i%len(colors)]
		scatter.Shape = shapes[i%len(shapes)]

		yErrBars, err := plotter.NewYErrorBars(sp)
		if err != nil {
			return nil, fmt.Errorf("error bars for %s: %w", name, err)
		}
		yErrBars.Color = colors[i%len(colors)]

		p.Add(line, scatter, yErrBars)
		p.Legend.Add(name, line, scatter)
	}
	return p, nil
}

func main() {
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON file written by cmd/bench")
	output := flag.String("out", "benchmark_graph.png", "Output graph image filename")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	data, err := os.ReadFile(*jsonFile)
	if err != nil {
		logger.Error("reading JSON file failed", "file", *jsonFile, "err", err)
		os.Exit(1)
	}
	var reports []FullReport
	if err := json.Unmarshal(data, &reports); err != nil {
		logger.Error("unmarshalling JSON failed", "file", *jsonFile, "err", err)
		os.Exit(1)
	}

	p, err := buildPlot(nsPerAction(reports))
	if err != nil {
		logger.Error("building plot failed", "err", err)
		os.Exit(1)
	}
	if err := p.Save(12*vg.Inch, 9*vg.Inch, *output); err != nil {
		logger.Error("saving plot failed", "file", *output, "err", err)
		os.Exit(1)
	}
	fmt.Printf("Graph saved to %s\n", *output)
}
