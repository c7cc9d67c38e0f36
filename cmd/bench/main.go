package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/i5heu/GoPieceQueue/internal/testbench"
	"github.com/i5heu/GoPieceQueue/pkg/config"
	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// BenchmarkResult holds results for one test run.
type BenchmarkResult struct {
	Workload      string  `json:"workload"`
	NumSessions   int     `json:"num_sessions"`
	QueueCapacity int     `json:"queue_capacity"`
	StackCapacity int     `json:"stack_capacity"`
	BatchSize     int     `json:"batch_size"`
	NumActions    int64   `json:"num_actions"`
	NumFailures   int64   `json:"num_failures"` // rejected actions, state untouched
	NumPieces     uint64  `json:"num_pieces"`   // pieces generated
	TestDuration  string  `json:"test_duration"`
	ActualElapsed string  `json:"actual_elapsed"`
	Throughput    float64 `json:"throughput_actions_sec"`
	Timestamp     int64   `json:"timestamp"`
	GoVersion     string  `json:"go_version"`
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete benchmark session.
type FullReport struct {
	ID          string            `json:"id"`
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// getWorkloads enumerates the container shapes under test.
func getWorkloads(sessions int, seed uint64) []testbench.Config {
	shape := func(name string, queue, stack, batch int) testbench.Config {
		return testbench.Config{
			Name:        name,
			NumSessions: sessions,
			Session: config.Config{
				QueueCapacity: queue,
				StackCapacity: stack,
				BatchSize:     batch,
				Seed:          seed,
			},
		}
	}
	return []testbench.Config{
		shape("classic", config.DefaultQueueCapacity, config.DefaultStackCapacity, config.DefaultBatchSize),
		shape("single", 1, 1, 1),
		shape("wide-queue", 64, 3, 3),
		shape("deep-reserve", 8, 64, 8),
	}
}

// outputMarkdownTable loads the JSON file and prints the last report as a Markdown table.
func outputMarkdownTable(w io.Writer, jsonFile string) error {
	sessions, err := readReports(jsonFile)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return errors.New("no sessions found in JSON")
	}
	last := sessions[len(sessions)-1]

	rows := append([]BenchmarkResult(nil), last.Benchmarks...)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Throughput > rows[j].Throughput
	})

	fmt.Fprintln(w, "## Last Session Benchmark Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Workload       | Sessions | Queue | Stack | Batch | Failure rate | Throughput (actions/sec) |")
	fmt.Fprintln(w, "|----------------|----------|-------|-------|-------|--------------|--------------------------|")
	for _, r := range rows {
		rate := 0.0
		if r.NumActions > 0 {
			rate = float64(r.NumFailures) / float64(r.NumActions) * 100
		}
		fmt.Fprintf(w, "| %-14s | %8d | %5d | %5d | %5d | %11.1f%% | %24.0f |\n",
			r.Workload, r.NumSessions, r.QueueCapacity, r.StackCapacity, r.BatchSize, rate, r.Throughput)
	}
	return nil
}

func readReports(path string) ([]FullReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("unmarshal %q: %w", path, err)
	}
	return sessions, nil
}

// appendReport appends report to the JSON array stored at path, creating it if needed.
func appendReport(path string, report FullReport) error {
	var previous []FullReport
	if _, err := os.Stat(path); err == nil {
		previous, err = readReports(path)
		if err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(append(previous, report), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func main() {
	testIterations := flag.Int("iter", 5, "Number of test iterations per workload")
	sessionsFlag := flag.Int("sessions", 0, "Parallel sessions per workload; 0 means runtime.NumCPU()")
	duration := flag.Duration("duration", 2*time.Second, "Duration of each iteration")
	seed := flag.Uint64("seed", 1, "Base seed for piece generation and action choice")
	jsonExport := flag.Bool("json", false, "Append results as JSON to -jsonfile")
	markdownTable := flag.Bool("markdown-table", false, "Output markdown table from -jsonfile and exit")
	jsonFile := flag.String("jsonfile", "test-results.json", "Path to JSON results file")
	progressFlag := flag.Bool("progress", false, "Display a progress bar with ETA")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *markdownTable {
		if err := outputMarkdownTable(os.Stdout, *jsonFile); err != nil {
			logger.Error("markdown table failed", "err", err)
			os.Exit(1)
		}
		return
	}

	sessions := *sessionsFlag
	if sessions <= 0 {
		sessions = runtime.NumCPU()
	}
	workloads := getWorkloads(sessions, *seed)

	var bar *progressbar.ProgressBar
	if *progressFlag {
		bar = progressbar.NewOptions(len(workloads)*(*testIterations),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("benchmarking"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
	}

	report := FullReport{
		ID:         uuid.NewString(),
		SystemInfo: gatherSystemInfo(logger),
	}
	logger.Debug("starting benchmark", "report", report.ID, "sessions", sessions, "workloads", len(workloads))

	for iteration := 1; iteration <= *testIterations; iteration++ {
		fmt.Printf("iteration %d/%d\n", iteration, *testIterations)
		for _, wl := range workloads {
			runtime.GC()
			res, err := testbench.RunTimedTest(wl, *duration, testbench.UniformActions)
			if err != nil {
				logger.Error("workload failed", "workload", wl.Name, "err", err)
				os.Exit(1)
			}
			throughput := float64(res.Actions) / res.Elapsed.Seconds()

			if bar != nil {
				_ = bar.Clear()
			}
			fmt.Printf("    %s => actions=%d, failures=%d, pieces=%d, throughput=%.0f actions/s, took=%v\n",
				wl.Name, res.Actions, res.Failures, res.Pieces, throughput, res.Elapsed)
			if bar != nil {
				_ = bar.Add(1)
			}

			report.Benchmarks = append(report.Benchmarks, BenchmarkResult{
				Workload:      wl.Name,
				NumSessions:   wl.NumSessions,
				QueueCapacity: wl.Session.QueueCapacity,
				StackCapacity: wl.Session.StackCapacity,
				BatchSize:     wl.Session.BatchSize,
				NumActions:    res.Actions,
				NumFailures:   res.Failures,
				NumPieces:     res.Pieces,
				TestDuration:  duration.String(),
				ActualElapsed: res.Elapsed.String(),
				Throughput:    throughput,
				Timestamp:     time.Now().Unix(),
				GoVersion:     runtime.Version(),
			})
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	report.SessionTime = time.Now().Format(time.RFC3339)

	if *jsonExport {
		if err := appendReport(*jsonFile, report); err != nil {
			logger.Error("writing JSON report failed", "file", *jsonFile, "err", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote results to %s\n", *jsonFile)
	}
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo(logger *slog.Logger) SystemInfo {
	info := SystemInfo{
		NumCPU: runtime.NumCPU(),
		GOARCH: runtime.GOARCH,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	} else if err != nil {
		logger.Debug("cpu info unavailable", "err", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	} else {
		logger.Debug("memory info unavailable", "err", err)
	}
	return info
}
