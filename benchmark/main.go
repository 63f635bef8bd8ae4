// Package main provides a performance benchmarking tool for the sdphc CLI.
// It generates synthetic surveys of increasing size, runs every analysis method
// on each of them several times with and without analysis tracking, and writes
// the average timings to a CSV file.
//
// Prerequisites:
// - sdphc binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated surveys and outputs (default: a temp dir)
package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, first tracked run and average of the rest).
type BenchmarkResult struct {
	Points      int
	Command     string
	UntrackedAv string
	FirstRun    string
	TrackedAv   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir       string
	Timeout       time.Duration
	UntrackedRuns int
	TrackedRuns   int
	SurveySizes   []int
	Commands      []string
}

func main() {
	if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := ""
	if len(os.Args) == 2 {
		workDir = os.Args[1]
	} else {
		dir, err := os.MkdirTemp("", "sdphc-benchmark-*")
		if err != nil {
			fmt.Printf("Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
		workDir = dir
	}

	config := BenchmarkConfig{
		WorkDir:       workDir,
		Timeout:       5 * time.Minute,
		UntrackedRuns: 3,
		TrackedRuns:   4,
		SurveySizes:   []int{100, 1000, 10000},
		Commands:      []string{"threshold", "background", "pca"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the sdphc binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("sdphc"); err != nil {
		return fmt.Errorf("sdphc binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// writeSurvey generates a survey with one plume in the middle of a 1 km square.
func writeSurvey(path string, n int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	rng := rand.New(rand.NewPCG(uint64(n), 42))
	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"PointID", "X", "Y", "Radon", "VOCs", "CO2", "O2", "CH4", "H2S", "H2"}); err != nil {
		return err
	}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }
	for i := range n {
		x, y := rng.Float64()*1000, rng.Float64()*1000
		// plume strength decays with distance from the center
		plume := math.Exp(-math.Hypot(x-500, y-500) / 150)
		record := []string{
			fmt.Sprintf("P%d", i+1),
			format(x),
			format(y),
			format(20000 * (1 - 0.9*plume) * (0.8 + 0.4*rng.Float64())),
			format(50000 * plume * rng.Float64()),
			format(10000 + 150000*plume*rng.Float64()),
			format(20 - 15*plume*rng.Float64()),
			format(2 * plume * rng.Float64()),
			format(0.1 * plume * rng.Float64()),
			format(0.5 * plume * rng.Float64()),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarks executes all benchmark tests across configured survey sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d survey sizes, %v timeout, untracked: %d runs, tracked: %d runs\n",
		len(config.SurveySizes), config.Timeout, config.UntrackedRuns, config.TrackedRuns)

	for _, n := range config.SurveySizes {
		surveyPath := filepath.Join(config.WorkDir, fmt.Sprintf("survey_%d.csv", n))
		if err := writeSurvey(surveyPath, n); err != nil {
			fmt.Printf("Skipping %d points: %v\n", n, err)
			continue
		}
		fmt.Printf("Benchmarking %d points\n", n)
		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, n, surveyPath, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both untracked and tracked benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, n int, surveyPath, command string) BenchmarkResult {
	fmt.Printf("Running %s on %d points\n", command, n)

	runPhase := func(backend string, numRuns int, phaseName string) (first float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		first, times := runBenchmark(config, surveyPath, command, backend, numRuns)
		if len(times) == 0 {
			return first, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return first, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	// Phase 1: untracked runs
	_, untrackedAvg := runPhase("none", config.UntrackedRuns, "Untracked")

	// Phase 2: runs tracked in a fresh SQLite store
	firstRun, trackedAvg := runPhase("sqlite", config.TrackedRuns, "Tracked")

	firstStr := "TIMEOUT"
	if firstRun > 0 {
		firstStr = fmt.Sprintf("%.3fs", firstRun)
	}

	fmt.Printf("  Untracked average: %s, First tracked: %s, Tracked average: %s\n", untrackedAvg, firstStr, trackedAvg)

	return BenchmarkResult{
		Points:      n,
		Command:     command,
		UntrackedAv: untrackedAvg,
		FirstRun:    firstStr,
		TrackedAv:   trackedAvg,
	}
}

// runBenchmark executes an sdphc command multiple times with the given tracking backend and returns the first and later times
func runBenchmark(config BenchmarkConfig, surveyPath, command, backend string, numRuns int) (firstTime float64, laterTimes []float64) {
	outFile := filepath.Join(config.WorkDir, command+".csv")
	args := []string{command, surveyPath, "--output", "csv", "--output-file", outFile, "--analysis-backend", backend}
	if backend == "sqlite" {
		dbPath := filepath.Join(config.WorkDir, "analysis.db")
		_ = os.Remove(dbPath)
		args = append(args, "--analysis-db-connect", dbPath)
	}

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("sdphc", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		firstTime = times[0]
		laterTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates the results were written
func isSuccess(output []byte) bool {
	return strings.Contains(string(output), "Wrote CSV")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("sdphc_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"points", "cmd", "untracked_avg", "first_tracked", "tracked_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{strconv.Itoa(result.Points), result.Command, result.UntrackedAv, result.FirstRun, result.TrackedAv}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %6d points: Untracked: %s, First tracked: %s, Tracked: %s\n", result.Points, result.UntrackedAv, result.FirstRun, result.TrackedAv)
			}
		}
	}
}
