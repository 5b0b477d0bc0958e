// Package main provides a performance benchmarking tool for the racechart CLI.
// It renders the dataset in every output format several times per cache backend,
// treating the first successful cached run as cold and averaging the rest as warm,
// and writes the timings to a CSV file.
//
// Prerequisites:
// - racechart binary installed and available in PATH
//
// Usage: go run benchmark/main.go [source]
//
//	source: dataset URL or local JSON file (defaults to the remote dataset)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Output      string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	Source      string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Outputs     []string
	WorkDir     string
	CacheDB     string
}

func main() {
	source := ""
	if len(os.Args) == 2 {
		source = os.Args[1]
	} else if len(os.Args) > 2 {
		fmt.Printf("Usage: %s [source]\n", os.Args[0])
		os.Exit(1)
	}

	workDir, err := os.MkdirTemp("", "racechart-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create work dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(workDir) }()

	config := BenchmarkConfig{
		Source:      source,
		Timeout:     time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Outputs:     []string{"svg", "png", "text", "csv", "json", "parquet"},
		WorkDir:     workDir,
		CacheDB:     filepath.Join(workDir, "cache.db"),
	}

	if _, err := exec.LookPath("racechart"); err != nil {
		fmt.Printf("Prerequisites check failed: racechart binary not found in PATH\n")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes the benchmark suite for every output format
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d outputs, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Outputs), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, output := range config.Outputs {
		// Each format starts from an empty cache so its cold run really fetches
		_ = os.Remove(config.CacheDB)
		results = append(results, runBenchmarkSuite(config, output))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for an output format
func runBenchmarkSuite(config BenchmarkConfig, output string) BenchmarkResult {
	fmt.Printf("Rendering %s\n", output)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, output, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	// Phase 1: No-cache runs
	noCacheCold, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	if noCacheAvg == "TIMEOUT" && noCacheCold > 0 {
		noCacheAvg = fmt.Sprintf("%.3fs", noCacheCold)
	}

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Output:      output,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark renders numRuns times with the given cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, output, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"render",
		"--output", output,
		"--output-file", filepath.Join(config.WorkDir, "chart."+output),
		"--cache-backend", cacheBackend,
	}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", config.CacheDB)
	}
	if config.Source != "" {
		args = append(args, "--source", config.Source)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("racechart", args...)
		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("racechart_benchmark_%s.csv", timestamp))

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
	if err := writer.Write([]string{"output", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Output, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s: No-cache: %s, Cold: %s, Warm: %s\n", result.Output, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}
