package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalRecords = 12000 // Total number of unique query records to generate
	daysBack     = 4     // Records are spread over the last daysBack days
)

var (
	users      = []string{"alice", "bob", "carol", "dave"}
	statuses   = []string{"success", "success", "success", "failure", "pending"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"curl/7.88.1",
	}
)

// ### End - fixed configs

type queryRecord struct {
	UserID       string   `json:"userId"`
	Status       string   `json:"status"`
	LLMLatencyMs *float64 `json:"llmLatencyMs,omitempty"`
	DBLatencyMs  *float64 `json:"dbLatencyMs,omitempty"`
	Timestamp    string   `json:"timestamp"`
	UserAgent    string   `json:"userAgent"`
}

type batchToSend struct {
	batchIndex int
	jsonData   []byte
	isOriginal bool
}

type summaryResponse struct {
	Summary struct {
		TotalQueries         int64            `json:"totalQueries"`
		SuccessfulQueries    int64            `json:"successfulQueries"`
		FailedQueries        int64            `json:"failedQueries"`
		UnrecognizedStatuses int64            `json:"unrecognizedStatuses"`
		SuccessRatePct       *float64         `json:"successRatePct"`
		AvgLLMLatencyMs      *float64         `json:"avgLlmLatencyMs"`
		AvgDBLatencyMs       *float64         `json:"avgDbLatencyMs"`
		UserCounts           map[string]int64 `json:"userCounts"`
	} `json:"summary"`
}

// main runs the e2e scenario: 001_weekly_summary
//
// This scenario ingests 12,000 query records across many batches, resends a
// share of the batches with the same idempotency key, and then checks the
// weekly summary of the project against the counts computed locally.
//
// What it tests:
//   - Query record ingestion via POST /projects/{project}/queries
//   - Idempotency key handling for duplicate batch detection
//   - Cache invalidation: a summary requested mid-run must not hide later batches
//   - Counting of unknown statuses ("pending") as failures
//   - Per-user counts and the success rate in GET /projects/{project}/summary
//
// Expected results:
//   - Duplicate batches return 409 Conflict status (idempotency working)
//   - totalQueries equals 12,000 and successful + failed equals total
//   - successRatePct is 60 (3 of every 5 statuses are "success")
//   - userCounts holds 3,000 queries for each of the four users
//   - avgDbLatencyMs is present, and only every other record carries it
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080"    // Base URL of the query-metrics API server
	itemsPerBatch := 50                   // Number of records per batch. Original batches = totalRecords / itemsPerBatch
	parallel := 4                         // Number of concurrent batch requests to send
	totalDuplicates := 60                 // Total number of duplicate batches to send across all batches
	project := "sales-bot"                // Project to ingest into
	fileStorageDir := ".tmp/file-storage" // File storage directory path relative to project root
	wantCleanFileStorage := true          // If true, clean up file storage directory before running scenario

	if totalRecords%itemsPerBatch != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: TOTAL_RECORDS (%d) must be divisible by ITEMS_PER_BATCH (%d)\n", totalRecords, itemsPerBatch)
		os.Exit(1)
	}
	batchCount := totalRecords / itemsPerBatch

	storagePath, err := resolveStoragePath(fileStorageDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if wantCleanFileStorage {
		fmt.Printf("Cleaning file storage directory: %s\n", storagePath)
		if err := os.RemoveAll(storagePath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean file storage directory: %v\n", err)
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_weekly_summary")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("PROJECT: %s\n", project)
	fmt.Printf("ITEMS_PER_BATCH: %d\n", itemsPerBatch)
	fmt.Printf("BATCH_COUNT: %d\n", batchCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("TOTAL_DUPLICATES: %d\n", totalDuplicates)
	fmt.Println()

	now := time.Now().UTC()
	records := generateRecords(now)

	batchesToSend := make([]batchToSend, 0, batchCount+totalDuplicates)
	for batchIndex := 1; batchIndex <= batchCount; batchIndex++ {
		start := (batchIndex - 1) * itemsPerBatch
		jsonData, err := json.Marshal(records[start : start+itemsPerBatch])
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to generate JSON for batch %d: %v\n", batchIndex, err)
			os.Exit(1)
		}
		batchesToSend = append(batchesToSend, batchToSend{batchIndex: batchIndex, jsonData: jsonData, isOriginal: true})
	}
	// Duplicates are spread round-robin over the original batches
	for i := 0; i < totalDuplicates; i++ {
		original := batchesToSend[i%batchCount]
		batchesToSend = append(batchesToSend, batchToSend{batchIndex: original.batchIndex, jsonData: original.jsonData})
	}
	sort.SliceStable(batchesToSend, func(i, j int) bool {
		return batchesToSend[i].batchIndex < batchesToSend[j].batchIndex
	})

	var (
		wg                sync.WaitGroup
		mu                sync.Mutex
		errs              []error
		acceptedRequest   int64
		conflictedRequest int64
	)
	workerChan := make(chan struct{}, parallel)

	for i, batch := range batchesToSend {
		// Request a summary half way through so the cache is warm while batches keep arriving
		if i == len(batchesToSend)/2 {
			wg.Wait()
			if _, err := fetchSummary(baseURL, project); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: mid-run summary failed: %v\n", err)
				os.Exit(1)
			}
		}

		wg.Add(1)
		workerChan <- struct{}{}
		go func(b batchToSend) {
			defer wg.Done()
			defer func() { <-workerChan }()

			statusCode, err := sendBatch(baseURL, project, b)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("batch %d: %w", b.batchIndex, err))
				mu.Unlock()
				return
			}
			switch statusCode {
			case http.StatusAccepted:
				atomic.AddInt64(&acceptedRequest, 1)
			case http.StatusConflict:
				atomic.AddInt64(&conflictedRequest, 1)
			}
		}(batch)
	}
	wg.Wait()

	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Accepted request: %d\n", atomic.LoadInt64(&acceptedRequest))
	fmt.Printf("Conflicted request: %d\n", atomic.LoadInt64(&conflictedRequest))
	fmt.Println()

	// Cache invalidation runs on the stream consumers; give them a moment to catch up
	time.Sleep(500 * time.Millisecond)

	summary, err := fetchSummary(baseURL, project)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: final summary failed: %v\n", err)
		os.Exit(1)
	}

	failures := checkSummary(summary, records)
	if atomic.LoadInt64(&acceptedRequest) != int64(batchCount) {
		failures = append(failures, fmt.Sprintf("accepted requests: got %d, want %d", acceptedRequest, batchCount))
	}
	if atomic.LoadInt64(&conflictedRequest) != int64(totalDuplicates) {
		failures = append(failures, fmt.Sprintf("conflicted requests: got %d, want %d", conflictedRequest, totalDuplicates))
	}
	if len(failures) > 0 {
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "MISMATCH: %s\n", f)
		}
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

// resolveStoragePath walks up from the working directory to the go.mod and joins dir to it.
func resolveStoragePath(dir string) (string, error) {
	projectRoot, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(projectRoot, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			return "", fmt.Errorf("could not find go.mod, run from the project root")
		}
		projectRoot = parent
	}
	return filepath.Abs(filepath.Join(projectRoot, dir))
}

// generateRecords spreads records evenly over users, statuses and the last daysBack days.
func generateRecords(now time.Time) []queryRecord {
	records := make([]queryRecord, 0, totalRecords)
	for i := 0; i < totalRecords; i++ {
		llm := float64(100 + i%400)
		record := queryRecord{
			UserID:       users[i%len(users)],
			Status:       statuses[i%len(statuses)],
			LLMLatencyMs: &llm,
			Timestamp:    now.Add(-time.Duration(i%daysBack)*24*time.Hour - time.Duration(i%3600)*time.Second).Format(time.RFC3339Nano),
			UserAgent:    userAgents[i%len(userAgents)],
		}
		if i%2 == 0 {
			db := float64(10 + i%90)
			record.DBLatencyMs = &db
		}
		records = append(records, record)
	}
	return records
}

func checkSummary(resp *summaryResponse, records []queryRecord) []string {
	var (
		failures   []string
		successful int64
		unknown    int64
		perUser    = map[string]int64{}
	)
	for _, r := range records {
		perUser[r.UserID]++
		switch r.Status {
		case "success":
			successful++
		case "failure":
		default:
			unknown++
		}
	}

	got := resp.Summary
	want := int64(len(records))
	if got.TotalQueries != want {
		failures = append(failures, fmt.Sprintf("totalQueries: got %d, want %d", got.TotalQueries, want))
	}
	if got.SuccessfulQueries != successful {
		failures = append(failures, fmt.Sprintf("successfulQueries: got %d, want %d", got.SuccessfulQueries, successful))
	}
	if got.SuccessfulQueries+got.FailedQueries != got.TotalQueries {
		failures = append(failures, "successfulQueries + failedQueries != totalQueries")
	}
	if got.UnrecognizedStatuses != unknown {
		failures = append(failures, fmt.Sprintf("unrecognizedStatuses: got %d, want %d", got.UnrecognizedStatuses, unknown))
	}
	if got.SuccessRatePct == nil || math.Abs(*got.SuccessRatePct-60) > 1e-9 {
		failures = append(failures, fmt.Sprintf("successRatePct: got %v, want 60", got.SuccessRatePct))
	}
	if got.AvgDBLatencyMs == nil {
		failures = append(failures, "avgDbLatencyMs: got null")
	}
	for user, count := range perUser {
		if got.UserCounts[user] != count {
			failures = append(failures, fmt.Sprintf("userCounts[%s]: got %d, want %d", user, got.UserCounts[user], count))
		}
	}
	return failures
}

func sendBatch(baseURL, project string, batch batchToSend) (int, error) {
	// Same key for all duplicates of this batch
	idempotencyKey := fmt.Sprintf("batch-%06d", batch.batchIndex)

	req, err := http.NewRequest(http.MethodPost, baseURL+"/projects/"+project+"/queries", bytes.NewReader(batch.jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("idempotency-key", idempotencyKey)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 Conflict is expected for duplicates
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, body)
	}
	return resp.StatusCode, nil
}

func fetchSummary(baseURL, project string) (*summaryResponse, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(baseURL + "/projects/" + project + "/summary?window=week")
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	var summary summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}
	return &summary, nil
}
