package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

var baseURL = "http://localhost:8080"

type analyzeResponse struct {
	AnalyzedCount int `json:"analyzed_count"`
	Groups        []struct {
		GroupID      int      `json:"group_id"`
		MatchReasons []string `json:"match_reasons"`
		Items        []struct {
			UUID string `json:"uuid"`
			Name string `json:"name"`
		} `json:"items"`
	} `json:"groups"`
}

func main() {
	if url := os.Getenv("SMOKETEST_BASE_URL"); url != "" {
		baseURL = url
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Smoke Test...")

	ownerID := fmt.Sprintf("smoke-%d", time.Now().Unix())

	// 1. Seed Items
	fmt.Println("1. Seeding Items...")
	// The auto preset is strict: the duplicate pair has to agree on name
	// prefix, description substring, inventory number and purchase date.
	items := []map[string]interface{}{
		{"owner_id": ownerID, "name": "Laptop Dell XPS 13", "description": "Developer laptop", "wodis_number": "WD-1001", "purchase_date": "2024-03-01"},
		{"owner_id": ownerID, "name": "Laptop Dell XPS 15", "description": "Developer laptop with dock", "wodis_number": "WD-1001", "purchase_date": "2024-03-10"},
		{"owner_id": ownerID, "name": "Office Chair", "description": "Black mesh chair", "wodis_number": "WD-2000", "purchase_date": "2024-03-01"},
	}
	var uuids []string
	for _, item := range items {
		body, ok := sendRequest("POST", "/items", item)
		if !ok {
			fmt.Println("FAILED: Seed items")
			os.Exit(1)
		}
		var created struct {
			UUID string `json:"uuid"`
		}
		if err := json.Unmarshal(body, &created); err != nil || created.UUID == "" {
			fmt.Println("FAILED: Seed items (no uuid in response)")
			os.Exit(1)
		}
		uuids = append(uuids, created.UUID)
	}
	fmt.Println("PASSED: Seed items")

	// 2. Analyze with auto preset: the two laptops share a 5-rune name prefix
	fmt.Println("2. Analyzing Duplicates (auto preset)...")
	body, ok := sendRequest("GET", "/duplicates?owner_id="+ownerID+"&preset=auto", nil)
	if !ok {
		fmt.Println("FAILED: Analyze duplicates")
		os.Exit(1)
	}
	var report analyzeResponse
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("FAILED: Analyze duplicates (bad response: %v)\n", err)
		os.Exit(1)
	}
	if len(report.Groups) != 1 || len(report.Groups[0].Items) != 2 {
		fmt.Printf("FAILED: expected one group of two items, got %d groups\n", len(report.Groups))
		os.Exit(1)
	}
	fmt.Println("PASSED: Analyze duplicates")

	// 3. Quarantine the laptop pair and re-analyze
	fmt.Println("3. Quarantining Pair...")
	_, ok = sendRequest("POST", "/quarantine", map[string]string{
		"owner_id": ownerID,
		"item_a":   uuids[0],
		"item_b":   uuids[1],
	})
	if !ok {
		fmt.Println("FAILED: Quarantine pair")
		os.Exit(1)
	}

	body, ok = sendRequest("GET", "/duplicates?owner_id="+ownerID+"&preset=auto", nil)
	if !ok {
		fmt.Println("FAILED: Re-analyze after quarantine")
		os.Exit(1)
	}
	report = analyzeResponse{}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("FAILED: Re-analyze (bad response: %v)\n", err)
		os.Exit(1)
	}
	if len(report.Groups) != 0 {
		fmt.Printf("FAILED: expected zero groups after quarantine, got %d\n", len(report.Groups))
		os.Exit(1)
	}
	fmt.Println("PASSED: Quarantine pair")

	fmt.Println("Smoke Test OK")
}

func sendRequest(method, endpoint string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	return respBody, true
}
