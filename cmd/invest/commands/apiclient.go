package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// apiBase returns the base URL of a running service instance.
func apiBase() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8085"
	}
	return fmt.Sprintf("http://localhost:%s", port)
}

var apiHTTPClient = &http.Client{Timeout: 10 * time.Second}

// apiGet calls a GET endpoint on the running service and decodes the
// response into dest.
func apiGet(path string, dest interface{}) error {
	resp, err := apiHTTPClient.Get(apiBase() + path)
	if err != nil {
		return fmt.Errorf("is the service running? (%w)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// apiSend calls a non-GET endpoint with a JSON body.
func apiSend(method, path string, payload interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiBase()+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := apiHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("is the service running? (%w)", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
