// Package fetch loads the race-time dataset from HTTP or the local filesystem.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

// maxBodyBytes caps how much of a response is decoded.
const maxBodyBytes = 16 << 20

// NewSource picks an HTTP or file source based on the location.
func NewSource(location string) contract.DataSource {
	if contract.IsRemoteSource(location) {
		return NewHTTPSource(location, nil)
	}
	return NewFileSource(strings.TrimPrefix(location, "file://"))
}

// HTTPSource fetches the dataset with a single GET request. There is no retry.
type HTTPSource struct {
	url    string
	client *http.Client
}

var _ contract.DataSource = &HTTPSource{} // Compile-time check

// NewHTTPSource creates an HTTP source. A nil client uses http.DefaultClient.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{url: url, client: client}
}

// Name returns the URL.
func (s *HTTPSource) Name() string { return s.url }

// Fetch performs the GET and decodes the JSON array. Non-2xx responses are errors.
func (s *HTTPSource) Fetch(ctx context.Context) ([]schema.RaceRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, s.url)
	}
	return Decode(io.LimitReader(resp.Body, maxBodyBytes))
}

// FileSource reads the dataset from a local JSON file.
type FileSource struct {
	path string
}

var _ contract.DataSource = &FileSource{} // Compile-time check

// NewFileSource creates a file source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string { return s.path }

// Revision identifies the file content by size and modification time.
// It is empty when the file cannot be stat'ed; Fetch reports that error.
func (s *FileSource) Revision() string {
	info, err := os.Stat(s.path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano())
}

// Fetch reads and decodes the file.
func (s *FileSource) Fetch(ctx context.Context) ([]schema.RaceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Decode(file)
}

// Decode parses a JSON array of records and validates every time label.
// Seconds are trusted as given and not cross-checked against the label.
func Decode(r io.Reader) ([]schema.RaceRecord, error) {
	var records []schema.RaceRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}
