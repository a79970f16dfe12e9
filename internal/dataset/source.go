package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"magang-intel/internal/shared/storage/object"
)

// maxDatasetBytes bounds a single download.
const maxDatasetBytes = 64 << 20

// Source fetches the raw dataset document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// ObjectSource reads the dataset from the object store (local dir or S3).
type ObjectSource struct {
	Store object.ObjectStore
	Key   string
}

func (s ObjectSource) Name() string { return "object:" + s.Key }

func (s ObjectSource) Fetch(ctx context.Context) ([]byte, error) {
	raw, err := object.ReadAll(ctx, s.Store, s.Key)
	if err != nil {
		return nil, fmt.Errorf("read dataset object %s: %w", s.Key, err)
	}
	return raw, nil
}

// HTTPSource downloads the dataset from a static URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return "http:" + s.URL }

func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build dataset request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Status: resp.StatusCode, RetryAfter: resp.Header.Get("Retry-After")}
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDatasetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read dataset body: %w", err)
	}
	if len(raw) > maxDatasetBytes {
		return nil, fmt.Errorf("dataset larger than %d bytes", maxDatasetBytes)
	}
	return raw, nil
}

// StatusError is a non-2xx response from an HTTP source.
type StatusError struct {
	Status     int
	RetryAfter string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch dataset: unexpected status %d", e.Status)
}

// FileSource reads the dataset from a path on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}
	return raw, nil
}

// ParseSource picks a source from a location string: http(s) URLs download,
// anything else is a file path.
func ParseSource(location string) Source {
	loc := strings.TrimSpace(location)
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		return HTTPSource{URL: loc}
	}
	return FileSource{Path: loc}
}
