package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"roster-cli/internal/model"

	"github.com/tidwall/jsonc"
)

// decodePeople accepts either a top-level array of people or an object with
// a "people" array. Comments and trailing commas are tolerated.
func decodePeople(b []byte) ([]model.Person, error) {
	b = bytes.TrimSpace(jsonc.ToJSON(b))
	if len(b) == 0 {
		return nil, errors.New("empty document")
	}
	switch b[0] {
	case '[':
		var people []model.Person
		if err := json.Unmarshal(b, &people); err != nil {
			return nil, fmt.Errorf("decode people: %w", err)
		}
		return people, nil
	case '{':
		var doc struct {
			People *[]model.Person `json:"people"`
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("decode people: %w", err)
		}
		if doc.People == nil {
			return nil, errors.New(`decode people: object has no "people" array`)
		}
		return *doc.People, nil
	default:
		return nil, errors.New("decode people: expected a JSON array or object")
	}
}

func loadFile(path string) ([]model.Person, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := readLimited(f)
	if err != nil {
		return nil, err
	}
	return decodePeople(b)
}

func readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxDocumentBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentBytes)
	}
	return b, nil
}

var httpClient = http.DefaultClient

func loadHTTP(ctx context.Context, rawURL string) ([]model.Person, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	b, err := readLimited(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodePeople(b)
}
