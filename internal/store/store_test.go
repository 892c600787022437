package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"roster-cli/internal/model"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func mustSource(t *testing.T, raw string) Source {
	t.Helper()
	src, err := ParseSource(raw, Options{})
	if err != nil {
		t.Fatalf("ParseSource(%q): %v", raw, err)
	}
	return src
}

const samplePeople = `[
  {"id": 1, "name": "Bob", "role": "Eng", "image": "img/bob.png", "story": "Builds things."},
  {"id": 2, "name": "Amy", "role": "Eng", "image": "img/amy.png", "story": "Reviews things."},
  {"id": 3, "name": "Cy", "role": "Sales", "image": "img/cy.png", "story": "Sells things."}
]`

func TestStoreLoad_FileSource(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "people.json", samplePeople)
	s := New(mustSource(t, p), nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 people, got %d", s.Len())
	}
	if diff := cmp.Diff([]string{"Eng", "Sales"}, s.Roles()); diff != "" {
		t.Fatalf("roles (-want +got):\n%s", diff)
	}

	amy, ok := s.FindByID(2)
	if !ok || amy.Name != "Amy" || amy.Story != "Reviews things." {
		t.Fatalf("FindByID(2) = %+v, %v", amy, ok)
	}
	if _, ok := s.FindByID(99); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestStoreLoad_FailureLogsAndLeavesEmpty(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	dir := t.TempDir()
	good := writeFile(t, dir, "people.json", samplePeople)

	s := New(mustSource(t, good), zap.New(core))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	// Same store, now pointing at a broken document.
	bad := writeFile(t, dir, "broken.json", `[{"id": 1, "name": `)
	s.source = mustSource(t, bad)
	err := s.Load(context.Background())
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %T (%v)", err, err)
	}
	if le.Source != bad {
		t.Fatalf("expected source %q, got %q", bad, le.Source)
	}
	if s.Len() != 0 || len(s.Roles()) != 0 {
		t.Fatalf("expected empty store after failed load, got %d people", s.Len())
	}

	entries := logs.FilterMessage("load people").FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["source"]; got != bad {
		t.Fatalf("expected logged source %q, got %v", bad, got)
	}
}

func TestStoreLoad_MissingFile(t *testing.T) {
	t.Parallel()

	s := New(mustSource(t, filepath.Join(t.TempDir(), "nope.json")), nil)
	err := s.Load(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestStore_RecordsIsACopy(t *testing.T) {
	t.Parallel()

	s := New(Source{}, nil)
	if err := s.Replace([]model.Person{{ID: 1, Name: "Bob"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got := s.Records()
	got[0].Name = "Mallory"
	if p, _ := s.FindByID(1); p.Name != "Bob" {
		t.Fatalf("store mutated through Records(): %+v", p)
	}
}

func TestStore_ReplaceRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()

	s := New(Source{}, nil)
	if err := s.Replace([]model.Person{{ID: 1, Name: "A"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	err := s.Replace([]model.Person{{ID: 4, Name: "B"}, {ID: 4, Name: "C"}})
	var dup DuplicateIDError
	if !errors.As(err, &dup) || dup.ID != 4 {
		t.Fatalf("expected DuplicateIDError{4}, got %v", err)
	}
	if p, ok := s.FindByID(1); !ok || p.Name != "A" {
		t.Fatalf("failed Replace must keep previous collection, got %+v %v", p, ok)
	}
}

func TestStore_ReplaceDropsStaleIDs(t *testing.T) {
	t.Parallel()

	s := New(Source{}, nil)
	_ = s.Replace([]model.Person{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	_ = s.Replace([]model.Person{{ID: 2, Name: "B2"}})
	if _, ok := s.FindByID(1); ok {
		t.Fatalf("expected id 1 to be gone after replace")
	}
	if p, ok := s.FindByID(2); !ok || p.Name != "B2" {
		t.Fatalf("FindByID(2) = %+v, %v", p, ok)
	}
}

func TestStoreLoad_DuplicateIDsEmptiesStore(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	dir := t.TempDir()
	s := New(mustSource(t, writeFile(t, dir, "people.json", samplePeople)), zap.New(core))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}

	s.source = mustSource(t, writeFile(t, dir, "dupes.json", `[{"id":4,"name":"A"},{"id":4,"name":"B"}]`))
	err := s.Load(context.Background())
	var le *LoadError
	var dup DuplicateIDError
	if !errors.As(err, &le) || !errors.As(err, &dup) || dup.ID != 4 {
		t.Fatalf("expected LoadError wrapping DuplicateIDError{4}, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d people", s.Len())
	}
	if _, ok := s.FindByID(4); ok {
		t.Fatalf("expected no lookups after a failed load")
	}
	if n := logs.FilterMessage("load people").Len(); n != 1 {
		t.Fatalf("expected one load error log, got %d", n)
	}
}
