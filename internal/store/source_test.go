package store

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"roster-cli/internal/model"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    Source
		wantErr bool
	}{
		{name: "plain path", raw: "assets/people.json", want: Source{Kind: KindFile, Location: "assets/people.json"}},
		{name: "file url", raw: "file:///srv/people.json", want: Source{Kind: KindFile, Location: "/srv/people.json"}},
		{name: "https", raw: "https://example.com/people.json", want: Source{Kind: KindHTTP, Location: "https://example.com/people.json"}},
		{name: "s3", raw: "s3://team-bucket/dir/people.json", want: Source{Kind: KindS3, Location: "s3://team-bucket/dir/people.json", Bucket: "team-bucket", Key: "dir/people.json"}},
		{name: "sqlite scheme", raw: "sqlite://data/people.db", want: Source{Kind: KindSQLite, Location: "data/people.db"}},
		{name: "sqlite by extension", raw: "people.sqlite", want: Source{Kind: KindSQLite, Location: "people.sqlite"}},
		{name: "postgres", raw: "postgres://u:p@db/roster", want: Source{Kind: KindPostgres, Location: "postgres://u:p@db/roster"}},
		{name: "empty", raw: "  ", wantErr: true},
		{name: "s3 without key", raw: "s3://bucket", wantErr: true},
		{name: "unknown scheme", raw: "ftp://host/people.json", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSource(tt.raw, Options{})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSource: %v", err)
			}
			tt.want.Options = Options{Table: DefaultTable}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("source (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSource_RejectsBadTable(t *testing.T) {
	t.Parallel()

	if _, err := ParseSource("people.db", Options{Table: "people; DROP TABLE x"}); err == nil {
		t.Fatalf("expected invalid table error")
	}
}

func TestSourceString_RedactsPostgresPassword(t *testing.T) {
	t.Parallel()

	src, err := ParseSource("postgres://roster:hunter2@db:5432/roster", Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s := src.String(); strings.Contains(s, "hunter2") {
		t.Fatalf("password leaked in %q", s)
	}
}

func TestDecodePeople(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    []int
		wantErr bool
	}{
		{name: "array", body: `[{"id":1,"name":"A"},{"id":2,"name":"B"}]`, want: []int{1, 2}},
		{name: "wrapped object", body: `{"people":[{"id":7,"name":"G"}]}`, want: []int{7}},
		{name: "comments and trailing comma", body: "[\n// staff\n{\"id\":3,\"name\":\"C\"},\n]", want: []int{3}},
		{name: "empty array", body: `[]`, want: []int{}},
		{name: "object without people", body: `{"staff":[]}`, wantErr: true},
		{name: "scalar", body: `42`, wantErr: true},
		{name: "blank", body: ``, wantErr: true},
		{name: "wrong field type", body: `[{"id":"one"}]`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := decodePeople([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			ids := []int{}
			for _, p := range got {
				ids = append(ids, p.ID)
			}
			if diff := cmp.Diff(tt.want, ids); diff != "" {
				t.Fatalf("ids (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_DuplicateIDsIsLoadError(t *testing.T) {
	t.Parallel()

	p := writeFile(t, t.TempDir(), "dupes.json", `[{"id":1,"name":"A"},{"id":1,"name":"B"}]`)
	_, err := Load(context.Background(), mustSource(t, p))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	var dup DuplicateIDError
	if !errors.As(err, &dup) || dup.ID != 1 {
		t.Fatalf("expected DuplicateIDError{1}, got %v", err)
	}
}

func TestLoad_HTTPSource(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		switch r.URL.Path {
		case "/assets/people.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(samplePeople))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	people, err := Load(context.Background(), mustSource(t, srv.URL+"/assets/people.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(people) != 3 || hits.Load() != 1 {
		t.Fatalf("expected 3 people from a single request, got %d people / %d hits", len(people), hits.Load())
	}

	_, err = Load(context.Background(), mustSource(t, srv.URL+"/missing.json"))
	var le *LoadError
	if !errors.As(err, &le) || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 load error, got %v", err)
	}
}

func TestLoad_SQLiteSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "people.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	stmts := []string{
		`CREATE TABLE staff (id INTEGER PRIMARY KEY, name TEXT NOT NULL, role TEXT NOT NULL, image TEXT, story TEXT)`,
		`INSERT INTO staff(id, name, role, image, story) VALUES (2, 'Amy', 'Eng', 'img/amy.png', 'Reviews.')`,
		`INSERT INTO staff(id, name, role, image, story) VALUES (1, 'Bob', 'Eng', NULL, NULL)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	_ = db.Close()

	src, err := ParseSource(path, Options{Table: "staff"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []model.Person{
		{ID: 1, Name: "Bob", Role: "Eng"},
		{ID: 2, Name: "Amy", Role: "Eng", Image: "img/amy.png", Story: "Reviews."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("people (-want +got):\n%s", diff)
	}
}

func TestLoad_S3Source(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/directory/people.json" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePeople))
	}))
	defer srv.Close()

	src, err := ParseSource("s3://directory/people.json", Options{S3: S3Options{
		Region:          "us-east-1",
		Endpoint:        srv.URL,
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		PathStyle:       true,
	}})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	people, err := Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(people) != 3 || people[2].Name != "Cy" {
		t.Fatalf("unexpected people: %+v", people)
	}
}
