package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"roster-cli/internal/model"
)

type Kind string

const (
	KindFile     Kind = "file"
	KindHTTP     Kind = "http"
	KindS3       Kind = "s3"
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
)

const (
	DefaultTable = "people"

	// Upper bound for a JSON people document.
	maxDocumentBytes = 32 << 20
)

// Options carries driver settings that don't fit in the source string.
type Options struct {
	// Table is the SQL table read by sqlite/postgres sources.
	Table string
	S3    S3Options
}

type S3Options struct {
	Region   string
	Endpoint string
	// Static credentials; when empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

// Source identifies where the people collection is read from.
type Source struct {
	Kind     Kind
	Location string
	Bucket   string
	Key      string
	Options  Options
}

// ParseSource resolves a source string:
//
//	people.json | file:///abs/people.json   JSON document on disk
//	http(s)://host/people.json               single GET
//	s3://bucket/key                          S3 object
//	sqlite://path | path.db | path.sqlite    SQLite table
//	postgres://... | postgresql://...        Postgres table
func ParseSource(raw string, opts Options) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, errors.New("empty people source")
	}
	if strings.TrimSpace(opts.Table) == "" {
		opts.Table = DefaultTable
	}
	if !validIdent(opts.Table) {
		return Source{}, fmt.Errorf("invalid table name: %q", opts.Table)
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return Source{}, fmt.Errorf("invalid url: %q", raw)
		}
		return Source{Kind: KindHTTP, Location: raw, Options: opts}, nil

	case strings.HasPrefix(lower, "s3://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, fmt.Errorf("invalid s3 url: %q", raw)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Source{}, fmt.Errorf("s3 source needs bucket and key: %q", raw)
		}
		return Source{Kind: KindS3, Location: raw, Bucket: u.Host, Key: key, Options: opts}, nil

	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return Source{Kind: KindPostgres, Location: raw, Options: opts}, nil

	case strings.HasPrefix(lower, "sqlite://"):
		p := raw[len("sqlite://"):]
		if p == "" {
			return Source{}, fmt.Errorf("sqlite source needs a path: %q", raw)
		}
		return Source{Kind: KindSQLite, Location: p, Options: opts}, nil

	case strings.HasPrefix(lower, "file://"):
		u, err := url.Parse(raw)
		if err != nil || u.Path == "" {
			return Source{}, fmt.Errorf("invalid file url: %q", raw)
		}
		return localSource(u.Path, opts), nil
	}

	if strings.Contains(raw, "://") {
		return Source{}, fmt.Errorf("unsupported source scheme: %q", raw)
	}
	return localSource(raw, opts), nil
}

func localSource(p string, opts Options) Source {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".db", ".sqlite", ".sqlite3":
		return Source{Kind: KindSQLite, Location: p, Options: opts}
	}
	return Source{Kind: KindFile, Location: p, Options: opts}
}

func (s Source) String() string {
	switch s.Kind {
	case KindS3:
		return "s3://" + s.Bucket + "/" + s.Key
	case KindSQLite:
		return "sqlite://" + s.Location
	case KindPostgres:
		if u, err := url.Parse(s.Location); err == nil {
			return u.Redacted()
		}
		return "postgres://…"
	}
	return s.Location
}

// LocalPath returns the on-disk path for file-backed sources.
func (s Source) LocalPath() (string, bool) {
	switch s.Kind {
	case KindFile, KindSQLite:
		return s.Location, true
	}
	return "", false
}

// Load performs the single read of src. Every failure comes back as a
// *LoadError.
func Load(ctx context.Context, src Source) ([]model.Person, error) {
	people, _, err := load(ctx, src)
	return people, err
}

// load is Load plus the id index built while checking uniqueness.
func load(ctx context.Context, src Source) ([]model.Person, map[int]int, error) {
	var (
		people []model.Person
		err    error
	)
	switch src.Kind {
	case KindFile:
		people, err = loadFile(src.Location)
	case KindHTTP:
		people, err = loadHTTP(ctx, src.Location)
	case KindS3:
		people, err = loadS3(ctx, src)
	case KindSQLite:
		people, err = loadSQL(ctx, "sqlite", src.Location, src.Options.Table)
	case KindPostgres:
		people, err = loadSQL(ctx, "pgx", src.Location, src.Options.Table)
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind)
	}
	var byID map[int]int
	if err == nil {
		byID, err = indexByID(people)
	}
	if err != nil {
		return nil, nil, &LoadError{Source: src.String(), Err: err}
	}
	return people, byID, nil
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		case r == '.' && i > 0:
		default:
			return false
		}
	}
	return true
}
