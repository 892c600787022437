package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRewriteDirectLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"roster"},
			want: []string{"roster"},
		},
		{
			name: "id first token",
			in:   []string{"roster", "42"},
			want: []string{"roster", "show", "42"},
		},
		{
			name: "id after value flag",
			in:   []string{"roster", "--source", "./team.json", "42"},
			want: []string{"roster", "--source", "./team.json", "show", "42"},
		},
		{
			name: "numeric flag value is not an id",
			in:   []string{"roster", "--sql-table", "7", "list"},
			want: []string{"roster", "--sql-table", "7", "list"},
		},
		{
			name: "id after equals flag",
			in:   []string{"roster", "--format=edn", "42"},
			want: []string{"roster", "--format=edn", "show", "42"},
		},
		{
			name: "id after bool flag",
			in:   []string{"roster", "--pretty", "42"},
			want: []string{"roster", "--pretty", "show", "42"},
		},
		{
			name: "id after double dash",
			in:   []string{"roster", "--", "42"},
			want: []string{"roster", "--", "show", "42"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"roster", "show", "42"},
			want: []string{"roster", "show", "42"},
		},
		{
			name: "negative number not an id",
			in:   []string{"roster", "list", "-1"},
			want: []string{"roster", "list", "-1"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"roster", "wat"},
			want: []string{"roster", "wat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectLookupArgs(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("argv mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
