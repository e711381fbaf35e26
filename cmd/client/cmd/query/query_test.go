package query

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querytrack/internal/app/client"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
)

type fakeSource struct {
	queries []query.Query
	types   []qtype.Type
	err     error
}

func (f fakeSource) Queries(context.Context) ([]query.Query, error) {
	return f.queries, f.err
}

func (f fakeSource) Types(context.Context) ([]qtype.Type, error) {
	return f.types, f.err
}

func TestResolveID(t *testing.T) {
	src := fakeSource{queries: []query.Query{
		{ID: "3f2a9c10-0000-4000-8000-000000000001"},
		{ID: "3f2b1111-0000-4000-8000-000000000002"},
		{ID: "ab000000-0000-4000-8000-000000000003"},
	}}

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "full id", ref: "ab000000-0000-4000-8000-000000000003", want: "ab000000-0000-4000-8000-000000000003"},
		{name: "unique prefix", ref: "3f2a", want: "3f2a9c10-0000-4000-8000-000000000001"},
		{name: "ambiguous prefix", ref: "3f2", wantErr: client.ErrValidation},
		{name: "unknown", ref: "ffff", wantErr: client.ErrNotFound},
		{name: "empty", ref: "  ", wantErr: client.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveID(context.Background(), src, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveID_SourceError(t *testing.T) {
	_, err := resolveID(context.Background(), fakeSource{err: client.ErrUnauthenticated}, "3f2a")
	assert.ErrorIs(t, err, client.ErrUnauthenticated)
}

func TestResolveType(t *testing.T) {
	src := fakeSource{types: []qtype.Type{{ID: "t1", Name: "Bug"}, {ID: "t2", Name: "Feature"}}}

	id, err := resolveType(context.Background(), src, "bug")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "t1", *id)

	id, err = resolveType(context.Background(), src, "")
	require.NoError(t, err)
	assert.Nil(t, id)

	_, err = resolveType(context.Background(), src, "Question")
	assert.True(t, errors.Is(err, client.ErrNotFound))
}

func TestPrintTable(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	queries := []query.Query{
		{
			ID:        "3f2a9c10-0000-4000-8000-000000000001",
			Title:     "Login page is broken",
			Status:    query.StatusInProgress,
			Priority:  query.PriorityHigh,
			Type:      &query.TypeRef{Name: "Bug"},
			CreatedAt: time.Date(2024, 1, 5, 10, 0, 0, 0, time.Local),
		},
		{
			ID:        "ab000000-0000-4000-8000-000000000003",
			Title:     "Untyped one",
			Status:    query.StatusPending,
			Priority:  query.PriorityLow,
			CreatedAt: time.Date(2024, 1, 6, 9, 30, 0, 0, time.Local),
		},
	}

	var buf bytes.Buffer
	printTable(&buf, queries)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "3f2a9c10")
	assert.Contains(t, lines[1], "in progress")
	assert.Contains(t, lines[1], "2024-01-05 10:00")
	assert.Contains(t, lines[2], " - ")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, []query.Query{{ID: "q1", Title: "One", Status: query.StatusPending}}))

	var got []query.Query
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "One", got[0].Title)
}

func TestJoinInts(t *testing.T) {
	assert.Equal(t, "1\t0\t3", joinInts([]int{1, 0, 3}))
	assert.Equal(t, "", joinInts(nil))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c10", shortID("3f2a9c10-0000"))
	assert.Equal(t, "abc", shortID("abc"))
}
