package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColumn(t *testing.T) {
	tests := []struct {
		header string
		want   Column
		ok     bool
	}{
		{"Title", ColumnTitle, true},
		{" DESCRIPTION ", ColumnDescription, true},
		{"type", ColumnType, true},
		{"Status", ColumnStatus, true},
		{"priority", ColumnPriority, true},
		{"Assignee", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := ParseColumn(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportRow_Blank(t *testing.T) {
	assert.True(t, ImportRow{}.Blank())
	assert.True(t, ImportRow{ColumnTitle: "  ", ColumnType: ""}.Blank())
	assert.False(t, ImportRow{ColumnPriority: "low"}.Blank())
}

func TestImportRow_Resolve(t *testing.T) {
	typeIDs := map[string]string{"bug": "t-1"}

	t.Run("defaults", func(t *testing.T) {
		req := ImportRow{ColumnTitle: " "}.Resolve(typeIDs)
		assert.Equal(t, "Untitled", req.Title)
		assert.Equal(t, StatusPending, req.Status)
		assert.Equal(t, PriorityMedium, req.Priority)
		assert.Nil(t, req.Description)
		assert.Nil(t, req.TypeID)
	})

	t.Run("known type matched case-insensitively", func(t *testing.T) {
		req := ImportRow{ColumnTitle: "x", ColumnType: " BUG "}.Resolve(typeIDs)
		require.NotNil(t, req.TypeID)
		assert.Equal(t, "t-1", *req.TypeID)
	})

	t.Run("unknown type left untyped", func(t *testing.T) {
		req := ImportRow{ColumnTitle: "x", ColumnType: "Question"}.Resolve(typeIDs)
		assert.Nil(t, req.TypeID)
	})

	t.Run("status and priority normalized", func(t *testing.T) {
		req := ImportRow{ColumnStatus: "In_Progress", ColumnPriority: " Urgent"}.Resolve(typeIDs)
		assert.Equal(t, StatusInProgress, req.Status)
		assert.Equal(t, PriorityUrgent, req.Priority)
	})
}
