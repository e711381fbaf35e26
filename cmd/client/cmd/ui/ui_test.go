package ui

import (
	"bufio"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querytrack/internal/app/client"
	"querytrack/internal/domain/query"
)

func TestPaint_EveryValueHasColor(t *testing.T) {
	for _, s := range query.Statuses() {
		_, ok := palette[s.Style().Color]
		assert.True(t, ok, "status %s", s)
	}
	for _, p := range query.Priorities() {
		_, ok := palette[p.Style().Color]
		assert.True(t, ok, "priority %s", p)
	}
}

func TestStatus_Labels(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	assert.Equal(t, "in progress", Status(query.StatusInProgress))
	assert.Equal(t, "urgent", Priority(query.PriorityUrgent))
	assert.Equal(t, "mystery", Status("mystery"))
}

func TestNotify(t *testing.T) {
	assert.Contains(t, Notify(client.ErrUnauthenticated), "auth login")
	assert.Contains(t, Notify(fmt.Errorf("%w: title is required", client.ErrValidation)), "title is required")
	assert.Contains(t, Notify(fmt.Errorf("%w: status 503", client.ErrUnavailable)), "Сервер недоступен")
	assert.Equal(t, "boom", Notify(fmt.Errorf("boom")))
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("alice\r\nlast"))

	line, err := readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "alice", line)

	line, err = readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = readLine(r)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Привет ...", Truncate("Привет мир и всем", 10))
}
