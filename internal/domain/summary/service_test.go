package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type summarizerFunc func(ctx context.Context, title, description string) (string, error)

func (f summarizerFunc) Summarize(ctx context.Context, title, description string) (string, error) {
	return f(ctx, title, description)
}

func TestService_Generate(t *testing.T) {
	desc := "steps to reproduce"

	var gotTitle, gotDesc string
	svc := NewService(summarizerFunc(func(_ context.Context, title, description string) (string, error) {
		gotTitle, gotDesc = title, description
		return "  Login page crashes on submit.  ", nil
	}), slog.Default())

	text, err := svc.Generate(context.Background(), "Login broken", &desc)
	require.NoError(t, err)
	assert.Equal(t, "Login page crashes on submit.", text)
	assert.Equal(t, "Login broken", gotTitle)
	assert.Equal(t, desc, gotDesc)
}

func TestService_Generate_NoDescription(t *testing.T) {
	var gotDesc = "unset"
	svc := NewService(summarizerFunc(func(_ context.Context, _, description string) (string, error) {
		gotDesc = description
		return "ok", nil
	}), slog.Default())

	_, err := svc.Generate(context.Background(), "title", nil)
	require.NoError(t, err)
	assert.Equal(t, "", gotDesc)
}

func TestService_Generate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		summarizer Summarizer
		wantErr    error
	}{
		{
			name:  "blank title",
			title: "   ",
			summarizer: summarizerFunc(func(context.Context, string, string) (string, error) {
				return "never", nil
			}),
			wantErr: ErrInvalidInput,
		},
		{
			name:  "summarizer failure",
			title: "x",
			summarizer: summarizerFunc(func(context.Context, string, string) (string, error) {
				return "", errors.New("502 bad gateway")
			}),
			wantErr: ErrUnavailable,
		},
		{
			name:  "empty summary",
			title: "x",
			summarizer: summarizerFunc(func(context.Context, string, string) (string, error) {
				return " \n", nil
			}),
			wantErr: ErrUnavailable,
		},
		{
			name:       "not configured",
			title:      "x",
			summarizer: nil,
			wantErr:    ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.summarizer, slog.Default())
			_, err := svc.Generate(context.Background(), tt.title, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
