package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/exp/slog"

	"querytrack/internal/app/server/api/http/middleware/auth"
	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/report"
)

type MockQueries struct {
	mock.Mock
}

func (m *MockQueries) List(ctx context.Context, userID string) ([]query.Query, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]query.Query), args.Error(1)
}

func (m *MockQueries) Create(ctx context.Context, userID string, req query.CreateRequest) (*query.Query, error) {
	panic("not used")
}

func (m *MockQueries) Update(ctx context.Context, userID, id string, req query.UpdateRequest) (*query.Query, error) {
	panic("not used")
}

func (m *MockQueries) Delete(ctx context.Context, userID, id string) error {
	panic("not used")
}

func (m *MockQueries) Import(ctx context.Context, userID string, rows []query.ImportRow) (int, error) {
	panic("not used")
}

type MockTypes struct {
	mock.Mock
}

func (m *MockTypes) List(ctx context.Context, userID string) ([]qtype.Type, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]qtype.Type), args.Error(1)
}

func (m *MockTypes) Create(ctx context.Context, userID, name, color string) (*qtype.Type, error) {
	panic("not used")
}

func (m *MockTypes) Delete(ctx context.Context, userID, id string) error {
	panic("not used")
}

func ptr[T any](v T) *T { return &v }

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func setup(t *testing.T) humatest.TestAPI {
	t.Helper()

	queries := new(MockQueries)
	queries.On("List", mock.Anything, "u-1").Return([]query.Query{
		{ID: "q-1", Title: "Login broken", Status: query.StatusPending, Priority: query.PriorityHigh,
			TypeID: ptr("t-1"), Type: &query.TypeRef{Name: "Bug"}, CreatedAt: at("2024-01-05T10:00:00Z")},
		{ID: "q-2", Title: "Dark mode", Status: query.StatusResolved, Priority: query.PriorityLow,
			TypeID: ptr("t-2"), CreatedAt: at("2024-01-05T23:30:00Z")},
		{ID: "q-3", Title: "Question", Status: query.StatusPending, Priority: query.PriorityMedium,
			CreatedAt: at("2024-01-04T08:00:00Z")},
	}, nil)

	types := new(MockTypes)
	types.On("List", mock.Anything, "u-1").Return([]qtype.Type{
		{ID: "t-1", Name: "Bug", Color: "#EF4444"},
		{ID: "t-2", Name: "Feature", Color: "#3B82F6"},
	}, nil)

	withUser := huma.Middlewares{func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithUserID(ctx.Context(), "u-1")))
	}}

	h := NewHandler(queries, types, slog.Default(), withUser)
	h.now = func() time.Time { return at("2024-01-06T12:00:00Z") }

	_, api := humatest.New(t)
	h.SetupRoutes(api)
	return api
}

func TestHandler_stats(t *testing.T) {
	api := setup(t)

	resp := api.Get("/api/stats")
	require.Equal(t, http.StatusOK, resp.Code)

	var got []report.TypeCount
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, []report.TypeCount{
		{TypeID: "t-1", Name: "Bug", Color: "#EF4444", Count: 1},
		{TypeID: "t-2", Name: "Feature", Color: "#3B82F6", Count: 1},
	}, got)
}

func TestHandler_export_CSV(t *testing.T) {
	api := setup(t)

	resp := api.Get("/api/export?format=csv&status=pending")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=queries-2024-01-06.csv", resp.Header().Get("Content-Disposition"))

	want := "Title,Description,Type,Status,Priority,Created\n" +
		`"Login broken","","Bug","pending","high","2024-01-05"` + "\n" +
		`"Question","","","pending","medium","2024-01-04"`
	assert.Equal(t, want, resp.Body.String())
}

func TestHandler_export_XLSX(t *testing.T) {
	api := setup(t)

	resp := api.Get("/api/export?format=xlsx&search=dark")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "attachment; filename=queries-2024-01-06.xlsx", resp.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Dark mode", rows[1][0])
	assert.Equal(t, "Feature", rows[1][2])
}

func TestHandler_summary_JSON(t *testing.T) {
	api := setup(t)

	resp := api.Get("/api/reports/summary")
	require.Equal(t, http.StatusOK, resp.Code)

	var got report.Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, []string{"2024-01-04", "2024-01-05"}, got.Dates)
	assert.Equal(t, []string{"Bug", "Feature", report.Untyped}, got.Types)
	assert.Equal(t, 2, got.RowTotals["2024-01-05"])
	assert.Equal(t, 3, got.GrandTotal)
}

func TestHandler_summary_TimeZone(t *testing.T) {
	api := setup(t)

	// 23:30 UTC 5 января - это уже 6 января в Москве.
	resp := api.Get("/api/reports/summary?tz=Europe/Moscow")
	require.Equal(t, http.StatusOK, resp.Code)

	var got report.Summary
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, []string{"2024-01-04", "2024-01-05", "2024-01-06"}, got.Dates)

	resp = api.Get("/api/reports/summary?tz=Mars/Olympus")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestHandler_summary_HTML(t *testing.T) {
	api := setup(t)

	resp := api.Get("/api/reports/summary?format=html")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header().Get("Content-Type"))
	assert.Equal(t, "inline; filename=query-summary-2024-01-06.html", resp.Header().Get("Content-Disposition"))
	assert.Contains(t, resp.Body.String(), "window.print()")
	assert.Contains(t, resp.Body.String(), "Generated 2024-01-06 12:00")
}

func TestHandler_summary_XLSX(t *testing.T) {
	api := setup(t)

	resp := api.Get("/api/reports/summary?format=xlsx")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "attachment; filename=query-summary-2024-01-06.xlsx", resp.Header().Get("Content-Disposition"))

	_, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
}

func TestHandler_Unauthorized(t *testing.T) {
	h := NewHandler(new(MockQueries), new(MockTypes), slog.Default(), nil)

	_, err := h.stats(context.Background(), &struct{}{})

	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.GetStatus())
}
