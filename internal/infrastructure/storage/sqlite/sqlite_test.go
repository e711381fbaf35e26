package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"querytrack/internal/domain/qtype"
	"querytrack/internal/domain/query"
	"querytrack/internal/domain/session"
	"querytrack/internal/domain/user"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func createUser(t *testing.T, s *Storage, login string) string {
	t.Helper()

	u := &user.User{ID: uuid.NewString(), Login: login, Password: "hash", CreatedAt: time.Now()}
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u.ID
}

func createType(t *testing.T, s *Storage, userID, name string) string {
	t.Helper()

	tp := &qtype.Type{ID: uuid.NewString(), UserID: userID, Name: name, Color: qtype.DefaultColor, CreatedAt: time.Now()}
	require.NoError(t, s.Types().Create(context.Background(), tp))
	return tp.ID
}

func newQuery(userID, title string, created time.Time) *query.Query {
	return &query.Query{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Status:    query.StatusPending,
		Priority:  query.PriorityMedium,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestUserRepository(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id := createUser(t, s, "alice")

	u, err := s.Users().FindByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "hash", u.Password)

	u, err = s.Users().FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Login)

	_, err = s.Users().FindByLogin(ctx, "bob")
	assert.ErrorIs(t, err, user.ErrNotFound)

	err = s.Users().Create(ctx, &user.User{ID: uuid.NewString(), Login: "alice", Password: "x", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, user.ErrLoginTaken)
}

func TestSessionRepository(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := createUser(t, s, "alice")

	require.NoError(t, s.Sessions().Create(ctx, userID, "live", time.Now().Add(time.Hour)))
	require.NoError(t, s.Sessions().Create(ctx, userID, "stale", time.Now().Add(-time.Minute)))

	got, err := s.Sessions().Validate(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	_, err = s.Sessions().Validate(ctx, "stale")
	assert.ErrorIs(t, err, session.ErrInvalidSession)

	_, err = s.Sessions().Validate(ctx, "unknown")
	assert.ErrorIs(t, err, session.ErrInvalidSession)

	require.NoError(t, s.Sessions().Delete(ctx, "live"))
	_, err = s.Sessions().Validate(ctx, "live")
	assert.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestTypeRepository(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	createType(t, s, alice, "Question")
	bugID := createType(t, s, alice, "Bug")
	createType(t, s, bob, "Other")

	types, err := s.Types().List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Bug", types[0].Name)
	assert.Equal(t, "Question", types[1].Name)

	_, err = s.Types().Get(ctx, bob, bugID)
	assert.ErrorIs(t, err, qtype.ErrNotFound)

	assert.ErrorIs(t, s.Types().Delete(ctx, bob, bugID), qtype.ErrNotFound)
	require.NoError(t, s.Types().Delete(ctx, alice, bugID))
	assert.ErrorIs(t, s.Types().Delete(ctx, alice, bugID), qtype.ErrNotFound)
}

func TestQueryRepository_CRUD(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice")
	bugID := createType(t, s, alice, "Bug")

	base := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)

	older := newQuery(alice, "older", base)
	newer := newQuery(alice, "newer", base.Add(time.Hour))
	desc := "details"
	newer.Description = &desc
	newer.TypeID = &bugID

	require.NoError(t, s.Queries().Create(ctx, older))
	require.NoError(t, s.Queries().Create(ctx, newer))

	list, err := s.Queries().List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title)
	assert.Equal(t, "older", list[1].Title)

	require.NotNil(t, list[0].Type)
	assert.Equal(t, "Bug", list[0].Type.Name)
	assert.Equal(t, qtype.DefaultColor, list[0].Type.Color)
	require.NotNil(t, list[0].Description)
	assert.Equal(t, "details", *list[0].Description)
	assert.True(t, base.Add(time.Hour).Equal(list[0].CreatedAt))
	assert.Nil(t, list[1].Type)

	resolved := base.Add(2 * time.Hour)
	summary := "short"
	older.Status = query.StatusResolved
	older.ResolvedAt = &resolved
	older.AISummary = &summary
	older.UpdatedAt = resolved
	require.NoError(t, s.Queries().Update(ctx, older))

	got, err := s.Queries().Get(ctx, alice, older.ID)
	require.NoError(t, err)
	assert.Equal(t, query.StatusResolved, got.Status)
	require.NotNil(t, got.ResolvedAt)
	assert.True(t, resolved.Equal(*got.ResolvedAt))
	require.NotNil(t, got.AISummary)
	assert.Equal(t, "short", *got.AISummary)

	require.NoError(t, s.Queries().Delete(ctx, alice, older.ID))
	_, err = s.Queries().Get(ctx, alice, older.ID)
	assert.ErrorIs(t, err, query.ErrNotFound)
	assert.ErrorIs(t, s.Queries().Delete(ctx, alice, older.ID), query.ErrNotFound)
	assert.ErrorIs(t, s.Queries().Update(ctx, older), query.ErrNotFound)
}

func TestQueryRepository_ScopedByUser(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	q := newQuery(alice, "private", time.Now())
	require.NoError(t, s.Queries().Create(ctx, q))

	list, err := s.Queries().List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = s.Queries().Get(ctx, bob, q.ID)
	assert.ErrorIs(t, err, query.ErrNotFound)
	assert.ErrorIs(t, s.Queries().Delete(ctx, bob, q.ID), query.ErrNotFound)
}

func TestQueryRepository_DeletedTypeLeavesQueryUntyped(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice")
	bugID := createType(t, s, alice, "Bug")

	q := newQuery(alice, "typed", time.Now())
	q.TypeID = &bugID
	require.NoError(t, s.Queries().Create(ctx, q))

	require.NoError(t, s.Types().Delete(ctx, alice, bugID))

	got, err := s.Queries().Get(ctx, alice, q.ID)
	require.NoError(t, err)
	assert.Nil(t, got.TypeID)
	assert.Nil(t, got.Type)
}

func TestQueryRepository_CreateBatchIsAtomic(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice")

	a := newQuery(alice, "a", time.Now())
	b := newQuery(alice, "b", time.Now())
	require.NoError(t, s.Queries().CreateBatch(ctx, []*query.Query{a, b}))

	list, err := s.Queries().List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// повтор id во второй строке ломает всю пачку
	c := newQuery(alice, "c", time.Now())
	dup := newQuery(alice, "dup", time.Now())
	dup.ID = a.ID
	err = s.Queries().CreateBatch(ctx, []*query.Query{c, dup})
	require.Error(t, err)

	list, err = s.Queries().List(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
