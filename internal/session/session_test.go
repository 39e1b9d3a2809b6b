package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/models"
)

var now = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *database.KV {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.NewKV(db)
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp.Unix()})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func assertCleared(t *testing.T, store *database.KV) {
	t.Helper()
	ctx := context.Background()
	_, err := store.Get(ctx, KeyClient)
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
	_, err = store.Get(ctx, KeyToken)
	assert.ErrorIs(t, err, database.ErrKeyNotFound)
}

func TestSignInThenLoad(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	client := models.Client{ID: 4, Name: "Ann", Email: "ann@example.com"}

	s := New(store, WithClock(func() time.Time { return now }))
	require.NoError(t, s.SignIn(ctx, client, "opaque-token"))

	restored := New(store, WithClock(func() time.Time { return now }))
	require.NoError(t, restored.Load(ctx))

	got, ok := restored.Client()
	require.True(t, ok)
	assert.Equal(t, client, got)
	assert.Equal(t, "opaque-token", restored.Token())
}

func TestLoad_Empty(t *testing.T) {
	s := New(newStore(t))
	require.NoError(t, s.Load(context.Background()))
	assert.False(t, s.SignedIn())
	assert.Empty(t, s.Token())

	_, err := s.RequireClient()
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestLoad_UnparseableClearsBothKeys(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetMany(ctx, map[string]string{KeyClient: "{not json", KeyToken: `"tok"`}))

	s := New(store)
	require.NoError(t, s.Load(ctx))

	assert.False(t, s.SignedIn())
	assertCleared(t, store)
}

func TestLoad_UnparseableTokenClearsBothKeys(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.SetMany(ctx, map[string]string{KeyClient: `{"clientId":1}`, KeyToken: "tok-without-quotes"}))

	s := New(store)
	require.NoError(t, s.Load(ctx))

	assert.False(t, s.SignedIn())
	assertCleared(t, store)
}

func TestLoad_ExpiredJWTClearsBothKeys(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	client := models.Client{ID: 4, Name: "Ann"}

	require.NoError(t, New(store).SignIn(ctx, client, signedJWT(t, now.Add(-time.Hour))))

	s := New(store, WithClock(func() time.Time { return now }))
	require.NoError(t, s.Load(ctx))

	assert.False(t, s.SignedIn())
	assertCleared(t, store)
}

func TestLoad_ValidJWT(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	token := signedJWT(t, now.Add(time.Hour))
	require.NoError(t, New(store).SignIn(ctx, models.Client{ID: 4}, token))

	s := New(store, WithClock(func() time.Time { return now }))
	require.NoError(t, s.Load(ctx))

	assert.True(t, s.SignedIn())
	assert.Equal(t, token, s.Token())
}

func TestUpdateUserAndSignOut(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	s := New(store)

	assert.ErrorIs(t, s.UpdateUser(ctx, models.Client{ID: 1}), ErrNotSignedIn)

	require.NoError(t, s.SignIn(ctx, models.Client{ID: 1, Name: "Ann"}, "tok"))
	require.NoError(t, s.UpdateUser(ctx, models.Client{ID: 1, Name: "Anna"}))
	got, _ := s.Client()
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, "tok", s.Token())

	require.NoError(t, s.SignOut(ctx))
	assert.False(t, s.SignedIn())
	assertCleared(t, store)
}
