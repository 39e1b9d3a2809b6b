package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/database"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/session"
	"github.com/thenoetrevino/taskdeck/internal/testutil"
)

type fixture struct {
	svc     Service
	backend *testutil.Backend
	session *session.Session
	client  models.Client
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	db, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.New(database.NewKV(db))
}

// setup signs Ann in through the service so session and backend agree.
func setup(t *testing.T) fixture {
	t.Helper()
	backend := testutil.NewBackend(t)
	backend.AddClient("Ann", "ann@example.com", "555-0100", "password1")
	sess := newSession(t)
	adapter := api.NewClient(backend.URL, api.WithTokenSource(api.TokenFunc(sess.Token)))
	svc := NewService(adapter, sess, mutation.NewRunner())

	client, err := svc.Login(context.Background(), "ann@example.com", "password1")
	require.NoError(t, err)
	return fixture{svc: svc, backend: backend, session: sess, client: client}
}

func TestLogin(t *testing.T) {
	f := setup(t)

	assert.Equal(t, "Ann", f.client.Name)
	got, ok := f.session.Client()
	require.True(t, ok)
	assert.Equal(t, f.client, got)
	assert.NotEmpty(t, f.session.Token())
}

func TestLogin_BadCredentials(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.AddClient("Ann", "ann@example.com", "", "password1")
	sess := newSession(t)
	svc := NewService(api.NewClient(backend.URL), sess, nil)

	_, err := svc.Login(context.Background(), "ann@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.True(t, api.IsUnauthorized(err))
	assert.False(t, sess.SignedIn())

	_, err = svc.Login(context.Background(), " ", "x")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSignUp(t *testing.T) {
	backend := testutil.NewBackend(t)
	sess := newSession(t)
	svc := NewService(api.NewClient(backend.URL), sess, nil)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, api.SignUpRequest{Name: "Bo", Email: "bo@example.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	_, err = svc.SignUp(ctx, api.SignUpRequest{Email: "bo@example.com", Password: "password1"})
	assert.ErrorIs(t, err, ErrMissingName)

	client, err := svc.SignUp(ctx, api.SignUpRequest{Name: " Bo ", Email: "bo@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "Bo", client.Name)
	assert.True(t, sess.SignedIn())

	_, err = svc.SignUp(ctx, api.SignUpRequest{Name: "Bo", Email: "bo@example.com", Password: "password1"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestUpdateField(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	updated, err := f.svc.UpdateField(ctx, models.FieldName, " Annie ")
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)

	cached, _ := f.session.Client()
	assert.Equal(t, "Annie", cached.Name)
	stored, _ := f.backend.Client(f.client.ID)
	assert.Equal(t, "Annie", stored.Name)
}

func TestUpdateField_UnchangedMakesNoCall(t *testing.T) {
	f := setup(t)

	got, err := f.svc.UpdateField(context.Background(), models.FieldEmail, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, f.client, got)
	assert.Zero(t, f.backend.Calls("/client/updateClientEmail/:id"))
}

func TestUpdateField_Empty(t *testing.T) {
	f := setup(t)

	_, err := f.svc.UpdateField(context.Background(), models.FieldPhone, "   ")
	assert.ErrorIs(t, err, ErrEmptyValue)
	assert.Zero(t, f.backend.Calls("/client/updateClientPhoneNumber/:id"))
}

func TestUpdateField_FailureRollsBack(t *testing.T) {
	f := setup(t)
	f.backend.Fail("/client/updateClientPhoneNumber/:id", 500, `{"message":"Invalid phone"}`)

	_, err := f.svc.UpdateField(context.Background(), models.FieldPhone, "abc")
	require.Error(t, err)
	assert.Equal(t, "Invalid phone", err.Error())

	got, _ := f.svc.Client()
	assert.Equal(t, "555-0100", got.PhoneNumber)
	cached, _ := f.session.Client()
	assert.Equal(t, "555-0100", cached.PhoneNumber)
}

func TestChangePassword(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.svc.ChangePassword(ctx, "password1", "password2", "password3"), ErrPasswordMismatch)
	assert.ErrorIs(t, f.svc.ChangePassword(ctx, "password1", "", ""), ErrMissingPassword)
	assert.ErrorIs(t, f.svc.ChangePassword(ctx, "password1", "short", "short"), ErrPasswordTooShort)
	assert.Zero(t, f.backend.Calls("/client/updateClientPassword/:id"))

	err := f.svc.ChangePassword(ctx, "nope", "password2", "password2")
	require.Error(t, err)
	assert.Equal(t, "Old password is incorrect", err.Error())

	require.NoError(t, f.svc.ChangePassword(ctx, "password1", "password2", "password2"))
	_, err = f.svc.Login(ctx, "ann@example.com", "password2")
	assert.NoError(t, err)
}

func TestDeleteAccountSignsOut(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.svc.DeleteAccount(context.Background()))

	assert.False(t, f.session.SignedIn())
	_, ok := f.svc.Client()
	assert.False(t, ok)
	_, ok = f.backend.Client(f.client.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, f.svc.DeleteAccount(context.Background()), session.ErrNotSignedIn)
}

func TestLogoutClearsSessionEvenWhenBackendFails(t *testing.T) {
	f := setup(t)
	f.backend.Fail("/client/logout", 500, "")

	require.NoError(t, f.svc.Logout(context.Background()))
	assert.False(t, f.session.SignedIn())
	assert.Empty(t, f.session.Token())
}
