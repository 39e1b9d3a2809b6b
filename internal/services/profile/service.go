package profile

import (
	"context"
	"strings"

	"github.com/thenoetrevino/taskdeck/internal/api"
	"github.com/thenoetrevino/taskdeck/internal/models"
	"github.com/thenoetrevino/taskdeck/internal/services/mutation"
	"github.com/thenoetrevino/taskdeck/internal/session"
	"github.com/thenoetrevino/taskdeck/internal/state"
	"github.com/thenoetrevino/taskdeck/internal/types"
)

const entity = "client"

// Backend is the subset of the remote adapter used for account operations
type Backend interface {
	Login(ctx context.Context, email, password string) (api.AuthResult, error)
	SignUp(ctx context.Context, req api.SignUpRequest) (api.AuthResult, error)
	Logout(ctx context.Context) error
	UpdateClientField(ctx context.Context, id types.ClientID, field models.ClientField, value string) (models.Client, error)
	ChangePassword(ctx context.Context, id types.ClientID, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, id types.ClientID) error
}

// Session is where the signed-in user is persisted
type Session interface {
	Client() (models.Client, bool)
	SignIn(ctx context.Context, client models.Client, token string) error
	UpdateUser(ctx context.Context, client models.Client) error
	SignOut(ctx context.Context) error
}

// Service manages the signed-in client's account
type Service interface {
	Client() (models.Client, bool)
	Login(ctx context.Context, email, password string) (models.Client, error)
	SignUp(ctx context.Context, req api.SignUpRequest) (models.Client, error)
	Logout(ctx context.Context) error
	UpdateField(ctx context.Context, field models.ClientField, value string) (models.Client, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error
	DeleteAccount(ctx context.Context) error
	Subscribe() <-chan struct{}
	Unsubscribe(ch <-chan struct{})
}

type service struct {
	backend Backend
	session Session
	runner  *mutation.Runner
	client  *state.Container[models.Client]
}

// NewService creates the account coordinator, seeded from sess
func NewService(backend Backend, sess Session, runner *mutation.Runner) Service {
	if runner == nil {
		runner = mutation.NewRunner()
	}
	current, _ := sess.Client()
	return &service{
		backend: backend,
		session: sess,
		runner:  runner,
		client:  state.New(current, nil),
	}
}

func (s *service) Client() (models.Client, bool) {
	c := s.client.Get()
	return c, c.ID.Valid()
}

func (s *service) Subscribe() <-chan struct{} { return s.client.Subscribe() }

func (s *service) Unsubscribe(ch <-chan struct{}) { s.client.Unsubscribe(ch) }

// current returns the cached client, picking up a session restored or
// signed in after the service was built.
func (s *service) current() (models.Client, error) {
	if c, ok := s.Client(); ok {
		return c, nil
	}
	c, ok := s.session.Client()
	if !ok || !c.ID.Valid() {
		return models.Client{}, session.ErrNotSignedIn
	}
	s.client.Set(c)
	return c, nil
}

func (s *service) Login(ctx context.Context, email, password string) (models.Client, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.Client{}, ErrMissingCredentials
	}
	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.runner.Logger().Error("login failed", "email", email, "error", err)
		return models.Client{}, err
	}
	return s.signIn(ctx, res)
}

func (s *service) SignUp(ctx context.Context, req api.SignUpRequest) (models.Client, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	if req.Name == "" {
		return models.Client{}, ErrMissingName
	}
	if req.Email == "" || req.Password == "" {
		return models.Client{}, ErrMissingCredentials
	}
	if len(req.Password) < MinPasswordLength {
		return models.Client{}, ErrPasswordTooShort
	}
	res, err := s.backend.SignUp(ctx, req)
	if err != nil {
		s.runner.Logger().Error("sign up failed", "email", req.Email, "error", err)
		return models.Client{}, err
	}
	return s.signIn(ctx, res)
}

func (s *service) signIn(ctx context.Context, res api.AuthResult) (models.Client, error) {
	if err := s.session.SignIn(ctx, res.Client, res.Token); err != nil {
		return models.Client{}, err
	}
	s.client.Set(res.Client)
	return res.Client, nil
}

// Logout tells the backend and always clears the local session, even when
// the backend call fails.
func (s *service) Logout(ctx context.Context) error {
	if err := s.backend.Logout(ctx); err != nil {
		s.runner.Logger().Warn("backend logout failed", "error", err)
	}
	s.client.Set(models.Client{})
	return s.session.SignOut(ctx)
}

// UpdateField shows the new value immediately. A backend failure restores
// the previous value and is returned.
func (s *service) UpdateField(ctx context.Context, field models.ClientField, value string) (models.Client, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return models.Client{}, ErrEmptyValue
	}
	cur, err := s.current()
	if err != nil {
		return models.Client{}, err
	}
	if cur.Get(field) == value {
		return cur, nil
	}

	var result models.Client
	err = s.runner.Do(ctx, entity, "update_"+string(field), cur.ID.String(), func(ctx context.Context) error {
		prior := s.client.Get()
		s.client.Set(prior.With(field, value))

		updated, err := s.backend.UpdateClientField(ctx, prior.ID, field, value)
		if err != nil {
			s.client.Update(func(c models.Client) models.Client {
				return c.With(field, prior.Get(field))
			})
			return err
		}
		s.client.Set(updated)
		if err := s.session.UpdateUser(ctx, updated); err != nil {
			s.runner.Logger().Warn("persisting profile failed", "client_id", updated.ID, "error", err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return models.Client{}, err
	}
	return result, nil
}

func (s *service) ChangePassword(ctx context.Context, oldPassword, newPassword, confirm string) error {
	if newPassword == "" || confirm == "" {
		return ErrMissingPassword
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	cur, err := s.current()
	if err != nil {
		return err
	}
	return s.runner.Do(ctx, entity, "change_password", cur.ID.String(), func(ctx context.Context) error {
		return s.backend.ChangePassword(ctx, cur.ID, oldPassword, newPassword)
	})
}

// DeleteAccount removes the account and signs out.
func (s *service) DeleteAccount(ctx context.Context) error {
	cur, err := s.current()
	if err != nil {
		return err
	}
	err = s.runner.Do(ctx, entity, "delete", cur.ID.String(), func(ctx context.Context) error {
		return s.backend.DeleteAccount(ctx, cur.ID)
	})
	if err != nil {
		return err
	}
	s.client.Set(models.Client{})
	return s.session.SignOut(ctx)
}
