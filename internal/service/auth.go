package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/events"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/internal/transport"
)

type AuthService struct {
	API    *apiclient.Client
	Events events.Publisher
}

func (s *AuthService) Login(ctx context.Context, store *session.Store, form transport.LoginForm) (*session.Session, error) {
	email := strings.TrimSpace(form.Email)
	if email == "" || form.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	resp, err := s.API.Login(ctx, email, form.Password)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.User.ID == "" {
		return nil, fmt.Errorf("login response without token or user id")
	}

	sess := &session.Session{
		ID:       resp.User.ID,
		Username: resp.User.Username,
		Role:     resp.User.Role,
		Token:    resp.Token,
	}
	if err := store.Renew(); err != nil {
		return nil, err
	}
	if err := store.SetSession(sess); err != nil {
		return nil, err
	}
	publish(ctx, s.Events, events.New(events.TypeUserLoggedIn, sess.ID))
	return sess, nil
}

func (s *AuthService) Register(ctx context.Context, form transport.RegisterForm) error {
	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)
	switch {
	case username == "":
		return fmt.Errorf("username is required: %w", ErrValidation)
	case len(form.Password) < 6:
		return fmt.Errorf("password must be at least 6 characters: %w", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email address: %w", ErrValidation)
	}
	return s.API.Register(ctx, username, email, form.Password)
}

func (s *AuthService) Logout(ctx context.Context, store *session.Store) error {
	sess, _ := store.Session()
	if err := store.Logout(); err != nil {
		return err
	}
	if sess != nil {
		publish(ctx, s.Events, events.New(events.TypeUserLoggedOut, sess.ID))
	}
	return nil
}
