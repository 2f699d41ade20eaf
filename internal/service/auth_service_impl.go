package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/route"
)

type authService struct {
	base
	backend AuthBackend
	signOut SignOut
	session SessionWriter
}

func NewAuthService(
	backend AuthBackend,
	signOut SignOut,
	session SessionWriter,
	notifier Notifier,
	observers ...UseCaseObserver,
) AuthService {
	return &authService{
		base:    newBase(notifier, nil, observers),
		backend: backend,
		signOut: signOut,
		session: session,
	}
}

func (s *authService) Login(ctx context.Context, creds api.Credentials, redirect string) (dest string, err error) {
	defer s.observe(ctx, "login", time.Now().UTC(), map[string]any{"redirect": redirect}, &err)

	env, err := s.backend.Login(ctx, creds)
	if err = s.settle(env, err, messages{failure: "Unable to login."}); err != nil {
		return "", err
	}
	if err = s.storeToken(ctx, env); err != nil {
		return "", err
	}
	return route.RedirectTarget(redirect), nil
}

func (s *authService) Register(ctx context.Context, reg api.Registration, redirect string) (dest string, err error) {
	defer s.observe(ctx, "register", time.Now().UTC(), map[string]any{"redirect": redirect}, &err)

	if reg.Password != reg.ConfirmPassword {
		return "", s.reject("Passwords don't match")
	}
	env, err := s.backend.Register(ctx, reg)
	if err = s.settle(env, err, messages{failure: "Unable to register."}); err != nil {
		return "", err
	}
	if err = s.storeToken(ctx, env); err != nil {
		return "", err
	}
	return route.RedirectTarget(redirect), nil
}

func (s *authService) storeToken(ctx context.Context, env *api.Envelope) error {
	payload, err := api.Decode[api.AuthPayload](env)
	if err != nil {
		s.notifier.Error(DefaultErrorMessage)
		return err
	}
	if payload.AccessToken == "" {
		s.notifier.Error(DefaultErrorMessage)
		return fmt.Errorf("auth response without access token: %w", api.ErrInvalidResponse)
	}
	if err := s.session.Set(ctx, payload.AccessToken); err != nil {
		s.notifier.Error(DefaultErrorMessage)
		return err
	}
	return nil
}

func (s *authService) Logout(ctx context.Context) (dest string, err error) {
	defer s.observe(ctx, "logout", time.Now().UTC(), nil, &err)

	env, err := s.signOut.Logout(ctx)
	err = s.settle(env, err, messages{
		failure: "Logout failed. Please try again.",
	})
	if err != nil {
		return route.LoginPath, err
	}
	if err = s.session.Clear(ctx); err != nil {
		s.notifier.Error(DefaultErrorMessage)
		return route.LoginPath, err
	}
	msg := env.Message
	if msg == "" {
		msg = "You have been logged out successfully!"
	}
	s.notifier.Success(msg)
	return route.LoginPath, nil
}
