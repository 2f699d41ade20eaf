package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/route"
	"github.com/alexanderramin/taskflow/internal/store"
)

const teamsPath = "/teams"

type teamService struct {
	base
	backend TeamBackend
	users   UserSource
}

func NewTeamService(
	backend TeamBackend,
	users UserSource,
	invalidator Invalidator,
	notifier Notifier,
	observers ...UseCaseObserver,
) TeamService {
	return &teamService{
		base:    newBase(notifier, invalidator, observers),
		backend: backend,
		users:   users,
	}
}

func (s *teamService) refresh(ctx context.Context, m store.Mutation) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, m, "")
	}
}

func (s *teamService) Invite(ctx context.Context, email string) (err error) {
	defer s.observe(ctx, "team-invite", time.Now().UTC(), nil, &err)

	email = strings.TrimSpace(email)
	if email == "" {
		return s.reject("Email is required")
	}
	env, err := s.backend.InviteMember(ctx, email)
	if err = s.settle(env, err, messages{failure: "Unable to send invitation.", success: "Invitation sent."}); err != nil {
		return err
	}
	s.refresh(ctx, store.MemberInvited)
	return nil
}

func (s *teamService) Update(ctx context.Context, memberID domain.ID, upd api.MemberUpdate) (err error) {
	defer s.observe(ctx, "team-update", time.Now().UTC(), map[string]any{"member": string(memberID)}, &err)

	env, err := s.backend.UpdateMember(ctx, memberID, upd)
	err = s.settle(env, err, messages{
		failure:      "Unable to update team member.",
		success:      "Team member updated successfully.",
		fixedSuccess: true,
	})
	if err != nil {
		return err
	}
	s.refresh(ctx, store.MemberUpdated)
	return nil
}

func (s *teamService) Remove(ctx context.Context, memberID domain.ID) (err error) {
	defer s.observe(ctx, "team-remove", time.Now().UTC(), map[string]any{"member": string(memberID)}, &err)

	env, err := s.backend.RemoveMember(ctx, memberID)
	err = s.settle(env, err, messages{
		failure:      "Unable to remove team member.",
		success:      "Team member removed successfully.",
		fixedSuccess: true,
	})
	if err != nil {
		return err
	}
	s.refresh(ctx, store.MemberRemoved)
	return nil
}

// GetInvite looks up a pending invitation by token.
func (s *teamService) GetInvite(ctx context.Context, token string) (invite *domain.Invite, err error) {
	defer s.observe(ctx, "team-get-invite", time.Now().UTC(), nil, &err)

	if blank(token) {
		return nil, s.reject("Error: Invalid token.")
	}
	env, err := s.backend.GetInvite(ctx, token)
	if err != nil {
		if api.IsCanceled(err) {
			return nil, err
		}
		if api.StatusCode(err) == http.StatusBadRequest {
			s.notifier.Error("Error: Invalid token or bad request.")
		} else {
			s.notifier.Error("Error: Failed to load invite.")
		}
		return nil, err
	}
	if !env.OK() {
		s.notifier.Error("Error: " + env.Message)
		return nil, env.Err()
	}
	inv, err := api.Decode[domain.Invite](env)
	if err != nil {
		s.notifier.Error("Error: Failed to load invite.")
		return nil, err
	}
	return &inv, nil
}

// Accept joins the team behind token. An anonymous user is sent to login.
func (s *teamService) Accept(ctx context.Context, token string) (dest string, err error) {
	defer s.observe(ctx, "team-accept-invite", time.Now().UTC(), nil, &err)

	if s.users == nil || s.users.CurrentUser() == nil {
		s.notifier.Info("Please log in to join the team.")
		return route.LoginPath, route.ErrLoginRequired
	}
	if blank(token) {
		return "", s.reject("Invalid invitation token.")
	}
	env, err := s.backend.AcceptInvite(ctx, token)
	err = s.settle(env, err, messages{
		failure:      "Error: Unable to join the team.",
		prefix:       "Error: ",
		success:      "Success: You've joined the team!",
		fixedSuccess: true,
	})
	if err != nil {
		return "", err
	}
	s.refresh(ctx, store.InviteAccepted)
	return teamsPath, nil
}

func (s *teamService) Decline(ctx context.Context, token string) (dest string, err error) {
	defer s.observe(ctx, "team-decline-invite", time.Now().UTC(), nil, &err)

	if blank(token) {
		return "", s.reject("Invalid invitation token.")
	}
	env, err := s.backend.DeclineInvite(ctx, token)
	err = s.settle(env, err, messages{
		failure:      "Error: Unable to decline the invitation.",
		prefix:       "Error: ",
		success:      "You have declined the invitation.",
		fixedSuccess: true,
	})
	if err != nil {
		return "", err
	}
	return teamsPath, nil
}
