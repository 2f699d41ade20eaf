package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/store"
)

type projectService struct {
	base
	backend ProjectBackend
	now     func() time.Time
}

func NewProjectService(
	backend ProjectBackend,
	invalidator Invalidator,
	notifier Notifier,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		base:    newBase(notifier, invalidator, observers),
		backend: backend,
		now:     time.Now,
	}
}

func (s *projectService) Create(ctx context.Context, draft domain.ProjectDraft) (err error) {
	defer s.observe(ctx, "project-create", time.Now().UTC(), map[string]any{"name": draft.Name}, &err)

	if verr := draft.Validate(); verr != nil {
		var ve *domain.ValidationError
		if errors.As(verr, &ve) {
			return s.reject(ve.Message)
		}
		return s.reject(verr.Error())
	}
	draft.ApplyDefaults()

	env, err := s.backend.CreateProject(ctx, draft)
	if err = s.settle(env, err, messages{failure: "Unable to create project", success: "Project Created"}); err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, store.ProjectCreated, "")
	}
	return nil
}

func (s *projectService) Comments(ctx context.Context, projectID domain.ID) (comments []domain.Comment, err error) {
	defer s.observe(ctx, "project-comments", time.Now().UTC(), map[string]any{"project": string(projectID)}, &err)

	env, err := s.backend.ListComments(ctx, projectID)
	if err = s.settle(env, err, messages{transport: "Failed to fetch comments", failure: "Failed to fetch comments"}); err != nil {
		return nil, err
	}
	comments, err = api.Decode[[]domain.Comment](env)
	if err != nil {
		s.notifier.Error("Failed to fetch comments")
		return nil, err
	}
	if comments == nil {
		comments = []domain.Comment{}
	}
	return comments, nil
}

// PostComment adds a comment and returns it as the backend recorded it,
// filled in locally where the response omits fields.
func (s *projectService) PostComment(ctx context.Context, projectID domain.ID, body string) (comment *domain.Comment, err error) {
	defer s.observe(ctx, "project-post-comment", time.Now().UTC(), map[string]any{"project": string(projectID)}, &err)

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, s.reject("Please enter a comment")
	}
	env, err := s.backend.PostComment(ctx, projectID, body)
	err = s.settle(env, err, messages{
		transport: "Failed to post comment",
		failure:   "Failed to post comment",
		success:   "Comment posted successfully",
	})
	if err != nil {
		return nil, err
	}

	posted, decErr := api.Decode[domain.Comment](env)
	if decErr != nil {
		posted = domain.Comment{}
	}
	if posted.Body == "" {
		posted.Body = body
	}
	if posted.CreatedAt == "" {
		posted.CreatedAt = s.now().UTC().Format(time.RFC3339)
	}
	return &posted, nil
}

func (s *projectService) AddTeam(ctx context.Context, projectID, teamID domain.ID) (err error) {
	defer s.observe(ctx, "project-add-team", time.Now().UTC(), map[string]any{"project": string(projectID), "team": string(teamID)}, &err)

	if blank(string(teamID)) {
		return s.reject("Please select a team")
	}
	env, err := s.backend.AddTeamToProject(ctx, projectID, teamID)
	err = s.settle(env, err, messages{
		transport: "Failed to add team",
		failure:   "Failed to add team",
		success:   "Team added successfully",
	})
	if err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, store.TeamAddedToProject, projectID)
	}
	return nil
}
