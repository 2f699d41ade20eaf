package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up payload. ConfirmPassword is checked locally
// and never sent.
type Registration struct {
	FirstName       string `json:"fname"`
	LastName        string `json:"lname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// AuthPayload is the data returned by login and register.
type AuthPayload struct {
	AccessToken string `json:"accessToken"`
}

// MemberUpdate is the editable part of a team member.
type MemberUpdate struct {
	Alias string `json:"alias"`
	Role  string `json:"role"`
}

type emailBody struct {
	Email string `json:"email"`
}

type tokenBody struct {
	Token string `json:"token"`
}

type commentBody struct {
	ProjectID domain.ID `json:"projectId"`
	Comment   string    `json:"comment"`
}

type addTeamBody struct {
	ProjectID domain.ID `json:"projectId"`
	TeamID    domain.ID `json:"teamId"`
}

func escape(id domain.ID) string {
	return url.PathEscape(string(id))
}

// ── users ────────────────────────────────────────────────────────────────────

func (c *Client) Login(ctx context.Context, creds Credentials) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/users/login", nil, creds)
}

func (c *Client) Register(ctx context.Context, reg Registration) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/users/register", nil, reg)
}

func (c *Client) Logout(ctx context.Context) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/users/logout", nil, nil)
}

func (c *Client) CurrentUser(ctx context.Context) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/users/current", nil, nil)
}

// ── teams ────────────────────────────────────────────────────────────────────

func (c *Client) ListTeam(ctx context.Context) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/teams", nil, nil)
}

func (c *Client) InviteMember(ctx context.Context, email string) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/teams/invite", nil, emailBody{Email: email})
}

func (c *Client) GetInvite(ctx context.Context, token string) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/teams/invite", url.Values{"token": {token}}, nil)
}

func (c *Client) AcceptInvite(ctx context.Context, token string) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/teams/accept-invite", nil, tokenBody{Token: token})
}

func (c *Client) DeclineInvite(ctx context.Context, token string) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/teams/decline-invite", nil, tokenBody{Token: token})
}

func (c *Client) UpdateMember(ctx context.Context, memberID domain.ID, upd MemberUpdate) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/teams/"+escape(memberID), nil, upd)
}

func (c *Client) RemoveMember(ctx context.Context, memberID domain.ID) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, "/teams/"+escape(memberID), nil, nil)
}

// ── projects ─────────────────────────────────────────────────────────────────

func (c *Client) ListProjects(ctx context.Context) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/projects", nil, nil)
}

func (c *Client) CreateProject(ctx context.Context, draft domain.ProjectDraft) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/projects/add", nil, draft)
}

func (c *Client) GetProject(ctx context.Context, id domain.ID) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/projects/"+escape(id), nil, nil)
}

func (c *Client) ProjectTeam(ctx context.Context, projectID domain.ID) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/projects/team/"+escape(projectID), nil, nil)
}

func (c *Client) ListComments(ctx context.Context, projectID domain.ID) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/projects/s/comment", url.Values{"qid": {string(projectID)}}, nil)
}

func (c *Client) PostComment(ctx context.Context, projectID domain.ID, body string) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/projects/comment", nil, commentBody{ProjectID: projectID, Comment: body})
}

func (c *Client) AddTeamToProject(ctx context.Context, projectID, teamID domain.ID) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/projects/add-team", nil, addTeamBody{ProjectID: projectID, TeamID: teamID})
}

// ── tasks ────────────────────────────────────────────────────────────────────

func (c *Client) ListTasks(ctx context.Context) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/tasks", nil, nil)
}

func (c *Client) CreateTask(ctx context.Context, draft domain.TaskDraft) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, "/tasks/add", nil, draft)
}

func (c *Client) GetTask(ctx context.Context, id domain.ID) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/tasks/"+escape(id), nil, nil)
}

func (c *Client) TaskCounts(ctx context.Context) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, "/tasks/counts", nil, nil)
}

// Calendar fetches one month of tasks; month is 1-12.
func (c *Client) Calendar(ctx context.Context, month, year int) (*Envelope, error) {
	q := url.Values{
		"month": {strconv.Itoa(month)},
		"year":  {strconv.Itoa(year)},
	}
	return c.Do(ctx, http.MethodGet, "/tasks/t/calendar", q, nil)
}
