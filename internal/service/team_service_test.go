package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/route"
	"github.com/alexanderramin/taskflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = &domain.User{UUID: "u-1", FirstName: "Ada", LastName: "Lovelace"}

func TestInvite_RequiresEmail(t *testing.T) {
	h := newHarness(t)

	err := h.team(ada).Invite(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, note{"error", "Email is required"}, h.notes.last(t))
	assert.Empty(t, h.fb.Calls())
}

func TestInvite_SuccessRefreshesTeam(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/teams/invite", testutil.Response{Body: map[string]any{"status": 200}})
	h.fb.On(http.MethodGet, "/teams", testutil.OK([]any{testutil.MemberFixture("Grace", "Hopper", "member")}))

	require.NoError(t, h.team(ada).Invite(context.Background(), "grace@example.com"))

	assert.Equal(t, note{"success", "Invitation sent."}, h.notes.last(t))
	assert.Equal(t, 1, h.fb.CallCount(http.MethodGet, "/teams"))
	members, _ := h.store.TeamMembers()
	assert.Len(t, members, 1)
	assert.Equal(t, "grace@example.com", h.fb.Calls()[0].Body["email"])
}

func TestInvite_FailureDoesNotRefresh(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/teams/invite", testutil.Fail(409, "Already a member"))

	err := h.team(ada).Invite(context.Background(), "grace@example.com")
	var appErr *api.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, note{"error", "Already a member"}, h.notes.last(t))
	assert.Zero(t, h.fb.CallCount(http.MethodGet, "/teams"))
}

func TestUpdateAndRemoveMember(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/teams/{memberID}", testutil.OK(map[string]any{}))
	h.fb.On(http.MethodDelete, "/teams/{memberID}", testutil.OK(map[string]any{}))
	h.fb.On(http.MethodGet, "/teams", testutil.OK([]any{}))
	svc := h.team(ada)

	require.NoError(t, svc.Update(context.Background(), "m-1", api.MemberUpdate{Alias: "gh", Role: "admin"}))
	assert.Equal(t, note{"success", "Team member updated successfully."}, h.notes.last(t))

	require.NoError(t, svc.Remove(context.Background(), "m-1"))
	assert.Equal(t, note{"success", "Team member removed successfully."}, h.notes.last(t))

	calls := h.fb.Calls()
	assert.Equal(t, "/teams/m-1", calls[0].Path)
	assert.Equal(t, "admin", calls[0].Body["role"])
	assert.Equal(t, 2, h.fb.CallCount(http.MethodGet, "/teams"))
}

func TestGetInvite(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.team(nil).GetInvite(context.Background(), "")
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, note{"error", "Error: Invalid token."}, h.notes.last(t))
		assert.Empty(t, h.fb.Calls())
	})

	t.Run("bad request", func(t *testing.T) {
		h := newHarness(t)
		h.fb.On(http.MethodGet, "/teams/invite", testutil.HTTPFail(http.StatusBadRequest, "expired"))
		_, err := h.team(nil).GetInvite(context.Background(), "abc")
		require.Error(t, err)
		assert.Equal(t, note{"error", "Error: Invalid token or bad request."}, h.notes.last(t))
	})

	t.Run("server error", func(t *testing.T) {
		h := newHarness(t)
		h.fb.On(http.MethodGet, "/teams/invite", testutil.HTTPFail(http.StatusInternalServerError, "oops"))
		_, err := h.team(nil).GetInvite(context.Background(), "abc")
		require.Error(t, err)
		assert.Equal(t, note{"error", "Error: Failed to load invite."}, h.notes.last(t))
	})

	t.Run("application failure", func(t *testing.T) {
		h := newHarness(t)
		h.fb.On(http.MethodGet, "/teams/invite", testutil.Fail(404, "Invite not found"))
		_, err := h.team(nil).GetInvite(context.Background(), "abc")
		require.Error(t, err)
		assert.Equal(t, note{"error", "Error: Invite not found"}, h.notes.last(t))
	})

	t.Run("found", func(t *testing.T) {
		h := newHarness(t)
		h.fb.On(http.MethodGet, "/teams/invite", testutil.OK(map[string]any{
			"inviter": "Grace Hopper", "team_name": "Compilers", "teammate_count": 4,
		}))
		inv, err := h.team(nil).GetInvite(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "Grace Hopper", inv.Inviter)
		assert.Equal(t, "token=abc", h.fb.Calls()[0].Query)
	})
}

func TestAccept_RequiresLogin(t *testing.T) {
	h := newHarness(t)

	dest, err := h.team(nil).Accept(context.Background(), "abc")
	assert.ErrorIs(t, err, route.ErrLoginRequired)
	assert.Equal(t, route.LoginPath, dest)
	assert.Equal(t, note{"info", "Please log in to join the team."}, h.notes.last(t))
	assert.Empty(t, h.fb.Calls())
}

func TestAccept_JoinsTeam(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/teams/accept-invite", testutil.OK(map[string]any{}))
	h.fb.On(http.MethodGet, "/teams", testutil.OK([]any{}))

	dest, err := h.team(ada).Accept(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "/teams", dest)
	assert.Equal(t, note{"success", "Success: You've joined the team!"}, h.notes.last(t))
	assert.Equal(t, "abc", h.fb.Calls()[0].Body["token"])
	assert.Equal(t, 1, h.fb.CallCount(http.MethodGet, "/teams"))
}

func TestAccept_ApplicationFailurePrefixesMessage(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/teams/accept-invite", testutil.Fail(410, "Invite expired"))

	_, err := h.team(ada).Accept(context.Background(), "abc")
	require.Error(t, err)
	assert.Equal(t, note{"error", "Error: Invite expired"}, h.notes.last(t))
}

func TestDecline(t *testing.T) {
	h := newHarness(t)
	h.fb.On(http.MethodPost, "/teams/decline-invite", testutil.OK(map[string]any{}))

	_, err := h.team(nil).Decline(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)

	dest, err := h.team(nil).Decline(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "/teams", dest)
	assert.Equal(t, note{"success", "You have declined the invitation."}, h.notes.last(t))
}
