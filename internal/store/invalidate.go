package store

import (
	"context"
	"sync"

	"github.com/alexanderramin/taskflow/internal/domain"
)

// Mutation names a successful write whose effects readers may want to see.
type Mutation string

const (
	ProjectCreated     Mutation = "project_created"
	TaskCreated        Mutation = "task_created"
	MemberInvited      Mutation = "member_invited"
	MemberUpdated      Mutation = "member_updated"
	MemberRemoved      Mutation = "member_removed"
	InviteAccepted     Mutation = "invite_accepted"
	TeamAddedToProject Mutation = "team_added_to_project"
)

var invalidations = map[Mutation][]ResourceName{
	ProjectCreated:     {Projects},
	TaskCreated:        {Tasks, TaskCounts},
	MemberInvited:      {TeamMembers},
	MemberUpdated:      {TeamMembers},
	MemberRemoved:      {TeamMembers},
	InviteAccepted:     {TeamMembers},
	TeamAddedToProject: {ProjectTeam, ProjectDetail},
}

// Invalidates returns the resources refreshed after m.
func Invalidates(m Mutation) []ResourceName {
	return append([]ResourceName(nil), invalidations[m]...)
}

// Invalidate refreshes every resource mapped to m concurrently and waits for
// them to settle. id is passed to per-id resources.
func (s *Store) Invalidate(ctx context.Context, m Mutation, id domain.ID) {
	names := invalidations[m]
	var wg sync.WaitGroup
	for _, name := range names {
		wg.Add(1)
		go func(name ResourceName) {
			defer wg.Done()
			_ = s.Refresh(ctx, name, id)
		}(name)
	}
	wg.Wait()
}
