package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableTeammates_HidesMembersAlreadyOnProject(t *testing.T) {
	members := []TeamMember{
		{UUID: "u-1", FirstName: "Ada"},
		{UUID: "u-2", FirstName: "Grace"},
		{UUID: "u-3", FirstName: "Linus"},
	}
	p := &Project{Teammates: []TeamMember{{UUID: "u-2"}}}

	got := AvailableTeammates(members, p)
	assert.Equal(t, []ID{"u-1", "u-3"}, []ID{got[0].UUID, got[1].UUID})
	assert.Len(t, got, 2)

	assert.Len(t, AvailableTeammates(members, nil), 3)
	assert.Equal(t, []ID{"u-2"}, p.TeammateIDs())
}
