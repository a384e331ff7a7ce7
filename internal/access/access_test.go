package access

import (
	"testing"

	"studynotes-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanReadNote(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	tests := []struct {
		name     string
		userId   uuid.UUID
		note     *entity.Note
		shared   bool
		expected bool
	}{
		{
			name:     "owner reads own private note",
			userId:   owner,
			note:     &entity.Note{UserId: owner},
			expected: true,
		},
		{
			name:     "stranger cannot read private note",
			userId:   stranger,
			note:     &entity.Note{UserId: owner},
			expected: false,
		},
		{
			name:     "anyone reads public note",
			userId:   stranger,
			note:     &entity.Note{UserId: owner, IsPublic: true},
			expected: true,
		},
		{
			name:     "group member reads shared note",
			userId:   stranger,
			note:     &entity.Note{UserId: owner},
			shared:   true,
			expected: true,
		},
		{
			name:     "nil note is never readable",
			userId:   owner,
			note:     nil,
			shared:   true,
			expected: false,
		},
	}

	v := NewVerifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.CanReadNote(tt.userId, tt.note, tt.shared))
		})
	}
}

func TestCanManageGroup(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	group := &entity.Group{OwnerId: owner}

	v := NewVerifier()
	assert.True(t, v.CanManageGroup(owner, group))
	assert.False(t, v.CanManageGroup(member, group))
	assert.False(t, v.CanManageGroup(owner, nil))
}

func TestCanRemoveMember(t *testing.T) {
	owner := uuid.New()
	member := uuid.New()
	other := uuid.New()
	group := &entity.Group{OwnerId: owner}

	v := NewVerifier()

	// Owner removes anyone but themselves
	assert.True(t, v.CanRemoveMember(owner, member, group))
	assert.False(t, v.CanRemoveMember(owner, owner, group))

	// Member self-removal only
	assert.True(t, v.CanRemoveMember(member, member, group))
	assert.False(t, v.CanRemoveMember(member, other, group))
	assert.False(t, v.CanRemoveMember(member, owner, group))
}

func TestOwnsResource(t *testing.T) {
	owner := uuid.New()

	v := NewVerifier()
	assert.True(t, v.OwnsResource(owner, owner))
	assert.False(t, v.OwnsResource(owner, uuid.New()))
}
