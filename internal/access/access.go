// Package access holds the authorization predicates consulted by every
// service before a mutation or cross-user read. The predicates are
// pure: callers resolve any membership/sharing facts from the store
// and pass them in, which keeps the rules testable in isolation.
package access

import (
	"studynotes-be/internal/entity"

	"github.com/google/uuid"
)

type Verifier struct{}

func NewVerifier() *Verifier {
	return &Verifier{}
}

// OwnsResource is the base ownership check: true iff the resource's
// owning user is the caller.
func (v *Verifier) OwnsResource(ownerId, userId uuid.UUID) bool {
	return ownerId == userId
}

// CanReadNote: owner, public note, or shared into a group the user
// belongs to. sharedWithUser is the precomputed group-sharing fact for
// (note, user).
func (v *Verifier) CanReadNote(userId uuid.UUID, note *entity.Note, sharedWithUser bool) bool {
	if note == nil {
		return false
	}
	if note.UserId == userId {
		return true
	}
	if note.IsPublic {
		return true
	}
	return sharedWithUser
}

// CanManageGroup: only the owner may rename, delete, change privacy,
// or add/remove arbitrary members.
func (v *Verifier) CanManageGroup(userId uuid.UUID, group *entity.Group) bool {
	if group == nil {
		return false
	}
	return group.OwnerId == userId
}

// CanRemoveMember: the owner may remove anyone; a member may remove
// only themselves. The owner's own membership row is not removable,
// the group must be deleted instead.
func (v *Verifier) CanRemoveMember(actorId, targetId uuid.UUID, group *entity.Group) bool {
	if group == nil {
		return false
	}
	if group.OwnerId == targetId {
		return false
	}
	if group.OwnerId == actorId {
		return true
	}
	return actorId == targetId
}
