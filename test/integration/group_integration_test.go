package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/apperror"
)

func TestGroupMembershipRules(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t)
	member := env.createUser(t)

	group, err := env.groupService.Create(ctx, owner.Id, &dto.CreateGroupRequest{Name: "Thermo study group"})
	require.NoError(t, err)

	t.Run("owner enrolled as admin on create", func(t *testing.T) {
		detail, err := env.groupService.Show(ctx, owner.Id, group.Id)
		require.NoError(t, err)
		require.Len(t, detail.Members, 1)
		assert.Equal(t, owner.Id, detail.Members[0].UserId)
		assert.Equal(t, "admin", detail.Members[0].Role)
	})

	_, err = env.groupService.AddMember(ctx, owner.Id, group.Id, &dto.AddMemberRequest{UserId: member.Id})
	require.NoError(t, err)

	t.Run("duplicate membership conflicts", func(t *testing.T) {
		_, err := env.groupService.AddMember(ctx, owner.Id, group.Id, &dto.AddMemberRequest{UserId: member.Id})
		require.Error(t, err)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("plain member cannot add others", func(t *testing.T) {
		outsider := env.createUser(t)
		_, err := env.groupService.AddMember(ctx, member.Id, group.Id, &dto.AddMemberRequest{UserId: outsider.Id})
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("member cannot remove someone else", func(t *testing.T) {
		err := env.groupService.RemoveMember(ctx, member.Id, group.Id, owner.Id)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("owner cannot leave own group", func(t *testing.T) {
		err := env.groupService.RemoveMember(ctx, owner.Id, group.Id, owner.Id)
		assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	})

	t.Run("group hidden from non-members", func(t *testing.T) {
		outsider := env.createUser(t)

		_, err := env.groupService.Show(ctx, outsider.Id, group.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		name := "Probed"
		_, err = env.groupService.Update(ctx, outsider.Id, &dto.UpdateGroupRequest{Id: group.Id, Name: &name})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		err = env.groupService.Delete(ctx, outsider.Id, group.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		_, err = env.groupService.AddMember(ctx, outsider.Id, group.Id, &dto.AddMemberRequest{UserId: outsider.Id})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		err = env.groupService.RemoveMember(ctx, outsider.Id, group.Id, member.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		ownNote, err := env.noteService.Create(ctx, outsider.Id, &dto.CreateNoteRequest{Title: "Not shareable here"})
		require.NoError(t, err)
		err = env.groupService.ShareNote(ctx, outsider.Id, group.Id, &dto.ShareNoteRequest{NoteId: ownNote.Id})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("member can leave", func(t *testing.T) {
		err := env.groupService.RemoveMember(ctx, member.Id, group.Id, member.Id)
		require.NoError(t, err)

		_, err = env.groupService.Show(ctx, member.Id, group.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestGroupNoteSharing(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t)
	member := env.createUser(t)

	group, err := env.groupService.Create(ctx, owner.Id, &dto.CreateGroupRequest{Name: "Linear algebra circle"})
	require.NoError(t, err)
	_, err = env.groupService.AddMember(ctx, owner.Id, group.Id, &dto.AddMemberRequest{UserId: member.Id})
	require.NoError(t, err)

	note, err := env.noteService.Create(ctx, member.Id, &dto.CreateNoteRequest{Title: "Eigenvalues walkthrough"})
	require.NoError(t, err)

	t.Run("members cannot share notes they do not own", func(t *testing.T) {
		err := env.groupService.ShareNote(ctx, owner.Id, group.Id, &dto.ShareNoteRequest{NoteId: note.Id})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	require.NoError(t, env.groupService.ShareNote(ctx, member.Id, group.Id, &dto.ShareNoteRequest{NoteId: note.Id}))

	t.Run("sharing twice conflicts", func(t *testing.T) {
		err := env.groupService.ShareNote(ctx, member.Id, group.Id, &dto.ShareNoteRequest{NoteId: note.Id})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("shared note readable by other members", func(t *testing.T) {
		res, err := env.noteService.Show(ctx, owner.Id, note.Id)
		require.NoError(t, err)
		assert.Equal(t, note.Id, res.Id)

		detail, err := env.groupService.Show(ctx, owner.Id, group.Id)
		require.NoError(t, err)
		require.Len(t, detail.SharedNotes, 1)
		assert.Equal(t, note.Id, detail.SharedNotes[0].Id)
	})

	t.Run("unshare withdraws access", func(t *testing.T) {
		require.NoError(t, env.groupService.UnshareNote(ctx, member.Id, group.Id, note.Id))

		_, err := env.noteService.Show(ctx, owner.Id, note.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestGroupDeleteKeepsNotes(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := env.createUser(t)

	group, err := env.groupService.Create(ctx, owner.Id, &dto.CreateGroupRequest{Name: "Throwaway group"})
	require.NoError(t, err)

	note, err := env.noteService.Create(ctx, owner.Id, &dto.CreateNoteRequest{Title: "Keep me"})
	require.NoError(t, err)
	require.NoError(t, env.groupService.ShareNote(ctx, owner.Id, group.Id, &dto.ShareNoteRequest{NoteId: note.Id}))

	require.NoError(t, env.groupService.Delete(ctx, owner.Id, group.Id))

	// The share row cascades with the group, the note survives.
	res, err := env.noteService.Show(ctx, owner.Id, note.Id)
	require.NoError(t, err)
	assert.Equal(t, note.Id, res.Id)

	_, err = env.groupService.Show(ctx, owner.Id, group.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
