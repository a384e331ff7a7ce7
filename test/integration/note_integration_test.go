package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/apperror"
)

func TestNoteTagFiltering(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	examTag, err := env.tagService.Create(ctx, user.Id, &dto.CreateTagRequest{Name: "exam"})
	require.NoError(t, err)
	homeworkTag, err := env.tagService.Create(ctx, user.Id, &dto.CreateTagRequest{Name: "homework"})
	require.NoError(t, err)

	_, err = env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{
		Title:  "Exam prep",
		TagIds: []uuid.UUID{examTag.Id},
	})
	require.NoError(t, err)
	_, err = env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{
		Title:  "Week 3 homework",
		TagIds: []uuid.UUID{homeworkTag.Id},
	})
	require.NoError(t, err)

	tagId := examTag.Id
	notes, err := env.noteService.GetAll(ctx, user.Id, &dto.ListNotesRequest{TagId: &tagId})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Exam prep", notes[0].Title)
	require.Len(t, notes[0].Tags, 1)
	assert.Equal(t, "exam", notes[0].Tags[0].Name)
}

func TestNoteCreateDropsForeignTags(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	alice := env.createUser(t)
	bob := env.createUser(t)

	bobTag, err := env.tagService.Create(ctx, bob.Id, &dto.CreateTagRequest{Name: "stolen"})
	require.NoError(t, err)
	aliceTag, err := env.tagService.Create(ctx, alice.Id, &dto.CreateTagRequest{Name: "mine"})
	require.NoError(t, err)

	note, err := env.noteService.Create(ctx, alice.Id, &dto.CreateNoteRequest{
		Title:  "Tagged note",
		TagIds: []uuid.UUID{bobTag.Id, aliceTag.Id, uuid.New()},
	})
	require.NoError(t, err)

	require.Len(t, note.Tags, 1)
	assert.Equal(t, aliceTag.Id, note.Tags[0].Id)
}

func TestNoteUpdateReplacesTagSet(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	tag, err := env.tagService.Create(ctx, user.Id, &dto.CreateTagRequest{Name: "draft"})
	require.NoError(t, err)

	note, err := env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{
		Title:  "Work in progress",
		TagIds: []uuid.UUID{tag.Id},
	})
	require.NoError(t, err)
	require.Len(t, note.Tags, 1)

	empty := []uuid.UUID{}
	updated, err := env.noteService.Update(ctx, user.Id, &dto.UpdateNoteRequest{
		Id:     note.Id,
		TagIds: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Tags)
}

func TestNoteVisibility(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	alice := env.createUser(t)
	bob := env.createUser(t)

	private, err := env.noteService.Create(ctx, alice.Id, &dto.CreateNoteRequest{Title: "Private thoughts"})
	require.NoError(t, err)
	public, err := env.noteService.Create(ctx, alice.Id, &dto.CreateNoteRequest{Title: "Shared summary", IsPublic: true})
	require.NoError(t, err)

	t.Run("private note hidden from others", func(t *testing.T) {
		_, err := env.noteService.Show(ctx, bob.Id, private.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("public note readable by others", func(t *testing.T) {
		res, err := env.noteService.Show(ctx, bob.Id, public.Id)
		require.NoError(t, err)
		assert.Equal(t, public.Id, res.Id)
	})

	t.Run("others cannot update or delete", func(t *testing.T) {
		title := "hijacked"
		_, err := env.noteService.Update(ctx, bob.Id, &dto.UpdateNoteRequest{Id: public.Id, Title: &title})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

		err = env.noteService.Delete(ctx, bob.Id, public.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestNoteSearch(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	_, err := env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{
		Title:   "Thermodynamics recap",
		Content: "Entropy always increases in an isolated system.",
	})
	require.NoError(t, err)
	_, err = env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{
		Title:   "Grocery list",
		Content: "Milk, eggs, coffee.",
	})
	require.NoError(t, err)

	notes, err := env.noteService.GetAll(ctx, user.Id, &dto.ListNotesRequest{Search: "entropy"})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Thermodynamics recap", notes[0].Title)
}
