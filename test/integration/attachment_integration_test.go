package integration

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/apperror"
	"studynotes-be/internal/service"
)

func TestAttachmentLifecycle(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	note, err := env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{Title: "Lecture 4"})
	require.NoError(t, err)

	content := "minimal pdf-ish payload"
	uploaded, err := env.attachmentService.Upload(ctx, user.Id, &service.UploadInput{
		NoteId:       note.Id,
		OriginalName: "slides.pdf",
		Mimetype:     "application/pdf",
		Size:         int64(len(content)),
		Content:      strings.NewReader(content),
	})
	require.NoError(t, err)
	assert.Equal(t, note.Id, uploaded.NoteId)
	assert.Equal(t, "slides.pdf", uploaded.OriginalName)

	fetched, err := env.attachmentService.Fetch(ctx, user.Id, uploaded.Id)
	require.NoError(t, err)
	_, err = os.Stat(fetched.Path)
	require.NoError(t, err, "stored file must exist while the row exists")

	t.Run("hidden from other users", func(t *testing.T) {
		other := env.createUser(t)
		_, err := env.attachmentService.Fetch(ctx, other.Id, uploaded.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("remove deletes file and row", func(t *testing.T) {
		require.NoError(t, env.attachmentService.Remove(ctx, user.Id, uploaded.Id))

		_, err := os.Stat(fetched.Path)
		assert.True(t, os.IsNotExist(err))

		_, err = env.attachmentService.Fetch(ctx, user.Id, uploaded.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestAttachmentRemoveWithFileAlreadyGone(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	note, err := env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{Title: "Crash window"})
	require.NoError(t, err)

	content := "short lived"
	uploaded, err := env.attachmentService.Upload(ctx, user.Id, &service.UploadInput{
		NoteId:       note.Id,
		OriginalName: "ghost.txt",
		Mimetype:     "text/plain",
		Size:         int64(len(content)),
		Content:      strings.NewReader(content),
	})
	require.NoError(t, err)

	attachment, err := env.attachmentService.Fetch(ctx, user.Id, uploaded.Id)
	require.NoError(t, err)
	require.NoError(t, os.Remove(attachment.Path))

	// The row must still be removable once its file has disappeared.
	require.NoError(t, env.attachmentService.Remove(ctx, user.Id, uploaded.Id))

	_, err = env.attachmentService.Fetch(ctx, user.Id, uploaded.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAttachmentRollbackOnMissingNote(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	content := "orphan payload"
	_, err := env.attachmentService.Upload(ctx, user.Id, &service.UploadInput{
		NoteId:       uuid.New(),
		OriginalName: "orphan.txt",
		Mimetype:     "text/plain",
		Size:         int64(len(content)),
		Content:      strings.NewReader(content),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	entries, err := os.ReadDir(env.store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "rolled back upload must not leave a file behind")
}

func TestAttachmentRejectedBeforeWrite(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	note, err := env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{Title: "Target"})
	require.NoError(t, err)

	_, err = env.attachmentService.Upload(ctx, user.Id, &service.UploadInput{
		NoteId:       note.Id,
		OriginalName: "malware.exe",
		Mimetype:     "application/octet-stream",
		Size:         128,
		Content:      strings.NewReader(strings.Repeat("x", 128)),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	entries, err := os.ReadDir(env.store.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNoteDeleteRemovesAttachmentFiles(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	note, err := env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{Title: "Doomed note"})
	require.NoError(t, err)

	content := "bye"
	uploaded, err := env.attachmentService.Upload(ctx, user.Id, &service.UploadInput{
		NoteId:       note.Id,
		OriginalName: "farewell.txt",
		Mimetype:     "text/plain",
		Size:         int64(len(content)),
		Content:      strings.NewReader(content),
	})
	require.NoError(t, err)

	attachment, err := env.attachmentService.Fetch(ctx, user.Id, uploaded.Id)
	require.NoError(t, err)

	require.NoError(t, env.noteService.Delete(ctx, user.Id, note.Id))

	_, err = os.Stat(attachment.Path)
	assert.True(t, os.IsNotExist(err))

	_, err = env.attachmentService.Fetch(ctx, user.Id, uploaded.Id)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
