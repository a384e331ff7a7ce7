package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes-be/internal/dto"
	"studynotes-be/internal/pkg/apperror"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	email := "register-it-" + randomSuffix() + "@stud.ase.ro"

	res, err := env.authService.Register(ctx, &dto.RegisterRequest{
		Email:    email,
		Password: "parola123",
		Name:     "Test Student",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	t.Cleanup(func() {
		env.db.Exec("DELETE FROM users WHERE email = ?", email)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := env.authService.Register(ctx, &dto.RegisterRequest{
			Email:    email,
			Password: "parola123",
			Name:     "Copycat",
		})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("wrong domain rejected", func(t *testing.T) {
		_, err := env.authService.Register(ctx, &dto.RegisterRequest{
			Email:    "someone@gmail.com",
			Password: "parola123",
			Name:     "Outsider",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := env.authService.Register(ctx, &dto.RegisterRequest{
			Email:    "short-" + randomSuffix() + "@stud.ase.ro",
			Password: "abc",
			Name:     "Hasty",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("login with correct password", func(t *testing.T) {
		res, err := env.authService.Login(ctx, &dto.LoginRequest{Email: email, Password: "parola123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, email, res.User.Email)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := env.authService.Login(ctx, &dto.LoginRequest{Email: email, Password: "gresita"})
		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})

	t.Run("login with deactivated account", func(t *testing.T) {
		env.db.Exec("UPDATE users SET is_active = false WHERE email = ?", email)
		t.Cleanup(func() {
			env.db.Exec("UPDATE users SET is_active = true WHERE email = ?", email)
		})

		_, err := env.authService.Login(ctx, &dto.LoginRequest{Email: email, Password: "parola123"})
		assert.Equal(t, apperror.KindAuth, apperror.KindOf(err))
	})
}

func TestDeleteAccountCascades(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)
	survivor := env.createUser(t)

	subject, err := env.subjectService.Create(ctx, user.Id, &dto.CreateSubjectRequest{Name: "Doomed subject"})
	require.NoError(t, err)
	tag, err := env.tagService.Create(ctx, user.Id, &dto.CreateTagRequest{Name: "doomed"})
	require.NoError(t, err)
	note, err := env.noteService.Create(ctx, user.Id, &dto.CreateNoteRequest{
		Title:     "Doomed note",
		SubjectId: &subject.Id,
	})
	require.NoError(t, err)

	group, err := env.groupService.Create(ctx, survivor.Id, &dto.CreateGroupRequest{Name: "Survivor group"})
	require.NoError(t, err)
	_, err = env.groupService.AddMember(ctx, survivor.Id, group.Id, &dto.AddMemberRequest{UserId: user.Id})
	require.NoError(t, err)

	require.NoError(t, env.userService.DeleteAccount(ctx, user.Id))

	t.Run("profile gone", func(t *testing.T) {
		_, err := env.userService.GetProfile(ctx, user.Id)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})

	t.Run("owned rows cascade", func(t *testing.T) {
		var count int64
		env.db.Table("subjects").Where("id = ?", subject.Id).Count(&count)
		assert.Zero(t, count)
		env.db.Table("tags").Where("id = ?", tag.Id).Count(&count)
		assert.Zero(t, count)
		env.db.Table("notes").Where("id = ?", note.Id).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("membership rows cascade, group survives", func(t *testing.T) {
		detail, err := env.groupService.Show(ctx, survivor.Id, group.Id)
		require.NoError(t, err)
		assert.Len(t, detail.Members, 1)
	})
}

func TestProfileUpdate(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.createUser(t)

	name := "Renamed Student"
	updated, err := env.userService.UpdateProfile(ctx, user.Id, &dto.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)

	// Cache must not serve the stale profile.
	profile, err := env.userService.GetProfile(ctx, user.Id)
	require.NoError(t, err)
	assert.Equal(t, name, profile.Name)
}
