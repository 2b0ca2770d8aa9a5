package commands_test

import (
	"testing"

	"travelagency/internal/core/application/usecases/commands"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("self update rehashes the password", func(t *testing.T) {
		u := storedUser(t, "ada@example.com", "0501234567", false)
		password := "n3w-secret"
		email := "ada.l@example.com"

		cmd, err := commands.NewUpdateUserCommand(principalFor(t, u), u.ID(), commands.UserProfileInput{
			Password: &password,
			Email:    &email,
		})
		require.NoError(t, err)

		hasher := new(MockPasswordHasher)
		hasher.On("Hash", "n3w-secret").Return("new-hash", nil).Once()

		repo := new(MockUserRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("UserRepository").Return(repo).Once(),
			repo.On("Get", ctx, u.ID()).Return(u, nil).Once(),
			repo.On("GetByEmail", ctx, "ada.l@example.com").Return(nil, errs.NewObjectNotFoundError("user", "")).Once(),
			repo.On("Update", ctx, u).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUserUoWFactory)
		factory.On("Create").Return(uow).Once()

		updated, err := commands.NewUpdateUserCommandHandler(factory, hasher).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "new-hash", updated.PasswordHash())
		assert.Equal(t, "ada.l@example.com", updated.Email())
		repo.AssertNotCalled(t, "GetByPhone", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("email owned by another user conflicts", func(t *testing.T) {
		u := storedUser(t, "ada@example.com", "0501234567", false)
		other := storedUser(t, "bob@example.com", "0507654321", false)
		email := "bob@example.com"

		cmd, err := commands.NewUpdateUserCommand(principalFor(t, u), u.ID(), commands.UserProfileInput{Email: &email})
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		repo.On("GetByEmail", ctx, "bob@example.com").Return(other, nil).Once()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("UserRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUserUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewUpdateUserCommandHandler(factory, new(MockPasswordHasher)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("stranger is denied before lookup", func(t *testing.T) {
		cmd, err := commands.NewUpdateUserCommand(principal(t, false, false), kernel.NewUUID(), commands.UserProfileInput{})
		require.NoError(t, err)
		factory := new(MockUserUoWFactory)

		_, err = commands.NewUpdateUserCommandHandler(factory, new(MockPasswordHasher)).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestSetUserRolesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	yes := true

	t.Run("admin grants agent", func(t *testing.T) {
		u := storedUser(t, "bob@example.com", "0507654321", false)
		cmd, err := commands.NewSetUserRolesCommand(principal(t, false, true), u.ID(), &yes, nil)
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		repo.On("Update", ctx, u).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("UserRepository").Return(repo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUserUoWFactory)
		factory.On("Create").Return(uow).Once()

		updated, err := commands.NewSetUserRolesCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, updated.IsAgent())
		assert.False(t, updated.IsAdmin())
	})

	t.Run("agent cannot change roles", func(t *testing.T) {
		cmd, err := commands.NewSetUserRolesCommand(principal(t, true, false), kernel.NewUUID(), nil, &yes)
		require.NoError(t, err)
		factory := new(MockUserUoWFactory)

		_, err = commands.NewSetUserRolesCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("requires a flag", func(t *testing.T) {
		_, err := commands.NewSetUserRolesCommand(principal(t, false, true), kernel.NewUUID(), nil, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDeleteUserCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("self delete", func(t *testing.T) {
		u := storedUser(t, "ada@example.com", "0501234567", false)
		cmd, err := commands.NewDeleteUserCommand(principalFor(t, u), u.ID())
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("Get", ctx, u.ID()).Return(u, nil).Once()
		repo.On("Delete", ctx, u.ID()).Return(nil).Once()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("UserRepository").Return(repo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUserUoWFactory)
		factory.On("Create").Return(uow).Once()

		deleted, err := commands.NewDeleteUserCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, deleted.ID().IsEqual(u.ID()))
		repo.AssertExpectations(t)
	})

	t.Run("non-owner non-admin gets access denied even for unknown ids", func(t *testing.T) {
		cmd, err := commands.NewDeleteUserCommand(principal(t, true, false), kernel.NewUUID())
		require.NoError(t, err)
		factory := new(MockUserUoWFactory)

		_, err = commands.NewDeleteUserCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAccessDenied)
		factory.AssertNotCalled(t, "Create")
	})

	t.Run("admin deleting a missing user gets not found", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewDeleteUserCommand(principal(t, false, true), id)
		require.NoError(t, err)

		repo := new(MockUserRepository)
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("user", id)).Once()
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("UserRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory := new(MockUserUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewDeleteUserCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
