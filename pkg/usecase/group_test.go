package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/repository/memory"
	"github.com/gui-far/objectboard/pkg/usecase"
)

func TestGroupUseCase(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := adminContext()

		created, err := uc.Group.Create(ctx, "sales")
		gt.NoError(t, err).Required()
		gt.Value(t, created.Name).Equal("sales")

		groups, err := uc.Group.List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, groups).Length(1)
	})

	t.Run("create requires administrator", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Group.Create(userContext("alice"), "sales")
		gt.Error(t, err).Is(usecase.ErrNotAuthorized)
	})

	t.Run("create without name fails", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Group.Create(adminContext(), "")
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("membership", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := adminContext()

		group, err := uc.Group.Create(ctx, "sales")
		gt.NoError(t, err).Required()
		user, err := repo.User().Create(context.Background(), &model.User{Email: "alice@example.com"})
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Group.AddUser(ctx, group.ID, user.ID)).Required()

		fetched, err := uc.Group.Get(ctx, group.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, fetched.UserIDs).Length(1)

		gt.NoError(t, uc.Group.RemoveUser(ctx, group.ID, user.ID)).Required()

		fetched, err = uc.Group.Get(ctx, group.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, fetched.UserIDs).Length(0)
	})

	t.Run("adding an unknown user fails", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := adminContext()

		group, err := uc.Group.Create(ctx, "sales")
		gt.NoError(t, err).Required()

		err = uc.Group.AddUser(ctx, group.ID, "no-such-user")
		gt.Error(t, err).Is(usecase.ErrUserNotFound)
	})

	t.Run("delete unknown group fails", func(t *testing.T) {
		uc := usecase.New(memory.New())

		err := uc.Group.Delete(adminContext(), "missing")
		gt.Error(t, err).Is(usecase.ErrGroupNotFound)
	})
}
