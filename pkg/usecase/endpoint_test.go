package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/repository/memory"
	"github.com/gui-far/objectboard/pkg/usecase"
)

func TestEndpointUseCase(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := adminContext()

		created, err := uc.Endpoint.Create(ctx, "/api/object", "POST", "Create objects")
		gt.NoError(t, err).Required()
		gt.Value(t, created.Path).Equal("/api/object")
		gt.Value(t, created.Method).Equal("POST")

		endpoints, err := uc.Endpoint.List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, endpoints).Length(1)
	})

	t.Run("create requires admin", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Endpoint.Create(userContext("alice"), "/api/object", "POST", "")
		gt.Error(t, err).Is(usecase.ErrNotAuthorized)
	})

	t.Run("path and method are required", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Endpoint.Create(adminContext(), "", "GET", "")
		gt.Error(t, err).Is(usecase.ErrValidation)

		_, err = uc.Endpoint.Create(adminContext(), "/api/object", "", "")
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("add to and remove from group", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := adminContext()

		group, err := repo.Group().Create(context.Background(), &model.Group{Name: "Operators"})
		gt.NoError(t, err).Required()
		endpoint, err := uc.Endpoint.Create(ctx, "/group/list", "GET", "")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Endpoint.AddToGroup(ctx, endpoint.ID, group.ID)).Required()

		stored, err := repo.Group().Get(context.Background(), group.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.HasEndpoint(endpoint.ID)).True()

		gt.NoError(t, uc.Endpoint.RemoveFromGroup(ctx, endpoint.ID, group.ID)).Required()

		stored, err = repo.Group().Get(context.Background(), group.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, stored.HasEndpoint(endpoint.ID)).False()
	})

	t.Run("add unknown endpoint to group", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		group, err := repo.Group().Create(context.Background(), &model.Group{Name: "Operators"})
		gt.NoError(t, err).Required()

		err = uc.Endpoint.AddToGroup(adminContext(), "no-such-endpoint", group.ID)
		gt.Error(t, err).Is(usecase.ErrEndpointNotFound)
	})

	t.Run("add endpoint to unknown group", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ctx := adminContext()

		endpoint, err := uc.Endpoint.Create(ctx, "/api/object", "GET", "")
		gt.NoError(t, err).Required()

		err = uc.Endpoint.AddToGroup(ctx, endpoint.ID, "no-such-group")
		gt.Error(t, err).Is(usecase.ErrGroupNotFound)
	})

	t.Run("delete unknown endpoint", func(t *testing.T) {
		uc := usecase.New(memory.New())

		err := uc.Endpoint.Delete(adminContext(), "no-such-endpoint")
		gt.Error(t, err).Is(usecase.ErrEndpointNotFound)
	})
}
