package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/memory"
)

func runLogRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Log().Append(ctx, &model.ErrorLog{
			Kind:    types.LogKindPermissionError,
			Message: "field not editable in current stage",
			Path:    "/api/object/obj-1",
			UserID:  "user-1",
		})).Required()

		entries, err := repo.Log().ListByKind(ctx, types.LogKindPermissionError)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)

		stored, err := repo.Log().Get(ctx, entries[0].ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Message).Equal("field not editable in current stage")
		gt.Value(t, stored.UserID).Equal(types.UserID("user-1"))
	})

	t.Run("ListByKind separates kinds and orders newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Log().Append(ctx, &model.ErrorLog{
			Kind:    types.LogKindPermissionError,
			Message: "first",
		})).Required()
		gt.NoError(t, repo.Log().Append(ctx, &model.ErrorLog{
			Kind:    types.LogKindGeneralError,
			Message: "unrelated",
		})).Required()
		gt.NoError(t, repo.Log().Append(ctx, &model.ErrorLog{
			Kind:    types.LogKindPermissionError,
			Message: "second",
		})).Required()

		entries, err := repo.Log().ListByKind(ctx, types.LogKindPermissionError)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)
		gt.Value(t, entries[0].Message).Equal("second")
		gt.Value(t, entries[1].Message).Equal("first")
	})
}

func TestLogRepository_Memory(t *testing.T) {
	runLogRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestLogRepository_Firestore(t *testing.T) {
	runLogRepositoryTest(t, newFirestoreRepo)
}
