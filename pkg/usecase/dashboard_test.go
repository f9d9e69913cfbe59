package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/repository/memory"
	"github.com/gui-far/objectboard/pkg/usecase"
)

func TestDashboardUseCase_Profile(t *testing.T) {
	t.Run("stored account is returned", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		user, err := repo.User().Create(context.Background(), &model.User{Email: "alice@example.com"})
		gt.NoError(t, err).Required()

		profile, err := uc.Dashboard.Profile(userContext(user.ID))
		gt.NoError(t, err).Required()
		gt.Value(t, profile.Email).Equal("alice@example.com")
	})

	t.Run("no stored account falls back to the session token", func(t *testing.T) {
		uc := usecase.New(memory.New())

		profile, err := uc.Dashboard.Profile(adminContext())
		gt.NoError(t, err).Required()
		gt.Value(t, profile.Email).Equal("admin@example.com")
		gt.Bool(t, profile.IsAdmin).True()
	})
}

func TestDashboardUseCase_Analytics(t *testing.T) {
	setup := func(t *testing.T) *usecase.UseCases {
		t.Helper()
		uc := setupDeal(t)
		alice := userContext("alice")

		for _, name := range []string{"one", "two"} {
			_, err := uc.Object.Create(alice, &usecase.CreateObjectInput{
				ObjectType: "deal",
				Properties: map[string]any{"name": name},
			})
			gt.NoError(t, err).Required()
		}

		public, err := uc.Object.Create(alice, &usecase.CreateObjectInput{
			ObjectType: "deal",
			Properties: map[string]any{"name": "three"},
		})
		gt.NoError(t, err).Required()
		_, err = uc.Object.UpdateSharing(alice, public.ID, types.VisibilityPublic, nil, nil)
		gt.NoError(t, err).Required()

		return uc
	}

	t.Run("creator counts every own object", func(t *testing.T) {
		uc := setup(t)

		analytics, err := uc.Dashboard.Analytics(userContext("alice"))
		gt.NoError(t, err).Required()

		gt.Value(t, analytics.TotalDefinitions).Equal(1)
		gt.Value(t, analytics.TotalObjects).Equal(3)
		gt.Array(t, analytics.Definitions).Length(1)
		gt.Value(t, analytics.Definitions[0].ByStage[types.StageID("new")]).Equal(3)
	})

	t.Run("other viewers only count visible objects", func(t *testing.T) {
		uc := setup(t)

		analytics, err := uc.Dashboard.Analytics(userContext("bob"))
		gt.NoError(t, err).Required()

		gt.Value(t, analytics.TotalDefinitions).Equal(1)
		gt.Value(t, analytics.TotalObjects).Equal(1)
	})

	t.Run("admins count everything", func(t *testing.T) {
		uc := setup(t)

		analytics, err := uc.Dashboard.Analytics(adminContext())
		gt.NoError(t, err).Required()
		gt.Value(t, analytics.TotalObjects).Equal(3)
	})

	t.Run("no definitions yields empty analytics", func(t *testing.T) {
		uc := usecase.New(memory.New())

		analytics, err := uc.Dashboard.Analytics(userContext("alice"))
		gt.NoError(t, err).Required()
		gt.Value(t, analytics.TotalDefinitions).Equal(0)
		gt.Value(t, analytics.TotalObjects).Equal(0)
	})
}
