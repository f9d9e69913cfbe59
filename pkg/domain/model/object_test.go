package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

func TestGenericObject_VisibleTo(t *testing.T) {
	obj := &model.GenericObject{
		ID:          "obj-1",
		CreatedByID: "owner",
		Visibility:  types.VisibilityPrivate,
	}

	t.Run("private visible to owner and admin only", func(t *testing.T) {
		gt.B(t, obj.VisibleTo("owner", false, nil)).True()
		gt.B(t, obj.VisibleTo("other", true, nil)).True()
		gt.B(t, obj.VisibleTo("other", false, nil)).False()
	})

	t.Run("public visible to anyone", func(t *testing.T) {
		public := *obj
		public.Visibility = types.VisibilityPublic
		gt.B(t, public.VisibleTo("other", false, nil)).True()
	})

	t.Run("shared visible to listed users", func(t *testing.T) {
		shared := *obj
		shared.Visibility = types.VisibilityShared
		shared.SharedWithUserIDs = []types.UserID{"friend"}

		gt.B(t, shared.VisibleTo("friend", false, nil)).True()
		gt.B(t, shared.VisibleTo("stranger", false, nil)).False()
	})

	t.Run("shared visible to members of listed groups", func(t *testing.T) {
		shared := *obj
		shared.Visibility = types.VisibilityShared
		shared.SharedWithGroupIDs = []types.GroupID{"sales"}

		gt.B(t, shared.VisibleTo("member", false, []types.GroupID{"sales"})).True()
		gt.B(t, shared.VisibleTo("member", false, []types.GroupID{"support"})).False()
	})

	t.Run("shared with nobody is visible only to owner and admin", func(t *testing.T) {
		shared := *obj
		shared.Visibility = types.VisibilityShared

		gt.B(t, shared.VisibleTo("owner", false, nil)).True()
		gt.B(t, shared.VisibleTo("stranger", false, nil)).False()
	})
}

func TestGenericObject_CanChangeVisibility(t *testing.T) {
	obj := &model.GenericObject{CreatedByID: "owner"}

	gt.B(t, obj.CanChangeVisibility("owner", false)).True()
	gt.B(t, obj.CanChangeVisibility("other", true)).True()
	gt.B(t, obj.CanChangeVisibility("other", false)).False()
}
