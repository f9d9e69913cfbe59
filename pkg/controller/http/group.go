package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/errutil"
)

func createGroupHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		created, err := uc.Group.Create(r.Context(), req.Name)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, groupToDTO(created))
	}
}

func listGroupsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Groups []groupDTO `json:"groups"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := uc.Group.List(r.Context())
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{Groups: make([]groupDTO, len(groups))}
		for i, g := range groups {
			resp.Groups[i] = groupToDTO(g)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func deleteGroupHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.GroupID(chi.URLParam(r, "id"))

		if err := uc.Group.Delete(r.Context(), id); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

type groupMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

func groupAddUserHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req groupMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.Group.AddUser(r.Context(), types.GroupID(req.GroupID), types.UserID(req.UserID)); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func groupRemoveUserHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req groupMemberRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.Group.RemoveUser(r.Context(), types.GroupID(req.GroupID), types.UserID(req.UserID)); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
