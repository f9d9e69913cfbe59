package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/errutil"
)

func createObjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		ObjectType string         `json:"objectType"`
		StageID    string         `json:"stageId,omitempty"`
		Properties map[string]any `json:"properties"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		created, err := uc.Object.Create(r.Context(), &usecase.CreateObjectInput{
			ObjectType: types.ObjectType(req.ObjectType),
			StageID:    types.StageID(req.StageID),
			Properties: req.Properties,
		})
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, objectToDTO(created))
	}
}

func listObjectsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Objects    []objectDTO `json:"objects"`
		Total      int         `json:"total"`
		Page       int         `json:"page"`
		Limit      int         `json:"limit"`
		TotalPages int         `json:"totalPages"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		input := &usecase.ListObjectsInput{
			ObjectType:  types.ObjectType(q.Get("objectType")),
			StageID:     types.StageID(q.Get("stageId")),
			CreatedByID: types.UserID(q.Get("createdById")),
		}
		if v := q.Get("page"); v != "" {
			input.Page, _ = strconv.Atoi(v)
		}
		if v := q.Get("limit"); v != "" {
			input.Limit, _ = strconv.Atoi(v)
		}

		page, err := uc.Object.List(r.Context(), input)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, response{
			Objects:    objectsToDTO(page.Objects),
			Total:      page.Total,
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
		})
	}
}

func getObjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		detail, err := uc.Object.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, objectDetailToDTO(detail))
	}
}

func updateObjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Properties map[string]any `json:"properties"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		updated, err := uc.Object.Update(r.Context(), id, req.Properties)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, objectToDTO(updated))
	}
}

func deleteObjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		if err := uc.Object.Delete(r.Context(), id); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// writeTransitionResult turns the two policy no-ops into 200 responses
// carrying the unchanged object
func writeTransitionResult(w http.ResponseWriter, r *http.Request, uc *usecase.UseCases, obj *model.GenericObject, err error) {
	if err != nil {
		if errors.Is(err, usecase.ErrStageUnchanged) || errors.Is(err, usecase.ErrRollbackDenied) {
			writeJSON(r.Context(), w, http.StatusOK, objectToDTO(obj))
			return
		}
		handleError(w, r, uc, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, objectToDTO(obj))
}

func transitionObjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Target string `json:"target"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		obj, err := uc.Object.Transition(r.Context(), id, req.Target)
		writeTransitionResult(w, r, uc, obj, err)
	}
}

func advanceObjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		obj, err := uc.Object.Advance(r.Context(), id)
		writeTransitionResult(w, r, uc, obj, err)
	}
}

func retreatObjectHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		obj, err := uc.Object.Retreat(r.Context(), id)
		writeTransitionResult(w, r, uc, obj, err)
	}
}

func updateSharingHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Visibility         string   `json:"visibility"`
		SharedWithGroupIDs []string `json:"sharedWithGroupIds"`
		SharedWithUserIDs  []string `json:"sharedWithUserIds"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		groupIDs := make([]types.GroupID, len(req.SharedWithGroupIDs))
		for i, gid := range req.SharedWithGroupIDs {
			groupIDs[i] = types.GroupID(gid)
		}
		userIDs := make([]types.UserID, len(req.SharedWithUserIDs))
		for i, uid := range req.SharedWithUserIDs {
			userIDs[i] = types.UserID(uid)
		}

		updated, err := uc.Object.UpdateSharing(r.Context(), id, types.Visibility(req.Visibility), groupIDs, userIDs)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, objectToDTO(updated))
	}
}

func objectHistoryHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		History []historyEntryDTO `json:"history"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := types.ObjectID(chi.URLParam(r, "id"))

		entries, err := uc.Object.History(r.Context(), id)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{History: make([]historyEntryDTO, len(entries))}
		for i, e := range entries {
			resp.History[i] = historyEntryToDTO(e)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
