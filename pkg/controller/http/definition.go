package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/errutil"
)

func createDefinitionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req definitionDTO
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		created, err := uc.Definition.Create(r.Context(), definitionFromDTO(req))
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, definitionToDTO(created))
	}
}

func listDefinitionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Definitions []definitionDTO `json:"definitions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		definitions, err := uc.Definition.List(r.Context())
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{Definitions: make([]definitionDTO, len(definitions))}
		for i, def := range definitions {
			resp.Definitions[i] = definitionToDTO(def)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func getDefinitionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.DefinitionID(chi.URLParam(r, "id"))

		def, err := uc.Definition.Get(r.Context(), id)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, definitionToDTO(def))
	}
}

func getDefinitionByTypeHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objectType := types.ObjectType(chi.URLParam(r, "objectType"))

		def, err := uc.Definition.GetByType(r.Context(), objectType)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, definitionToDTO(def))
	}
}

func updateDefinitionHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req definitionDTO
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		def := definitionFromDTO(req)
		def.ID = types.DefinitionID(chi.URLParam(r, "id"))

		updated, err := uc.Definition.Update(r.Context(), def)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, definitionToDTO(updated))
	}
}

func listDefinitionGroupsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Groups []definitionGroupDTO `json:"groups"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := types.DefinitionID(chi.URLParam(r, "id"))

		assignments, err := uc.Definition.ListGroups(r.Context(), id)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{Groups: make([]definitionGroupDTO, len(assignments))}
		for i, a := range assignments {
			resp.Groups[i] = definitionGroupToDTO(a)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func assignDefinitionGroupHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		definitionID := types.DefinitionID(chi.URLParam(r, "id"))
		groupID := types.GroupID(chi.URLParam(r, "groupId"))

		assigned, err := uc.Definition.AssignGroup(r.Context(), definitionID, groupID)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, definitionGroupToDTO(assigned))
	}
}

func removeDefinitionGroupHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		definitionID := types.DefinitionID(chi.URLParam(r, "id"))
		groupID := types.GroupID(chi.URLParam(r, "groupId"))

		if err := uc.Definition.RemoveGroup(r.Context(), definitionID, groupID); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func updateGroupPermissionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Permissions behaviorMapDTO `json:"permissions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		definitionID := types.DefinitionID(chi.URLParam(r, "id"))
		groupID := types.GroupID(chi.URLParam(r, "groupId"))

		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		updated, err := uc.Definition.UpdateGroupPermissions(r.Context(), definitionID, groupID, behaviorMapFromDTO(req.Permissions))
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, definitionGroupToDTO(updated))
	}
}

func boardHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		objectType := types.ObjectType(chi.URLParam(r, "objectType"))

		board, err := uc.Board.Get(r.Context(), objectType)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, boardToDTO(board))
	}
}
