package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/errutil"
)

func createEndpointHandler(uc *usecase.UseCases) http.HandlerFunc {
	type request struct {
		Path        string `json:"path"`
		Method      string `json:"method"`
		Description string `json:"description"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		created, err := uc.Endpoint.Create(r.Context(), req.Path, req.Method, req.Description)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, endpointToDTO(created))
	}
}

func listEndpointsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Endpoints []endpointDTO `json:"endpoints"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		endpoints, err := uc.Endpoint.List(r.Context())
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{Endpoints: make([]endpointDTO, len(endpoints))}
		for i, e := range endpoints {
			resp.Endpoints[i] = endpointToDTO(e)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func deleteEndpointHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := types.EndpointID(chi.URLParam(r, "id"))

		if err := uc.Endpoint.Delete(r.Context(), id); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

type endpointGroupRequest struct {
	EndpointID string `json:"endpointId"`
	GroupID    string `json:"groupId"`
}

func endpointAddToGroupHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req endpointGroupRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.Endpoint.AddToGroup(r.Context(), types.EndpointID(req.EndpointID), types.GroupID(req.GroupID)); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func endpointRemoveFromGroupHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req endpointGroupRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := uc.Endpoint.RemoveFromGroup(r.Context(), types.EndpointID(req.EndpointID), types.GroupID(req.GroupID)); err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
