package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
)

func listLogsHandler(uc *usecase.UseCases, kind types.LogKind) http.HandlerFunc {
	type response struct {
		Logs []errorLogDTO `json:"logs"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := uc.Log.ListByKind(r.Context(), kind)
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{Logs: make([]errorLogDTO, len(entries))}
		for i, e := range entries {
			resp.Logs[i] = errorLogToDTO(e)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func getLogHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := uc.Log.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, errorLogToDTO(entry))
	}
}
