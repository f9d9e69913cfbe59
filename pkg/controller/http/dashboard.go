package http

import (
	"net/http"

	"github.com/gui-far/objectboard/pkg/usecase"
)

func profileHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := uc.Dashboard.Profile(r.Context())
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, userToDTO(user))
	}
}

func analyticsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type definitionStats struct {
		Definition definitionDTO  `json:"definition"`
		Total      int            `json:"total"`
		ByStage    map[string]int `json:"byStage"`
	}
	type response struct {
		TotalDefinitions int               `json:"totalDefinitions"`
		TotalObjects     int               `json:"totalObjects"`
		Definitions      []definitionStats `json:"definitions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		analytics, err := uc.Dashboard.Analytics(r.Context())
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{
			TotalDefinitions: analytics.TotalDefinitions,
			TotalObjects:     analytics.TotalObjects,
			Definitions:      make([]definitionStats, len(analytics.Definitions)),
		}
		for i, stats := range analytics.Definitions {
			byStage := make(map[string]int, len(stats.ByStage))
			for stageID, count := range stats.ByStage {
				byStage[stageID.String()] = count
			}
			resp.Definitions[i] = definitionStats{
				Definition: definitionToDTO(stats.Definition),
				Total:      stats.Total,
				ByStage:    byStage,
			}
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
