package http

import (
	"net/http"

	"github.com/gui-far/objectboard/pkg/usecase"
)

func listUsersHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Users []userDTO `json:"users"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		users, err := uc.User.List(r.Context())
		if err != nil {
			handleError(w, r, uc, err)
			return
		}

		resp := response{Users: make([]userDTO, len(users))}
		for i, u := range users {
			resp.Users[i] = userToDTO(u)
		}
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}
