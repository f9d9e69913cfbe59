package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/errutil"
)

type AuthUseCase = usecase.AuthUseCaseInterface

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	AccessToken string `json:"accessToken"`
	User        struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"isAdmin"`
	} `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return goerr.Wrap(usecase.ErrValidation, "invalid request body")
	}
	return nil
}

func signupHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		user, err := authUC.Signup(r.Context(), req.Email, req.Password)
		if err != nil {
			handleError(w, r, nil, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, userToDTO(user))
	}
}

func signinHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		signed, session, err := authUC.Signin(r.Context(), req.Email, req.Password)
		if err != nil {
			handleError(w, r, nil, err)
			return
		}

		resp := signinResponse{AccessToken: signed}
		resp.User.ID = session.Sub.String()
		resp.User.Email = session.Email
		resp.User.IsAdmin = session.IsAdmin
		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func signoutHandler(authUC AuthUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.TokenFromContext(r.Context())
		if err != nil {
			handleError(w, r, nil, err)
			return
		}

		if err := authUC.Signout(r.Context(), token.ID); err != nil {
			handleError(w, r, nil, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func forgotPasswordHandler(authUC AuthUseCase) http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
	}
	type response struct {
		ResetToken string `json:"resetToken"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		reset, err := authUC.ForgotPassword(r.Context(), req.Email)
		if err != nil {
			handleError(w, r, nil, err)
			return
		}

		// There is no mailer; the token is returned for delivery by the
		// operator
		writeJSON(r.Context(), w, http.StatusOK, response{ResetToken: reset.Token})
	}
}

func resetPasswordHandler(authUC AuthUseCase) http.HandlerFunc {
	type request struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeJSON(r, &req); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		if err := authUC.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			handleError(w, r, nil, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
