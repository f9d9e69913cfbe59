package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/errutil"
)

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// handleError maps a use case error to an HTTP status and records it in
// the error log. Authorization failures go to the permission-error
// screen, everything unexpected to the general one.
func handleError(w http.ResponseWriter, r *http.Request, uc *usecase.UseCases, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, model.ErrInvalidDefinition),
		errors.Is(err, model.ErrInvalidOverride),
		errors.Is(err, model.ErrInvalidSharing):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)

	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, auth.ErrNoToken):
		errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)

	case errors.Is(err, usecase.ErrNotAuthorized):
		recordError(ctx, r, uc, types.LogKindPermissionError, err)
		errutil.HandleHTTP(ctx, w, err, http.StatusForbidden)

	case errors.Is(err, usecase.ErrDefinitionNotFound),
		errors.Is(err, usecase.ErrObjectNotFound),
		errors.Is(err, usecase.ErrGroupNotFound),
		errors.Is(err, usecase.ErrEndpointNotFound),
		errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrLogNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)

	default:
		recordError(ctx, r, uc, types.LogKindGeneralError, err)
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

func recordError(ctx context.Context, r *http.Request, uc *usecase.UseCases, kind types.LogKind, cause error) {
	if uc == nil {
		return
	}

	var userID types.UserID
	if token, err := auth.TokenFromContext(ctx); err == nil {
		userID = token.Sub
	}
	if err := uc.Log.Record(ctx, kind, cause.Error(), r.URL.Path, userID); err != nil {
		errutil.Handle(ctx, err, "failed to record error log")
	}
}
