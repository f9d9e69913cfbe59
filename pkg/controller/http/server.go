package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gui-far/objectboard/pkg/domain/types"
	"github.com/gui-far/objectboard/pkg/usecase"
	"github.com/gui-far/objectboard/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	authUC AuthUseCase
}

type Options func(*Server)

// WithAuth enables the authentication endpoints and bearer-token checks
func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.authUC == nil {
		s.authUC = uc.Auth
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", signupHandler(s.authUC))
		r.Post("/signin", signinHandler(s.authUC))
		r.Post("/forgot-password", forgotPasswordHandler(s.authUC))
		r.Post("/reset-password", resetPasswordHandler(s.authUC))

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.authUC))
			r.Post("/signout", signoutHandler(s.authUC))
		})
	})

	// Everything below requires a session
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))

		r.Route("/api/object-definition", func(r chi.Router) {
			r.Post("/", createDefinitionHandler(uc))
			r.Get("/", listDefinitionsHandler(uc))
			r.Get("/{id}", getDefinitionHandler(uc))
			r.Patch("/{id}", updateDefinitionHandler(uc))
			r.Get("/type/{objectType}", getDefinitionByTypeHandler(uc))
			r.Get("/type/{objectType}/board", boardHandler(uc))
			r.Get("/{id}/groups", listDefinitionGroupsHandler(uc))
			r.Post("/{id}/group/{groupId}", assignDefinitionGroupHandler(uc))
			r.Delete("/{id}/group/{groupId}", removeDefinitionGroupHandler(uc))
			r.Patch("/{id}/group/{groupId}/permissions", updateGroupPermissionsHandler(uc))
		})

		r.Route("/api/object", func(r chi.Router) {
			r.Post("/", createObjectHandler(uc))
			r.Get("/", listObjectsHandler(uc))
			r.Get("/{id}", getObjectHandler(uc))
			r.Patch("/{id}", updateObjectHandler(uc))
			r.Delete("/{id}", deleteObjectHandler(uc))
			r.Patch("/{id}/stage", transitionObjectHandler(uc))
			r.Patch("/{id}/sharing", updateSharingHandler(uc))
			r.Get("/{id}/history", objectHistoryHandler(uc))
			r.Post("/{id}/advance", advanceObjectHandler(uc))
			r.Post("/{id}/retreat", retreatObjectHandler(uc))
		})

		r.Route("/group", func(r chi.Router) {
			r.Post("/create", createGroupHandler(uc))
			r.Get("/list", listGroupsHandler(uc))
			r.Delete("/{id}", deleteGroupHandler(uc))
			r.Post("/add-user", groupAddUserHandler(uc))
			r.Post("/remove-user", groupRemoveUserHandler(uc))
		})

		r.Route("/endpoint", func(r chi.Router) {
			r.Post("/create", createEndpointHandler(uc))
			r.Get("/list", listEndpointsHandler(uc))
			r.Delete("/{id}", deleteEndpointHandler(uc))
			r.Post("/add-to-group", endpointAddToGroupHandler(uc))
			r.Post("/remove-from-group", endpointRemoveFromGroupHandler(uc))
		})

		r.Get("/user/list", listUsersHandler(uc))

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/profile", profileHandler(uc))
			r.Get("/analytics", analyticsHandler(uc))
		})

		r.Route("/log", func(r chi.Router) {
			r.Get("/permission-errors", listLogsHandler(uc, types.LogKindPermissionError))
			r.Get("/general-errors", listLogsHandler(uc, types.LogKindGeneralError))
			r.Get("/{id}", getLogHandler(uc))
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
