package usecase

import (
	"github.com/gui-far/objectboard/pkg/domain/interfaces"
	"github.com/gui-far/objectboard/pkg/service/notify"
)

type UseCases struct {
	repo     interfaces.Repository
	notifier notify.Service

	Definition *DefinitionUseCase
	Object     *ObjectUseCase
	Board      *BoardUseCase
	Group      *GroupUseCase
	Endpoint   *EndpointUseCase
	User       *UserUseCase
	Dashboard  *DashboardUseCase
	Log        *LogUseCase
	Auth       AuthUseCaseInterface
}

type Option func(*UseCases)

// WithNotify wires stage transition notifications
func WithNotify(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = svc
	}
}

// WithAuth sets the authentication use case
func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Definition = NewDefinitionUseCase(repo)
	uc.Object = NewObjectUseCase(repo, uc.notifier)
	uc.Board = NewBoardUseCase(repo)
	uc.Group = NewGroupUseCase(repo)
	uc.Endpoint = NewEndpointUseCase(repo)
	uc.User = NewUserUseCase(repo)
	uc.Dashboard = NewDashboardUseCase(repo)
	uc.Log = NewLogUseCase(repo)

	return uc
}
