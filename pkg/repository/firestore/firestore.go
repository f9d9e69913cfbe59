package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/interfaces"
)

type Firestore struct {
	client          *firestore.Client
	definition      *definitionRepository
	definitionGroup *definitionGroupRepository
	object          *objectRepository
	history         *historyRepository
	group           *groupRepository
	endpoint        *endpointRepository
	user            *userRepository
	log             *logRepository
	tokens          *tokenRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, mainly for tests
// sharing one project
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.definition.collectionPrefix = prefix
		f.definitionGroup.collectionPrefix = prefix
		f.object.collectionPrefix = prefix
		f.history.collectionPrefix = prefix
		f.group.collectionPrefix = prefix
		f.endpoint.collectionPrefix = prefix
		f.user.collectionPrefix = prefix
		f.log.collectionPrefix = prefix
		f.tokens.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:          client,
		definition:      newDefinitionRepository(client),
		definitionGroup: newDefinitionGroupRepository(client),
		object:          newObjectRepository(client),
		history:         newHistoryRepository(client),
		group:           newGroupRepository(client),
		endpoint:        newEndpointRepository(client),
		user:            newUserRepository(client),
		log:             newLogRepository(client),
		tokens:          newTokenRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Definition() interfaces.DefinitionRepository {
	return f.definition
}

func (f *Firestore) DefinitionGroup() interfaces.DefinitionGroupRepository {
	return f.definitionGroup
}

func (f *Firestore) Object() interfaces.ObjectRepository {
	return f.object
}

func (f *Firestore) History() interfaces.HistoryRepository {
	return f.history
}

func (f *Firestore) Group() interfaces.GroupRepository {
	return f.group
}

func (f *Firestore) Endpoint() interfaces.EndpointRepository {
	return f.endpoint
}

func (f *Firestore) User() interfaces.UserRepository {
	return f.user
}

func (f *Firestore) Log() interfaces.LogRepository {
	return f.log
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
