package memory

import (
	"github.com/gui-far/objectboard/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	definition      *definitionRepository
	definitionGroup *definitionGroupRepository
	object          *objectRepository
	history         *historyRepository
	group           *groupRepository
	endpoint        *endpointRepository
	user            *userRepository
	log             *logRepository
	tokens          *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		definition:      newDefinitionRepository(),
		definitionGroup: newDefinitionGroupRepository(),
		object:          newObjectRepository(),
		history:         newHistoryRepository(),
		group:           newGroupRepository(),
		endpoint:        newEndpointRepository(),
		user:            newUserRepository(),
		log:             newLogRepository(),
		tokens:          newTokenStore(),
	}
}

func (m *Memory) Definition() interfaces.DefinitionRepository {
	return m.definition
}

func (m *Memory) DefinitionGroup() interfaces.DefinitionGroupRepository {
	return m.definitionGroup
}

func (m *Memory) Object() interfaces.ObjectRepository {
	return m.object
}

func (m *Memory) History() interfaces.HistoryRepository {
	return m.history
}

func (m *Memory) Group() interfaces.GroupRepository {
	return m.group
}

func (m *Memory) Endpoint() interfaces.EndpointRepository {
	return m.endpoint
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Log() interfaces.LogRepository {
	return m.log
}

func (m *Memory) Close() error {
	return nil
}
