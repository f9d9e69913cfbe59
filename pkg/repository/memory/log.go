package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type logRepository struct {
	mu   sync.RWMutex
	logs map[string]*model.ErrorLog
}

func newLogRepository() *logRepository {
	return &logRepository{
		logs: make(map[string]*model.ErrorLog),
	}
}

func copyLog(l *model.ErrorLog) *model.ErrorLog {
	copied := *l
	return &copied
}

func (r *logRepository) Append(ctx context.Context, entry *model.ErrorLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyLog(entry)
	if stored.ID == "" {
		stored.ID = model.NewLogID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	r.logs[stored.ID] = stored
	return nil
}

func (r *logRepository) Get(ctx context.Context, id string) (*model.ErrorLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.logs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "log entry not found", goerr.V("id", id))
	}
	return copyLog(entry), nil
}

func (r *logRepository) ListByKind(ctx context.Context, kind types.LogKind) ([]*model.ErrorLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*model.ErrorLog
	for _, l := range r.logs {
		if l.Kind == kind {
			entries = append(entries, copyLog(l))
		}
	}
	// ULIDs sort chronologically; newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
	return entries, nil
}
