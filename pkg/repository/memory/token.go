package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/gui-far/objectboard/pkg/domain/model/auth"
)

type tokenStore struct {
	mu          sync.RWMutex
	tokens      map[auth.TokenID]*auth.Token
	resetTokens map[string]*auth.ResetToken
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		tokens:      make(map[auth.TokenID]*auth.Token),
		resetTokens: make(map[string]*auth.ResetToken),
	}
}

func copyToken(t *auth.Token) *auth.Token {
	copied := *t
	return &copied
}

func copyResetToken(t *auth.ResetToken) *auth.ResetToken {
	copied := *t
	return &copied
}

func (m *Memory) PutToken(ctx context.Context, token *auth.Token) error {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	m.tokens.tokens[token.ID] = copyToken(token)
	return nil
}

func (m *Memory) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	m.tokens.mu.RLock()
	defer m.tokens.mu.RUnlock()

	token, exists := m.tokens.tokens[tokenID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenId", tokenID))
	}
	return copyToken(token), nil
}

func (m *Memory) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	if _, exists := m.tokens.tokens[tokenID]; !exists {
		return goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenId", tokenID))
	}
	delete(m.tokens.tokens, tokenID)
	return nil
}

func (m *Memory) PutResetToken(ctx context.Context, token *auth.ResetToken) error {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	m.tokens.resetTokens[token.Token] = copyResetToken(token)
	return nil
}

func (m *Memory) ConsumeResetToken(ctx context.Context, token string) (*auth.ResetToken, error) {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	stored, exists := m.tokens.resetTokens[token]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "reset token not found")
	}
	delete(m.tokens.resetTokens, token)
	return copyResetToken(stored), nil
}
