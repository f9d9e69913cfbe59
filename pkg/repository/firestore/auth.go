package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gui-far/objectboard/pkg/domain/model/auth"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type tokenRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTokenRepository(client *firestore.Client) *tokenRepository {
	return &tokenRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *tokenRepository) tokensCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tokens"
	}
	return "tokens"
}

func (r *tokenRepository) resetTokensCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_reset_tokens"
	}
	return "reset_tokens"
}

type tokenDoc struct {
	ID        string
	Sub       string
	Email     string
	IsAdmin   bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

type resetTokenDoc struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (f *Firestore) PutToken(ctx context.Context, token *auth.Token) error {
	doc := &tokenDoc{
		ID:        token.ID.String(),
		Sub:       string(token.Sub),
		Email:     token.Email,
		IsAdmin:   token.IsAdmin,
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}

	docRef := f.client.Collection(f.tokens.tokensCollection()).Doc(doc.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put token", goerr.V("tokenId", token.ID))
	}

	return nil
}

func (f *Firestore) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	docRef := f.client.Collection(f.tokens.tokensCollection()).Doc(tokenID.String())
	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenId", tokenID))
		}
		return nil, goerr.Wrap(err, "failed to get token", goerr.V("tokenId", tokenID))
	}

	var doc tokenDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode token", goerr.V("tokenId", tokenID))
	}

	return &auth.Token{
		ID:        auth.TokenID(doc.ID),
		Sub:       types.UserID(doc.Sub),
		Email:     doc.Email,
		IsAdmin:   doc.IsAdmin,
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (f *Firestore) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	docRef := f.client.Collection(f.tokens.tokensCollection()).Doc(tokenID.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "token not found", goerr.V("tokenId", tokenID))
		}
		return goerr.Wrap(err, "failed to get token", goerr.V("tokenId", tokenID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete token", goerr.V("tokenId", tokenID))
	}

	return nil
}

func (f *Firestore) PutResetToken(ctx context.Context, token *auth.ResetToken) error {
	doc := &resetTokenDoc{
		Token:     token.Token,
		UserID:    string(token.UserID),
		ExpiresAt: token.ExpiresAt,
		CreatedAt: token.CreatedAt,
	}

	docRef := f.client.Collection(f.tokens.resetTokensCollection()).Doc(doc.Token)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put reset token", goerr.V("userId", token.UserID))
	}

	return nil
}

// ConsumeResetToken reads and deletes the token in one transaction so it
// can be used at most once.
func (f *Firestore) ConsumeResetToken(ctx context.Context, token string) (*auth.ResetToken, error) {
	docRef := f.client.Collection(f.tokens.resetTokensCollection()).Doc(token)

	var doc resetTokenDoc
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docSnap, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "reset token not found")
			}
			return goerr.Wrap(err, "failed to get reset token")
		}
		if err := docSnap.DataTo(&doc); err != nil {
			return goerr.Wrap(err, "failed to decode reset token")
		}
		return tx.Delete(docRef)
	})
	if err != nil {
		return nil, err
	}

	return &auth.ResetToken{
		Token:     doc.Token,
		UserID:    types.UserID(doc.UserID),
		ExpiresAt: doc.ExpiresAt,
		CreatedAt: doc.CreatedAt,
	}, nil
}
