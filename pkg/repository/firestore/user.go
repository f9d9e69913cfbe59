package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *userRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_users"
	}
	return "users"
}

type userDoc struct {
	ID           string
	Email        string
	PasswordHash []byte
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func userToDoc(u *model.User) *userDoc {
	return &userDoc{
		ID:           string(u.ID),
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func userFromDoc(doc *userDoc) *model.User {
	return &model.User{
		ID:           types.UserID(doc.ID),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		IsAdmin:      doc.IsAdmin,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func (r *userRepository) emailTaken(ctx context.Context, email string) (bool, error) {
	iter := r.client.Collection(r.collection()).
		Where("Email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to check email uniqueness", goerr.V("email", email))
	}
	return true, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	taken, err := r.emailTaken(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, goerr.Wrap(ErrConflict, "email already registered", goerr.V("email", user.Email))
	}

	now := time.Now().UTC()
	created := *user
	created.ID = types.UserID(uuid.NewString())
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := userToDoc(&created)
	if _, err := r.client.Collection(r.collection()).Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var doc userDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("id", id))
	}

	return userFromDoc(&doc), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	iter := r.client.Collection(r.collection()).
		Where("Email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("email", email))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query user", goerr.V("email", email))
	}

	var doc userDoc
	if err := docSnap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return userFromDoc(&doc), nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var users []*model.User
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var doc userDoc
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode user", goerr.V("doc_id", docSnap.Ref.ID))
		}

		users = append(users, userFromDoc(&doc))
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) (*model.User, error) {
	docRef := r.client.Collection(r.collection()).Doc(string(user.ID))

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", user.ID))
		}
		return nil, goerr.Wrap(err, "failed to check user existence", goerr.V("id", user.ID))
	}

	var existing userDoc
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("id", user.ID))
	}

	if user.Email != existing.Email {
		taken, err := r.emailTaken(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, goerr.Wrap(ErrConflict, "email already registered", goerr.V("email", user.Email))
		}
	}

	updated := *user
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, userToDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update user", goerr.V("id", user.ID))
	}

	return &updated, nil
}
