package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/cinevault/cinevault/auth"
	apperrors "github.com/cinevault/cinevault/errors"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Identity is a registered account. The password hash is excluded from every
// serialized view.
type Identity struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Name         string        `bson:"name,omitempty" json:"name,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at" json:"updatedAt"`
}

// NormalizeEmail lowercases and trims an email before storage or comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IdentityStore persists identities in the users collection.
type IdentityStore struct {
	store  *Store
	hasher *auth.PasswordHasher
}

// Register validates input, hashes the password, and inserts a new identity.
// The unique email index turns a concurrent duplicate insert into
// email_exists; validation failures never touch the collection.
func (is *IdentityStore) Register(ctx context.Context, email, password, name string) (*Identity, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidPayload("email is required")
	}
	if len(password) < MinPasswordLength {
		return nil, apperrors.InvalidPayload("password must be at least 6 characters")
	}

	coll, err := is.store.collection(usersCollection)
	if err != nil {
		return nil, err
	}

	hash, err := is.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now().UTC()
	identity := &Identity{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	opCtx, cancel := is.store.opContext(ctx)
	defer cancel()

	res, err := coll.InsertOne(opCtx, identity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.EmailExists()
		}
		return nil, apperrors.DBError(err)
	}

	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		identity.ID = oid
	}
	return identity, nil
}

// FindByEmail looks up an identity by normalized email.
func (is *IdentityStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	coll, err := is.store.collection(usersCollection)
	if err != nil {
		return nil, err
	}

	opCtx, cancel := is.store.opContext(ctx)
	defer cancel()

	var identity Identity
	err = coll.FindOne(opCtx, bson.M{"email": NormalizeEmail(email)}).Decode(&identity)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("identity")
		}
		return nil, apperrors.DBError(err)
	}
	return &identity, nil
}

// VerifyPassword reports whether the password matches the stored hash using
// the bcrypt comparison primitive.
func (is *IdentityStore) VerifyPassword(identity *Identity, password string) bool {
	if identity == nil {
		return false
	}
	return is.hasher.Verify(password, identity.PasswordHash)
}
