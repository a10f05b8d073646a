package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	apperrors "github.com/cinevault/cinevault/errors"
)

// Favorite is a saved movie owned by one identity.
type Favorite struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     string        `bson:"owner_id" json:"ownerId"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Poster      string        `bson:"poster,omitempty" json:"poster,omitempty"`
	ReleaseDate string        `bson:"release_date,omitempty" json:"releaseDate,omitempty"`
	TmdbID      int64         `bson:"tmdb_id,omitempty" json:"tmdbId,omitempty"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
}

// FavoriteInput is the caller-supplied part of a favorite.
type FavoriteInput struct {
	Title       string
	Description string
	Poster      string
	ReleaseDate string
	TmdbID      int64
}

// FavoriteStore persists favorites in the favorites collection.
type FavoriteStore struct {
	store *Store
}

// List returns one page of the owner's favorites, newest first, along with
// the owner's total count. The slice is never nil.
func (fs *FavoriteStore) List(ctx context.Context, ownerID string, page, limit int) ([]Favorite, int64, error) {
	coll, err := fs.store.collection(favoritesCollection)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	opCtx, cancel := fs.store.opContext(ctx)
	defer cancel()

	filter := bson.M{"owner_id": ownerID}

	total, err := coll.CountDocuments(opCtx, filter)
	if err != nil {
		return nil, 0, apperrors.DBError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	cursor, err := coll.Find(opCtx, filter, opts)
	if err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	defer func() { _ = cursor.Close(opCtx) }()

	items := make([]Favorite, 0, limit)
	if err := cursor.All(opCtx, &items); err != nil {
		return nil, 0, apperrors.DBError(err)
	}
	return items, total, nil
}

// Create inserts a favorite for the owner.
func (fs *FavoriteStore) Create(ctx context.Context, ownerID string, input FavoriteInput) (*Favorite, error) {
	coll, err := fs.store.collection(favoritesCollection)
	if err != nil {
		return nil, err
	}

	fav := &Favorite{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Poster:      input.Poster,
		ReleaseDate: input.ReleaseDate,
		TmdbID:      input.TmdbID,
		CreatedAt:   time.Now().UTC(),
	}

	opCtx, cancel := fs.store.opContext(ctx)
	defer cancel()

	res, err := coll.InsertOne(opCtx, fav)
	if err != nil {
		return nil, apperrors.DBError(err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		fav.ID = oid
	}
	return fav, nil
}

// Delete removes the owner's favorite by id. An id that is not a valid
// ObjectID is invalid_id; a well-formed id that matches nothing the owner
// has is not_found.
func (fs *FavoriteStore) Delete(ctx context.Context, ownerID, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.InvalidID()
	}

	coll, collErr := fs.store.collection(favoritesCollection)
	if collErr != nil {
		return collErr
	}

	opCtx, cancel := fs.store.opContext(ctx)
	defer cancel()

	res, err := coll.DeleteOne(opCtx, bson.M{"_id": oid, "owner_id": ownerID})
	if err != nil {
		return apperrors.DBError(err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("favorite")
	}
	return nil
}
