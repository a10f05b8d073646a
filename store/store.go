// Package store is the MongoDB-backed persistence layer: identities with a
// unique email index, and per-owner favorites. The store is a lifecycle
// component; when no connection string is configured the service still runs
// and every store operation reports unavailability instead of dereferencing
// a nil handle.
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/cinevault/cinevault/auth"
	"github.com/cinevault/cinevault/component"
	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/logger"
)

const (
	usersCollection     = "users"
	favoritesCollection = "favorites"
)

// Store owns the Mongo client and hands out collection-scoped accessors.
type Store struct {
	cfg    Config
	log    *logger.Logger
	client *mongo.Client
	db     *mongo.Database

	identities *IdentityStore
	favorites  *FavoriteStore
}

// New creates an unconnected store. Start establishes the connection.
func New(cfg Config, hasher *auth.PasswordHasher, log *logger.Logger) *Store {
	cfg.ApplyDefaults()
	s := &Store{cfg: cfg, log: log.WithComponent("store")}
	s.identities = &IdentityStore{store: s, hasher: hasher}
	s.favorites = &FavoriteStore{store: s}
	return s
}

// Name implements component.Component.
func (s *Store) Name() string { return "mongo" }

// Start connects to MongoDB and ensures indexes. A missing connection string
// is not fatal: the service runs degraded and store-backed routes answer
// db_unavailable until a store is configured.
func (s *Store) Start(ctx context.Context) error {
	if s.cfg.URI == "" {
		s.log.Warn("No MongoDB URI configured, store-backed routes will return db_unavailable")
		return nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		s.log.Error("MongoDB client setup failed", logger.ErrorFields("connect", err))
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		s.log.Warn("MongoDB ping failed, continuing; driver will retry", logger.ErrorFields("ping", err))
	}

	s.client = client
	s.db = client.Database(s.cfg.Database)

	if err := s.ensureIndexes(ctx); err != nil {
		s.log.Warn("Index creation failed", logger.ErrorFields("ensure_indexes", err))
	}

	s.log.Info("MongoDB connected", map[string]interface{}{"database": s.cfg.Database})
	return nil
}

// Stop disconnects the client.
func (s *Store) Stop(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	err := s.client.Disconnect(ctx)
	s.client = nil
	s.db = nil
	return err
}

// Health implements component.Component.
func (s *Store) Health(ctx context.Context) component.Health {
	if s.client == nil {
		return component.Health{
			Name:    s.Name(),
			Status:  component.StatusDegraded,
			Message: "not configured",
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.client.Ping(pingCtx, nil); err != nil {
		return component.Health{
			Name:    s.Name(),
			Status:  component.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return component.Health{Name: s.Name(), Status: component.StatusHealthy}
}

// Ready reports whether a database handle exists.
func (s *Store) Ready() bool { return s.db != nil }

// Identities returns the credential store.
func (s *Store) Identities() *IdentityStore { return s.identities }

// Favorites returns the favorites store.
func (s *Store) Favorites() *FavoriteStore { return s.favorites }

// collection returns the named collection or db_unavailable when the store
// is not connected. Every operation goes through this readiness check.
func (s *Store) collection(name string) (*mongo.Collection, error) {
	if s.db == nil {
		return nil, apperrors.DBUnavailable()
	}
	return s.db.Collection(name), nil
}

// opContext derives a per-operation timeout context.
func (s *Store) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.OpTimeout)
}

// ensureIndexes creates the unique email index that makes concurrent
// registrations with the same email race to exactly one winner.
func (s *Store) ensureIndexes(ctx context.Context) error {
	idxCtx, cancel := context.WithTimeout(ctx, s.cfg.ConnectTimeout)
	defer cancel()

	users := s.db.Collection(usersCollection)
	_, err := users.Indexes().CreateOne(idxCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	favorites := s.db.Collection(favoritesCollection)
	_, err = favorites.Indexes().CreateOne(idxCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
