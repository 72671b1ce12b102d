package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionSessions = "sessions"

// Store keeps one session document per namespace, so writes to several keys
// are a single atomic document update.
//
//	{_id: <namespace>, values: {<key>: <value>}, updated_at, expires_at}
type Store struct {
	col       *mongo.Collection
	namespace string
	ttl       time.Duration
	now       func() time.Time
}

type sessionDoc struct {
	Namespace string            `bson:"_id"`
	Values    map[string]string `bson:"values"`
	UpdatedAt time.Time         `bson:"updated_at"`
	ExpiresAt *time.Time        `bson:"expires_at,omitempty"`
}

// NewStore returns a Store over db's sessions collection. A zero ttl keeps the
// session until its keys are deleted.
func NewStore(db *mongo.Database, namespace string, ttl time.Duration) *Store {
	if namespace == "" {
		namespace = "default"
	}
	s := &Store{namespace: namespace, ttl: ttl, now: time.Now}
	if db != nil {
		s.col = db.Collection(collectionSessions)
	}
	return s
}

// EnsureIndexes creates the TTL index that lets the server reap expired
// sessions.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("mongo create ttl index: %w", err)
	}
	return nil
}

// Get returns the value stored under key. Sessions past their expiry are
// treated as empty even before the TTL monitor removes them.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc sessionDoc
	err := s.col.FindOne(ctx, bson.M{"_id": s.namespace}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo get: %w", err)
	}
	if s.expired(doc) {
		return "", false, nil
	}
	v, ok := doc.Values[key]
	return v, ok, nil
}

// SetMany writes all pairs in one upsert and refreshes the expiry.
func (s *Store) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := s.now().UTC()
	set := bson.M{"updated_at": now}
	for k, v := range values {
		field, err := valueField(k)
		if err != nil {
			return err
		}
		set[field] = v
	}
	update := bson.M{"$set": set}
	if s.ttl > 0 {
		set["expires_at"] = now.Add(s.ttl)
	} else {
		update["$unset"] = bson.M{"expires_at": ""}
	}

	// Drop an expired document first so its stale keys are not revived.
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": s.namespace, "expires_at": bson.M{"$lte": now}}); err != nil {
		return fmt.Errorf("mongo set: %w", err)
	}
	if _, err := s.col.UpdateOne(ctx, bson.M{"_id": s.namespace}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongo set: %w", err)
	}
	return nil
}

// Delete removes keys; missing keys are ignored.
func (s *Store) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	unset := bson.M{}
	for _, k := range keys {
		field, err := valueField(k)
		if err != nil {
			return err
		}
		unset[field] = ""
	}
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": s.namespace}, bson.M{
		"$unset": unset,
		"$set":   bson.M{"updated_at": s.now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	return nil
}

func (s *Store) expired(doc sessionDoc) bool {
	return doc.ExpiresAt != nil && !doc.ExpiresAt.After(s.now())
}

// valueField maps key to its dotted path inside the values subdocument.
func valueField(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, ".$") {
		return "", fmt.Errorf("mongo: invalid session key %q", key)
	}
	return "values." + key, nil
}
