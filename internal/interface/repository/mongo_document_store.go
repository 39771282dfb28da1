package repository

import (
	"context"
	"fmt"

	"travelbook-service/internal/domain/entity"
	"travelbook-service/internal/domain/repository"
	"travelbook-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// MongoDocumentStore implements the DocumentStore interface on MongoDB.
// Each namespace maps to a collection and the document key to _id, so the
// store's unique index on _id enforces insert-not-upsert semantics.
type MongoDocumentStore struct {
	db     *mongo.Database
	logger logger.Logger
}

// NewMongoDocumentStore creates a new MongoDB document store
func NewMongoDocumentStore(db *mongo.Database, logger logger.Logger) repository.DocumentStore {
	return &MongoDocumentStore{
		db:     db,
		logger: logger,
	}
}

// Get fetches a document by key
func (s *MongoDocumentStore) Get(ctx context.Context, namespace, key string) (entity.Document, error) {
	var raw bson.M
	err := s.db.Collection(namespace).FindOne(ctx, bson.M{"_id": key}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("%w: %s", repository.ErrKeyNotFound, key)
		}
		return nil, err
	}

	doc := normalizeDocument(raw)
	delete(doc, "_id")
	return doc, nil
}

// Insert writes a new document, honoring the requested durability level
func (s *MongoDocumentStore) Insert(ctx context.Context, namespace, key string, doc entity.Document, durability repository.DurabilityLevel) error {
	stored := bson.M{"_id": key}
	for k, v := range doc {
		stored[k] = v
	}

	_, err := s.collection(namespace, durability).InsertOne(ctx, stored)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", repository.ErrKeyExists, key)
		}
		s.logger.Error("Insert failed", "namespace", namespace, "key", key, "error", err)
		return err
	}
	return nil
}

// Upsert replaces the whole document, creating it if absent
func (s *MongoDocumentStore) Upsert(ctx context.Context, namespace, key string, doc entity.Document) error {
	stored := bson.M{"_id": key}
	for k, v := range doc {
		stored[k] = v
	}

	opts := options.Replace().SetUpsert(true)
	_, err := s.db.Collection(namespace).ReplaceOne(ctx, bson.M{"_id": key}, stored, opts)
	if err != nil {
		s.logger.Error("Upsert failed", "namespace", namespace, "key", key, "error", err)
	}
	return err
}

// collection resolves a namespace, cloning it with a stronger write concern
// when a non-default durability level was requested.
func (s *MongoDocumentStore) collection(namespace string, durability repository.DurabilityLevel) *mongo.Collection {
	if durability == repository.DurabilityNone {
		return s.db.Collection(namespace)
	}

	wc := writeconcern.Majority()
	if durability == repository.DurabilityMajorityPersisted {
		journal := true
		wc.Journal = &journal
	}
	return s.db.Collection(namespace, options.Collection().SetWriteConcern(wc))
}

// normalizeDocument converts the driver's bson containers into plain maps
// and slices so callers never see primitive.D or primitive.A.
func normalizeDocument(raw bson.M) entity.Document {
	doc := make(entity.Document, len(raw))
	for k, v := range raw {
		doc[k] = normalizeValue(v)
	}
	return doc
}

func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case bson.M:
		return normalizeDocument(t)
	case bson.D:
		doc := make(entity.Document, len(t))
		for _, e := range t {
			doc[e.Key] = normalizeValue(e.Value)
		}
		return doc
	case primitive.A:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}
		return out
	default:
		return v
	}
}
