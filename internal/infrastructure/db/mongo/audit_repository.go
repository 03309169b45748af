package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chooy/admin-console/internal/core/domain"
)

const auditCollection = "audit_entries"

// MongoAuditRepository persists the operator mutation trail.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	ActorID    string             `bson:"actor_id"`
	Actor      string             `bson:"actor"`
	Action     string             `bson:"action"`
	Resource   string             `bson:"resource"`
	ResourceID string             `bson:"resource_id,omitempty"`
	At         int64              `bson:"at"`
}

func (r *MongoAuditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDoc{
		ActorID:    entry.ActorID,
		Actor:      entry.Actor,
		Action:     entry.Action,
		Resource:   entry.Resource,
		ResourceID: entry.ResourceID,
		At:         entry.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (r *MongoAuditRepository) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []auditDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}

	entries := make([]domain.AuditEntry, len(docs))
	for i, doc := range docs {
		entries[i] = domain.AuditEntry{
			ID:         doc.ID.Hex(),
			ActorID:    doc.ActorID,
			Actor:      doc.Actor,
			Action:     doc.Action,
			Resource:   doc.Resource,
			ResourceID: doc.ResourceID,
			At:         time.Unix(doc.At, 0).UTC(),
		}
	}
	return entries, nil
}
