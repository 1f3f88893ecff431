package contentRepo

import (
	"context"
	"errors"
	"fmt"

	"sitecms/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoContentRepo implements ContentRepository on a single Mongo collection.
type MongoContentRepo struct {
	coll *mongo.Collection
}

// NewMongoContentRepo returns a repository for the named collection of db.
func NewMongoContentRepo(db *mongo.Database, collection string) ContentRepository {
	return &MongoContentRepo{coll: db.Collection(collection)}
}

// Insert stores doc; the driver assigns an ObjectID when doc has no _id.
func (r *MongoContentRepo) Insert(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", r.coll.Name(), err)
	}
	out := &models.InsertResult{Acknowledged: true}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		out.InsertedID = oid.Hex()
	} else {
		out.InsertedID = fmt.Sprint(res.InsertedID)
	}
	return out, nil
}

func (r *MongoContentRepo) List(ctx context.Context) ([]models.Document, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", r.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := make([]models.Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", r.coll.Name(), err)
	}
	return docs, nil
}

func (r *MongoContentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error) {
	var doc models.Document
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch %s with id %s: %w", r.coll.Name(), id.Hex(), err)
	}
	return doc, nil
}

// DeleteByID does not treat a missing document as an error; DeletedCount is zero instead.
func (r *MongoContentRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s with id %s: %w", r.coll.Name(), id.Hex(), err)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (r *MongoContentRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", r.coll.Name(), err)
	}
	return n, nil
}
