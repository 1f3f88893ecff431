package contentRepo

import (
	"context"
	"errors"

	"sitecms/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by GetByID when no document has the given id.
var ErrNotFound = errors.New("document not found")

// ContentRepository defines data access for one content collection.
type ContentRepository interface {
	// Insert stores a new document and returns its generated id.
	Insert(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	// List returns every document in the collection, unsorted.
	List(ctx context.Context) ([]models.Document, error)
	// GetByID returns the document with the given id or ErrNotFound.
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Document, error)
	// DeleteByID removes the document with the given id if it exists.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int64, error)
}
