package content

import (
	"context"

	"sitecms/models"
	"sitecms/services/storage"
)

// ContentService implements the operations of one content collection.
type ContentService interface {
	Resource() models.Resource
	// Create stores fields plus the uploaded image URL, if any. When the insert fails the
	// uploaded file is deleted from the media host before the error is returned.
	Create(ctx context.Context, fields map[string]any, upload *storage.UploadResult) (*models.InsertResult, error)
	List(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	Count(ctx context.Context) (int64, error)
}
