package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	contentRepo "sitecms/database/repository/content"
	"sitecms/models"
	"sitecms/services/storage"
	"sitecms/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// reservedFields are never taken from submitted input.
var reservedFields = []string{"_id", "createdAt", "image"}

// DefaultContentService is the production implementation.
type DefaultContentService struct {
	resource models.Resource
	Repo     contentRepo.ContentRepository
	Media    storage.MediaStore
	Ledger   storage.UploadLedger
	Logger   *zap.Logger

	now func() time.Time
}

// NewContentService wires a service for resource. A nil ledger disables upload tracking.
func NewContentService(resource models.Resource, repo contentRepo.ContentRepository, media storage.MediaStore, ledger storage.UploadLedger, logger *zap.Logger) *DefaultContentService {
	if ledger == nil {
		ledger = storage.NoopLedger{}
	}
	return &DefaultContentService{
		resource: resource,
		Repo:     repo,
		Media:    media,
		Ledger:   ledger,
		Logger:   logger,
		now:      time.Now,
	}
}

func (s *DefaultContentService) Resource() models.Resource {
	return s.resource
}

func (s *DefaultContentService) Create(ctx context.Context, fields map[string]any, upload *storage.UploadResult) (*models.InsertResult, error) {
	doc := make(models.Document, len(fields)+2)
	for k, v := range fields {
		doc[k] = v
	}
	for _, k := range reservedFields {
		delete(doc, k)
	}
	if s.resource.HasImage && upload != nil {
		doc["image"] = upload.URL
	}
	doc["createdAt"] = s.now().UTC()

	res, err := s.Repo.Insert(ctx, doc)
	if err != nil {
		if upload != nil {
			s.compensate(ctx, upload.PublicID)
		}
		return nil, err
	}

	if upload != nil {
		if err := s.Ledger.Confirm(ctx, upload.PublicID); err != nil {
			s.Logger.Warn("Create: failed to confirm upload in ledger",
				zap.String("collection", s.resource.Collection),
				zap.String("publicID", upload.PublicID),
				zap.Error(err))
		}
	}
	return res, nil
}

// compensate deletes an uploaded file whose document could not be stored. Failures are
// logged only; the ledger entry stays pending so the sweeper retries later.
func (s *DefaultContentService) compensate(ctx context.Context, publicID string) {
	// The request may already be cancelled; the remote delete must still run.
	ctx = context.WithoutCancel(ctx)
	if err := s.Media.Delete(ctx, publicID); err != nil {
		utils.CompensationsTotal.WithLabelValues("failed").Inc()
		s.Logger.Error("Create: failed to delete orphaned upload",
			zap.String("collection", s.resource.Collection),
			zap.String("publicID", publicID),
			zap.Error(err))
		return
	}
	utils.CompensationsTotal.WithLabelValues("deleted").Inc()
	if err := s.Ledger.Confirm(ctx, publicID); err != nil {
		s.Logger.Warn("Create: failed to clear ledger entry", zap.String("publicID", publicID), zap.Error(err))
	}
}

func (s *DefaultContentService) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

func (s *DefaultContentService) Get(ctx context.Context, id string) (models.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			return nil, fmt.Errorf("%s %s: %w", s.resource.Name, id, ErrNotFound)
		}
		return nil, err
	}
	return doc, nil
}

func (s *DefaultContentService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.Repo.DeleteByID(ctx, oid)
}

func (s *DefaultContentService) Count(ctx context.Context) (int64, error) {
	return s.Repo.Count(ctx)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return oid, nil
}
