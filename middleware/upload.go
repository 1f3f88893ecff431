package middleware

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"

	"sitecms/services/storage"
	"sitecms/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const uploadContextKey = "uploadedImage"

// multipartOverhead is the allowance for form fields and part headers on top of the file cap.
const multipartOverhead = 1 << 20

const (
	msgMissingImage = "Please upload an image"
	msgBadType      = "Only JPEG, PNG and GIF images are allowed"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// UploadOptions configures ImageUpload.
type UploadOptions struct {
	// Field is the multipart field holding the file.
	Field string
	// MaxBytes caps the file size.
	MaxBytes int64
	// Folder prefixes the remote public ID.
	Folder string
}

// ImageUpload accepts a single image from a multipart form, stores it on the media host and
// exposes the result to the next handler through UploadedImage. The remote ID is tracked in
// ledger before the upload so a file orphaned by a later failure can be swept.
func ImageUpload(media storage.MediaStore, ledger storage.UploadLedger, opts UploadOptions, logger *zap.Logger) gin.HandlerFunc {
	if ledger == nil {
		ledger = storage.NoopLedger{}
	}
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, opts.MaxBytes+multipartOverhead)

		fileHeader, err := c.FormFile(opts.Field)
		if err != nil {
			status, msg := classifyFormError(err, opts.MaxBytes)
			logger.Warn("ImageUpload: rejected upload",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			utils.UploadsTotal.WithLabelValues("rejected").Inc()
			utils.JSONError(c, status, msg)
			return
		}
		if fileHeader.Size > opts.MaxBytes {
			utils.UploadsTotal.WithLabelValues("rejected").Inc()
			utils.JSONError(c, http.StatusBadRequest, tooLargeMessage(opts.MaxBytes))
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			utils.UploadsTotal.WithLabelValues("failed").Inc()
			utils.JSONError(c, http.StatusInternalServerError, "Failed to read uploaded file: "+err.Error())
			return
		}
		defer file.Close()

		contentType, err := sniff(file)
		if err != nil {
			utils.UploadsTotal.WithLabelValues("failed").Inc()
			utils.JSONError(c, http.StatusInternalServerError, "Failed to read uploaded file: "+err.Error())
			return
		}
		if !allowedImageTypes[contentType] {
			utils.UploadsTotal.WithLabelValues("rejected").Inc()
			utils.JSONError(c, http.StatusBadRequest, msgBadType)
			return
		}

		ctx := c.Request.Context()
		publicID := path.Join(opts.Folder, uuid.NewString())
		if err := ledger.Track(ctx, publicID); err != nil {
			logger.Warn("ImageUpload: failed to track upload", zap.String("publicID", publicID), zap.Error(err))
		}

		result, err := media.Upload(ctx, storage.UploadInput{
			PublicID:    publicID,
			ContentType: contentType,
			Size:        fileHeader.Size,
			Body:        file,
		})
		if err != nil {
			// Nothing was stored remotely, so there is nothing left to sweep.
			if cerr := ledger.Confirm(ctx, publicID); cerr != nil {
				logger.Warn("ImageUpload: failed to clear ledger entry", zap.String("publicID", publicID), zap.Error(cerr))
			}
			status := http.StatusInternalServerError
			if errors.Is(err, storage.ErrUploadRejected) {
				status = http.StatusBadRequest
			}
			logger.Error("ImageUpload: media host upload failed", zap.String("publicID", publicID), zap.Int("status", status), zap.Error(err))
			utils.UploadsTotal.WithLabelValues("failed").Inc()
			utils.JSONError(c, status, "Image upload failed: "+err.Error())
			return
		}

		utils.UploadsTotal.WithLabelValues("stored").Inc()
		c.Set(uploadContextKey, result)
		c.Next()
	}
}

// UploadedImage returns the file stored by ImageUpload for this request.
func UploadedImage(c *gin.Context) (*storage.UploadResult, bool) {
	v, ok := c.Get(uploadContextKey)
	if !ok {
		return nil, false
	}
	res, ok := v.(*storage.UploadResult)
	return res, ok
}

func classifyFormError(err error, maxBytes int64) (int, string) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), errors.Is(err, multipart.ErrMessageTooLarge):
		return http.StatusBadRequest, tooLargeMessage(maxBytes)
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return http.StatusBadRequest, msgMissingImage
	default:
		return http.StatusBadRequest, fmt.Sprintf("Invalid upload: %v", err)
	}
}

// tooLargeMessage states the configured cap, in MB when it is at least one.
func tooLargeMessage(maxBytes int64) string {
	if maxBytes >= 1<<20 {
		return fmt.Sprintf("File too large. Maximum %sMB allowed.", strconv.FormatFloat(float64(maxBytes)/(1<<20), 'f', -1, 64))
	}
	return fmt.Sprintf("File too large. Maximum %dKB allowed.", (maxBytes+1023)/1024)
}

// sniff detects the content type from the file bytes and rewinds the file.
func sniff(file multipart.File) (string, error) {
	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return "", err
	}
	return mt.String(), nil
}
