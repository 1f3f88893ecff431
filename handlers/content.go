package handlers

import (
	"errors"
	"net/http"
	"strings"

	"sitecms/middleware"
	"sitecms/services/content"
	"sitecms/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentHandler serves the CRUD endpoints of one content collection.
type ContentHandler struct {
	Service content.ContentService
	Logger  *zap.Logger
}

func NewContentHandler(svc content.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{Service: svc, Logger: logger}
}

// CreateHandler handles POST /api/<collection>.
func (h *ContentHandler) CreateHandler(c *gin.Context) {
	res := h.Service.Resource()
	upload, _ := middleware.UploadedImage(c)

	fields, err := submittedFields(c)
	if err != nil {
		h.Logger.Warn("Create: invalid request body", zap.String("collection", res.Collection), zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.Service.Create(c.Request.Context(), fields, upload)
	if err != nil {
		h.Logger.Error("Create: failed to store document", zap.String("collection", res.Collection), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Respond(c, http.StatusCreated, result)
}

// ListHandler handles GET /api/<collection>.
func (h *ContentHandler) ListHandler(c *gin.Context) {
	docs, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("List: failed to fetch documents", zap.String("collection", h.Service.Resource().Collection), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.Respond(c, http.StatusOK, docs)
}

// GetHandler handles GET /api/<collection>/:id.
func (h *ContentHandler) GetHandler(c *gin.Context) {
	id := c.Param("id")
	doc, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "Get", id, err)
		return
	}
	utils.Respond(c, http.StatusOK, doc)
}

// DeleteHandler handles DELETE /api/<collection>/:id. Deleting a missing document succeeds
// with a zero count.
func (h *ContentHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	result, err := h.Service.Delete(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "Delete", id, err)
		return
	}
	utils.Respond(c, http.StatusOK, result)
}

func (h *ContentHandler) writeError(c *gin.Context, op, id string, err error) {
	res := h.Service.Resource()
	switch {
	case errors.Is(err, content.ErrInvalidID):
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+strings.ToLower(res.Name)+" id")
	case errors.Is(err, content.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, res.Name+" not found")
	default:
		h.Logger.Error(op+": store error", zap.String("collection", res.Collection), zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

// submittedFields collects the body fields of a JSON, multipart or urlencoded request.
// Repeated form keys become string slices.
func submittedFields(c *gin.Context) (map[string]any, error) {
	switch c.ContentType() {
	case gin.MIMEJSON:
		fields := map[string]any{}
		if err := c.ShouldBindJSON(&fields); err != nil {
			return nil, err
		}
		return fields, nil
	case gin.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		return flatten(form.Value), nil
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		return flatten(c.Request.PostForm), nil
	}
}

func flatten(values map[string][]string) map[string]any {
	fields := make(map[string]any, len(values))
	for k, v := range values {
		switch len(v) {
		case 0:
		case 1:
			fields[k] = v[0]
		default:
			fields[k] = v
		}
	}
	return fields
}
