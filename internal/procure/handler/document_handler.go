package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/procureflow/procureflow/internal/procure/service"
)

var allowedDocumentKinds = map[string]bool{
	"certificate": true,
	"invoice":     true,
	"receipt":     true,
}

// DocumentHandler attachment upload and download links
type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Upload multipart attachment upload
// POST /api/v1/documents/:kind
func (h *DocumentHandler) Upload(c *gin.Context) {
	kind := c.Param("kind")
	if !allowedDocumentKinds[kind] {
		BadRequest(c, "unknown document kind: "+kind)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open upload: "+err.Error())
		return
	}
	defer file.Close()

	result, err := h.svc.Upload(
		c.Request.Context(),
		kind,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, result)
}

// DownloadURL fresh presigned link for a stored object
// GET /api/v1/documents/url?object=xxx
func (h *DocumentHandler) DownloadURL(c *gin.Context) {
	objectName := c.Query("object")
	if objectName == "" {
		BadRequest(c, "object is required")
		return
	}

	url, err := h.svc.PresignedURL(c.Request.Context(), objectName)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"url": url})
}
