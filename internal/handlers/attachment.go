package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ecotrash/todo-backend/internal/dto"
	apierrors "github.com/ecotrash/todo-backend/internal/errors"
	"github.com/ecotrash/todo-backend/internal/services"
	"github.com/ecotrash/todo-backend/internal/utils"
)

type AttachmentHandler struct {
	service *services.AttachmentService
}

func NewAttachmentHandler(service *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// ListAttachments returns attachments, optionally filtered by ?todo=
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	var todoID *uint64
	if raw := c.Query("todo"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid filter", map[string]string{"todo": "must be a numeric id"})
			return
		}
		todoID = &id
	}

	params := utils.GetPaginationParams(c)
	attachments, total, err := h.service.ListAttachments(todoID, params)
	if err != nil {
		zap.L().Error("failed to list attachments", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch attachments")
		return
	}

	items := make([]dto.AttachmentDTO, len(attachments))
	for i, attachment := range attachments {
		items[i] = dto.ToAttachmentDTO(attachment, h.service.FileURL(&attachment))
	}

	c.JSON(http.StatusOK, gin.H{
		"attachments": items,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetAttachment returns a specific attachment by ID
func (h *AttachmentHandler) GetAttachment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	attachment, err := h.service.GetAttachment(id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAttachmentDTO(*attachment, h.service.FileURL(attachment)))
}

// UploadAttachment accepts a multipart form with a todo id and a file
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	todoIDStr := c.PostForm("todo")
	todoID, err := strconv.ParseUint(todoIDStr, 10, 64)
	if err != nil || todoID == 0 {
		apierrors.BadRequestWithDetails(c, "Invalid request", map[string]string{"todo": "must be a numeric id"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request", map[string]string{"file": "a file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		zap.L().Error("failed to open uploaded file", zap.Error(err))
		apierrors.InternalError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	attachment, err := h.service.Upload(todoID, fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrTodoNotFound) {
			apierrors.BadRequestWithDetails(c, "Invalid request", map[string]string{"todo": err.Error()})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAttachmentDTO(*attachment, h.service.FileURL(attachment)))
}

// DownloadAttachment streams the stored payload
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	attachment, stream, err := h.service.Open(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.Filename+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		zap.L().Warn("attachment download interrupted",
			zap.Uint64("attachment_id", attachment.ID),
			zap.Error(err))
	}
}

// DeleteAttachment destroys an attachment and its stored file
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAttachment(id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AttachmentHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAttachmentNotFound):
		apierrors.NotFound(c, "Attachment not found")
	default:
		zap.L().Error("attachment request failed", zap.Error(err))
		apierrors.InternalError(c, "")
	}
}
