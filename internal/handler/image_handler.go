package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sartor/internal/domain"
	"sartor/internal/service"
)

// ImageHandler handles order image endpoints.
type ImageHandler struct {
	imageService service.ImageService
	orderService service.OrderService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService service.ImageService, orderService service.OrderService) *ImageHandler {
	return &ImageHandler{imageService: imageService, orderService: orderService}
}

// Upload handles POST /api/v1/orders/:id/images. Multipart form with a "file"
// part and a "category" field.
func (h *ImageHandler) Upload(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	// Ownership is enforced before the file is even opened.
	if _, err := h.orderService.GetByID(c.Request.Context(), userID, role, orderID); err != nil {
		HandleError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.ImageUploadInput{
		OrderID:     orderID,
		UploaderID:  userID,
		Category:    domain.ImageCategory(c.PostForm("category")),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}

	img, err := h.imageService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, img)
}

// List handles GET /api/v1/orders/:id/images
func (h *ImageHandler) List(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	if _, err := h.orderService.GetByID(c.Request.Context(), userID, role, orderID); err != nil {
		HandleError(c, err)
		return
	}

	images, err := h.imageService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, images)
}

// Delete handles DELETE /api/v1/orders/:id/images/:imageID (admin only)
func (h *ImageHandler) Delete(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid order ID")
		return
	}

	imageID, err := uuid.Parse(c.Param("imageID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid image ID")
		return
	}

	deleted, err := h.imageService.Delete(c.Request.Context(), orderID, imageID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if !deleted {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "image not found")
		return
	}

	RespondOK(c, gin.H{"message": "image deleted"})
}
