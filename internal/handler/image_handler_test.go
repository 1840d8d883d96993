package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"sartor/internal/domain"
	"sartor/internal/handler"
	"sartor/internal/middleware"
	"sartor/mocks"
)

func setAuthContext(c *gin.Context, userID uuid.UUID, role string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, role)
	c.Set(middleware.ContextKeyEmail, "user@test.com")
}

func multipartImage(category string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "fitting.jpg")
	_, _ = part.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02})
	_ = writer.WriteField("category", category)
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestImageHandler_Upload_Success(t *testing.T) {
	imageSvc := new(mocks.MockImageService)
	orderSvc := new(mocks.MockOrderService)
	h := handler.NewImageHandler(imageSvc, orderSvc)

	userID := uuid.New()
	orderID := uuid.New()
	order := &domain.Order{ID: orderID, ClientID: userID}
	img := &domain.OrderImage{
		ID:        uuid.New(),
		OrderID:   orderID,
		ObjectKey: "orders/2026/08/28/x.jpg",
		Category:  domain.ImageCategoryBefore,
	}

	orderSvc.On("GetByID", mock.Anything, userID, domain.RoleClient, orderID).Return(order, nil)
	imageSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.ImageUploadInput")).
		Return(img, nil)

	body, contentType := multipartImage("before")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/images", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{{Key: "id", Value: orderID.String()}}
	setAuthContext(c, userID, "client")

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	imageSvc.AssertExpectations(t)
}

func TestImageHandler_Upload_ForeignOrderForbidden(t *testing.T) {
	imageSvc := new(mocks.MockImageService)
	orderSvc := new(mocks.MockOrderService)
	h := handler.NewImageHandler(imageSvc, orderSvc)

	userID := uuid.New()
	orderID := uuid.New()

	orderSvc.On("GetByID", mock.Anything, userID, domain.RoleClient, orderID).
		Return(nil, domain.ErrForbidden)

	body, contentType := multipartImage("before")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/images", body)
	c.Request.Header.Set("Content-Type", contentType)
	c.Params = gin.Params{{Key: "id", Value: orderID.String()}}
	setAuthContext(c, userID, "client")

	h.Upload(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	imageSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestImageHandler_Upload_MissingFile(t *testing.T) {
	imageSvc := new(mocks.MockImageService)
	orderSvc := new(mocks.MockOrderService)
	h := handler.NewImageHandler(imageSvc, orderSvc)

	userID := uuid.New()
	orderID := uuid.New()
	order := &domain.Order{ID: orderID, ClientID: userID}
	orderSvc.On("GetByID", mock.Anything, userID, domain.RoleClient, orderID).Return(order, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/images", nil)
	c.Params = gin.Params{{Key: "id", Value: orderID.String()}}
	setAuthContext(c, userID, "client")

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImageHandler_Upload_InvalidOrderID(t *testing.T) {
	imageSvc := new(mocks.MockImageService)
	orderSvc := new(mocks.MockOrderService)
	h := handler.NewImageHandler(imageSvc, orderSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/orders/not-a-uuid/images", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, uuid.New(), "client")

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	orderSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestImageHandler_List_Success(t *testing.T) {
	imageSvc := new(mocks.MockImageService)
	orderSvc := new(mocks.MockOrderService)
	h := handler.NewImageHandler(imageSvc, orderSvc)

	userID := uuid.New()
	orderID := uuid.New()
	order := &domain.Order{ID: orderID, ClientID: userID}
	images := []domain.OrderImage{
		{ID: uuid.New(), OrderID: orderID, DownloadURL: "https://fresh/a"},
	}

	orderSvc.On("GetByID", mock.Anything, userID, domain.RoleClient, orderID).Return(order, nil)
	imageSvc.On("ListByOrder", mock.Anything, orderID).Return(images, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/images", nil)
	c.Params = gin.Params{{Key: "id", Value: orderID.String()}}
	setAuthContext(c, userID, "client")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImageHandler_Delete_NotFound(t *testing.T) {
	imageSvc := new(mocks.MockImageService)
	orderSvc := new(mocks.MockOrderService)
	h := handler.NewImageHandler(imageSvc, orderSvc)

	orderID := uuid.New()
	imageID := uuid.New()
	imageSvc.On("Delete", mock.Anything, orderID, imageID).Return(false, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/x", nil)
	c.Params = gin.Params{
		{Key: "id", Value: orderID.String()},
		{Key: "imageID", Value: imageID.String()},
	}
	setAuthContext(c, uuid.New(), "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImageHandler_Delete_Success(t *testing.T) {
	imageSvc := new(mocks.MockImageService)
	orderSvc := new(mocks.MockOrderService)
	h := handler.NewImageHandler(imageSvc, orderSvc)

	orderID := uuid.New()
	imageID := uuid.New()
	imageSvc.On("Delete", mock.Anything, orderID, imageID).Return(true, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodDelete, "/x", nil)
	c.Params = gin.Params{
		{Key: "id", Value: orderID.String()},
		{Key: "imageID", Value: imageID.String()},
	}
	setAuthContext(c, uuid.New(), "admin")

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
