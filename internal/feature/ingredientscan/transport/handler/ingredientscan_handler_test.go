package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cookwhat/internal/feature/ingredientscan/domain/entity"
	"cookwhat/internal/feature/ingredientscan/transport/handler"
	"cookwhat/internal/feature/ingredientscan/usecase"
)

type mockScanUsecase struct {
	ScanFunc func(ctx context.Context, imageData []byte) (*entity.ScanResult, error)
}

func (m *mockScanUsecase) Scan(ctx context.Context, imageData []byte) (*entity.ScanResult, error) {
	return m.ScanFunc(ctx, imageData)
}

// createMultipartRequest はテスト用のマルチパートリクエストを生成するヘルパー関数です。
func createMultipartRequest(t *testing.T, fieldName, fileName string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/fridge/scan", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestIngredientScanHandler_Scan(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		request    func(t *testing.T) *http.Request
		scan       func(ctx context.Context, imageData []byte) (*entity.ScanResult, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success: ingredients suggested",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "fridge.jpg", []byte("fake-image"))
			},
			scan: func(_ context.Context, imageData []byte) (*entity.ScanResult, error) {
				if string(imageData) != "fake-image" {
					return nil, fmt.Errorf("unexpected image %q", imageData)
				}
				return &entity.ScanResult{
					Labels:      []entity.DetectedLabel{{Name: "Tomato", Confidence: 0.5}},
					Ingredients: []string{"tomato"},
				}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"labels":[{"name":"Tomato","confidence":0.5}],"ingredients":["tomato"]}`,
		},
		{
			name: "error: missing image field",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "photo", "fridge.jpg", []byte("fake-image"))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"image file is required"}`,
		},
		{
			name: "error: empty image",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "fridge.jpg", []byte{})
			},
			scan: func(context.Context, []byte) (*entity.ScanResult, error) {
				return nil, usecase.ErrEmptyImage
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"image data is empty"}`,
		},
		{
			name: "error: upstream failure",
			request: func(t *testing.T) *http.Request {
				return createMultipartRequest(t, "image", "fridge.jpg", []byte("fake-image"))
			},
			scan: func(context.Context, []byte) (*entity.ScanResult, error) {
				return nil, fmt.Errorf("%w: quota", usecase.ErrScanFailed)
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"ingredient scan failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/fridge/scan", handler.NewIngredientScanHandler(&mockScanUsecase{ScanFunc: tt.scan}).Scan)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, tt.request(t))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
