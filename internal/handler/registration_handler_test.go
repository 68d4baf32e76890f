package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/handler"
	"github.com/dhia-elwidad/spmb-api/internal/service"
)

type mockRegistrationService struct {
	lastRequest dto.RegistrationRequest
	response    dto.RegistrationLinkResponse
	err         error
}

func (m *mockRegistrationService) BuildRegistrationLink(_ context.Context, payload dto.RegistrationRequest) (dto.RegistrationLinkResponse, error) {
	m.lastRequest = payload
	if m.err != nil {
		return dto.RegistrationLinkResponse{}, m.err
	}
	return m.response, nil
}

func (m *mockRegistrationService) BuildContactLink(_ context.Context) dto.RegistrationLinkResponse {
	return m.response
}

func decodeResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, out))
}

func newRegistrationApp(svc service.RegistrationService) *fiber.App {
	app := fiber.New()
	h := handler.NewRegistrationHandler(svc, zerolog.New(io.Discard))
	app.Post("/api/v1/registrations/whatsapp", h.CreateWhatsAppLink)
	app.Get("/api/v1/registrations/contact", h.ContactLink)
	app.Get("/api/v1/levels", h.Levels)
	app.Get("/api/v1/registrations/documents", h.RequiredDocuments)
	return app
}

func TestRegistrationHandler_CreateLinkSuccess(t *testing.T) {
	svc := &mockRegistrationService{response: dto.RegistrationLinkResponse{URL: "https://wa.me/628?text=hi"}}
	app := newRegistrationApp(svc)

	payload := `{"full_name":"Ahmad Dhani","nick_name":"Adi","level":"SD","parent_phone":"0812"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/whatsapp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool                         `json:"success"`
		Data    dto.RegistrationLinkResponse `json:"data"`
		Message string                       `json:"message"`
	}
	decodeResponse(t, resp, &body)

	require.True(t, body.Success)
	require.Equal(t, "registration link created", body.Message)
	require.Equal(t, svc.response.URL, body.Data.URL)
	require.Equal(t, "Ahmad Dhani", svc.lastRequest.FullName)
}

func TestRegistrationHandler_CreateLinkInvalidLevel(t *testing.T) {
	svc := &mockRegistrationService{err: service.ErrInvalidLevel}
	app := newRegistrationApp(svc)

	payload := `{"full_name":"Ahmad Dhani","nick_name":"Adi","level":"S1","parent_phone":"0812"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/whatsapp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegistrationHandler_CreateLinkServiceError(t *testing.T) {
	svc := &mockRegistrationService{err: errors.New("boom")}
	app := newRegistrationApp(svc)

	payload := `{"full_name":"Ahmad Dhani","nick_name":"Adi","level":"SD","parent_phone":"0812"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/registrations/whatsapp", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRegistrationHandler_Levels(t *testing.T) {
	app := newRegistrationApp(&mockRegistrationService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/levels", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	decodeResponse(t, resp, &body)

	require.True(t, body.Success)
	require.Len(t, body.Data, 5)
	require.Equal(t, "TPA", body.Data[0].ID)
	require.Equal(t, "SMA", body.Data[4].ID)
}

func TestRegistrationHandler_RequiredDocuments(t *testing.T) {
	app := newRegistrationApp(&mockRegistrationService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/registrations/documents", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data []string `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Contains(t, body.Data, "Kartu Keluarga (KK)")
}
