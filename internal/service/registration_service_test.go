package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
)

type stubPhoneProvider struct {
	phone string
}

func (s stubPhoneProvider) AdminWhatsApp(context.Context) string {
	return s.phone
}

func newRegistrationService(phone string) RegistrationService {
	return NewRegistrationService(stubPhoneProvider{phone: phone}, newTestValidator(), nil, nopLogger())
}

func TestBuildRegistrationLink(t *testing.T) {
	svc := newRegistrationService("6281234567890")

	response, err := svc.BuildRegistrationLink(context.Background(), dto.RegistrationRequest{
		FullName:    "Ahmad Dhani",
		NickName:    "Adi",
		Level:       "SD",
		ParentPhone: "081234567890",
	})
	require.NoError(t, err)

	parsed, err := url.Parse(response.URL)
	require.NoError(t, err)
	require.Equal(t, "wa.me", parsed.Host)
	require.Equal(t, "/6281234567890", parsed.Path)

	text := parsed.Query().Get("text")
	require.Contains(t, text, "Ahmad Dhani")
	require.Contains(t, text, "Adi")
	require.Contains(t, text, "SD")
	require.Contains(t, text, "081234567890")
}

func TestBuildRegistrationLinkRejectsUnknownLevel(t *testing.T) {
	svc := newRegistrationService("6281234567890")

	_, err := svc.BuildRegistrationLink(context.Background(), dto.RegistrationRequest{
		FullName:    "Ahmad Dhani",
		NickName:    "Adi",
		Level:       "S1",
		ParentPhone: "081234567890",
	})
	require.ErrorIs(t, err, ErrInvalidLevel)
}

func TestBuildRegistrationLinkRejectsMissingFields(t *testing.T) {
	svc := newRegistrationService("6281234567890")

	_, err := svc.BuildRegistrationLink(context.Background(), dto.RegistrationRequest{
		FullName: "Ahmad Dhani",
		Level:    "SD",
	})
	require.Error(t, err)
}

func TestBuildContactLinkUsesConfiguredPhone(t *testing.T) {
	svc := newRegistrationService("628999888777")

	response := svc.BuildContactLink(context.Background())
	require.True(t, strings.HasPrefix(response.URL, "https://wa.me/628999888777?"))
}
