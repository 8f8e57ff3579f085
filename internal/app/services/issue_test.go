package services_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/codec"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/services"
)

func TestLinkIssuerResolvesAgainstBase(t *testing.T) {
	testCases := []struct {
		name string
		base string
		want string
	}{
		{name: "base with trailing slash", base: "https://track.example.com/pt/", want: "https://track.example.com/pt/TOKEN"},
		{name: "base without trailing slash", base: "https://track.example.com/pt", want: "https://track.example.com/TOKEN"},
		{name: "host only", base: "http://localhost:8080", want: "http://localhost:8080/TOKEN"},
		{name: "query is dropped", base: "https://track.example.com/pt/?x=1", want: "https://track.example.com/pt/TOKEN"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			base, err := url.Parse(tc.base)
			require.NoError(t, err)

			encoder := new(tokenEncoderMock)
			encoder.On("Encode", models.NewTrackingRecord("promo1", "https://hooks.example.com/x")).
				Return("TOKEN", nil)

			link, err := services.NewLinkIssuer(encoder, base).Issue("promo1", "https://hooks.example.com/x")
			require.NoError(t, err)
			assert.Equal(t, tc.want, link)
			encoder.AssertExpectations(t)
		})
	}
}

func TestLinkIssuerEncodeError(t *testing.T) {
	base, err := url.Parse("https://track.example.com/pt/")
	require.NoError(t, err)
	encodeErr := errors.New("encode error")
	encoder := new(tokenEncoderMock)
	encoder.On("Encode", models.NewTrackingRecord("a", "b")).Return("", encodeErr)

	_, err = services.NewLinkIssuer(encoder, base).Issue("a", "b")
	assert.ErrorIs(t, err, encodeErr)
}

func TestIssuedLinkOpensWithSameKeys(t *testing.T) {
	keys, err := codec.GenerateKeys()
	require.NoError(t, err)
	base, err := url.Parse("https://track.example.com/pt/")
	require.NoError(t, err)

	link, err := services.NewLinkIssuer(keys, base).Issue("promo1", "https://hooks.example.com/x")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://track.example.com/pt/"))

	token := strings.TrimPrefix(link, "https://track.example.com/pt/")
	assert.True(t, codec.IsTokenAlphabet(token))
	record, err := keys.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, models.NewTrackingRecord("promo1", "https://hooks.example.com/x"), record)
}
