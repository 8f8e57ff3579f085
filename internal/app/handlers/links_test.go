package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/handlers"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/storage/mocks"
)

func TestIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	storageMock := mocks.NewMockStorage(ctrl)
	issuer := new(linkIssuerMock)
	issuer.On("Issue", "promo1", "https://hooks.example.com/x").
		Return("http://localhost:8080/pt/TOKEN", nil)
	issuer.On("Issue", "<b>", "https://hooks.example.com/x").
		Return("http://localhost:8080/pt/TOKEN?a=1&b=2", nil)
	issuer.On("Issue", "broken", mock.Anything).
		Return("", errors.New("encode error"))

	h := handlers.NewHandlers(defaultConfig, storageMock)
	testServer := startServer(t, newRouter(func(router chi.Router) {
		router.Get("/", h.Index(issuer))
	}))

	testCases := []struct {
		name        string
		path        string
		contains    []string
		notContains []string
		code        int
	}{
		{
			name:        "renders empty form",
			path:        "/",
			contains:    []string{"<form", `name="name" value=""`},
			notContains: []string{"<tt>"},
			code:        http.StatusOK,
		},
		{
			name:        "empty webhook counts as absent",
			path:        "/?name=promo1&webhook=",
			contains:    []string{`value="promo1"`},
			notContains: []string{"<tt>"},
			code:        http.StatusOK,
		},
		{
			name:     "renders issued link",
			path:     "/?name=promo1&webhook=https%3A%2F%2Fhooks.example.com%2Fx",
			contains: []string{"<tt>http://localhost:8080/pt/TOKEN</tt>", `value="promo1"`},
			code:     http.StatusOK,
		},
		{
			name:        "escapes user input",
			path:        "/?name=%3Cb%3E&webhook=https%3A%2F%2Fhooks.example.com%2Fx",
			contains:    []string{`value="&lt;b&gt;"`, "TOKEN?a=1&amp;b=2"},
			notContains: []string{"<b>"},
			code:        http.StatusOK,
		},
		{
			name:     "hides issue errors",
			path:     "/?name=broken&webhook=x",
			contains: []string{"Internal server error"},
			code:     http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := doRequest(t, testServer.URL, request{httpMethod: http.MethodGet, path: tc.path})

			assert.Equal(t, tc.code, res.code)
			for _, s := range tc.contains {
				assert.Contains(t, string(res.body), s)
			}
			for _, s := range tc.notContains {
				assert.NotContains(t, string(res.body), s)
			}
		})
	}
	issuer.AssertNotCalled(t, "Issue", "promo1", "")
}

func TestCreateLinkFromJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	storageMock := mocks.NewMockStorage(ctrl)
	issuer := new(linkIssuerMock)
	issuer.On("Issue", "promo1", "https://hooks.example.com/x").
		Return("http://localhost:8080/pt/TOKEN", nil)
	issuer.On("Issue", "broken", mock.Anything).
		Return("", errors.New("encode error"))

	h := handlers.NewHandlers(defaultConfig, storageMock)
	testServer := startServer(t, newRouter(func(router chi.Router) {
		router.Use(middleware.AllowContentType("application/json", "application/x-gzip"))
		router.Post("/api/links", h.CreateLinkFromJSON(issuer))
	}))

	testCases := []struct {
		name        string
		contentType string
		body        string
		want        want
	}{
		{
			name:        "responses with created link",
			contentType: "application/json",
			body:        toJSON(t, map[string]string{"name": "promo1", "webhook": "https://hooks.example.com/x"}),
			want: want{
				code:        http.StatusCreated,
				response:    `{"result":"http://localhost:8080/pt/TOKEN"}` + "\n",
				contentType: "application/json",
			},
		},
		{
			name:        "responses with unprocessable entity on invalid json",
			contentType: "application/json",
			body:        "{",
			want: want{
				code:        http.StatusUnprocessableEntity,
				response:    `"invalid request"` + "\n",
				contentType: "application/json",
			},
		},
		{
			name:        "responses with unprocessable entity on missing webhook",
			contentType: "application/json",
			body:        toJSON(t, map[string]string{"name": "promo1"}),
			want: want{
				code:        http.StatusUnprocessableEntity,
				response:    `"invalid request"` + "\n",
				contentType: "application/json",
			},
		},
		{
			name:        "responses with internal server error if link could not be issued",
			contentType: "application/json",
			body:        toJSON(t, map[string]string{"name": "broken", "webhook": "x"}),
			want: want{
				code:        http.StatusInternalServerError,
				response:    `"Internal server error"` + "\n",
				contentType: "application/json",
			},
		},
		{
			name:        "responses with unsupported media type on plain text",
			contentType: "text/plain",
			body:        "promo1",
			want: want{
				code:        http.StatusUnsupportedMediaType,
				response:    "",
				contentType: "",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := doRequest(t, testServer.URL, request{
				httpMethod:  http.MethodPost,
				path:        "/api/links",
				contentType: tc.contentType,
				body:        tc.body,
			})

			assert.Equal(t, tc.want.code, res.code)
			assert.Equal(t, tc.want.response, string(res.body))
			assert.Equal(t, tc.want.contentType, res.headers.Get("Content-Type"))
		})
	}
}
