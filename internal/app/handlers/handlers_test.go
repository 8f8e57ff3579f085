package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/configs"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/middlewares"
	"github.com/ilya-burinskiy/pixeltrack/internal/app/models"
)

type want struct {
	response    string
	contentType string
	code        int
}

var defaultConfig = configs.Config{
	BaseURL:       "http://localhost:8080/pt/",
	ServerAddress: "localhost:8080",
}

var fixedNow = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

func toJSON(t require.TestingT, v interface{}) string {
	result, err := json.Marshal(v)
	require.NoError(t, err)

	return string(result)
}

type linkIssuerMock struct{ mock.Mock }

func (m *linkIssuerMock) Issue(label, target string) (string, error) {
	args := m.Called(label, target)
	return args.String(0), args.Error(1)
}

type dispatcherMock struct{ mock.Mock }

func (m *dispatcherMock) Notify(
	ctx context.Context,
	record models.TrackingRecord,
	requesterIP string,
	observedAt time.Time) error {

	args := m.Called(ctx, record, requesterIP, observedAt)
	return args.Error(0)
}

func newRouter(routes func(router chi.Router)) chi.Router {
	router := chi.NewRouter()
	router.Use(
		middleware.RealIP,
		middlewares.ResponseLogger,
		middlewares.RequestLogger,
		middlewares.GzipCompress,
		middleware.AllowContentEncoding("gzip"),
	)
	routes(router)

	return router
}

type request struct {
	headers     map[string]string
	httpMethod  string
	path        string
	contentType string
	body        string
}

type response struct {
	headers http.Header
	body    []byte
	code    int
}

func doRequest(t *testing.T, serverURL string, req request) response {
	var body io.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	httpRequest, err := http.NewRequest(req.httpMethod, serverURL+req.path, body)
	require.NoError(t, err)
	if req.contentType != "" {
		httpRequest.Header.Set("Content-Type", req.contentType)
	}
	httpRequest.Header.Set("Accept-Encoding", "identity")
	for k, v := range req.headers {
		httpRequest.Header.Set(k, v)
	}

	transport := http.Transport{}
	httpResponse, err := transport.RoundTrip(httpRequest)
	require.NoError(t, err)
	defer func() {
		err = httpResponse.Body.Close()
		require.NoError(t, err)
	}()
	resBody, err := io.ReadAll(httpResponse.Body)
	require.NoError(t, err)

	return response{
		headers: httpResponse.Header,
		body:    resBody,
		code:    httpResponse.StatusCode,
	}
}

func startServer(t *testing.T, router chi.Router) *httptest.Server {
	testServer := httptest.NewServer(router)
	t.Cleanup(testServer.Close)

	return testServer
}

type hitTrackerMock struct{ mock.Mock }

func (m *hitTrackerMock) Track(
	ctx context.Context,
	token, requesterIP string,
	observedAt time.Time) (models.Hit, error) {

	args := m.Called(ctx, token, requesterIP, observedAt)
	return args.Get(0).(models.Hit), args.Error(1)
}
