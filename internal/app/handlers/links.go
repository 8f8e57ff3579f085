package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/pixeltrack/internal/app/logger"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// LinkIssuer
type LinkIssuer interface {
	Issue(label, target string) (string, error)
}

type indexPage struct {
	Name    string
	Webhook string
	Result  string
}

// Index renders the link form and the issued link once both fields are set
func (h Handlers) Index(issuer LinkIssuer) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page := indexPage{
			Name:    query.Get("name"),
			Webhook: query.Get("webhook"),
		}

		if page.Name != "" && page.Webhook != "" {
			link, err := issuer.Issue(page.Name, page.Webhook)
			if err != nil {
				logger.Log.Error("failed to issue link", zap.Error(err))
				http.Error(w, internalServerError, http.StatusInternalServerError)
				return
			}
			page.Result = link
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTemplate.Execute(w, page); err != nil {
			logger.Log.Error("failed to render index page", zap.Error(err))
		}
	}
}

// Create tracking link from JSON
func (h Handlers) CreateLinkFromJSON(issuer LinkIssuer) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		encoder := json.NewEncoder(w)
		var requestBody struct {
			Name    string `json:"name"`
			Webhook string `json:"webhook"`
		}
		if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil ||
			requestBody.Name == "" || requestBody.Webhook == "" {

			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = encoder.Encode("invalid request")
			return
		}

		link, err := issuer.Issue(requestBody.Name, requestBody.Webhook)
		if err != nil {
			logger.Log.Error("failed to issue link", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			_ = encoder.Encode(internalServerError)
			return
		}

		w.WriteHeader(http.StatusCreated)
		_ = encoder.Encode(map[string]string{"result": link})
	}
}
