package docs

import (
	_ "embed"
	"net/http"
)

//go:embed swagger.json
var swaggerJSON []byte

//go:embed doc.html
var docHTML []byte

type DocsHandlers struct{}

func NewDocsHandlers() *DocsHandlers {
	return &DocsHandlers{}
}

// SwaggerJSON serves the API description document.
func (h *DocsHandlers) SwaggerJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(swaggerJSON)
}

// Doc serves the swagger-ui page that loads the description document.
func (h *DocsHandlers) Doc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(docHTML)
}
