package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/mystic-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	docsDir      = "static"
	docsUIFile   = "openapi.html"
	docsSpecFile = "openapi.json"
)

// OpenAPIHandler serves the API reference: a browser UI at /docs and the
// document it renders at /openapi.json. Both are read from disk per request,
// so edits show up without a restart.
type OpenAPIHandler struct {
	Handler
	dir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		dir:     docsDir,
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := h.read(docsUIFile)
	if err != nil {
		return err
	}

	noCache(c)
	return c.HTMLBlob(http.StatusOK, page)
}

// ServeOpenAPISpec serves the OpenAPI document. A document that is not valid
// JSON is reported as a server error rather than handed to the UI.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	doc, err := h.read(docsSpecFile)
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(doc) {
		return errors.Errorf("%s is not valid JSON", docsSpecFile)
	}

	noCache(c)
	return c.JSONBlob(http.StatusOK, doc)
}

func (h *OpenAPIHandler) read(name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(h.dir, name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}
	return b, nil
}

func noCache(c echo.Context) {
	c.Response().Header().Set("Cache-Control", "no-cache")
}
