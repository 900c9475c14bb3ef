package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MetadataHandler serves the stateless metadata extraction endpoint.
type MetadataHandler struct {
	fetcher MetadataFetcher
}

// NewMetadataHandler creates the metadata endpoint handler.
func NewMetadataHandler(fetcher MetadataFetcher) *MetadataHandler {
	return &MetadataHandler{fetcher: fetcher}
}

// FetchMetadata handles GET /v1/functions/fetch-metadata?url=...
func (h *MetadataHandler) FetchMetadata(c echo.Context) error {
	url := c.QueryParam("url")
	if url == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url query parameter is required")
	}

	metadata, err := h.fetcher.FetchMetadata(c.Request().Context(), url)
	if err != nil {
		return functionError(err)
	}

	return c.JSON(http.StatusOK, metadata)
}
