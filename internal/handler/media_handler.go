package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/octobees/estate-listings/api/internal/dto"
	"github.com/octobees/estate-listings/api/internal/media"
	middlewarepkg "github.com/octobees/estate-listings/api/internal/middleware"
)

const (
	maxUploadFiles = 6
	maxUploadSize  = 5 << 20
)

// MediaHandler forwards listing photos to the image host.
type MediaHandler struct {
	uploader media.Uploader
}

// NewMediaHandler wires a handler backed by uploader. A nil uploader disables uploads.
func NewMediaHandler(uploader media.Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// UploadImages handles POST /properties/images requests.
func (h *MediaHandler) UploadImages(c echo.Context) error {
	if h.uploader == nil {
		return Error(c, http.StatusServiceUnavailable, "image uploads are not configured")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return Error(c, http.StatusBadRequest, "expected multipart form with images")
	}

	files := form.File["images"]
	if len(files) == 0 || len(files) > maxUploadFiles {
		return Error(c, http.StatusBadRequest, "between 1 and 6 images are required")
	}
	for _, fh := range files {
		if fh.Size > maxUploadSize {
			return Error(c, http.StatusBadRequest, fh.Filename+" exceeds the 5MB limit")
		}
		if !strings.HasPrefix(fh.Header.Get(echo.HeaderContentType), "image/") {
			return Error(c, http.StatusBadRequest, fh.Filename+" is not an image")
		}
	}

	ctx := c.Request().Context()
	rid := middlewarepkg.RequestIDFromContext(c)
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			return Error(c, http.StatusBadRequest, "unable to open "+fh.Filename)
		}
		url, err := h.uploader.Upload(ctx, fh.Filename, file, rid)
		file.Close()
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("file", fh.Filename).Msg("upload image")
			return Error(c, http.StatusBadGateway, "image upload failed")
		}
		urls = append(urls, url)
	}

	return c.JSON(http.StatusCreated, dto.UploadedImages{Images: urls})
}
