package handlers

import (
	"log/slog"

	"catalog/internal/apperrors"
	"catalog/internal/files"

	"github.com/gofiber/fiber/v2"
)

// FilesHandler accepts product image uploads. It only reports the name of
// the accepted file; linking it to a product is a separate update.
type FilesHandler struct {
	filter *files.Filter
	logger *slog.Logger
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(filter *files.Filter, logger *slog.Logger) *FilesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FilesHandler{filter: filter, logger: logger}
}

// RegisterRoutes registers the upload routes.
func (h *FilesHandler) RegisterRoutes(router fiber.Router) {
	router.Group("/files").Post("/product", h.HandleUploadProductImage)
}

// HandleUploadProductImage accepts one file in the "file" form field.
// A file rejected by the filter is treated as absent.
func (h *FilesHandler) HandleUploadProductImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || !h.filter.Allow(fh) {
		return respondError(c, apperrors.FileNotFound())
	}

	h.logger.DebugContext(c.UserContext(), "product image received",
		slog.String("file_name", fh.Filename),
		slog.Int64("size", fh.Size),
	)
	return c.JSON(fiber.Map{"fileName": fh.Filename})
}
