package handlers

import (
	"errors"
	"mime/multipart"

	"nomad-nest/internal/dto"
	"nomad-nest/internal/repository"
	"nomad-nest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type EntryHandler struct {
	entryService *service.EntryService
	queryService *service.QueryService
	logger       *zap.Logger
}

func NewEntryHandler(entryService *service.EntryService, queryService *service.QueryService, logger *zap.Logger) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
		queryService: queryService,
		logger:       logger,
	}
}

// Create godoc
// @Summary Create a journal entry
// @Description Assemble an entry from text fields, photo files and "category:amount" expense tokens
// @Tags entries
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Success 201 {object} dto.CreateEntryResponse
// @Failure 400 {object} map[string]string
// @Router /api/entries [post]
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form data",
		})
	}

	in := &service.CreateEntryInput{
		UserID:    userID,
		Title:     c.FormValue("title"),
		Content:   c.FormValue("content"),
		Location:  c.FormValue("location"),
		Latitude:  c.FormValue("latitude"),
		Longitude: c.FormValue("longitude"),
		Expenses:  form.Value["expenses"],
	}
	in.Photos = openUploads(form.File["photos"], h.logger)

	result, err := h.entryService.CreateEntry(c.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrMalformedExpense) || errors.Is(err, service.ErrBadCoordinate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Entry creation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateEntryResponse{
		Message:   "Entry created successfully",
		EntryID:   result.EntryID,
		PhotoURLs: nonNil(result.PhotoURLs),
		Expenses:  nonNil(result.Expenses),
		Warnings:  result.Warnings,
	})
}

// List godoc
// @Summary List all entries
// @Description All entries newest first, aggregated with photos, expenses and author
// @Tags entries
// @Produce json
// @Success 200 {object} dto.EntriesResponse
// @Router /api/entries [get]
func (h *EntryHandler) List(c *fiber.Ctx) error {
	entries, err := h.queryService.ListEntries(c.Context())
	if err != nil {
		h.logger.Error("Failed to list entries", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.NewEntriesResponse(entries))
}

// Search godoc
// @Summary Search entries
// @Description Filtered entry list; at least one search parameter is required
// @Tags entries
// @Produce json
// @Param user_id query string false "Owner user id"
// @Param entry_id query string false "Entry id"
// @Param location query string false "Location substring, case-insensitive"
// @Param title query string false "Title substring, case-insensitive"
// @Param latitude query number false "Exact latitude"
// @Param longitude query number false "Exact longitude"
// @Success 200 {object} dto.EntriesResponse
// @Failure 400 {object} map[string]string
// @Router /api/entries/search [get]
func (h *EntryHandler) Search(c *fiber.Ctx) error {
	filter := repository.EntryFilter{
		UserID:   queryPtr(c, "user_id"),
		EntryID:  queryPtr(c, "entry_id"),
		Location: queryPtr(c, "location"),
		Title:    queryPtr(c, "title"),
	}

	var ok bool
	if filter.Latitude, ok = queryFloatPtr(c, "latitude"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "latitude must be numeric",
		})
	}
	if filter.Longitude, ok = queryFloatPtr(c, "longitude"); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "longitude must be numeric",
		})
	}

	entries, err := h.queryService.SearchEntries(c.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrNoFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide at least one search parameter (user_id, entry_id, location, title, latitude, or longitude)",
			})
		}
		h.logger.Error("Entry search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.NewEntriesResponse(entries))
}

// AttachPhotos godoc
// @Summary Attach photos to an existing entry
// @Tags entries
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path string true "Entry id"
// @Success 200 {object} dto.AttachPhotosResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/entries/{id}/photo [post]
func (h *EntryHandler) AttachPhotos(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	entryID := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Expected multipart form data",
		})
	}

	files := form.File["photos"]
	if len(files) == 0 {
		files = form.File["photo"]
	}

	result, err := h.entryService.AttachPhotos(c.Context(), entryID, userID, openUploads(files, h.logger))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Entry not found",
			})
		case errors.Is(err, service.ErrNoPhoto):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No photo provided",
			})
		case errors.Is(err, service.ErrNoValidPhoto):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No valid photo file provided (png, jpg or jpeg expected)",
			})
		}
		h.logger.Error("Photo attach failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.AttachPhotosResponse{
		Message:   "Photos attached successfully",
		PhotoURLs: nonNil(result.URLs),
		Warnings:  result.Warnings,
	})
}

// openUploads opens the multipart files that actually carry content. Files
// that cannot be opened are dropped; the assembly workflow treats a missing
// photo as a degraded attachment, not a failure.
func openUploads(files []*multipart.FileHeader, logger *zap.Logger) []service.PhotoUpload {
	uploads := make([]service.PhotoUpload, 0, len(files))
	for _, fh := range files {
		if fh == nil || fh.Filename == "" || fh.Size == 0 {
			continue
		}
		src, err := fh.Open()
		if err != nil {
			logger.Warn("Failed to open uploaded file", zap.String("file", fh.Filename), zap.Error(err))
			continue
		}
		uploads = append(uploads, service.PhotoUpload{FileName: fh.Filename, Data: src})
	}
	return uploads
}
