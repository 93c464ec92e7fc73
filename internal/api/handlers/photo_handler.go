package handlers

import (
	"errors"

	"nomad-nest/internal/dto"
	"nomad-nest/internal/repository"
	"nomad-nest/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PhotoHandler struct {
	photoService *service.PhotoService
	logger       *zap.Logger
}

func NewPhotoHandler(photoService *service.PhotoService, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
		logger:       logger,
	}
}

// List godoc
// @Summary List photos by filter
// @Tags photos
// @Produce json
// @Param photo_id query string false "Photo id"
// @Param entry_id query string false "Entry id"
// @Param user_id query string false "User id"
// @Success 200 {object} dto.PhotosResponse
// @Failure 400 {object} map[string]string
// @Router /api/photos [get]
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	filter := repository.PhotoFilter{
		PhotoID: queryPtr(c, "photo_id"),
		EntryID: queryPtr(c, "entry_id"),
		UserID:  queryPtr(c, "user_id"),
	}

	photos, err := h.photoService.ListPhotos(c.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrNoFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide at least one search parameter (photo_id, entry_id, or user_id)",
			})
		}
		h.logger.Error("Photo list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(dto.NewPhotosResponse(photos))
}

// Delete godoc
// @Summary Delete photos and their stored blobs
// @Description Removes every photo matched by the filter. Blob deletions that
// fail are reported per photo while the database rows are removed regardless,
// so a partial success answers with 207.
// @Tags photos
// @Produce json
// @Security Bearer
// @Param photo_id query string false "Photo id"
// @Param entry_id query string false "Entry id"
// @Param user_id query string false "User id"
// @Success 200 {object} dto.DeletePhotosResponse
// @Success 207 {object} dto.DeletePhotosResponse
// @Failure 400 {object} map[string]string
// @Router /api/photos/delete [delete]
func (h *PhotoHandler) Delete(c *fiber.Ctx) error {
	filter := repository.PhotoFilter{
		PhotoID: queryPtr(c, "photo_id"),
		EntryID: queryPtr(c, "entry_id"),
		UserID:  queryPtr(c, "user_id"),
	}

	result, err := h.photoService.DeletePhotos(c.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrNoFilter) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please provide at least one filter (photo_id, entry_id, or user_id)",
			})
		}
		h.logger.Error("Photo deletion failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	status := fiber.StatusOK
	message := "Photos deleted successfully"
	if result.Partial() {
		status = fiber.StatusMultiStatus
		message = "Photos deleted with some errors"
	}

	return c.Status(status).JSON(dto.DeletePhotosResponse{
		Message:    message,
		DeletedIDs: nonNil(result.DeletedIDs),
		Errors:     result.Errors,
		Count:      len(result.DeletedIDs),
	})
}
