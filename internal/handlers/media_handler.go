package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/httpresp"
	"github.com/nrbnayon/BarBar-sub000/internal/media"
	"github.com/nrbnayon/BarBar-sub000/internal/middleware"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

const maxUploadSize = 5 << 20 // 5 MiB

type MediaHandler struct {
	db      *gorm.DB
	storage *media.Storage
}

func NewMediaHandler(db *gorm.DB, storage *media.Storage) *MediaHandler {
	return &MediaHandler{db: db, storage: storage}
}

// Upload receives a multipart "image" file, converts it to webp and
// attaches the stored URL to the target entity. The target is addressed by
// form fields: entity=salon|service|product plus entity_id (salon ignores
// entity_id, the host's own salon is used).
func (h *MediaHandler) Upload(c *gin.Context) {
	hostID := c.MustGet(middleware.ContextUserID).(uint)

	salon, err := salonForHost(h.db, hostID)
	if err != nil {
		httperr.NotFound(c, "salon_not_found", "No salon for this account.")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	if fileHeader.Size > maxUploadSize {
		httperr.BadRequest(c, "image_too_large", "Images may not exceed 5 MiB.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read the uploaded file.")
		return
	}
	defer file.Close()

	processed, err := media.ProcessImage(file)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_image") {
			httperr.BadRequest(c, "invalid_image", "The file is not a valid jpeg or png image.")
			return
		}
		httperr.Internal(c, "failed_to_process_image", "Could not process the image.")
		return
	}

	entity := c.PostForm("entity")
	entityID := c.PostForm("entity_id")

	key := fmt.Sprintf("salons/%d/%s/%s.webp", salon.ID, entity, uuid.NewString())
	url, err := h.storage.Upload(c.Request.Context(), key, processed)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_image", "Could not store the image.")
		return
	}

	switch entity {
	case "salon":
		err = h.db.Model(salon).Update("image_url", url).Error

	case "service":
		res := h.db.Model(&models.Service{}).
			Where("id = ? AND salon_id = ?", entityID, salon.ID).
			Update("image_url", url)
		if res.Error == nil && res.RowsAffected == 0 {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		err = res.Error

	case "product":
		res := h.db.Model(&models.Product{}).
			Where("id = ? AND salon_id = ?", entityID, salon.ID).
			Update("image_url", url)
		if res.Error == nil && res.RowsAffected == 0 {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		err = res.Error

	default:
		httperr.BadRequest(c, "invalid_entity", "Entity must be salon, service or product.")
		return
	}

	if err != nil {
		httperr.Internal(c, "failed_to_save_image_url", "Could not attach the image.")
		return
	}

	httpresp.OK(c, "Image uploaded", gin.H{"image_url": url})
}
