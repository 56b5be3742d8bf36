package notify

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type Writer struct {
	db *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{db: db}
}

func (w *Writer) Write(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	n := models.Notification{
		ReceiverID: ev.ReceiverID,
		Type:       ev.Type,
		Message:    ev.Message,
		Metadata:   metaJSON,
	}

	return w.db.Create(&n).Error
}
