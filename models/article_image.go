package models

import "time"

type ArticleImage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ArticleID uint      `json:"article_id" gorm:"not null;index:idx_article_images_order,priority:1"`
	Data      []byte    `json:"-" gorm:"not null"`
	MimeType  string    `json:"mime_type" gorm:"size:100;not null"`
	SortOrder int       `json:"order" gorm:"not null;default:0;index:idx_article_images_order,priority:2"`
	CreatedAt time.Time `json:"created_at"`
}

// ImagePayload is the text-safe form of an image, Data is marshalled as
// standard base64 by encoding/json.
type ImagePayload struct {
	ID       uint   `json:"id"`
	Order    int    `json:"order"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

func (img ArticleImage) Payload() ImagePayload {
	return ImagePayload{
		ID:       img.ID,
		Order:    img.SortOrder,
		MimeType: img.MimeType,
		Data:     img.Data,
	}
}
