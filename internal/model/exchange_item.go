package model

import (
	"time"

	"campushub/internal/patch"
)

// DefaultCondition is used when a listing does not state its condition.
const DefaultCondition = "good"

// ExchangeItem is a listing offered for swap by its owner.
type ExchangeItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerUserID uint      `json:"owner_id" gorm:"column:owner_id;not null;index"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:50;index"`
	Condition   string    `json:"condition" gorm:"size:20;default:'good'"`
	ImageURLs   string    `json:"image_urls" gorm:"size:1000"` // comma separated
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerUserID;constraint:OnDelete:CASCADE"`
}

// OwnerID returns the user offering the item.
func (i *ExchangeItem) OwnerID() uint {
	return i.OwnerUserID
}

// ExchangeItemPatch is the partial update payload for a listing.
type ExchangeItemPatch struct {
	Title       patch.Field[string] `json:"title" swaggertype:"string"`
	Description patch.Field[string] `json:"description" swaggertype:"string"`
	Category    patch.Field[string] `json:"category" swaggertype:"string"`
	Condition   patch.Field[string] `json:"condition" swaggertype:"string"`
	ImageURLs   patch.Field[string] `json:"image_urls" swaggertype:"string"`
	IsAvailable patch.Field[bool]   `json:"is_available" swaggertype:"boolean"`
}

// Apply merges the present fields onto item and returns the touched columns.
func (p ExchangeItemPatch) Apply(item *ExchangeItem) []string {
	return patch.Apply(
		patch.Set("title", &item.Title, p.Title),
		patch.Set("description", &item.Description, p.Description),
		patch.Set("category", &item.Category, p.Category),
		patch.Set("condition", &item.Condition, p.Condition),
		patch.Set("image_urls", &item.ImageURLs, p.ImageURLs),
		patch.Set("is_available", &item.IsAvailable, p.IsAvailable),
	)
}
