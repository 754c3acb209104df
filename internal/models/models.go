package models

import (
	"time"
)

// User lives in the users store together with the cart and wishlist rows.
type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string    `json:"fname"`
	LastName     string    `json:"lname"`
	Email        string    `json:"email"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Address      string    `gorm:"default:''"               json:"address"`
	Mobile       string    `gorm:"default:''"               json:"mobile"`
	District     string    `gorm:"default:''"               json:"district"`
	ProfilePic   string    `gorm:"default:''"               json:"profile_pic"`
	CreatedAt    time.Time `json:"created_at"`
}

// CartItem is a design snapshot plus the same customization attributes an
// order line carries, keyed by username.
type CartItem struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username           string    `gorm:"index;not null"           json:"username"`
	DesignName         string    `json:"design_name"`
	Price              float64   `json:"price"`
	Quantity           int       `gorm:"default:1"                json:"quantity"`
	ImageURL           string    `json:"image_url"`
	PlacementPosition  string    `gorm:"default:''"               json:"placement_position"`
	DesignSide         string    `gorm:"default:'front'"          json:"design_side"`
	DesignWidth        int       `gorm:"default:0"                json:"design_width"`
	DesignHeight       int       `gorm:"default:0"                json:"design_height"`
	CustomRequirements string    `gorm:"default:''"               json:"custom_requirements"`
	CreatedAt          time.Time `json:"created_at"`
}

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"index;not null"           json:"username"`
	DesignName string    `json:"design_name"`
	Price      float64   `json:"price"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderLine is one purchased item configuration in the orders store. Lines
// placed in the same checkout share an OrderID. The snapshot columns
// (Subtotal, Tax, Total) are denormalized onto every line of the order and
// stay nullable: rows written before those columns existed carry NULL and
// the aggregation substitutes derived values. The same goes for the
// customization columns, which is why most fields are pointers.
type OrderLine struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            string    `gorm:"index"                    json:"order_id"`
	Username           string    `gorm:"index;not null"           json:"username"`
	DesignName         *string   `json:"design_name"`
	Price              *float64  `json:"price"`
	Quantity           *int      `json:"quantity"`
	ImageURL           *string   `json:"image_url"`
	PlacementPosition  *string   `json:"placement_position"`
	DesignSide         *string   `json:"design_side"`
	DesignWidth        *int      `json:"design_width"`
	DesignHeight       *int      `json:"design_height"`
	CustomRequirements *string   `json:"custom_requirements"`
	OrderDate          string    `gorm:"index"                    json:"order_date"`
	Status             string    `gorm:"default:'Pending'"        json:"status"`
	Subtotal           *float64  `json:"subtotal"`
	Tax                *float64  `json:"tax"`
	Total              *float64  `json:"total"`
	CreatedAt          time.Time `json:"created_at"`
}

// Order statuses. Stored as free text; this set is a convention, not a
// constraint.
const (
	StatusPending    = "Pending"
	StatusOrdered    = "Ordered"
	StatusProcessing = "Processing"
	StatusCompleted  = "Completed"
)

// Design lives in the catalog store. Price is always derived from the
// dimensions, never taken from the client.
type Design struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"uniqueIndex;not null"     json:"name"`
	Width       int             `gorm:"not null"                 json:"width"`
	Height      int             `gorm:"not null"                 json:"height"`
	Price       float64         `gorm:"not null"                 json:"price"`
	Tags        string          `gorm:"default:''"               json:"tags"`
	Description string          `gorm:"not null"                 json:"description"`
	ImageData   string          `json:"image_data,omitempty"`
	ImageType   string          `json:"image_type,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Previews    []DesignPreview `gorm:"constraint:OnDelete:CASCADE" json:"previews,omitempty"`
}

type DesignPreview struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DesignID  uint      `gorm:"index;not null"           json:"design_id"`
	ImageData string    `json:"image_data"`
	ImageType string    `json:"image_type"`
	Position  int       `gorm:"default:0"                json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser lives in its own store, separate from customer accounts.
type AdminUser struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `gorm:"default:'admin'"          json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
