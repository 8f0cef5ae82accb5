package models

import "time"

// Category represents the categories table
type Category struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug             string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description      string    `gorm:"type:text" json:"description"`
	IconName         string    `gorm:"size:50" json:"icon_name"`
	EmojiSymbol      string    `gorm:"size:10" json:"emoji_symbol"`
	ColorCode        string    `gorm:"size:20" json:"color_code"`
	ParentCategoryID *uint     `gorm:"index" json:"parent_category_id"`
	SortOrder        int       `gorm:"not null;default:0" json:"sort_order"`
	Active           bool      `gorm:"not null;default:true" json:"active"`
	Featured         bool      `gorm:"not null;default:false" json:"featured"`
	ItemCount        int       `gorm:"not null;default:0" json:"item_count"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

// Listing types
const (
	ListingTypeSell    = "SELL"
	ListingTypeRent    = "RENT"
	ListingTypeService = "SERVICE"
)

// Listing conditions
const (
	ConditionNew         = "NEW"
	ConditionUsed        = "USED"
	ConditionRefurbished = "REFURBISHED"
)

// Listing statuses
const (
	ListingStatusDraft     = "DRAFT"
	ListingStatusActive    = "ACTIVE"
	ListingStatusSold      = "SOLD"
	ListingStatusExpired   = "EXPIRED"
	ListingStatusSuspended = "SUSPENDED"
	ListingStatusDeleted   = "DELETED"
)

// Listing represents the listings table
type Listing struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Title             string     `gorm:"size:200;not null" json:"title"`
	Description       string     `gorm:"type:text" json:"description"`
	Price             float64    `gorm:"type:decimal(15,2);not null" json:"price"`
	OriginalPrice     *float64   `gorm:"type:decimal(15,2)" json:"original_price"`
	ListingType       string     `gorm:"size:20;not null;default:'SELL'" json:"listing_type"`
	ConditionType     string     `gorm:"size:20;not null;default:'NEW'" json:"condition_type"`
	Status            string     `gorm:"size:20;not null;default:'DRAFT';index" json:"status"`
	CategoryID        uint       `gorm:"not null;index" json:"category_id"`
	SellerID          uint       `gorm:"not null;index" json:"seller_id"`
	Location          string     `gorm:"size:200" json:"location"`
	City              string     `gorm:"size:100" json:"city"`
	District          string     `gorm:"size:100" json:"district"`
	MainImage         string     `gorm:"size:500" json:"main_image"`
	QuantityAvailable int        `gorm:"not null;default:1" json:"quantity_available"`
	Negotiable        bool       `gorm:"not null;default:false" json:"negotiable"`
	Featured          bool       `gorm:"not null;default:false" json:"featured"`
	FeaturedUntil     *time.Time `json:"featured_until"`
	ExpiresAt         *time.Time `json:"expires_at"`
	ViewCount         int        `gorm:"not null;default:0" json:"view_count"`
	FavoriteCount     int        `gorm:"not null;default:0" json:"favorite_count"`
	ContactCount      int        `gorm:"not null;default:0" json:"contact_count"`
	Tags              string     `gorm:"size:500" json:"tags"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Seller   *User     `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (Listing) TableName() string {
	return "listings"
}

// ListingResponse DTO
type ListingResponse struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Price             float64    `json:"price"`
	OriginalPrice     *float64   `json:"original_price,omitempty"`
	ListingType       string     `json:"listing_type"`
	ConditionType     string     `json:"condition_type"`
	Status            string     `json:"status"`
	CategoryID        uint       `json:"category_id"`
	CategoryName      string     `json:"category_name,omitempty"`
	SellerID          uint       `json:"seller_id"`
	SellerName        string     `json:"seller_name,omitempty"`
	SellerRating      float64    `json:"seller_rating,omitempty"`
	Location          string     `json:"location,omitempty"`
	City              string     `json:"city,omitempty"`
	District          string     `json:"district,omitempty"`
	MainImage         string     `json:"main_image,omitempty"`
	QuantityAvailable int        `json:"quantity_available"`
	Negotiable        bool       `json:"negotiable"`
	Featured          bool       `json:"featured"`
	ViewCount         int        `json:"view_count"`
	FavoriteCount     int        `json:"favorite_count"`
	ContactCount      int        `json:"contact_count"`
	Tags              string     `json:"tags,omitempty"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (l *Listing) ToResponse() *ListingResponse {
	resp := &ListingResponse{
		ID:                l.ID,
		Title:             l.Title,
		Description:       l.Description,
		Price:             l.Price,
		OriginalPrice:     l.OriginalPrice,
		ListingType:       l.ListingType,
		ConditionType:     l.ConditionType,
		Status:            l.Status,
		CategoryID:        l.CategoryID,
		SellerID:          l.SellerID,
		Location:          l.Location,
		City:              l.City,
		District:          l.District,
		MainImage:         l.MainImage,
		QuantityAvailable: l.QuantityAvailable,
		Negotiable:        l.Negotiable,
		Featured:          l.Featured,
		ViewCount:         l.ViewCount,
		FavoriteCount:     l.FavoriteCount,
		ContactCount:      l.ContactCount,
		Tags:              l.Tags,
		ExpiresAt:         l.ExpiresAt,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}

	if l.Category != nil {
		resp.CategoryName = l.Category.Name
	}
	if l.Seller != nil {
		resp.SellerName = l.Seller.FullName()
		resp.SellerRating = l.Seller.RatingAverage
	}

	return resp
}
