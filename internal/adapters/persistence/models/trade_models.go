package models

import "time"

// Payment methods
const (
	PaymentMethodMobileMoney    = "MOBILE_MONEY"
	PaymentMethodCard           = "CARD"
	PaymentMethodCashOnDelivery = "CASH_ON_DELIVERY"
)

// Payment statuses
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
	PaymentStatusRefunded  = "REFUNDED"
)

// Transaction statuses
const (
	TxStatusInitiated      = "INITIATED"
	TxStatusPaymentPending = "PAYMENT_PENDING"
	TxStatusPaid           = "PAID"
	TxStatusDelivered      = "DELIVERED"
	TxStatusCompleted      = "COMPLETED"
	TxStatusCancelled      = "CANCELLED"
)

// Transaction represents the transactions table
type Transaction struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	TransactionReference string    `gorm:"size:64;uniqueIndex;not null" json:"transaction_reference"`
	ListingID            uint      `gorm:"not null;index" json:"listing_id"`
	BuyerID              uint      `gorm:"not null;index" json:"buyer_id"`
	SellerID             uint      `gorm:"not null;index" json:"seller_id"`
	Amount               float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	PlatformFee          float64   `gorm:"type:decimal(15,2);not null;default:0" json:"platform_fee"`
	TotalAmount          float64   `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	PaymentMethod        string    `gorm:"size:30;not null" json:"payment_method"`
	PaymentStatus        string    `gorm:"size:20;not null;default:'PENDING'" json:"payment_status"`
	TransactionStatus    string    `gorm:"size:20;not null;default:'INITIATED'" json:"transaction_status"`
	Quantity             int       `gorm:"not null;default:1" json:"quantity"`
	DeliveryAddress      string    `gorm:"size:300" json:"delivery_address"`
	DeliveryCity         string    `gorm:"size:100" json:"delivery_city"`
	DeliveryPhone        string    `gorm:"size:20" json:"delivery_phone"`
	CreatedAt            time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Listing *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Buyer   *User    `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller  *User    `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// Review represents the reviews table. RevieweeID is the seller being
// rated; aggregates are maintained on the user row.
type Review struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ListingID        uint      `gorm:"not null;index" json:"listing_id"`
	ReviewerID       uint      `gorm:"not null;index" json:"reviewer_id"`
	RevieweeID       uint      `gorm:"not null;index" json:"reviewee_id"`
	Rating           int       `gorm:"not null" json:"rating"`
	Comment          string    `gorm:"type:text" json:"comment"`
	VerifiedPurchase bool      `gorm:"not null;default:false" json:"verified_purchase"`
	Public           bool      `gorm:"not null;default:true" json:"public"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Listing  *Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Reviewer *User    `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
