package models

import (
	"regexp"
	"time"

	"gorm.io/gorm"
)

// User statuses
const (
	UserStatusPendingVerification = "PENDING_VERIFICATION"
	UserStatusActive              = "ACTIVE"
	UserStatusSuspended           = "SUSPENDED"
	UserStatusBanned              = "BANNED"
	UserStatusDeactivated         = "DEACTIVATED"
)

// User types
const (
	UserTypeAdmin  = "ADMIN"
	UserTypeBuyer  = "BUYER"
	UserTypeSeller = "SELLER"
	UserTypeBoth   = "BOTH"
)

// Account lockout policy
const (
	MaxFailedLoginAttempts = 5
	LockoutDuration        = 30 * time.Minute
)

// ugandaPhone validates Ugandan mobile/landline numbers
var ugandaPhone = regexp.MustCompile(`^(\+256|0)(7[0-9]{8}|3[0-9]{8})$`)

// ValidPhoneNumber reports whether s is a valid Uganda phone number
func ValidPhoneNumber(s string) bool {
	return ugandaPhone.MatchString(s)
}

// User represents the users table. Users are never hard-deleted; the
// status column drives the account lifecycle.
type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	FirstName           string     `gorm:"size:100;not null" json:"first_name"`
	LastName            string     `gorm:"size:100;not null" json:"last_name"`
	Email               string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber         string     `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	Password            string     `gorm:"size:255;not null" json:"-"`
	Status              string     `gorm:"size:30;not null;default:'PENDING_VERIFICATION'" json:"status"`
	UserType            string     `gorm:"size:20;not null;default:'BUYER'" json:"user_type"`
	EmailVerified       bool       `gorm:"not null;default:false" json:"email_verified"`
	PhoneVerified       bool       `gorm:"not null;default:false" json:"phone_verified"`
	Location            string     `gorm:"size:200" json:"location"`
	City                string     `gorm:"size:100" json:"city"`
	District            string     `gorm:"size:100" json:"district"`
	Country             string     `gorm:"size:100;not null;default:'Uganda'" json:"country"`
	LastLogin           *time.Time `json:"last_login"`
	LoginCount          int        `gorm:"not null;default:0" json:"login_count"`
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	AccountLockedUntil  *time.Time `json:"-"`
	RatingAverage       float64    `gorm:"type:decimal(3,2);not null;default:0" json:"rating_average"`
	RatingCount         int        `gorm:"not null;default:0" json:"rating_count"`
	TotalSales          int        `gorm:"not null;default:0" json:"total_sales"`
	TotalPurchases      int        `gorm:"not null;default:0" json:"total_purchases"`
	VerifiedSeller      bool       `gorm:"not null;default:false" json:"verified_seller"`
	PreferredLanguage   string     `gorm:"size:10;not null;default:'en'" json:"preferred_language"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsLocked reports whether the account is currently locked out.
// Lock expiry is lazy: an expired deadline simply stops mattering,
// and the next successful login clears it.
func (u *User) IsLocked() bool {
	return u.AccountLockedUntil != nil && u.AccountLockedUntil.After(time.Now())
}

// RecordLoginSuccess resets the lockout state and updates login stats
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.FailedLoginAttempts = 0
	u.AccountLockedUntil = nil
	u.LastLogin = &now
	u.LoginCount++
}

// RecordLoginFailure increments the failure counter and locks the account
// once it reaches MaxFailedLoginAttempts
func (u *User) RecordLoginFailure() {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= MaxFailedLoginAttempts {
		until := time.Now().Add(LockoutDuration)
		u.AccountLockedUntil = &until
	}
}

// Unlock clears the lockout state regardless of its current value
func (u *User) Unlock() {
	u.AccountLockedUntil = nil
	u.FailedLoginAttempts = 0
}

// UserResponse DTO
type UserResponse struct {
	ID             uint       `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	PhoneNumber    string     `json:"phone_number"`
	Status         string     `json:"status"`
	UserType       string     `json:"user_type"`
	EmailVerified  bool       `json:"email_verified"`
	PhoneVerified  bool       `json:"phone_verified"`
	Location       string     `json:"location,omitempty"`
	City           string     `json:"city,omitempty"`
	District       string     `json:"district,omitempty"`
	Country        string     `json:"country"`
	RatingAverage  float64    `json:"rating_average"`
	RatingCount    int        `json:"rating_count"`
	TotalSales     int        `json:"total_sales"`
	TotalPurchases int        `json:"total_purchases"`
	VerifiedSeller bool       `json:"verified_seller"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		PhoneNumber:    u.PhoneNumber,
		Status:         u.Status,
		UserType:       u.UserType,
		EmailVerified:  u.EmailVerified,
		PhoneVerified:  u.PhoneVerified,
		Location:       u.Location,
		City:           u.City,
		District:       u.District,
		Country:        u.Country,
		RatingAverage:  u.RatingAverage,
		RatingCount:    u.RatingCount,
		TotalSales:     u.TotalSales,
		TotalPurchases: u.TotalPurchases,
		VerifiedSeller: u.VerifiedSeller,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
	}
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Listing{},
		&Transaction{},
		&Review{},
	)
}
