package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/adapters/persistence/repositories"
	"linka-backend/internal/config"
	"linka-backend/internal/pkg/password"
	"linka-backend/internal/pkg/token"
)

// Auth errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidPhoneNumber = errors.New("invalid phone number format")
	ErrAccountNotActive   = errors.New("account is not active")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrAlreadyVerified    = errors.New("already verified")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	notifier Notifier
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, notifier Notifier, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		notifier: notifier,
		cfg:      cfg,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	FirstName       string `json:"firstName" validate:"required,max=50"`
	LastName        string `json:"lastName" validate:"required,max=50"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Location        string `json:"location"`
	City            string `json:"city"`
	District        string `json:"district"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput represents password change input
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// UpdateProfileInput represents profile update input
type UpdateProfileInput struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Email             string `json:"email"`
	PhoneNumber       string `json:"phoneNumber"`
	Location          string `json:"location"`
	City              string `json:"city"`
	District          string `json:"district"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"accessToken"`
}

// Register registers a new user account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Passwords must match
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	// 2. Validate password strength
	if err := password.Validate(input.Password); err != nil {
		return nil, err
	}

	// 3. Validate phone number format
	if !models.ValidPhoneNumber(input.PhoneNumber) {
		return nil, ErrInvalidPhoneNumber
	}

	// 4. Check if email already exists
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	// 5. Check if phone number already exists
	exists, err = s.userRepo.ExistsByPhoneNumber(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPhoneAlreadyExists
	}

	// 6. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 7. Create user pending verification
	user := &models.User{
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Password:    hashedPassword,
		Location:    input.Location,
		City:        input.City,
		District:    input.District,
		UserType:    models.UserTypeBuyer,
		Status:      models.UserStatusPendingVerification,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// 8. Send verification messages, failures must not block registration
	go s.notifier.SendVerificationEmail(user.Email, user.FullName())
	go s.notifier.SendVerificationSMS(user.PhoneNumber)

	// 9. Issue token
	accessToken, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User registered: %s", user.Email)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: accessToken,
	}, nil
}

// Login authenticates a user and tracks failed attempts
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// 2. Locked accounts get the same answer as bad credentials
	if user.IsLocked() {
		return nil, ErrInvalidCredentials
	}

	// 3. Check account status
	if user.Status != models.UserStatusActive {
		return nil, ErrAccountNotActive
	}

	// 4. Verify password, counting failures toward lockout
	if !password.Verify(input.Password, user.Password) {
		user.RecordLoginFailure()
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Printf("⚠️ Failed to record login failure for %s: %v", user.Email, err)
		}
		return nil, ErrInvalidCredentials
	}

	// 5. Reset counters on success
	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		log.Printf("⚠️ Failed to record login success for %s: %v", user.Email, err)
	}

	// 6. Issue token
	accessToken, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ User logged in: %s", user.Email)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: accessToken,
	}, nil
}

// Logout records the logout. Tokens are stateless so nothing is revoked;
// clients discard the token.
func (s *AuthService) Logout(ctx context.Context, email string) error {
	log.Printf("✅ User logged out: %s", email)
	return nil
}

// VerifyEmail marks the user's email verified and activates the account
// once both email and phone are verified
func (s *AuthService) VerifyEmail(ctx context.Context, email string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.EmailVerified {
		return nil, ErrAlreadyVerified
	}

	user.EmailVerified = true
	s.activateIfVerified(user)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Email verified: %s", user.Email)
	return user.ToResponse(), nil
}

// VerifyPhone marks the user's phone verified and activates the account
// once both email and phone are verified
func (s *AuthService) VerifyPhone(ctx context.Context, email string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if user.PhoneVerified {
		return nil, ErrAlreadyVerified
	}

	user.PhoneVerified = true
	s.activateIfVerified(user)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Phone verified: %s", user.Email)
	return user.ToResponse(), nil
}

// activateIfVerified activates a pending account once both channels verify
func (s *AuthService) activateIfVerified(user *models.User) {
	if user.EmailVerified && user.PhoneVerified && user.Status == models.UserStatusPendingVerification {
		user.Status = models.UserStatusActive
	}
}

// ChangePassword changes the password of an authenticated user
func (s *AuthService) ChangePassword(ctx context.Context, email string, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	if !password.Verify(input.CurrentPassword, user.Password) {
		return ErrWrongPassword
	}

	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if err := password.Validate(input.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	log.Printf("✅ Password changed: %s", user.Email)
	return nil
}

// ResetPassword issues a temporary password to the account's email.
// The response never reveals whether the email exists.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("⚠️ Password reset requested for unknown email")
		return nil
	}

	temporary := password.GenerateRandom()
	hashedPassword, err := password.Hash(temporary)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	go s.notifier.SendPasswordReset(user.Email, user.FullName(), temporary)

	log.Printf("✅ Password reset issued: %s", user.Email)
	return nil
}

// GetProfile returns the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, email string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user.ToResponse(), nil
}

// UpdateProfile updates the authenticated user's profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, email string, input *UpdateProfileInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if input.Email != "" && input.Email != user.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailAlreadyExists
		}
		// A new address needs verifying again; the old token stops
		// resolving, so the client re-authenticates
		user.Email = input.Email
		user.EmailVerified = false
	}

	if input.PhoneNumber != "" && input.PhoneNumber != user.PhoneNumber {
		if !models.ValidPhoneNumber(input.PhoneNumber) {
			return nil, ErrInvalidPhoneNumber
		}
		exists, err := s.userRepo.ExistsByPhoneNumber(ctx, input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrPhoneAlreadyExists
		}
		// Changing the number requires verifying it again
		user.PhoneNumber = input.PhoneNumber
		user.PhoneVerified = false
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Location != "" {
		user.Location = input.Location
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.District != "" {
		user.District = input.District
	}
	if input.PreferredLanguage != "" {
		user.PreferredLanguage = input.PreferredLanguage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Profile updated: %s", user.Email)
	return user.ToResponse(), nil
}

// GetUserByEmail gets a user by email
func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// generateToken issues a signed access token for the user
func (s *AuthService) generateToken(user *models.User) (string, error) {
	accessToken, err := token.Generate(
		user.Email,
		user.ID,
		user.UserType,
		user.FullName(),
		s.cfg.JWT.Secret,
		s.cfg.JWT.ExpiryMinutes,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return accessToken, nil
}
