package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linka-backend/internal/adapters/persistence/models"
	"linka-backend/internal/config"
	"linka-backend/internal/pkg/password"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-secret-key-for-auth-tests",
			ExpiryMinutes: 60,
		},
	}
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeNotifier) {
	userRepo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	return NewAuthService(userRepo, notifier, testConfig()), userRepo, notifier
}

func seedActiveUser(t *testing.T, repo *fakeUserRepo, email, plainPassword string) *models.User {
	t.Helper()
	hashed, err := password.Hash(plainPassword)
	require.NoError(t, err)
	user := &models.User{
		Email:         email,
		PhoneNumber:   "+256700000099",
		FirstName:     "Grace",
		LastName:      "Nakato",
		Password:      hashed,
		UserType:      models.UserTypeBuyer,
		Status:        models.UserStatusActive,
		EmailVerified: true,
		PhoneVerified: true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	validInput := func() *RegisterInput {
		return &RegisterInput{
			Email:           "grace@example.com",
			PhoneNumber:     "+256701234567",
			FirstName:       "Grace",
			LastName:        "Nakato",
			Password:        "strongpass1",
			ConfirmPassword: "strongpass1",
		}
	}

	t.Run("creates pending buyer account with token", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()

		resp, err := svc.Register(ctx, validInput())
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "grace@example.com", resp.User.Email)

		created, err := repo.GetByEmail(ctx, "grace@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.UserStatusPendingVerification, created.Status)
		assert.Equal(t, models.UserTypeBuyer, created.UserType)
		assert.NotEqual(t, "strongpass1", created.Password)
		assert.True(t, password.Verify("strongpass1", created.Password))
	})

	t.Run("rejects mismatched passwords", func(t *testing.T) {
		svc, _, _ := newAuthFixture()
		input := validInput()
		input.ConfirmPassword = "different1"

		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("rejects short password", func(t *testing.T) {
		svc, _, _ := newAuthFixture()
		input := validInput()
		input.Password = "short"
		input.ConfirmPassword = "short"

		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, password.ErrPasswordTooShort)
	})

	t.Run("rejects invalid phone number", func(t *testing.T) {
		svc, _, _ := newAuthFixture()
		input := validInput()
		input.PhoneNumber = "not-a-phone"

		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, ErrInvalidPhoneNumber)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		_, err := svc.Register(ctx, validInput())
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("rejects duplicate phone number", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		existing := seedActiveUser(t, repo, "other@example.com", "strongpass1")
		input := validInput()
		input.PhoneNumber = existing.PhoneNumber

		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, ErrPhoneAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds and resets failure counter", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")
		user.FailedLoginAttempts = 3
		require.NoError(t, repo.Update(ctx, user))

		resp, err := svc.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "strongpass1"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		saved, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, saved.FailedLoginAttempts)
		assert.NotNil(t, saved.LastLogin)
		assert.Equal(t, 1, saved.LoginCount)
	})

	t.Run("wrong password increments failure counter", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		_, err := svc.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "wrongpass1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		saved, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, saved.FailedLoginAttempts)
		assert.Nil(t, saved.AccountLockedUntil)
	})

	t.Run("locks account after repeated failures", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		for i := 0; i < models.MaxFailedLoginAttempts; i++ {
			_, err := svc.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "wrongpass1"})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		}

		saved, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.MaxFailedLoginAttempts, saved.FailedLoginAttempts)
		require.NotNil(t, saved.AccountLockedUntil)
		remaining := time.Until(*saved.AccountLockedUntil)
		assert.Greater(t, remaining, 29*time.Minute)
		assert.LessOrEqual(t, remaining, models.LockoutDuration)
	})

	t.Run("locked account rejects correct password", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")
		until := time.Now().Add(10 * time.Minute)
		user.FailedLoginAttempts = models.MaxFailedLoginAttempts
		user.AccountLockedUntil = &until
		require.NoError(t, repo.Update(ctx, user))

		_, err := svc.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "strongpass1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("expired lock allows login again", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")
		until := time.Now().Add(-time.Minute)
		user.FailedLoginAttempts = models.MaxFailedLoginAttempts
		user.AccountLockedUntil = &until
		require.NoError(t, repo.Update(ctx, user))

		resp, err := svc.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "strongpass1"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		saved, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, saved.FailedLoginAttempts)
		assert.Nil(t, saved.AccountLockedUntil)
	})

	t.Run("unknown email returns invalid credentials", func(t *testing.T) {
		svc, _, _ := newAuthFixture()

		_, err := svc.Login(ctx, &LoginInput{Email: "nobody@example.com", Password: "strongpass1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("suspended account is rejected without counting a failure", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")
		user.Status = models.UserStatusSuspended
		require.NoError(t, repo.Update(ctx, user))

		_, err := svc.Login(ctx, &LoginInput{Email: "grace@example.com", Password: "strongpass1"})
		assert.ErrorIs(t, err, ErrAccountNotActive)

		saved, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, saved.FailedLoginAttempts)
	})
}

func TestVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("activates after both channels verified", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		resp, err := svc.Register(ctx, &RegisterInput{
			Email:           "grace@example.com",
			PhoneNumber:     "+256701234567",
			FirstName:       "Grace",
			LastName:        "Nakato",
			Password:        "strongpass1",
			ConfirmPassword: "strongpass1",
		})
		require.NoError(t, err)

		_, err = svc.VerifyEmail(ctx, resp.User.Email)
		require.NoError(t, err)
		saved, _ := repo.GetByEmail(ctx, resp.User.Email)
		assert.Equal(t, models.UserStatusPendingVerification, saved.Status)

		_, err = svc.VerifyPhone(ctx, resp.User.Email)
		require.NoError(t, err)
		saved, _ = repo.GetByEmail(ctx, resp.User.Email)
		assert.Equal(t, models.UserStatusActive, saved.Status)
	})

	t.Run("rejects double verification", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		_, err := svc.VerifyEmail(ctx, "grace@example.com")
		assert.ErrorIs(t, err, ErrAlreadyVerified)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes with correct current password", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		err := svc.ChangePassword(ctx, user.Email, &ChangePasswordInput{
			CurrentPassword: "strongpass1",
			NewPassword:     "evenstronger2",
			ConfirmPassword: "evenstronger2",
		})
		require.NoError(t, err)

		saved, _ := repo.GetByID(ctx, user.ID)
		assert.True(t, password.Verify("evenstronger2", saved.Password))
	})

	t.Run("rejects wrong current password", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		err := svc.ChangePassword(ctx, user.Email, &ChangePasswordInput{
			CurrentPassword: "wrongpass1",
			NewPassword:     "evenstronger2",
			ConfirmPassword: "evenstronger2",
		})
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		err := svc.ChangePassword(ctx, user.Email, &ChangePasswordInput{
			CurrentPassword: "strongpass1",
			NewPassword:     "evenstronger2",
			ConfirmPassword: "different3",
		})
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email is silently accepted", func(t *testing.T) {
		svc, _, _ := newAuthFixture()
		assert.NoError(t, svc.ResetPassword(ctx, "nobody@example.com"))
	})

	t.Run("replaces the stored password", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		require.NoError(t, svc.ResetPassword(ctx, user.Email))

		saved, _ := repo.GetByID(ctx, user.ID)
		assert.False(t, password.Verify("strongpass1", saved.Password))
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("phone change clears phone verification", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		resp, err := svc.UpdateProfile(ctx, user.Email, &UpdateProfileInput{
			PhoneNumber: "+256709999999",
		})
		require.NoError(t, err)
		assert.Equal(t, "+256709999999", resp.PhoneNumber)

		saved, _ := repo.GetByID(ctx, user.ID)
		assert.False(t, saved.PhoneVerified)
	})

	t.Run("email change clears email verification", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		resp, err := svc.UpdateProfile(ctx, user.Email, &UpdateProfileInput{
			Email: "grace.new@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "grace.new@example.com", resp.Email)

		saved, _ := repo.GetByID(ctx, user.ID)
		assert.False(t, saved.EmailVerified)
	})

	t.Run("email change rejects an address in use", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")
		other := &models.User{
			Email: "taken@example.com", PhoneNumber: "+256700000098",
			FirstName: "Other", LastName: "User",
			UserType: models.UserTypeBuyer, Status: models.UserStatusActive,
		}
		require.NoError(t, repo.Create(ctx, other))

		_, err := svc.UpdateProfile(ctx, user.Email, &UpdateProfileInput{Email: "taken@example.com"})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("empty fields are left untouched", func(t *testing.T) {
		svc, repo, _ := newAuthFixture()
		user := seedActiveUser(t, repo, "grace@example.com", "strongpass1")

		resp, err := svc.UpdateProfile(ctx, user.Email, &UpdateProfileInput{City: "Kampala"})
		require.NoError(t, err)
		assert.Equal(t, "Grace", resp.FirstName)
		assert.Equal(t, "Kampala", resp.City)

		saved, _ := repo.GetByID(ctx, user.ID)
		assert.True(t, saved.PhoneVerified)
	})
}
