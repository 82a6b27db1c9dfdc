package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/request_models"
	"github.com/vivekdevkar123/BillEase-BE/pkg/memcache"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

type accountFixture struct {
	svc      AccountServiceInterface
	userRepo *fakeUserRepo
	planRepo *fakePlanRepo
	codes    memcache.CodeStore
	mail     *fakeMailService
}

func newAccountFixture(t *testing.T, users ...*db_models.User) accountFixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-signing-key")

	planRepo := newFakePlanRepo()
	for _, seed := range defaultPlans() {
		plan := seed
		require.NoError(t, planRepo.Insert(context.Background(), &plan))
	}

	f := accountFixture{
		userRepo: newFakeUserRepo(users...),
		planRepo: planRepo,
		codes:    memcache.NewCodeStore(),
		mail:     newFakeMailService(),
	}
	f.svc = NewAccountService(f.userRepo, f.planRepo, f.codes, f.mail)
	return f
}

func registeredUser(t *testing.T, email, password string) *db_models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &db_models.User{
		BaseModel:    db_models.BaseModel{ID: uuid.New()},
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Asha",
		LastName:     "Verma",
		IsActive:     true,
	}
}

func TestRegisterDefaultsToTrialPlan(t *testing.T) {
	f := newAccountFixture(t)

	token, err := f.svc.Register(context.Background(), request_models.RegisterRequest{
		Email:        "new@example.com",
		Password:     "secret123",
		FirstName:    "Asha",
		LastName:     "Verma",
		MobileNumber: "9876543210",
	})
	require.NoError(t, err)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, db_models.RoleUser, claims.Role)

	user, err := f.userRepo.FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "trial", user.PlanKey())
	assert.Equal(t, 50, user.BillingRequestsRemaining)
	assert.Greater(t, user.PlanExpiryDate, utils.NowUnixSeconds())
	assert.False(t, user.IsAccountActivated, "activation is an admin step")

	// The welcome mail goes out on a goroutine.
	assert.Eventually(t, func() bool { return f.mail.welcomeCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestRegisterWithChosenPlan(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Register(context.Background(), request_models.RegisterRequest{
		Email:        "shop@example.com",
		Password:     "secret123",
		FirstName:    "Ravi",
		LastName:     "Iyer",
		MobileNumber: "9876543210",
		PlanKey:      "3months",
	})
	require.NoError(t, err)

	user, _ := f.userRepo.FindByEmail(context.Background(), "shop@example.com")
	require.NotNil(t, user)
	assert.Equal(t, "3months", user.PlanKey())
	assert.Equal(t, 0, user.BillingRequestsRemaining)
}

func TestRegisterRejectsUnknownPlan(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Register(context.Background(), request_models.RegisterRequest{
		Email:        "new@example.com",
		Password:     "secret123",
		FirstName:    "Asha",
		LastName:     "Verma",
		MobileNumber: "9876543210",
		PlanKey:      "gold",
	})

	msgs := fieldMessages(t, err)
	assert.Equal(t, "Invalid plan selected: gold", msgs["plan_key"])
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	existing := registeredUser(t, "taken@example.com", "secret123")
	f := newAccountFixture(t, existing)

	_, err := f.svc.Register(context.Background(), request_models.RegisterRequest{
		Email:        "taken@example.com",
		Password:     "secret123",
		FirstName:    "Asha",
		LastName:     "Verma",
		MobileNumber: "9876543210",
	})

	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	user := registeredUser(t, "shop@example.com", "secret123")
	f := newAccountFixture(t, user)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := f.svc.Login(context.Background(), request_models.LoginRequest{
			Email:    "shop@example.com",
			Password: "secret123",
		})
		require.NoError(t, err)

		claims, err := utils.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(context.Background(), request_models.LoginRequest{
			Email:    "shop@example.com",
			Password: "nope",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(context.Background(), request_models.LoginRequest{
			Email:    "ghost@example.com",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	})
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	user := registeredUser(t, "blocked@example.com", "secret123")
	user.IsActive = false
	f := newAccountFixture(t, user)

	_, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "blocked@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, utils.ErrAccountDisabled)
}

func TestUpdateProfile(t *testing.T) {
	user := registeredUser(t, "shop@example.com", "secret123")
	f := newAccountFixture(t, user)

	gst := 12.5
	resp, err := f.svc.UpdateProfile(context.Background(), user.ID, request_models.UpdateProfileRequest{
		BusinessName:  strPtr("Verma Traders"),
		GstinNumber:   strPtr("27AAPFU0939F1ZV"),
		GstPercentage: &gst,
	})

	require.NoError(t, err)
	assert.Equal(t, "Verma Traders", resp.BusinessName)
	assert.Equal(t, "27AAPFU0939F1ZV", resp.GstinNumber)
	assert.Equal(t, 12.5, resp.GstPercentage)
	assert.Equal(t, "Asha", resp.FirstName, "untouched fields survive")
}

func TestChangePassword(t *testing.T) {
	user := registeredUser(t, "shop@example.com", "oldpass1")
	f := newAccountFixture(t, user)

	t.Run("wrong old password", func(t *testing.T) {
		err := f.svc.ChangePassword(context.Background(), user.ID, request_models.ChangePasswordRequest{
			OldPassword: "wrong",
			NewPassword: "newpass1",
		})
		msgs := fieldMessages(t, err)
		assert.Equal(t, "Old password is incorrect", msgs["old_password"])
	})

	t.Run("success", func(t *testing.T) {
		err := f.svc.ChangePassword(context.Background(), user.ID, request_models.ChangePasswordRequest{
			OldPassword: "oldpass1",
			NewPassword: "newpass1",
		})
		require.NoError(t, err)

		_, err = f.svc.Login(context.Background(), request_models.LoginRequest{
			Email:    "shop@example.com",
			Password: "newpass1",
		})
		assert.NoError(t, err)
	})
}

func TestSendOtpRejectsRegisteredEmail(t *testing.T) {
	user := registeredUser(t, "taken@example.com", "secret123")
	f := newAccountFixture(t, user)

	err := f.svc.SendOtp(context.Background(), "taken@example.com")
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestOtpVerificationFlow(t *testing.T) {
	f := newAccountFixture(t)
	email := "new@example.com"

	require.NoError(t, f.svc.SendOtp(context.Background(), email))
	code := f.mail.lastOtp(email)
	require.Len(t, code, 6)

	// A wrong guess must not burn the stored code.
	err := f.svc.VerifyOtp(context.Background(), email, "000000x")
	assert.ErrorIs(t, err, utils.ErrInvalidOtp)

	require.NoError(t, f.svc.VerifyOtp(context.Background(), email, code))

	// Verification consumes the code.
	err = f.svc.VerifyOtp(context.Background(), email, code)
	assert.ErrorIs(t, err, utils.ErrOtpExpired)
}

func TestVerifyOtpWithoutRequest(t *testing.T) {
	f := newAccountFixture(t)

	err := f.svc.VerifyOtp(context.Background(), "nobody@example.com", "123456")
	assert.ErrorIs(t, err, utils.ErrOtpExpired)
}

func TestPasswordResetFlow(t *testing.T) {
	user := registeredUser(t, "shop@example.com", "oldpass1")
	f := newAccountFixture(t, user)

	require.NoError(t, f.svc.SendResetPasswordEmail(context.Background(), "shop@example.com"))
	token := f.mail.lastResetToken("shop@example.com")
	require.NotEmpty(t, token)

	require.NoError(t, f.svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:    token,
		Password: "newpass1",
	}))

	_, err := f.svc.Login(context.Background(), request_models.LoginRequest{
		Email:    "shop@example.com",
		Password: "newpass1",
	})
	assert.NoError(t, err)

	// The link is single use.
	err = f.svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:    token,
		Password: "another1",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidResetToken)
}

func TestSendResetPasswordEmailUnknownAddress(t *testing.T) {
	f := newAccountFixture(t)

	err := f.svc.SendResetPasswordEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, utils.ErrUserNotFound)
}

func TestResetPasswordRejectsGarbageToken(t *testing.T) {
	f := newAccountFixture(t)

	err := f.svc.ResetPassword(context.Background(), request_models.ResetPasswordRequest{
		Token:    "not-a-real-token",
		Password: "newpass1",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidResetToken)
}

func TestActivateUserRestartsPlanPeriod(t *testing.T) {
	plan := meteredPlan()
	user := billingUser(plan, 50)
	user.IsAccountActivated = false
	user.PlanExpiryDate = utils.NowUnixSeconds() - 86400
	f := newAccountFixture(t, user)

	resp, err := f.svc.ActivateUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, resp.IsAccountActivated)

	stored, _ := f.userRepo.FindByID(context.Background(), user.ID)
	assert.True(t, stored.IsAccountActivated)
	expected := utils.NowUnixSeconds() + int64(plan.DurationDays)*86400
	assert.InDelta(t, expected, stored.PlanExpiryDate, 5,
		"plan period restarts from activation")

	assert.Eventually(t, func() bool { return f.mail.activatedCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestDeactivateUser(t *testing.T) {
	user := billingUser(meteredPlan(), 50)
	f := newAccountFixture(t, user)

	resp, err := f.svc.DeactivateUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, resp.IsAccountActivated)

	stored, _ := f.userRepo.FindByID(context.Background(), user.ID)
	assert.False(t, stored.IsAccountActivated)
}

func TestListUsersSortedByEmail(t *testing.T) {
	a := registeredUser(t, "a@example.com", "secret123")
	b := registeredUser(t, "b@example.com", "secret123")
	f := newAccountFixture(t, b, a)

	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "b@example.com", users[1].Email)
}
