package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vivekdevkar123/BillEase-BE/internal/models/db_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/request_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/models/response_models"
	"github.com/vivekdevkar123/BillEase-BE/internal/repositories"
	"github.com/vivekdevkar123/BillEase-BE/pkg/memcache"
	"github.com/vivekdevkar123/BillEase-BE/pkg/utils"
)

const (
	defaultPlanKey = "trial"

	otpKeyPrefix   = "otp:"
	resetKeyPrefix = "reset:"
	otpTTL         = 10 * time.Minute
	resetTokenTTL  = 15 * time.Minute
)

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.RegisterRequest) (string, error)
	Login(ctx context.Context, req request_models.LoginRequest) (string, error)

	GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, req request_models.ChangePasswordRequest) error

	SendOtp(ctx context.Context, email string) error
	VerifyOtp(ctx context.Context, email, otp string) error
	SendResetPasswordEmail(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error

	ListUsers(ctx context.Context) ([]response_models.AdminUserResponse, error)
	ActivateUser(ctx context.Context, id uuid.UUID) (*response_models.AdminUserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) (*response_models.AdminUserResponse, error)
}

type AccountService struct {
	userRepo repositories.UserRepository
	planRepo repositories.PlanRepository
	codes    memcache.CodeStore
	mail     MailServiceInterface
}

func NewAccountService(
	userRepo repositories.UserRepository,
	planRepo repositories.PlanRepository,
	codes memcache.CodeStore,
	mail MailServiceInterface,
) AccountServiceInterface {
	return &AccountService{
		userRepo: userRepo,
		planRepo: planRepo,
		codes:    codes,
		mail:     mail,
	}
}

func (a *AccountService) Register(ctx context.Context, req request_models.RegisterRequest) (string, error) {
	existing, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if existing != nil {
		return "", utils.ErrEmailAlreadyExists
	}

	planKey := req.PlanKey
	if planKey == "" {
		planKey = defaultPlanKey
	}
	plan, err := a.planRepo.FindByKey(ctx, planKey)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if plan == nil || !plan.IsActive {
		vErr := utils.NewValidationError()
		vErr.Add("plan_key", "Invalid plan selected: "+planKey)
		return "", vErr
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	user := &db_models.User{
		Email:        req.Email,
		PasswordHash: hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
		ReferredBy:   req.ReferredBy,
		IsActive:     true,
	}
	user.ActivatePlan(plan, utils.NowUnixSeconds())

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return "", utils.ErrDatabaseError
	}

	go func(email, firstName, planName string) {
		if err := a.mail.SendWelcomeMail(email, firstName, planName); err != nil {
			log.Error().Err(err).Str("email", email).Msg("welcome mail failed")
		}
	}(user.Email, user.FirstName, plan.Name)

	log.Info().Str("email", user.Email).Str("plan_key", plan.PlanKey).Msg("user registered")
	return utils.CreateToken(user.ID, user.Role())
}

func (a *AccountService) Login(ctx context.Context, req request_models.LoginRequest) (string, error) {
	user, err := a.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", utils.ErrDatabaseError
	}
	if user == nil {
		return "", utils.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", utils.ErrAccountDisabled
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	return utils.CreateToken(user.ID, user.Role())
}

func (a *AccountService) GetProfile(ctx context.Context, userID uuid.UUID) (*response_models.ProfileResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return toProfileResponse(user), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, req request_models.UpdateProfileRequest) (*response_models.ProfileResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.MobileNumber != nil {
		user.MobileNumber = *req.MobileNumber
	}
	if req.BusinessName != nil {
		user.BusinessName = *req.BusinessName
	}
	if req.BusinessAddress != nil {
		user.BusinessAddress = *req.BusinessAddress
	}
	if req.UpiID != nil {
		user.UpiID = *req.UpiID
	}
	if req.ReferredBy != nil {
		user.ReferredBy = *req.ReferredBy
	}
	if req.GstinNumber != nil {
		user.GstinNumber = *req.GstinNumber
	}
	if req.GstPercentage != nil {
		user.GstPercentage = decimal.NewFromFloat(*req.GstPercentage)
	}

	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return toProfileResponse(user), nil
}

func (a *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, req request_models.ChangePasswordRequest) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.OldPassword); err != nil {
		vErr := utils.NewValidationError()
		vErr.Add("old_password", "Old password is incorrect")
		return vErr
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = hashed

	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// SendOtp mails a verification code for an address that is about to
// register. Already-registered addresses are rejected.
func (a *AccountService) SendOtp(ctx context.Context, email string) error {
	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return utils.ErrEmailAlreadyExists
	}

	code, err := utils.GenerateOtpCode(6)
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	a.codes.Set(otpKeyPrefix+email, code, otpTTL)

	if err := a.mail.SendOtpMail(email, code); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}

	log.Info().Str("email", email).Msg("otp sent")
	return nil
}

// VerifyOtp checks without consuming on mismatch, so a typo does not
// burn the code.
func (a *AccountService) VerifyOtp(ctx context.Context, email, otp string) error {
	stored, ok := a.codes.Peek(otpKeyPrefix + email)
	if !ok {
		return utils.ErrOtpExpired
	}
	if stored != otp {
		return utils.ErrInvalidOtp
	}
	a.codes.Consume(otpKeyPrefix + email)
	return nil
}

func (a *AccountService) SendResetPasswordEmail(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	a.codes.Set(resetKeyPrefix+token, user.ID.String(), resetTokenTTL)

	if err := a.mail.SendResetPasswordMail(user.Email, token); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	log.Info().Str("email", email).Msg("password reset mail sent")
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, req request_models.ResetPasswordRequest) error {
	rawID, ok := a.codes.Consume(resetKeyPrefix + req.Token)
	if !ok {
		return utils.ErrInvalidResetToken
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return utils.ErrInvalidResetToken
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrUserNotFound
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = hashed

	if err := a.userRepo.Update(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	log.Info().Str("email", user.Email).Msg("password reset completed")
	return nil
}

func (a *AccountService) ListUsers(ctx context.Context) ([]response_models.AdminUserResponse, error) {
	users, err := a.userRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.AdminUserResponse, 0, len(users))
	for i := range users {
		result = append(result, toAdminUserResponse(&users[i]))
	}
	return result, nil
}

func (a *AccountService) ActivateUser(ctx context.Context, id uuid.UUID) (*response_models.AdminUserResponse, error) {
	user, err := a.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	user.ActivateAccount(utils.NowUnixSeconds())
	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	go func(email, firstName string) {
		if err := a.mail.SendAccountActivatedMail(email, firstName); err != nil {
			log.Error().Err(err).Str("email", email).Msg("activation mail failed")
		}
	}(user.Email, user.FirstName)

	log.Info().Str("email", user.Email).Msg("account activated")
	resp := toAdminUserResponse(user)
	return &resp, nil
}

func (a *AccountService) DeactivateUser(ctx context.Context, id uuid.UUID) (*response_models.AdminUserResponse, error) {
	user, err := a.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}

	user.DeactivateAccount()
	if err := a.userRepo.Update(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	log.Info().Str("email", user.Email).Msg("account deactivated")
	resp := toAdminUserResponse(user)
	return &resp, nil
}

func toProfileResponse(u *db_models.User) *response_models.ProfileResponse {
	now := utils.NowUnixSeconds()

	resp := &response_models.ProfileResponse{
		ID:                       u.ID,
		Email:                    u.Email,
		FirstName:                u.FirstName,
		LastName:                 u.LastName,
		MobileNumber:             u.MobileNumber,
		BusinessName:             u.BusinessName,
		BusinessAddress:          u.BusinessAddress,
		UpiID:                    u.UpiID,
		ReferredBy:               u.ReferredBy,
		GstinNumber:              u.GstinNumber,
		GstPercentage:            u.GstPercentage.InexactFloat64(),
		PlanKey:                  u.PlanKey(),
		PlanExpiryDate:           utils.FormatRFC3339(u.PlanExpiryDate),
		BillingRequestsRemaining: u.BillingRequestsRemaining,
		HasActivePlan:            u.HasActivePlan(now),
		CanCreateBill:            u.CanCreateBill(now),
		IsAccountActivated:       u.IsAccountActivated,
		CreatedAt:                u.CreatedAt,
	}

	if u.CurrentPlan != nil {
		plan := toPlanResponse(u.CurrentPlan)
		resp.CurrentPlan = &plan
	}
	return resp
}

func toAdminUserResponse(u *db_models.User) response_models.AdminUserResponse {
	return response_models.AdminUserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		MobileNumber:       u.MobileNumber,
		BusinessName:       u.BusinessName,
		ReferredBy:         u.ReferredBy,
		PlanKey:            u.PlanKey(),
		PlanExpiryDate:     utils.FormatRFC3339(u.PlanExpiryDate),
		IsAccountActivated: u.IsAccountActivated,
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt,
	}
}
