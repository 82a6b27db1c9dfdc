package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status          string      `json:"status"`
	Code            int         `json:"code"`
	Message         string      `json:"message,omitempty"`
	TraceID         string      `json:"trace_id,omitempty"`
	Data            interface{} `json:"data,omitempty"`
	Errors          interface{} `json:"errors,omitempty"`
	UpgradeRequired bool        `json:"upgrade_required,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	traceID, _ := c.Get("trace_id")
	tid, _ := traceID.(string)
	return tid
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

// RespondUpgradeRequired marks entitlement rejections the client can fix by
// changing plan.
func RespondUpgradeRequired(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, APIResponse{
		Status:          "error",
		Code:            http.StatusForbidden,
		Message:         message,
		TraceID:         traceIDOf(c),
		UpgradeRequired: true,
	})
}

func RespondValidationErrors(c *gin.Context, v *ValidationError) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Status:  "error",
		Code:    http.StatusBadRequest,
		Message: "Validation failed",
		TraceID: traceIDOf(c),
		Errors:  v.Fields,
	})
}

// HandleServiceError maps service-layer errors onto the HTTP taxonomy.
// Validation errors keep their field list; everything unrecognized is a 500
// with the detail logged server-side only.
func HandleServiceError(c *gin.Context, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		RespondValidationErrors(c, vErr)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "Email or password is not valid")
	case errors.Is(err, ErrAccountDisabled):
		RespondError(c, http.StatusUnauthorized, "This account has been disabled")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, ErrUserNotFound):
		RespondError(c, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusBadRequest, "Invalid plan selected")
	case errors.Is(err, ErrProductNotFound):
		RespondError(c, http.StatusNotFound, "Product not found")
	case errors.Is(err, ErrBillNotFound):
		RespondError(c, http.StatusNotFound, "Bill not found")
	case errors.Is(err, ErrAccountNotActivated):
		RespondError(c, http.StatusForbidden, "Your account is not activated yet. Please wait for approval after payment verification.")
	case errors.Is(err, ErrPlanExpired):
		RespondError(c, http.StatusForbidden, "Your billing plan has expired. Please renew to create bills.")
	case errors.Is(err, ErrQuotaExhausted):
		RespondUpgradeRequired(c, "You have no billing requests remaining. Please upgrade your plan.")
	case errors.Is(err, ErrDashboardNotInPlan):
		RespondUpgradeRequired(c, "Dashboard access not available in your current plan")
	case errors.Is(err, ErrSalesReportsNotInPlan):
		RespondUpgradeRequired(c, "Sales reports not available in your current plan")
	case errors.Is(err, ErrInventoryReportsNotInPlan):
		RespondUpgradeRequired(c, "Inventory reports not available in your current plan")
	case errors.Is(err, ErrExcelExportNotInPlan):
		RespondUpgradeRequired(c, "Excel export not available in your current plan")
	case errors.Is(err, ErrInvalidOtp):
		RespondError(c, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, ErrOtpExpired):
		RespondError(c, http.StatusBadRequest, "OTP expired or not requested")
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, "Token is not valid or expired")
	case errors.Is(err, ErrDatabaseError):
		log.Error().Str("trace_id", traceIDOf(c)).Err(err).Msg("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Error().Str("trace_id", traceIDOf(c)).Err(err).Msg("unhandled service error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
