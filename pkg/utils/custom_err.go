package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDatabaseError      = errors.New("database error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrBillNotFound       = errors.New("bill not found")

	ErrAccountNotActivated = errors.New("account not activated")
	ErrPlanExpired         = errors.New("billing plan expired")
	ErrQuotaExhausted      = errors.New("no billing requests remaining")

	ErrDashboardNotInPlan        = errors.New("insights dashboard not in plan")
	ErrSalesReportsNotInPlan     = errors.New("sales reports not in plan")
	ErrInventoryReportsNotInPlan = errors.New("inventory reports not in plan")
	ErrExcelExportNotInPlan      = errors.New("excel export not in plan")

	ErrInvalidOtp        = errors.New("invalid otp")
	ErrOtpExpired        = errors.New("otp expired or not requested")
	ErrInvalidResetToken = errors.New("reset token invalid or expired")
)

// FieldError attributes a validation failure to a single input field.
// Bill item errors use the "items[i].field" form so the offending index
// stays visible to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (f FieldError) Error() string {
	return f.Field + ": " + f.Message
}

// ValidationError carries the full list of field errors for one request.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (v *ValidationError) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

func (v *ValidationError) AddItem(index int, field, message string) {
	v.Add(ItemField(index, field), message)
}

func (v *ValidationError) HasErrors() bool {
	return len(v.Fields) > 0
}

// ErrOrNil lets validators return the collected errors in one shot.
func (v *ValidationError) ErrOrNil() error {
	if v.HasErrors() {
		return v
	}
	return nil
}

func (v *ValidationError) Error() string {
	msgs := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		msgs = append(msgs, f.Error())
	}
	return strings.Join(msgs, "; ")
}

func ItemField(index int, field string) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}
