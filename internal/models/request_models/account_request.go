package request_models

type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	Password2    string `json:"password2" binding:"required,eqfield=Password"`
	FirstName    string `json:"first_name" binding:"required,max=200"`
	LastName     string `json:"last_name" binding:"required,max=200"`
	MobileNumber string `json:"mobile_number" binding:"required,max=13"`
	// PlanKey defaults to the trial plan when omitted.
	PlanKey    string `json:"plan_key"`
	ReferredBy string `json:"referred_by" binding:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries only the editable profile fields. Pointers
// distinguish "leave unchanged" from "set to empty".
type UpdateProfileRequest struct {
	FirstName       *string  `json:"first_name" binding:"omitempty,max=200"`
	LastName        *string  `json:"last_name" binding:"omitempty,max=200"`
	MobileNumber    *string  `json:"mobile_number" binding:"omitempty,max=13"`
	BusinessName    *string  `json:"business_name" binding:"omitempty,max=200"`
	BusinessAddress *string  `json:"business_address"`
	UpiID           *string  `json:"upi_id" binding:"omitempty,max=100"`
	ReferredBy      *string  `json:"referred_by" binding:"omitempty,max=200"`
	GstinNumber     *string  `json:"gstin_number" binding:"omitempty,max=15"`
	GstPercentage   *float64 `json:"gst_percentage" binding:"omitempty,gte=0,lte=100"`
}

type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password" binding:"required"`
	NewPassword  string `json:"new_password" binding:"required,min=6"`
	NewPassword2 string `json:"new_password2" binding:"required,eqfield=NewPassword"`
}

type SendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required,len=6"`
}

type SendResetPasswordEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token     string `json:"token" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Password2 string `json:"password2" binding:"required,eqfield=Password"`
}

type CreatePlanRequest struct {
	PlanKey         string   `json:"plan_key" binding:"required,max=50"`
	Name            string   `json:"name" binding:"required,max=100"`
	Description     string   `json:"description"`
	Price           float64  `json:"price" binding:"gte=0"`
	BillingRequests int      `json:"billing_requests" binding:"gte=0"`
	DurationDays    int      `json:"duration_days" binding:"required,gt=0"`
	Capabilities    []string `json:"capabilities"`
	IsActive        *bool    `json:"is_active"`
	IsCustom        *bool    `json:"is_custom"`
}

type UpdatePlanRequest struct {
	Name            *string   `json:"name" binding:"omitempty,max=100"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price" binding:"omitempty,gte=0"`
	BillingRequests *int      `json:"billing_requests" binding:"omitempty,gte=0"`
	DurationDays    *int      `json:"duration_days" binding:"omitempty,gt=0"`
	Capabilities    *[]string `json:"capabilities"`
	IsActive        *bool     `json:"is_active"`
	IsCustom        *bool     `json:"is_custom"`
}
