package request_models

// BillItemInput binds price and quantity as loose JSON values so the
// validator can report a per-item field error instead of a bind failure
// when a client sends "12.50" or 2.5 where a number is expected.
type BillItemInput struct {
	Name     string      `json:"name"`
	Price    interface{} `json:"price"`
	Quantity interface{} `json:"quantity"`
	IsCustom bool        `json:"isCustom"`
}

type CreateBillRequest struct {
	CustomerName  string          `json:"customer_name" binding:"required,max=200"`
	CustomerPhone string          `json:"customer_phone" binding:"max=20"`
	Items         []BillItemInput `json:"items"`
	Status        *string         `json:"status"`
	IsPaid        *bool           `json:"is_paid"`
}

// UpdateBillRequest leaves amounts untouched unless Items is present, in
// which case all four amount fields are recomputed from scratch.
type UpdateBillRequest struct {
	CustomerName  *string          `json:"customer_name" binding:"omitempty,max=200"`
	CustomerPhone *string          `json:"customer_phone" binding:"omitempty,max=20"`
	Items         *[]BillItemInput `json:"items"`
	Status        *string          `json:"status"`
	IsPaid        *bool            `json:"is_paid"`
}
