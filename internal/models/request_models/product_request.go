package request_models

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,max=200"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"gte=0"`
	Category      string  `json:"category" binding:"max=100"`
	StockQuantity *int    `json:"stock_quantity" binding:"omitempty,gte=0"`
	IsActive      *bool   `json:"is_active"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name" binding:"omitempty,max=200"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	Category      *string  `json:"category" binding:"omitempty,max=100"`
	StockQuantity *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
	IsActive      *bool    `json:"is_active"`
}
