package validation

// CreateSessionRequest is the optional payload for POST /sessions.
type CreateSessionRequest struct {
	Name    string `json:"name" validate:"omitempty,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	IsAdmin *bool  `json:"is_admin,omitempty"`
}

// SetViewRequest is the payload for PUT /sessions/:id/view.
type SetViewRequest struct {
	View string `json:"view" validate:"required,oneof=shop admin"`
}

// AddToCartRequest is the payload for POST /sessions/:id/cart/items.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// ChangeQuantityRequest is the payload for PATCH /sessions/:id/cart/items/:pid.
type ChangeQuantityRequest struct {
	Delta *int `json:"delta" validate:"required"`
}

// SetOrderStatusRequest is the payload for PUT /sessions/:id/admin/orders/:oid/status.
type SetOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

// GenerateDescriptionRequest is the payload for POST /sessions/:id/admin/descriptions.
type GenerateDescriptionRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"omitempty,category"`
}

// AskRequest is the payload for POST /sessions/:id/assistant/messages.
type AskRequest struct {
	Text string `json:"text" validate:"required"`
}
