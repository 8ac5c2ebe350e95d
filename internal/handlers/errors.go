package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/novamart/internal/admin"
	"github.com/imrishuroy/novamart/internal/assistant"
	"github.com/imrishuroy/novamart/internal/catalog"
	"github.com/imrishuroy/novamart/internal/orders"
	"github.com/imrishuroy/novamart/internal/session"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{session.ErrNotFound, http.StatusNotFound, "session_not_found"},
	{catalog.ErrNotFound, http.StatusNotFound, "product_not_found"},
	{orders.ErrNotFound, http.StatusNotFound, "order_not_found"},
	{admin.ErrForbidden, http.StatusForbidden, "forbidden"},
	{admin.ErrInvalidDraft, http.StatusUnprocessableEntity, "invalid_draft"},
	{admin.ErrNameRequired, http.StatusUnprocessableEntity, "name_required"},
	{orders.ErrEmptyCart, http.StatusUnprocessableEntity, "empty_cart"},
	{catalog.ErrDuplicateID, http.StatusConflict, "duplicate_product"},
	{session.ErrBusy, http.StatusConflict, "description_pending"},
	{assistant.ErrBusy, http.StatusConflict, "assistant_pending"},
	{assistant.ErrEmptyQuery, http.StatusBadRequest, "empty_query"},
	{catalog.ErrUnknownCategory, http.StatusBadRequest, "unknown_category"},
	{orders.ErrUnknownStatus, http.StatusBadRequest, "unknown_status"},
	{session.ErrUnknownView, http.StatusBadRequest, "unknown_view"},
}

// statusFor maps a domain error to its HTTP status and error code.
func statusFor(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

func respondError(c *gin.Context, err error) {
	status, code := statusFor(err)
	body := gin.H{"error": code, "msg": err.Error()}

	var de *admin.DraftError
	if errors.As(err, &de) {
		body["fields"] = de.Fields
	}
	c.JSON(status, body)
}
