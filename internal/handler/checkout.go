package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cableworks/storefront-api/internal/dto"
	"github.com/cableworks/storefront-api/internal/middleware"
	"github.com/cableworks/storefront-api/internal/service"
)

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty or malformed"})
		return
	}

	userID := middleware.GetUserID(c)

	order, err := h.checkoutService.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.Is(err, service.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		case errors.Is(err, service.ErrPaymentFailed):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment failed"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		OrderID: order.ID,
		Total:   order.Total,
		Message: "order placed successfully",
	})
}
