package handler

import (
	"net/http"

	"lapak/internal/delivery/http/middleware"
	"lapak/internal/delivery/http/response"
	"lapak/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Checkout turns the caller's cart into a new order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	order, err := h.uc.Checkout(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// Get retrieves a single order visible to the caller.
func (h *OrderHandler) Get(c echo.Context) error {
	order, err := h.uc.GetOrder(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

// ListMine retrieves the caller's own orders.
func (h *OrderHandler) ListMine(c echo.Context) error {
	orders, err := h.uc.ListMyOrders(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// List retrieves the fulfillment dashboard listing.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.uc.ListOrders(c.Request().Context(), middleware.UserID(c), usecase.OrderListInput{
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// Advance applies the next fulfillment transition.
func (h *OrderHandler) Advance(c echo.Context) error {
	order, err := h.uc.AdvanceOrder(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order advanced successfully")
}

// Cancel cancels the caller's pending order.
func (h *OrderHandler) Cancel(c echo.Context) error {
	order, err := h.uc.CancelOrder(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled successfully")
}

// ReceiptQR streams the receipt QR code as a PNG.
func (h *OrderHandler) ReceiptQR(c echo.Context) error {
	png, err := h.uc.ReceiptQR(c.Request().Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
