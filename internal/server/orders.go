package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/storefront/internal/models"
	"github.com/matthieukhl/storefront/internal/orders"
)

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// partialCheckoutResponse is sent when the order was stored but the cart
// still holds its lines. The client must not retry the checkout.
type partialCheckoutResponse struct {
	Order   models.Order `json:"order"`
	Warning string       `json:"warning"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := s.orders.Checkout(c.Request.Context(), req.PaymentMethod)
	if errors.Is(err, orders.ErrCartNotCleared) {
		s.logger.Error("checkout left cart behind",
			"request_id", c.GetString(requestIDKey),
			"order_id", order.ID,
			"error", err)
		c.JSON(http.StatusCreated, partialCheckoutResponse{Order: order, Warning: err.Error()})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// listOrders returns the history newest first, optionally filtered with
// ?status=.
func (s *Server) listOrders(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		list []models.Order
		err  error
	)
	if raw := c.Query("status"); raw != "" {
		status, perr := models.ParseStatus(raw)
		if perr != nil {
			s.fail(c, perr)
			return
		}
		list, err = s.orders.Store().ListByStatus(ctx, status)
	} else {
		list, err = s.orders.Store().List(ctx)
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	orders.SortNewestFirst(list)
	c.JSON(http.StatusOK, list)
}

func (s *Server) ordersSummary(c *gin.Context) {
	list, err := s.orders.Store().List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders.Summarize(list))
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orders.Store().Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) setOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	status, err := models.ParseStatus(req.Status)
	if err != nil {
		s.fail(c, err)
		return
	}

	order, err := s.orders.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) advanceOrder(c *gin.Context) {
	order, err := s.orders.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (s *Server) cancelOrder(c *gin.Context) {
	order, err := s.orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
