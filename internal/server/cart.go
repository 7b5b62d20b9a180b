package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/storefront/internal/cart"
	"github.com/matthieukhl/storefront/internal/models"
)

// addToCartRequest adds either a catalog product by id or a full line.
type addToCartRequest struct {
	ProductID int               `json:"productId"`
	Quantity  int               `json:"quantity"`
	Item      *models.OrderItem `json:"item"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartResponse struct {
	Items  []models.OrderItem `json:"items"`
	Totals cart.Totals        `json:"totals"`
}

func respondCart(c *gin.Context, items []models.OrderItem) {
	c.JSON(http.StatusOK, cartResponse{Items: items, Totals: cart.Summarize(items)})
}

func (s *Server) getCart(c *gin.Context) {
	items, err := s.cart.Items(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	respondCart(c, items)
}

func (s *Server) addToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var item models.OrderItem
	if req.Item != nil {
		item = *req.Item
	} else {
		product, err := s.catalog.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			s.fail(c, err)
			return
		}
		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}
		item = product.ToItem(qty)
	}

	items, err := s.cart.AddItem(c.Request.Context(), item)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondCart(c, items)
}

func (s *Server) updateCartItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	items, err := s.cart.UpdateQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondCart(c, items)
}

func (s *Server) removeCartItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	items, err := s.cart.RemoveItem(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondCart(c, items)
}

func (s *Server) incrementCartItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	items, err := s.cart.Increment(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondCart(c, items)
}

func (s *Server) decrementCartItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	items, err := s.cart.Decrement(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	respondCart(c, items)
}

func (s *Server) clearCart(c *gin.Context) {
	if err := s.cart.Clear(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	respondCart(c, []models.OrderItem{})
}
