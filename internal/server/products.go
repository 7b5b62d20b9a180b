package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matthieukhl/storefront/internal/models"
)

type priceRequest struct {
	Price models.Cents `json:"price"`
}

type saleRequest struct {
	SalePrice models.Cents `json:"salePrice"`
}

func (s *Server) listProducts(c *gin.Context) {
	products, err := s.catalog.List(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}

	if category := c.Query("category"); category != "" {
		filtered := []models.Product{}
		for _, p := range products {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	product, err := s.catalog.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) setProductPrice(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := s.catalog.SetPrice(c.Request.Context(), id, req.Price)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) setProductSale(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req saleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := s.catalog.SetSale(c.Request.Context(), id, req.SalePrice)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) clearProductSale(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	product, err := s.catalog.ClearSale(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
