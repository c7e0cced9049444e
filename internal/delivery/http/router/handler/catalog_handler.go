package handler

import (
	"net/http"
	"strconv"

	"lapak/internal/delivery/http/middleware"
	"lapak/internal/delivery/http/response"
	"lapak/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for catalog-related handlers.
type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

type addProductRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	Price       *int64  `json:"price"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
	Stock       *int    `json:"stock"`
}

// Query handles the catalog listing with optional filters.
func (h *CatalogHandler) Query(c echo.Context) error {
	input := usecase.CatalogQueryInput{
		Category:   c.QueryParam("category"),
		SearchTerm: c.QueryParam("q"),
	}
	if raw := c.QueryParam("min_price"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "min_price must be a number")
		}
		input.MinPrice = &price
	}
	if raw := c.QueryParam("max_price"); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "max_price must be a number")
		}
		input.MaxPrice = &price
	}

	products, err := h.uc.Query(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// Get handles retrieval of a single product.
func (h *CatalogHandler) Get(c echo.Context) error {
	product, err := h.uc.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// Add handles product creation.
func (h *CatalogHandler) Add(c echo.Context) error {
	var req addProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.AddProduct(c.Request().Context(), middleware.UserID(c), usecase.AddProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product added successfully")
}

// Update handles partial product updates.
func (h *CatalogHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), middleware.UserID(c), usecase.UpdateProductInput{
		ProductID:   c.Param("id"),
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Stock:       req.Stock,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// Delete handles product removal.
func (h *CatalogHandler) Delete(c echo.Context) error {
	if err := h.uc.DeleteProduct(c.Request().Context(), middleware.UserID(c), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// UploadImage handles a multipart product image upload.
func (h *CatalogHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	url, err := h.uc.UploadProductImage(c.Request().Context(), middleware.UserID(c), usecase.UploadProductImageInput{
		ProductID:   c.Param("id"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"imageUrl": url}, "Image uploaded successfully")
}
