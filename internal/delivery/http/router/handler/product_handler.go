package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product and size variant handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

type productRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"gte=0"`
	Image        string  `json:"image"`
	CategoryID   *uint   `json:"categoryId"`
	DisplayOrder int     `json:"displayOrder"`
}

type productSizeRequest struct {
	Size  string  `json:"size" validate:"required,max=64"`
	Price float64 `json:"price" validate:"gte=0"`
	Image string  `json:"image"`
}

func (r productRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		Image:        r.Image,
		CategoryID:   r.CategoryID,
		DisplayOrder: r.DisplayOrder,
	}
}

func (r productSizeRequest) toInput() usecase.ProductSizeInput {
	return usecase.ProductSizeInput{
		Size:  r.Size,
		Price: r.Price,
		Image: r.Image,
	}
}

// Create handles product creation.
func (h *ProductHandler) Create(c echo.Context) error {
	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), input.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// Get handles retrieval of a single product with category and sizes.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// List handles retrieval of all products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved successfully")
}

// Update handles product updates.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), id, input.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// Delete handles soft deletion of a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deleted"}, "Product deleted successfully")
}

// AddSize handles creation of a size variant on a product.
func (h *ProductHandler) AddSize(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var input productSizeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid size input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	size, err := h.uc.AddProductSize(c.Request().Context(), productID, input.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, size, "Size created successfully")
}

// ListSizes handles retrieval of a product's size variants.
func (h *ProductHandler) ListSizes(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	sizes, err := h.uc.ListProductSizes(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sizes, "Sizes retrieved successfully")
}

// UpdateSize handles updates to a size variant.
func (h *ProductHandler) UpdateSize(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	sizeID, err := parseIDParam(c, "sizeId")
	if err != nil {
		return err
	}

	var input productSizeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid size input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	size, err := h.uc.UpdateProductSize(c.Request().Context(), productID, sizeID, input.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, size, "Size updated successfully")
}

// DeleteSize handles removal of a size variant.
func (h *ProductHandler) DeleteSize(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	sizeID, err := parseIDParam(c, "sizeId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProductSize(c.Request().Context(), productID, sizeID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Size deleted"}, "Size deleted successfully")
}

// ListUniqueSizes handles retrieval of the distinct size names in use.
func (h *ProductHandler) ListUniqueSizes(c echo.Context) error {
	sizes, err := h.uc.ListUniqueSizes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sizes, "Unique sizes retrieved successfully")
}
