package handlers

import (
	"productapi/internal/middleware"
	"productapi/internal/models"
	"productapi/internal/services"
	"productapi/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes. Every route with input runs
// its validation chain, then the shared error check, then the handler.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")

	byID := h.validate.Middleware(validation.ProductIDRules()...)

	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", byID, middleware.HandleInputErrors, h.HandleGetProductByID)
	productRoutes.Post("/",
		h.validate.Middleware(validation.CreateProductRules()...),
		middleware.HandleInputErrors,
		h.HandleCreateProduct,
	)
	productRoutes.Put("/:id",
		h.validate.Middleware(validation.UpdateProductRules()...),
		middleware.HandleInputErrors,
		h.HandleUpdateProduct,
	)
	productRoutes.Patch("/:id",
		h.validate.Middleware(validation.AvailabilityRules()...),
		middleware.HandleInputErrors,
		h.HandleUpdateAvailability,
	)
	productRoutes.Delete("/:id", byID, middleware.HandleInputErrors, h.HandleDeleteProduct)
}

// HandleGetProducts lists all products ordered by ID.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, "getting all products", err)
	}
	return respondData(c, fiber.StatusOK, products)
}

// HandleGetProductByID retrieves a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondNotFound(c)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return respondError(c, "getting product by ID", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	input, err := productInput(c)
	if err != nil {
		return respondError(c, "reading create request", err)
	}
	product, err := h.service.CreateProduct(input)
	if err != nil {
		return respondError(c, "creating product", err)
	}
	return respondData(c, fiber.StatusCreated, product)
}

// HandleUpdateProduct replaces name, price and availability of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondNotFound(c)
	}
	input, err := productInput(c)
	if err != nil {
		return respondError(c, "reading update request", err)
	}
	product, err := h.service.UpdateProduct(id, input)
	if err != nil {
		return respondError(c, "updating product", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleUpdateAvailability changes only the availability of a product.
// A body without availability leaves the product unchanged.
func (h *ProductHandler) HandleUpdateAvailability(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondNotFound(c)
	}
	body, err := validation.Body(c)
	if err != nil {
		return respondError(c, "reading availability request", err)
	}
	product, err := h.service.UpdateAvailability(id, boolField(body, "availability"))
	if err != nil {
		return respondError(c, "updating product availability", err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleDeleteProduct removes a product permanently.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return respondNotFound(c)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, "deleting product", err)
	}
	return respondData(c, fiber.StatusOK, MsgProductRemoved)
}

// productID reads the already validated :id parameter. Negative IDs can
// never match a row and report false.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return 0, false
	}
	return uint(id), true
}

// productInput converts the validated body into a ProductInput. Numeric
// strings are accepted for price, matching the validation rules.
func productInput(c *fiber.Ctx) (models.ProductInput, error) {
	body, err := validation.Body(c)
	if err != nil {
		return models.ProductInput{}, err
	}
	price, err := cast.ToFloat64E(body["price"])
	if err != nil {
		return models.ProductInput{}, err
	}
	return models.ProductInput{
		Name:         cast.ToString(body["name"]),
		Price:        price,
		Availability: boolField(body, "availability"),
	}, nil
}

// boolField reads an already validated flag. Missing and null report nil.
func boolField(body map[string]interface{}, field string) *bool {
	b, ok := validation.BooleanLike(body[field])
	if !ok {
		return nil
	}
	return &b
}
