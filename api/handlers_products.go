package api

import (
	"fmt"
	"net/http"
	"strings"

	"sharebox/config"
	"sharebox/images"
	"sharebox/models"
	"sharebox/store"
	"sharebox/utils"

	"github.com/gin-gonic/gin"
)

// --- List Products ---

// ListProductsHandler returns the catalog as currently filtered and sorted.
// @Summary      List Products
// @Description  Returns the products that match the active filters (search, category, "my products"), in the active sort order.
// @Description  Change the filters with `PUT /filters`. The result is what the catalog view should render.
// @Tags         Products
// @Produce      json
// @Success      200  {array}   models.Product "The filtered, sorted products."
// @Router       /products [get]
func ListProductsHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	c.JSON(http.StatusOK, catalog.FilteredProducts())
}

// --- Get Product ---

// GetProductHandler returns one product by id.
// @Summary      Get a Product
// @Tags         Products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  models.Product
// @Failure      404  {object}  utils.APIError "No product with this ID."
// @Router       /products/{id} [get]
func GetProductHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	product, ok := catalog.Product(c.Param("id"))
	if !ok {
		utils.GinNotFound(c, "Product not found")
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- Create Product ---

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Category    string   `json:"category"`
	Image       *string  `json:"image,omitempty"` // Data URI (jpeg, png or gif)
}

// CreateProductHandler adds a product authored by the current user.
// @Summary      Add a Product
// @Description  Adds a product to the front of the catalog. Title, description and category are required, and the price must be greater than zero.
// @Description  An optional `image` must be a base64 data URI; it is scaled down to the configured maximum width and stored as JPEG.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        product body CreateProductRequest true "The new product."
// @Success      201  {object}  models.Product "The created product, including its generated ID."
// @Failure      400  {object}  utils.APIError "Missing fields, negative price or an unreadable image."
// @Router       /products [post]
func CreateProductHandler(c *gin.Context, catalog *store.Store, toaster store.Toaster, cfg *config.Config) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	category := strings.TrimSpace(req.Category)
	if req.Price != nil && *req.Price < 0 {
		toast(toaster, models.SeverityError, "Price cannot be negative")
		utils.GinBadRequest(c, "Price cannot be negative")
		return
	}
	if title == "" || description == "" || category == "" || req.Price == nil || *req.Price == 0 {
		toast(toaster, models.SeverityError, "Please fill in all fields")
		utils.GinBadRequest(c, "Please fill in all fields")
		return
	}

	image, err := normalizeUpload(req.Image, cfg)
	if err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid image: %v", err))
		return
	}

	product := catalog.AddProduct(models.NewProduct{
		Title:       title,
		Description: description,
		Price:       *req.Price,
		Category:    category,
		Image:       image,
	})
	c.JSON(http.StatusCreated, product)
}

// --- Update Product ---

// UpdateProductHandler shallow-merges the given fields into a product.
// @Summary      Update a Product
// @Description  Only the fields present in the body are changed. An empty `image` removes the picture.
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "Product ID"
// @Param        fields  body  models.ProductPatch  true  "Fields to change."
// @Success      200  {object}  models.Product "The updated product."
// @Failure      400  {object}  utils.APIError "Invalid body or image."
// @Failure      404  {object}  utils.APIError "No product with this ID."
// @Router       /products/{id} [patch]
func UpdateProductHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if patch.Price != nil && *patch.Price < 0 {
		utils.GinBadRequest(c, "Price cannot be negative")
		return
	}
	if patch.Image != nil && *patch.Image != "" {
		image, err := normalizeUpload(patch.Image, cfg)
		if err != nil {
			utils.GinBadRequest(c, fmt.Sprintf("Invalid image: %v", err))
			return
		}
		patch.Image = image
	}

	id := c.Param("id")
	if !catalog.UpdateProduct(id, patch) {
		utils.GinNotFound(c, "Product not found")
		return
	}
	respondWithProduct(c, catalog, id, http.StatusOK)
}

// --- Like ---

// LikeProductHandler adds one like to a product.
// @Summary      Like a Product
// @Tags         Products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  models.Product "The product with its new like count."
// @Failure      404  {object}  utils.APIError "No product with this ID."
// @Router       /products/{id}/like [post]
func LikeProductHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	id := c.Param("id")
	if !catalog.LikeProduct(id) {
		utils.GinNotFound(c, "Product not found")
		return
	}
	respondWithProduct(c, catalog, id, http.StatusOK)
}

// --- Comment ---

// CommentRequest is the body of POST /products/{id}/comments.
type CommentRequest struct {
	Text string `json:"text"`
}

// AddCommentHandler appends a comment to a product.
// @Summary      Comment on a Product
// @Tags         Products
// @Accept       json
// @Produce      json
// @Param        id       path  string          true  "Product ID"
// @Param        comment  body  CommentRequest  true  "Comment text. Leading and trailing spaces are removed."
// @Success      200  {object}  models.Product "The product including the new comment."
// @Failure      400  {object}  utils.APIError "The comment is empty."
// @Failure      404  {object}  utils.APIError "No product with this ID."
// @Router       /products/{id}/comments [post]
func AddCommentHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		utils.GinBadRequest(c, "Comment text is required")
		return
	}

	id := c.Param("id")
	if !catalog.AddComment(id, req.Text) {
		utils.GinNotFound(c, "Product not found")
		return
	}
	respondWithProduct(c, catalog, id, http.StatusOK)
}

// --- Reorder ---

// ReorderRequest is the body of POST /products/reorder.
type ReorderRequest struct {
	SourceID string `json:"sourceId" binding:"required"`
	TargetID string `json:"targetId" binding:"required"`
}

// ReorderProductsHandler moves a product to another product's position.
// @Summary      Reorder Products
// @Description  Moves `sourceId` to the position currently held by `targetId`, the way a drag and drop does.
// @Tags         Products
// @Accept       json
// @Param        move  body  ReorderRequest  true  "Source and target product IDs."
// @Success      204  "Moved."
// @Failure      400  {object}  utils.APIError "Missing IDs."
// @Failure      404  {object}  utils.APIError "One of the products does not exist."
// @Router       /products/reorder [post]
func ReorderProductsHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v. 'sourceId' and 'targetId' are required.", err))
		return
	}
	if !catalog.ReorderProducts(req.SourceID, req.TargetID) {
		utils.GinNotFound(c, "Product not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// respondWithProduct writes the product's current state, or 404 if it was
// deleted in the meantime.
func respondWithProduct(c *gin.Context, catalog *store.Store, id string, status int) {
	product, ok := catalog.Product(id)
	if !ok {
		utils.GinNotFound(c, "Product not found")
		return
	}
	c.JSON(status, product)
}

// normalizeUpload scales an uploaded data URI image. nil and "" mean no image.
func normalizeUpload(image *string, cfg *config.Config) (*string, error) {
	if image == nil || *image == "" {
		return nil, nil
	}
	normalized, err := images.Normalize(*image, cfg.MaxImageWidth)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}

func toast(toaster store.Toaster, severity models.Severity, message string) {
	if toaster != nil {
		toaster.Toast(severity, message)
	}
}
