package api

import (
	"net/http"
	"time"

	"sharebox/config"
	"sharebox/store"
	"sharebox/utils"

	"github.com/gin-gonic/gin"
)

// DeleteRequestResponse carries the token that confirms a pending deletion.
type DeleteRequestResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RequestDeleteHandler starts the two-step deletion of a product.
// @Summary      Request Product Deletion
// @Description  Deleting is a two-step action. This call returns a confirmation token and deletes nothing.
// @Description  Confirm with `POST /deletions/{token}/confirm` before `expiresAt`, or cancel with `DELETE /deletions/{token}`. A token works once.
// @Tags         Deletions
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  DeleteRequestResponse
// @Failure      404  {object}  utils.APIError "No product with this ID."
// @Router       /products/{id}/delete-request [post]
func RequestDeleteHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	token, ok := catalog.RequestDelete(c.Param("id"))
	if !ok {
		utils.GinNotFound(c, "Product not found")
		return
	}
	expiresAt, _ := catalog.DeleteExpiry(token)
	c.JSON(http.StatusOK, DeleteRequestResponse{Token: token, ExpiresAt: expiresAt})
}

// ConfirmDeleteHandler performs a requested deletion.
// @Summary      Confirm Product Deletion
// @Tags         Deletions
// @Param        token  path  string  true  "Token from the delete request"
// @Success      204  "The product was deleted."
// @Failure      404  {object}  utils.APIError "The token is unknown, expired, cancelled or already used, or the product is gone."
// @Router       /deletions/{token}/confirm [post]
func ConfirmDeleteHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	if !catalog.ConfirmDelete(c.Param("token")) {
		utils.GinNotFound(c, "No pending deletion for this token")
		return
	}
	c.Status(http.StatusNoContent)
}

// CancelDeleteHandler withdraws a requested deletion.
// @Summary      Cancel Product Deletion
// @Tags         Deletions
// @Param        token  path  string  true  "Token from the delete request"
// @Success      204  "The deletion was cancelled."
// @Failure      404  {object}  utils.APIError "No pending deletion for this token."
// @Router       /deletions/{token} [delete]
func CancelDeleteHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	if !catalog.CancelDelete(c.Param("token")) {
		utils.GinNotFound(c, "No pending deletion for this token")
		return
	}
	c.Status(http.StatusNoContent)
}
