package api

import (
	"fmt"
	"net/http"

	"sharebox/config"
	"sharebox/models"
	"sharebox/store"
	"sharebox/utils"

	"github.com/gin-gonic/gin"
)

// --- User Profile ---

// GetUserHandler returns the local user's profile.
// @Summary      Get the User Profile
// @Tags         User
// @Produce      json
// @Success      200  {object}  models.UserProfile
// @Router       /user [get]
func GetUserHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	c.JSON(http.StatusOK, catalog.User())
}

// UpdateUserRequest is the body of PUT /user. Absent fields are left alone.
type UpdateUserRequest struct {
	Name         *string `json:"name,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`       // Data URI image
	RemoveAvatar bool    `json:"removeAvatar,omitempty"` // Clears the avatar; ignored when avatar is set
}

// UpdateUserHandler renames the user and/or changes the avatar.
// @Summary      Update the User Profile
// @Description  `name` renames the user; an empty name resets it to "Guest User". Existing products keep the name they were created with.
// @Description  `avatar` must be a base64 data URI image; it is scaled down and stored as JPEG. Set `removeAvatar` to clear it.
// @Tags         User
// @Accept       json
// @Produce      json
// @Param        profile  body  UpdateUserRequest  true  "Fields to change."
// @Success      200  {object}  models.UserProfile "The updated profile."
// @Failure      400  {object}  utils.APIError "Invalid body or image."
// @Router       /user [put]
func UpdateUserHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate the image before changing anything.
	var avatar *string
	if req.Avatar != nil && *req.Avatar != "" {
		var err error
		if avatar, err = normalizeUpload(req.Avatar, cfg); err != nil {
			utils.GinBadRequest(c, fmt.Sprintf("Invalid avatar: %v", err))
			return
		}
	}

	if req.Name != nil {
		catalog.SetUserName(*req.Name)
	}
	if avatar != nil {
		catalog.SetAvatar(avatar)
	} else if req.RemoveAvatar {
		catalog.SetAvatar(nil)
	}
	c.JSON(http.StatusOK, catalog.User())
}

// ThemeResponse reports the theme after a toggle.
type ThemeResponse struct {
	Theme models.Theme `json:"theme"`
}

// ToggleThemeHandler switches between the light and dark theme.
// @Summary      Toggle the Theme
// @Tags         User
// @Produce      json
// @Success      200  {object}  ThemeResponse
// @Router       /user/theme/toggle [post]
func ToggleThemeHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	c.JSON(http.StatusOK, ThemeResponse{Theme: catalog.ToggleTheme()})
}

// --- Filters ---

// GetFiltersHandler returns the active filters.
// @Summary      Get the Filters
// @Tags         Filters
// @Produce      json
// @Success      200  {object}  models.FilterState
// @Router       /filters [get]
func GetFiltersHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	c.JSON(http.StatusOK, catalog.Filters())
}

// UpdateFiltersHandler changes some of the filters.
// @Summary      Update the Filters
// @Description  Only the fields present in the body change. `sort` is one of `newest`, `price-low`, `price-high`, `most-liked`. An empty `category` means all categories.
// @Tags         Filters
// @Accept       json
// @Produce      json
// @Param        filters  body  models.FilterPatch  true  "Filters to change."
// @Success      200  {object}  models.FilterState "The filters now in effect."
// @Failure      400  {object}  utils.APIError "Invalid body or unknown sort order."
// @Router       /filters [put]
func UpdateFiltersHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	var patch models.FilterPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.GinBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if patch.Sort != nil {
		switch *patch.Sort {
		case models.SortNewest, models.SortPriceLow, models.SortPriceHigh, models.SortMostLiked:
		default:
			utils.GinBadRequest(c, fmt.Sprintf("Invalid sort order '%s'", *patch.Sort))
			return
		}
	}
	c.JSON(http.StatusOK, catalog.UpdateFilters(patch))
}

// ClearFiltersHandler resets every filter.
// @Summary      Clear the Filters
// @Tags         Filters
// @Produce      json
// @Success      200  {object}  models.FilterState "The default filters."
// @Router       /filters [delete]
func ClearFiltersHandler(c *gin.Context, catalog *store.Store, cfg *config.Config) {
	catalog.ClearFilters()
	c.JSON(http.StatusOK, catalog.Filters())
}
