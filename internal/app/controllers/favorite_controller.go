package controllers

import (
	"context"
	"net/http"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/middleware"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FavoriteController handles the follow flag of a group
type FavoriteController struct {
	favoriteService FavoriteService
}

// NewFavoriteController creates a new FavoriteController
func NewFavoriteController(favoriteService FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

type favoriteOp func(ctx context.Context, userID, groupID uuid.UUID) (*dto.FavoriteStatusResponse, error)

func (fc *FavoriteController) handle(c *gin.Context, op favoriteOp) {
	principal, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrTokenInvalid)
		return
	}
	groupID, ok := middleware.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	status, err := op(c.Request.Context(), principal.UserID, groupID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// GetStatus godoc
// @Summary Favorite status
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.FavoriteStatusResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{id}/favorite [get]
func (fc *FavoriteController) GetStatus(c *gin.Context) {
	fc.handle(c, fc.favoriteService.IsFavorited)
}

// Add godoc
// @Summary Follow a group
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.FavoriteStatusResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{id}/favorite [put]
func (fc *FavoriteController) Add(c *gin.Context) {
	fc.handle(c, fc.favoriteService.AddFavorite)
}

// Remove godoc
// @Summary Unfollow a group
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.FavoriteStatusResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{id}/favorite [delete]
func (fc *FavoriteController) Remove(c *gin.Context) {
	fc.handle(c, fc.favoriteService.RemoveFavorite)
}

// Toggle godoc
// @Summary Toggle the follow flag
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.FavoriteStatusResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{id}/favorite/toggle [post]
func (fc *FavoriteController) Toggle(c *gin.Context) {
	fc.handle(c, fc.favoriteService.ToggleFavorite)
}
