package controllers

import (
	"net/http"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/middleware"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

// PostController handles group comments
type PostController struct {
	postService PostService
}

// NewPostController creates a new PostController
func NewPostController(postService PostService) *PostController {
	return &PostController{postService: postService}
}

// ListPosts godoc
// @Summary List a group's posts
// @Description Returns every post of the group, oldest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{id}/posts [get]
func (pc *PostController) ListPosts(c *gin.Context) {
	groupID, ok := middleware.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := pc.postService.ListPosts(c.Request.Context(), groupID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CreatePost godoc
// @Summary Post a comment
// @Description Appends a comment to the group and pushes it to live subscribers
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Param request body dto.CreatePostRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{id}/posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	principal, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrTokenInvalid)
		return
	}
	groupID, ok := middleware.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !middleware.BindJSON(c, &req) {
		return
	}

	post, err := pc.postService.CreatePost(c.Request.Context(), principal, groupID, req.PostText)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}
