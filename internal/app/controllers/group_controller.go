package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/findyourpeers/peers/internal/app/models/dto"
	"github.com/findyourpeers/peers/internal/middleware"
	"github.com/findyourpeers/peers/internal/pkg/apperrors"
	"github.com/findyourpeers/peers/internal/pkg/helpers"
	"github.com/findyourpeers/peers/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

// GroupController handles group requests
type GroupController struct {
	groupService GroupService
}

// NewGroupController creates a new GroupController
func NewGroupController(groupService GroupService) *GroupController {
	return &GroupController{groupService: groupService}
}

// CreateGroup godoc
// @Summary Create a group
// @Description Creates a study group, club or event. The photo is resized and uploaded before the record is written.
// @Tags groups
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param groupName formData string true "Group name"
// @Param topic formData string true "Topic"
// @Param description formData string true "Description"
// @Param category formData string false "Category" Enums(study, club, event) default(study)
// @Param photo formData file true "Group photo (JPEG, PNG or GIF)"
// @Success 201 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /groups [post]
func (gc *GroupController) CreateGroup(c *gin.Context) {
	principal, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.CreateGroupRequest
	if !middleware.BindForm(c, &req) {
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("Could not read photo upload"))
		return
	}

	// A missing or oversized photo is reported by the service, after the
	// missing-fields check.
	var photo io.Reader
	if fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			middleware.HandleAPIError(c, apperrors.NewBadRequestError("Could not read photo upload"))
			return
		}
		defer file.Close()
		photo = file
	}

	group, err := gc.groupService.CreateGroup(c.Request.Context(), principal, &req, photo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewSuccessResponse(group))
}

// ListGroups godoc
// @Summary Group directory
// @Description Lists all groups, newest first
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter" Enums(study, club, event)
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.GroupListResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /groups [get]
func (gc *GroupController) ListGroups(c *gin.Context) {
	category, err := validation.OptionalCategory(c.Query("category"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	page, size := helpers.ParsePaginationParams(c)

	resp, err := gc.groupService.ListGroups(c.Request.Context(), &dto.GroupFilterRequest{
		Category: category,
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetGroup godoc
// @Summary Group detail
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID" format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.GroupResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /groups/{id} [get]
func (gc *GroupController) GetGroup(c *gin.Context) {
	id, ok := middleware.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	group, err := gc.groupService.GetGroup(c.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(group))
}

// ListFollowedGroups godoc
// @Summary Followed groups
// @Description Lists the groups the caller has favorited, optionally narrowed to one category
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category filter" Enums(study, club, event)
// @Success 200 {object} dto.APIResponse{data=dto.FollowedGroupsResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /me/groups [get]
func (gc *GroupController) ListFollowedGroups(c *gin.Context) {
	principal, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrTokenInvalid)
		return
	}

	resp, err := gc.groupService.ListFollowedGroups(c.Request.Context(), principal.UserID, c.Query("category"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
