package controllers

import (
	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
)

// InterfaceBuildingController 定义楼宇控制器接口
type InterfaceBuildingController interface {
	GetBuildings()
	GetBuilding()
	CreateBuilding()
	UpdateBuilding()
	DeleteBuilding()
	GetAccess()
	GrantAccess()
	RevokeAccess()
}

// BuildingController 处理楼宇及其访问权限相关的请求
type BuildingController struct {
	BaseController
}

// NewBuildingController 创建一个新的楼宇控制器
func NewBuildingController(ctx *gin.Context, container *container.ServiceContainer) *BuildingController {
	return &BuildingController{BaseController{Ctx: ctx, Container: container}}
}

// BuildingRequest 表示创建楼宇请求
type BuildingRequest struct {
	Name        string  `json:"name" binding:"required" example:"Sunrise Tower"`
	Address     string  `json:"address" binding:"required" example:"12 Main Street"`
	TotalFloors int     `json:"total_floors" binding:"required,min=1" example:"9"`
	Description *string `json:"description" example:"North entrance"`
}

// BuildingUpdateRequest 表示更新楼宇请求，未给出的字段保持不变
type BuildingUpdateRequest struct {
	Name        *string `json:"name" example:"Sunrise Tower"`
	Address     *string `json:"address" example:"12 Main Street"`
	TotalFloors *int    `json:"total_floors" example:"10"`
	Description *string `json:"description"`
}

// AccessRequest 表示授权请求，user_id 和 email 二选一
type AccessRequest struct {
	UserID  uint   `json:"user_id" example:"2"`
	Email   string `json:"email" example:"bob@example.com"`
	CanEdit bool   `json:"can_edit" example:"false"`
}

// HandleBuildingFunc 返回一个处理楼宇请求的Gin处理函数
func HandleBuildingFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBuildingController(ctx, container)

		switch method {
		case "getBuildings":
			controller.GetBuildings()
		case "getBuilding":
			controller.GetBuilding()
		case "createBuilding":
			controller.CreateBuilding()
		case "updateBuilding":
			controller.UpdateBuilding()
		case "deleteBuilding":
			controller.DeleteBuilding()
		case "getAccess":
			controller.GetAccess()
		case "grantAccess":
			controller.GrantAccess()
		case "revokeAccess":
			controller.RevokeAccess()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *BuildingController) buildingService() services.InterfaceBuildingService {
	return c.Container.GetService("building").(services.InterfaceBuildingService)
}

func (c *BuildingController) accessService() services.InterfaceAccessService {
	return c.Container.GetService("access").(services.InterfaceAccessService)
}

// 1. GetBuildings 获取当前用户可访问的楼宇
// @Summary 获取楼宇列表
// @Description 返回当前用户创建的或被授权访问的未删除楼宇
// @Tags Building
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Building
// @Failure 401 {object} ErrorResponse
// @Router /buildings [get]
func (c *BuildingController) GetBuildings() {
	buildings, err := c.buildingService().ListBuildings(c.Ctx.Request.Context(), c.userID())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, buildings)
}

// 2. GetBuilding 获取楼宇详情
// @Summary 获取楼宇详情
// @Tags Building
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Success 200 {object} models.Building
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id} [get]
func (c *BuildingController) GetBuilding() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}

	building, err := c.buildingService().GetBuilding(c.Ctx.Request.Context(), c.userID(), buildingID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, building)
}

// 3. CreateBuilding 创建楼宇，创建者成为所有者
// @Summary 创建楼宇
// @Tags Building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param building body BuildingRequest true "楼宇信息"
// @Success 201 {object} models.Building
// @Failure 400 {object} ErrorResponse
// @Router /buildings [post]
func (c *BuildingController) CreateBuilding() {
	var req BuildingRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	building, err := c.buildingService().CreateBuilding(c.Ctx.Request.Context(), c.userID(), services.BuildingInput{
		Name:        req.Name,
		Address:     req.Address,
		TotalFloors: req.TotalFloors,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, building)
}

// 4. UpdateBuilding 更新楼宇信息
// @Summary 更新楼宇
// @Tags Building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param building body BuildingUpdateRequest true "楼宇信息"
// @Success 200 {object} models.Building
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id} [put]
func (c *BuildingController) UpdateBuilding() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req BuildingUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	building, err := c.buildingService().UpdateBuilding(c.Ctx.Request.Context(), c.userID(), buildingID, services.BuildingUpdate{
		Name:        req.Name,
		Address:     req.Address,
		TotalFloors: req.TotalFloors,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, building)
}

// 5. DeleteBuilding 逻辑删除楼宇，仅所有者
// @Summary 删除楼宇
// @Tags Building
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id} [delete]
func (c *BuildingController) DeleteBuilding() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}

	if err := c.buildingService().DeleteBuilding(c.Ctx.Request.Context(), c.userID(), buildingID); err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"id": buildingID, "deleted": true})
}

// 6. GetAccess 列出楼宇的授权用户，仅所有者
// @Summary 楼宇权限列表
// @Tags Building
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Success 200 {array} models.BuildingAccess
// @Failure 403 {object} ErrorResponse
// @Router /buildings/{id}/access [get]
func (c *BuildingController) GetAccess() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}

	rows, err := c.accessService().ListAccess(c.Ctx.Request.Context(), c.userID(), buildingID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, rows)
}

// 7. GrantAccess 授予或修改其他用户的权限，仅所有者
// @Summary 授权
// @Tags Building
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param access body AccessRequest true "授权信息"
// @Success 200 {object} models.BuildingAccess
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/access [post]
func (c *BuildingController) GrantAccess() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req AccessRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	row, err := c.accessService().GrantAccess(c.Ctx.Request.Context(), c.userID(), buildingID, services.GrantAccessRequest{
		UserID:  req.UserID,
		Email:   req.Email,
		CanEdit: req.CanEdit,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, row)
}

// 8. RevokeAccess 撤销用户的权限，仅所有者
// @Summary 撤销授权
// @Tags Building
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param userId path int true "用户ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/access/{userId} [delete]
func (c *BuildingController) RevokeAccess() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}
	targetID, ok := c.pathID("userId")
	if !ok {
		return
	}

	if err := c.accessService().RevokeAccess(c.Ctx.Request.Context(), c.userID(), buildingID, targetID); err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"user_id": targetID, "revoked": true})
}
