package controllers

import (
	"github.com/gin-gonic/gin"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
)

// InterfaceFloorController 定义楼层控制器接口
type InterfaceFloorController interface {
	GetFloors()
	CreateFloor()
	GetFloor()
	UpdateFloor()
	DeleteFloor()
}

// FloorController 处理楼层相关的请求
type FloorController struct {
	BaseController
}

// NewFloorController 创建一个新的楼层控制器
func NewFloorController(ctx *gin.Context, container *container.ServiceContainer) *FloorController {
	return &FloorController{BaseController{Ctx: ctx, Container: container}}
}

// FloorRequest 表示创建楼层请求
type FloorRequest struct {
	FloorNumber     *int   `json:"floor_number" binding:"required" example:"3"`
	TotalApartments int    `json:"total_apartments" binding:"min=0" example:"4"`
	Description     string `json:"description" example:"Top floor"`
}

// FloorUpdateRequest 表示更新楼层请求
type FloorUpdateRequest struct {
	FloorNumber     *int    `json:"floor_number" example:"3"`
	TotalApartments *int    `json:"total_apartments" example:"5"`
	Description     *string `json:"description"`
}

// FloorResponse 创建楼层的结果，restored 表示恢复了已删除的同号楼层
type FloorResponse struct {
	*models.Floor
	Restored bool `json:"restored"`
}

// HandleFloorFunc 返回一个处理楼层请求的Gin处理函数
func HandleFloorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewFloorController(ctx, container)

		switch method {
		case "getFloors":
			controller.GetFloors()
		case "createFloor":
			controller.CreateFloor()
		case "getFloor":
			controller.GetFloor()
		case "updateFloor":
			controller.UpdateFloor()
		case "deleteFloor":
			controller.DeleteFloor()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *FloorController) floorService() services.InterfaceFloorService {
	return c.Container.GetService("floor").(services.InterfaceFloorService)
}

// 1. GetFloors 获取楼宇下未删除的楼层
// @Summary 楼层列表
// @Tags Floor
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Success 200 {array} models.Floor
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/floors [get]
func (c *FloorController) GetFloors() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}

	floors, err := c.floorService().ListFloors(c.Ctx.Request.Context(), c.userID(), buildingID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, floors)
}

// 2. CreateFloor 创建楼层，同号楼层已删除时恢复
// @Summary 创建楼层
// @Tags Floor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param floor body FloorRequest true "楼层信息"
// @Success 201 {object} FloorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /buildings/{id}/floors [post]
func (c *FloorController) CreateFloor() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req FloorRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	floor, restored, err := c.floorService().CreateFloor(c.Ctx.Request.Context(), c.userID(), buildingID, services.FloorInput{
		FloorNumber:     *req.FloorNumber,
		TotalApartments: req.TotalApartments,
		Description:     req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, FloorResponse{Floor: floor, Restored: restored})
}

// 3. GetFloor 获取楼层详情
// @Summary 楼层详情
// @Tags Floor
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼层ID"
// @Success 200 {object} models.Floor
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /floors/{id} [get]
func (c *FloorController) GetFloor() {
	floorID, ok := c.pathID("id")
	if !ok {
		return
	}

	floor, err := c.floorService().GetFloor(c.Ctx.Request.Context(), c.userID(), floorID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, floor)
}

// 4. UpdateFloor 更新楼层
// @Summary 更新楼层
// @Tags Floor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼层ID"
// @Param floor body FloorUpdateRequest true "楼层信息"
// @Success 200 {object} models.Floor
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /floors/{id} [put]
func (c *FloorController) UpdateFloor() {
	floorID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req FloorUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	floor, err := c.floorService().UpdateFloor(c.Ctx.Request.Context(), c.userID(), floorID, services.FloorUpdate{
		FloorNumber:     req.FloorNumber,
		TotalApartments: req.TotalApartments,
		Description:     req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, floor)
}

// 5. DeleteFloor 删除楼层，hard=true 时物理删除
// @Summary 删除楼层
// @Tags Floor
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼层ID"
// @Param hard query bool false "物理删除"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /floors/{id} [delete]
func (c *FloorController) DeleteFloor() {
	floorID, ok := c.pathID("id")
	if !ok {
		return
	}
	hard := c.hardDelete()

	if err := c.floorService().DeleteFloor(c.Ctx.Request.Context(), c.userID(), floorID, hard); err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"id": floorID, "hard": hard})
}
