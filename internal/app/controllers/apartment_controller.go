package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/models"
	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
)

// InterfaceApartmentController 定义公寓控制器接口
type InterfaceApartmentController interface {
	GetApartments()
	CreateApartment()
	GetApartment()
	UpdateApartment()
	DeleteApartment()
}

// ApartmentController 处理公寓相关的请求
type ApartmentController struct {
	BaseController
}

// NewApartmentController 创建一个新的公寓控制器
func NewApartmentController(ctx *gin.Context, container *container.ServiceContainer) *ApartmentController {
	return &ApartmentController{BaseController{Ctx: ctx, Container: container}}
}

// ApartmentRequest 表示创建公寓请求
type ApartmentRequest struct {
	ApartmentNumber string           `json:"apartment_number" binding:"required" example:"12"`
	OwnerName       string           `json:"owner_name" binding:"required" example:"Ivan Petrov"`
	Area            *decimal.Decimal `json:"area" binding:"required" swaggertype:"number" example:"64.5"`
	Rooms           int              `json:"rooms" binding:"min=0" example:"3"`
	Description     string           `json:"description"`
}

// ApartmentUpdateRequest 表示更新公寓请求
type ApartmentUpdateRequest struct {
	ApartmentNumber *string          `json:"apartment_number" example:"12"`
	OwnerName       *string          `json:"owner_name" example:"Ivan Petrov"`
	Area            *decimal.Decimal `json:"area" swaggertype:"number" example:"64.5"`
	Rooms           *int             `json:"rooms" example:"3"`
	Description     *string          `json:"description"`
}

// ApartmentResponse 创建公寓的结果，restored 表示恢复了已删除的同号公寓
type ApartmentResponse struct {
	*models.Apartment
	Restored bool `json:"restored"`
}

// HandleApartmentFunc 返回一个处理公寓请求的Gin处理函数
func HandleApartmentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewApartmentController(ctx, container)

		switch method {
		case "getApartments":
			controller.GetApartments()
		case "createApartment":
			controller.CreateApartment()
		case "getApartment":
			controller.GetApartment()
		case "updateApartment":
			controller.UpdateApartment()
		case "deleteApartment":
			controller.DeleteApartment()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *ApartmentController) apartmentService() services.InterfaceApartmentService {
	return c.Container.GetService("apartment").(services.InterfaceApartmentService)
}

// 1. GetApartments 获取楼层下未删除的公寓
// @Summary 公寓列表
// @Tags Apartment
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼层ID"
// @Success 200 {array} models.Apartment
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /floors/{id}/apartments [get]
func (c *ApartmentController) GetApartments() {
	floorID, ok := c.pathID("id")
	if !ok {
		return
	}

	apartments, err := c.apartmentService().ListApartments(c.Ctx.Request.Context(), c.userID(), floorID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, apartments)
}

// 2. CreateApartment 创建公寓，同号公寓已删除时恢复
// @Summary 创建公寓
// @Tags Apartment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼层ID"
// @Param apartment body ApartmentRequest true "公寓信息"
// @Success 201 {object} ApartmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /floors/{id}/apartments [post]
func (c *ApartmentController) CreateApartment() {
	floorID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req ApartmentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	apartment, restored, err := c.apartmentService().CreateApartment(c.Ctx.Request.Context(), c.userID(), floorID, services.ApartmentInput{
		ApartmentNumber: req.ApartmentNumber,
		OwnerName:       req.OwnerName,
		Area:            *req.Area,
		Rooms:           req.Rooms,
		Description:     req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, ApartmentResponse{Apartment: apartment, Restored: restored})
}

// 3. GetApartment 获取公寓详情
// @Summary 公寓详情
// @Tags Apartment
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Success 200 {object} models.Apartment
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /apartments/{id} [get]
func (c *ApartmentController) GetApartment() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}

	apartment, err := c.apartmentService().GetApartment(c.Ctx.Request.Context(), c.userID(), apartmentID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, apartment)
}

// 4. UpdateApartment 更新公寓
// @Summary 更新公寓
// @Tags Apartment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Param apartment body ApartmentUpdateRequest true "公寓信息"
// @Success 200 {object} models.Apartment
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /apartments/{id} [put]
func (c *ApartmentController) UpdateApartment() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req ApartmentUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	apartment, err := c.apartmentService().UpdateApartment(c.Ctx.Request.Context(), c.userID(), apartmentID, services.ApartmentUpdate{
		ApartmentNumber: req.ApartmentNumber,
		OwnerName:       req.OwnerName,
		Area:            req.Area,
		Rooms:           req.Rooms,
		Description:     req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, apartment)
}

// 5. DeleteApartment 删除公寓，hard=true 时物理删除
// @Summary 删除公寓
// @Tags Apartment
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Param hard query bool false "物理删除"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /apartments/{id} [delete]
func (c *ApartmentController) DeleteApartment() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}
	hard := c.hardDelete()

	if err := c.apartmentService().DeleteApartment(c.Ctx.Request.Context(), c.userID(), apartmentID, hard); err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"id": apartmentID, "hard": hard})
}
