package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
)

// InterfaceLedgerController 定义存款和应缴款项控制器接口
type InterfaceLedgerController interface {
	GetDeposits()
	CreateDeposit()
	DeleteDeposit()
	GetObligations()
	CreateObligation()
	UpdateObligation()
	BulkCreateObligations()
}

// LedgerController 处理公寓账目相关的请求
type LedgerController struct {
	BaseController
}

// NewLedgerController 创建一个新的账目控制器
func NewLedgerController(ctx *gin.Context, container *container.ServiceContainer) *LedgerController {
	return &LedgerController{BaseController{Ctx: ctx, Container: container}}
}

// DepositRequest 表示新增存款请求
type DepositRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"150.00"`
	Date        string           `json:"date" binding:"required" example:"2024-05-01"`
	Description string           `json:"description" example:"May payment"`
}

// ObligationRequest 表示新增应缴款项请求，单个和批量共用
type ObligationRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"75.00"`
	DueDate     string           `json:"due_date" binding:"required" example:"2024-06-01"`
	Description string           `json:"description" example:"June maintenance"`
}

// ObligationPaymentRequest 表示标记已缴或未缴的请求
type ObligationPaymentRequest struct {
	IsPaid      *bool   `json:"is_paid" binding:"required" example:"true"`
	PaymentDate *string `json:"payment_date" example:"2024-06-03"`
}

// HandleLedgerFunc 返回一个处理账目请求的Gin处理函数
func HandleLedgerFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewLedgerController(ctx, container)

		switch method {
		case "getDeposits":
			controller.GetDeposits()
		case "createDeposit":
			controller.CreateDeposit()
		case "deleteDeposit":
			controller.DeleteDeposit()
		case "getObligations":
			controller.GetObligations()
		case "createObligation":
			controller.CreateObligation()
		case "updateObligation":
			controller.UpdateObligation()
		case "bulkCreateObligations":
			controller.BulkCreateObligations()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *LedgerController) ledgerService() services.InterfaceLedgerService {
	return c.Container.GetService("ledger").(services.InterfaceLedgerService)
}

// bindObligation 绑定并解析应缴款项请求
func (c *LedgerController) bindObligation() (services.ObligationInput, bool) {
	var req ObligationRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return services.ObligationInput{}, false
	}
	due, ok := c.parseDate("due_date", req.DueDate)
	if !ok {
		return services.ObligationInput{}, false
	}
	return services.ObligationInput{
		Amount:      *req.Amount,
		DueDate:     due,
		Description: req.Description,
	}, true
}

// 1. GetDeposits 获取公寓的存款，按日期倒序
// @Summary 存款列表
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Success 200 {array} models.Deposit
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /apartments/{id}/deposits [get]
func (c *LedgerController) GetDeposits() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}

	deposits, err := c.ledgerService().ListDeposits(c.Ctx.Request.Context(), c.userID(), apartmentID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, deposits)
}

// 2. CreateDeposit 新增存款
// @Summary 新增存款
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Param deposit body DepositRequest true "存款信息"
// @Success 201 {object} models.Deposit
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /apartments/{id}/deposits [post]
func (c *LedgerController) CreateDeposit() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req DepositRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}
	date, ok := c.parseDate("date", req.Date)
	if !ok {
		return
	}

	deposit, err := c.ledgerService().CreateDeposit(c.Ctx.Request.Context(), c.userID(), apartmentID, services.DepositInput{
		Amount:      *req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, deposit)
}

// 3. DeleteDeposit 逻辑删除存款
// @Summary 删除存款
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Param depositId path int true "存款ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /apartments/{id}/deposits/{depositId} [delete]
func (c *LedgerController) DeleteDeposit() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}
	depositID, ok := c.pathID("depositId")
	if !ok {
		return
	}

	if err := c.ledgerService().DeleteDeposit(c.Ctx.Request.Context(), c.userID(), apartmentID, depositID); err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"id": depositID, "deleted": true})
}

// 4. GetObligations 获取公寓的应缴款项，按到期日升序
// @Summary 应缴款项列表
// @Tags Ledger
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Success 200 {array} models.Obligation
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /apartments/{id}/obligations [get]
func (c *LedgerController) GetObligations() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}

	obligations, err := c.ledgerService().ListObligations(c.Ctx.Request.Context(), c.userID(), apartmentID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, obligations)
}

// 5. CreateObligation 新增应缴款项
// @Summary 新增应缴款项
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "公寓ID"
// @Param obligation body ObligationRequest true "应缴款项信息"
// @Success 201 {object} models.Obligation
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /apartments/{id}/obligations [post]
func (c *LedgerController) CreateObligation() {
	apartmentID, ok := c.pathID("id")
	if !ok {
		return
	}
	in, ok := c.bindObligation()
	if !ok {
		return
	}

	obligation, err := c.ledgerService().CreateObligation(c.Ctx.Request.Context(), c.userID(), apartmentID, in)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, obligation)
}

// 6. UpdateObligation 标记应缴款项为已缴或未缴
// @Summary 标记缴费状态
// @Description 标记已缴且未给出 payment_date 时取当天；标记未缴时清空 payment_date
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "应缴款项ID"
// @Param payment body ObligationPaymentRequest true "缴费状态"
// @Success 200 {object} models.Obligation
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /obligations/{id} [put]
func (c *LedgerController) UpdateObligation() {
	obligationID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req ObligationPaymentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}

	var paymentDate *time.Time
	if req.PaymentDate != nil && *req.PaymentDate != "" {
		d, ok := c.parseDate("payment_date", *req.PaymentDate)
		if !ok {
			return
		}
		paymentDate = &d
	}

	obligation, err := c.ledgerService().SetObligationPaid(c.Ctx.Request.Context(), c.userID(), obligationID, *req.IsPaid, paymentDate)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, obligation)
}

// 7. BulkCreateObligations 为楼宇下每个有效公寓创建相同的应缴款项
// @Summary 批量创建应缴款项
// @Tags Ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param obligation body ObligationRequest true "应缴款项信息"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/obligations/bulk [post]
func (c *LedgerController) BulkCreateObligations() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}
	in, ok := c.bindObligation()
	if !ok {
		return
	}

	count, err := c.ledgerService().BulkCreateObligations(c.Ctx.Request.Context(), c.userID(), buildingID, in)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, gin.H{"count": count})
}
