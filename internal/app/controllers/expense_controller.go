package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"flatmoney-service/internal/domain/services"
	"flatmoney-service/internal/domain/services/container"
	"flatmoney-service/internal/error/code"
	"flatmoney-service/internal/error/response"
)

// InterfaceExpenseController 定义支出控制器接口
type InterfaceExpenseController interface {
	GetExpenseTypes()
	GetExpenses()
	CreateExpense()
	DeleteExpense()
	GetBalance()
}

// ExpenseController 处理楼宇支出和账目汇总请求
type ExpenseController struct {
	BaseController
}

// NewExpenseController 创建一个新的支出控制器
func NewExpenseController(ctx *gin.Context, container *container.ServiceContainer) *ExpenseController {
	return &ExpenseController{BaseController{Ctx: ctx, Container: container}}
}

// ExpenseRequest 表示新增支出请求
type ExpenseRequest struct {
	ExpenseTypeID uint             `json:"expense_type_id" binding:"required" example:"1"`
	Amount        *decimal.Decimal `json:"amount" binding:"required" swaggertype:"number" example:"320.00"`
	Date          string           `json:"date" binding:"required" example:"2024-05-20"`
	Description   string           `json:"description" example:"Stairwell lights"`
}

// HandleExpenseFunc 返回一个处理支出请求的Gin处理函数
func HandleExpenseFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewExpenseController(ctx, container)

		switch method {
		case "getExpenseTypes":
			controller.GetExpenseTypes()
		case "getExpenses":
			controller.GetExpenses()
		case "createExpense":
			controller.CreateExpense()
		case "deleteExpense":
			controller.DeleteExpense()
		case "getBalance":
			controller.GetBalance()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *ExpenseController) expenseService() services.InterfaceExpenseService {
	return c.Container.GetService("expense").(services.InterfaceExpenseService)
}

// 1. GetExpenseTypes 获取支出分类
// @Summary 支出分类
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ExpenseType
// @Router /expense-types [get]
func (c *ExpenseController) GetExpenseTypes() {
	types, err := c.expenseService().ListExpenseTypes(c.Ctx.Request.Context())
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, types)
}

// 2. GetExpenses 获取楼宇支出，按日期倒序
// @Summary 楼宇支出列表
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Success 200 {array} models.BuildingExpense
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/expenses [get]
func (c *ExpenseController) GetExpenses() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}

	expenses, err := c.expenseService().ListExpenses(c.Ctx.Request.Context(), c.userID(), buildingID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, expenses)
}

// 3. CreateExpense 新增楼宇支出
// @Summary 新增楼宇支出
// @Tags Expense
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param expense body ExpenseRequest true "支出信息"
// @Success 201 {object} models.BuildingExpense
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/expenses [post]
func (c *ExpenseController) CreateExpense() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}
	var req ExpenseRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.BindError(c.Ctx, err)
		return
	}
	date, ok := c.parseDate("date", req.Date)
	if !ok {
		return
	}

	expense, err := c.expenseService().CreateExpense(c.Ctx.Request.Context(), c.userID(), buildingID, services.ExpenseInput{
		ExpenseTypeID: req.ExpenseTypeID,
		Amount:        *req.Amount,
		Date:          date,
		Description:   req.Description,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Created(c.Ctx, expense)
}

// 4. DeleteExpense 逻辑删除楼宇支出
// @Summary 删除楼宇支出
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Param expenseId path int true "支出ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/expenses/{expenseId} [delete]
func (c *ExpenseController) DeleteExpense() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}
	expenseID, ok := c.pathID("expenseId")
	if !ok {
		return
	}

	if err := c.expenseService().DeleteExpense(c.Ctx.Request.Context(), c.userID(), buildingID, expenseID); err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"id": expenseID, "deleted": true})
}

// 5. GetBalance 楼宇账目汇总
// @Summary 楼宇余额
// @Description 余额 = 存款 + 已缴款项 - 支出
// @Tags Expense
// @Produce json
// @Security BearerAuth
// @Param id path int true "楼宇ID"
// @Success 200 {object} models.BuildingBalance
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /buildings/{id}/balance [get]
func (c *ExpenseController) GetBalance() {
	buildingID, ok := c.pathID("id")
	if !ok {
		return
	}

	balance, err := c.expenseService().GetBalance(c.Ctx.Request.Context(), c.userID(), buildingID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, balance)
}
