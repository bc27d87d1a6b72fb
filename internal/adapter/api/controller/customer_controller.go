package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	customerdomain "github.com/firmdesk/firmdesk-backend/internal/domain/customer"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente da firma
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	firmID := firmctx.GetFirmID(ctx)

	customer, err := customerdomain.NewCustomer(firmID, req.Name, req.FirmName, req.ContactNo, req.GstNo, req.City, req.Street)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}

	if err := c.customerRepo.Create(ctx, customer); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo ID
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	customer, err := c.customerRepo.FindByID(ctx, id, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// List retorna a lista de clientes
// @Summary Listar clientes
// @Description Retorna a lista de clientes da firma, paginada
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	firmID := firmctx.GetFirmID(ctx)

	customers, err := c.customerRepo.List(ctx, firmID, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	total, err := c.customerRepo.CountByFirm(ctx, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers, p, total))
}

// Search busca clientes pelo nome
// @Summary Buscar clientes por nome
// @Description Busca clientes da firma pelo nome ou razão social
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param q query string true "Termo de busca"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {array} dto.CustomerResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/search [get]
func (c *CustomerController) Search(ctx *gin.Context) {
	name := ctx.Query("q")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	firmID := firmctx.GetFirmID(ctx)

	customers, err := c.customerRepo.FindByName(ctx, firmID, name, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	responses := make([]dto.CustomerResponse, 0, len(customers))
	for _, cust := range customers {
		responses = append(responses, dto.ToCustomerResponse(cust))
	}
	ctx.JSON(http.StatusOK, responses)
}

// Update atualiza um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados de um cliente da firma
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	customer, err := c.customerRepo.FindByID(ctx, id, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	if err := customer.Update(req.Name, req.FirmName, req.ContactNo, req.GstNo, req.City, req.Street); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, customer); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}
