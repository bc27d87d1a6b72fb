package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	categorydomain "github.com/firmdesk/firmdesk-backend/internal/domain/category"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// CategoryController gerencia as requisições relacionadas a categorias
type CategoryController struct {
	categoryRepo categorydomain.Repository
	logger       logger.Logger
}

// NewCategoryController cria uma nova instância de CategoryController
func NewCategoryController(categoryRepo categorydomain.Repository, logger logger.Logger) *CategoryController {
	return &CategoryController{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create cria uma nova categoria
// @Summary Criar categoria
// @Description Cria uma nova categoria de itens de estoque
// @Tags categories
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param category body dto.CategoryRequest true "Dados da categoria"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /categories [post]
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	firmID := firmctx.GetFirmID(ctx)
	userID := ctx.GetString("user_id")

	category, err := categorydomain.NewCategory(firmID, userID, req.Name, req.Description)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar categoria", err.Error()))
		return
	}

	if err := c.categoryRepo.Create(ctx, category); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// Get retorna uma categoria pelo ID
// @Summary Buscar categoria
// @Description Retorna os dados de uma categoria pelo ID
// @Tags categories
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da categoria"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [get]
func (c *CategoryController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	category, err := c.categoryRepo.FindByID(ctx, id, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// List retorna as categorias da firma
// @Summary Listar categorias
// @Description Retorna todas as categorias da firma
// @Tags categories
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {array} dto.CategoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /categories [get]
func (c *CategoryController) List(ctx *gin.Context) {
	firmID := firmctx.GetFirmID(ctx)

	categories, err := c.categoryRepo.FindByFirmID(ctx, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// Update atualiza uma categoria
// @Summary Atualizar categoria
// @Description Atualiza os dados de uma categoria
// @Tags categories
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da categoria"
// @Param category body dto.CategoryRequest true "Dados da categoria"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [put]
func (c *CategoryController) Update(ctx *gin.Context) {
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	category, err := c.categoryRepo.FindByID(ctx, id, firmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := c.categoryRepo.Update(ctx, category); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Delete remove uma categoria
// @Summary Excluir categoria
// @Description Remove uma categoria sem itens vinculados
// @Tags categories
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da categoria"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /categories/{id} [delete]
func (c *CategoryController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	firmID := firmctx.GetFirmID(ctx)

	if err := c.categoryRepo.Delete(ctx, id, firmID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("categoria excluída", nil))
}
