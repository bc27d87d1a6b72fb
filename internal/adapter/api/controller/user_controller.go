package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	userdomain "github.com/firmdesk/firmdesk-backend/internal/domain/user"
	"github.com/firmdesk/firmdesk-backend/pkg/firmctx"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// UserController gerencia as requisições relacionadas a usuários da firma
type UserController struct {
	userRepo userdomain.Repository
	logger   logger.Logger
}

// NewUserController cria uma nova instância de UserController
func NewUserController(userRepo userdomain.Repository, logger logger.Logger) *UserController {
	return &UserController{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create cadastra um novo funcionário na firma
// @Summary Criar usuário
// @Description Cadastra um funcionário na firma do usuário autenticado; requer papel owner ou admin
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param user body dto.UserCreateRequest true "Dados do usuário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.UserCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	role := ctx.GetString("user_role")
	if role != string(userdomain.RoleOwner) && role != string(userdomain.RoleAdmin) {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, "apenas owner ou admin podem cadastrar usuários", ""))
		return
	}

	firmID := firmctx.GetFirmID(ctx)

	u, err := userdomain.NewUser(firmID, req.Name, req.Email, req.ContactNo, userdomain.Role(req.Role))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados do usuário inválidos", err.Error()))
		return
	}
	if err := u.SetPassword(req.Password); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "senha inválida", err.Error()))
		return
	}

	if err := c.userRepo.Create(ctx, u); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// List retorna os usuários da firma
// @Summary Listar usuários
// @Description Retorna os usuários da firma do usuário autenticado
// @Tags users
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {array} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	p := dto.GetPagination(page, size)

	firmID := firmctx.GetFirmID(ctx)

	users, err := c.userRepo.FindByFirmID(ctx, firmID, p.PageSize, p.Offset())
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.ToUserResponse(u))
	}
	ctx.JSON(http.StatusOK, responses)
}

// UpdateProfile atualiza o perfil do usuário autenticado
// @Summary Atualizar perfil
// @Description Atualiza nome, contato e bio do usuário autenticado
// @Tags users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param user body dto.UserUpdateRequest true "Dados do perfil"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UserUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	userID := ctx.GetString("user_id")

	u, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	u.Name = req.Name
	u.ContactNo = req.ContactNo
	u.Bio = req.Bio

	if err := c.userRepo.Update(ctx, u); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}
