package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	firmdomain "github.com/firmdesk/firmdesk-backend/internal/domain/firm"
	userdomain "github.com/firmdesk/firmdesk-backend/internal/domain/user"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
	"github.com/firmdesk/firmdesk-backend/pkg/auth"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// AuthController gerencia as requisições de autenticação e cadastro
type AuthController struct {
	firmRepo   firmdomain.Repository
	userRepo   userdomain.Repository
	jwtService *auth.JWTService
	logger     logger.Logger
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(firmRepo firmdomain.Repository, userRepo userdomain.Repository, jwtService *auth.JWTService, logger logger.Logger) *AuthController {
	return &AuthController{
		firmRepo:   firmRepo,
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register cadastra uma nova firma com seu usuário dono
// @Summary Cadastrar firma
// @Description Cria uma nova firma e o usuário dono, retornando o token de acesso
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Dados da firma e do dono"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	if _, err := c.userRepo.FindByEmail(ctx, req.Email); err == nil {
		ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "já existe um usuário com este email", ""))
		return
	}

	f, err := firmdomain.NewFirm(req.FirmName, req.GstNo, req.City, req.Street)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados da firma inválidos", err.Error()))
		return
	}
	if err := c.firmRepo.Create(ctx, f); err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	u, err := userdomain.NewUser(f.ID, req.UserName, req.Email, req.ContactNo, userdomain.RoleOwner)
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

	token, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("erro ao gerar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar token", ""))
		return
	}

	c.logger.Info("firma cadastrada", "firm_id", f.ID, "user_id", u.ID)

	firmResp := dto.ToFirmResponse(f)
	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(u),
		Firm:  &firmResp,
	})
}

// Login autentica um usuário e retorna o token de acesso
// @Summary Login
// @Description Autentica o usuário por email e senha
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	u, err := c.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "credenciais inválidas", ""))
			return
		}
		respondError(ctx, c.logger, err)
		return
	}

	if !u.IsActive() || !u.CheckPassword(req.Password) {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "credenciais inválidas", ""))
		return
	}

	token, err := c.jwtService.GenerateToken(u)
	if err != nil {
		c.logger.Error("erro ao gerar token", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar token", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(u),
	})
}

// Refresh renova um token de acesso ainda válido
// @Summary Renovar token
// @Description Emite um novo token a partir de um token válido
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Token atual"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	token, err := c.jwtService.RefreshToken(req.Token)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "token inválido", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("token renovado", gin.H{"token": token}))
}

// Me retorna os dados do usuário autenticado
// @Summary Usuário atual
// @Description Retorna os dados do usuário autenticado e de sua firma
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := ctx.GetString("user_id")

	u, err := c.userRepo.FindByID(ctx, userID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	f, err := c.firmRepo.FindByID(ctx, u.FirmID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}

	firmResp := dto.ToFirmResponse(f)
	ctx.JSON(http.StatusOK, dto.AuthResponse{
		User: dto.ToUserResponse(u),
		Firm: &firmResp,
	})
}
