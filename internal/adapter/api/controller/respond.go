package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/firmdesk/firmdesk-backend/internal/adapter/api/dto"
	"github.com/firmdesk/firmdesk-backend/pkg/apperror"
	"github.com/firmdesk/firmdesk-backend/pkg/logger"
)

// statusFor traduz a categoria do erro de negócio para o status HTTP
func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindValidation:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindForbidden:
		return http.StatusForbidden
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindInsufficientStock, apperror.KindOverDelivery:
		return http.StatusUnprocessableEntity
	case apperror.KindInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError converte um erro de negócio na resposta HTTP correspondente.
// Falhas internas são logadas e não expõem detalhes da infraestrutura.
func respondError(ctx *gin.Context, log logger.Logger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("erro inesperado", "error", err, "path", ctx.FullPath())
		ctx.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(http.StatusInternalServerError, "erro interno", ""))
		return
	}

	status := statusFor(appErr.Kind)
	if status == http.StatusInternalServerError {
		log.Error("erro interno", "error", err, "path", ctx.FullPath())
		ctx.JSON(status, dto.NewErrorResponse(status, "erro interno", ""))
		return
	}

	resp := dto.NewErrorResponse(status, appErr.Message, "")
	resp.Context = appErr.Context
	ctx.JSON(status, resp)
}
