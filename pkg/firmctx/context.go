package firmctx

import (
	"github.com/gin-gonic/gin"
)

const firmIDKey = "firm_id"

// GetFirmID obtém o ID da firma injetado pelo middleware de autenticação
func GetFirmID(c *gin.Context) string {
	return c.GetString(firmIDKey)
}
