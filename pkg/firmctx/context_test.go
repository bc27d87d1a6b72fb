package firmctx

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetFirmID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := GetFirmID(c); got != "" {
		t.Fatalf("sem firma no contexto: %q, esperado vazio", got)
	}

	c.Set("firm_id", "firm-1")
	if got := GetFirmID(c); got != "firm-1" {
		t.Fatalf("GetFirmID = %q, esperado firm-1", got)
	}
}
