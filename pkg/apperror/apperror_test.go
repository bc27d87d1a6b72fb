package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(Validation("campo obrigatório")); got != KindValidation {
		t.Fatalf("KindOf = %s, esperado %s", got, KindValidation)
	}
	if got := KindOf(errors.New("qualquer")); got != KindInternal {
		t.Fatalf("erro desconhecido: KindOf = %s, esperado %s", got, KindInternal)
	}

	wrapped := fmt.Errorf("camada externa: %w", NotFound("pedido não encontrado"))
	if !Is(wrapped, KindNotFound) {
		t.Fatal("categoria deveria sobreviver ao embrulho com %w")
	}
}

func TestWrapPreservesSource(t *testing.T) {
	src := errors.New("falha de conexão")
	err := Wrap(KindInternal, "erro ao consultar pedidos", src)

	if !errors.Is(err, src) {
		t.Fatal("erro de origem deveria ser alcançável por errors.Is")
	}
	if err.Error() != "erro ao consultar pedidos: falha de conexão" {
		t.Fatalf("mensagem = %q", err.Error())
	}
}

func TestInsufficientStockContext(t *testing.T) {
	err := InsufficientStock("Arroz", decimal.RequireFromString("3"), decimal.RequireFromString("10"))

	if !Is(err, KindInsufficientStock) {
		t.Fatalf("KindOf = %s", KindOf(err))
	}
	if err.Context["shortfall"] != "7" {
		t.Fatalf("shortfall = %v, esperado 7", err.Context["shortfall"])
	}
	if err.Context["stock_name"] != "Arroz" {
		t.Fatalf("stock_name = %v", err.Context["stock_name"])
	}
}

func TestOverDeliveryContext(t *testing.T) {
	err := OverDelivery(decimal.RequireFromString("6"))

	if !Is(err, KindOverDelivery) {
		t.Fatalf("KindOf = %s", KindOf(err))
	}
	if err.Context["max_allowed"] != "6" {
		t.Fatalf("max_allowed = %v, esperado 6", err.Context["max_allowed"])
	}
}
