package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func line(quantity, delivered string) *Line {
	return &Line{
		Quantity:          dec(quantity),
		QuantityDelivered: dec(delivered),
	}
}

func TestDeriveDeliveryStatus(t *testing.T) {
	tests := []struct {
		name  string
		lines []*Line
		want  DeliveryStatus
	}{
		{"sem linhas", nil, DeliveryPending},
		{"nada entregue", []*Line{line("10", "0"), line("5", "0")}, DeliveryPending},
		{"uma linha parcial", []*Line{line("10", "4"), line("5", "0")}, DeliveryPartiallyDelivered},
		{"uma linha completa outra intocada", []*Line{line("10", "10"), line("5", "0")}, DeliveryPartiallyDelivered},
		{"todas completas", []*Line{line("10", "10"), line("5", "5")}, DeliveryDelivered},
		{"entrega acima do pedido conta como completa", []*Line{line("10", "12")}, DeliveryDelivered},
	}

	for _, tt := range tests {
		if got := DeriveDeliveryStatus(tt.lines); got != tt.want {
			t.Errorf("%s: DeriveDeliveryStatus = %s, esperado %s", tt.name, got, tt.want)
		}
	}
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name        string
		paid, total string
		want        PaymentStatus
	}{
		{"nada pago", "0", "100", PaymentUnpaid},
		{"pago parcial", "40", "100", PaymentPartiallyPaid},
		{"pago exato", "100", "100", PaymentPaid},
		{"pago a maior", "120", "100", PaymentPaid},
		{"pedido zerado sem pagamento", "0", "0", PaymentUnpaid},
		{"pedido zerado com pagamento", "10", "0", PaymentPaid},
	}

	for _, tt := range tests {
		if got := DerivePaymentStatus(dec(tt.paid), dec(tt.total)); got != tt.want {
			t.Errorf("%s: DerivePaymentStatus = %s, esperado %s", tt.name, got, tt.want)
		}
	}
}

func TestDeriveOrderStatus(t *testing.T) {
	if got := DeriveOrderStatus(DeliveryDelivered, PaymentPaid); got != StatusCompleted {
		t.Errorf("entregue e pago: %s, esperado COMPLETED", got)
	}
	if got := DeriveOrderStatus(DeliveryDelivered, PaymentPartiallyPaid); got != StatusPending {
		t.Errorf("entregue sem quitar: %s, esperado PENDING", got)
	}
	if got := DeriveOrderStatus(DeliveryPartiallyDelivered, PaymentPaid); got != StatusPending {
		t.Errorf("pago sem entregar: %s, esperado PENDING", got)
	}
}

func TestLineHelpers(t *testing.T) {
	l, err := NewLine("order-1", "stock-1", dec("4"), dec("2.50"))
	if err != nil {
		t.Fatalf("NewLine: %v", err)
	}
	if !l.Subtotal.Equal(dec("10")) {
		t.Fatalf("subtotal = %s, esperado 10", l.Subtotal)
	}
	if !l.Remaining().Equal(dec("4")) {
		t.Fatalf("remaining = %s, esperado 4", l.Remaining())
	}

	qty := dec("6")
	if err := l.ApplyPatch(&qty, nil); err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if !l.Subtotal.Equal(dec("15")) {
		t.Fatalf("subtotal recalculado = %s, esperado 15", l.Subtotal)
	}

	bad := dec("0")
	if err := l.ApplyPatch(&bad, nil); err == nil {
		t.Fatal("quantidade zero deveria ser rejeitada")
	}

	if _, err := NewLine("order-1", "stock-1", dec("1"), dec("-1")); err == nil {
		t.Fatal("preço negativo deveria ser rejeitado")
	}
}

func TestOrderHelpers(t *testing.T) {
	o, err := NewOrder("firm-1", "customer-1", "user-1", time.Time{}, 42)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if o.OrderStatus != StatusPending || o.PaymentStatus != PaymentUnpaid || o.DeliveryStatus != DeliveryPending {
		t.Fatalf("estado inicial inesperado: %s/%s/%s", o.OrderStatus, o.PaymentStatus, o.DeliveryStatus)
	}

	o.TotalAmount = dec("100")
	o.TotalPaidAmount = dec("120")
	if !o.BalanceDue().Equal(dec("-20")) {
		t.Fatalf("balance_due = %s, esperado -20", o.BalanceDue())
	}

	if _, err := NewOrder("firm-1", "", "user-1", time.Time{}, 1); err == nil {
		t.Fatal("cliente vazio deveria ser rejeitado")
	}
}
