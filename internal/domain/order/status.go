package order

import (
	"github.com/shopspring/decimal"
)

// DeriveDeliveryStatus classifica cada linha como entregue, parcial ou
// intocada e deriva o status de entrega do pedido. Pedidos sem linhas
// permanecem PENDING.
func DeriveDeliveryStatus(lines []*Line) DeliveryStatus {
	total := len(lines)
	fulfilled := 0
	partial := 0
	for _, l := range lines {
		if l.IsFulfilled() {
			fulfilled++
		} else if l.QuantityDelivered.IsPositive() {
			partial++
		}
	}

	if total > 0 && fulfilled == total {
		return DeliveryDelivered
	}
	if fulfilled > 0 || partial > 0 {
		return DeliveryPartiallyDelivered
	}
	return DeliveryPending
}

// DerivePaymentStatus deriva o status financeiro a partir do total pago.
// Pagamento a maior é permitido e continua PAID. Pedidos com total zero e
// nenhum pagamento permanecem UNPAID.
func DerivePaymentStatus(totalPaid, totalAmount decimal.Decimal) PaymentStatus {
	if totalPaid.IsZero() && totalAmount.IsZero() {
		return PaymentUnpaid
	}
	if totalPaid.GreaterThanOrEqual(totalAmount) {
		return PaymentPaid
	}
	if totalPaid.IsPositive() {
		return PaymentPartiallyPaid
	}
	return PaymentUnpaid
}

// DeriveOrderStatus deriva o status geral. O chamador deve tratar CANCELLED
// como guarda terminal antes de chamar esta função.
func DeriveOrderStatus(deliveryStatus DeliveryStatus, paymentStatus PaymentStatus) Status {
	if deliveryStatus == DeliveryDelivered && paymentStatus == PaymentPaid {
		return StatusCompleted
	}
	return StatusPending
}
