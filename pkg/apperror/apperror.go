package apperror

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind identifica a categoria de um erro de negócio
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindInsufficientStock Kind = "insufficient_stock"
	KindOverDelivery      Kind = "over_delivery"
	KindInvalidState      Kind = "invalid_state"
	KindInternal          Kind = "internal"
)

// Error representa um erro de negócio com categoria estável e contexto estruturado
type Error struct {
	Kind    Kind
	Message string
	// Contexto adicional dependente do Kind (faltante de estoque, máximo permitido, etc.)
	Context map[string]interface{}
	// Erro de origem, quando houver
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New cria um erro de negócio com a categoria informada
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf cria um erro de negócio com mensagem formatada
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap embrulha um erro de origem preservando a categoria
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithContext anexa um valor de contexto estruturado ao erro
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Validation cria um erro de validação
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// NotFound cria um erro de registro não encontrado
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Forbidden cria um erro de acesso a recurso de outra firma
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// Conflict cria um erro de duplicidade (número de fatura, chave única)
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// InvalidState cria um erro de transição de estado não permitida
func InvalidState(message string) *Error {
	return New(KindInvalidState, message)
}

// Internal embrulha uma falha inesperada de infraestrutura
func Internal(err error) *Error {
	return Wrap(KindInternal, "erro interno", err)
}

// InsufficientStock cria o erro de estoque insuficiente com o item e o faltante
func InsufficientStock(stockName string, available, required decimal.Decimal) *Error {
	e := Newf(KindInsufficientStock,
		"estoque insuficiente para o item %s. Disponível: %s, Necessário: %s",
		stockName, available.String(), required.String())
	return e.WithContext("stock_name", stockName).
		WithContext("available", available.String()).
		WithContext("required", required.String()).
		WithContext("shortfall", required.Sub(available).String())
}

// OverDelivery cria o erro de entrega acima do pedido com o máximo permitido
func OverDelivery(maxAllowed decimal.Decimal) *Error {
	e := Newf(KindOverDelivery,
		"quantidade entregue excede a quantidade pedida. Máximo permitido: %s", maxAllowed.String())
	return e.WithContext("max_allowed", maxAllowed.String())
}

// KindOf retorna a categoria de um erro, ou KindInternal se não for um *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is verifica se o erro pertence à categoria informada
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
