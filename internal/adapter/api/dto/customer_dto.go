package dto

import (
	"time"

	"github.com/firmdesk/firmdesk-backend/internal/domain/customer"
)

// CustomerRequest representa a requisição de criação/atualização de cliente
type CustomerRequest struct {
	Name      string `json:"name" binding:"required"`
	FirmName  string `json:"firm_name"`
	ContactNo string `json:"contact_no"`
	GstNo     string `json:"gst_no"`
	City      string `json:"city"`
	Street    string `json:"street"`
}

// CustomerResponse representa a resposta com dados de um cliente
type CustomerResponse struct {
	ID        string    `json:"id"`
	FirmID    string    `json:"firm_id"`
	Name      string    `json:"name"`
	FirmName  string    `json:"firm_name"`
	ContactNo string    `json:"contact_no"`
	GstNo     string    `json:"gst_no"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse representa a resposta de listagem de clientes
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Meta      ListMeta           `json:"meta"`
}

// ToCustomerResponse converte um cliente do domínio para a resposta da API
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		FirmID:    c.FirmID,
		Name:      c.Name,
		FirmName:  c.FirmName,
		ContactNo: c.ContactNo,
		GstNo:     c.GstNo,
		City:      c.City,
		Street:    c.Street,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma lista de clientes para a resposta da API
func ToCustomerListResponse(customers []*customer.Customer, p Pagination, total int) CustomerListResponse {
	responses := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, ToCustomerResponse(c))
	}

	return CustomerListResponse{
		Customers: responses,
		Meta:      NewListMeta(p, total),
	}
}
