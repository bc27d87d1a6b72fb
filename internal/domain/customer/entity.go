package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName = errors.New("nome do cliente não pode ser vazio")
)

// Customer representa um cliente de uma firma
type Customer struct {
	ID        string    `json:"id"`
	FirmID    string    `json:"firm_id"`
	Name      string    `json:"name"`      // Nome completo
	FirmName  string    `json:"firm_name"` // Razão social do cliente, quando empresa
	ContactNo string    `json:"contact_no"`
	GstNo     string    `json:"gst_no"` // Número fiscal do cliente
	City      string    `json:"city"`
	Street    string    `json:"street"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer cria um novo cliente
func NewCustomer(firmID, name, firmName, contactNo, gstNo, city, street string) (*Customer, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		FirmID:    firmID,
		Name:      name,
		FirmName:  firmName,
		ContactNo: contactNo,
		GstNo:     gstNo,
		City:      city,
		Street:    street,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados do cliente
func (c *Customer) Update(name, firmName, contactNo, gstNo, city, street string) error {
	if name == "" {
		return ErrEmptyName
	}

	c.Name = name
	c.FirmName = firmName
	c.ContactNo = contactNo
	c.GstNo = gstNo
	c.City = city
	c.Street = street
	c.UpdatedAt = time.Now()

	return nil
}
