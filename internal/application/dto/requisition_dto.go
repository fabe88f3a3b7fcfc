package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/scheduler-admin/internal/domain/entity"
)

// AddressDTO dirección del evento.
type AddressDTO struct {
	Street       string  `json:"street"`
	District     string  `json:"district"`
	Municipality string  `json:"municipality"`
	Locality     string  `json:"locality"`
	PostalCode   string  `json:"postal_code"`
	Country      string  `json:"country"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
}

// ToEntity mapeo directo.
func (d AddressDTO) ToEntity() entity.Address {
	return entity.Address{
		Street:       d.Street,
		District:     d.District,
		Municipality: d.Municipality,
		Locality:     d.Locality,
		PostalCode:   d.PostalCode,
		Country:      d.Country,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
	}
}

// RequiredProductDTO producto solicitado en una requisición.
type RequiredProductDTO struct {
	ID       string          `json:"id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// RequisitionDTO requisición tal como la serializa la API de eventos.
type RequisitionDTO struct {
	ID               string               `json:"_id"`
	EventName        string               `json:"event_name"`
	StartDate        time.Time            `json:"start_date"`
	EndDate          time.Time            `json:"end_date"`
	SubmissionDate   time.Time            `json:"submission_date"`
	Approved         *bool                `json:"approved"`
	ReviewedBy       string               `json:"reviewed_by"`
	Address          AddressDTO           `json:"address"`
	RequiredProducts []RequiredProductDTO `json:"required_products"`
}

// ToEntity mapeo directo.
func (d RequisitionDTO) ToEntity() entity.Requisition {
	products := make([]entity.RequiredProduct, 0, len(d.RequiredProducts))
	for _, p := range d.RequiredProducts {
		products = append(products, entity.RequiredProduct{ProductID: p.ID, Quantity: p.Quantity})
	}
	return entity.Requisition{
		ID:               d.ID,
		EventName:        d.EventName,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		SubmissionDate:   d.SubmissionDate,
		Approved:         d.Approved,
		ReviewedBy:       d.ReviewedBy,
		Address:          d.Address.ToEntity(),
		RequiredProducts: products,
	}
}

// RequisitionListResponse respuesta paginada de GET requisitions.
type RequisitionListResponse struct {
	Data       []RequisitionDTO `json:"data"`
	TotalPages int              `json:"totalPages"`
}

// CreateRequisitionRequest cuerpo de POST requisitions. Las fechas van como
// YYYY-MM-DD, igual que las produce el formulario.
type CreateRequisitionRequest struct {
	EventName        string               `json:"event_name"`
	StartDate        string               `json:"start_date"`
	EndDate          string               `json:"end_date"`
	RequiredProducts []RequiredProductDTO `json:"required_products"`
	Address          AddressDTO           `json:"address"`
}
