package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address dirección del evento, con coordenadas elegidas en el mapa.
type Address struct {
	Street       string
	District     string
	Municipality string
	Locality     string
	PostalCode   string
	Country      string
	Latitude     float64
	Longitude    float64
}

// RequiredProduct producto solicitado dentro de una requisición.
type RequiredProduct struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Requisition solicitud de material para un evento.
// Approved es un tri-estado: nil = pendiente de revisión, true = aprobada,
// false + ReviewedBy != "" = rechazada.
type Requisition struct {
	ID               string
	EventName        string
	StartDate        time.Time
	EndDate          time.Time
	SubmissionDate   time.Time
	Approved         *bool
	ReviewedBy       string
	Address          Address
	RequiredProducts []RequiredProduct
}

// Status etiqueta legible del estado de revisión.
func (r Requisition) Status() string {
	switch {
	case r.Approved != nil && *r.Approved:
		return "Aprovada"
	case r.Approved != nil && r.ReviewedBy != "":
		return "Rejeitada"
	default:
		return "Pendente"
	}
}
