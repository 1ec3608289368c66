package dto

import (
	"time"

	"github.com/jhoicas/labinventaris/internal/domain/entity"
)

// ItemResponse ítem de inventario.
type ItemResponse struct {
	ID              string  `json:"id"`
	LabID           string  `json:"lab_id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Quantity        int     `json:"quantity"`
	Unit            string  `json:"unit"`
	Location        string  `json:"location"`
	Status          string  `json:"status"`
	Description     string  `json:"description,omitempty"`
	Supplier        string  `json:"supplier,omitempty"`
	SerialNumber    string  `json:"serial_number,omitempty"`
	AcquisitionDate *string `json:"acquisition_date,omitempty"`
	Image           string  `json:"image"`
}

// ItemFromEntity mapea la entidad al DTO.
func ItemFromEntity(it entity.Item) ItemResponse {
	return ItemResponse{
		ID:              it.ID,
		LabID:           it.LabID,
		Name:            it.Name,
		Category:        string(it.Category),
		Quantity:        it.Quantity,
		Unit:            it.Unit,
		Location:        it.Location,
		Status:          string(it.Status),
		Description:     it.Description,
		Supplier:        it.Supplier,
		SerialNumber:    it.SerialNumber,
		AcquisitionDate: formatDatePtr(it.AcquisitionDate),
		Image:           it.Image,
	}
}

// ItemsFromEntities mapea una lista.
func ItemsFromEntities(list []entity.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, ItemFromEntity(it))
	}
	return out
}

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	LabID           string `json:"lab_id" validate:"required"`
	Name            string `json:"name" validate:"required,max=200"`
	Category        string `json:"category" validate:"omitempty,category"`
	Quantity        int    `json:"quantity" validate:"min=0"`
	Unit            string `json:"unit" validate:"max=30"`
	Location        string `json:"location"`
	Status          string `json:"status" validate:"omitempty,item_status"`
	Description     string `json:"description"`
	Supplier        string `json:"supplier"`
	SerialNumber    string `json:"serial_number"`
	AcquisitionDate string `json:"acquisition_date" validate:"omitempty,datetime=2006-01-02"`
	Image           string `json:"image" validate:"omitempty,url"`
}

// ToNewItem convierte el request (ya validado) a entity.NewItem.
func (r CreateItemRequest) ToNewItem(loc *time.Location) (entity.NewItem, error) {
	acquired, err := ParseDate(r.AcquisitionDate, loc)
	if err != nil {
		return entity.NewItem{}, err
	}
	return entity.NewItem{
		LabID:           r.LabID,
		Name:            r.Name,
		Category:        entity.ItemCategory(r.Category),
		Quantity:        r.Quantity,
		Unit:            r.Unit,
		Location:        r.Location,
		Status:          entity.ItemStatus(r.Status),
		Description:     r.Description,
		Supplier:        r.Supplier,
		SerialNumber:    r.SerialNumber,
		AcquisitionDate: acquired,
		Image:           r.Image,
	}, nil
}

// UpdateItemRequest body para PATCH /api/items/:id. Solo se aplican los campos presentes.
type UpdateItemRequest struct {
	LabID           *string `json:"lab_id" validate:"omitempty,min=1"`
	Name            *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category        *string `json:"category" validate:"omitempty,category"`
	Quantity        *int    `json:"quantity" validate:"omitempty,min=0"`
	Unit            *string `json:"unit" validate:"omitempty,max=30"`
	Location        *string `json:"location"`
	Status          *string `json:"status" validate:"omitempty,item_status"`
	Description     *string `json:"description"`
	Supplier        *string `json:"supplier"`
	SerialNumber    *string `json:"serial_number"`
	AcquisitionDate *string `json:"acquisition_date" validate:"omitempty,datetime=2006-01-02"`
	Image           *string `json:"image"`
}

// ToPatch convierte el request a entity.ItemPatch.
func (r UpdateItemRequest) ToPatch(loc *time.Location) (entity.ItemPatch, error) {
	p := entity.ItemPatch{
		LabID:        r.LabID,
		Name:         r.Name,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		Location:     r.Location,
		Description:  r.Description,
		Supplier:     r.Supplier,
		SerialNumber: r.SerialNumber,
		Image:        r.Image,
	}
	if r.Category != nil {
		c := entity.ItemCategory(*r.Category)
		p.Category = &c
	}
	if r.Status != nil {
		s := entity.ItemStatus(*r.Status)
		p.Status = &s
	}
	if r.AcquisitionDate != nil {
		d, err := ParseDate(*r.AcquisitionDate, loc)
		if err != nil {
			return p, err
		}
		p.AcquisitionDate = d
	}
	return p, nil
}

// ReportDamageRequest body para POST /api/items/:id/damage.
type ReportDamageRequest struct {
	Description string `json:"description" validate:"max=500"`
}

// ImportResponse resultado de POST /api/items/import.
type ImportResponse struct {
	Imported  int  `json:"imported"`
	Persisted bool `json:"persisted"`
}
