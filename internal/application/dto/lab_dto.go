package dto

import "github.com/jhoicas/labinventaris/internal/domain/entity"

// LabResponse laboratorio.
type LabResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ItemCount   int    `json:"item_count"`
}

// LabDetailResponse laboratorio con sus ítems.
type LabDetailResponse struct {
	LabResponse
	Items []ItemResponse `json:"items"`
}

// LabFromEntity mapea la entidad al DTO.
func LabFromEntity(l entity.Lab, itemCount int) LabResponse {
	return LabResponse{
		ID:          l.ID,
		Name:        l.Name,
		Location:    l.Location,
		Description: l.Description,
		Image:       l.Image,
		ItemCount:   itemCount,
	}
}

// UpdateLabRequest body para PATCH /api/labs/:id.
type UpdateLabRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// ToPatch convierte el request a entity.LabPatch.
func (r UpdateLabRequest) ToPatch() entity.LabPatch {
	return entity.LabPatch{Name: r.Name, Location: r.Location, Description: r.Description, Image: r.Image}
}
