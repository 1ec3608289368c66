package entity

// Lab representa un laboratorio físico. Los ítems lo referencian por LabID.
type Lab struct {
	ID          string
	Name        string
	Location    string
	Description string
	Image       string
}

// LabPatch actualización parcial de un laboratorio.
type LabPatch struct {
	Name        *string
	Location    *string
	Description *string
	Image       *string
}

// Apply mezcla el patch sobre el laboratorio.
func (p LabPatch) Apply(l *Lab) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
}
