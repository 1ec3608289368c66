package entity

import "time"

// ItemStatus estado derivado de un ítem. Los valores son los persistidos en la tabla items.
type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "Tersedia"
	ItemStatusLowStock    ItemStatus = "Stok Rendah"
	ItemStatusOutOfStock  ItemStatus = "Stok Habis"
	ItemStatusMaintenance ItemStatus = "Maintenance"
	ItemStatusBorrowed    ItemStatus = "Dipinjam"
)

// ItemStatuses en el orden en que se muestran en el dashboard.
var ItemStatuses = []ItemStatus{
	ItemStatusAvailable, ItemStatusLowStock, ItemStatusOutOfStock, ItemStatusMaintenance, ItemStatusBorrowed,
}

// Valid indica si el estado es uno de los conocidos.
func (s ItemStatus) Valid() bool {
	for _, v := range ItemStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ItemCategory categoría de un ítem de laboratorio.
type ItemCategory string

const (
	CategoryEquipment   ItemCategory = "Peralatan"
	CategoryTool        ItemCategory = "Alat"
	CategoryMaterial    ItemCategory = "Material"
	CategoryMachinery   ItemCategory = "Mesin"
	CategoryElectronics ItemCategory = "Elektronik"
	CategorySafety      ItemCategory = "Keselamatan"
	CategoryChemical    ItemCategory = "Bahan Kimia"
)

// Categories lista cerrada de categorías.
var Categories = []ItemCategory{
	CategoryEquipment, CategoryTool, CategoryMaterial, CategoryMachinery,
	CategoryElectronics, CategorySafety, CategoryChemical,
}

// ParseCategory devuelve la categoría si s es un valor conocido.
func ParseCategory(s string) (ItemCategory, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Item representa el stock de un equipo o material dentro de un laboratorio.
// LabID es una referencia no propietaria al Lab.
type Item struct {
	ID              string
	LabID           string
	Name            string
	Category        ItemCategory
	Quantity        int
	Unit            string
	Location        string
	Status          ItemStatus
	Description     string
	Supplier        string
	SerialNumber    string
	AcquisitionDate *time.Time
	Image           string
}

// NewItem campos de un ítem antes de asignarle identificador (addItem / importItems).
type NewItem struct {
	LabID           string
	Name            string
	Category        ItemCategory
	Quantity        int
	Unit            string
	Location        string
	Status          ItemStatus // opcional; solo se respeta Maintenance
	Description     string
	Supplier        string
	SerialNumber    string
	AcquisitionDate *time.Time
	Image           string
}

// ItemPatch actualización parcial: solo se aplican los campos no nulos.
type ItemPatch struct {
	LabID           *string
	Name            *string
	Category        *ItemCategory
	Quantity        *int
	Unit            *string
	Location        *string
	Status          *ItemStatus
	Description     *string
	Supplier        *string
	SerialNumber    *string
	AcquisitionDate *time.Time
	Image           *string
}

// IsEmpty indica si el patch no modifica nada.
func (p ItemPatch) IsEmpty() bool {
	return p.LabID == nil && p.Name == nil && p.Category == nil && p.Quantity == nil &&
		p.Unit == nil && p.Location == nil && p.Status == nil && p.Description == nil &&
		p.Supplier == nil && p.SerialNumber == nil && p.AcquisitionDate == nil && p.Image == nil
}

// Apply mezcla el patch sobre el ítem.
func (p ItemPatch) Apply(it *Item) {
	if p.LabID != nil {
		it.LabID = *p.LabID
	}
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Category != nil {
		it.Category = *p.Category
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		it.Unit = *p.Unit
	}
	if p.Location != nil {
		it.Location = *p.Location
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Supplier != nil {
		it.Supplier = *p.Supplier
	}
	if p.SerialNumber != nil {
		it.SerialNumber = *p.SerialNumber
	}
	if p.AcquisitionDate != nil {
		d := *p.AcquisitionDate
		it.AcquisitionDate = &d
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
}

// Clone copia profunda (AcquisitionDate es puntero).
func (it *Item) Clone() *Item {
	c := *it
	if it.AcquisitionDate != nil {
		d := *it.AcquisitionDate
		c.AcquisitionDate = &d
	}
	return &c
}
