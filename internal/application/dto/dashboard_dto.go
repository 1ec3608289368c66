package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalUnits       int                   `json:"total_units"`       // suma de cantidades de todos los ítems
	TotalItems       int                   `json:"total_items"`       // cantidad de registros de ítem
	StatusCounts     []StatusCountDTO      `json:"status_counts"`     // en el orden de entity.ItemStatuses
	MaintenanceItems int                   `json:"maintenance_items"` // ítems que requieren mantenimiento
	LabDistribution  []LabDistributionDTO  `json:"lab_distribution"`
	ActiveLoans      int                   `json:"active_loans"`  // préstamos no devueltos
	OverdueLoans     int                   `json:"overdue_loans"` // calculado al momento de la consulta
	UnreadNotifs     int                   `json:"unread_notifications"`
	RecentLogs       []ActivityLogResponse `json:"recent_logs"`

	DateLabel string `json:"date_label"` // ej: "14 Maret 2024"
}

// StatusCountDTO cantidad de ítems en un estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// LabDistributionDTO ítems por laboratorio para el gráfico del dashboard.
type LabDistributionDTO struct {
	LabID string `json:"lab_id"`
	Name  string `json:"name"`
	Items int    `json:"items"`
	Units int    `json:"units"`
}
