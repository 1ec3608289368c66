package dto

import "github.com/jhoicas/labinventaris/internal/application/inventory"

// StateResponse respuesta de GET /api/state: copia completa del store.
type StateResponse struct {
	Loading       bool                   `json:"loading"`
	Items         []ItemResponse         `json:"items"`
	Loans         []LoanResponse         `json:"loans"`
	Logs          []ActivityLogResponse  `json:"logs"`
	Labs          []LabResponse          `json:"labs"`
	Notifications []NotificationResponse `json:"notifications"`
	Profile       ProfileResponse        `json:"profile"`
}

// StateFromSnapshot arma la respuesta. loans ya trae el vencimiento calculado.
func StateFromSnapshot(s inventory.Snapshot, loans []inventory.LoanView) StateResponse {
	perLab := make(map[string]int, len(s.Labs))
	for _, it := range s.Items {
		perLab[it.LabID]++
	}
	labs := make([]LabResponse, 0, len(s.Labs))
	for _, l := range s.Labs {
		labs = append(labs, LabFromEntity(l, perLab[l.ID]))
	}
	return StateResponse{
		Loading:       s.Loading,
		Items:         ItemsFromEntities(s.Items),
		Loans:         LoansFromViews(loans),
		Logs:          LogsFromEntities(s.Logs),
		Labs:          labs,
		Notifications: NotificationsFromEntities(s.Notifications),
		Profile:       ProfileFromEntity(s.Profile),
	}
}

// UploadResponse respuesta de POST /api/uploads.
type UploadResponse struct {
	URL  string `json:"url"`
	Key  string `json:"key"`
	Size int64  `json:"size"`
}
