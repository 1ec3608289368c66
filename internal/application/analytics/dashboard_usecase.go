// Package analytics contiene el resumen del dashboard del laboratorio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/labinventaris/internal/application/dto"
	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/domain/entity"
	domaininv "github.com/jhoicas/labinventaris/internal/domain/inventory"
)

const dashboardRecentLogs = 5 // entradas de bitácora en el widget del dashboard

// StateSource lo que el dashboard necesita del store.
type StateSource interface {
	Snapshot() inventory.Snapshot
	Now() time.Time
	Session() inventory.Session
}

// DashboardUseCase genera el resumen del dashboard a partir del estado en memoria.
// No consulta el gateway: las cifras reflejan lo que ve el store, incluidos cambios no persistidos.
type DashboardUseCase struct {
	state StateSource
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(state StateSource) *DashboardUseCase {
	return &DashboardUseCase{state: state}
}

// GetSummary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := uc.state.Snapshot()
	now := uc.state.Now()

	out := &dto.DashboardSummaryDTO{
		TotalItems:      len(snap.Items),
		StatusCounts:    make([]dto.StatusCountDTO, 0, len(entity.ItemStatuses)),
		LabDistribution: make([]dto.LabDistributionDTO, 0, len(snap.Labs)),
		DateLabel:       dateLabel(now.In(uc.state.Session().Location)),
	}

	byStatus := make(map[entity.ItemStatus]int, len(entity.ItemStatuses))
	type labTotals struct{ items, units int }
	byLab := make(map[string]labTotals, len(snap.Labs))
	for _, it := range snap.Items {
		out.TotalUnits += it.Quantity
		byStatus[it.Status]++
		t := byLab[it.LabID]
		t.items++
		t.units += it.Quantity
		byLab[it.LabID] = t
	}
	for _, st := range entity.ItemStatuses {
		out.StatusCounts = append(out.StatusCounts, dto.StatusCountDTO{Status: string(st), Count: byStatus[st]})
	}
	out.MaintenanceItems = byStatus[entity.ItemStatusMaintenance]

	// Orden de los laboratorios tal como se cargaron.
	for _, l := range snap.Labs {
		t := byLab[l.ID]
		out.LabDistribution = append(out.LabDistribution, dto.LabDistributionDTO{
			LabID: l.ID,
			Name:  l.Name,
			Items: t.items,
			Units: t.units,
		})
	}

	for _, l := range snap.Loans {
		if l.Status != entity.LoanStatusReturned {
			out.ActiveLoans++
		}
		if domaininv.LoanIsOverdue(l.DueDate, l.Status, now) {
			out.OverdueLoans++
		}
	}

	for _, n := range snap.Notifications {
		if !n.Read {
			out.UnreadNotifs++
		}
	}

	recent := snap.Logs
	if len(recent) > dashboardRecentLogs {
		recent = recent[:dashboardRecentLogs]
	}
	out.RecentLogs = dto.LogsFromEntities(recent)

	return out, nil
}

// dateLabel devuelve la fecha legible en indonesio, ej: "14 Maret 2024".
func dateLabel(t time.Time) string {
	months := [...]string{
		"Januari", "Februari", "Maret", "April", "Mei", "Juni",
		"Juli", "Agustus", "September", "Oktober", "November", "Desember",
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}
