package main

import (
	"context"

	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/application/transfer"
	"github.com/jhoicas/labinventaris/internal/bootstrap"
	infrapdf "github.com/jhoicas/labinventaris/internal/infrastructure/pdf"
	"github.com/jhoicas/labinventaris/internal/infrastructure/persistence"
	"github.com/jhoicas/labinventaris/pkg/config"
	"github.com/jhoicas/labinventaris/pkg/logger"
)

// cliEnv estado compartido por los subcomandos; cfg y log se completan en PersistentPreRunE.
type cliEnv struct {
	load func() (*config.Config, error)
	cfg  *config.Config
	log  *logger.Logger
}

// session abre el backend configurado y, si withStore, construye y carga el store.
type session struct {
	backend  *persistence.Backend
	store    *inventory.Store
	transfer *transfer.Service
}

func (e *cliEnv) open(ctx context.Context, withStore bool) (*session, error) {
	backend, err := persistence.Open(ctx, e.cfg.DB, e.log.Component("persistence"))
	if err != nil {
		return nil, err
	}
	s := &session{backend: backend}
	if !withStore {
		return s, nil
	}
	store, err := bootstrap.NewStore(backend.Gateway, e.cfg, e.log.Component("store"), nil)
	if err != nil {
		backend.Close()
		return nil, err
	}
	if err := store.Load(ctx); err != nil {
		backend.Close()
		return nil, err
	}
	s.store = store
	s.transfer = transfer.NewService(store, transfer.NewExporter(infrapdf.NewMarotoReportGenerator(e.cfg.App.Name)))
	return s, nil
}

func (s *session) Close() { s.backend.Close() }
