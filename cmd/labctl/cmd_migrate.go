package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/labinventaris/internal/bootstrap"
	"github.com/jhoicas/labinventaris/internal/infrastructure/seed"
)

func newMigrateCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := env.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			applied, err := s.backend.Migrate(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrar: %w", err)
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones pendientes")
				return nil
			}
			for _, name := range applied {
				fmt.Fprintln(cmd.OutOrStdout(), "aplicada:", name)
			}
			return nil
		},
	}
}

func newSeedCmd(env *cliEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Carga los datos de demostración (las filas existentes se omiten)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := bootstrap.Session(env.cfg)
			if err != nil {
				return err
			}
			s, err := env.open(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := seed.Apply(cmd.Context(), s.backend.Gateway, seed.Demo(sess.Today(time.Now())))
			if err != nil {
				return err
			}
			env.log.Info().
				Int("labs", res.Labs).
				Int("items", res.Items).
				Int("loans", res.Loans).
				Int("logs", res.Logs).
				Int("notifications", res.Notifications).
				Msg("seed aplicado")
			fmt.Fprintf(cmd.OutOrStdout(), "labs=%d items=%d loans=%d logs=%d notifications=%d\n",
				res.Labs, res.Items, res.Loans, res.Logs, res.Notifications)
			return nil
		},
	}
}
