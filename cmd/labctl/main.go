// labctl tareas de mantenimiento: migraciones, datos de demostración, importación y exportación.
//
// Uso:
//
//	labctl migrate
//	labctl seed
//	labctl import inventario.csv --encoding windows-1252
//	labctl export items --format xlsx --out inventario.xlsx
//	labctl export loans --format pdf --status Terlambat
//	labctl template --out plantilla.xlsx
//
// Lee la misma configuración que el API (DB_DRIVER, DATABASE_URL, SQLITE_PATH, ...).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/labinventaris/pkg/config"
	"github.com/jhoicas/labinventaris/pkg/logger"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd arma el árbol de comandos. load se inyecta para poder testear sin variables de entorno.
func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	var verbose bool
	env := &cliEnv{load: load}

	root := &cobra.Command{
		Use:           "labctl",
		Short:         "Herramientas de mantenimiento del inventario de laboratorio",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := env.load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			level := cfg.App.LogLevel
			if verbose {
				level = "debug"
			}
			env.cfg = cfg
			env.log = logger.New(logger.Config{Env: "development", Level: level, Out: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log en nivel debug")

	root.AddCommand(
		newMigrateCmd(env),
		newSeedCmd(env),
		newImportCmd(env),
		newExportCmd(env),
		newTemplateCmd(env),
	)
	return root
}
