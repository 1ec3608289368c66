package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jhoicas/labinventaris/internal/application/inventory"
	"github.com/jhoicas/labinventaris/internal/application/transfer"
)

func newImportCmd(env *cliEnv) *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "import <archivo.csv|archivo.xlsx>",
		Short: "Importa ítems desde CSV o XLSX como un solo lote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := env.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.transfer.Import(cmd.Context(), args[0], f, encoding)
			if err != nil {
				return fmt.Errorf("importar %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "importados: %d\n", res.Rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "", "codificación del CSV (windows-1252, iso-8859-1); vacío = UTF-8")
	return cmd
}

func newExportCmd(env *cliEnv) *cobra.Command {
	var format, out, status string
	cmd := &cobra.Command{
		Use:       "export <items|loans>",
		Short:     "Exporta el inventario o los préstamos a CSV, XLSX o PDF",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"items", "loans"},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := transfer.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := env.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			var (
				buf  bytes.Buffer
				name string
			)
			if args[0] == "items" {
				name, err = s.transfer.ExportItems(cmd.Context(), &buf, f)
			} else {
				name, err = s.transfer.ExportLoans(cmd.Context(), &buf, f, inventory.LoanFilter{Status: status})
			}
			if err != nil {
				return err
			}
			target := name
			if out != "" {
				target = out
				if fi, err := os.Stat(out); err == nil && fi.IsDir() {
					target = filepath.Join(out, name)
				}
			}
			if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "escrito:", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv | xlsx | pdf")
	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo o directorio de salida (por defecto el nombre sugerido)")
	cmd.Flags().StringVar(&status, "status", "", "solo loans: Dipinjam | Dikembalikan | Terlambat")
	return cmd
}

func newTemplateCmd(env *cliEnv) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Genera la plantilla XLSX de importación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := env.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			var buf bytes.Buffer
			if err := s.transfer.Template(&buf); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "escrito:", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", transfer.TemplateFilename, "archivo de salida")
	return cmd
}
