package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"docregistry/internal/app"
	"docregistry/internal/catalog"
	"docregistry/internal/config"
	"docregistry/internal/database"
	"docregistry/internal/logging"
	"docregistry/internal/model"
	"docregistry/internal/registry"
)

// session is a registry opened for the duration of one command.
type session struct {
	reg   *registry.Registry
	close func() error
}

func loadConfig() (*config.AppConfig, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openSession(ctx context.Context, log *zap.Logger) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	b, err := app.OpenBackend(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	reg, err := app.OpenRegistry(ctx, cfg, b, log)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return &session{reg: reg, close: b.Close}, nil
}

func newLogger(cmd *cobra.Command, level string) *zap.Logger {
	return logging.NewWithWriter(level, cmd.ErrOrStderr())
}

func migrateCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the postgres schema and seed the reference tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Registry.Backend != config.BackendPostgres {
				return fmt.Errorf("migrate applies to the %s backend, configured backend is %s",
					config.BackendPostgres, cfg.Registry.Backend)
			}
			seed, err := catalog.Load(cfg.Registry.CatalogSeedFile)
			if err != nil {
				return err
			}
			db, err := database.Connect(cmd.Context(), cfg.Database, newLogger(cmd, *logLevel), seed)
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func nextCmd(logLevel *string) *cobra.Command {
	var docType string
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Preview the number the next registration of a type would receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := model.DocumentType(docType)
			if !t.Valid() {
				return fmt.Errorf("%w: %q", registry.ErrInvalidType, docType)
			}
			s, err := openSession(cmd.Context(), newLogger(cmd, *logLevel))
			if err != nil {
				return err
			}
			defer s.close()

			number, err := s.reg.PreviewNumber(cmd.Context(), t)
			if err != nil {
				return err
			}
			if number == "" {
				number = "(assigned by sender)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", s.reg.PreviewOrder(), number)
			return nil
		},
	}
	cmd.Flags().StringVarP(&docType, "type", "t", "", "Document type (Entrada, Salida, Interno)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func searchCmd(logLevel *string) *cobra.Command {
	var (
		asJSON bool
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search the document log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return errors.New("limit must not be negative")
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			s, err := openSession(cmd.Context(), newLogger(cmd, *logLevel))
			if err != nil {
				return err
			}
			defer s.close()

			docs := s.reg.Search(term)
			if limit > 0 && len(docs) > limit {
				docs = docs[:limit]
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), docs)
			}
			return writeTable(cmd.OutOrStdout(), docs)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print documents as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of documents to print (0 for all)")
	return cmd
}

func countersCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "counters",
		Short: "Print the counter state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), newLogger(cmd, *logLevel))
			if err != nil {
				return err
			}
			defer s.close()
			return writeJSON(cmd.OutOrStdout(), s.reg.Counters())
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, docs []model.Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tREGISTERED\tNUMBER\tORIGIN\tDESTINATION\tSUMMARY")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Type, d.RegistrationDate, d.DocNumber, d.Origin, d.Destination, d.Summary)
	}
	return tw.Flush()
}
