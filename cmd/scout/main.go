// Command scout is the Scoracle Scout command-line tool. It works directly on
// the configured record store, without the API server.
//
// Usage:
//
//	scout import scouting_data_1718000000000.json tablet2.json
//	scout export --out backup.json
//	scout leaderboard --sort avgAutoPoints --exclude-defense
//	scout team 118
//	scout compare 118 254 1114
//	scout records --search 118
//	scout qr 6f1c... --out record.png
//	scout scan payload.txt
//	scout clear --yes
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/maintenance"
	"github.com/albapepper/scoracle-scout/internal/match"
	"github.com/albapepper/scoracle-scout/internal/store"
	"github.com/albapepper/scoracle-scout/internal/transfer"
)

// Logs go to stderr so command output can be piped.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scout",
		Short:        "Scoracle Scout record and leaderboard CLI",
		SilenceUsage: true,
	}

	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(recordsCmd())
	root.AddCommand(qrCmd())
	root.AddCommand(scanCmd())
	root.AddCommand(clearCmd())
	root.AddCommand(leaderboardCmd())
	root.AddCommand(teamCmd())
	root.AddCommand(compareCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// import / export
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Merge exported JSON files into the store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				result := transfer.ImportFiles(ctx, st, args, workers, logger)
				logger.Info("Import finished", "summary", result.Summary())
				for _, e := range result.Total.Errors {
					logger.Warn("import error", "error", e)
				}
				if result.Failed > 0 {
					return fmt.Errorf("%d of %d files failed", result.Failed, len(args))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent file decoders")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every record to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				if out == "-" {
					_, err := transfer.Export(ctx, st, cmd.OutOrStdout())
					return err
				}
				if out == "" {
					out = transfer.ExportFilename(time.Now())
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				n, err := transfer.Export(ctx, st, f)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
				logger.Info("Export finished", "file", out, "records", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default scouting_data_<ms>.json, - for stdout)")
	return cmd
}

// --------------------------------------------------------------------------
// records
// --------------------------------------------------------------------------

func recordsCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "records",
		Short: "List stored records in capture order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				snap, err := st.Snapshot(ctx)
				if err != nil {
					return err
				}
				return printRecords(cmd.OutOrStdout(), match.Search(snap.Records, search))
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Team or match number substring")
	return cmd
}

func printRecords(w io.Writer, records []match.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMATCH\tTEAM\tALLIANCE\tRECORDED")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Label(), r.Team(), r.Match.Alliance, r.Time().UTC().Format(time.RFC3339))
	}
	return tw.Flush()
}

// --------------------------------------------------------------------------
// qr / scan
// --------------------------------------------------------------------------

func qrCmd() *cobra.Command {
	var (
		out  string
		text bool
		size int
	)
	cmd := &cobra.Command{
		Use:   "qr <id>",
		Short: "Render a record as a QR code PNG or print its payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				r, err := st.Get(ctx, args[0])
				if err != nil {
					return err
				}
				if text {
					payload, err := transfer.EncodePayload(r)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
					return err
				}

				png, err := transfer.QRCode(r, size)
				if err != nil {
					return err
				}
				if out == "" {
					out = r.ID + ".png"
				}
				if err := os.WriteFile(out, png, 0o644); err != nil {
					return err
				}
				logger.Info("QR code written", "id", r.ID, "file", out, "size", size)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "PNG output file (default <id>.png)")
	cmd.Flags().BoolVar(&text, "text", false, "Print the payload text instead of rendering")
	cmd.Flags().IntVar(&size, "size", transfer.QRSize, "PNG edge length in pixels")
	return cmd
}

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan <payload-file>",
		Short: "Decode a scanned QR payload and save the record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return err
				}
				r, err := transfer.DecodePayload(data)
				if err != nil {
					return err
				}
				if err := r.Validate(); err != nil {
					return err
				}
				saved, err := st.Upsert(ctx, r)
				if err != nil {
					return err
				}
				logger.Info("Record saved", "id", saved.ID, "team", saved.Team(), "match", saved.Label())
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// clear
// --------------------------------------------------------------------------

func clearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record (backs up to BACKUP_DIR first when set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			return runStore(func(ctx context.Context, cfg *config.Config, st store.Store) error {
				if err := maintenance.BackupBeforeClear(ctx, st, cfg.BackupDir, logger); err != nil {
					return err
				}
				n, err := st.Clear(ctx)
				if err != nil {
					return err
				}
				logger.Info("Records cleared", "count", n)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runStore handles config loading, opening the store, and context cancellation.
func runStore(fn func(ctx context.Context, cfg *config.Config, st store.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	st, pool, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	if pool != nil {
		defer pool.Close()
	}

	return fn(ctx, cfg, st)
}
