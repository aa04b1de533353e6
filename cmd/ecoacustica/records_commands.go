package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ecoacustica/internal/api"
	"ecoacustica/internal/records"
)

func newRecordsCommand(ctx *commandContext) *cobra.Command {
	recordsCmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect and manage the recording collection",
	}

	recordsCmd.AddCommand(newRecordsListCommand(ctx))
	recordsCmd.AddCommand(newRecordsShowCommand(ctx))
	recordsCmd.AddCommand(newRecordsTagCommand(ctx))
	recordsCmd.AddCommand(newRecordsNoteCommand(ctx))
	recordsCmd.AddCommand(newRecordsDeleteCommand(ctx))
	recordsCmd.AddCommand(newRecordsExportCommand(ctx))
	recordsCmd.AddCommand(newRecordsStatsCommand(ctx))

	return recordsCmd
}

func addQueryFlags(cmd *cobra.Command, spec *api.QuerySpec) {
	cmd.Flags().StringVar(&spec.Search, "search", "", "Substring match on file name, tags, and notes")
	cmd.Flags().StringVar(&spec.Status, "status", "all", "Filter by status (all, processing, completed, error)")
	cmd.Flags().StringVar(&spec.SortBy, "sort", "date", "Sort key (date, name, size)")
	cmd.Flags().StringVar(&spec.Order, "order", "desc", "Sort direction (asc, desc)")
}

func newRecordsListCommand(ctx *commandContext) *cobra.Command {
	var spec api.QuerySpec
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings in the active collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.ListRecords(cmd.Context(), api.ListRecordsRequest{
				Config: cfg,
				Logger: ctx.logger(),
				Query:  spec,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result.Records)
			}

			out := cmd.OutOrStdout()
			if len(result.Records) == 0 {
				fmt.Fprintln(out, "No recordings match")
				return nil
			}
			rows := make([][]string, 0, len(result.Records))
			for _, record := range result.Records {
				rows = append(rows, []string{
					record.ID,
					record.FileName,
					record.UploadDate.Local().Format("2006-01-02 15:04"),
					humanize.IBytes(uint64(record.FileSize)),
					string(record.Status),
					strings.Join(record.Tags, ", "),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "FILE", "UPLOADED", "SIZE", "STATUS", "TAGS"},
				rows, 4,
			))
			fmt.Fprintf(out, "%d recording(s)\n", len(result.Records))
			return nil
		},
	}

	addQueryFlags(cmd, &spec)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newRecordsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recording in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.ShowRecord(cmd.Context(), api.ShowRecordRequest{
				Config: cfg,
				Logger: ctx.logger(),
				ID:     args[0],
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result.Record)
			}
			printRecordDetail(cmd, result.Record)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func printRecordDetail(cmd *cobra.Command, record records.AudioRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", record.ID)
	fmt.Fprintf(out, "File:      %s\n", record.FileName)
	fmt.Fprintf(out, "Uploaded:  %s\n", record.UploadDate.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Size:      %s\n", humanize.IBytes(uint64(record.FileSize)))
	if record.Duration > 0 {
		fmt.Fprintf(out, "Duration:  %.1fs\n", record.Duration)
	}
	fmt.Fprintf(out, "Status:    %s\n", record.Status)
	if len(record.Tags) > 0 {
		fmt.Fprintf(out, "Tags:      %s\n", strings.Join(record.Tags, ", "))
	}
	if record.Notes != "" {
		fmt.Fprintf(out, "Notes:     %s\n", record.Notes)
	}
	if record.Location != nil {
		fmt.Fprintf(out, "Location:  %.4f, %.4f", record.Location.Lat, record.Location.Lng)
		if record.Location.Address != "" {
			fmt.Fprintf(out, " (%s)", record.Location.Address)
		}
		fmt.Fprintln(out)
		if record.Location.Ecosystem != "" {
			fmt.Fprintf(out, "Ecosystem: %s\n", record.Location.Ecosystem)
		}
	}
	if len(record.AnalysisResults) > 0 {
		rows := make([][]string, 0, len(record.AnalysisResults))
		for _, result := range record.AnalysisResults {
			rows = append(rows, []string{
				result.Species,
				result.CommonName,
				fmt.Sprintf("%.1f%%", result.Confidence),
				result.Frequency,
				strings.Join(result.TimeDetected, ", "),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"SPECIES", "COMMON NAME", "CONFIDENCE", "FREQUENCY", "DETECTED AT"},
			rows, 3,
		))
	}
}

func newRecordsTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> [tag]...",
		Short: "Replace a recording's tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.TagRecord(cmd.Context(), api.TagRecordRequest{
				Config: cfg,
				Logger: ctx.logger(),
				ID:     args[0],
				Tags:   args[1:],
			})
			if err != nil {
				return err
			}
			if len(result.Record.Tags) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared tags on %s\n", result.Record.ID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s: %s\n", result.Record.ID, strings.Join(result.Record.Tags, ", "))
			return nil
		},
	}
}

func newRecordsNoteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "note <id> <text>",
		Short: "Replace a recording's notes",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.AnnotateRecord(cmd.Context(), api.AnnotateRecordRequest{
				Config: cfg,
				Logger: ctx.logger(),
				ID:     args[0],
				Notes:  strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated notes on %s\n", result.Record.ID)
			return nil
		},
	}
}

func newRecordsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a recording from the collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.DeleteRecord(cmd.Context(), api.DeleteRecordRequest{
				Config: cfg,
				Logger: ctx.logger(),
				ID:     args[0],
			})
			if err != nil {
				return err
			}
			if result.Deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Recording %s not found\n", args[0])
			}
			return nil
		},
	}
}

func newRecordsExportCommand(ctx *commandContext) *cobra.Command {
	var spec api.QuerySpec
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.ExportRecords(cmd.Context(), api.ExportRecordsRequest{
				Config: cfg,
				Logger: ctx.logger(),
				Path:   output,
				Query:  spec,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d recording(s) to %s\n", result.Count, result.Path)
			return nil
		},
	}

	addQueryFlags(cmd, &spec)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (defaults to a date-stamped name)")
	return cmd
}

func newRecordsStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the active collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.CollectionStats(cmd.Context(), api.CollectionStatsRequest{Config: cfg, Logger: ctx.logger()})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result.Stats)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Collection of %s\n", result.User.Name)
			fmt.Fprintf(out, "  Total:         %d\n", result.Stats.Total)
			fmt.Fprintf(out, "  Completed:     %d\n", result.Stats.Completed)
			fmt.Fprintf(out, "  Processing:    %d\n", result.Stats.Processing)
			fmt.Fprintf(out, "  Errors:        %d\n", result.Stats.Errors)
			fmt.Fprintf(out, "  With location: %d\n", result.Stats.WithLocation)
			fmt.Fprintf(out, "  Stored bytes:  %s\n", humanize.IBytes(uint64(result.Stats.TotalBytes)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
