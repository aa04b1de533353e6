package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ecoacustica/internal/api"
	"ecoacustica/internal/pipeline"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var (
		tags      []string
		notes     string
		mode      string
		mediaType string
		duration  float64
		latitude  float64
		longitude float64
	)

	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Run a recording through the processing pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			req := api.SubmitRecordingRequest{
				Config:    cfg,
				Logger:    ctx.logger(),
				Path:      args[0],
				MediaType: mediaType,
				Mode:      mode,
				Duration:  duration,
				Tags:      tags,
				Notes:     notes,
			}
			if cmd.Flags().Changed("lat") {
				req.Latitude = &latitude
			}
			if cmd.Flags().Changed("lng") {
				req.Longitude = &longitude
			}

			out := cmd.OutOrStdout()
			progress := newProgressPrinter(out)
			req.Progress = progress.update

			result, err := api.SubmitRecording(cmd.Context(), req)
			progress.finish()
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Processed %s as %s\n", result.Record.FileName, result.RecordID)
			for _, analysis := range result.Record.AnalysisResults {
				fmt.Fprintf(out, "  %s (%s) %.1f%%\n", analysis.CommonName, analysis.Species, analysis.Confidence)
			}
			if result.Record.Location != nil && result.Record.Location.Address != "" {
				fmt.Fprintf(out, "  Location: %s\n", result.Record.Location.Address)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tags to attach to the recording")
	cmd.Flags().StringVar(&notes, "notes", "", "Field notes to attach")
	cmd.Flags().StringVar(&mode, "mode", "upload", "Submission mode (upload, identification)")
	cmd.Flags().StringVar(&mediaType, "media-type", "", "Declared media type (detected from the extension when empty)")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Recording length in seconds")
	cmd.Flags().Float64Var(&latitude, "lat", 0, "Recording site latitude")
	cmd.Flags().Float64Var(&longitude, "lng", 0, "Recording site longitude")
	return cmd
}

// progressPrinter rewrites one terminal line per snapshot. On non-terminal
// writers it prints each stage transition once instead.
type progressPrinter struct {
	out       io.Writer
	terminal  bool
	lastStage pipeline.State
	active    bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	terminal := false
	if file, ok := out.(*os.File); ok {
		fd := file.Fd()
		terminal = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &progressPrinter{out: out, terminal: terminal}
}

func (p *progressPrinter) update(snap pipeline.Snapshot) {
	if !snap.State.Active() && snap.State != pipeline.StateDone {
		return
	}
	if p.terminal {
		fmt.Fprintf(p.out, "\r%-24s %3.0f%%", stageLabel(snap.State), snap.Progress)
		p.active = true
		return
	}
	if snap.State != p.lastStage {
		fmt.Fprintf(p.out, "%s...\n", stageLabel(snap.State))
		p.lastStage = snap.State
	}
}

func (p *progressPrinter) finish() {
	if p.terminal && p.active {
		fmt.Fprintln(p.out)
	}
}

func stageLabel(state pipeline.State) string {
	switch state {
	case pipeline.StateUploading:
		return "Uploading"
	case pipeline.StateGeneratingSpectrogram:
		return "Generating spectrogram"
	case pipeline.StateAnalyzing:
		return "Analyzing"
	case pipeline.StateIdentifying:
		return "Identifying species"
	case pipeline.StateDone:
		return "Done"
	default:
		return string(state)
	}
}
