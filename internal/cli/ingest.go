package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/spacesync/internal/journal"
	"github.com/roach88/spacesync/internal/wire"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	Database string
	Strict   bool
}

// IngestFileResult is the outcome of ingesting one file.
type IngestFileResult struct {
	File      string `json:"file"`
	ID        string `json:"id"`
	Event     string `json:"event"`
	Inserted  bool   `json:"inserted"`
	Dropped   bool   `json:"dropped"`
	ErrorCode string `json:"error_code,omitempty"`
}

// IngestResult holds the overall ingest result.
type IngestResult struct {
	Session    string             `json:"session"`
	Files      []IngestFileResult `json:"files"`
	Inserted   int                `json:"inserted"`
	Duplicates int                `json:"duplicates"`
	Dropped    int                `json:"dropped"`
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Decode payloads and append them to the journal",
		Long: `Decode each payload file and append it to the journal together with
the record it decoded to. Payloads are stored as deterministic CBOR and
identified by content, so ingesting the same payload twice stores it once.

Dropped payloads are journaled as well, with a null record, so that replay
can confirm they are still dropped.

Exit codes:
  0 - All files ingested
  1 - A payload was dropped and --strict is set
  2 - Command error (unreadable file, journal not openable)

Examples:
  spacesync ingest --db ./spacesync.db payloads/*.cbor
  spacesync ingest payload.json --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.JournalPath, "path to SQLite journal")
	cmd.Flags().BoolVar(&opts.Strict, "strict", rootOpts.Config.Strict, "exit 1 when any payload is dropped")

	return cmd
}

func runIngest(opts *IngestOptions, files []string, cmd *cobra.Command) error {
	ctx := context.Background()
	log := opts.logger(cmd)
	out := opts.formatter(cmd)

	j, err := journal.Open(opts.Database, journal.WithLogger(log))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	result := IngestResult{Session: j.Session(), Files: make([]IngestFileResult, 0, len(files))}
	for _, file := range files {
		fr, err := ingestFile(ctx, j, file, log)
		if err != nil {
			return err
		}
		if fr.Inserted {
			result.Inserted++
		} else {
			result.Duplicates++
		}
		if fr.Dropped {
			result.Dropped++
		}
		result.Files = append(result.Files, fr)
	}

	if opts.Format == "json" {
		if err := out.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, fr := range result.Files {
			status := "✓"
			if fr.Dropped {
				status = "✗"
			}
			note := ""
			if !fr.Inserted {
				note = " (duplicate)"
			}
			fmt.Fprintf(w, "%s %s: %s %s%s\n", status, fr.File, displayName(fr.Event), shortID(fr.ID), note)
		}
		fmt.Fprintf(w, "Ingested %d payload(s): %d new, %d duplicate, %d dropped\n",
			len(result.Files), result.Inserted, result.Duplicates, result.Dropped)
	}

	if opts.Strict && result.Dropped > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d payload(s) dropped", result.Dropped))
	}
	return nil
}

func ingestFile(ctx context.Context, j *journal.Journal, file string, log *slog.Logger) (IngestFileResult, error) {
	payload, err := readPayload(file, log)
	if err != nil {
		return IngestFileResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", file), err)
	}
	data, err := wire.Marshal(payload)
	if err != nil {
		return IngestFileResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("failed to encode %s", file), err)
	}
	// Decode what the journal stores, so replay sees the same input.
	received, err := wire.Unmarshal(data)
	if err != nil {
		return IngestFileResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("failed to decode %s", file), err)
	}
	d, err := decodePayload(received, log)
	if err != nil {
		return IngestFileResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("failed to encode record for %s", file), err)
	}

	id := journal.PayloadID(data)
	inserted, err := j.Append(ctx, journal.Entry{
		ID:        id,
		EventName: d.Event,
		Payload:   data,
		Record:    d.Record,
	})
	if err != nil {
		return IngestFileResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("failed to journal %s", file), err)
	}

	return IngestFileResult{
		File:      file,
		ID:        id,
		Event:     d.Event,
		Inserted:  inserted,
		Dropped:   d.Err != nil,
		ErrorCode: d.errorCode(),
	}, nil
}

// shortID abbreviates a payload ID for text output.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
