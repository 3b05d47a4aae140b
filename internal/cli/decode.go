package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/spacesync/internal/wire"
)

// DecodeOptions holds flags for the decode command.
type DecodeOptions struct {
	*RootOptions
	Strict   bool
	Diagnose bool
}

// DecodeResult is the decode command's output.
type DecodeResult struct {
	File       string          `json:"file"`
	Event      string          `json:"event"`
	Dropped    bool            `json:"dropped"`
	ErrorCode  string          `json:"error_code,omitempty"`
	Error      string          `json:"error,omitempty"`
	Record     json.RawMessage `json:"record"`
	Diagnostic string          `json:"diagnostic,omitempty"`
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DecodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode one event payload",
		Long: `Decode an event payload file and print the resulting record.

The file may hold CBOR or JSON text; the encoding is chosen by extension
(.cbor, .json) or by sniffing the content.

Exit codes:
  0 - Payload decoded (or dropped without --strict)
  1 - Payload dropped and --strict is set
  2 - Command error (unreadable or unparseable file)

Examples:
  spacesync decode payload.cbor
  spacesync decode payload.json --format json
  spacesync decode payload.cbor --diagnose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Strict, "strict", rootOpts.Config.Strict, "exit 1 when the payload is dropped")
	cmd.Flags().BoolVar(&opts.Diagnose, "diagnose", false, "include CBOR diagnostic notation of the payload")

	return cmd
}

func runDecode(opts *DecodeOptions, path string, cmd *cobra.Command) error {
	log := opts.logger(cmd)
	out := opts.formatter(cmd)

	payload, err := readPayload(path, log)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", path), err)
	}

	d, err := decodePayload(payload, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode record", err)
	}

	result := DecodeResult{
		File:    path,
		Event:   d.Event,
		Dropped: d.Err != nil,
		Record:  d.Record,
	}
	if d.Err != nil {
		result.ErrorCode = d.errorCode()
		result.Error = d.Err.Error()
	}
	if opts.Diagnose {
		data, err := wire.Marshal(payload)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to encode payload", err)
		}
		if result.Diagnostic, err = wire.Diagnose(data); err != nil {
			return WrapExitError(ExitCommandError, "failed to diagnose payload", err)
		}
	}

	if opts.Format == "json" {
		if result.Dropped && opts.Strict {
			if err := out.Failure(CodeDecode, result.Error, result); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "payload dropped")
		}
		return out.Success(result)
	}

	w := cmd.OutOrStdout()
	if result.Diagnostic != "" {
		fmt.Fprintf(w, "payload: %s\n", result.Diagnostic)
	}
	if result.Dropped {
		fmt.Fprintf(w, "✗ dropped %s: %s\n", displayName(result.Event), result.Error)
		if opts.Strict {
			return NewExitError(ExitFailure, "payload dropped")
		}
		return nil
	}
	fmt.Fprintf(w, "✓ %s\n%s\n", result.Event, result.Record)
	return nil
}

func displayName(event string) string {
	if event == "" {
		return "payload"
	}
	return event
}
