package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/spacesync/internal/catalog"
	"github.com/roach88/spacesync/internal/component"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	Source bool
}

// CatalogKey is one key in the catalog command's output.
type CatalogKey struct {
	Key      uint32 `json:"key"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Reserved bool   `json:"reserved,omitempty"`
}

// CatalogKind is the declared layout and verification outcome of one kind.
type CatalogKind struct {
	Name     string       `json:"name"`
	Keys     []CatalogKey `json:"keys"`
	Verified bool         `json:"verified"`
	Problems []string     `json:"problems,omitempty"`
}

// CatalogResult is the catalog command's output.
type CatalogResult struct {
	Kinds    []CatalogKind `json:"kinds"`
	Verified bool          `json:"verified"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog [file.cue]",
		Short: "Print and verify the component key catalogue",
		Long: `Print the declared key layout of every component kind and verify it
against the component schemas compiled into this binary.

Without an argument the embedded catalogue is used. A CUE file argument
verifies that file instead, which is useful before changing the catalogue.

Exit codes:
  0 - Catalogue and schemas agree
  1 - One or more kinds diverge from their schema
  2 - Command error (file not found, CUE error)

Examples:
  spacesync catalog
  spacesync catalog ./catalog.cue --format json
  spacesync catalog --source`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Source, "source", false, "print the catalogue source and exit")

	return cmd
}

func runCatalog(opts *CatalogOptions, args []string, cmd *cobra.Command) error {
	src := catalog.Source()
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read catalogue", err)
		}
		src = data
	}
	if opts.Source {
		_, err := cmd.OutOrStdout().Write(src)
		return err
	}

	cat, err := catalog.Load(src)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load catalogue", err)
	}

	result := verifyCatalog(cat)
	out := opts.formatter(cmd)
	if opts.Format == "json" {
		if result.Verified {
			return out.Success(result)
		}
		if err := out.Failure(CodeCatalog, "catalogue diverges from component schemas", result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "catalogue verification failed")
	}

	w := cmd.OutOrStdout()
	for _, k := range result.Kinds {
		status := "✓"
		if !k.Verified {
			status = "✗"
		}
		fmt.Fprintf(w, "%s %s (%d keys)\n", status, k.Name, len(k.Keys))
		if opts.Verbose {
			for _, key := range k.Keys {
				fmt.Fprintf(w, "  %2d %-24s %s\n", key.Key, key.Name, key.Type)
			}
		}
		for _, p := range k.Problems {
			fmt.Fprintf(w, "  %s\n", p)
		}
	}
	if result.Verified {
		return nil
	}
	return NewExitError(ExitFailure, "catalogue verification failed")
}

// verifyCatalog checks every component kind against cat. Kinds declared in
// cat but unknown to this binary are reported as problems too.
func verifyCatalog(cat *catalog.Catalog) CatalogResult {
	result := CatalogResult{Verified: true}
	seen := map[string]bool{}

	for _, k := range component.Kinds() {
		schema, _ := component.Schema(k)
		ck := CatalogKind{Name: k.String(), Keys: []CatalogKey{}, Verified: true}
		seen[ck.Name] = true
		if decl, ok := cat.Kind(ck.Name); ok {
			ck.Keys = catalogKeys(decl)
		}
		if err := cat.Verify(ck.Name, schema); err != nil {
			ck.Verified = false
			var mismatch *catalog.MismatchError
			if errors.As(err, &mismatch) {
				for _, p := range mismatch.Problems {
					ck.Problems = append(ck.Problems, fmt.Sprintf("key %d: %s", p.Key, p.Message))
				}
			} else {
				ck.Problems = append(ck.Problems, err.Error())
			}
		}
		result.Kinds = append(result.Kinds, ck)
	}

	for _, decl := range cat.Kinds() {
		if seen[decl.Name] {
			continue
		}
		result.Kinds = append(result.Kinds, CatalogKind{
			Name:     decl.Name,
			Keys:     catalogKeys(decl),
			Problems: []string{"kind has no component implementation"},
		})
	}

	for _, k := range result.Kinds {
		if !k.Verified {
			result.Verified = false
		}
	}
	return result
}

func catalogKeys(decl catalog.Kind) []CatalogKey {
	keys := make([]CatalogKey, 0, len(decl.Keys))
	for _, d := range decl.Keys {
		typ := d.Type.String()
		if d.Reserved {
			typ = "None"
		}
		keys = append(keys, CatalogKey{Key: uint32(d.Key), Name: d.Name, Type: typ, Reserved: d.Reserved})
	}
	return keys
}
