package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/spacesync/internal/component"
	"github.com/roach88/spacesync/internal/mcs"
	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Kind string
}

// AppliedProperty is one property of the resulting component state.
type AppliedProperty struct {
	Key     property.Key     `json:"key"`
	Name    string           `json:"name"`
	Value   replicated.Value `json:"value"`
	Updated bool             `json:"updated"`
}

// ApplyResult is the apply command's output.
type ApplyResult struct {
	Kind       string            `json:"kind"`
	Updated    []property.Key    `json:"updated"`
	Properties []AppliedProperty `json:"properties"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply a component update to a default component",
		Long: `Apply a component update (a map of property key to Component Element)
to a freshly constructed component of the given kind and print the
resulting state.

Keys the kind does not declare, reserved keys, unsupported type tags and
values of the wrong type are skipped with a warning. A malformed element
rejects the whole update.

Exit codes:
  0 - Update applied
  2 - Command error (unknown kind, unreadable file, malformed update)

Examples:
  spacesync apply --kind Collision update.json
  spacesync apply --kind AnimatedModel update.cbor --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "component kind ("+strings.Join(kindNames(), "|")+")")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

func runApply(opts *ApplyOptions, path string, cmd *cobra.Command) error {
	log := opts.logger(cmd)

	kind, ok := component.ParseKind(opts.Kind)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown component kind %q: must be one of %v", opts.Kind, kindNames()))
	}
	store, _ := component.NewStore(kind, property.WithLogger(log))

	update, err := readPayload(path, log)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", path), err)
	}
	updated, err := mcs.ApplyComponentUpdate(store, update, log)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to apply update", err)
	}

	if updated == nil {
		updated = []property.Key{}
	}
	result := ApplyResult{Kind: kind.String(), Updated: updated}
	for _, entry := range store.Schema().Entries() {
		result.Properties = append(result.Properties, AppliedProperty{
			Key:     entry.Key,
			Name:    entry.Name,
			Value:   store.Get(entry.Key),
			Updated: slices.Contains(updated, entry.Key),
		})
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d propert%s updated\n", result.Kind, len(updated), plural(len(updated), "y", "ies"))
	for _, p := range result.Properties {
		marker := " "
		if p.Updated {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %2d %-24s %s\n", marker, p.Key, p.Name, formatValue(p.Value))
	}
	return nil
}

func kindNames() []string {
	names := make([]string, 0, len(component.Kinds()))
	for _, k := range component.Kinds() {
		names = append(names, k.String())
	}
	return names
}

// formatValue renders a replicated value for text output.
func formatValue(v replicated.Value) string {
	switch v.Type() {
	case replicated.BooleanType:
		b, _ := v.Bool()
		return fmt.Sprint(b)
	case replicated.IntegerType:
		i, _ := v.Int()
		return fmt.Sprint(i)
	case replicated.FloatType:
		f, _ := v.Float()
		return fmt.Sprint(f)
	case replicated.StringType:
		s, _ := v.Str()
		return fmt.Sprintf("%q", s)
	case replicated.Vector2Type:
		vec, _ := v.Vector2()
		return fmt.Sprintf("(%g, %g)", vec.X, vec.Y)
	case replicated.Vector3Type:
		vec, _ := v.Vector3()
		return fmt.Sprintf("(%g, %g, %g)", vec.X, vec.Y, vec.Z)
	case replicated.Vector4Type:
		vec, _ := v.Vector4()
		return fmt.Sprintf("(%g, %g, %g, %g)", vec.X, vec.Y, vec.Z, vec.W)
	case replicated.StringMapType:
		m, _ := v.StringMap()
		return fmt.Sprintf("map[%d]", len(m))
	default:
		return v.Type().String()
	}
}
