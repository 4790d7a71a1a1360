package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"tradecalc/core/calculator"
	"tradecalc/core/output"
	"tradecalc/internal/logging"
)

// flagName spells a field name as a flag: floor_area becomes floor-area
func flagName(field string) string {
	return strings.ReplaceAll(field, "_", "-")
}

func unitList[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func fieldUsage(f calculator.FieldSpec) string {
	usage := f.Label
	if f.Help != "" {
		usage += ": " + f.Help
	}
	if len(f.Choices) > 0 {
		usage += " (" + strings.Join(f.Choices, ", ") + ")"
	}
	if f.Default != "" {
		usage += fmt.Sprintf(" [default %s]", f.Default)
	}
	return usage
}

// newToolCmd builds the command of one tool from its descriptor.
// Only flags given on the command line become fields, so omitted inputs
// take the tool's own defaults.
func newToolCmd(opts *options, desc calculator.Descriptor) *cobra.Command {
	values := make(map[string]*string)
	var label, out string

	cmd := &cobra.Command{
		Use:   string(desc.Name),
		Short: desc.Title,
		Long:  desc.Title + "\n\n" + desc.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := make(calculator.Fields)
			for name, v := range values {
				if cmd.Flags().Changed(flagName(name)) {
					fields[name] = *v
				}
			}

			res, ok := opts.registry.Calculate(string(desc.Name), fields)
			if !ok {
				return fmt.Errorf("tool %s is not registered", desc.Name)
			}
			res.Label = label

			logging.Debug("calculated",
				zap.String("tool", string(desc.Name)),
				zap.Strings("fields", fields.Keys()),
				zap.Int("notes", len(res.Notes)),
			)
			return opts.render(cmd, desc.Title, []calculator.Result{res}, out)
		},
	}

	for _, f := range desc.Fields {
		values[f.Name] = cmd.Flags().String(flagName(f.Name), "", fieldUsage(f))
		if f.Kind == calculator.FieldQuantity {
			usage := fmt.Sprintf("unit of %s (%s) [default %s]", strings.ToLower(f.Label), unitList(f.Units), f.DefaultUnit)
			values[f.UnitField()] = cmd.Flags().String(flagName(f.UnitField()), "", usage)
		}
	}
	cmd.Flags().StringVar(&label, "label", "", "label for this estimate")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")

	return cmd
}

func newToolsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools and their inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			descs := opts.registry.Describe()

			switch format, _ := output.ParseFormat(opts.format); format {
			case output.FormatJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(descs)
			case output.FormatYAML:
				return yaml.NewEncoder(w).Encode(descs)
			}

			for i, desc := range descs {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s - %s\n", desc.Name, desc.Title)
				for _, f := range desc.Fields {
					fmt.Fprintf(w, "  --%-22s %s\n", flagName(f.Name), fieldUsage(f))
					if f.Kind == calculator.FieldQuantity {
						fmt.Fprintf(w, "  --%-22s %s\n", flagName(f.UnitField()), unitList(f.Units))
					}
				}
			}
			return nil
		},
	}
}
