package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/rtlmigrate/cmd/rtlmigrate/opts"
	"github.com/walteh/rtlmigrate/pkg/convert"
	"gitlab.com/tozd/go/errors"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(rootOpts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the active conversion rules in the order they run",
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := rootOpts.Config.NewConverter()
			if err != nil {
				return errors.Errorf("creating converter: %w", err)
			}
			return renderRules(cmd.OutOrStdout(), conv)
		},
	}

	return cmd
}

func renderRules(w io.Writer, conv *convert.Converter) error {
	imports := pterm.TableData{{"Kind", "Import"}}
	for _, imp := range conv.Imports() {
		imports = append(imports, []string{imp.Kind.String(), imp.Pattern})
	}

	patterns := pterm.TableData{{"#", "Name", "Description", "Pattern"}}
	for i, r := range conv.Patterns() {
		expr := ""
		if r.Pattern != nil {
			expr = r.Pattern.String()
		}
		patterns = append(patterns, []string{strconv.Itoa(i + 1), r.Name, r.Description, expr})
	}

	for _, section := range []struct {
		title string
		data  pterm.TableData
	}{
		{"Imports", imports},
		{"Patterns", patterns},
	} {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(section.data).Srender()
		if err != nil {
			return errors.Errorf("rendering %s table: %w", section.title, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", section.title, table); err != nil {
			return errors.Errorf("writing %s table: %w", section.title, err)
		}
	}

	return nil
}
