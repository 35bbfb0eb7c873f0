package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kael-ip/hexgl/gl"
)

type signatureRow struct {
	Method   string   `json:"method" yaml:"method"`
	Symbol   string   `json:"symbol" yaml:"symbol"`
	Return   string   `json:"return" yaml:"return"`
	Params   []string `json:"params" yaml:"params"`
	Optional bool     `json:"optional" yaml:"optional"`
}

func signatureRows(prefix, filter string) ([]signatureRow, error) {
	b, err := gl.Binding()
	if err != nil {
		return nil, err
	}
	var rows []signatureRow
	for _, sig := range b.Interface().Methods() {
		if filter != "" && !strings.Contains(strings.ToLower(sig.Name), strings.ToLower(filter)) {
			continue
		}
		params := make([]string, len(sig.Params))
		for i, k := range sig.Params {
			params[i] = k.String()
		}
		rows = append(rows, signatureRow{
			Method:   sig.Name,
			Symbol:   prefix + sig.Name,
			Return:   sig.Return.String(),
			Params:   params,
			Optional: b.Optional(sig.Name),
		})
	}
	return rows, nil
}

func newSignaturesCmd() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "signatures",
		Short: "List the entry points of gl.Functions",
		Long: `List every entry point declared by gl.Functions with the native symbol it
resolves to and its parameter and return kinds. Optional entry points report
a missing symbol as an error instead of failing the whole callback.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			rows, err := signatureRows(cfg.Context.SymbolPrefix, filter)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), cfg.Output, rows, func(t table.Writer) {
				t.AppendHeader(table.Row{"#", "Symbol", "Return", "Params", "Optional"})
				for i, r := range rows {
					opt := ""
					if r.Optional {
						opt = "yes"
					}
					t.AppendRow(table.Row{i + 1, r.Symbol, r.Return, strings.Join(r.Params, ", "), opt})
				}
				t.AppendFooter(table.Row{"", len(rows), "", "", ""})
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "", "only list methods whose name contains this text")
	return cmd
}
