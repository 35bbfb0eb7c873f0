package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kael-ip/hexgl/platform"
)

type platformRow struct {
	Name    string `json:"name" yaml:"name"`
	Default bool   `json:"default" yaml:"default"`
	Windows bool   `json:"windows" yaml:"windows"`
}

func platformRows() []platformRow {
	def := platform.DefaultName()
	names := platform.Available()
	rows := make([]platformRow, 0, len(names))
	for _, name := range names {
		_, windows := platform.Get(name).(platform.WindowFactory)
		rows = append(rows, platformRow{Name: name, Default: name == def, Windows: windows})
	}
	return rows
}

func newPlatformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platforms",
		Short: "List the registered native platforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			rows := platformRows()
			return render(cmd.OutOrStdout(), cfg.Output, rows, func(t table.Writer) {
				t.AppendHeader(table.Row{"Name", "Default", "Hidden windows"})
				for _, r := range rows {
					t.AppendRow(table.Row{r.Name, r.Default, r.Windows})
				}
			})
		},
	}
}
