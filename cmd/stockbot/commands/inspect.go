package commands

import (
	"fmt"
	"io"

	"stockbot/internal/report"
	"stockbot/internal/stockdata"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect --mode <ticker> --config <path/to/config.json5> --log <path/to/log>",
	Short: "Prints every scraped record in full without filtering or posting.",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.Close()

		r := newAssembler(s.config, s.tel, s.output).Pull(cmd.Context(), s.ticker)
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func printReport(out io.Writer, r report.Report) {
	sources := []struct {
		name   string
		record *stockdata.Record
	}{
		{name: "Price", record: r.Price},
		{name: "Misc Stats", record: r.MiscStats},
		{name: "Borrow Fee", record: r.BorrowFee},
		{name: "FTD", record: r.FTD},
	}

	for _, source := range sources {
		t := newTable(out)
		t.SetTitle(fmt.Sprintf("%s %s", r.Ticker, source.name))
		t.AppendHeader(table.Row{"Field", "Value"})
		if source.record == nil {
			t.AppendRow(table.Row{"(unavailable)", ""})
		}
		for _, entry := range source.record.Entries() {
			t.AppendRow(table.Row{entry.Key, entry.Value})
		}
		t.Render()
	}
}
