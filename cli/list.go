package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/entity"
	"github.com/fabiomatricardi/cm-log-system/repository"
	"github.com/fabiomatricardi/cm-log-system/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print the newest log entries, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.LoadConfig()
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		rows := services.NewLogService(store, services.NopNotifier{}).Rows(query, listLimit)
		if len(rows) == 0 {
			fmt.Println("No matching logs.")
			return nil
		}
		printRows(rows)
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", repository.DefaultSearchLimit, "Maximum number of rows")
}

func printRows(rows []services.LogRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := color.New(color.Bold)
	fmt.Fprintln(w, header.Sprint("ID\tTAGNAME\tDESCRIPTION\tREPORTED BY\tTIMESTAMP\tFILES\tSTATUS\tEDITED"))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.TagName, r.Description, r.ReportedBy, r.Timestamp, r.Attachments,
			statusColor(r.Status).Sprint(r.Status), r.Edited)
	}
	w.Flush()
}

func statusColor(status string) *color.Color {
	s, _ := entity.ParseStatus(status)
	switch s {
	case entity.StatusOngoing:
		return color.New(color.FgHiYellow)
	case entity.StatusCompleted:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgYellow)
	}
}
