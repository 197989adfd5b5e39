package cli

import (
	"github.com/fabiomatricardi/cm-log-system/configs"
	"github.com/fabiomatricardi/cm-log-system/services"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every log entry to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.LoadConfig()
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		path, count, err := services.NewExportService(store, cfg.ExportDir).Export()
		if err != nil {
			return err
		}
		color.Green("✅ Exported %d log(s) to %s", count, absPath(path))
		return nil
	},
}
