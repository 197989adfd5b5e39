package cli

import (
	"errors"

	"github.com/fabiomatricardi/cm-log-system/configs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	seedUsername string
	seedPassword string
	seedReset    bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
}

var adminSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account (or reset its password with --reset)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.LoadConfig()
		username := firstNonEmpty(seedUsername, cfg.AdminUsername)
		password := firstNonEmpty(seedPassword, cfg.AdminPassword)
		if username == "" || password == "" {
			return errors.New("username and password are required (flags or ADMIN_USERNAME / ADMIN_PASSWORD)")
		}
		db, err := configs.OpenDB(cfg.DBSource)
		if err != nil {
			return err
		}
		if err := configs.SeedAdmin(db, username, password, seedReset); err != nil {
			return err
		}
		color.Green("✅ admin %q ready", username)
		return nil
	},
}

func init() {
	adminSeedCmd.Flags().StringVarP(&seedUsername, "username", "u", "", "Admin username (default ADMIN_USERNAME)")
	adminSeedCmd.Flags().StringVarP(&seedPassword, "password", "p", "", "Admin password (default ADMIN_PASSWORD)")
	adminSeedCmd.Flags().BoolVar(&seedReset, "reset", false, "Reset the password if the account exists")
	adminCmd.AddCommand(adminSeedCmd)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
