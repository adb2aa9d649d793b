package cmd

import (
	"fmt"
	"os"

	"github.com/ryan-gang/sendmail/internal/config"
	"github.com/ryan-gang/sendmail/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	var configPath string
	configPath, err := config.DefaultConfigPath()
	if err != nil {
		util.Red.Println("Error setting default config path: ", err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "Path to config file (.json, .yaml or .yml)")
}

var rootCmd = &cobra.Command{
	Use:   "sendmail",
	Short: "Send a plain-text email, optionally with one attachment, over SMTP",
	Long: `sendmail composes a single plain-text message, optionally with one file
attached, and delivers it synchronously to the configured SMTP server.

Settings come from the config file, a .env file in the working directory and
SENDMAIL_* environment variables, in increasing order of precedence. Keep the
password in SENDMAIL_PASSWORD rather than in the config file.

Run 'sendmail configure' to create the config file.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help if no command is provided
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
