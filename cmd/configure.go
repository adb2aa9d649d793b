package cmd

import (
	"os"

	"github.com/ryan-gang/sendmail/internal/config"
	"github.com/ryan-gang/sendmail/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure sendmail settings",
	Long: `Create or update the sendmail config file: sender, default receiver,
reply-to address, SMTP server, port and TLS mode, store and log paths.
The password is never written by this command; set SENDMAIL_PASSWORD.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		var cfg *config.Config
		if _, err := os.Stat(configPath); err != nil {
			util.CyanBold.Println("Creating new configuration...")
			cfg = config.CreateConfig()
		} else {
			util.CyanBold.Println("Updating existing configuration...")
			// file only, so environment secrets don't end up on disk
			current, err := config.LoadFile(configPath)
			if err != nil {
				util.LogError(util.ConfigError, "loading configuration", err)
				os.Exit(1)
			}

			util.Cyan.Println("\nCurrent settings:")
			util.Cyan.Printf("Sender: %s\n", current.Sender)
			util.Cyan.Printf("Receiver: %s\n", current.Receiver)
			util.Cyan.Printf("Server: %s:%d (implicit TLS: %t)\n", current.Server, current.Port, current.UseTLS)

			util.CyanBold.Println("\nUpdate configuration? (y/n):")
			response := util.ScanlineTrim()
			if response != "y" && response != "Y" && response != "yes" {
				return
			}
			cfg = config.Prompt(&current)
		}

		if err := cfg.Validate(); err != nil {
			util.LogError(util.ValidationError, "checking configuration", err)
			os.Exit(1)
		}
		if err := config.Save(*cfg, configPath); err != nil {
			util.Red.Printf("Error saving configuration: %v\n", err)
			os.Exit(1)
		}
		util.Green.Printf("Configuration saved to %s, you can directly edit it later on\n", configPath)

		util.CyanBold.Println("\nNext steps:")
		util.Cyan.Println("- Export " + config.EnvPrefix + "_PASSWORD or put it in a .env file")
		util.Cyan.Println("- Run 'sendmail send -t <address> -s <subject> <body>' to send a message")
	},
}
