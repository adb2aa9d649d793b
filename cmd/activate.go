package cmd

import (
	"os"

	"github.com/lithammer/dedent"
	"github.com/ryan-gang/sendmail/internal/activation"
	"github.com/ryan-gang/sendmail/internal/cmdutil"
	"github.com/ryan-gang/sendmail/internal/mail"
	"github.com/ryan-gang/sendmail/internal/util"
	"github.com/spf13/cobra"
)

var helpActivateExample = dedent.Dedent(`
	# Send an activation link with a fresh token
	sendmail activate alice@example.com --base-url http://chat.example.com:8080/activate/

	# Resend the link for a known token
	sendmail activate alice@example.com --base-url http://chat.example.com:8080/activate/ --token 0b8e...`,
)

func init() {
	rootCmd.AddCommand(activateCmd)

	activateCmd.Flags().String("base-url", "", "Activation endpoint, the token is appended as the last path segment")
	activateCmd.Flags().String("token", "", "Activation token, a random one is generated when empty")
	activateCmd.Flags().Bool("dry-run", false, "Store the composed message as .eml in the store path instead of sending")
	activateCmd.MarkFlagRequired("base-url")
}

var activateCmd = &cobra.Command{
	Use:     "activate EMAIL",
	Short:   "Send an account activation link",
	Long:    `Sends the account activation mail with a link built from --base-url and the activation token. The configured attachment is never sent with it.`,
	Example: helpActivateExample,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd)

		baseURL, _ := cmd.Flags().GetString("base-url")
		token, _ := cmd.Flags().GetString("token")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if token == "" {
			token = activation.NewToken()
		}

		link, err := activation.Link(baseURL, token)
		if err != nil {
			util.LogError(util.ValidationError, "building activation link", err)
			os.Exit(1)
		}
		util.Cyan.Printf("Activation token : %s\n", token)

		cmdutil.DeliverOrExit(cfg, cmdutil.Delivery{
			To:        args[0],
			Subject:   activation.Subject,
			Body:      activation.Body(link),
			DryRun:    dryRun,
			StorePath: cfg.GetStorePath(),
		}, mail.WithAttachment(""))
	},
}
