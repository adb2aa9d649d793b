package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/lithammer/dedent"
	"github.com/ryan-gang/sendmail/internal/cmdutil"
	"github.com/ryan-gang/sendmail/internal/mail"
	"github.com/ryan-gang/sendmail/internal/util"
	"github.com/spf13/cobra"
)

var (
	helpLong = `Sends a plain-text message to one recipient. The arguments are joined
with spaces to form the body; a single "-" reads the body from stdin.
An attachment, given with --attach or in the config file, is sent as a
second part under its original file name.`

	helpExample = dedent.Dedent(`
		# Send a short message to the configured receiver
		sendmail send -s "Build finished" "All green"

		# Send to someone else with a file attached
		sendmail send -t bob@example.com -s "Report" -a report.pdf "See attached"

		# Pipe the body in and keep a copy instead of sending
		git log -1 | sendmail send -t bob@example.com -s "Last commit" --dry-run -`,
	)
)

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringP("to", "t", "", "Recipient, defaults to the configured receiver")
	sendCmd.Flags().StringP("subject", "s", "", "Message subject")
	sendCmd.Flags().StringP("attach", "a", "", "File to attach, overrides the configured attachment")
	sendCmd.Flags().IntP("mail-timeout", "m", 0, "Dial timeout in seconds, 0 keeps the configured value")
	sendCmd.Flags().Bool("dry-run", false, "Store the composed message as .eml in the store path instead of sending")
}

// readBody joins args, or reads stdin when the only argument is "-"
func readBody(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		return util.ReadAll()
	}
	return strings.Join(args, " "), nil
}

var sendCmd = &cobra.Command{
	Use:     "send [BODY...]",
	Short:   "Send a plain-text message, optionally with an attachment",
	Long:    helpLong,
	Example: helpExample,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd)

		to, _ := cmd.Flags().GetString("to")
		if to == "" {
			to = cfg.GetReceiver()
		}
		subject, _ := cmd.Flags().GetString("subject")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		body, err := readBody(args)
		if err != nil {
			util.LogError(util.FileError, "reading body from stdin", err)
			os.Exit(1)
		}

		var opts []mail.Option
		if cmd.Flags().Changed("attach") {
			attach, _ := cmd.Flags().GetString("attach")
			opts = append(opts, mail.WithAttachment(attach))
		}
		if timeout, _ := cmd.Flags().GetInt("mail-timeout"); timeout > 0 {
			opts = append(opts, mail.WithTimeout(time.Duration(timeout)*time.Second))
		}

		cmdutil.DeliverOrExit(cfg, cmdutil.Delivery{
			To:        to,
			Subject:   subject,
			Body:      body,
			DryRun:    dryRun,
			StorePath: cfg.GetStorePath(),
		}, opts...)
	},
}
