package cmdutil

import (
	"errors"
	"os"

	"github.com/ryan-gang/sendmail/internal/config"
	"github.com/ryan-gang/sendmail/internal/logger"
	"github.com/ryan-gang/sendmail/internal/mail"
	"github.com/ryan-gang/sendmail/internal/util"
	"github.com/spf13/cobra"
)

// Delivery describes one message handed to a configured mailer
type Delivery struct {
	To        string
	Subject   string
	Body      string
	DryRun    bool
	StorePath string
}

// LoadConfigFromFlags loads configuration using the config flag from the command
func LoadConfigFromFlags(cmd *cobra.Command) (config.ConfigProvider, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	return config.LoadProvider(configPath)
}

// LoadConfigOrExit loads configuration and exits with error message if it fails
func LoadConfigOrExit(cmd *cobra.Command) config.ConfigProvider {
	cfg, err := LoadConfigFromFlags(cmd)
	if err != nil {
		util.LogError(util.ConfigError, "loading configuration", err)
		os.Exit(1)
	}
	return cfg
}

// Deliver sends d.Body with sender, or stores the composed message under
// d.StorePath on a dry run, and reports the outcome on the console and in log.
func Deliver(sender mail.MailSender, log logger.LoggerInterface, d Delivery) error {
	if d.DryRun {
		filename, err := sender.Store(d.StorePath, d.Body)
		if err != nil {
			util.LogError(errorContext(err), "storing message", err)
			log.Errorf("storing %q for %s failed: %v", d.Subject, d.To, err)
			return err
		}
		util.GreenBold.Printf("Stored message for %s at %s\n", d.To, filename)
		log.Infof("stored %q for %s at %s", d.Subject, d.To, filename)
		return nil
	}

	util.CyanBold.Println("Sending mail")
	if err := sender.Send(d.Body); err != nil {
		util.LogError(errorContext(err), "sending mail", err)
		log.Errorf("sending %q to %s failed: %v", d.Subject, d.To, err)
		return err
	}
	util.GreenBold.Printf("Mailed %q to %s\n", d.Subject, d.To)
	log.Infof("sent %q to %s", d.Subject, d.To)
	return nil
}

func errorContext(err error) util.ErrorContext {
	switch {
	case errors.Is(err, mail.ErrAttachment):
		return util.FileError
	case errors.Is(err, mail.ErrAddress):
		return util.ValidationError
	case errors.Is(err, mail.ErrConfig):
		return util.ConfigError
	default:
		return util.MailError
	}
}

// DeliverOrExit configures a mailer for d, delivers it and exits with a
// non-zero status on any failure.
func DeliverOrExit(cfg config.ConfigProvider, d Delivery, opts ...mail.Option) {
	mailer, err := mail.Configure(cfg, d.To, d.Subject, opts...)
	if err != nil {
		util.LogError(errorContext(err), "configuring mailer", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		util.LogError(util.FileError, "opening log", err)
		os.Exit(1)
	}

	err = Deliver(mailer, log, d)
	log.Close()
	if err != nil {
		os.Exit(1)
	}
}
