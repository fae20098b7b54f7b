package console

import (
	"fmt"

	"github.com/femi9outfit/storefront/pkg/mail"
	"github.com/femi9outfit/storefront/pkg/root"
	"github.com/spf13/cobra"
)

var mailMessage mail.Message

var mailCmd = &cobra.Command{
	Use:   "mail:send",
	Short: "Send one plain-text email with the configured mailer",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		mailer, err := mail.NewMailer(cmd.Context(), a.cfg.Mail)
		if err != nil {
			return err
		}

		msg := mailMessage
		res, err := mailer.Send(cmd.Context(), &msg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent=%t\n", res.Sent)
		return nil
	},
}

func init() {
	mailCmd.Flags().StringVar(&mailMessage.To, "to", "", "recipient address")
	mailCmd.Flags().StringVar(&mailMessage.Subject, "subject", "", "subject line")
	mailCmd.Flags().StringVar(&mailMessage.Body, "body", "", "plain-text body")
	_ = mailCmd.MarkFlagRequired("to")

	root.GetRoot().AddCommand(mailCmd)
}
