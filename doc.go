// Package storefront holds the Femi9outfit storefront's mail and order
// notification services.
//
// Mail goes out through a small SMTP client that speaks the protocol
// directly over a socket (STARTTLS or implicit TLS, AUTH LOGIN, one
// message per connection). Order flows send their confirmation and alert
// mails through it, either inline or via a queue worker.
//
// Key subpackages:
//
//	github.com/femi9outfit/storefront/pkg/smtp      - SMTP wire client and message formatting
//	github.com/femi9outfit/storefront/pkg/mail      - Mailer drivers (smtp, log, ses)
//	github.com/femi9outfit/storefront/pkg/notify    - Order mail templates and the send failure boundary
//	github.com/femi9outfit/storefront/pkg/orders    - Checkout, status changes and the pending-order digest
//	github.com/femi9outfit/storefront/pkg/queue     - Job payloads, registry and the queued mail publisher
//	github.com/femi9outfit/storefront/pkg/worker    - Worker pool
//	github.com/femi9outfit/storefront/pkg/schedule  - Cron kernel with distributed locks
//	github.com/femi9outfit/storefront/pkg/driver    - Queue drivers (redis, database, sqs)
//	github.com/femi9outfit/storefront/pkg/config    - Configuration from .env, environment and YAML
//
// Example Usage:
//
//	package main
//
//	import (
//		"context"
//		"time"
//
//		"github.com/femi9outfit/storefront/pkg/smtp"
//	)
//
//	func main() {
//		client := smtp.NewClient(smtp.Config{
//			Host:      "smtp.example.com",
//			Port:      587,
//			Username:  "shop@example.com",
//			Password:  "secret",
//			FromEmail: "shop@example.com",
//			FromName:  "Femi9outfit",
//			Timeout:   30 * time.Second,
//		})
//		res, err := client.Send(context.Background(), smtp.Mail{
//			To:      "customer@example.com",
//			Subject: "Order Confirmation - 42",
//			Text:    "Thank you for your order.",
//		})
//		_, _ = res, err
//	}
package storefront
