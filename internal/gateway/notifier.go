package gateway

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/DylanGreen12/TenantTrack-sub000/internal/utils"
)

// NoticeKind names the tenant-facing notices the core sends.
type NoticeKind string

const (
	NoticeLeaseApproved  NoticeKind = "lease_approved"
	NoticeLeaseDenied    NoticeKind = "lease_denied"
	NoticePaymentReceipt NoticeKind = "payment_receipt"
)

// Notifier is the outbound email/SMS collaborator. The core calls it
// fire-and-forget: delivery failures are logged, never propagated.
type Notifier interface {
	Notify(kind NoticeKind, recipientName, recipientEmail string, recipientPhone *string, body string)
}

const leaseNoticeEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; line-height: 1.6; color: #333333; background-color: #f4f4f4; margin: 0; padding: 0; }
.container { padding: 20px; max-width: 600px; margin: 20px auto; background-color: #ffffff; border: 1px solid #dddddd; border-radius: 8px; }
.header { font-size: 22px; font-weight: bold; color: #2c6e49; margin-bottom: 15px; }
.footer { margin-top: 20px; font-size: 12px; color: #777777; text-align: center; }
p { margin-bottom: 15px; }
</style>
</head>
<body>
<div class="container">
<p class="header">%s</p>
<p>Hi %s,</p>
<p>%s</p>
<div class="footer">The TenantTrack Team</div>
</div>
</body>
</html>`

var noticeSubjects = map[NoticeKind]string{
	NoticeLeaseApproved:  "Your lease application was approved",
	NoticeLeaseDenied:    "Update on your lease application",
	NoticePaymentReceipt: "Payment received",
}

/* ------------------------------------------------------------------
   SendGrid + Twilio implementation
------------------------------------------------------------------ */

type notifier struct {
	sgClient  *sendgrid.Client
	twClient  *twilio.RestClient
	fromEmail string
	fromPhone string
}

func NewNotifier(sgClient *sendgrid.Client, twClient *twilio.RestClient, fromEmail, fromPhone string) Notifier {
	return &notifier{
		sgClient:  sgClient,
		twClient:  twClient,
		fromEmail: fromEmail,
		fromPhone: fromPhone,
	}
}

func (n *notifier) Notify(kind NoticeKind, recipientName, recipientEmail string, recipientPhone *string, body string) {
	subject, ok := noticeSubjects[kind]
	if !ok {
		subject = "TenantTrack notification"
	}

	// ---------- SendGrid Email ----------
	if n.sgClient != nil {
		from := mail.NewEmail("TenantTrack", n.fromEmail)
		to := mail.NewEmail(recipientName, recipientEmail)
		htmlContent := fmt.Sprintf(leaseNoticeEmailHTML, subject, recipientName, body)
		msg := mail.NewSingleEmail(from, subject, to, body, htmlContent)
		if _, err := n.sgClient.Send(msg); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to send %s email to %s", kind, recipientEmail)
		}
	} else {
		utils.Logger.Warnf("SendGrid client is nil, skipping %s email to %s", kind, recipientEmail)
	}

	// ---------- Twilio SMS ----------
	if n.twClient != nil && recipientPhone != nil && *recipientPhone != "" {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(*recipientPhone)
		params.SetFrom(n.fromPhone)
		params.SetBody(subject + " :: " + body)
		if _, err := n.twClient.Api.CreateMessage(params); err != nil {
			utils.Logger.WithError(err).Warnf("Failed to send %s SMS to %s", kind, *recipientPhone)
		}
	}
}
