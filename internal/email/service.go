// Package email sends transactional email through the Resend API.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v2"
)

// Config holds Resend configuration
type Config struct {
	APIKey  string
	From    string
	AdminTo string
}

// Service provides email sending
type Service struct {
	config Config
	client *resend.Client
}

// NewService creates a new email service
func NewService(config Config) *Service {
	return &Service{
		config: config,
		client: resend.NewClient(config.APIKey),
	}
}

// IsConfigured returns true if email is configured
func (s *Service) IsConfigured() bool {
	return s.config.APIKey != "" && s.config.From != ""
}

// SendHTMLEmail sends an HTML email
func (s *Service) SendHTMLEmail(ctx context.Context, to []string, subject, htmlBody string) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email not configured")
	}

	params := &resend.SendEmailRequest{
		From:    s.config.From,
		To:      to,
		Subject: subject,
		Html:    htmlBody,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}

// ContactConfirmationData holds data for the visitor confirmation email
type ContactConfirmationData struct {
	FirstName string
	LastName  string
	Year      int
}

// ContactNotificationData holds data for the internal notification email
type ContactNotificationData struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Company    string
	Message    string
	ReceivedAt string
}

// SendContactConfirmation sends the thank-you email to a contact form visitor
func (s *Service) SendContactConfirmation(ctx context.Context, to, firstName, lastName string) error {
	data := ContactConfirmationData{
		FirstName: firstName,
		LastName:  lastName,
		Year:      time.Now().Year(),
	}

	subject := "Ευχαριστούμε για την επικοινωνία σας - DGCONSULT"
	html, err := renderTemplate(contactConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("render confirmation template: %w", err)
	}

	return s.SendHTMLEmail(ctx, []string{to}, subject, html)
}

// SendContactNotification notifies the sales mailbox about a new submission
func (s *Service) SendContactNotification(ctx context.Context, data ContactNotificationData) error {
	if s.config.AdminTo == "" {
		return fmt.Errorf("admin recipient not configured")
	}

	subject := fmt.Sprintf("Νέα Αίτηση Επικοινωνίας: %s %s", data.FirstName, data.LastName)
	html, err := renderTemplate(contactNotificationTemplate, data)
	if err != nil {
		return fmt.Errorf("render notification template: %w", err)
	}

	return s.SendHTMLEmail(ctx, []string{s.config.AdminTo}, subject, html)
}

func renderTemplate(tmpl string, data interface{}) (string, error) {
	t := template.Must(template.New("email").Parse(tmpl))
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const contactConfirmationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #D32F2F 0%, #B71C1C 100%); color: white; padding: 40px 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .content { background: #ffffff; padding: 40px 30px; border: 1px solid #e0e0e0; border-top: none; }
        .footer { background: #f9f9f9; padding: 20px 30px; text-align: center; border-radius: 0 0 10px 10px; font-size: 12px; color: #666; }
        .contact-info { background: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1 style="margin: 0; font-size: 28px;">DGCONSULT</h1>
            <p style="margin: 10px 0 0 0; opacity: 0.9;">Business Solutions on Demand</p>
        </div>
        <div class="content">
            <h2 style="color: #D32F2F; margin-top: 0;">Ευχαριστούμε για το ενδιαφέρον σας!</h2>
            <p>Αγαπητέ/ή {{.FirstName}} {{.LastName}},</p>
            <p>Λάβαμε το μήνυμά σας και σας ευχαριστούμε που επικοινωνήσατε με την DGCONSULT.</p>
            <p>Η ομάδα μας θα επικοινωνήσει μαζί σας εντός <strong>24 ωρών</strong> για να συζητήσουμε τις ανάγκες σας και να σας προτείνουμε την καλύτερη λύση.</p>

            <div class="contact-info">
                <h3 style="margin-top: 0; color: #333;">Στοιχεία Επικοινωνίας</h3>
                <p style="margin: 5px 0;"><strong>Διεύθυνση:</strong> Λεωφ. Κηφισού 48, Περιστέρι – 121 33</p>
                <p style="margin: 5px 0;"><strong>Τηλέφωνο:</strong> 210 5711581</p>
                <p style="margin: 5px 0;"><strong>Email:</strong> comm@dgconsult.gr</p>
                <p style="margin: 5px 0;"><strong>Ώρες Λειτουργίας:</strong> Δευτέρα - Παρασκευή, 09:00 - 18:00</p>
            </div>

            <p>Για άμεση επικοινωνία, μπορείτε να μας καλέσετε στο <strong>210 5711581</strong>.</p>

            <p style="margin-top: 30px;">Με εκτίμηση,<br><strong>Η Ομάδα της DGCONSULT</strong></p>
        </div>
        <div class="footer">
            <p style="margin: 5px 0;">© {{.Year}} DGCONSULT. All rights reserved.</p>
            <p style="margin: 5px 0;">Εξειδικευμένες λύσεις ψηφιακού μετασχηματισμού</p>
        </div>
    </div>
</body>
</html>`

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1A1A1A; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e0e0e0; border-top: none; }
        .field { margin: 15px 0; padding: 15px; background: #f9f9f9; border-left: 4px solid #D32F2F; border-radius: 4px; }
        .label { font-weight: bold; color: #D32F2F; font-size: 12px; text-transform: uppercase; margin-bottom: 5px; }
        .value { color: #333; font-size: 16px; }
        .footer { background: #f9f9f9; padding: 20px; text-align: center; border-radius: 0 0 10px 10px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1 style="margin: 0; font-size: 24px;">Νέα Αίτηση Επικοινωνίας</h1>
            <p style="margin: 10px 0 0 0; opacity: 0.8;">DGCONSULT Contact Form</p>
        </div>
        <div class="content">
            <p style="color: #D32F2F; font-weight: bold; font-size: 18px;">Νέο μήνυμα από την φόρμα επικοινωνίας</p>

            <div class="field">
                <div class="label">Όνομα</div>
                <div class="value">{{.FirstName}} {{.LastName}}</div>
            </div>

            <div class="field">
                <div class="label">Email</div>
                <div class="value"><a href="mailto:{{.Email}}" style="color: #D32F2F;">{{.Email}}</a></div>
            </div>

            {{if .Phone}}
            <div class="field">
                <div class="label">Τηλέφωνο</div>
                <div class="value"><a href="tel:{{.Phone}}" style="color: #D32F2F;">{{.Phone}}</a></div>
            </div>
            {{end}}

            {{if .Company}}
            <div class="field">
                <div class="label">Εταιρεία</div>
                <div class="value">{{.Company}}</div>
            </div>
            {{end}}

            <div class="field">
                <div class="label">Μήνυμα</div>
                <div class="value" style="white-space: pre-wrap;">{{.Message}}</div>
            </div>

            <p style="margin-top: 30px; padding: 15px; background: #fff3cd; border-left: 4px solid #ffc107; border-radius: 4px;">
                <strong>Δράση Απαιτείται:</strong> Παρακαλώ απαντήστε εντός 24 ωρών.
            </p>
        </div>
        <div class="footer">
            <p style="margin: 5px 0;">Ημερομηνία: {{.ReceivedAt}}</p>
            <p style="margin: 5px 0;">DGCONSULT Contact Management System</p>
        </div>
    </div>
</body>
</html>`
