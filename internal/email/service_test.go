package email

import (
	"strings"
	"testing"
)

func TestServiceIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{
			name:     "empty config",
			config:   Config{},
			expected: false,
		},
		{
			name: "missing api key",
			config: Config{
				From: "DGCONSULT <noreply@dgconsult.gr>",
			},
			expected: false,
		},
		{
			name: "missing from",
			config: Config{
				APIKey: "re_test_key",
			},
			expected: false,
		},
		{
			name: "fully configured",
			config: Config{
				APIKey: "re_test_key",
				From:   "DGCONSULT <noreply@dgconsult.gr>",
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.config)
			if svc.IsConfigured() != tt.expected {
				t.Errorf("IsConfigured() = %v, want %v", svc.IsConfigured(), tt.expected)
			}
		})
	}
}

func TestRenderContactConfirmationTemplate(t *testing.T) {
	data := ContactConfirmationData{
		FirstName: "Maria",
		LastName:  "Papadopoulou",
		Year:      2026,
	}

	html, err := renderTemplate(contactConfirmationTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}

	if !strings.Contains(html, "DGCONSULT") {
		t.Error("template should contain company name")
	}
	if !strings.Contains(html, "Maria Papadopoulou") {
		t.Error("template should contain visitor name")
	}
	if !strings.Contains(html, "© 2026") {
		t.Error("template should contain copyright year")
	}
}

func TestRenderContactNotificationTemplate(t *testing.T) {
	data := ContactNotificationData{
		FirstName:  "Nikos",
		LastName:   "Ioannou",
		Email:      "nikos@example.gr",
		Message:    "Θέλουμε προσφορά για ERP.",
		ReceivedAt: "29/08/2026 10:15",
	}

	html, err := renderTemplate(contactNotificationTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}

	if !strings.Contains(html, "nikos@example.gr") {
		t.Error("template should contain sender email")
	}
	if !strings.Contains(html, "Θέλουμε προσφορά για ERP.") {
		t.Error("template should contain the message body")
	}
	if strings.Contains(html, "Τηλέφωνο") {
		t.Error("phone block should be omitted when phone is empty")
	}
	if strings.Contains(html, "Εταιρεία") {
		t.Error("company block should be omitted when company is empty")
	}
}

func TestRenderContactNotificationOptionalFields(t *testing.T) {
	data := ContactNotificationData{
		FirstName: "Nikos",
		LastName:  "Ioannou",
		Email:     "nikos@example.gr",
		Phone:     "2105711581",
		Company:   "Example AE",
		Message:   "Καλημέρα",
	}

	html, err := renderTemplate(contactNotificationTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}

	if !strings.Contains(html, "2105711581") {
		t.Error("template should contain phone when provided")
	}
	if !strings.Contains(html, "Example AE") {
		t.Error("template should contain company when provided")
	}
}

func TestSendHTMLEmailUnconfigured(t *testing.T) {
	svc := NewService(Config{})
	err := svc.SendHTMLEmail(t.Context(), []string{"a@example.com"}, "hi", "<p>hi</p>")
	if err == nil {
		t.Fatal("expected error when email is not configured")
	}
}
