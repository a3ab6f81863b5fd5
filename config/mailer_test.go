package config

import "testing"

func TestLoadSMTPDefaultSender(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USER", "grants@example.org")
	t.Setenv("SMTP_FROM", "")

	s := loadSMTP()
	if s.from != "Grant Management <grants@example.org>" {
		t.Fatalf("derived sender = %q", s.from)
	}
	if s.port != 587 {
		t.Fatalf("default port = %d, want 587", s.port)
	}
}

func TestLoadSMTPExplicitFrom(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "grants@example.org")
	t.Setenv("SMTP_FROM", "Awards Office <awards@example.org>")

	s := loadSMTP()
	if s.from != "Awards Office <awards@example.org>" {
		t.Fatalf("explicit sender overridden: %q", s.from)
	}
	if s.port != 2525 {
		t.Fatalf("port = %d, want 2525", s.port)
	}
}

func TestSendMailNoRecipients(t *testing.T) {
	if err := SendMail(nil, "subject", "<p>body</p>"); err != nil {
		t.Fatalf("no-recipient send should be a no-op, got %v", err)
	}
}
