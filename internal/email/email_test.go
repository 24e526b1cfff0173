package email

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

type recordingSender struct {
	to, subject, body string
}

func (s *recordingSender) Send(_ context.Context, to, subject, body string) error {
	s.to, s.subject, s.body = to, subject, body
	return nil
}

func TestSendWelcome(t *testing.T) {
	s := &recordingSender{}
	if err := SendWelcome(context.Background(), s, "a<b>@example.com"); err != nil {
		t.Fatalf("SendWelcome: %v", err)
	}
	if s.to != "a<b>@example.com" {
		t.Errorf("to = %q", s.to)
	}
	if s.subject != welcomeSubject {
		t.Errorf("subject = %q", s.subject)
	}
	if strings.Contains(s.body, "<b>") {
		t.Errorf("address not escaped in body: %s", s.body)
	}
}

func TestNewSender_LocalLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := NewSender("local", "", "", logger)
	if _, ok := s.(*LogSender); !ok {
		t.Fatalf("got %T, want *LogSender", s)
	}
	if err := s.Send(context.Background(), "a@b.co", "hi", "body"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(buf.String(), "to=a@b.co") {
		t.Errorf("log missing recipient: %s", buf.String())
	}
}

func TestNewSender_ProductionUsesResend(t *testing.T) {
	s := NewSender("production", "re_test", "noreply@example.com", slog.Default())
	rs, ok := s.(*ResendSender)
	if !ok {
		t.Fatalf("got %T, want *ResendSender", s)
	}
	if rs.from != "noreply@example.com" {
		t.Errorf("from = %q", rs.from)
	}
}
