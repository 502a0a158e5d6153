package notification

import (
	"context"
	"testing"

	"renoquote_backend/internal/events"
	quotes "renoquote_backend/internal/quotes/service"
	"renoquote_backend/platform/logger"

	"github.com/google/uuid"
)

type testConfig struct{}

func (testConfig) GetAppBaseURL() string { return "https://app.example.com" }

type testSender struct {
	approvedCalls          int
	rejectedCalls          int
	analysisCompletedCalls int
	lastEmail              string
}

func (s *testSender) SendQuoteApprovedEmail(_ context.Context, toEmail, _ string, _ float64, _ string) error {
	s.approvedCalls++
	s.lastEmail = toEmail
	return nil
}

func (s *testSender) SendQuoteRejectedEmail(_ context.Context, toEmail, _, _ string) error {
	s.rejectedCalls++
	s.lastEmail = toEmail
	return nil
}

func (s *testSender) SendAnalysisCompletedEmail(_ context.Context, toEmail, _ string, _ []string, _ string) error {
	s.analysisCompletedCalls++
	s.lastEmail = toEmail
	return nil
}

type testQuoteReader struct {
	summary quotes.QuoteSummary
}

func (r testQuoteReader) Summary(context.Context, uuid.UUID) (quotes.QuoteSummary, error) {
	return r.summary, nil
}

func newTestModule(t *testing.T, sender *testSender, reader testQuoteReader) *events.InMemoryBus {
	t.Helper()
	bus := events.NewInMemoryBus(logger.New("development"))
	NewModule(bus, sender, reader, logger.New("development"), testConfig{})
	return bus
}

func statusEvent(to, email string) events.QuoteStatusChanged {
	return events.QuoteStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		QuoteID:     uuid.New(),
		OwnerID:     uuid.New(),
		OwnerEmail:  email,
		Title:       "Bathroom renovation",
		FromStatus:  "pending",
		ToStatus:    to,
		TotalAmount: 1500,
	}
}

func TestQuoteApproved_SendsEmail(t *testing.T) {
	sender := &testSender{}
	bus := newTestModule(t, sender, testQuoteReader{})

	if err := bus.PublishSync(context.Background(), statusEvent("approved", "owner@example.com")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if sender.approvedCalls != 1 {
		t.Errorf("approved emails = %d, want 1", sender.approvedCalls)
	}
	if sender.lastEmail != "owner@example.com" {
		t.Errorf("recipient = %q, want owner@example.com", sender.lastEmail)
	}
}

func TestQuoteRejected_SendsEmail(t *testing.T) {
	sender := &testSender{}
	bus := newTestModule(t, sender, testQuoteReader{})

	if err := bus.PublishSync(context.Background(), statusEvent("rejected", "owner@example.com")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if sender.rejectedCalls != 1 {
		t.Errorf("rejected emails = %d, want 1", sender.rejectedCalls)
	}
}

func TestOtherTransitions_NoEmail(t *testing.T) {
	sender := &testSender{}
	bus := newTestModule(t, sender, testQuoteReader{})

	for _, to := range []string{"pending", "analyzing", "expired"} {
		if err := bus.PublishSync(context.Background(), statusEvent(to, "owner@example.com")); err != nil {
			t.Fatalf("publish %s: %v", to, err)
		}
	}
	if sender.approvedCalls+sender.rejectedCalls != 0 {
		t.Errorf("unexpected emails for non-terminal transitions")
	}
}

func TestMissingOwnerEmail_NoEmail(t *testing.T) {
	sender := &testSender{}
	bus := newTestModule(t, sender, testQuoteReader{})

	if err := bus.PublishSync(context.Background(), statusEvent("approved", "")); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if sender.approvedCalls != 0 {
		t.Errorf("email sent despite missing recipient")
	}
}

func TestAnalysisCompleted_SendsEmail(t *testing.T) {
	sender := &testSender{}
	contact := "owner@example.com"
	bus := newTestModule(t, sender, testQuoteReader{summary: quotes.QuoteSummary{
		ID:           uuid.New(),
		Title:        "Kitchen remodel",
		ContactEmail: &contact,
	}})

	evt := events.AnalysisCompleted{
		BaseEvent:      events.NewBaseEvent(),
		JobID:          uuid.New(),
		QuoteID:        uuid.New(),
		WorkCategories: []string{"painting", "electrical"},
		TotalEstimate:  2400,
	}
	if err := bus.PublishSync(context.Background(), evt); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if sender.analysisCompletedCalls != 1 {
		t.Errorf("analysis emails = %d, want 1", sender.analysisCompletedCalls)
	}
}
