// Package email renders and delivers transactional emails over SMTP.
package email

import "context"

// Sender delivers the transactional emails the application sends.
type Sender interface {
	SendQuoteApprovedEmail(ctx context.Context, toEmail, quoteTitle string, totalAmount float64, quoteURL string) error
	SendQuoteRejectedEmail(ctx context.Context, toEmail, quoteTitle, quoteURL string) error
	SendAnalysisCompletedEmail(ctx context.Context, toEmail, quoteTitle string, workCategories []string, quoteURL string) error
}

// NoopSender discards all emails. Used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendQuoteApprovedEmail(context.Context, string, string, float64, string) error {
	return nil
}

func (NoopSender) SendQuoteRejectedEmail(context.Context, string, string, string) error {
	return nil
}

func (NoopSender) SendAnalysisCompletedEmail(context.Context, string, string, []string, string) error {
	return nil
}
