package service

import (
	"context"

	"renoquote_backend/internal/quotes/transport"
)

// GetPublicQuote resolves a share token to the read-only public view of a
// quote, including its full sub-quote and material tree.
func (s *Service) GetPublicQuote(ctx context.Context, token string) (*transport.PublicQuoteResponse, error) {
	quote, err := s.repo.GetQuoteByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	subQuotes, err := s.loadTree(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	return &transport.PublicQuoteResponse{
		Title:          quote.Title,
		Status:         quote.Status,
		RoomType:       quote.RoomType,
		MaterialsTotal: quote.MaterialsTotal,
		LaborTotal:     quote.LaborTotal,
		TotalAmount:    quote.TotalAmount,
		SubQuotes:      subQuotes,
	}, nil
}
