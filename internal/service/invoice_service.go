package service

import (
	"bytes"
	"context"

	"github.com/Eursukkul/airline-ops/internal/apperr"
	"github.com/Eursukkul/airline-ops/internal/invoice"
	"github.com/Eursukkul/airline-ops/pkg/logger"
)

type InvoiceDocument struct {
	Filename string
	Content  []byte
}

type InvoiceService interface {
	Generate(ctx context.Context, ticketID uint) (*InvoiceDocument, error)
}

type invoiceService struct {
	tickets TicketService
	brand   string
	log     logger.Logger
}

func NewInvoiceService(tickets TicketService, brand string, log logger.Logger) InvoiceService {
	return &invoiceService{tickets: tickets, brand: brand, log: log}
}

func (s *invoiceService) Generate(ctx context.Context, ticketID uint) (*InvoiceDocument, error) {
	ticket, err := s.tickets.GetTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	inv, err := invoice.FromTicket(s.brand, ticket)
	if err != nil {
		return nil, apperr.Wrap(ErrInvoiceRender, err)
	}

	var buf bytes.Buffer
	if err := invoice.Render(&buf, inv); err != nil {
		s.log.Error("invoice rendering failed", "ticket_id", ticketID, "error", err)
		return nil, apperr.Wrap(ErrInvoiceRender, err)
	}

	return &InvoiceDocument{
		Filename: invoice.Filename(s.brand, ticket.PNR),
		Content:  buf.Bytes(),
	}, nil
}
