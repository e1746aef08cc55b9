package razorpay

import (
	"context"
	"fmt"
)

// CreatePaymentLink creates a per-transaction hosted checkout link.
// This backs the dynamic-link path; the default purchase flow still
// redirects to the fixed hosted page.
func (s *service) CreatePaymentLink(ctx context.Context, req PaymentLinkRequest) (PaymentLink, error) {
	if !s.configured() {
		return PaymentLink{}, ErrNotConfigured
	}

	description := req.Description
	if description == "" && req.CourseName != "" {
		description = fmt.Sprintf("Enrollment: %s", req.CourseName)
	}

	payload := paymentLinkPayload{
		Amount:      req.Amount * 100,
		Currency:    currencyINR,
		Description: description,
		Customer:    customerFromRequest(req),
		Notes: orderNotes(OrderRequest{
			Amount:      req.Amount,
			CourseName:  req.CourseName,
			StudentName: req.StudentName,
			Email:       req.Email,
			Phone:       req.Phone,
		}),
	}

	var link PaymentLink
	err := s.post(ctx, "/payment_links", payload, &link)
	if err != nil {
		return PaymentLink{}, err
	}

	return link, nil
}

func customerFromRequest(req PaymentLinkRequest) *linkCustomer {
	if req.StudentName == "" && req.Email == "" && req.Phone == "" {
		return nil
	}

	return &linkCustomer{
		Name:    req.StudentName,
		Email:   req.Email,
		Contact: req.Phone,
	}
}
