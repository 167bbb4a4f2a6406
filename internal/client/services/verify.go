package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/openmarket/internal/common"
)

type PaymentMethod string

const (
	PaymentOzow    PaymentMethod = "ozow"
	PaymentPayFast PaymentMethod = "payfast"
)

func (m PaymentMethod) Title() string {
	switch m {
	case PaymentOzow:
		return "Ozow"
	case PaymentPayFast:
		return "PayFast"
	}
	return string(m)
}

// VerificationFee is the monthly price of the verified seller badge.
const VerificationFee = "R15/month"

// VerificationBenefits are shown before the user picks a payment method.
var VerificationBenefits = []string{
	"Verified badge on your profile and listings",
	"Fraud protection through identity verification",
	"No ads while browsing and selling",
	"Increased trust with buyers",
	"Priority placement in search results (coming soon)",
	"Business credibility",
}

// VerificationQuote describes the payment the user would be sent to.
type VerificationQuote struct {
	Method  PaymentMethod
	Fee     string
	Message string
}

// GetVerified simulates the verification checkout. No payment is made and
// nothing is sent to the server.
func (s *accountService) GetVerified(ctx context.Context, method PaymentMethod) (*VerificationQuote, error) {
	if s.session.CurrentUser() == nil {
		return nil, common.ErrNotAuthenticated
	}
	if method != PaymentOzow && method != PaymentPayFast {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPayment, method)
	}

	s.log.Info(ctx, "verification checkout simulated", "method", string(method))
	return &VerificationQuote{
		Method: method,
		Fee:    VerificationFee,
		Message: fmt.Sprintf("Payment of %s via %s would be processed here. In production this redirects to the %s payment gateway.",
			VerificationFee, method.Title(), method.Title()),
	}, nil
}
