package paymentsvc

import (
	"context"

	"github.com/gebeta/delivery/internal/dal/telebirr"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/spf13/viper"
)

// PaymentService verifies telebirr payment references before an order is
// accepted as paid.
type PaymentService struct {
	verifier          verifier
	expectedRecipient string
}

// verifier is the external payment verification surface.
type verifier interface {
	Verify(ctx context.Context, reference string) (telebirr.VerificationResult, error)
}

// option is a function that configures the PaymentService.
type option func(*PaymentService)

// MustNewPaymentService creates a new PaymentService.
func MustNewPaymentService(opts ...option) *PaymentService {
	s := &PaymentService{
		expectedRecipient: viper.GetString("payments.expected_recipient"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.verifier == nil {
		s.verifier = telebirr.NewClient()
	}

	return s
}

// WithVerifier sets the verification client.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithVerifier(v verifier) option {
	return func(s *PaymentService) {
		s.verifier = v
	}
}

// WithExpectedRecipient sets the party name payments must be credited to.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithExpectedRecipient(name string) option {
	return func(s *PaymentService) {
		s.expectedRecipient = name
	}
}

// VerifyTelebirr checks a payment reference with the provider and validates
// that the money went to the configured recipient and that the transaction
// completed. Any mismatch is a validation failure, not an infrastructure
// error.
func (s *PaymentService) VerifyTelebirr(ctx context.Context, reference string) (telebirr.VerificationResult, error) {
	if reference == "" {
		return telebirr.VerificationResult{}, apperr.Validation("payment reference must not be empty")
	}

	result, err := s.verifier.Verify(ctx, reference)
	if err != nil {
		return telebirr.VerificationResult{}, err
	}

	if !result.Success {
		return telebirr.VerificationResult{}, apperr.Validation("invalid payment verification response")
	}

	if telebirr.NormalizeName(result.Data.CreditedPartyName) != telebirr.NormalizeName(s.expectedRecipient) {
		return telebirr.VerificationResult{}, apperr.Validation(
			"payment was not made to the correct recipient: %s", result.Data.CreditedPartyName,
		)
	}

	if result.Data.TransactionStatus != "Completed" {
		return telebirr.VerificationResult{}, apperr.Validation(
			"transaction is not completed: %s", result.Data.TransactionStatus,
		)
	}

	return result, nil
}
