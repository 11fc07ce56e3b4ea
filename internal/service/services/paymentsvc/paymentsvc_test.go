package paymentsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/gebeta/delivery/internal/dal/telebirr"
	"github.com/gebeta/delivery/internal/service/models/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	result telebirr.VerificationResult
	err    error
}

func (f *fakeVerifier) Verify(context.Context, string) (telebirr.VerificationResult, error) {
	return f.result, f.err
}

func completedResult(recipient string) telebirr.VerificationResult {
	r := telebirr.VerificationResult{Success: true}
	r.Data.CreditedPartyName = recipient
	r.Data.TransactionStatus = "Completed"
	r.Data.Amount = "420.00"

	return r
}

func newTestService(v *fakeVerifier) *PaymentService {
	return MustNewPaymentService(
		WithVerifier(v),
		WithExpectedRecipient("Abebe Bikila"),
	)
}

func TestVerifyTelebirrAcceptsCompletedPayment(t *testing.T) {
	svc := newTestService(&fakeVerifier{result: completedResult("Abebe Bikila")})

	result, err := svc.VerifyTelebirr(context.Background(), "CH12345678")
	require.NoError(t, err)
	assert.Equal(t, "420.00", result.Data.Amount)
}

func TestVerifyTelebirrRecipientNameIsCaseInsensitive(t *testing.T) {
	svc := newTestService(&fakeVerifier{result: completedResult("  ABEBE bikila ")})

	_, err := svc.VerifyTelebirr(context.Background(), "CH12345678")
	require.NoError(t, err)
}

func TestVerifyTelebirrRejectsWrongRecipient(t *testing.T) {
	svc := newTestService(&fakeVerifier{result: completedResult("Someone Else")})

	_, err := svc.VerifyTelebirr(context.Background(), "CH12345678")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestVerifyTelebirrRejectsIncompleteTransaction(t *testing.T) {
	result := completedResult("Abebe Bikila")
	result.Data.TransactionStatus = "Pending"
	svc := newTestService(&fakeVerifier{result: result})

	_, err := svc.VerifyTelebirr(context.Background(), "CH12345678")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestVerifyTelebirrRejectsUnsuccessfulResponse(t *testing.T) {
	result := completedResult("Abebe Bikila")
	result.Success = false
	svc := newTestService(&fakeVerifier{result: result})

	_, err := svc.VerifyTelebirr(context.Background(), "CH12345678")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestVerifyTelebirrRejectsEmptyReference(t *testing.T) {
	svc := newTestService(&fakeVerifier{})

	_, err := svc.VerifyTelebirr(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestVerifyTelebirrPropagatesProviderErrors(t *testing.T) {
	svc := newTestService(&fakeVerifier{err: errors.New("api unreachable")})

	_, err := svc.VerifyTelebirr(context.Background(), "CH12345678")
	require.Error(t, err)
	assert.False(t, apperr.IsValidation(err))
}
