package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderIDFormat(t *testing.T) {
	id := GenerateOrderID()
	require.Len(t, id, 12)

	for _, r := range id[:8] {
		assert.True(t, r >= '0' && r <= '9', "timestamp part must be digits, got %q", id)
	}
	for _, r := range id[8:] {
		assert.Contains(t, orderIDCharset, string(r))
	}
}

func TestUpdateStatusAppendsTimeline(t *testing.T) {
	order := &Order{Status: StatusPending}

	order.UpdateStatus(StatusConfirmed, "payment received", "admin")

	require.Len(t, order.Timeline, 1)
	assert.Equal(t, StatusConfirmed, order.Status)
	assert.Equal(t, "payment received", order.Timeline[0].Message)
	assert.Equal(t, "admin", order.Timeline[0].UpdatedBy)
}

func TestUpdateStatusDefaults(t *testing.T) {
	order := &Order{}
	order.UpdateStatus(StatusProcessing, "", "")

	require.Len(t, order.Timeline, 1)
	assert.Equal(t, "Order status updated to processing", order.Timeline[0].Message)
	assert.Equal(t, "system", order.Timeline[0].UpdatedBy)
}

func TestUpdateStatusSameStatusTwiceAppendsTwice(t *testing.T) {
	// Duplicate transitions are not deduplicated; the timeline records both.
	order := &Order{}
	order.UpdateStatus(StatusShipped, "", "")
	order.UpdateStatus(StatusShipped, "", "")

	assert.Len(t, order.Timeline, 2)
}

func TestUpdateStatusStampsEstimatedCompletionOnce(t *testing.T) {
	order := &Order{}
	order.UpdateStatus(StatusConfirmed, "", "")

	require.NotNil(t, order.EstimatedCompletionDate)
	first := *order.EstimatedCompletionDate
	assert.WithinDuration(t, time.Now().Add(10*24*time.Hour), first, time.Minute)

	order.UpdateStatus(StatusPending, "", "")
	order.UpdateStatus(StatusConfirmed, "", "")
	assert.Equal(t, first, *order.EstimatedCompletionDate)
}

func TestUpdateStatusStampsActualCompletionOnDelivery(t *testing.T) {
	order := &Order{}
	assert.Nil(t, order.ActualCompletionDate)

	order.UpdateStatus(StatusDelivered, "", "")
	require.NotNil(t, order.ActualCompletionDate)
	assert.WithinDuration(t, time.Now(), *order.ActualCompletionDate, time.Minute)
}

func TestProcessPaymentCompletesAtTotal(t *testing.T) {
	order := &Order{
		Pricing: Pricing{Total: 2360},
		Payment: Payment{Status: PaymentPending},
	}

	order.ProcessPayment(1000, "TXN-1", "online")
	assert.Equal(t, PaymentPending, order.Payment.Status)
	assert.Equal(t, 1360.0, order.PaymentBalance())

	order.ProcessPayment(1360, "TXN-2", "online")
	assert.Equal(t, PaymentCompleted, order.Payment.Status)
	assert.Equal(t, 0.0, order.PaymentBalance())
	assert.Equal(t, "TXN-2", order.Payment.TransactionID)
	assert.NotNil(t, order.Payment.PaidAt)
}

func TestPaymentBalanceAfterCreation(t *testing.T) {
	order := &Order{Pricing: Pricing{Total: 1280}}
	assert.Equal(t, 1280.0, order.PaymentBalance())
}

func TestProcessRefundPartialThenFull(t *testing.T) {
	order := &Order{
		Pricing: Pricing{Total: 2360},
		Payment: Payment{Status: PaymentCompleted, PaidAmount: 2360},
	}

	order.ProcessRefund(360)
	assert.Equal(t, PaymentPartialRefund, order.Payment.Status)

	order.ProcessRefund(2000)
	assert.Equal(t, PaymentRefunded, order.Payment.Status)
	assert.Equal(t, 2360.0, order.Payment.RefundAmount)
}

func TestCanBeCancelled(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusProcessing, false},
		{StatusShipped, false},
		{StatusDelivered, false},
		{StatusCancelled, false},
	}
	for _, tt := range tests {
		order := &Order{Status: tt.status}
		assert.Equal(t, tt.want, order.CanBeCancelled(), "status %s", tt.status)
	}
}

func TestCanBeReturnedWithinWindow(t *testing.T) {
	delivered := time.Now().Add(-29 * 24 * time.Hour)
	order := &Order{Status: StatusDelivered, ActualCompletionDate: &delivered}
	assert.True(t, order.CanBeReturned())
}

func TestCanBeReturnedOutsideWindow(t *testing.T) {
	delivered := time.Now().Add(-31 * 24 * time.Hour)
	order := &Order{Status: StatusDelivered, ActualCompletionDate: &delivered}
	assert.False(t, order.CanBeReturned())
}

func TestCanBeReturnedRequiresDelivery(t *testing.T) {
	recent := time.Now().Add(-time.Hour)
	order := &Order{Status: StatusShipped, ActualCompletionDate: &recent}
	assert.False(t, order.CanBeReturned())

	order = &Order{Status: StatusDelivered}
	assert.False(t, order.CanBeReturned())
}

func TestTotalItemsAndFormattedID(t *testing.T) {
	order := &Order{
		OrderID: "12345678ABCD",
		Items: []OrderItem{
			{Quantity: 2},
			{Quantity: 3},
		},
	}
	assert.Equal(t, 5, order.TotalItems())
	assert.Equal(t, "SKS-12345678ABCD", order.FormattedOrderID())
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus("quality_check"))
	assert.False(t, ValidOrderStatus("lost"))
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod("bank_transfer"))
	assert.False(t, ValidPaymentMethod("crypto"))
}
