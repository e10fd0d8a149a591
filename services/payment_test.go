package services

import (
	"testing"
	"time"

	"mcan/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRecordPaymentIsPending(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	payment, err := NewPaymentService(db).RecordPayment(RecordPaymentInput{
		MemberID:             member.ID,
		Amount:               500,
		PaymentMethod:        models.MethodBankTransfer,
		TransactionReference: "TXN-1",
		Description:          "Monthly dues",
	})
	require.NoError(t, err)

	require.Equal(t, models.PaymentPending, payment.Status)
	require.Equal(t, "NGN", payment.Currency) // default currency
	require.Equal(t, "TXN-1", payment.TransactionReference)

	// Recording alone must not touch the ledger
	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.Nil(t, m.LastPaymentDate)
	require.Equal(t, models.PaymentStatusCurrent, m.PaymentStatus)
}

func TestRecordPaymentValidation(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	_, err := svc.RecordPayment(RecordPaymentInput{
		MemberID: member.ID, Amount: 0,
		PaymentMethod: models.MethodCard, TransactionReference: "TXN-A",
	})
	requireKind(t, err, KindInvalidArgument)

	_, err = svc.RecordPayment(RecordPaymentInput{
		MemberID: member.ID, Amount: 500,
		PaymentMethod: "CHEQUE", TransactionReference: "TXN-B",
	})
	requireKind(t, err, KindInvalidArgument)

	_, err = svc.RecordPayment(RecordPaymentInput{
		MemberID: member.ID, Amount: 500,
		PaymentMethod: models.MethodCard,
	})
	requireKind(t, err, KindInvalidArgument)

	_, err = svc.RecordPayment(RecordPaymentInput{
		MemberID: 9999, Amount: 500,
		PaymentMethod: models.MethodCard, TransactionReference: "TXN-C",
	})
	requireKind(t, err, KindNotFound)
}

func TestDuplicateTransactionReferenceIsConflict(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	input := RecordPaymentInput{
		MemberID:             member.ID,
		Amount:               500,
		PaymentMethod:        models.MethodBankTransfer,
		TransactionReference: "TXN-1",
	}

	_, err := svc.RecordPayment(input)
	require.NoError(t, err)

	_, err = svc.RecordPayment(input)
	requireKind(t, err, KindConflict)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).
		Where("transaction_reference = ?", "TXN-1").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestSettleCompletedAdvancesLedger(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	paidAt := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	payment := recordPaymentAt(t, db, member.ID, "TXN-1", paidAt)

	settled, err := svc.Settle(payment.ID, models.PaymentCompleted)
	require.NoError(t, err)
	require.Equal(t, models.PaymentCompleted, settled.Status)

	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.Equal(t, models.PaymentStatusCurrent, m.PaymentStatus)
	require.NotNil(t, m.LastPaymentDate)
	require.True(t, m.LastPaymentDate.Equal(paidAt))
	require.NotNil(t, m.NextPaymentDate)
	require.True(t, m.NextPaymentDate.Equal(paidAt.AddDate(0, 1, 0)))
}

func TestSettleIsOneWay(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	payment := recordPaymentAt(t, db, member.ID, "TXN-1", time.Now())

	_, err := svc.Settle(payment.ID, models.PaymentCompleted)
	require.NoError(t, err)

	// Any further settle attempt conflicts and changes nothing
	_, err = svc.Settle(payment.ID, models.PaymentCompleted)
	requireKind(t, err, KindConflict)
	_, err = svc.Settle(payment.ID, models.PaymentFailed)
	requireKind(t, err, KindConflict)

	var p models.Payment
	require.NoError(t, db.Where("id = ?", payment.ID).First(&p).Error)
	require.Equal(t, models.PaymentCompleted, p.Status)
}

func TestSettleRejectsNonTerminalStatus(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	payment := recordPaymentAt(t, db, member.ID, "TXN-1", time.Now())

	_, err := svc.Settle(payment.ID, models.PaymentPending)
	requireKind(t, err, KindInvalidArgument)
}

func TestSettleUnknownPayment(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewPaymentService(db).Settle(777, models.PaymentCompleted)
	requireKind(t, err, KindNotFound)
}

func TestSettleFailedLeavesLedgerAlone(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	payment := recordPaymentAt(t, db, member.ID, "TXN-1", time.Now())

	_, err := svc.Settle(payment.ID, models.PaymentFailed)
	require.NoError(t, err)

	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.Equal(t, models.PaymentStatusCurrent, m.PaymentStatus)
	require.Nil(t, m.LastPaymentDate)
	require.Nil(t, m.NextPaymentDate)
}

func TestSettleCompletedNeverClearsExempt(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	_, err := NewMembershipService(db).SetPaymentStatus(member.ID, models.PaymentStatusExempt)
	require.NoError(t, err)

	payment := recordPaymentAt(t, db, member.ID, "TXN-1", time.Now())
	_, err = svc.Settle(payment.ID, models.PaymentCompleted)
	require.NoError(t, err)

	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.Equal(t, models.PaymentStatusExempt, m.PaymentStatus)
	// The schedule still advances; only the standing override is preserved
	require.NotNil(t, m.LastPaymentDate)
}

// resetToPending simulates a gateway replaying its webhook stream with a
// refund for a payment the ledger had already seen complete.
func resetToPending(t *testing.T, db *gorm.DB, paymentID uint) {
	t.Helper()
	require.NoError(t, db.Model(&models.Payment{}).Where("id = ?", paymentID).
		Update("status", models.PaymentPending).Error)
}

func TestRefundSolePaymentClearsSchedule(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	payment := recordPaymentAt(t, db, member.ID, "TXN-1", time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))
	_, err := svc.Settle(payment.ID, models.PaymentCompleted)
	require.NoError(t, err)

	resetToPending(t, db, payment.ID)
	_, err = svc.Settle(payment.ID, models.PaymentRefunded)
	require.NoError(t, err)

	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.Nil(t, m.LastPaymentDate)
	require.Nil(t, m.NextPaymentDate)
	require.False(t, m.NeedsReconciliation)
}

func TestRefundLatestRestoresPriorSchedule(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	first := recordPaymentAt(t, db, member.ID, "TXN-1", time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	second := recordPaymentAt(t, db, member.ID, "TXN-2", time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))

	_, err := svc.Settle(first.ID, models.PaymentCompleted)
	require.NoError(t, err)
	_, err = svc.Settle(second.ID, models.PaymentCompleted)
	require.NoError(t, err)

	resetToPending(t, db, second.ID)
	_, err = svc.Settle(second.ID, models.PaymentRefunded)
	require.NoError(t, err)

	// The schedule is exactly what settling the first payment wrote
	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.NotNil(t, m.LastPaymentDate)
	require.True(t, m.LastPaymentDate.Equal(first.PaymentDate))
	require.NotNil(t, m.NextPaymentDate)
	require.True(t, m.NextPaymentDate.Equal(first.PaymentDate.AddDate(0, 1, 0)))
	require.False(t, m.NeedsReconciliation)
}

func TestRefundSupersededPaymentIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	first := recordPaymentAt(t, db, member.ID, "TXN-1", time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC))
	second := recordPaymentAt(t, db, member.ID, "TXN-2", time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC))

	_, err := svc.Settle(second.ID, models.PaymentCompleted)
	require.NoError(t, err)

	// A later completed payment owns the schedule; refunding the earlier,
	// still-pending one has nothing to unwind
	_, err = svc.Settle(first.ID, models.PaymentRefunded)
	require.NoError(t, err)

	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.True(t, m.LastPaymentDate.Equal(second.PaymentDate))
	require.True(t, m.NextPaymentDate.Equal(second.PaymentDate.AddDate(0, 1, 0)))
	require.False(t, m.NeedsReconciliation)
}

func TestRefundUnexplainedScheduleFlagsReconciliation(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewPaymentService(db)

	// Ledger state that no completed payment row explains
	manual := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Member{}).Where("id = ?", member.ID).Updates(map[string]interface{}{
		"last_payment_date": manual,
		"next_payment_date": manual.AddDate(0, 1, 0),
	}).Error)

	payment := recordPaymentAt(t, db, member.ID, "TXN-1", time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC))
	_, err := svc.Settle(payment.ID, models.PaymentRefunded)
	require.NoError(t, err)

	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.True(t, m.NeedsReconciliation)
	// The schedule itself is left untouched
	require.True(t, m.LastPaymentDate.Equal(manual))
	require.True(t, m.NextPaymentDate.Equal(manual.AddDate(0, 1, 0)))
}
