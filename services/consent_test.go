package services

import (
	"testing"

	"mcan/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRecordConsentValidation(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewConsentService(db)

	_, err := svc.RecordConsent(RecordConsentInput{
		MemberID: member.ID, MonthlyAmount: 0, PaymentMethod: "BANK_TRANSFER",
	})
	requireKind(t, err, KindInvalidArgument)

	_, err = svc.RecordConsent(RecordConsentInput{
		MemberID: member.ID, MonthlyAmount: 500,
	})
	requireKind(t, err, KindInvalidArgument)

	_, err = svc.RecordConsent(RecordConsentInput{
		MemberID: 4242, MonthlyAmount: 500, PaymentMethod: "BANK_TRANSFER",
	})
	requireKind(t, err, KindNotFound)
}

func TestConsentHistoryIsAppendOnly(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewConsentService(db)

	first, err := svc.RecordConsent(RecordConsentInput{
		MemberID:      member.ID,
		MonthlyAmount: 500,
		PaymentMethod: "BANK_TRANSFER",
		ConsentGiven:  true,
	})
	require.NoError(t, err)

	// Changing bank details means superseding with a new row
	second, err := svc.RecordConsent(RecordConsentInput{
		MemberID:      member.ID,
		MonthlyAmount: 750,
		PaymentMethod: "ALLOWANCE_DEDUCTION",
		BankDetails:   datatypes.JSON([]byte(`{"bank":"GTB","accountNumber":"0123456789"}`)),
		AutoDeduction: true,
		ConsentGiven:  true,
	})
	require.NoError(t, err)

	history, err := svc.ConsentHistory(member.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, second.ID, history[0].ID)
	require.Equal(t, first.ID, history[1].ID)

	current, err := svc.CurrentConsent(member.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, current.ID)
	require.Equal(t, 750.0, current.MonthlyAmount)
	require.True(t, current.AutoDeduction)

	// The superseded consent is untouched
	var prior models.PaymentConsent
	require.NoError(t, db.Where("id = ?", first.ID).First(&prior).Error)
	require.Equal(t, 500.0, prior.MonthlyAmount)
}

func TestCurrentConsentWithoutAnyRows(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	_, err := NewConsentService(db).CurrentConsent(member.ID)
	requireKind(t, err, KindNotFound)
}
