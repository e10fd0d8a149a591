package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMembershipStatusTable(t *testing.T) {
	for _, s := range []MembershipStatus{MembershipActive, MembershipInactive, MembershipSuspended, MembershipExpired} {
		require.True(t, s.Valid(), "%s should be legal", s)
	}
	require.False(t, MembershipStatus("FROZEN").Valid())
	require.False(t, MembershipStatus("").Valid())
}

func TestMemberPaymentStatusTable(t *testing.T) {
	for _, s := range []MemberPaymentStatus{PaymentStatusCurrent, PaymentStatusOverdue, PaymentStatusExempt} {
		require.True(t, s.Valid())
	}
	require.False(t, MemberPaymentStatus("DUE").Valid())
}

func TestPaymentStatusTerminal(t *testing.T) {
	require.False(t, PaymentPending.Terminal())
	require.True(t, PaymentCompleted.Terminal())
	require.True(t, PaymentFailed.Terminal())
	require.True(t, PaymentRefunded.Terminal())
}

func TestPaymentMethodTable(t *testing.T) {
	for _, m := range []PaymentMethod{MethodBankTransfer, MethodCard, MethodUSSD, MethodAllowanceDeduction} {
		require.True(t, m.Valid())
	}
	require.False(t, PaymentMethod("CHEQUE").Valid())
}
