package services

import (
	"testing"
	"time"

	"mcan/models"

	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesActiveCurrentMember(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	member, err := NewMembershipService(db).Enroll(user.ID, "LA", "Lagos", "2025")
	require.NoError(t, err)

	require.Equal(t, user.ID, member.UserID)
	require.Equal(t, models.MembershipActive, member.MembershipStatus)
	require.Equal(t, models.PaymentStatusCurrent, member.PaymentStatus)
	require.False(t, member.RegistrationDate.IsZero())
	require.Nil(t, member.LastPaymentDate)
	require.Nil(t, member.NextPaymentDate)
}

func TestEnrollUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewMembershipService(db).Enroll(9999, "LA", "Lagos", "2025")
	requireKind(t, err, KindNotFound)
}

func TestEnrollMissingAttributes(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	_, err := NewMembershipService(db).Enroll(user.ID, "", "Lagos", "2025")
	requireKind(t, err, KindInvalidArgument)
}

func TestEnrollTwiceIsConflict(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	svc := NewMembershipService(db)

	_, err := svc.Enroll(user.ID, "LA", "Lagos", "2025")
	require.NoError(t, err)

	_, err = svc.Enroll(user.ID, "KD", "Kaduna", "2025")
	requireKind(t, err, KindConflict)

	var count int64
	require.NoError(t, db.Model(&models.Member{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestUpdateAttributesPartial(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	updated, err := NewMembershipService(db).UpdateAttributes(member.ID, MemberUpdate{
		DeploymentState: OptionalString{Set: true, Value: "Kano"},
	})
	require.NoError(t, err)

	// Only the provided field changed
	require.Equal(t, "Kano", updated.DeploymentState)
	require.Equal(t, member.StateCode, updated.StateCode)
	require.Equal(t, member.ServiceYear, updated.ServiceYear)
	require.Equal(t, models.MembershipActive, updated.MembershipStatus)
}

func TestUpdateAttributesRejectsEmptyProvidedField(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	_, err := NewMembershipService(db).UpdateAttributes(member.ID, MemberUpdate{
		StateCode: OptionalString{Set: true, Null: true},
	})
	requireKind(t, err, KindInvalidArgument)
}

func TestUpdateAttributesUnknownMember(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewMembershipService(db).UpdateAttributes(321, MemberUpdate{
		StateCode: OptionalString{Set: true, Value: "LA"},
	})
	requireKind(t, err, KindNotFound)
}

func TestUpdateAttributesStatusTransition(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	updated, err := NewMembershipService(db).UpdateAttributes(member.ID, MemberUpdate{
		MembershipStatus: OptionalString{Set: true, Value: string(models.MembershipSuspended)},
	})
	require.NoError(t, err)
	require.Equal(t, models.MembershipSuspended, updated.MembershipStatus)
}

func TestUpdateAttributesRejectedMergeWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	// A valid stateCode alongside an unknown status must leave the whole
	// row untouched, not half of it
	_, err := NewMembershipService(db).UpdateAttributes(member.ID, MemberUpdate{
		StateCode:        OptionalString{Set: true, Value: "KD"},
		MembershipStatus: OptionalString{Set: true, Value: "FROZEN"},
	})
	requireKind(t, err, KindInvalidArgument)

	var m models.Member
	require.NoError(t, db.Where("id = ?", member.ID).First(&m).Error)
	require.Equal(t, member.StateCode, m.StateCode)
	require.Equal(t, models.MembershipActive, m.MembershipStatus)
}

func TestUpdateAttributesUnknownStatus(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	_, err := NewMembershipService(db).UpdateAttributes(member.ID, MemberUpdate{
		MembershipStatus: OptionalString{Set: true, Value: "FROZEN"},
	})
	requireKind(t, err, KindInvalidArgument)
}

func TestTransitionStatusReturnsPriorAndNew(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)
	svc := NewMembershipService(db)

	prior, next, err := svc.TransitionStatus(member.ID, models.MembershipExpired)
	require.NoError(t, err)
	require.Equal(t, models.MembershipActive, prior)
	require.Equal(t, models.MembershipExpired, next)

	// Any state is reachable from any other administratively
	prior, next, err = svc.TransitionStatus(member.ID, models.MembershipActive)
	require.NoError(t, err)
	require.Equal(t, models.MembershipExpired, prior)
	require.Equal(t, models.MembershipActive, next)
}

func TestSetPaymentStatusExempt(t *testing.T) {
	db := setupTestDB(t)
	_, member := enrollTestMember(t, db)

	updated, err := NewMembershipService(db).SetPaymentStatus(member.ID, models.PaymentStatusExempt)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusExempt, updated.PaymentStatus)
}

func TestSweepOverdue(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMembershipService(db)

	past := time.Now().AddDate(0, -1, 0)
	future := time.Now().AddDate(0, 1, 0)

	_, due := enrollTestMember(t, db)
	require.NoError(t, db.Model(due).Update("next_payment_date", past).Error)

	_, notYetDue := enrollTestMember(t, db)
	require.NoError(t, db.Model(notYetDue).Update("next_payment_date", future).Error)

	_, exempt := enrollTestMember(t, db)
	require.NoError(t, db.Model(exempt).Updates(map[string]interface{}{
		"next_payment_date": past,
		"payment_status":    models.PaymentStatusExempt,
	}).Error)

	_, suspended := enrollTestMember(t, db)
	require.NoError(t, db.Model(suspended).Updates(map[string]interface{}{
		"next_payment_date": past,
		"membership_status": models.MembershipSuspended,
	}).Error)

	flipped, err := svc.SweepOverdue(time.Now())
	require.NoError(t, err)
	require.EqualValues(t, 1, flipped)

	assertPaymentStatus := func(id uint, want models.MemberPaymentStatus) {
		var m models.Member
		require.NoError(t, db.Where("id = ?", id).First(&m).Error)
		require.Equal(t, want, m.PaymentStatus)
	}

	assertPaymentStatus(due.ID, models.PaymentStatusOverdue)
	assertPaymentStatus(notYetDue.ID, models.PaymentStatusCurrent)
	assertPaymentStatus(exempt.ID, models.PaymentStatusExempt)
	assertPaymentStatus(suspended.ID, models.PaymentStatusCurrent)
}
