package services

import (
	"fmt"
	"testing"
	"time"

	"mcan/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.PaymentConsent{},
		&models.Payment{},
		&models.EIDCard{},
	))

	return db
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	testUserSeq++
	user := models.User{
		Email:    fmt.Sprintf("corper%d@example.com", testUserSeq),
		FullName: "Abdullahi Bello",
		Phone:    "+2348030000000",
		Password: "hashed",
		Role:     models.RoleMember,
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func enrollTestMember(t *testing.T, db *gorm.DB) (*models.User, *models.Member) {
	t.Helper()

	user := createTestUser(t, db)
	member, err := NewMembershipService(db).Enroll(user.ID, "LA", "Lagos", "2025")
	require.NoError(t, err)
	return user, member
}

// recordPaymentAt records a pending payment and pins its payment date so
// schedule assertions are deterministic.
func recordPaymentAt(t *testing.T, db *gorm.DB, memberID uint, reference string, at time.Time) *models.Payment {
	t.Helper()

	payment, err := NewPaymentService(db).RecordPayment(RecordPaymentInput{
		MemberID:             memberID,
		Amount:               500,
		PaymentMethod:        models.MethodBankTransfer,
		TransactionReference: reference,
		Description:          "Monthly dues",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Payment{}).Where("id = ?", payment.ID).
		Update("payment_date", at).Error)
	payment.PaymentDate = at
	return payment
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()

	require.Error(t, err)
	serr, ok := err.(*Error)
	require.True(t, ok, "expected *services.Error, got %T", err)
	require.Equal(t, kind, serr.Kind)
}
