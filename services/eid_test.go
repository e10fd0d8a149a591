package services

import (
	"testing"

	"mcan/models"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestIssueRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)

	_, err := NewEIDService(db).Issue(user.ID)
	requireKind(t, err, KindNotFound)
}

func TestIssueUnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := NewEIDService(db).Issue(555)
	requireKind(t, err, KindNotFound)
}

func TestIssueVersionsIncrease(t *testing.T) {
	db := setupTestDB(t)
	user, _ := enrollTestMember(t, db)
	svc := NewEIDService(db)

	first, err := svc.Issue(user.ID)
	require.NoError(t, err)
	require.Equal(t, "v1", first.Version)
	require.Equal(t, 1, first.VersionSeq)

	second, err := svc.Issue(user.ID)
	require.NoError(t, err)
	require.Equal(t, "v2", second.Version)
	require.Equal(t, 2, second.VersionSeq)

	// Both rows are retained
	var count int64
	require.NoError(t, db.Model(&models.EIDCard{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)

	current, err := svc.CurrentCard(user.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, current.ID)
	require.Equal(t, "v2", current.Version)
}

func TestIssuedCardSnapshotsMemberState(t *testing.T) {
	db := setupTestDB(t)
	user, member := enrollTestMember(t, db)
	svc := NewEIDService(db)

	card, err := svc.Issue(user.ID)
	require.NoError(t, err)

	require.Contains(t, card.SVGMarkup, user.FullName)
	require.Contains(t, card.SVGMarkup, string(user.Role))
	require.Contains(t, card.SVGMarkup, member.StateCode)
	require.Contains(t, card.SVGMarkup, member.ServiceYear)
	require.Contains(t, card.SVGMarkup, member.RegistrationDate.Format("02 Jan 2006"))
	require.Contains(t, card.SVGMarkup, "Biometrics: not enrolled")
	require.Contains(t, card.SVGMarkup, "v1")

	// A card is never rewritten; attribute changes only show on re-issue
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("biometric_data", datatypes.JSON([]byte(`{"thumbprint":"aGVsbG8="}`))).Error)

	var unchanged models.EIDCard
	require.NoError(t, db.Where("id = ?", card.ID).First(&unchanged).Error)
	require.Equal(t, card.SVGMarkup, unchanged.SVGMarkup)

	reissued, err := svc.Issue(user.ID)
	require.NoError(t, err)
	require.Contains(t, reissued.SVGMarkup, "Biometrics: enrolled")
}

func TestRenderCardSVGIsDeterministic(t *testing.T) {
	db := setupTestDB(t)
	user, member := enrollTestMember(t, db)

	a := renderCardSVG(user, member, 3)
	b := renderCardSVG(user, member, 3)
	require.Equal(t, a, b)
}
