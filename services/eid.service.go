package services

import (
	"errors"
	"fmt"
	"log"

	"mcan/models"

	"gorm.io/gorm"
)

// EIDService issues and reads e-ID cards. A card is a pure rendering of the
// identity and membership snapshot at issuance time; re-issuing never
// touches old rows.
type EIDService struct {
	DB *gorm.DB
}

func NewEIDService(db *gorm.DB) *EIDService {
	return &EIDService{DB: db}
}

// Issue renders a new card for the user and appends it with the next
// version number. An e-ID is proof of membership, so a user without a
// member record cannot be issued one. The unique index on
// (user_id, version_seq) backstops the version query against a concurrent
// issuance.
func (s *EIDService) Issue(userID uint) (*models.EIDCard, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("User not found!")
		}
		log.Printf("[EID] Error fetching user %d: %v", userID, err)
		return nil, Internal("Failed to generate e-ID!")
	}

	var member models.Member
	if err := s.DB.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Member record not found for this user!")
		}
		log.Printf("[EID] Error fetching member for user %d: %v", userID, err)
		return nil, Internal("Failed to generate e-ID!")
	}

	var card models.EIDCard
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var maxSeq int
		err := tx.Model(&models.EIDCard{}).
			Where("user_id = ?", userID).
			Select("COALESCE(MAX(version_seq), 0)").
			Scan(&maxSeq).Error
		if err != nil {
			log.Printf("[EID] Error reading card versions for user %d: %v", userID, err)
			return Internal("Failed to generate e-ID!")
		}

		seq := maxSeq + 1
		card = models.EIDCard{
			UserID:     userID,
			SVGMarkup:  renderCardSVG(&user, &member, seq),
			Version:    fmt.Sprintf("v%d", seq),
			VersionSeq: seq,
		}
		if err := tx.Create(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return Conflict("Another e-ID issuance is in progress, please retry!")
			}
			log.Printf("[EID] Error creating card for user %d: %v", userID, err)
			return Internal("Failed to generate e-ID!")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[EID] Issued card %s for user %d", card.Version, userID)
	return &card, nil
}

// CurrentCard returns the highest-version card for the user.
func (s *EIDService) CurrentCard(userID uint) (*models.EIDCard, error) {
	var card models.EIDCard
	err := s.DB.Where("user_id = ?", userID).Order("version_seq DESC").First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("e-ID not found!")
		}
		log.Printf("[EID] Error fetching card for user %d: %v", userID, err)
		return nil, Internal("Failed to fetch e-ID!")
	}
	return &card, nil
}

const cardTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="640" height="400" viewBox="0 0 640 400">
  <rect width="640" height="400" rx="16" fill="#0b6623"/>
  <rect x="12" y="12" width="616" height="376" rx="12" fill="#ffffff"/>
  <text x="320" y="52" text-anchor="middle" font-family="Arial" font-size="22" font-weight="bold" fill="#0b6623">MUSLIM CORPERS' ASSOCIATION OF NIGERIA</text>
  <text x="320" y="78" text-anchor="middle" font-family="Arial" font-size="14" fill="#333333">Electronic Membership Identity Card</text>
  <text x="40" y="140" font-family="Arial" font-size="18" font-weight="bold" fill="#111111">%s</text>
  <text x="40" y="172" font-family="Arial" font-size="14" fill="#333333">Role: %s</text>
  <text x="40" y="196" font-family="Arial" font-size="14" fill="#333333">State Code: %s</text>
  <text x="40" y="220" font-family="Arial" font-size="14" fill="#333333">Service Year: %s</text>
  <text x="40" y="244" font-family="Arial" font-size="14" fill="#333333">Registered: %s</text>
  <text x="40" y="268" font-family="Arial" font-size="14" fill="#333333">Biometrics: %s</text>
  <text x="40" y="360" font-family="Arial" font-size="12" fill="#777777">Serial: MCAN-%06d-%d</text>
  <text x="600" y="360" text-anchor="end" font-family="Arial" font-size="12" fill="#777777">%s</text>
</svg>`

// renderCardSVG builds the card body from the snapshot. Same inputs, same
// markup: the render carries no clocks or randomness of its own.
func renderCardSVG(user *models.User, member *models.Member, seq int) string {
	biometrics := "not enrolled"
	if len(user.BiometricData) > 0 {
		biometrics = "enrolled"
	}

	version := fmt.Sprintf("v%d", seq)
	return fmt.Sprintf(cardTemplate,
		user.FullName,
		user.Role,
		member.StateCode,
		member.ServiceYear,
		member.RegistrationDate.Format("02 Jan 2006"),
		biometrics,
		user.ID,
		seq,
		version,
	)
}
