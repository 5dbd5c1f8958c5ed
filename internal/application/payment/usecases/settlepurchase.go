package usecases

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/voidlabs/void/internal/application/payment/dto"
	"github.com/voidlabs/void/internal/domain/entitlement"
	"github.com/voidlabs/void/internal/domain/purchase"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

// Gift voucher defaults: what the recipient of a gifted void receives.
const (
	giftMaxChars    = 1000
	giftSealsQuota  = 3
	giftDefaultDays = 30
)

type SettlePurchaseCommand struct {
	SessionID  string
	OfferID    string
	Provider   purchase.Provider
	PaymentRef string
	Amount     float64
	Currency   string
	Status     string
	Metadata   map[string]string
}

// SettlePurchaseUseCase records a confirmed payment and grants the purchased
// capability. Settlement is idempotent per payment reference: the upsert
// reports whether the reference was already recorded, and the grant dispatch
// runs only on the first settlement.
type SettlePurchaseUseCase struct {
	purchaseRepo    purchase.Repository
	entitlementRepo entitlement.Repository
	logger          logger.Interface
}

func NewSettlePurchaseUseCase(
	purchaseRepo purchase.Repository,
	entitlementRepo entitlement.Repository,
	logger logger.Interface,
) *SettlePurchaseUseCase {
	return &SettlePurchaseUseCase{
		purchaseRepo:    purchaseRepo,
		entitlementRepo: entitlementRepo,
		logger:          logger,
	}
}

func (uc *SettlePurchaseUseCase) Execute(ctx context.Context, cmd SettlePurchaseCommand) (*dto.PurchaseDTO, error) {
	offering := purchase.GetOffering(cmd.OfferID)
	if offering == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Unknown offer: %s", cmd.OfferID))
	}

	expiresAt := offeringExpiry(offering)

	p, err := purchase.NewPurchase(
		cmd.SessionID,
		offering.FeatureType.String(),
		offering.ID,
		cmd.Amount,
		strings.ToUpper(cmd.Currency),
		cmd.Provider,
		cmd.PaymentRef,
		cmd.Status,
		cmd.Metadata,
		expiresAt,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	persisted, created, err := uc.purchaseRepo.UpsertByPaymentRef(ctx, p)
	if err != nil {
		return nil, err
	}

	if created {
		if err := uc.grantEntitlement(ctx, cmd.SessionID, offering, persisted.ID(), expiresAt); err != nil {
			uc.logger.Errorw("failed to grant entitlement",
				"purchase_id", persisted.ID(),
				"feature_type", offering.FeatureType,
				"error", err)
			return nil, err
		}
	} else {
		uc.logger.Infow("payment reference already settled; grant skipped",
			"purchase_id", persisted.ID(),
			"payment_ref", cmd.PaymentRef)
	}

	uc.logger.Infow("purchase settled",
		"purchase_id", persisted.ID(),
		"offer_id", offering.ID,
		"provider", cmd.Provider)

	return &dto.PurchaseDTO{
		ID:          persisted.ID(),
		FeatureType: persisted.FeatureType(),
		OfferID:     persisted.OfferID(),
		Amount:      persisted.Amount(),
		Currency:    persisted.Currency(),
		CreatedAt:   persisted.CreatedAt(),
		ExpiresAt:   persisted.ExpiresAt(),
	}, nil
}

// grantEntitlement is the closed dispatch from feature type to grant.
// Capsule and eternity purchases are recorded only; nothing consults a gate
// for them at write time.
func (uc *SettlePurchaseUseCase) grantEntitlement(ctx context.Context, sessionID string, offering *purchase.Offering, purchaseID string, expiresAt *time.Time) error {
	switch offering.FeatureType {
	case entitlement.FeaturePaper:
		paperID := strings.TrimPrefix(offering.ID, "paper_")
		return uc.entitlementRepo.UnlockPaper(ctx, sessionID, paperID, purchaseID)

	case entitlement.FeatureLongLetter:
		return uc.entitlementRepo.GrantLongLetter(ctx, sessionID, longLetterChars(offering.ID), purchaseID, expiresAt)

	case entitlement.FeatureInk:
		inkEffect := strings.TrimPrefix(offering.ID, "ink_")
		return uc.entitlementRepo.GrantInk(ctx, sessionID, inkEffect, purchaseID)

	case entitlement.FeatureSeal:
		sealType := strings.TrimPrefix(offering.ID, "seal_")
		return uc.entitlementRepo.GrantSeal(ctx, sessionID, sealType, 1, purchaseID, expiresAt)

	case entitlement.FeatureGift:
		token, err := mintGiftToken()
		if err != nil {
			return fmt.Errorf("failed to mint gift token: %w", err)
		}
		if expiresAt == nil {
			fallback := time.Now().AddDate(0, 0, giftDefaultDays)
			expiresAt = &fallback
		}
		return uc.entitlementRepo.CreateGiftVoucher(ctx, entitlement.GiftVoucher{
			GiverSessionID: sessionID,
			Token:          token,
			PurchaseID:     purchaseID,
			MaxChars:       giftMaxChars,
			SealsQuota:     giftSealsQuota,
			ExpiresAt:      expiresAt,
		})

	case entitlement.FeatureSanctuary:
		return uc.entitlementRepo.GrantSanctuary(ctx, sessionID, sanctuaryTier(offering.ID), purchaseID, expiresAt)

	case entitlement.FeatureCapsule, entitlement.FeatureEternity:
		return nil
	}

	return fmt.Errorf("no grant dispatch for feature type %q", offering.FeatureType)
}

func offeringExpiry(offering *purchase.Offering) *time.Time {
	if offering.DurationDays == 0 {
		return nil
	}
	t := time.Now().AddDate(0, 0, offering.DurationDays)
	return &t
}

func longLetterChars(offerID string) int {
	switch {
	case strings.Contains(offerID, "5000"):
		return 5000
	case strings.Contains(offerID, "infinite"):
		return 50000
	default:
		return 1000
	}
}

func sanctuaryTier(offerID string) string {
	switch {
	case strings.Contains(offerID, "yearly"):
		return "yearly"
	case strings.Contains(offerID, "lifetime"):
		return "lifetime"
	default:
		return "monthly"
	}
}

func mintGiftToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
