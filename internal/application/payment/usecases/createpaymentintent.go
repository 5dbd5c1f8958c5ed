package usecases

import (
	"context"

	"github.com/voidlabs/void/internal/application/payment/dto"
	"github.com/voidlabs/void/internal/domain/purchase"
	paymentgw "github.com/voidlabs/void/internal/infrastructure/payment"
	"github.com/voidlabs/void/internal/shared/errors"
	"github.com/voidlabs/void/internal/shared/logger"
)

// Mobile money checkout paths, appended to the request origin.
const (
	mobileMoneyNotifyPath = "/payments/sinetpay/callback"
	mobileMoneyReturnPath = "/void"
)

type CreatePaymentIntentCommand struct {
	SessionID      string
	OfferID        string
	Provider       purchase.Provider
	MobileOperator string
	Origin         string
}

type CreatePaymentIntentUseCase struct {
	cardGateway paymentgw.CardGateway
	mobileMoney paymentgw.MobileMoneyGateway
	logger      logger.Interface
}

func NewCreatePaymentIntentUseCase(
	cardGateway paymentgw.CardGateway,
	mobileMoney paymentgw.MobileMoneyGateway,
	logger logger.Interface,
) *CreatePaymentIntentUseCase {
	return &CreatePaymentIntentUseCase{
		cardGateway: cardGateway,
		mobileMoney: mobileMoney,
		logger:      logger,
	}
}

func (uc *CreatePaymentIntentUseCase) Execute(ctx context.Context, cmd CreatePaymentIntentCommand) (*dto.CreatePaymentIntentResponse, error) {
	offering := purchase.GetOffering(cmd.OfferID)
	if offering == nil {
		return nil, errors.NewNotFoundError("Unknown offering.")
	}

	metadata := map[string]string{
		"session_id":   cmd.SessionID,
		"feature_type": offering.FeatureType.String(),
		"offer_id":     offering.ID,
	}

	if cmd.Provider == purchase.ProviderMobileMoney {
		return uc.startMobileMoney(ctx, cmd, offering, metadata)
	}
	return uc.startCard(ctx, cmd, offering, metadata)
}

func (uc *CreatePaymentIntentUseCase) startCard(ctx context.Context, cmd CreatePaymentIntentCommand, offering *purchase.Offering, metadata map[string]string) (*dto.CreatePaymentIntentResponse, error) {
	intent, err := uc.cardGateway.CreatePaymentIntent(ctx, paymentgw.CreateIntentParams{
		AmountCents: offering.AmountCents,
		Currency:    "eur",
		Description: offering.Label,
		Metadata:    metadata,
	})
	if err != nil {
		uc.logger.Errorw("failed to create payment intent", "offer_id", offering.ID, "error", err)
		return nil, err
	}

	checkout, err := uc.cardGateway.CreateCheckoutSession(ctx, paymentgw.CheckoutParams{
		AmountCents: offering.AmountCents,
		Currency:    "eur",
		ProductName: offering.Label,
		SuccessURL:  cmd.Origin + "/void?ritual=done&pi=" + intent.ID,
		CancelURL:   cmd.Origin + "/void?ritual=cancel",
		Metadata:    metadata,
	})
	if err != nil {
		uc.logger.Errorw("failed to create checkout session", "offer_id", offering.ID, "error", err)
		return nil, err
	}

	return &dto.CreatePaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		CheckoutURL:     checkout.URL,
		Offer:           offeringDTO(offering),
		Copy:            ritualCopy(),
	}, nil
}

func (uc *CreatePaymentIntentUseCase) startMobileMoney(ctx context.Context, cmd CreatePaymentIntentCommand, offering *purchase.Offering, metadata map[string]string) (*dto.CreatePaymentIntentResponse, error) {
	result, err := uc.mobileMoney.InitPayment(ctx, paymentgw.MobileMoneyInitParams{
		AmountCents:    offering.AmountCents,
		Description:    offering.Label,
		Metadata:       metadata,
		Origin:         cmd.Origin,
		NotifyPath:     mobileMoneyNotifyPath,
		ReturnPath:     mobileMoneyReturnPath,
		MobileOperator: cmd.MobileOperator,
	})
	if err != nil {
		uc.logger.Errorw("failed to init mobile money payment", "offer_id", offering.ID, "error", err)
		return nil, err
	}

	return &dto.CreatePaymentIntentResponse{
		TransactionID: result.TransactionID,
		PaymentURL:    result.PaymentURL,
		Offer:         offeringDTO(offering),
		Copy:          ritualCopy(),
	}, nil
}

func offeringDTO(offering *purchase.Offering) dto.OfferingDTO {
	return dto.OfferingDTO{
		ID:           offering.ID,
		FeatureType:  offering.FeatureType.String(),
		Label:        offering.Label,
		AmountCents:  offering.AmountCents,
		DurationDays: offering.DurationDays,
	}
}

func ritualCopy() dto.RitualCopy {
	return dto.RitualCopy{
		Title:    "C'est fait.",
		Subtitle: "Le geste est enregistre.",
	}
}
