package purchase

import "github.com/voidlabs/void/internal/domain/entitlement"

// Offering is one purchasable item. The catalog is code, not configuration:
// offer ids are referenced by the settlement dispatch and by clients.
type Offering struct {
	ID           string
	FeatureType  entitlement.FeatureType
	Label        string
	AmountCents  int64
	DurationDays int // 0 means no expiry
}

// Offerings is the fixed catalog.
var Offerings = []Offering{
	{ID: "long_letter_1000", FeatureType: entitlement.FeatureLongLetter, Label: "Longue Lettre 1000", AmountCents: 99},
	{ID: "long_letter_5000", FeatureType: entitlement.FeatureLongLetter, Label: "Longue Lettre 5000", AmountCents: 299},
	{ID: "long_letter_infinite", FeatureType: entitlement.FeatureLongLetter, Label: "Longue Lettre Illimitee", AmountCents: 999},
	{ID: "capsule_1d", FeatureType: entitlement.FeatureCapsule, Label: "Capsule Demain", AmountCents: 49, DurationDays: 1},
	{ID: "capsule_7d", FeatureType: entitlement.FeatureCapsule, Label: "Capsule 7 jours", AmountCents: 99, DurationDays: 7},
	{ID: "capsule_30d", FeatureType: entitlement.FeatureCapsule, Label: "Capsule 30 jours", AmountCents: 199, DurationDays: 30},
	{ID: "seal_classic", FeatureType: entitlement.FeatureSeal, Label: "Sceau de Cire", AmountCents: 49},
	{ID: "paper_parchment", FeatureType: entitlement.FeaturePaper, Label: "Papier Parchemin", AmountCents: 49},
	{ID: "ink_typewriter", FeatureType: entitlement.FeatureInk, Label: "Encre Machine a ecrire", AmountCents: 99},
	{ID: "gift_void_for_two", FeatureType: entitlement.FeatureGift, Label: "Un vide pour deux", AmountCents: 499, DurationDays: 30},
	{ID: "sanctuary_monthly", FeatureType: entitlement.FeatureSanctuary, Label: "Sanctuaire Mensuel", AmountCents: 199, DurationDays: 30},
	{ID: "sanctuary_yearly", FeatureType: entitlement.FeatureSanctuary, Label: "Sanctuaire Annuel", AmountCents: 1499, DurationDays: 365},
	{ID: "sanctuary_lifetime", FeatureType: entitlement.FeatureSanctuary, Label: "Sanctuaire A vie", AmountCents: 4999},
	{ID: "eternity_secret", FeatureType: entitlement.FeatureEternity, Label: "Mur des Disparus", AmountCents: 199},
}

// GetOffering returns the offering with the given id, or nil.
func GetOffering(offerID string) *Offering {
	for i := range Offerings {
		if Offerings[i].ID == offerID {
			return &Offerings[i]
		}
	}
	return nil
}
