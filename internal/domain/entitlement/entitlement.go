// Package entitlement models the purchased capabilities that relax the
// secret store's default constraints, each scoped to a session identity and
// optionally time-bounded.
package entitlement

// FeatureType identifies a purchasable capability. The set is closed; adding
// a feature means adding a constant and a settlement dispatch case.
type FeatureType string

const (
	FeatureLongLetter FeatureType = "long_letter"
	FeatureCapsule    FeatureType = "capsule"
	FeatureSeal       FeatureType = "seal"
	FeaturePaper      FeatureType = "paper"
	FeatureInk        FeatureType = "ink"
	FeatureGift       FeatureType = "gift"
	FeatureSanctuary  FeatureType = "sanctuary"
	FeatureEternity   FeatureType = "eternity"
)

// IsValid reports whether the feature type is a known value.
func (f FeatureType) IsValid() bool {
	switch f {
	case FeatureLongLetter, FeatureCapsule, FeatureSeal, FeaturePaper,
		FeatureInk, FeatureGift, FeatureSanctuary, FeatureEternity:
		return true
	}
	return false
}

func (f FeatureType) String() string {
	return string(f)
}

// DefaultMaxContentChars is the content limit applied without a long-letter grant.
const DefaultMaxContentChars = 300
