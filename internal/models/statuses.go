package models

type UserRole string
type SubscriptionTier string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleTailor   UserRole = "tailor"
	UserRoleAdmin    UserRole = "admin"

	TierBasic  SubscriptionTier = "Basic"
	TierSilver SubscriptionTier = "Silver"
	TierGold   SubscriptionTier = "Gold"
)

// ServiceCategory values accepted on a tailor's service entry.
const (
	ServiceCategoryStitching  = "stitching"
	ServiceCategoryAlteration = "alteration"
	ServiceCategoryRepair     = "repair"
	ServiceCategoryCustom     = "custom"
)
