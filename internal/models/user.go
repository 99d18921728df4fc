package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"tailorix_backend/internal/geo"
)

type User struct {
	BaseModel
	FirstName    string   `gorm:"not null"`
	LastName     string   `gorm:"not null"`
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Phone        string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;index"`
	Gender       string
	IsActive     bool `gorm:"default:true"`
	IsVerified   bool `gorm:"default:false"`

	// OTP verification / password reset
	VerificationOTP        string
	VerificationOTPExpires *time.Time
	ResetPasswordToken     string
	ResetPasswordExpires   *time.Time

	// Customer address
	City    string
	State   string
	Pincode string

	// Tailor business fields
	BusinessName    string
	BusinessCity    string `gorm:"index"`
	BusinessState   string
	BusinessPincode string
	TailorType      string
	Experience      int
	Specializations datatypes.JSON `gorm:"type:jsonb"` // ["bridal", "formal"]
	Services        datatypes.JSON `gorm:"type:jsonb"` // [{"name": ..., "price": ...}]
	PickupDelivery  bool           `gorm:"default:false"`
	TotalOrders     int            `gorm:"default:0"`

	// Geolocation; both nil when the tailor never shared a location.
	Latitude  *float64
	Longitude *float64

	RatingAverage float64 `gorm:"default:0"`
	RatingCount   int     `gorm:"default:0"`

	// Embedded subscription state. Kept denormalized on the user row so the
	// discoverability predicate is a plain column filter.
	SubscriptionActive    bool   `gorm:"default:false;index"`
	SubscriptionPlanName  string `gorm:"type:varchar(20)"`
	SubscriptionExpiresAt *time.Time
}

// ServiceOffering is one entry of the tailor's Services jsonb array.
type ServiceOffering struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
}

// FullName returns the display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsDiscoverable reports whether the tailor may appear in listings:
// active account and an active subscription.
func (u *User) IsDiscoverable() bool {
	return u.Role == UserRoleTailor && u.IsActive && u.SubscriptionActive
}

// HasValidLocation reports whether the record carries two finite in-range
// coordinates. Anything else is treated as "no location".
func (u *User) HasValidLocation() bool {
	if u.Latitude == nil || u.Longitude == nil {
		return false
	}
	return geo.Point{Latitude: *u.Latitude, Longitude: *u.Longitude}.Valid()
}

// Location returns the tailor's coordinates; ok is false when absent or
// invalid.
func (u *User) Location() (geo.Point, bool) {
	if !u.HasValidLocation() {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *u.Latitude, Longitude: *u.Longitude}, true
}

// GetServices decodes the Services jsonb array.
func (u *User) GetServices() []ServiceOffering {
	var services []ServiceOffering
	if len(u.Services) > 0 {
		_ = json.Unmarshal(u.Services, &services)
	}
	return services
}

// SetServices encodes the Services jsonb array.
func (u *User) SetServices(services []ServiceOffering) {
	data, _ := json.Marshal(services)
	u.Services = datatypes.JSON(data)
}

// GetSpecializations decodes the Specializations jsonb array.
func (u *User) GetSpecializations() []string {
	var specs []string
	if len(u.Specializations) > 0 {
		_ = json.Unmarshal(u.Specializations, &specs)
	}
	return specs
}

// SetSpecializations encodes the Specializations jsonb array.
func (u *User) SetSpecializations(specs []string) {
	data, _ := json.Marshal(specs)
	u.Specializations = datatypes.JSON(data)
}
