package models

import "time"

// Service is an offering published under a profile.
type Service struct {
	ID    string  `bson:"id" json:"id"`
	Title string  `bson:"title" json:"title"`
	Price float64 `bson:"price" json:"price"`
}

// Profile is a business tenant that owns slots, services and bookings.
type Profile struct {
	ID        string    `bson:"id" json:"id"`
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	Name      string    `bson:"name" json:"name"`
	Services  []Service `bson:"services,omitempty" json:"services,omitempty"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasService reports whether the profile publishes the given service.
func (p *Profile) HasService(serviceID string) bool {
	for _, s := range p.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}
