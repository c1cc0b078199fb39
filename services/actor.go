package services

import "github.com/meinhoongagan/tutor-booking/models"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

func (a Actor) canAccess(b *models.Booking) bool {
	return a.IsAdmin() || b.OwnedBy(a.UserID)
}
