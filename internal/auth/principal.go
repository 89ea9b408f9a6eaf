package auth

// Role distinguishes the two kinds of callers the API knows about.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleRestaurant Role = "restaurant"
)

// AdminID is the id carried by admin tokens; admins have no database record.
const AdminID = "admin"

// Principal is the resolved caller of a protected request.
type Principal struct {
	Role         Role
	RestaurantID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the caller may read or mutate data scoped to
// restaurantID.
func (p Principal) CanAccess(restaurantID string) bool {
	if p.IsAdmin() {
		return true
	}
	return p.Role == RoleRestaurant && p.RestaurantID != "" && p.RestaurantID == restaurantID
}
