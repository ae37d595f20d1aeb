package booking

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleWorker    Role = "worker"
	RoleShopStaff Role = "shop_staff"
	RoleShopOwner Role = "shop_owner"
	RoleAdmin     Role = "admin"
	RoleSystem    Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleWorker, RoleShopStaff, RoleShopOwner, RoleAdmin, RoleSystem:
		return true
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uint
	Role Role
}

// SystemActor acts for scheduled jobs.
var SystemActor = Actor{Role: RoleSystem}

func (a Actor) IsSystem() bool {
	return a.Role == RoleSystem
}
