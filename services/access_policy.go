package services

import (
	"backend/entity"
)

// Access policy predicates. Pure functions, no storage access, evaluated on
// every call rather than cached, so a role or ownership change takes effect
// on the next request.

const RoleAdmin = "admin"

// CanAccessOrder gates every read and mutation of an existing order:
// admin, the order's creator, or its assigned cashier.
func CanAccessOrder(actor *entity.User, order *entity.CoffeeOrder) bool {
	if actor == nil || order == nil {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}
	return order.CreatedByID == actor.ID || order.CashierID == actor.ID
}

// CanOrderFromShop decides whether the actor may open a new order against the
// shop. Admins always can. Everyone else needs a live, open shop they do not
// own — owners taking their own orders would self-deal.
func CanOrderFromShop(actor *entity.User, shop *entity.CoffeeShop) bool {
	if actor == nil || shop == nil {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}
	if shop.Archived {
		return false
	}
	if shop.OwnerID == actor.ID {
		return false
	}
	return shop.Status == entity.ShopStatusOpen
}

// CanManageShop: admin or the registered owner.
func CanManageShop(actor *entity.User, shop *entity.CoffeeShop) bool {
	if actor == nil || shop == nil {
		return false
	}
	if actor.Role == RoleAdmin {
		return true
	}
	return shop.OwnerID == actor.ID
}

// IsShopStaff: manager-or-better view access — owner, admin, or any listed
// staff member. Shop.Staff must be loaded by the caller.
func IsShopStaff(actor *entity.User, shop *entity.CoffeeShop) bool {
	if actor == nil || shop == nil {
		return false
	}
	if CanManageShop(actor, shop) {
		return true
	}
	for _, member := range shop.Staff {
		if member.UserID == actor.ID {
			return true
		}
	}
	return false
}
