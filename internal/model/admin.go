package model

// AdminAccount represents an administrator record as stored in the
// "admins" collection. The json tags match the stored document schema,
// which is also the wire schema consumed by the admin dashboard.
//
// Passwords are stored and returned in plain text on purpose: admins
// verify guests over the phone by reading the reservation password back,
// and the main admin reads sub-account passwords from the management
// panel. Hashing them would break that product requirement.
//
// Fields:
//  ID       – document id within the "admins" collection.
//  Username – login name, unique and case-sensitive.
//  Password – plain-text password.
//  IsMain   – true only for the main admin identity.
type AdminAccount struct {
	ID       string `json:"id"`       // admins/<id>
	Username string `json:"username"` // unique, case-sensitive
	Password string `json:"password"` // plain text by design
	IsMain   bool   `json:"isMain"`
}

// Owns reports whether the admin may mutate the given event. The main
// admin owns every event implicitly; scoped admins own only the events
// they created.
func (a *AdminAccount) Owns(e *Event) bool {
	return a.IsMain || a.Username == e.OwnerID
}

// CanManageAdmins reports whether the admin may provision or revoke
// sub-accounts. Only the main admin can.
func (a *AdminAccount) CanManageAdmins() bool {
	return a.IsMain
}
