package session

// Kind tells who is behind a browser session.
type Kind int

const (
	Anonymous Kind = iota
	Customer
	Admin
)

func (k Kind) String() string {
	switch k {
	case Customer:
		return "customer"
	case Admin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Identity is the authenticated principal of a session. UserID is only
// meaningful for customers.
type Identity struct {
	Kind   Kind `json:"kind"`
	UserID uint `json:"user_id,omitempty"`
}

// CustomerIdentity returns the identity of a logged-in customer.
func CustomerIdentity(userID uint) Identity {
	return Identity{Kind: Customer, UserID: userID}
}

// AdminIdentity returns the identity of the store administrator.
func AdminIdentity() Identity {
	return Identity{Kind: Admin}
}

func (i Identity) IsCustomer() bool { return i.Kind == Customer }
func (i Identity) IsAdmin() bool    { return i.Kind == Admin }
