package domain

type Address struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

func (a Address) Shipping() ShippingAddress {
	return ShippingAddress{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
	}
}

type Profile struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Avatar          string          `json:"avatar"`
	IsAuthenticated bool            `json:"is_authenticated"`
	Addresses       []Address       `json:"addresses"`
	Wishlist        []WishlistEntry `json:"wishlist"`
}

func (p Profile) Clone() Profile {
	c := p
	c.Addresses = append([]Address{}, p.Addresses...)
	c.Wishlist = append([]WishlistEntry{}, p.Wishlist...)
	return c
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

type AddressUpdate struct {
	Type       *string `json:"type,omitempty"`
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	IsDefault  *bool   `json:"is_default,omitempty"`
}
