package store

import (
	"strings"
	"sync"

	"github.com/fjod/storefront/internal/domain"
	"github.com/google/uuid"
)

const (
	demoPhone  = "+91 9876543210"
	demoAvatar = "https://i.pravatar.cc/300"
)

func demoAddresses() []domain.Address {
	return []domain.Address{
		{
			ID:         "addr1",
			Type:       "Home",
			Street:     "123 Main Street, Apartment 4B",
			City:       "Mumbai",
			State:      "Maharashtra",
			PostalCode: "400001",
			IsDefault:  true,
		},
		{
			ID:         "addr2",
			Type:       "Office",
			Street:     "Tech Park, Building C, Floor 5",
			City:       "Bangalore",
			State:      "Karnataka",
			PostalCode: "560001",
		},
	}
}

func demoWishlist() []domain.WishlistEntry {
	return []domain.WishlistEntry{
		{
			ProductID: "p1",
			Name:      "Banarasi Silk Saree",
			Price:     5999,
			Image:     "https://images.pexels.com/photos/4125082/pexels-photo-4125082.jpeg",
			Rating:    4.8,
		},
		{
			ProductID: "p3",
			Name:      "Men's Nehru Jacket",
			Price:     2499,
			Image:     "https://images.pexels.com/photos/2897530/pexels-photo-2897530.jpeg",
			Rating:    4.5,
		},
	}
}

// ProfileStore holds the shopper's profile. Whenever the address list is
// non-empty exactly one address is the default.
type ProfileStore struct {
	mu      sync.RWMutex
	profile domain.Profile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{profile: emptyProfile()}
}

func emptyProfile() domain.Profile {
	return domain.Profile{
		Addresses: []domain.Address{},
		Wishlist:  []domain.WishlistEntry{},
	}
}

// Login populates a mock profile for the given email.
func (s *ProfileStore) Login(c domain.Credentials) (domain.Profile, error) {
	if strings.TrimSpace(c.Email) == "" {
		return domain.Profile{}, ErrInvalidCredentials
	}
	return s.replace(domain.Profile{
		ID:              "user123",
		Name:            "J",
		Email:           c.Email,
		Phone:           demoPhone,
		Avatar:          demoAvatar,
		IsAuthenticated: true,
		Addresses:       demoAddresses(),
		Wishlist:        demoWishlist(),
	}), nil
}

// Signup creates a fresh authenticated profile with no addresses or wishlist entries.
func (s *ProfileStore) Signup(r domain.SignupRequest) (domain.Profile, error) {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return domain.Profile{}, ErrInvalidCredentials
	}
	return s.replace(domain.Profile{
		ID:              uuid.NewString(),
		Name:            r.Name,
		Email:           r.Email,
		Avatar:          demoAvatar,
		IsAuthenticated: true,
		Addresses:       []domain.Address{},
		Wishlist:        []domain.WishlistEntry{},
	}), nil
}

func (s *ProfileStore) CreateDemoProfile() domain.Profile {
	return s.replace(domain.Profile{
		ID:              "demo123",
		Name:            "Upasana Roy",
		Email:           "upasana.roy@example.com",
		Phone:           demoPhone,
		Avatar:          demoAvatar,
		IsAuthenticated: true,
		Addresses:       demoAddresses(),
		Wishlist:        demoWishlist(),
	})
}

func (s *ProfileStore) Logout() {
	s.replace(emptyProfile())
}

func (s *ProfileStore) replace(p domain.Profile) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.ensureSingleDefault("")
	return s.profile.Clone()
}

func (s *ProfileStore) Profile() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

func (s *ProfileStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.IsAuthenticated
}

// UpdateProfile merges the non-nil fields into the profile. It does nothing
// while logged out.
func (s *ProfileStore) UpdateProfile(u domain.ProfileUpdate) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.profile.IsAuthenticated {
		return s.profile.Clone()
	}
	if u.Name != nil {
		s.profile.Name = *u.Name
	}
	if u.Email != nil {
		s.profile.Email = *u.Email
	}
	if u.Phone != nil {
		s.profile.Phone = *u.Phone
	}
	return s.profile.Clone()
}

// AddAddress stores a with a new id. The first address, or one marked
// default, becomes the only default.
func (s *ProfileStore) AddAddress(a domain.Address) (domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.profile.IsAuthenticated {
		return domain.Address{}, ErrNotAuthenticated
	}

	a.ID = uuid.NewString()
	preferred := ""
	if a.IsDefault || len(s.profile.Addresses) == 0 {
		preferred = a.ID
	}
	a.IsDefault = false
	s.profile.Addresses = append(s.profile.Addresses, a)
	s.ensureSingleDefault(preferred)

	return s.profile.Addresses[len(s.profile.Addresses)-1], nil
}

// UpdateAddress applies the non-nil fields of u to the address with the given id.
func (s *ProfileStore) UpdateAddress(id string, u domain.AddressUpdate) (domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.profile.IsAuthenticated {
		return domain.Address{}, ErrNotAuthenticated
	}
	i := s.addressIndex(id)
	if i < 0 {
		return domain.Address{}, ErrAddressNotFound
	}

	a := &s.profile.Addresses[i]
	if u.Type != nil {
		a.Type = *u.Type
	}
	if u.Street != nil {
		a.Street = *u.Street
	}
	if u.City != nil {
		a.City = *u.City
	}
	if u.State != nil {
		a.State = *u.State
	}
	if u.PostalCode != nil {
		a.PostalCode = *u.PostalCode
	}

	preferred := ""
	if u.IsDefault != nil {
		if *u.IsDefault {
			preferred = id
		} else if a.IsDefault {
			// hand the flag to the first other address
			for j, other := range s.profile.Addresses {
				if j != i {
					preferred = other.ID
					break
				}
			}
		}
	}
	s.ensureSingleDefault(preferred)

	return s.profile.Addresses[i], nil
}

// RemoveAddress deletes the address. Removing the default promotes the first
// remaining address. Unknown ids are ignored.
func (s *ProfileStore) RemoveAddress(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.profile.IsAuthenticated {
		return ErrNotAuthenticated
	}
	i := s.addressIndex(id)
	if i < 0 {
		return nil
	}
	s.profile.Addresses = append(s.profile.Addresses[:i], s.profile.Addresses[i+1:]...)
	s.ensureSingleDefault("")
	return nil
}

// SetDefaultAddress makes id the only default. An unknown id returns
// ErrAddressNotFound and leaves every flag as it was.
func (s *ProfileStore) SetDefaultAddress(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.profile.IsAuthenticated {
		return ErrNotAuthenticated
	}
	if s.addressIndex(id) < 0 {
		return ErrAddressNotFound
	}
	s.ensureSingleDefault(id)
	return nil
}

// DefaultAddress returns the default address, if any.
func (s *ProfileStore) DefaultAddress() (domain.Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.profile.Addresses {
		if a.IsDefault {
			return a, true
		}
	}
	return domain.Address{}, false
}

// AddToWishlist adds e to the profile's wishlist mirror while logged in.
func (s *ProfileStore) AddToWishlist(e domain.WishlistEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.profile.IsAuthenticated {
		return
	}
	for _, w := range s.profile.Wishlist {
		if w.ProductID == e.ProductID {
			return
		}
	}
	s.profile.Wishlist = append(s.profile.Wishlist, e)
}

func (s *ProfileStore) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.profile.Wishlist {
		if w.ProductID == productID {
			s.profile.Wishlist = append(s.profile.Wishlist[:i], s.profile.Wishlist[i+1:]...)
			return
		}
	}
}

// Restore replaces the profile with one loaded from a snapshot.
func (s *ProfileStore) Restore(p domain.Profile) {
	p = p.Clone()
	s.replace(p)
}

// ensureSingleDefault is the one place the default-address invariant is
// enforced. With preferredID set, that address becomes the only default.
// Otherwise the first flagged address keeps the flag, or the first address
// gets it when none is flagged. Must be called with mu held.
func (s *ProfileStore) ensureSingleDefault(preferredID string) {
	addrs := s.profile.Addresses
	if len(addrs) == 0 {
		return
	}

	keep := -1
	if preferredID != "" {
		keep = s.addressIndex(preferredID)
	}
	if keep < 0 {
		for i, a := range addrs {
			if a.IsDefault {
				keep = i
				break
			}
		}
	}
	if keep < 0 {
		keep = 0
	}

	for i := range addrs {
		addrs[i].IsDefault = i == keep
	}
}

// addressIndex must be called with mu held
func (s *ProfileStore) addressIndex(id string) int {
	for i, a := range s.profile.Addresses {
		if a.ID == id {
			return i
		}
	}
	return -1
}
