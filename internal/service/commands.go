package service

import (
	"context"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

// Command is one storefront action. The set is closed: only the types in
// this file implement it.
type Command interface {
	apply(ctx context.Context, s *Session) error
}

type AddToCart struct {
	ProductID string
	Quantity  int
}

type RemoveFromCart struct {
	ProductID string
}

type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

type ClearCart struct{}

type AddToWishlist struct {
	ProductID string
}

type RemoveFromWishlist struct {
	ProductID string
}

// MoveToCart puts a wishlisted product in the cart and drops it from the wishlist.
type MoveToCart struct {
	ProductID string
}

type AddOrder struct {
	Order domain.Order
}

type UpdateOrderStatus struct {
	OrderID string
	Status  domain.OrderStatus
}

type UpdateTracking struct {
	OrderID string
	Update  domain.TrackingUpdate
}

type CancelOrder struct {
	OrderID string
}

type Login struct {
	Credentials domain.Credentials
}

type Signup struct {
	Request domain.SignupRequest
}

type CreateDemoProfile struct{}

type Logout struct{}

type UpdateProfile struct {
	Update domain.ProfileUpdate
}

type AddAddress struct {
	Address domain.Address
}

type UpdateAddress struct {
	AddressID string
	Update    domain.AddressUpdate
}

type RemoveAddress struct {
	AddressID string
}

type SetDefaultAddress struct {
	AddressID string
}

func (c AddToCart) apply(ctx context.Context, s *Session) error {
	p, err := s.catalog.GetProduct(ctx, c.ProductID)
	if err != nil {
		return fmt.Errorf("add to cart %q: %w", c.ProductID, err)
	}
	s.cart.AddToCart(p, c.Quantity)
	return nil
}

func (c RemoveFromCart) apply(_ context.Context, s *Session) error {
	s.cart.RemoveFromCart(c.ProductID)
	return nil
}

func (c UpdateQuantity) apply(_ context.Context, s *Session) error {
	s.cart.UpdateQuantity(c.ProductID, c.Quantity)
	return nil
}

func (ClearCart) apply(_ context.Context, s *Session) error {
	s.cart.ClearCart()
	return nil
}

func (c AddToWishlist) apply(ctx context.Context, s *Session) error {
	p, err := s.catalog.GetProduct(ctx, c.ProductID)
	if err != nil {
		return fmt.Errorf("add to wishlist %q: %w", c.ProductID, err)
	}
	s.wishlist.AddToWishlist(p)
	s.profile.AddToWishlist(domain.NewWishlistEntry(p))
	return nil
}

func (c RemoveFromWishlist) apply(_ context.Context, s *Session) error {
	s.wishlist.RemoveFromWishlist(c.ProductID)
	s.profile.RemoveFromWishlist(c.ProductID)
	return nil
}

func (c MoveToCart) apply(ctx context.Context, s *Session) error {
	if !s.wishlist.IsInWishlist(c.ProductID) {
		return ErrNotInWishlist
	}
	p, err := s.catalog.GetProduct(ctx, c.ProductID)
	if err != nil {
		return fmt.Errorf("move to cart %q: %w", c.ProductID, err)
	}
	s.cart.AddToCart(p, 1)
	s.wishlist.RemoveFromWishlist(c.ProductID)
	s.profile.RemoveFromWishlist(c.ProductID)
	return nil
}

func (c AddOrder) apply(_ context.Context, s *Session) error {
	_, err := s.orders.AddOrder(c.Order)
	return err
}

func (c UpdateOrderStatus) apply(_ context.Context, s *Session) error {
	return s.orders.UpdateStatus(c.OrderID, c.Status)
}

func (c UpdateTracking) apply(_ context.Context, s *Session) error {
	s.orders.UpdateTrackingInfo(c.OrderID, c.Update)
	return nil
}

func (c CancelOrder) apply(_ context.Context, s *Session) error {
	return s.orders.CancelOrder(c.OrderID)
}

func (c Login) apply(_ context.Context, s *Session) error {
	p, err := s.profile.Login(c.Credentials)
	if err != nil {
		return err
	}
	s.syncWishlist(p)
	return nil
}

func (c Signup) apply(_ context.Context, s *Session) error {
	_, err := s.profile.Signup(c.Request)
	return err
}

func (CreateDemoProfile) apply(_ context.Context, s *Session) error {
	s.syncWishlist(s.profile.CreateDemoProfile())
	return nil
}

func (Logout) apply(_ context.Context, s *Session) error {
	s.profile.Logout()
	s.checkout.Discard()
	return nil
}

func (c UpdateProfile) apply(_ context.Context, s *Session) error {
	s.profile.UpdateProfile(c.Update)
	return nil
}

func (c AddAddress) apply(_ context.Context, s *Session) error {
	_, err := s.profile.AddAddress(c.Address)
	return err
}

func (c UpdateAddress) apply(_ context.Context, s *Session) error {
	_, err := s.profile.UpdateAddress(c.AddressID, c.Update)
	return err
}

func (c RemoveAddress) apply(_ context.Context, s *Session) error {
	return s.profile.RemoveAddress(c.AddressID)
}

func (c SetDefaultAddress) apply(_ context.Context, s *Session) error {
	return s.profile.SetDefaultAddress(c.AddressID)
}

// syncWishlist copies the profile's wishlist mirror into the wishlist store.
func (s *Session) syncWishlist(p domain.Profile) {
	for _, e := range p.Wishlist {
		s.wishlist.AddEntry(e)
	}
}
