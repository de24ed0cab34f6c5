package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
)

// Session is the state container of one shopper: the stores, the checkout
// flow and the lock that serializes commands touching more than one store.
type Session struct {
	id string
	mu sync.Mutex

	catalog  store.Catalog
	cart     *store.CartStore
	wishlist *store.WishlistStore
	orders   *store.OrderStore
	profile  *store.ProfileStore
	checkout *CheckoutFlow

	// unix nanos of the last Sessions.Get
	lastSeen atomic.Int64

	onChange      func(ctx context.Context, s *Session)
	onOrderPlaced func(ctx context.Context, s *Session, o domain.Order)
}

type sessionOptions struct {
	pricing      Pricing
	paymentDelay time.Duration
	orderOpts    []store.OrderStoreOption
}

type SessionOption func(*sessionOptions)

func WithPricing(p Pricing) SessionOption {
	return func(o *sessionOptions) { o.pricing = p }
}

func WithPaymentDelay(d time.Duration) SessionOption {
	return func(o *sessionOptions) { o.paymentDelay = d }
}

func WithOrderStoreOptions(opts ...store.OrderStoreOption) SessionOption {
	return func(o *sessionOptions) { o.orderOpts = append(o.orderOpts, opts...) }
}

func NewSession(id string, catalog store.Catalog, opts ...SessionOption) *Session {
	o := sessionOptions{
		pricing:      DefaultPricing(),
		paymentDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Session{
		id:       id,
		catalog:  catalog,
		cart:     store.NewCartStore(),
		wishlist: store.NewWishlistStore(),
		orders:   store.NewOrderStore(o.orderOpts...),
		profile:  store.NewProfileStore(),
	}
	s.checkout = NewCheckoutFlow(s.cart, s.orders, &s.mu, o.pricing, o.paymentDelay)
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) touch(now time.Time) { s.lastSeen.Store(now.UnixNano()) }
func (s *Session) lastUsed() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Session) Cart() *store.CartStore { return s.cart }
func (s *Session) Wishlist() *store.WishlistStore { return s.wishlist }
func (s *Session) Orders() *store.OrderStore { return s.orders }
func (s *Session) Profile() *store.ProfileStore { return s.profile }
func (s *Session) Checkout() *CheckoutFlow { return s.checkout }

// Dispatch applies cmd under the session lock and reports the change.
func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	s.mu.Lock()
	err := cmd.apply(ctx, s)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

// CheckoutState returns the flow state, pre-filling shipping details from
// the profile and its default address the first time.
func (s *Session) CheckoutState() CheckoutState {
	s.checkout.Prefill(s.shippingFromProfile())
	return s.checkout.State()
}

// AdvanceCheckout pre-fills like CheckoutState, then moves the flow forward.
func (s *Session) AdvanceCheckout(details *ShippingDetails) (Step, error) {
	s.checkout.Prefill(s.shippingFromProfile())
	return s.checkout.Advance(details)
}

func (s *Session) shippingFromProfile() ShippingDetails {
	p := s.profile.Profile()
	if !p.IsAuthenticated {
		return ShippingDetails{}
	}
	first, last, _ := strings.Cut(strings.TrimSpace(p.Name), " ")
	d := ShippingDetails{
		FirstName: first,
		LastName:  last,
		Email:     p.Email,
		Phone:     p.Phone,
	}
	if a, ok := s.profile.DefaultAddress(); ok {
		d.Address = a.Street
		d.City = a.City
		d.State = a.State
		d.PostalCode = a.PostalCode
	}
	return d
}

// SubmitPayment runs the payment step of the checkout flow and, once the
// order is placed, notifies the session hooks.
func (s *Session) SubmitPayment(ctx context.Context, p PaymentDetails) (domain.Order, error) {
	order, err := s.checkout.SubmitPayment(ctx, p)
	if err != nil {
		return domain.Order{}, err
	}
	if s.onOrderPlaced != nil {
		s.onOrderPlaced(ctx, s, order)
	}
	s.changed(ctx)
	return order, nil
}

func (s *Session) changed(ctx context.Context) {
	if s.onChange != nil {
		s.onChange(ctx, s)
	}
}

// Snapshot captures the persistable state of the session.
func (s *Session) Snapshot() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.SessionState{
		SessionID: s.id,
		Cart:      s.cart.Lines(),
		Wishlist:  s.wishlist.Items(),
		Orders:    s.orders.Orders(),
		Profile:   s.profile.Profile(),
		SavedAt:   time.Now().UTC(),
	}
}

// Restore loads a snapshot into the stores. The checkout flow starts over.
func (s *Session) Restore(st domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Restore(st.Cart)
	s.wishlist.Restore(st.Wishlist)
	s.orders.Restore(st.Orders)
	s.profile.Restore(st.Profile)
	s.checkout.Discard()
}
