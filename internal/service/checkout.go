package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/store"
)

type Step string

const (
	StepCart     Step = "cart"
	StepDelivery Step = "delivery"
	StepPayment  Step = "payment"
	StepComplete Step = "complete"
)

// String representation (for logging)
func (s Step) String() string {
	return string(s)
}

// CheckoutState is a read-only view of the flow.
type CheckoutState struct {
	Step       Step            `json:"step"`
	Shipping   ShippingDetails `json:"shipping"`
	Coupon     string          `json:"coupon,omitempty"`
	Quote      Quote           `json:"quote"`
	Processing bool            `json:"processing"`
	Order      *domain.Order   `json:"order,omitempty"`
}

// CheckoutFlow walks one shopper through cart -> delivery -> payment -> complete.
// Placing the order takes commit so the cart is read, the order appended and
// the cart cleared without any other session command interleaving.
type CheckoutFlow struct {
	mu sync.Mutex

	cart    *store.CartStore
	orders  *store.OrderStore
	commit  sync.Locker
	pricing Pricing
	delay   time.Duration

	step         Step
	shipping     ShippingDetails
	coupon       string
	discountRate float64
	processing   bool
	cancel       context.CancelFunc
	placed       *domain.Order
	// bumped by every reset; a payment only completes the flow it started in
	generation   int
}

func NewCheckoutFlow(cart *store.CartStore, orders *store.OrderStore, commit sync.Locker, pricing Pricing, delay time.Duration) *CheckoutFlow {
	return &CheckoutFlow{
		cart:    cart,
		orders:  orders,
		commit:  commit,
		pricing: pricing,
		delay:   delay,
		step:    StepCart,
	}
}

func (f *CheckoutFlow) State() CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := CheckoutState{
		Step:       f.step,
		Shipping:   f.shipping,
		Coupon:     f.coupon,
		Processing: f.processing,
		Quote:      f.pricing.Quote(f.cart.Subtotal(), f.discountRate),
	}
	if f.placed != nil {
		o := f.placed.Clone()
		st.Order = &o
		st.Quote = Quote{Subtotal: o.Subtotal, Shipping: o.Shipping, Discount: o.Discount, Total: o.Total}
	}
	return st
}

func (f *CheckoutFlow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Prefill sets the shipping details unless the shopper already entered some.
func (f *CheckoutFlow) Prefill(d ShippingDetails) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.shipping == (ShippingDetails{}) {
		f.shipping = d
	}
}

// Advance moves one step forward. Leaving the cart and delivery steps
// requires a non-empty cart and complete shipping details. A non-nil
// details replaces the stored ones first.
func (f *CheckoutFlow) Advance(details *ShippingDetails) (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return f.step, ErrPaymentInProgress
	}
	if details != nil {
		f.shipping = *details
	}

	var next Step
	switch f.step {
	case StepCart:
		next = StepDelivery
	case StepDelivery:
		next = StepPayment
	default:
		return f.step, fmt.Errorf("%w: cannot advance from %s", ErrInvalidStep, f.step)
	}

	if f.cart.IsEmpty() {
		return f.step, ErrEmptyCart
	}
	if err := validateShipping(f.shipping); err != nil {
		return f.step, err
	}
	f.step = next
	return f.step, nil
}

// Back moves one step backwards. The flow cannot leave the complete step.
func (f *CheckoutFlow) Back() (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return f.step, ErrPaymentInProgress
	}
	switch f.step {
	case StepDelivery:
		f.step = StepCart
	case StepPayment:
		f.step = StepDelivery
	default:
		return f.step, fmt.Errorf("%w: cannot go back from %s", ErrInvalidStep, f.step)
	}
	return f.step, nil
}

func (f *CheckoutFlow) ApplyCoupon(code string) (Quote, error) {
	normalized, rate, err := couponRate(code)
	if err != nil {
		return Quote{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepComplete {
		return Quote{}, fmt.Errorf("%w: order already placed", ErrInvalidStep)
	}
	f.coupon = normalized
	f.discountRate = rate
	return f.pricing.Quote(f.cart.Subtotal(), rate), nil
}

// SubmitPayment validates p, waits out the simulated processing delay and
// places the order. Cancelling ctx or calling Abort during the delay leaves
// the cart and order history untouched.
func (f *CheckoutFlow) SubmitPayment(ctx context.Context, p PaymentDetails) (domain.Order, error) {
	f.mu.Lock()
	if f.step != StepPayment {
		step := f.step
		f.mu.Unlock()
		return domain.Order{}, fmt.Errorf("%w: payment is taken at step %s, flow is at %s", ErrInvalidStep, StepPayment, step)
	}
	if f.processing {
		f.mu.Unlock()
		return domain.Order{}, ErrPaymentInProgress
	}
	if err := validatePayment(p); err != nil {
		f.mu.Unlock()
		return domain.Order{}, err
	}
	if f.cart.IsEmpty() {
		f.mu.Unlock()
		return domain.Order{}, ErrEmptyCart
	}

	payCtx, cancel := context.WithCancel(ctx)
	f.processing = true
	f.cancel = cancel
	shipping := f.shipping
	rate := f.discountRate
	gen := f.generation
	f.mu.Unlock()

	defer func() {
		cancel()
		f.mu.Lock()
		f.processing = false
		f.cancel = nil
		f.mu.Unlock()
	}()

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-payCtx.Done():
		return domain.Order{}, fmt.Errorf("%w: %v", ErrPaymentCancelled, payCtx.Err())
	case <-timer.C:
	}

	order, err := f.placeOrder(payCtx, shipping, rate, p.Method)
	if err != nil {
		return domain.Order{}, err
	}

	f.mu.Lock()
	if f.generation == gen {
		f.step = StepComplete
		f.placed = &order
	}
	f.mu.Unlock()

	return order.Clone(), nil
}

func (f *CheckoutFlow) placeOrder(ctx context.Context, shipping ShippingDetails, rate float64, method string) (domain.Order, error) {
	f.commit.Lock()
	defer f.commit.Unlock()

	// Abort may land while waiting for the lock
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrPaymentCancelled, err)
	}

	lines := f.cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	var subtotal float64
	for _, l := range lines {
		subtotal += l.LineTotal()
	}
	q := f.pricing.Quote(subtotal, rate)

	order, err := f.orders.AddOrder(domain.Order{
		Items:    domain.ItemsFromCart(lines),
		Subtotal: q.Subtotal,
		Shipping: q.Shipping,
		Discount: q.Discount,
		Total:    q.Total,
		ShippingAddress: domain.ShippingAddress{
			Street:     shipping.Address,
			City:       shipping.City,
			State:      shipping.State,
			PostalCode: shipping.PostalCode,
		},
		PaymentMethod: method,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to add order: %w", err)
	}
	f.cart.ClearCart()
	return order, nil
}

// Abort cancels an in-flight payment, if any.
func (f *CheckoutFlow) Abort() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *CheckoutFlow) Processing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.processing
}

// Reset starts over at the cart step. It is refused while a payment is
// being processed. Shipping details are kept for the next checkout.
func (f *CheckoutFlow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.processing {
		return ErrPaymentInProgress
	}
	f.reset()
	return nil
}

// Discard aborts any pending payment and starts over at the cart step.
// A payment that already committed keeps its order, but the flow stays reset.
func (f *CheckoutFlow) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
	}
	f.reset()
}

func (f *CheckoutFlow) reset() {
	f.generation++
	f.step = StepCart
	f.coupon = ""
	f.discountRate = 0
	f.placed = nil
}
