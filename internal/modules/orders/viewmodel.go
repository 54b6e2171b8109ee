package orders

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"wolfly.in/app/internal/shared/apperr"
)

// ErrNoOrders is returned by the API layer when the backend answers the list
// request with its "you do not have any orders" 404. It means empty state,
// not failure.
var ErrNoOrders = errors.New("no orders")

// Document is a binary artifact fetched on demand (an order invoice).
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// API is the slice of the backend contract the view model needs. Implemented
// by internal/backend; tests use function-field fakes.
type API interface {
	ListOrders(ctx context.Context, token string) ([]Order, error)
	CancelOrder(ctx context.Context, token, orderID string) error
	FetchInvoice(ctx context.Context, token, orderID string) (Document, error)
}

// TokenSource is the injected session collaborator. The view model never
// issues or refreshes the credential, it only forwards it.
type TokenSource interface {
	Token() string
	Clear()
}

const msgMustLogIn = "Please log in to view your orders."

// ViewModel owns the authoritative order list for one session, the derived
// filtered projection, and the cancel/invoice actions against the backend.
// All mutation happens under mu; the exported surface only hands out copies.
type ViewModel struct {
	api     API
	session TokenSource
	log     *slog.Logger

	mu         sync.Mutex
	orders     []Order
	loaded     bool
	loading    bool // initial load in flight
	refreshing bool // refresh in flight; existing list stays visible
	errMsg     string
	cancelling map[string]struct{}
	gen        uint64 // load generation; stale responses are dropped
}

func NewViewModel(api API, session TokenSource, log *slog.Logger) *ViewModel {
	return &ViewModel{
		api:        api,
		session:    session,
		log:        log,
		cancelling: map[string]struct{}{},
	}
}

// State is a point-in-time copy for rendering.
type State struct {
	Orders     []Order
	Loaded     bool
	Loading    bool
	Refreshing bool
	ErrorMsg   string
	Cancelling map[string]bool
}

func (vm *ViewModel) Snapshot() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	st := State{
		Orders:     make([]Order, len(vm.orders)),
		Loaded:     vm.loaded,
		Loading:    vm.loading,
		Refreshing: vm.refreshing,
		ErrorMsg:   vm.errMsg,
		Cancelling: make(map[string]bool, len(vm.cancelling)),
	}
	copy(st.Orders, vm.orders)
	for id := range vm.cancelling {
		st.Cancelling[id] = true
	}
	return st
}

// Filtered returns the derived projection of the current list.
func (vm *ViewModel) Filtered(f Filters) []Order {
	vm.mu.Lock()
	src := make([]Order, len(vm.orders))
	copy(src, vm.orders)
	vm.mu.Unlock()

	return ApplyFilters(src, f)
}

// Order looks up a single order by ID in the current list.
func (vm *ViewModel) Order(id string) (Order, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, o := range vm.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// Load replaces the whole order list from the backend. A load issued later
// always wins: if this response arrives after a newer Load has started, it is
// dropped. forceRefresh keeps the existing list visible while in flight.
func (vm *ViewModel) Load(ctx context.Context, forceRefresh bool) error {
	token := vm.session.Token()
	if token == "" {
		vm.mu.Lock()
		vm.errMsg = msgMustLogIn
		vm.mu.Unlock()
		return apperr.UnauthorizedErr(msgMustLogIn)
	}

	vm.mu.Lock()
	vm.gen++
	gen := vm.gen
	if vm.loaded || forceRefresh {
		vm.refreshing = true
	} else {
		vm.loading = true
	}
	vm.mu.Unlock()

	list, err := vm.api.ListOrders(ctx, token)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if gen != vm.gen {
		// Superseded by a newer load; that one owns the state now.
		return nil
	}
	vm.loading = false
	vm.refreshing = false

	switch {
	case err == nil:
		vm.orders = list
		vm.loaded = true
		vm.errMsg = ""
		return nil
	case errors.Is(err, ErrNoOrders):
		vm.orders = []Order{}
		vm.loaded = true
		vm.errMsg = ""
		return nil
	case apperr.KindOf(err) == apperr.Unauthorized:
		// Keep whatever list we had; the user needs to log in again.
		vm.errMsg = msgMustLogIn
		return apperr.UnauthorizedErr(msgMustLogIn)
	default:
		vm.errMsg = apperr.PublicMessage(err)
		if vm.log != nil {
			vm.log.Warn("order list load failed", slog.String("kind", string(apperr.KindOf(err))), slog.Any("err", err))
		}
		return err
	}
}

// Cancel requests the cancel transition for one order and resynchronizes the
// list on success. The per-order cancelling marker is cleared on every exit
// path. Callers are expected to have taken explicit user confirmation first.
func (vm *ViewModel) Cancel(ctx context.Context, orderID string) error {
	vm.mu.Lock()
	o, ok := vm.lookup(orderID)
	if !ok {
		vm.mu.Unlock()
		return apperr.NotFoundErr("Order not found.")
	}
	if !CanCancel(o) {
		vm.mu.Unlock()
		return apperr.ConflictErr("This order cannot be cancelled at this time.")
	}
	if _, busy := vm.cancelling[orderID]; busy {
		vm.mu.Unlock()
		return apperr.ConflictErr("Cancellation is already in progress for this order.")
	}
	vm.cancelling[orderID] = struct{}{}
	vm.mu.Unlock()

	defer func() {
		vm.mu.Lock()
		delete(vm.cancelling, orderID)
		vm.mu.Unlock()
	}()

	if err := vm.api.CancelOrder(ctx, vm.session.Token(), orderID); err != nil {
		return cancelError(err)
	}

	// Resynchronize; the cancel itself already succeeded, so a failed refresh
	// only logs.
	if err := vm.Load(ctx, true); err != nil && vm.log != nil {
		vm.log.Warn("refresh after cancel failed", slog.Any("err", err))
	}
	return nil
}

// Invoice fetches the order's invoice document. Only a PDF body is accepted;
// anything else comes back as an unsupported-format error from the API layer.
func (vm *ViewModel) Invoice(ctx context.Context, orderID string) (Document, error) {
	doc, err := vm.api.FetchInvoice(ctx, vm.session.Token(), orderID)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (vm *ViewModel) lookup(id string) (Order, bool) {
	for _, o := range vm.orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// cancelError maps backend failures to the user-facing cancel copy. Each
// response class gets its own message; transport failures keep their own
// wording so the user knows nothing reached the server.
func cancelError(err error) error {
	switch apperr.KindOf(err) {
	case apperr.Invalid:
		return apperr.InvalidErr("This order cannot be cancelled at this time.", nil)
	case apperr.Unauthorized:
		return apperr.UnauthorizedErr("You are not authorized. Please log in again.")
	case apperr.Forbidden:
		return apperr.ForbiddenErr("You do not have permission to cancel this order.")
	case apperr.NotFound:
		return apperr.NotFoundErr("Order not found.")
	case apperr.Conflict:
		return apperr.ConflictErr("The order status has changed and conflicts with cancellation.")
	case apperr.Timeout:
		return apperr.TimeoutErr("The request timed out. Please try again.", err)
	case apperr.Network:
		return apperr.NetworkErr("Network error. Please check your connection and try again.", err)
	case apperr.Internal:
		return &apperr.AppError{Kind: apperr.Internal, PublicMsg: "Server error. Please try again later.", Err: err}
	default:
		return err
	}
}
