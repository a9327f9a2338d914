package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/internal/inventory"
	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/pagination"
	"github.com/bookhaven/bookhaven-backend/pkg/statestore"
)

// Service exposes per-session order history plus the admin views over the
// relational mirror. The history blob is the shopper-facing source of
// truth; the mirror row is written in the same operation and rolled back
// out of the blob if the mirror write fails.
type Service interface {
	AddOrder(ctx context.Context, sessionID string, rec Record) (*OrderDTO, error)
	ListOrders(ctx context.Context, sessionID string) ([]OrderDTO, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status enums.OrderStatus) (bool, error)
	AdminListOrders(ctx context.Context, page pagination.Params) (*OrderListResult, error)
}

// AdminListInput narrows the admin order listing.
type AdminListInput struct {
	Page pagination.Params
}

// TxRunner executes fn inside one database transaction. *db.Client
// satisfies this.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	store statestore.Store
	repo  *Repository
	stock *inventory.Repository
	tx    TxRunner

	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// NewService constructs an order history service instance. The stock
// repository and transaction runner are used to mirror an order and walk
// down the on-hand counts atomically.
func NewService(store statestore.Store, repo *Repository, stock *inventory.Repository, tx TxRunner) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		store:    store,
		repo:     repo,
		stock:    stock,
		tx:       tx,
		sessions: map[string]*sync.Mutex{},
	}, nil
}

func (s *service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.sessions[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.sessions[sessionID] = lock
	}
	return lock
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}

func (s *service) load(ctx context.Context, sessionID string) (*state, error) {
	var st state
	if _, err := s.store.Load(ctx, Namespace(sessionID), &st); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order history")
	}
	return &st, nil
}

func (s *service) save(ctx context.Context, sessionID string, st *state) error {
	if err := s.store.Save(ctx, Namespace(sessionID), st); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order history")
	}
	return nil
}

// AddOrder prepends the order to the session's history and mirrors it into
// the relational store, decrementing the on-hand stock of every line in
// the same transaction. When the mirror write fails, the history blob is
// restored so no partial order is recorded anywhere.
func (s *service) AddOrder(ctx context.Context, sessionID string, rec Record) (*OrderDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if rec.OrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if len(rec.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order has no items")
	}
	if !rec.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	previous := append([]Record{}, st.Orders...)

	st.Orders = append([]Record{rec}, st.Orders...)
	if err := s.save(ctx, sessionID, st); err != nil {
		return nil, err
	}

	mirror := &models.Order{
		ID:               uuid.New(),
		OrderID:          rec.OrderID,
		SessionID:        sessionID,
		Items:            rec.Items,
		SubtotalCents:    rec.SubtotalCents,
		ShippingFeeCents: rec.ShippingFeeCents,
		TotalAmountCents: rec.TotalAmountCents,
		Status:           rec.Status,
		PaymentMethod:    rec.PaymentMethod,
		Shipping:         rec.Shipping,
		CreatedAt:        rec.Date,
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, mirror); err != nil {
			return err
		}
		return s.stock.WithTx(tx).DecrementForItems(ctx, rec.Items)
	})
	if err != nil {
		st.Orders = previous
		if restoreErr := s.save(ctx, sessionID, st); restoreErr != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, restoreErr, "restore order history")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "order id already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mirror order")
	}

	dto := newOrderDTO(rec)
	return &dto, nil
}

// ListOrders returns the session's history, newest first.
func (s *service) ListOrders(ctx context.Context, sessionID string) ([]OrderDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newOrderDTOList(st.Orders), nil
}

// UpdateOrderStatus overwrites one order's status in both the mirror and
// the owning session's history blob. Unknown order ids report found=false
// without touching anything.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID string, status enums.OrderStatus) (bool, error) {
	if !status.IsValid() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	mirror, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}

	lock := s.sessionLock(mirror.SessionID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}

	st, err := s.load(ctx, mirror.SessionID)
	if err != nil {
		return false, err
	}
	if i := st.find(orderID); i >= 0 {
		st.Orders[i].Status = status
		if err := s.save(ctx, mirror.SessionID, st); err != nil {
			return false, err
		}
	}
	return true, nil
}

// AdminListOrders returns a page over every mirrored order, newest first.
func (s *service) AdminListOrders(ctx context.Context, page pagination.Params) (*OrderListResult, error) {
	rows, total, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]AdminOrderDTO, 0, len(rows))
	for i := range rows {
		out = append(out, newAdminOrderDTO(&rows[i]))
	}
	return &OrderListResult{
		Orders: out,
		Total:  total,
		Page:   pagination.NormalizePage(page.Page),
		Limit:  pagination.NormalizeLimit(page.Limit),
	}, nil
}
