package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	pkgerrors "github.com/bookhaven/bookhaven-backend/pkg/errors"
	"github.com/bookhaven/bookhaven-backend/pkg/statestore"
)

// Service exposes cart mutations and reads for a shopper session. Every
// mutation rewrites the session's whole cart blob; reads return the blob
// with derived totals attached.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*CartDTO, error)
	AddToCart(ctx context.Context, sessionID string, bookID, qty int) (*CartDTO, error)
	RemoveFromCart(ctx context.Context, sessionID string, bookID int) (*CartDTO, error)
	RemoveItemCompletely(ctx context.Context, sessionID string, bookID int) (*CartDTO, error)
	ToggleSelectItem(ctx context.Context, sessionID string, bookID int) (*CartDTO, error)
	ToggleSelectAll(ctx context.Context, sessionID string, selected bool) (*CartDTO, error)
	ClearSelectedItems(ctx context.Context, sessionID string) (*CartDTO, error)
	ClearCart(ctx context.Context, sessionID string) (*CartDTO, error)
	SelectedItems(ctx context.Context, sessionID string) ([]Item, error)
	TotalPriceCents(ctx context.Context, sessionID string) (int, error)
}

type bookLoader interface {
	FindByID(ctx context.Context, id int) (*models.Book, error)
}

type service struct {
	store statestore.Store
	books bookLoader

	// sessions serializes read-modify-write cycles per session so two
	// concurrent requests cannot interleave on the same blob.
	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// NewService constructs a cart service instance.
func NewService(store statestore.Store, books bookLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("state store required")
	}
	if books == nil {
		return nil, fmt.Errorf("book loader required")
	}
	return &service{
		store:    store,
		books:    books,
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return &st, nil
}

func (s *service) save(ctx context.Context, sessionID string, st *state) error {
	if err := s.store.Save(ctx, Namespace(sessionID), st); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

// mutate runs fn against the session's cart under its lock and persists the
// result when fn reports a change.
func (s *service) mutate(ctx context.Context, sessionID string, fn func(st *state) (changed bool, err error)) (*CartDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	changed, err := fn(st)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.save(ctx, sessionID, st); err != nil {
			return nil, err
		}
	}
	return newCartDTO(st), nil
}

// GetCart returns the session's cart with derived totals.
func (s *service) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartDTO(st), nil
}

// AddToCart increments the entry's quantity when the book is already carted,
// otherwise appends a new selected entry snapshotting the book's fields.
// Stock levels are not checked here.
func (s *service) AddToCart(ctx context.Context, sessionID string, bookID, qty int) (*CartDTO, error) {
	if qty < 1 {
		qty = 1
	}
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "book not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load book")
	}

	return s.mutate(ctx, sessionID, func(st *state) (bool, error) {
		if i := st.find(bookID); i >= 0 {
			st.Items[i].Quantity += qty
			return true, nil
		}
		st.Items = append(st.Items, Item{
			BookID:     book.ID,
			Title:      book.Title,
			Author:     book.Author,
			PriceCents: book.PriceCents,
			Image:      book.Image,
			Quantity:   qty,
			Selected:   true,
		})
		return true, nil
	})
}

// RemoveFromCart decrements the entry's quantity, deleting the entry when
// the quantity would reach zero. Unknown ids are a no-op.
func (s *service) RemoveFromCart(ctx context.Context, sessionID string, bookID int) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(st *state) (bool, error) {
		i := st.find(bookID)
		if i < 0 {
			return false, nil
		}
		if st.Items[i].Quantity > 1 {
			st.Items[i].Quantity--
		} else {
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
		}
		return true, nil
	})
}

// RemoveItemCompletely deletes the entry regardless of quantity.
func (s *service) RemoveItemCompletely(ctx context.Context, sessionID string, bookID int) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(st *state) (bool, error) {
		i := st.find(bookID)
		if i < 0 {
			return false, nil
		}
		st.Items = append(st.Items[:i], st.Items[i+1:]...)
		return true, nil
	})
}

// ToggleSelectItem flips one entry's checkout inclusion flag.
func (s *service) ToggleSelectItem(ctx context.Context, sessionID string, bookID int) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(st *state) (bool, error) {
		i := st.find(bookID)
		if i < 0 {
			return false, nil
		}
		st.Items[i].Selected = !st.Items[i].Selected
		return true, nil
	})
}

// ToggleSelectAll sets every entry's selection flag to the given value.
func (s *service) ToggleSelectAll(ctx context.Context, sessionID string, selected bool) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(st *state) (bool, error) {
		for i := range st.Items {
			st.Items[i].Selected = selected
		}
		return len(st.Items) > 0, nil
	})
}

// ClearSelectedItems drops every selected entry. Unselected entries survive.
func (s *service) ClearSelectedItems(ctx context.Context, sessionID string) (*CartDTO, error) {
	return s.mutate(ctx, sessionID, func(st *state) (bool, error) {
		kept := st.Items[:0]
		removed := false
		for _, item := range st.Items {
			if item.Selected {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		st.Items = kept
		return removed, nil
	})
}

// ClearCart empties the cart entirely.
func (s *service) ClearCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.Delete(ctx, Namespace(sessionID)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return newCartDTO(&state{}), nil
}

// SelectedItems returns a copy of the entries currently marked for checkout.
func (s *service) SelectedItems(ctx context.Context, sessionID string) ([]Item, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return st.selectedItems(), nil
}

// TotalPriceCents returns the subtotal over selected entries only.
func (s *service) TotalPriceCents(ctx context.Context, sessionID string) (int, error) {
	if err := validateSession(sessionID); err != nil {
		return 0, err
	}
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return st.selectedSubtotalCents(), nil
}
