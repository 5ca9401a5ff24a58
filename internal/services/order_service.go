package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"order_entry/internal/cart"
	"order_entry/internal/delivery"
	"order_entry/internal/models"
	"order_entry/internal/session"
	"order_entry/internal/summary"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher delivers a confirmed order summary to the order desk.
type Dispatcher interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SessionView is what callers see of a session after every command.
type SessionView struct {
	ID                  string            `json:"id"`
	Client              *models.Client    `json:"client"`
	Lines               []models.CartLine `json:"lines"`
	ItemCount           int               `json:"item_count"`
	Totals              cart.Totals       `json:"totals"`
	DeliveryDate        time.Time         `json:"delivery_date"`
	InitialDeliveryDate time.Time         `json:"initial_delivery_date"`
	DeliveryLabel       string            `json:"delivery_label"`
}

// OrderSummary is the message produced at checkout.
type OrderSummary struct {
	Subject    string      `json:"subject"`
	Body       string      `json:"body"`
	Totals     cart.Totals `json:"totals"`
	Confirmed  bool        `json:"confirmed"`
	Dispatched bool        `json:"dispatched"`
}

type OrderService interface {
	CreateSession(ctx context.Context) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	EndSession(ctx context.Context, id string) error

	SelectClient(ctx context.Context, id, clientCode string) (*SessionView, error)
	AddToCart(ctx context.Context, id, code string, quantity int) (*SessionView, error)
	AdjustQuantity(ctx context.Context, id, code string, dir cart.Direction) (*SessionView, error)
	RemoveLine(ctx context.Context, id, code string) (*SessionView, error)
	ToggleShade(ctx context.Context, id, code, defaultQty string) (*SessionView, bool, error)

	NextDeliveryDate(ctx context.Context, id string) (*SessionView, error)
	PreviousDeliveryDate(ctx context.Context, id string) (*SessionView, error)

	Checkout(ctx context.Context, id string, confirm bool) (*OrderSummary, error)
}

type orderService struct {
	catalog    cart.Catalog
	store      session.Store
	dispatcher Dispatcher
	recipient  string
	logger     *zap.Logger
	now        func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock serializes commands on one session. refs counts holders and
// waiters; the entry leaves the map when it drops to zero.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewOrderService wires the session commands. dispatcher may be nil, in
// which case confirmed orders are only returned to the caller.
func NewOrderService(cat cart.Catalog, store session.Store, dispatcher Dispatcher, recipient string, logger *zap.Logger) OrderService {
	return &orderService{
		catalog:    cat,
		store:      store,
		dispatcher: dispatcher,
		recipient:  recipient,
		logger:     logger,
		now:        time.Now,
		locks:      make(map[string]*sessionLock),
	}
}

func (s *orderService) CreateSession(ctx context.Context) (*SessionView, error) {
	now := s.now()
	first := delivery.Initial(now)
	sess := &models.Session{
		ID:                  uuid.NewString(),
		DeliveryDate:        first,
		InitialDeliveryDate: first,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.logger.Info("session created", zap.String("session", sess.ID), zap.Time("delivery", first))
	return s.view(sess), nil
}

func (s *orderService) GetSession(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *orderService) EndSession(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("session ended", zap.String("session", id))
	return nil
}

// SelectClient changes the session's client and reprices the cart. An
// empty code deselects the client and empties the cart.
func (s *orderService) SelectClient(ctx context.Context, id, clientCode string) (*SessionView, error) {
	return s.update(ctx, id, func(e *cart.Engine) error {
		if clientCode == "" {
			e.OnClientChanged(nil)
			return nil
		}
		client, ok := s.catalog.Client(clientCode)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownClient, clientCode)
		}
		e.OnClientChanged(client)
		return nil
	})
}

func (s *orderService) AddToCart(ctx context.Context, id, code string, quantity int) (*SessionView, error) {
	return s.update(ctx, id, func(e *cart.Engine) error {
		_, err := e.AddOrSetQuantity(code, quantity)
		return err
	})
}

func (s *orderService) AdjustQuantity(ctx context.Context, id, code string, dir cart.Direction) (*SessionView, error) {
	return s.update(ctx, id, func(e *cart.Engine) error {
		return e.AdjustQuantity(code, dir)
	})
}

func (s *orderService) RemoveLine(ctx context.Context, id, code string) (*SessionView, error) {
	return s.update(ctx, id, func(e *cart.Engine) error {
		e.RemoveLine(code)
		return nil
	})
}

func (s *orderService) ToggleShade(ctx context.Context, id, code, defaultQty string) (*SessionView, bool, error) {
	var inCart bool
	view, err := s.update(ctx, id, func(e *cart.Engine) error {
		var err error
		inCart, err = e.ToggleShade(code, defaultQty)
		return err
	})
	return view, inCart, err
}

func (s *orderService) NextDeliveryDate(ctx context.Context, id string) (*SessionView, error) {
	return s.update(ctx, id, func(e *cart.Engine) error {
		sess := e.Session()
		sess.DeliveryDate = delivery.Next(sess.DeliveryDate)
		return nil
	})
}

func (s *orderService) PreviousDeliveryDate(ctx context.Context, id string) (*SessionView, error) {
	return s.update(ctx, id, func(e *cart.Engine) error {
		sess := e.Session()
		sess.DeliveryDate = delivery.Previous(sess.DeliveryDate, sess.InitialDeliveryDate)
		return nil
	})
}

// Checkout renders the order summary. With confirm set, the summary is sent
// through the dispatcher (when there is one) and the cart and client are
// reset. A failed dispatch leaves the session unchanged.
func (s *orderService) Checkout(ctx context.Context, id string, confirm bool) (*OrderSummary, error) {
	var out *OrderSummary
	_, err := s.update(ctx, id, func(e *cart.Engine) error {
		if len(e.Lines()) == 0 {
			return ErrEmptyCart
		}
		client := e.Client()
		if client == nil {
			return cart.ErrNoClientSelected
		}

		ts := s.now()
		totals := e.Totals()
		out = &OrderSummary{
			Subject: summary.Subject(client, ts),
			Body: summary.Format(summary.Input{
				Client:       client,
				Lines:        e.Lines(),
				Totals:       totals,
				Timestamp:    ts,
				DeliveryDate: e.Session().DeliveryDate,
				TaxRate:      cart.TaxRate,
			}),
			Totals: totals,
		}
		if !confirm {
			return nil
		}

		if s.dispatcher != nil {
			if err := s.dispatcher.Send(ctx, s.recipient, out.Subject, out.Body); err != nil {
				s.logger.Error("order dispatch failed", zap.String("session", id), zap.Error(err))
				return fmt.Errorf("%w: %v", ErrDispatchFailed, err)
			}
			out.Dispatched = true
		}
		out.Confirmed = true

		s.logger.Info("order confirmed",
			zap.String("session", id),
			zap.String("client", client.Code),
			zap.Int("lines", len(e.Lines())),
			zap.String("total", totals.Grand.StringFixed(2)),
			zap.Bool("dispatched", out.Dispatched),
		)
		e.OnClientChanged(nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// update runs fn on the session under its lock and saves the result. When
// fn fails nothing is saved.
func (s *orderService) update(ctx context.Context, id string, fn func(e *cart.Engine) error) (*SessionView, error) {
	unlock := s.lock(id)
	defer unlock()

	sess, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	e := cart.NewEngine(s.catalog, sess, s.logger.With(zap.String("session", id)))
	if err := fn(e); err != nil {
		return nil, err
	}

	sess.UpdatedAt = s.now()
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s.view(sess), nil
}

func (s *orderService) load(ctx context.Context, id string) (*models.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

func (s *orderService) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}

func (s *orderService) view(sess *models.Session) *SessionView {
	e := cart.NewEngine(s.catalog, sess, nil)
	lines := sess.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return &SessionView{
		ID:                  sess.ID,
		Client:              e.Client(),
		Lines:               lines,
		ItemCount:           sess.ItemCount(),
		Totals:              e.Totals(),
		DeliveryDate:        sess.DeliveryDate,
		InitialDeliveryDate: sess.InitialDeliveryDate,
		DeliveryLabel:       summary.LongDate(sess.DeliveryDate),
	}
}
