package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahub/storefront/internal/domain"
	"github.com/zahub/storefront/internal/interfaces"
)

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

// mockCart carries a fixed set of lines and records whether Clear ran.
type mockCart struct {
	mu      sync.Mutex
	lines   []*domain.CartLine
	cleared bool

	listErr  error
	clearErr error
}

func (m *mockCart) ListLines(_ context.Context, _ uuid.UUID) ([]*domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.lines, nil
}

func (m *mockCart) AddLine(context.Context, uuid.UUID, interfaces.AddLineCommand) (*domain.CartLine, error) {
	return nil, errors.New("not used")
}

func (m *mockCart) UpdateQuantity(context.Context, uuid.UUID, int) error { return errors.New("not used") }
func (m *mockCart) RemoveLine(context.Context, uuid.UUID) error          { return errors.New("not used") }

func (m *mockCart) Clear(context.Context, uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	m.lines = nil
	return nil
}

// mockModifierSource implements only the slice of CartRepository the
// checkout pipeline touches.
type mockModifierSource struct {
	mods    map[uuid.UUID][]domain.LineModifier
	listErr error
}

func (m *mockModifierSource) ListModifiers(_ context.Context, lineID uuid.UUID) ([]domain.LineModifier, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.mods[lineID], nil
}

func (m *mockModifierSource) ListLines(context.Context, uuid.UUID) ([]*domain.CartLine, error) {
	return nil, errors.New("not used")
}
func (m *mockModifierSource) FindLine(context.Context, uuid.UUID) (*domain.CartLine, error) {
	return nil, errors.New("not used")
}
func (m *mockModifierSource) InsertLine(context.Context, *domain.CartLine) error {
	return errors.New("not used")
}
func (m *mockModifierSource) InsertModifier(context.Context, *domain.LineModifier) error {
	return errors.New("not used")
}
func (m *mockModifierSource) UpdateQuantity(context.Context, uuid.UUID, int, decimal.Decimal) error {
	return errors.New("not used")
}
func (m *mockModifierSource) DeleteModifiersByLine(context.Context, uuid.UUID) error {
	return errors.New("not used")
}
func (m *mockModifierSource) DeleteLine(context.Context, uuid.UUID) error {
	return errors.New("not used")
}
func (m *mockModifierSource) DeleteModifiersByUser(context.Context, uuid.UUID) error {
	return errors.New("not used")
}
func (m *mockModifierSource) DeleteLinesByUser(context.Context, uuid.UUID) error {
	return errors.New("not used")
}

type mockOrderRepo struct {
	mu        sync.Mutex
	orders    []*domain.Order
	lines     []*domain.OrderLine
	modifiers []domain.LineModifier

	insertOrderErr error
	failByName     map[string]error
}

func (m *mockOrderRepo) InsertOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertOrderErr != nil {
		return m.insertOrderErr
	}
	order.ID = uuid.New()
	m.orders = append(m.orders, order)
	return nil
}

func (m *mockOrderRepo) InsertLine(_ context.Context, line *domain.OrderLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failByName[line.DisplayName]; err != nil {
		return err
	}
	line.ID = uuid.New()
	m.lines = append(m.lines, line)
	return nil
}

func (m *mockOrderRepo) InsertModifiers(_ context.Context, mods []domain.LineModifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modifiers = append(m.modifiers, mods...)
	return nil
}

func (m *mockOrderRepo) ListByClient(context.Context, uuid.UUID) ([]*domain.Order, error) {
	return nil, errors.New("not used")
}

func (m *mockOrderRepo) FindByID(context.Context, uuid.UUID) (*domain.Order, error) {
	return nil, errors.New("not used")
}

type mockPublisher struct {
	mu       sync.Mutex
	messages []interfaces.OrderPlacedMessage
	err      error
}

func (m *mockPublisher) PublishOrderPlaced(_ context.Context, msg interfaces.OrderPlacedMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func cartLine(userID uuid.UUID, name string, unitPrice int64, quantity int) *domain.CartLine {
	price := decimal.NewFromInt(unitPrice)
	return &domain.CartLine{
		ID:          uuid.New(),
		UserID:      userID,
		DisplayName: name,
		Size:        domain.SizeMedium,
		CrustStyle:  domain.DefaultCrustStyle,
		CrustEdge:   domain.DefaultCrustEdge,
		Quantity:    quantity,
		UnitPrice:   price,
		Subtotal:    price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

func newFixture(lines ...*domain.CartLine) (*Service, *mockCart, *mockModifierSource, *mockOrderRepo, *mockPublisher) {
	cart := &mockCart{lines: lines}
	source := &mockModifierSource{mods: make(map[uuid.UUID][]domain.LineModifier)}
	orders := &mockOrderRepo{failByName: make(map[string]error)}
	publisher := &mockPublisher{}
	svc := NewService(cart, source, orders, publisher, nopLogger{})
	return svc, cart, source, orders, publisher
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _, orders, publisher := newFixture()

	_, err := svc.Checkout(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, orders.orders)
	assert.Empty(t, publisher.messages)
}

func TestCheckoutRequiresUser(t *testing.T) {
	svc, _, _, _, _ := newFixture()

	_, err := svc.Checkout(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestCheckoutHappyPath(t *testing.T) {
	userID := uuid.New()
	lineA := cartLine(userID, "My midnight Za", 31000, 2)
	lineB := cartLine(userID, "Margarita", 22000, 1)
	svc, cart, source, orders, publisher := newFixture(lineA, lineB)
	source.mods[lineA.ID] = []domain.LineModifier{
		{ID: uuid.New(), LineID: lineA.ID, IngredientID: uuid.New(), Kind: domain.ModifierExtra, ExtraCharge: decimal.NewFromInt(3000)},
	}

	order, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.ChannelMobileApp, order.Channel)
	assert.Equal(t, domain.PendingDeliveryAddress, order.DeliveryAddress)
	assert.True(t, decimal.NewFromInt(84000).Equal(order.Total), "total is the sum of the stored subtotals")
	assert.Len(t, order.Lines, 2)

	require.Len(t, orders.orders, 1)
	require.Len(t, orders.lines, 2)
	assert.Equal(t, order.ID, orders.lines[0].OrderID)
	require.Len(t, orders.modifiers, 1)
	assert.Equal(t, orders.lines[0].ID, orders.modifiers[0].LineID)

	assert.True(t, cart.cleared)

	require.Len(t, publisher.messages, 1)
	msg := publisher.messages[0]
	assert.Equal(t, order.ID, msg.OrderID)
	assert.Equal(t, userID, msg.ClientID)
	assert.Equal(t, 2, msg.LineCount)
	assert.True(t, order.Total.Equal(msg.Total))
}

func TestCheckoutSkipsFailedLines(t *testing.T) {
	userID := uuid.New()
	lineA := cartLine(userID, "keeper", 31000, 2)
	lineB := cartLine(userID, "loser", 22000, 1)
	svc, cart, _, orders, _ := newFixture(lineA, lineB)
	orders.failByName["loser"] = errors.New("boom")

	order, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err, "a skipped line never fails the checkout")

	// The total still reflects the full cart; only the snapshot is short.
	assert.True(t, decimal.NewFromInt(84000).Equal(order.Total))
	assert.Len(t, order.Lines, 1)
	assert.Len(t, orders.lines, 1)
	assert.Equal(t, "keeper", orders.lines[0].DisplayName)

	assert.True(t, cart.cleared, "cart is cleared even when lines were skipped")
}

func TestCheckoutAbortsWhenOrderInsertFails(t *testing.T) {
	userID := uuid.New()
	svc, cart, _, orders, publisher := newFixture(cartLine(userID, "My Za", 31000, 1))
	orders.insertOrderErr = errors.New("boom")

	_, err := svc.Checkout(context.Background(), userID)
	assert.Error(t, err)
	assert.Empty(t, orders.lines)
	assert.False(t, cart.cleared)
	assert.Empty(t, publisher.messages)
}

func TestCheckoutSucceedsWhenModifierLoadFails(t *testing.T) {
	userID := uuid.New()
	svc, cart, source, orders, _ := newFixture(cartLine(userID, "My Za", 31000, 1))
	source.listErr = errors.New("boom")

	order, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, order.Lines, "a line whose modifiers cannot be read is skipped")
	require.Len(t, orders.lines, 1)
	assert.True(t, cart.cleared)
}

func TestCheckoutSucceedsWhenPublishFails(t *testing.T) {
	userID := uuid.New()
	svc, cart, _, orders, publisher := newFixture(cartLine(userID, "My Za", 31000, 1))
	publisher.err = errors.New("broker down")

	order, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err, "a dead broker never fails a placed order")
	assert.Len(t, orders.orders, 1)
	assert.True(t, decimal.NewFromInt(31000).Equal(order.Total))
	assert.True(t, cart.cleared)
}

func TestCheckoutSucceedsWhenClearFails(t *testing.T) {
	userID := uuid.New()
	svc, cart, _, orders, _ := newFixture(cartLine(userID, "My Za", 31000, 1))
	cart.clearErr = errors.New("boom")

	_, err := svc.Checkout(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, orders.orders, 1)
}
