// Package testutil provides helpers for setting up test databases and data.
package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// ClientBuilder provides a fluent interface for creating test clients.
//
// Example usage:
//
//	// Simple creation with defaults
//	client := testutil.NewClient().Build(t, db)
//
//	// Customized client
//	client := testutil.NewClient().WithName("Alice").Build(t, db)
type ClientBuilder struct {
	ID   string
	Name string
}

// NewClient creates a ClientBuilder with sensible defaults.
func NewClient() *ClientBuilder {
	return &ClientBuilder{
		ID:   MakeID(),
		Name: "Test Client",
	}
}

// WithID sets a custom ID.
func (b *ClientBuilder) WithID(id string) *ClientBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ClientBuilder) WithName(name string) *ClientBuilder {
	b.Name = name
	return b
}

// Build creates the client in the database and returns it.
func (b *ClientBuilder) Build(t *testing.T, db *sql.DB) model.Client {
	t.Helper()

	_, err := db.Exec(`INSERT INTO client (id, name) VALUES (?, ?)`, b.ID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}

	return model.Client{ID: b.ID, Name: b.Name}
}

// FundBuilder provides a fluent interface for creating test funds.
type FundBuilder struct {
	ID       string
	ClientID string
	Name     string
	Strategy string
}

// NewFund creates a FundBuilder owned by the given client.
func NewFund(clientID string) *FundBuilder {
	return &FundBuilder{
		ID:       MakeID(),
		ClientID: clientID,
		Name:     "Test Fund",
		Strategy: model.StrategyOpenEnded,
	}
}

// WithID sets a custom ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithStrategy sets a custom strategy.
func (b *FundBuilder) WithStrategy(strategy string) *FundBuilder {
	b.Strategy = strategy
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO fund (id, client_id, name, strategy) VALUES (?, ?, ?, ?)`,
		b.ID, b.ClientID, b.Name, b.Strategy,
	)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{ID: b.ID, ClientID: b.ClientID, Name: b.Name, Strategy: b.Strategy}
}

// SecurityBuilder provides a fluent interface for creating test securities.
type SecurityBuilder struct {
	ID   string
	Name string
}

// NewSecurity creates a SecurityBuilder with sensible defaults.
func NewSecurity() *SecurityBuilder {
	return &SecurityBuilder{
		ID:   MakeID(),
		Name: "TEST-SEC",
	}
}

// WithName sets a custom name.
func (b *SecurityBuilder) WithName(name string) *SecurityBuilder {
	b.Name = name
	return b
}

// Build creates the security in the database and returns it.
func (b *SecurityBuilder) Build(t *testing.T, db *sql.DB) model.Security {
	t.Helper()

	_, err := db.Exec(`INSERT INTO security (id, name) VALUES (?, ?)`, b.ID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test security: %v", err)
	}

	return model.Security{ID: b.ID, Name: b.Name}
}

// CashMovementBuilder provides a fluent interface for creating test cash
// movements. Defaults to a 1000 USD deposit.
type CashMovementBuilder struct {
	ID        string
	ClientID  string
	Date      time.Time
	Kind      string
	Amount    float64
	Currency  string
	FxRate    *float64
	AmountUSD float64
}

// NewCashMovement creates a CashMovementBuilder for the given client.
func NewCashMovement(clientID string) *CashMovementBuilder {
	return &CashMovementBuilder{
		ID:        MakeID(),
		ClientID:  clientID,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Kind:      model.MovementDeposit,
		Amount:    1000,
		Currency:  "USD",
		AmountUSD: 1000,
	}
}

// WithDate sets a custom date.
func (b *CashMovementBuilder) WithDate(date time.Time) *CashMovementBuilder {
	b.Date = date
	return b
}

// Withdrawal marks the movement as a withdrawal.
func (b *CashMovementBuilder) Withdrawal() *CashMovementBuilder {
	b.Kind = model.MovementWithdrawal
	return b
}

// WithAmountUSD sets both the native and USD amount for a USD movement.
func (b *CashMovementBuilder) WithAmountUSD(amount float64) *CashMovementBuilder {
	b.Amount = amount
	b.AmountUSD = amount
	return b
}

// WithCurrency sets a foreign currency with the given rate; the USD amount
// is derived the way the ledger derives it at creation time.
func (b *CashMovementBuilder) WithCurrency(currency string, fxRate float64) *CashMovementBuilder {
	b.Currency = currency
	b.FxRate = &fxRate
	b.AmountUSD = b.Amount / fxRate
	return b
}

// Build creates the cash movement in the database and returns it.
func (b *CashMovementBuilder) Build(t *testing.T, db *sql.DB) model.CashMovement {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO cash_movement (id, client_id, date, kind, amount, currency, fx_rate, amount_usd)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ClientID, b.Date.Format("2006-01-02"), b.Kind, b.Amount, b.Currency, b.FxRate, b.AmountUSD,
	)
	if err != nil {
		t.Fatalf("Failed to create test cash movement: %v", err)
	}

	return model.CashMovement{
		ID:        b.ID,
		ClientID:  b.ClientID,
		Date:      b.Date,
		Kind:      b.Kind,
		Amount:    b.Amount,
		Currency:  b.Currency,
		FxRate:    b.FxRate,
		AmountUSD: b.AmountUSD,
	}
}

// AllocationBuilder provides a fluent interface for creating test allocations.
// Defaults to a 500 USD manual assignment.
type AllocationBuilder struct {
	ID        string
	ClientID  string
	FundID    string
	Date      time.Time
	Kind      string
	AmountUSD float64
	Origin    string
	TradeID   *string
}

// NewAllocation creates an AllocationBuilder for the given client and fund.
func NewAllocation(clientID, fundID string) *AllocationBuilder {
	return &AllocationBuilder{
		ID:        MakeID(),
		ClientID:  clientID,
		FundID:    fundID,
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Kind:      model.AllocationAssign,
		AmountUSD: 500,
		Origin:    model.OriginManual,
	}
}

// WithDate sets a custom date.
func (b *AllocationBuilder) WithDate(date time.Time) *AllocationBuilder {
	b.Date = date
	return b
}

// WithAmountUSD sets a custom USD amount.
func (b *AllocationBuilder) WithAmountUSD(amount float64) *AllocationBuilder {
	b.AmountUSD = amount
	return b
}

// Unassign marks the allocation as a transfer back to liquidity.
func (b *AllocationBuilder) Unassign() *AllocationBuilder {
	b.Kind = model.AllocationUnassign
	return b
}

// SystemOrigin marks the allocation as ledger-written, linked to a trade.
func (b *AllocationBuilder) SystemOrigin(tradeID string) *AllocationBuilder {
	b.Origin = model.OriginSystem
	b.TradeID = &tradeID
	return b
}

// Build creates the allocation in the database and returns it.
func (b *AllocationBuilder) Build(t *testing.T, db *sql.DB) model.Allocation {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO allocation (id, client_id, fund_id, date, kind, amount_usd, origin, trade_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ClientID, b.FundID, b.Date.Format("2006-01-02"), b.Kind, b.AmountUSD, b.Origin, b.TradeID,
	)
	if err != nil {
		t.Fatalf("Failed to create test allocation: %v", err)
	}

	return model.Allocation{
		ID:        b.ID,
		ClientID:  b.ClientID,
		FundID:    b.FundID,
		Date:      b.Date,
		Kind:      b.Kind,
		AmountUSD: b.AmountUSD,
		Origin:    b.Origin,
		TradeID:   b.TradeID,
	}
}

// TradeBuilder provides a fluent interface for creating test trades.
// Defaults to a buy of 10 units at 10 USD.
type TradeBuilder struct {
	ID           string
	ClientID     string
	FundID       string
	SecurityID   string
	Date         time.Time
	Side         string
	Quantity     int64
	UnitPrice    float64
	Currency     string
	FxRate       *float64
	UnitPriceUSD float64
}

// NewTrade creates a TradeBuilder for the given client, fund and security.
func NewTrade(clientID, fundID, securityID string) *TradeBuilder {
	return &TradeBuilder{
		ID:           MakeID(),
		ClientID:     clientID,
		FundID:       fundID,
		SecurityID:   securityID,
		Date:         time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Side:         model.TradeBuy,
		Quantity:     10,
		UnitPrice:    10,
		Currency:     "USD",
		UnitPriceUSD: 10,
	}
}

// WithDate sets a custom date.
func (b *TradeBuilder) WithDate(date time.Time) *TradeBuilder {
	b.Date = date
	return b
}

// Sell marks the trade as a sale.
func (b *TradeBuilder) Sell() *TradeBuilder {
	b.Side = model.TradeSell
	return b
}

// WithQuantity sets a custom quantity.
func (b *TradeBuilder) WithQuantity(quantity int64) *TradeBuilder {
	b.Quantity = quantity
	return b
}

// WithUnitPriceUSD sets both the native and USD unit price for a USD trade.
func (b *TradeBuilder) WithUnitPriceUSD(price float64) *TradeBuilder {
	b.UnitPrice = price
	b.UnitPriceUSD = price
	return b
}

// Build creates the trade in the database and returns it.
func (b *TradeBuilder) Build(t *testing.T, db *sql.DB) model.Trade {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO trade (id, client_id, fund_id, security_id, date, side, quantity, unit_price, currency, fx_rate, unit_price_usd)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ClientID, b.FundID, b.SecurityID, b.Date.Format("2006-01-02"), b.Side,
		b.Quantity, b.UnitPrice, b.Currency, b.FxRate, b.UnitPriceUSD,
	)
	if err != nil {
		t.Fatalf("Failed to create test trade: %v", err)
	}

	return model.Trade{
		ID:           b.ID,
		ClientID:     b.ClientID,
		FundID:       b.FundID,
		SecurityID:   b.SecurityID,
		Date:         b.Date,
		Side:         b.Side,
		Quantity:     b.Quantity,
		UnitPrice:    b.UnitPrice,
		Currency:     b.Currency,
		FxRate:       b.FxRate,
		UnitPriceUSD: b.UnitPriceUSD,
	}
}

// FxRateBuilder provides a fluent interface for creating stored rates.
type FxRateBuilder struct {
	ID       string
	Currency string
	Rate     float64
	Date     time.Time
}

// NewFxRate creates an FxRateBuilder for the given currency and rate.
func NewFxRate(currency string, rate float64) *FxRateBuilder {
	return &FxRateBuilder{
		ID:       MakeID(),
		Currency: currency,
		Rate:     rate,
		Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithDate sets a custom date.
func (b *FxRateBuilder) WithDate(date time.Time) *FxRateBuilder {
	b.Date = date
	return b
}

// Build stores the rate in the database and returns it.
func (b *FxRateBuilder) Build(t *testing.T, db *sql.DB) model.FxRate {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO fx_rate (id, currency, rate, date) VALUES (?, ?, ?, ?)`,
		b.ID, b.Currency, b.Rate, b.Date.Format("2006-01-02"),
	)
	if err != nil {
		t.Fatalf("Failed to create test fx rate: %v", err)
	}

	return model.FxRate{ID: b.ID, Currency: b.Currency, Rate: b.Rate, Date: b.Date}
}
