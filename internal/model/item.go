package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/homekeep/internal/id"
)

// DateFormat is the layout used when rendering creation dates.
const DateFormat = "2006-01-02"

// DefaultCurrency labels amounts when no currency is configured.
const DefaultCurrency = "PKR"

var (
	// ErrNegativeAmount is returned when an amount or budget is below zero.
	ErrNegativeAmount = errors.New("amount must not be negative")
	// ErrEmptyCategory is returned when a category string is blank.
	ErrEmptyCategory = errors.New("empty category")
	// ErrUnknownPriority is returned for a priority outside High/Medium/Low.
	ErrUnknownPriority = errors.New("unknown priority")
)

// Item is the identity and date contract shared by expenses and tasks.
type Item interface {
	ID() string
	Name() string
	Created() time.Time
	Details() string
}

// Option customizes an item at construction.
type Option func(*itemBase)

// CreatedOn overrides the creation date (defaults to today).
func CreatedOn(t time.Time) Option {
	return func(b *itemBase) { b.created = truncateDay(t) }
}

// WithCurrency sets the currency label used by Details.
func WithCurrency(currency string) Option {
	return func(b *itemBase) {
		if currency != "" {
			b.currency = currency
		}
	}
}

type itemBase struct {
	id       string
	name     string
	created  time.Time
	currency string
}

func newItemBase(name string, opts []Option) itemBase {
	b := itemBase{
		id:       id.New(),
		name:     name,
		created:  truncateDay(time.Now()),
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// ID returns the immutable identifier.
func (b *itemBase) ID() string { return b.id }

// Name returns the display name.
func (b *itemBase) Name() string { return b.name }

// Created returns the creation date at midnight local time.
func (b *itemBase) Created() time.Time { return b.created }

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatAmount renders an amount with its currency label, e.g. "PKR 900.00".
func FormatAmount(currency string, amount decimal.Decimal) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return currency + " " + amount.StringFixed(2)
}
