package player

import (
	"context"
	"errors"
)

var (
	// ErrPlayerNotFound is returned by stores when a write targets a missing player.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerRejected is returned when the store refuses a write that breaks its constraints.
	ErrPlayerRejected = errors.New("player rejected by store")
	// ErrStoreUnavailable is returned when the store refuses work without trying it.
	ErrStoreUnavailable = errors.New("player store unavailable")
)

// Order selects the sort column for player listings.
type Order string

const (
	OrderID         Order = "ID"
	OrderName       Order = "NAME"
	OrderExperience Order = "EXPERIENCE"
	OrderBirthday   Order = "BIRTHDAY"
	OrderLevel      Order = "LEVEL"
)

var AllOrders = map[Order]struct{}{
	OrderID:         {},
	OrderName:       {},
	OrderExperience: {},
	OrderBirthday:   {},
	OrderLevel:      {},
}

const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

// Filter narrows player listings. Nil fields do not constrain the result.
// After and Before are inclusive epoch milliseconds on the birthday.
type Filter struct {
	Name          *string
	Title         *string
	Race          *Race
	Profession    *Profession
	After         *int64
	Before        *int64
	Banned        *bool
	MinExperience *int64
	MaxExperience *int64
	MinLevel      *int64
	MaxLevel      *int64
}

// Page is a zero-based page window.
type Page struct {
	Number int
	Size   int
}

func DefaultPage() Page {
	return Page{Number: DefaultPageNumber, Size: DefaultPageSize}
}

func (p Page) Offset() int {
	return p.Number * p.Size
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter, order Order, page Page) ([]Player, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	Create(ctx context.Context, p Player) (Player, error)
	Update(ctx context.Context, p Player) error
	Delete(ctx context.Context, id int64) error
}
