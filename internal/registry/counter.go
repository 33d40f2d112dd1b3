package registry

import (
	"context"
	"strconv"
	"time"

	"docregistry/internal/model"
	"docregistry/internal/numbering"
	"docregistry/internal/repository"
)

// CounterRegistry owns the CounterState: the per-type sequences, the year they belong to,
// and the document order sequence.
type CounterRegistry struct {
	persist repository.Persistence
	prefix  string
	now     func() time.Time
	state   model.CounterState
}

// LoadCounterRegistry reads the stored counters (defaulting to zero counts for the current
// year) and runs the rollover check once. The boolean result reports whether a rollover
// happened.
func LoadCounterRegistry(ctx context.Context, p repository.Persistence, prefix string, now func() time.Time) (*CounterRegistry, bool, error) {
	stored, err := p.LoadCounters(ctx)
	if err != nil {
		return nil, false, persistenceError("load counters", err)
	}
	c := &CounterRegistry{persist: p, prefix: prefix, now: now}
	if stored != nil {
		c.state = *stored
	} else {
		c.state = model.CounterState{Year: now().Year()}
	}
	rolled, err := c.CheckRollover(ctx)
	if err != nil {
		return nil, false, err
	}
	return c, rolled, nil
}

// State returns a copy of the current counters.
func (c *CounterRegistry) State() model.CounterState {
	return c.state
}

// CheckRollover resets both auto-numbered counts when the calendar year differs from the
// stored one, and persists the reset immediately. The order sequence is not touched.
func (c *CounterRegistry) CheckRollover(ctx context.Context) (bool, error) {
	year := c.now().Year()
	if c.state.Year == year {
		return false, nil
	}
	prev := c.state
	c.state.SalidaCount = 0
	c.state.InternoCount = 0
	c.state.Year = year
	if err := c.persist.SaveCounters(ctx, c.state); err != nil {
		c.state = prev
		return false, persistenceError("save counters", err)
	}
	return true, nil
}

// PreviewNext returns the number the next committed document of type t will receive,
// without changing any state. Entrada previews are empty.
func (c *CounterRegistry) PreviewNext(t model.DocumentType) (string, error) {
	if !t.Valid() {
		return "", ErrInvalidType
	}
	if !t.AutoNumbered() {
		return "", nil
	}
	return numbering.Format(c.prefix, t, c.state.Count(t)+1, c.state.Year), nil
}

// PreviewOrder returns the id the next document added without an explicit id receives.
func (c *CounterRegistry) PreviewOrder() string {
	return numbering.FormatOrder(c.state.OrderSeq + 1)
}

// Commit increments the sequence of t and persists the counters. It returns the number that
// was committed. Entrada commits do nothing.
func (c *CounterRegistry) Commit(ctx context.Context, t model.DocumentType) (string, error) {
	return c.commit(ctx, t, "")
}

// commit advances the sequence of t and, when orderID is numeric and beyond the order
// sequence, the order sequence too. State is restored if the write fails.
func (c *CounterRegistry) commit(ctx context.Context, t model.DocumentType, orderID string) (string, error) {
	if !t.Valid() {
		return "", ErrInvalidType
	}
	prev := c.state
	number := ""
	switch t {
	case model.TypeSalida:
		c.state.SalidaCount++
		number = numbering.Format(c.prefix, t, c.state.SalidaCount, c.state.Year)
	case model.TypeInterno:
		c.state.InternoCount++
		number = numbering.Format(c.prefix, t, c.state.InternoCount, c.state.Year)
	}
	if n, ok := orderNumber(orderID); ok && n > c.state.OrderSeq {
		c.state.OrderSeq = n
	}
	if c.state == prev {
		return number, nil
	}
	if err := c.persist.SaveCounters(ctx, c.state); err != nil {
		c.state = prev
		return "", persistenceError("save counters", err)
	}
	return number, nil
}

// observeOrder raises the order sequence to at least n without persisting. It is used to
// seed the sequence from ids already present in the store.
func (c *CounterRegistry) observeOrder(n int) {
	if n > c.state.OrderSeq {
		c.state.OrderSeq = n
	}
}

func orderNumber(id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
