package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Store holds session carts keyed by user. Carts live only in memory and
// are destroyed on logout, explicit clear, or successful order placement;
// they are never persisted. The store is owned by the root wiring and
// injected where needed, never reached through a package-level singleton.
type Store struct {
	mu    sync.Mutex
	carts map[string][]Line
}

func NewStore() *Store {
	return &Store{carts: make(map[string][]Line)}
}

// Get returns a copy of the user's ordered line list.
func (s *Store) Get(userID string) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// Add appends a line, or bumps the quantity of an existing line for the
// same product. The captured price of an existing line is kept: price
// drift is reconciled at checkout, not on add.
func (s *Store) Add(userID string, line Line) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == line.ProductID {
			lines[i].Quantity += line.Quantity
			return nil
		}
	}
	s.carts[userID] = append(lines, line)
	return nil
}

// UpdateQuantity sets a line's quantity; zero or negative removes it.
func (s *Store) UpdateQuantity(userID, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(userID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

func (s *Store) Remove(userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[userID] = append(lines[:i], lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// SetPrice overwrites a line's captured price, leaving quantity untouched.
// Used when the user accepts a reconciled price change.
func (s *Store) SetPrice(userID, productID string, price decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Price = price
			return nil
		}
	}
	return ErrLineNotFound
}

func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// TotalPrice sums price × quantity across the cart at captured prices.
func (s *Store) TotalPrice(userID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.carts[userID] {
		total = total.Add(l.Subtotal())
	}
	return total
}
