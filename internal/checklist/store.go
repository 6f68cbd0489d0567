// Package checklist holds the household's to-do and chore lists in memory.
// State is ephemeral: it lives for the process lifetime only.
package checklist

import (
	"errors"
	"strings"
	"sync"

	"github.com/familyhub/family-hub/internal/domain"
	"github.com/google/uuid"
)

// ErrEmptyText is returned when an item is added with no text.
var ErrEmptyText = errors.New("item text is empty")

// Store is a thread-safe ordered list of checklist items.
type Store struct {
	mu              sync.Mutex
	items           []domain.ChecklistItem
	defaultAssignee string
}

// NewStore creates a store holding the seed items. defaultAssignee is
// applied to added items that name no assignee; leave it empty for lists
// that do not track assignment.
func NewStore(seed []domain.ChecklistItem, defaultAssignee string) *Store {
	items := make([]domain.ChecklistItem, len(seed))
	copy(items, seed)
	return &Store{items: items, defaultAssignee: defaultAssignee}
}

// List returns a copy of the items in insertion order.
func (s *Store) List() []domain.ChecklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChecklistItem, len(s.items))
	copy(out, s.items)
	return out
}

// Add appends a new incomplete item.
func (s *Store) Add(text, assignedTo string) (domain.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChecklistItem{}, ErrEmptyText
	}
	if assignedTo == "" {
		assignedTo = s.defaultAssignee
	}

	item := domain.ChecklistItem{
		ID:         uuid.NewString(),
		Text:       text,
		AssignedTo: assignedTo,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return item, nil
}

// Toggle flips an item's completed flag. Returns false if the id is unknown.
func (s *Store) Toggle(id string) (domain.ChecklistItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Completed = !s.items[i].Completed
			return s.items[i], true
		}
	}
	return domain.ChecklistItem{}, false
}

// Delete removes an item. Returns false if the id is unknown.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// SeedTodos returns the default quick to-do list.
func SeedTodos() []domain.ChecklistItem {
	return []domain.ChecklistItem{
		{ID: uuid.NewString(), Text: "Check the dashboard"},
	}
}

// SeedChores returns the default chore list.
func SeedChores() []domain.ChecklistItem {
	return []domain.ChecklistItem{
		{ID: uuid.NewString(), Text: "Empty dishwasher", AssignedTo: "Noah"},
		{ID: uuid.NewString(), Text: "Fold laundry", AssignedTo: "Emma"},
	}
}
