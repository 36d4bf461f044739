package repository

import "sync"

// memoryTable is a keyed in-memory store with sequential int64 IDs starting at 1.
// IDs are never reused within the process lifetime, even after deletes.
// Values are stored and returned by value; callers clone any reference fields.
type memoryTable[T any] struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]T
	order  []int64
}

func newMemoryTable[T any]() *memoryTable[T] {
	return &memoryTable[T]{nextID: 1, rows: make(map[int64]T)}
}

// insert reserves the next ID and stores the row built for it. check runs
// under the write lock so uniqueness rules can inspect existing rows.
func (t *memoryTable[T]) insert(check func(existing T) error, build func(id int64) T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if check != nil {
		for _, id := range t.order {
			if err := check(t.rows[id]); err != nil {
				var zero T
				return zero, err
			}
		}
	}

	id := t.nextID
	t.nextID++
	row := build(id)
	t.rows[id] = row
	t.order = append(t.order, id)
	return row, nil
}

func (t *memoryTable[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// find returns the first row, in insertion order, matching pred.
func (t *memoryTable[T]) find(pred func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, id := range t.order {
		if row := t.rows[id]; pred(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *memoryTable[T]) list(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		row := t.rows[id]
		if pred == nil || pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// update applies mutate to the row with the given id. check sees every other
// row so uniqueness can be enforced against the mutated value.
func (t *memoryTable[T]) update(id int64, mutate func(*T) error, check func(updated, other T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	if err := mutate(&row); err != nil {
		var zero T
		return zero, err
	}
	if check != nil {
		for _, otherID := range t.order {
			if otherID == id {
				continue
			}
			if err := check(row, t.rows[otherID]); err != nil {
				var zero T
				return zero, err
			}
		}
	}
	t.rows[id] = row
	return row, nil
}

func (t *memoryTable[T]) delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}
