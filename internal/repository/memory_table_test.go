package repository

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID   int64
	Name string
}

func TestMemoryTable_SequentialIDsNeverReused(t *testing.T) {
	table := newMemoryTable[testRow]()
	build := func(name string) func(int64) testRow {
		return func(id int64) testRow { return testRow{ID: id, Name: name} }
	}

	a, err := table.insert(nil, build("a"))
	require.NoError(t, err)
	b, err := table.insert(nil, build("b"))
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(2), b.ID)

	require.True(t, table.delete(b.ID))
	require.False(t, table.delete(b.ID))

	c, err := table.insert(nil, build("c"))
	require.NoError(t, err)
	require.Equal(t, int64(3), c.ID)

	names := []string{}
	for _, r := range table.list(nil) {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"a", "c"}, names)
}

func TestMemoryTable_InsertCheckAborts(t *testing.T) {
	table := newMemoryTable[testRow]()
	_, err := table.insert(nil, func(id int64) testRow { return testRow{ID: id, Name: "a"} })
	require.NoError(t, err)

	dup := errors.New("duplicate")
	_, err = table.insert(func(existing testRow) error {
		if existing.Name == "a" {
			return dup
		}
		return nil
	}, func(id int64) testRow { return testRow{ID: id, Name: "a"} })
	require.ErrorIs(t, err, dup)

	next, err := table.insert(nil, func(id int64) testRow { return testRow{ID: id, Name: "b"} })
	require.NoError(t, err)
	require.Equal(t, int64(2), next.ID, "a rejected insert must not consume an id")
}

func TestMemoryTable_Update(t *testing.T) {
	table := newMemoryTable[testRow]()
	a, _ := table.insert(nil, func(id int64) testRow { return testRow{ID: id, Name: "a"} })
	_, _ = table.insert(nil, func(id int64) testRow { return testRow{ID: id, Name: "b"} })

	_, err := table.update(99, func(*testRow) error { return nil }, nil)
	require.ErrorIs(t, err, ErrNotFound)

	clash := func(updated, other testRow) error {
		if updated.Name == other.Name {
			return ErrConflict
		}
		return nil
	}
	_, err = table.update(a.ID, func(r *testRow) error { r.Name = "b"; return nil }, clash)
	require.ErrorIs(t, err, ErrConflict)

	got, ok := table.get(a.ID)
	require.True(t, ok)
	require.Equal(t, "a", got.Name, "a rejected update must not be stored")

	updated, err := table.update(a.ID, func(r *testRow) error { r.Name = "z"; return nil }, clash)
	require.NoError(t, err)
	require.Equal(t, "z", updated.Name)
}

func TestMemoryTable_ConcurrentInserts(t *testing.T) {
	table := newMemoryTable[testRow]()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = table.insert(nil, func(id int64) testRow { return testRow{ID: id} })
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, r := range table.list(nil) {
		require.False(t, seen[r.ID])
		seen[r.ID] = true
	}
	require.Len(t, seen, 100)
}
