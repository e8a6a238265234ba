package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := New[string, int]()
	assert.Equal(t, 0, c.Size())

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("S01E01", 1)
	c.Set("S01E02", 2)
	c.Set("S01E01", 3)
	assert.Equal(t, 2, c.Size())

	v, ok := c.Get("S01E01")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	assert.ElementsMatch(t, []string{"S01E01", "S01E02"}, c.Keys())

	c.Delete("S01E01")
	c.Delete("never-set")
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, []string{"S01E02"}, c.Keys())
}

func TestConcurrentGetOrCompute(t *testing.T) {
	c := New[int, int]()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := range 100 {
				key := j % 10
				v, err := c.GetOrCompute(key, func() (int, error) { return key * 2, nil })
				if err != nil || v != key*2 {
					t.Errorf("goroutine %d: unexpected value %d err %v", id, v, err)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, c.Size())
}

func TestGetOrCompute(t *testing.T) {
	c := New[string, int]()

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := c.GetOrCompute("answer", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 {
		t.Errorf("expected 42, got %d", v)
	}

	v, err = c.GetOrCompute("answer", compute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 42 || calls != 1 {
		t.Errorf("expected cached value with one compute call, got value %d after %d calls", v, calls)
	}

	wantErr := errors.New("boom")
	_, err = c.GetOrCompute("broken", func() (int, error) { return 0, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
	if _, ok := c.Get("broken"); ok {
		t.Error("errors should not be cached")
	}
}
