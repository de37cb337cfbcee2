package tips

import (
	"context"
	"testing"
	"time"
)

type memoryRepository struct {
	s      State
	writes int
}

func (m *memoryRepository) UpdateTipState(_ context.Context, fn func(*State) error) (State, error) {
	next := m.s
	if err := fn(&next); err != nil {
		return m.s, err
	}
	m.s = next
	m.writes++
	return m.s, nil
}

func TestTodayOncePerDay(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 1, 21, 0, 0, 0, time.UTC)
	repo := &memoryRepository{s: NewState()}
	p := &Picker{Repository: repo, Now: func() time.Time { return now }, IntN: func(int) int { return 3 }}

	tip, ok, err := p.Today(ctx)
	if err != nil || !ok || tip != Pool[3] {
		t.Fatalf("Today = %q, %v, %v", tip, ok, err)
	}
	if repo.s.LastDate != "2024-04-01" || repo.s.LastIndex != 3 {
		t.Fatalf("state = %+v", repo.s)
	}

	tip, ok, err = p.Today(ctx)
	if err != nil || ok || tip != "" {
		t.Fatalf("second Today = %q, %v, %v", tip, ok, err)
	}
	if repo.writes != 1 {
		t.Fatalf("expected a single write, got %d", repo.writes)
	}
}

func TestTodayNeverRepeatsLastIndex(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 4, 2, 21, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		last int
		draw int
		want int
	}{
		{name: "draw below last", last: 5, draw: 4, want: 4},
		{name: "draw at last shifts up", last: 5, draw: 5, want: 6},
		{name: "draw above last shifts up", last: 5, draw: 13, want: 14},
		{name: "no previous tip", last: -1, draw: 7, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepository{s: State{LastDate: "2024-04-01", LastIndex: tt.last}}
			p := &Picker{Repository: repo, Now: func() time.Time { return now }, IntN: func(int) int { return tt.draw }}
			tip, ok, err := p.Today(ctx)
			if err != nil || !ok {
				t.Fatalf("Today = %v, %v", ok, err)
			}
			if repo.s.LastIndex != tt.want || tip != Pool[tt.want] {
				t.Fatalf("picked %d, want %d", repo.s.LastIndex, tt.want)
			}
		})
	}
}

func TestSingleTipPool(t *testing.T) {
	repo := &memoryRepository{s: State{LastIndex: 0}}
	p := &Picker{Repository: repo, Pool: []string{"only"}, Now: time.Now}
	tip, ok, err := p.Today(context.Background())
	if err != nil || !ok || tip != "only" {
		t.Fatalf("Today = %q, %v, %v", tip, ok, err)
	}
}
