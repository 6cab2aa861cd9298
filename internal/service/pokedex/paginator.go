package pokedex

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
)

// State is the lifecycle state of a Paginator.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateExhausted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateExhausted:
		return "exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StepForWidth returns the page size suited to a viewport width in pixels.
func StepForWidth(width int) int {
	switch {
	case width >= 3400:
		return 60
	case width > 2999:
		return 40
	case width > 1800:
		return 30
	default:
		return 20
	}
}

type pageFetcher interface {
	FetchPage(ctx context.Context, offset, limit int, facets Facets) (*Page, error)
}

// PaginatorConfig configures a Paginator.
type PaginatorConfig struct {
	// FirstStep is the size of the first page; 0 means Step.
	FirstStep int
	Step      int
	Facets    Facets
}

// Paginator drives sequential page loads. At most one page is in flight;
// once the listing is exhausted no further upstream calls are made.
type Paginator struct {
	log    *slog.Logger
	pages  pageFetcher
	facets Facets

	mu        sync.Mutex
	state     State
	offset    int
	started   bool
	firstStep int
	step      int
	lastErr   error
}

// NewPaginator creates an idle paginator positioned at offset 0.
func NewPaginator(logger *slog.Logger, pages pageFetcher, cfg PaginatorConfig) *Paginator {
	step := cfg.Step
	if step <= 0 {
		step = StepForWidth(0)
	}
	first := cfg.FirstStep
	if first <= 0 {
		first = step
	}
	return &Paginator{
		log:       logger.With("service", "paginator"),
		pages:     pages,
		facets:    cfg.Facets,
		firstStep: first,
		step:      step,
	}
}

// Next loads the page at the cursor and advances it.
func (p *Paginator) Next(ctx context.Context) (*Page, error) {
	return p.run(ctx, func() (int, int) {
		return p.offset, p.nextLimit()
	})
}

// Request loads the page at offset with the given limit. The cursor moves
// to offset+limit on success.
func (p *Paginator) Request(ctx context.Context, offset, limit int) (*Page, error) {
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}
	return p.run(ctx, func() (int, int) {
		return offset, limit
	})
}

// pick is called with p.mu held.
func (p *Paginator) run(ctx context.Context, pick func() (int, int)) (*Page, error) {
	p.mu.Lock()
	offset, limit := pick()
	switch p.state {
	case StateFetching:
		p.mu.Unlock()
		return nil, domain.ErrPageInFlight
	case StateExhausted:
		p.mu.Unlock()
		return &Page{Offset: offset, Limit: limit, Exhausted: true}, nil
	}
	p.state = StateFetching
	p.lastErr = nil
	p.mu.Unlock()

	page, err := p.pages.FetchPage(ctx, offset, limit, p.facets)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.state = StateFailed
		p.lastErr = err
		p.log.ErrorContext(ctx, "page load failed",
			slog.Int("offset", offset),
			slog.Int("limit", limit),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	p.offset = offset + limit
	p.started = true
	if page.Exhausted {
		p.state = StateExhausted
		p.log.InfoContext(ctx, "all pokemon are loaded", slog.Int("offset", p.offset))
	} else {
		p.state = StateIdle
	}
	return page, nil
}

func (p *Paginator) nextLimit() int {
	if !p.started {
		return p.firstStep
	}
	return p.step
}

// State returns the current state.
func (p *Paginator) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsFetching reports whether a page is in flight. Callers check it before
// Next or Request, which fail with domain.ErrPageInFlight while it is true.
func (p *Paginator) IsFetching() bool { return p.State() == StateFetching }

// IsExhausted reports whether upstream has no further pages. The state is
// terminal: later Next and Request calls return an empty page without an
// upstream call.
func (p *Paginator) IsExhausted() bool { return p.State() == StateExhausted }

// Cursor returns the offset and limit the next call to Next will use.
func (p *Paginator) Cursor() (offset, limit int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset, p.nextLimit()
}

// Err returns the error of the last failed load, nil otherwise.
func (p *Paginator) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
