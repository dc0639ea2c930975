package services

import (
	"context"
	"sync"
	"time"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/analytics"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/repositories"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

// DashboardService derives metrics from the invoice collection and keeps a live
// copy current for streaming consumers
type DashboardService struct {
	invoiceRepo     repositories.InvoiceRepo
	profileRepo     repositories.ProfileRepo
	bus             *events.Bus
	recentLimit     int
	defaultCurrency string
	now             func() time.Time

	mu       sync.RWMutex
	latest   *analytics.Snapshot
	watchers map[int]chan analytics.Snapshot
	nextID   int
}

func NewDashboardService(invoiceRepo repositories.InvoiceRepo, profileRepo repositories.ProfileRepo, bus *events.Bus, recentLimit int, defaultCurrency string) *DashboardService {
	if recentLimit <= 0 {
		recentLimit = analytics.DefaultRecentLimit
	}
	return &DashboardService{
		invoiceRepo:     invoiceRepo,
		profileRepo:     profileRepo,
		bus:             bus,
		recentLimit:     recentLimit,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
		watchers:        make(map[int]chan analytics.Snapshot),
	}
}

// SetClock replaces the wall clock used for "this month" and growth windows
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

// Snapshot re-reads the store and computes a fresh summary
func (s *DashboardService) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	invoices, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	return analytics.ComputeSnapshot(models.Records(invoices), s.now(), s.recentLimit), nil
}

// Cards returns the snapshot as stat cards in the profile currency
func (s *DashboardService) Cards(ctx context.Context) ([]analytics.StatCard, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ToStatCards(snap, s.currency(ctx)), nil
}

// Revenue returns paid revenue per month for the last months months
func (s *DashboardService) Revenue(ctx context.Context, months int) (analytics.ChartData, error) {
	if months <= 0 || months > 36 {
		months = 12
	}
	invoices, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return analytics.ChartData{}, err
	}
	ranges, values := analytics.MonthlyRevenue(models.Records(invoices), s.now(), months)
	return analytics.RevenueChart(ranges, values), nil
}

func (s *DashboardService) currency(ctx context.Context) string {
	if s.profileRepo != nil {
		if p, err := s.profileRepo.Get(ctx); err == nil && p.Currency != "" {
			return p.Currency
		}
	}
	return s.defaultCurrency
}

// Run keeps the live snapshot current until ctx is done. It recomputes once on
// start and again after every invoiceUpdated signal.
func (s *DashboardService) Run(ctx context.Context) {
	updates, cancel := s.bus.Subscribe(events.InvoiceUpdated)
	defer cancel()

	s.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			s.refresh(ctx)
		}
	}
}

func (s *DashboardService) refresh(ctx context.Context) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		utils.LogError("Failed to refresh dashboard snapshot", err, nil)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = &snap
	for _, ch := range s.watchers {
		offerLatest(ch, snap)
	}
}

// offerLatest replaces any undelivered snapshot in ch with snap
func offerLatest(ch chan analytics.Snapshot, snap analytics.Snapshot) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Latest returns the live snapshot. ok is false before Run has computed one.
func (s *DashboardService) Latest() (analytics.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return analytics.Snapshot{}, false
	}
	return *s.latest, true
}

// Watch returns a channel that always holds the most recent undelivered
// snapshot, primed with the current one when available
func (s *DashboardService) Watch() (<-chan analytics.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan analytics.Snapshot, 1)
	if s.latest != nil {
		ch <- *s.latest
	}
	s.watchers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}
