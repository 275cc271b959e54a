package appointment

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studio-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
	inventoryuc "github.com/BruksfildServices01/studio-scheduler/internal/usecase/inventory"
)

// 2026-10-19 é uma segunda-feira.
const monday = "2026-10-19"

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []notify.Message
}

func (n *recordingNotifier) Notify(msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.msgs))
	for i, m := range n.msgs {
		out[i] = m.Title
	}
	return out
}

func (n *recordingNotifier) count(title string) int {
	c := 0
	for _, t := range n.titles() {
		if t == title {
			c++
		}
	}
	return c
}

type cachedGrid struct {
	version string
	grid    *domain.Grid
}

// recordingCache imita o versionamento do cache Redis: cada Invalidate avança a
// versão do dia e gravações sob versão antiga nunca são lidas.
type recordingCache struct {
	mu          sync.Mutex
	business    int
	days        map[string]int
	grids       map[string]cachedGrid
	invalidated []string
	wiped       []uint
}

func newRecordingCache() *recordingCache {
	return &recordingCache{days: map[string]int{}, grids: map[string]cachedGrid{}}
}

func (c *recordingCache) version(date string) string {
	return strconv.Itoa(c.business) + "." + strconv.Itoa(c.days[date])
}

func (c *recordingCache) Get(_ context.Context, _ uint, date string) (*domain.Grid, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.version(date)
	e, ok := c.grids[date]
	if !ok || e.version != v {
		return nil, v, false
	}
	return e.grid, v, true
}

func (c *recordingCache) Set(_ context.Context, _ uint, date, version string, grid *domain.Grid) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grids[date] = cachedGrid{version: version, grid: grid}
}

func (c *recordingCache) Invalidate(_ context.Context, _ uint, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.days[date]++
	c.invalidated = append(c.invalidated, date)
}

func (c *recordingCache) InvalidateBusiness(_ context.Context, businessID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.business++
	c.wiped = append(c.wiped, businessID)
}

type fixture struct {
	t        *testing.T
	store    *memory.Store
	notifier *recordingNotifier
	cache    *recordingCache
	audit    *memory.AuditStore
	deps     Deps

	owner    models.User
	business models.Business
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	owner, business := store.SeedBusiness(
		models.User{
			Name:                 "Ana",
			Email:                "ana@studio.test",
			NotifyNewAppointment: true,
			NotifyCancellation:   true,
			NotifyLowStock:       true,
		},
		models.Business{Name: "Studio Ana", Slug: "studio-ana"},
	)

	require.NoError(t, store.SaveOperatingHours(context.Background(), mondayMorning(business.ID)))

	f := &fixture{
		t:        t,
		store:    store,
		notifier: &recordingNotifier{},
		cache:    newRecordingCache(),
		audit:    memory.NewAuditStore(),
		owner:    owner,
		business: business,
	}
	f.deps = Deps{
		Repo:     store,
		Tx:       store,
		Ledger:   inventoryuc.NewLedger(nil, zerolog.Nop()),
		Cache:    f.cache,
		Notifier: f.notifier,
		Audit:    memory.Recorder{Store: f.audit},
		Log:      zerolog.Nop(),
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC) },
	}
	return f
}

// mondayMorning: só segunda abre, 09:00–12:00, grade de 30 minutos.
func mondayMorning(businessID uint) *models.OperatingHours {
	weekly := make([]models.WeekdayHours, 7)
	for i := range weekly {
		weekly[i] = models.WeekdayHours{Day: i}
	}
	weekly[time.Monday] = models.WeekdayHours{
		Day:          int(time.Monday),
		Open:         true,
		MorningStart: "09:00",
		MorningEnd:   "12:00",
	}
	return &models.OperatingHours{
		BusinessID:   businessID,
		SlotInterval: "00:30",
		Weekly:       weekly,
		Blocks:       []models.AgendaBlock{},
	}
}

func (f *fixture) service(name, duration string, price float64, resources ...models.ServiceResource) models.Service {
	return f.store.SeedService(models.Service{
		BusinessID: f.business.ID,
		Name:       name,
		Duration:   duration,
		Price:      price,
		Active:     true,
		Resources:  resources,
	})
}

func (f *fixture) item(name string, current, min string) models.InventoryItem {
	return f.store.SeedItem(models.InventoryItem{
		BusinessID:      f.business.ID,
		Name:            name,
		Unit:            "un",
		CurrentQuantity: decimal.RequireFromString(current),
		MinQuantity:     decimal.RequireFromString(min),
	})
}

func (f *fixture) quantity(itemID uint) decimal.Decimal {
	item, ok := f.store.Item(itemID)
	require.True(f.t, ok)
	return item.CurrentQuantity
}

func uses(itemID uint, qty string) models.ServiceResource {
	return models.ServiceResource{InventoryID: itemID, Quantity: decimal.RequireFromString(qty), Unit: "un"}
}

func sharedUse(itemID uint, qty string) models.ServiceResource {
	r := uses(itemID, qty)
	r.IsShared = true
	return r
}

func at(date, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func (f *fixture) book(clock string, serviceIDs string) (*models.Appointment, error) {
	return NewCreateAppointment(f.deps).Execute(context.Background(), CreateInput{
		BusinessID:    f.business.ID,
		ServiceIDs:    serviceIDs,
		CustomerName:  "Bia",
		CustomerPhone: "11999990000",
		ScheduledAt:   at(monday, clock),
	})
}

func (f *fixture) mustBook(clock string, serviceIDs string) *models.Appointment {
	f.t.Helper()
	ap, err := f.book(clock, serviceIDs)
	require.NoError(f.t, err)
	return ap
}

func (f *fixture) setStatus(apID uint, status string) (*models.Appointment, error) {
	return NewUpdateStatus(f.deps).Execute(context.Background(), UpdateStatusInput{
		AppointmentID: apID,
		UserID:        f.owner.ID,
		Status:        status,
	})
}

func (f *fixture) mustSetStatus(apID uint, status string) *models.Appointment {
	f.t.Helper()
	ap, err := f.setStatus(apID, status)
	require.NoError(f.t, err)
	return ap
}

func (f *fixture) movement(itemID uint, kind, qty, reason string) error {
	items := inventoryuc.NewItems(f.store, f.store, f.store, f.notifier, audit.Nop{}, nil, zerolog.Nop())
	_, err := items.RegisterMovement(context.Background(), inventoryuc.MovementInput{
		BusinessID: f.business.ID,
		UserID:     f.owner.ID,
		ItemID:     itemID,
		Type:       kind,
		Quantity:   decimal.RequireFromString(qty),
		Reason:     reason,
	})
	return err
}

func idList(ids ...uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

var _ audit.Recorder = memory.Recorder{}

func auditFilter(businessID uint, action string) audit.Filter {
	return audit.Filter{BusinessID: businessID, Action: action}
}
