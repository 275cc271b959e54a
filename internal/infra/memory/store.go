// Package memory guarda todo o estado em mapas protegidos por mutex. Implementa as
// mesmas portas dos repositórios gorm e é usado nos testes dos casos de uso e handlers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/domain/inventory"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

type state struct {
	businesses   map[uint]models.Business
	users        map[uint]models.User
	services     map[uint]models.Service
	clients      map[uint]models.Client
	hours        map[uint]models.OperatingHours
	appointments map[uint]models.Appointment
	items        map[uint]models.InventoryItem
	logs         []models.InventoryLog
	seq          uint
}

type Store struct {
	mu sync.Mutex
	st state

	// txMu serializa as transações, como o lock do banco faria.
	txMu sync.Mutex

	appendLogHook func(entry *models.InventoryLog) error
}

var (
	_ appointment.Repository     = (*Store)(nil)
	_ appointment.TxRepository   = (*Store)(nil)
	_ appointment.TxRunner       = (*Store)(nil)
	_ inventory.Repository       = (*Store)(nil)
	_ inventory.LedgerRepository = (*Store)(nil)
	_ inventory.LedgerTxRunner   = (*Store)(nil)
)

func New() *Store {
	return &Store{st: state{
		businesses:   map[uint]models.Business{},
		users:        map[uint]models.User{},
		services:     map[uint]models.Service{},
		clients:      map[uint]models.Client{},
		hours:        map[uint]models.OperatingHours{},
		appointments: map[uint]models.Appointment{},
		items:        map[uint]models.InventoryItem{},
	}}
}

// SetAppendLogHook permite simular falha ao gravar o razão.
func (s *Store) SetAppendLogHook(fn func(entry *models.InventoryLog) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLogHook = fn
}

func (s *Store) nextID() uint {
	s.st.seq++
	return s.st.seq
}

// ======================================================
// SEED
// ======================================================

// SeedBusiness cria o dono e o negócio, devolvendo ambos com IDs.
func (s *Store) SeedBusiness(owner models.User, b models.Business) (models.User, models.Business) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner.ID = s.nextID()
	b.ID = s.nextID()
	b.OwnerID = owner.ID
	owner.BusinessID = b.ID

	s.st.users[owner.ID] = owner
	s.st.businesses[b.ID] = b
	return owner, b
}

func (s *Store) SeedService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.nextID()
	for i := range svc.Resources {
		svc.Resources[i].ID = s.nextID()
		svc.Resources[i].ServiceID = svc.ID
	}
	s.st.services[svc.ID] = cloneService(svc)
	return svc
}

func (s *Store) SeedItem(item models.InventoryItem) models.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID()
	s.st.items[item.ID] = item
	return item
}

// SeedAppointment grava o agendamento como está, sem validações.
func (s *Store) SeedAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertAppointment(&ap)
	return cloneAppointment(ap)
}

// SeedLog grava uma linha no razão sem passar pelo hook.
func (s *Store) SeedLog(entry models.InventoryLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID()
	s.st.logs = append(s.st.logs, entry)
}

func (s *Store) Item(id uint) (models.InventoryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.st.items[id]
	return item, ok
}

func (s *Store) Logs() []models.InventoryLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.InventoryLog(nil), s.st.logs...)
}

func (s *Store) Clients() []models.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Client, 0, len(s.st.clients))
	for _, c := range s.st.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) Appointments() []models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Appointment, 0, len(s.st.appointments))
	for _, ap := range s.st.appointments {
		out = append(out, cloneAppointment(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ======================================================
// TRANSACTIONS
// ======================================================

func (s *Store) Run(ctx context.Context, fn func(tx appointment.TxRepositories) error) error {
	return s.inTx(func() error {
		return fn(appointment.TxRepositories{Appointments: s, Ledger: s})
	})
}

func (s *Store) RunLedger(ctx context.Context, fn func(ledger inventory.LedgerRepository) error) error {
	return s.inTx(func() error {
		return fn(s)
	})
}

func (s *Store) inTx(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// ======================================================
// BUSINESS / SERVICE / CLIENT
// ======================================================

func (s *Store) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.st.businesses[id]
	if !ok {
		return nil, appointment.ErrBusinessNotFound
	}
	return &b, nil
}

func (s *Store) GetBusinessOwner(_ context.Context, businessID uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.st.businesses[businessID]
	if !ok {
		return nil, appointment.ErrBusinessNotFound
	}
	u, ok := s.st.users[b.OwnerID]
	if !ok {
		return nil, appointment.ErrBusinessNotFound
	}
	return &u, nil
}

func (s *Store) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.st.services[serviceID]
	if !ok || svc.BusinessID != businessID {
		return nil, appointment.ErrServiceNotFound
	}
	out := cloneService(svc)
	return &out, nil
}

func (s *Store) GetOrCreateClient(_ context.Context, businessID uint, name, phone, email string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.st.clients {
		if c.BusinessID != businessID {
			continue
		}
		if (phone != "" && c.Phone == phone) || (phone == "" && email != "" && c.Email == email) {
			return &c, nil
		}
	}

	c := models.Client{
		ID:         s.nextID(),
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
		CreatedAt:  time.Now(),
	}
	s.st.clients[c.ID] = c
	return &c, nil
}

// ======================================================
// OPERATING HOURS
// ======================================================

func (s *Store) GetOperatingHours(_ context.Context, businessID uint) (*models.OperatingHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oh, ok := s.st.hours[businessID]
	if !ok {
		return nil, nil
	}
	out := cloneHours(oh)
	return &out, nil
}

func (s *Store) SaveOperatingHours(_ context.Context, oh *models.OperatingHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.st.hours[oh.BusinessID]; ok {
		oh.ID = prev.ID
		oh.CreatedAt = prev.CreatedAt
	} else {
		oh.ID = s.nextID()
		oh.CreatedAt = time.Now()
	}
	oh.UpdatedAt = time.Now()
	s.st.hours[oh.BusinessID] = cloneHours(*oh)
	return nil
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.st.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	out := cloneAppointment(ap)
	return &out, nil
}

func (s *Store) GetAppointmentForUpdate(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.GetAppointment(ctx, id)
}

func (s *Store) ListAppointmentsForPeriod(_ context.Context, businessID uint, start, end *time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterAppointments(func(ap models.Appointment) bool {
		return ap.BusinessID == businessID && inRange(ap.ScheduledAt, start, end)
	}), nil
}

func (s *Store) SumRevenue(_ context.Context, businessID uint, start, end *time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, ap := range s.st.appointments {
		if ap.BusinessID == businessID &&
			ap.Status == string(appointment.StatusCompleted) &&
			inRange(ap.ScheduledAt, start, end) {
			total += ap.Price
		}
	}
	return total, nil
}

func (s *Store) LockBusinessDay(context.Context, uint, time.Time) error {
	return nil
}

func (s *Store) ListActiveAppointmentsForDay(_ context.Context, businessID uint, start, end time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filterAppointments(func(ap models.Appointment) bool {
		return ap.BusinessID == businessID &&
			ap.Status != string(appointment.StatusCancelled) &&
			inRange(ap.ScheduledAt, &start, &end)
	}), nil
}

func (s *Store) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.insertAppointment(ap)
	return nil
}

func (s *Store) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.st.appointments[ap.ID]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	cur.Status = ap.Status
	cur.CompletedAt = ap.CompletedAt
	cur.CancelledAt = ap.CancelledAt
	cur.UpdatedAt = time.Now()
	s.st.appointments[ap.ID] = cur
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.st.appointments, id)
	return nil
}

func (s *Store) insertAppointment(ap *models.Appointment) {
	ap.ID = s.nextID()
	if ap.Status == "" {
		ap.Status = string(appointment.InitialStatus())
	}
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	for i := range ap.Services {
		ap.Services[i].ID = s.nextID()
		ap.Services[i].AppointmentID = ap.ID
	}
	s.st.appointments[ap.ID] = cloneAppointment(*ap)
}

func (s *Store) filterAppointments(keep func(models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, ap := range s.st.appointments {
		if keep(ap) {
			out = append(out, cloneAppointment(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func inRange(t time.Time, start, end *time.Time) bool {
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && !t.Before(*end) {
		return false
	}
	return true
}

// ======================================================
// INVENTORY
// ======================================================

func (s *Store) CreateItem(_ context.Context, item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = s.nextID()
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	s.st.items[item.ID] = *item
	return nil
}

func (s *Store) GetItem(_ context.Context, businessID, itemID uint) (*models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.st.items[itemID]
	if !ok || item.BusinessID != businessID {
		return nil, inventory.ErrItemNotFound
	}
	return &item, nil
}

func (s *Store) UpdateItem(_ context.Context, item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.st.items[item.ID]; !ok {
		return inventory.ErrItemNotFound
	}
	item.UpdatedAt = time.Now()
	s.st.items[item.ID] = *item
	return nil
}

func (s *Store) DeleteItem(_ context.Context, businessID, itemID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.st.items[itemID]; ok && item.BusinessID == businessID {
		delete(s.st.items, itemID)
	}
	return nil
}

func (s *Store) ListItems(_ context.Context, businessID uint) ([]models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.InventoryItem
	for _, item := range s.st.items {
		if item.BusinessID == businessID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) ListLogsByProduct(_ context.Context, itemID uint, limit int) ([]models.InventoryLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.InventoryLog
	for i := len(s.st.logs) - 1; i >= 0; i-- {
		if s.st.logs[i].InventoryID == itemID {
			out = append(out, s.st.logs[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *Store) ListServiceResources(_ context.Context, serviceIDs []uint) ([]models.ServiceResource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[uint]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		wanted[id] = true
	}

	var out []models.ServiceResource
	for id, svc := range s.st.services {
		if wanted[id] {
			out = append(out, svc.Resources...)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetItemForUpdate(_ context.Context, itemID uint) (*models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.st.items[itemID]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store) UpdateItemQuantity(_ context.Context, item *models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.st.items[item.ID]
	if !ok {
		return inventory.ErrItemNotFound
	}
	cur.CurrentQuantity = item.CurrentQuantity
	cur.UpdatedAt = time.Now()
	s.st.items[item.ID] = cur
	return nil
}

func (s *Store) AppendLog(_ context.Context, entry *models.InventoryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.appendLogHook != nil {
		if err := s.appendLogHook(entry); err != nil {
			return err
		}
	}
	entry.ID = s.nextID()
	entry.CreatedAt = time.Now()
	s.st.logs = append(s.st.logs, *entry)
	return nil
}

func (s *Store) ListAppointmentLogs(_ context.Context, appointmentID uint) ([]models.InventoryLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := inventory.ConsumeReason(appointmentID)
	revert := inventory.RevertToken(appointmentID)

	var out []models.InventoryLog
	for _, l := range s.st.logs {
		if l.AppointmentID != nil {
			if *l.AppointmentID == appointmentID {
				out = append(out, l)
			}
			continue
		}
		// linhas legadas sem appointment_id só entram pelo motivo
		if strings.Contains(l.Reason, token) || strings.Contains(l.Reason, revert) {
			out = append(out, l)
		}
	}
	return out, nil
}

// ======================================================
// CLONES
// ======================================================

func (st state) clone() state {
	out := state{
		businesses:   make(map[uint]models.Business, len(st.businesses)),
		users:        make(map[uint]models.User, len(st.users)),
		services:     make(map[uint]models.Service, len(st.services)),
		clients:      make(map[uint]models.Client, len(st.clients)),
		hours:        make(map[uint]models.OperatingHours, len(st.hours)),
		appointments: make(map[uint]models.Appointment, len(st.appointments)),
		items:        make(map[uint]models.InventoryItem, len(st.items)),
		logs:         append([]models.InventoryLog(nil), st.logs...),
		seq:          st.seq,
	}
	for k, v := range st.businesses {
		out.businesses[k] = v
	}
	for k, v := range st.users {
		out.users[k] = v
	}
	for k, v := range st.services {
		out.services[k] = cloneService(v)
	}
	for k, v := range st.clients {
		out.clients[k] = v
	}
	for k, v := range st.hours {
		out.hours[k] = cloneHours(v)
	}
	for k, v := range st.appointments {
		out.appointments[k] = cloneAppointment(v)
	}
	for k, v := range st.items {
		out.items[k] = v
	}
	return out
}

func cloneService(svc models.Service) models.Service {
	svc.Resources = append([]models.ServiceResource(nil), svc.Resources...)
	return svc
}

func cloneAppointment(ap models.Appointment) models.Appointment {
	ap.Services = append([]models.AppointmentService(nil), ap.Services...)
	return ap
}

func cloneHours(oh models.OperatingHours) models.OperatingHours {
	oh.Weekly = append([]models.WeekdayHours(nil), oh.Weekly...)
	oh.Blocks = append([]models.AgendaBlock(nil), oh.Blocks...)
	return oh
}

// Qty é um atalho para montar quantidades decimais nos testes.
func Qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
