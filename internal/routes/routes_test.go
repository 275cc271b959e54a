package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/studio-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/studio-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/studio-scheduler/internal/models"
	"github.com/BruksfildServices01/studio-scheduler/internal/notify"
)

const jwtSecret = "routes-test"

type apiFixture struct {
	t        *testing.T
	router   *gin.Engine
	store    *memory.Store
	audit    *memory.AuditStore
	owner    models.User
	business models.Business
	shampoo  models.InventoryItem
	cut      models.Service
}

type discard struct{}

func (discard) Notify(notify.Message) {}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	auditStore := memory.NewAuditStore()

	owner, business := store.SeedBusiness(
		models.User{Name: "Ana", Email: "ana@studio.test"},
		models.Business{Name: "Studio Ana", Slug: "studio-ana"},
	)

	weekly := make([]models.WeekdayHours, 7)
	for i := range weekly {
		weekly[i] = models.WeekdayHours{Day: i}
	}
	weekly[time.Monday] = models.WeekdayHours{Day: 1, Open: true, MorningStart: "09:00", MorningEnd: "12:00"}
	require.NoError(t, store.SaveOperatingHours(context.Background(), &models.OperatingHours{
		BusinessID:   business.ID,
		SlotInterval: "00:30",
		Weekly:       weekly,
		Blocks:       []models.AgendaBlock{},
	}))

	shampoo := store.SeedItem(models.InventoryItem{
		BusinessID:      business.ID,
		Name:            "Shampoo",
		Unit:            "un",
		CurrentQuantity: decimal.NewFromInt(10),
		MinQuantity:     decimal.NewFromInt(2),
	})
	cut := store.SeedService(models.Service{
		BusinessID: business.ID,
		Name:       "Corte",
		Duration:   "00:30",
		Price:      50,
		Active:     true,
		Resources: []models.ServiceResource{
			{InventoryID: shampoo.ID, Quantity: decimal.NewFromInt(3), Unit: "un"},
		},
	})

	r := gin.New()
	Mount(r, Stores{
		Appointments: store,
		Inventory:    store,
		Tx:           store,
		Audit:        auditStore,
	}, jwtSecret, Runtime{
		Cache:    cache.Nop{},
		Notifier: discard{},
		Audit:    memory.Recorder{Store: auditStore},
		Log:      zerolog.Nop(),
		Location: time.UTC,
	})

	return &apiFixture{
		t:        t,
		router:   r,
		store:    store,
		audit:    auditStore,
		owner:    owner,
		business: business,
		shampoo:  shampoo,
		cut:      cut,
	}
}

func (f *apiFixture) token(userID uint) string {
	f.t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(f.t, err)
	return s
}

func (f *apiFixture) do(method, path string, body any, userID uint) *httptest.ResponseRecorder {
	f.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+f.token(userID))
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) publicBook(clock string) *httptest.ResponseRecorder {
	return f.do(http.MethodPost, fmt.Sprintf("/api/public/%d/appointments", f.business.ID), gin.H{
		"service_ids":    fmt.Sprint(f.cut.ID),
		"customer_name":  "Bia",
		"customer_phone": "11999990000",
		"date":           "2026-10-19",
		"time":           clock,
	}, 0)
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"error_code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestPublicAvailability(t *testing.T) {
	f := newAPI(t)

	w := f.do(http.MethodGet, fmt.Sprintf("/api/public/%d/availability?date=2026-10-19", f.business.ID), nil, 0)
	require.Equal(t, http.StatusOK, w.Code)

	var grid domain.Grid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))

	times := make([]string, 0, len(grid.Slots))
	for _, s := range grid.Slots {
		assert.True(t, s.Available)
		times = append(times, s.Time)
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, times)
}

func TestPublicBookingConflicts(t *testing.T) {
	f := newAPI(t)

	require.Equal(t, http.StatusCreated, f.publicBook("10:00").Code)

	w := f.publicBook("10:00")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_occupied", errorCode(t, w))

	assert.Equal(t, http.StatusCreated, f.publicBook("10:30").Code)

	w = f.publicBook("14:00")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "outside_working_hours", errorCode(t, w))
}

func TestSecuredRoutesRequireOwner(t *testing.T) {
	f := newAPI(t)
	path := fmt.Sprintf("/api/appointments/company/%d", f.business.ID)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, path, nil, 0).Code)

	w := f.do(http.MethodGet, path, nil, f.owner.ID+100)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not_business_owner", errorCode(t, w))

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, path, nil, f.owner.ID).Code)
}

func TestCompleteAndReverseThroughAPI(t *testing.T) {
	f := newAPI(t)

	w := f.publicBook("09:00")
	require.Equal(t, http.StatusCreated, w.Code)
	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))

	statusPath := fmt.Sprintf("/api/appointments/%d/status", ap.ID)

	require.Equal(t, http.StatusOK, f.do(http.MethodPatch, statusPath, gin.H{"status": "COMPLETED"}, f.owner.ID).Code)
	item, _ := f.store.Item(f.shampoo.ID)
	assert.True(t, item.CurrentQuantity.Equal(decimal.NewFromInt(7)))

	require.Equal(t, http.StatusOK, f.do(http.MethodPatch, statusPath, gin.H{"status": "CANCELLED"}, f.owner.ID).Code)
	item, _ = f.store.Item(f.shampoo.ID)
	assert.True(t, item.CurrentQuantity.Equal(decimal.NewFromInt(10)))

	w = f.do(http.MethodPatch, statusPath, gin.H{"status": "DONE"}, f.owner.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_status", errorCode(t, w))

	revenue := f.do(http.MethodGet, fmt.Sprintf("/api/appointments/company/%d/revenue", f.business.ID), nil, f.owner.ID)
	require.Equal(t, http.StatusOK, revenue.Code)
	assert.JSONEq(t, `{"total":0}`, revenue.Body.String())

	logs := f.do(http.MethodGet, fmt.Sprintf("/api/company/%d/inventory/%d/logs", f.business.ID, f.shampoo.ID), nil, f.owner.ID)
	require.Equal(t, http.StatusOK, logs.Code)
	var page struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(logs.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)

	require.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, fmt.Sprintf("/api/appointments/%d", ap.ID), nil, f.owner.ID).Code)
	assert.Empty(t, f.store.Appointments())
}

func TestSameDayRangeReturnsGrid(t *testing.T) {
	f := newAPI(t)
	require.Equal(t, http.StatusCreated, f.publicBook("11:00").Code)

	w := f.do(http.MethodGet,
		fmt.Sprintf("/api/appointments/company/%d?startDate=2026-10-19&endDate=2026-10-19", f.business.ID),
		nil, f.owner.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var grid domain.Grid
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	require.Len(t, grid.Slots, 6)
	assert.False(t, grid.Slots[4].Available)
	require.NotNil(t, grid.Slots[4].Reason)
	assert.Equal(t, domain.ReasonOccupied, *grid.Slots[4].Reason)
}

func TestOperatingHoursValidation(t *testing.T) {
	f := newAPI(t)
	path := fmt.Sprintf("/api/company/%d/operating-hours", f.business.ID)

	w := f.do(http.MethodPut, path, gin.H{
		"slot_interval": "00:30",
		"weekly":        []gin.H{{"day": 1, "open": true, "morning_start": "09:00", "morning_end": "12:00"}},
	}, f.owner.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_operating_hours", errorCode(t, w))

	w = f.do(http.MethodGet, path, nil, f.owner.ID)
	require.Equal(t, http.StatusOK, w.Code)
	var oh models.OperatingHours
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &oh))
	assert.Len(t, oh.Weekly, 7)
}

func TestInventoryMovementAndAudit(t *testing.T) {
	f := newAPI(t)
	base := fmt.Sprintf("/api/company/%d/inventory", f.business.ID)

	w := f.do(http.MethodPost, fmt.Sprintf("%s/%d/movements", base, f.shampoo.ID), gin.H{
		"type":     "EXIT",
		"quantity": "20",
	}, f.owner.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "insufficient_stock", errorCode(t, w))

	w = f.do(http.MethodPost, fmt.Sprintf("%s/%d/movements", base, f.shampoo.ID), gin.H{
		"type":     "ENTRY",
		"quantity": "5",
		"reason":   "Compra",
	}, f.owner.ID)
	require.Equal(t, http.StatusOK, w.Code)
	item, _ := f.store.Item(f.shampoo.ID)
	assert.True(t, item.CurrentQuantity.Equal(decimal.NewFromInt(15)))

	w = f.do(http.MethodGet, fmt.Sprintf("/api/company/%d/audit-logs?action=inventory_movement", f.business.ID), nil, f.owner.ID)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(1), page.Total)
}
