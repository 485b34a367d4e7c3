// AngelaMos | 2026
// service_test.go

package property

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/turisgal/backend/internal/core"
)

type memoryUser struct {
	email string
	name  string
}

type memoryRepository struct {
	mu         sync.Mutex
	properties map[string]*Property
	owners     map[string]OwnerSummary
	users      map[string]memoryUser
	rooms      map[string][]Room
	bookings   map[string]int
	statsCalls int
	seq        int
}

func newMemoryRepository(owners ...OwnerSummary) *memoryRepository {
	m := &memoryRepository{
		properties: map[string]*Property{},
		owners:     map[string]OwnerSummary{},
		users:      map[string]memoryUser{},
		rooms:      map[string][]Room{},
		bookings:   map[string]int{},
	}
	for _, o := range owners {
		m.owners[o.ID] = o
	}
	return m
}

func (m *memoryRepository) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.owners[id]
	return ok, nil
}

func (m *memoryRepository) ForUser(_ context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return "", fmt.Errorf("owner for user: %w", core.ErrNotFound)
	}
	for id, o := range m.owners {
		if o.Email == u.email {
			return id, nil
		}
	}
	id := "owner-of-" + userID
	m.owners[id] = OwnerSummary{ID: id, ContactName: u.name, Email: u.email}
	return id, nil
}

func (m *memoryRepository) Create(_ context.Context, p *Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owners[p.OwnerID]; !ok {
		return fmt.Errorf("create property: %w", core.ErrInvalidInput)
	}
	m.seq++
	p.CreatedAt = time.Date(2026, 5, m.seq, 12, 0, 0, 0, time.UTC)
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.properties[p.ID] = &cp
	return nil
}

func (m *memoryRepository) GetByID(_ context.Context, id string) (*Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memoryRepository) item(p *Property) Item {
	return Item{
		Property: *p,
		Owner:    m.owners[p.OwnerID],
		Counts:   Counts{Rooms: len(m.rooms[p.ID]), Bookings: m.bookings[p.ID]},
		RoomList: m.rooms[p.ID],
	}
}

func (m *memoryRepository) GetItem(_ context.Context, id string) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.properties[id]
	if !ok {
		return nil, fmt.Errorf("get property: %w", core.ErrNotFound)
	}
	item := m.item(p)
	return &item, nil
}

func (m *memoryRepository) GetDetail(ctx context.Context, id string) (*Detail, error) {
	item, err := m.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Detail{Item: *item}, nil
}

func (m *memoryRepository) Update(_ context.Context, p *Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.properties[p.ID]; !ok {
		return fmt.Errorf("update property: %w", core.ErrNotFound)
	}
	cp := *p
	m.properties[p.ID] = &cp
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.properties[id]; !ok {
		return fmt.Errorf("delete property: %w", core.ErrNotFound)
	}
	if m.bookings[id] > 0 {
		return fmt.Errorf("delete property: %w", core.ErrConflict)
	}
	delete(m.properties, id)
	return nil
}

func (m *memoryRepository) CountBookings(_ context.Context, id string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id], nil
}

func (m *memoryRepository) matching(f Filter) []*Property {
	term := strings.ToLower(f.Search)
	out := []*Property{}
	for _, p := range m.properties {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(core.Deref(p.Description)), term) &&
			!strings.Contains(strings.ToLower(p.PropertyType), term) {
			continue
		}
		if f.PropertyType != "" && p.PropertyType != f.PropertyType {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		if f.OwnerID != "" && p.OwnerID != f.OwnerID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memoryRepository) List(_ context.Context, params ListParams) ([]Item, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	params.Normalize()
	all := m.matching(params.Filter)
	start := min(params.Offset(), len(all))
	end := min(start+params.Limit, len(all))

	items := []Item{}
	for _, p := range all[start:end] {
		items = append(items, m.item(p))
	}
	return items, len(all), nil
}

func (m *memoryRepository) Export(_ context.Context, filter Filter) ([]ExportRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := []ExportRow{}
	for _, p := range m.matching(filter) {
		o := m.owners[p.OwnerID]
		rows = append(rows, ExportRow{
			Property:         *p,
			OwnerContactName: o.ContactName,
			OwnerEmail:       o.Email,
			OwnerCompanyName: o.CompanyName,
			Counts:           Counts{Rooms: len(m.rooms[p.ID]), Bookings: m.bookings[p.ID]},
		})
	}
	return rows, nil
}

func (m *memoryRepository) Stats(_ context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statsCalls++
	stats := &Stats{PropertiesByType: []TypeCount{}, TopProperties: []TopProperty{}}
	for _, p := range m.properties {
		stats.TotalProperties++
		if p.IsActive {
			stats.ActiveProperties++
		} else {
			stats.InactiveProperties++
		}
	}
	return stats, nil
}

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

func newTestService(t *testing.T, cache StatsCache) (*Service, *memoryRepository) {
	t.Helper()
	company := "Galicia Turismo SL"
	repo := newMemoryRepository(
		OwnerSummary{ID: ownerA, ContactName: "Miguel Fernández", Email: "miguel@x.es", CompanyName: &company},
		OwnerSummary{ID: ownerB, ContactName: "Carmen González", Email: "carmen@x.es"},
	)
	repo.users[admin.UserID] = memoryUser{email: "admin@turisgal.com", name: "Admin TurisGal"}
	repo.users[manager.UserID] = memoryUser{email: "carmen@x.es", name: "Carmen González"}
	return NewService(repo, repo, cache), repo
}

func newRequest(name string) CreatePropertyRequest {
	return CreatePropertyRequest{
		Name:         name,
		PropertyType: "Hotel",
		Address:      &Address{City: "Vilagarcía de Arousa", Country: "España"},
		MaxGuests:    4,
	}
}

var (
	admin   = core.Identity{UserID: "admin-1", Role: core.RoleAdmin}
	manager = core.Identity{UserID: "user-manager", Role: core.RoleOwner}
	asA     = core.Identity{UserID: ownerA, Role: core.RoleOwner}
	asB     = core.Identity{UserID: ownerB, Role: core.RoleOwner}
)

func TestCreateAssignsOwnerAndQRCode(t *testing.T) {
	svc, _ := newTestService(t, nil)
	svc.now = func() time.Time { return time.UnixMilli(1717171717171) }
	ctx := context.Background()

	item, err := svc.Create(ctx, asA, newRequest("Hotel Ría de Arousa"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.OwnerID != ownerA || item.Owner.ContactName != "Miguel Fernández" {
		t.Fatalf("expected caller as owner, got %+v", item.Owner)
	}
	if item.TotalRooms != 1 || !item.IsActive {
		t.Fatalf("expected defaults totalRooms=1 active, got %d %v", item.TotalRooms, item.IsActive)
	}
	if !regexp.MustCompile(`^property_1717171717171_[0-9a-z]{9}$`).MatchString(item.QRCodeData) {
		t.Fatalf("unexpected qr code %q", item.QRCodeData)
	}

	spoofed := newRequest("Casa Rural")
	spoofed.OwnerID = ownerB
	item, err = svc.Create(ctx, asA, spoofed)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.OwnerID != ownerA {
		t.Fatalf("non-admin must not choose the owner, got %s", item.OwnerID)
	}

	assigned := newRequest("Pazo")
	assigned.OwnerID = ownerB
	item, err = svc.Create(ctx, admin, assigned)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.OwnerID != ownerB {
		t.Fatalf("admin should assign owner, got %s", item.OwnerID)
	}
}

func TestCreateResolvesOwnerForUserAccounts(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, admin, newRequest("Hotel do Admin"))
	if err != nil {
		t.Fatalf("admin create without ownerId: %v", err)
	}
	if first.Owner.Email != "admin@turisgal.com" || first.TotalRooms != 1 || first.QRCodeData == "" {
		t.Fatalf("expected owner provisioned from the admin account, got %+v", *first)
	}

	second, err := svc.Create(ctx, admin, newRequest("Outro Hotel"))
	if err != nil {
		t.Fatalf("second admin create: %v", err)
	}
	if second.OwnerID != first.OwnerID || len(repo.owners) != 3 {
		t.Fatalf("expected the provisioned owner to be reused, got %s and %d owners", second.OwnerID, len(repo.owners))
	}

	byEmail, err := svc.Create(ctx, manager, newRequest("Casa da Xestora"))
	if err != nil {
		t.Fatalf("users-table owner create: %v", err)
	}
	if byEmail.OwnerID != ownerB {
		t.Fatalf("expected owner matched by email, got %s", byEmail.OwnerID)
	}
}

func TestCreateRejectsUnknownOwner(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	explicit := newRequest("Sin dueño")
	explicit.OwnerID = "missing-owner"

	cases := []struct {
		name     string
		identity core.Identity
		req      CreatePropertyRequest
	}{
		{"explicit owner id", admin, explicit},
		{"caller without account", core.Identity{UserID: "ghost", Role: core.RoleOwner}, newRequest("Fantasma")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.identity, tc.req)
			appErr, ok := core.AsAppError(err)
			if !ok || appErr.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()
	item, err := svc.Create(ctx, asA, newRequest("Hotel"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Hotel Renovado"
	if _, err := svc.Update(ctx, asB, item.ID, UpdatePropertyRequest{Name: &name}); !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected forbidden for another owner, got %v", err)
	}
	if _, err := svc.Update(ctx, asA, "missing", UpdatePropertyRequest{}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	updated, err := svc.Update(ctx, admin, item.ID, UpdatePropertyRequest{Name: &name})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("expected renamed property, got %q", updated.Name)
	}
}

func TestApplyUpdateSemantics(t *testing.T) {
	desc := "Vistas al mar"
	rules := "No fumar"
	checkIn := time.Date(1970, 1, 1, 15, 0, 0, 0, time.UTC)
	p := &Property{
		Name:        "Hotel",
		Description: &desc,
		HouseRules:  &rules,
		CheckInTime: &checkIn,
		Amenities:   &StringList{"WiFi"},
		TotalRooms:  20,
		IsActive:    true,
	}

	empty := ""
	zero := 0
	inactive := false
	applyUpdate(p, UpdatePropertyRequest{
		Name:        &empty,
		TotalRooms:  &zero,
		Description: core.Null[string](),
		CheckInTime: core.Some(Timestamp{}),
		Amenities:   core.Some(StringList{"WiFi", "Spa"}),
		IsActive:    &inactive,
	})

	if p.Name != "Hotel" || p.TotalRooms != 20 {
		t.Fatalf("empty name and zero rooms must be ignored: %+v", p)
	}
	if p.Description != nil {
		t.Fatalf("null description must clear it")
	}
	if p.HouseRules == nil || *p.HouseRules != rules {
		t.Fatalf("absent house rules must be kept")
	}
	if p.CheckInTime != nil {
		t.Fatalf("empty check-in time must clear it")
	}
	if p.Amenities == nil || len(*p.Amenities) != 2 {
		t.Fatalf("expected amenities replaced, got %v", p.Amenities)
	}
	if p.IsActive {
		t.Fatalf("expected property deactivated")
	}
}

func TestDeleteGuards(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()
	item, err := svc.Create(ctx, asA, newRequest("Hotel"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.bookings[item.ID] = 1

	cases := []struct {
		name     string
		identity core.Identity
		id       string
		want     error
	}{
		{"missing", admin, "missing", core.ErrNotFound},
		{"other owner", asB, item.ID, core.ErrForbidden},
		{"has bookings", asA, item.ID, core.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Delete(ctx, tc.identity, tc.id); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	repo.bookings[item.ID] = 0
	if err := svc.Delete(ctx, asA, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func newTestCache(t *testing.T) (*core.JSONCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return core.NewJSONCache(client, "turisgal:stats:", time.Minute), mr
}

func TestStatsCachedUntilMutation(t *testing.T) {
	cache, mr := newTestCache(t)
	svc, repo := newTestService(t, cache)
	ctx := context.Background()

	if _, err := svc.Create(ctx, asA, newRequest("Hotel")); err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if first.TotalProperties != 1 {
		t.Fatalf("expected 1 property, got %d", first.TotalProperties)
	}
	if !mr.Exists("turisgal:stats:overview") {
		t.Fatalf("expected stats to be cached")
	}

	if _, err := svc.Stats(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if repo.statsCalls != 1 {
		t.Fatalf("expected cached read, repository called %d times", repo.statsCalls)
	}

	if _, err := svc.Create(ctx, asA, newRequest("Casa")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if mr.Exists("turisgal:stats:overview") {
		t.Fatalf("expected cache invalidated on create")
	}

	second, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if second.TotalProperties != 2 || repo.statsCalls != 2 {
		t.Fatalf("expected fresh stats, got %d after %d calls", second.TotalProperties, repo.statsCalls)
	}
}

func TestStatsSurvivesCacheOutage(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	svc, _ := newTestService(t, core.NewJSONCache(client, "turisgal:stats:", time.Minute))

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats must not fail when redis is down: %v", err)
	}
	if stats.TotalProperties != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
