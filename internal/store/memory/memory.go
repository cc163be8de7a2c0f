package memory

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/store"
	"salonpos/backend/internal/xid"
)

type Store struct {
	mu              sync.RWMutex
	clients         map[string]domain.Client
	stylists        map[string]domain.Stylist
	services        map[string]domain.Service
	inventoryBySKU  map[string]domain.InventoryItem
	salesByID       map[string]*domain.Sale
	auditLogs       []domain.AuditLog
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials are read from SEED_MANAGER_PASSWORD and SEED_FRONTDESK_PASSWORD
// environment variables. If unset, hardcoded dev defaults are used with a
// warning printed to stdout. These credentials are never used in production
// (the backend uses PostgreSQL when SALON_DATABASE_URL is set).
func seedUsers() map[string]domain.UserAccount {
	managerPwd := envOr("SEED_MANAGER_PASSWORD", "manager123")
	frontdeskPwd := envOr("SEED_FRONTDESK_PASSWORD", "frontdesk123")
	if os.Getenv("SEED_MANAGER_PASSWORD") == "" || os.Getenv("SEED_FRONTDESK_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_MANAGER_PASSWORD and SEED_FRONTDESK_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"manager", managerPwd, domain.RoleManager},
		{"frontdesk", frontdeskPwd, domain.RoleFrontDesk},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func NewSeeded() *Store {
	now := time.Now().UTC()

	clients := []domain.Client{
		{ID: "cli-seed-01", FirstName: "Dana", LastName: "Whitfield", Phone: "555-0101", Email: "dana@example.com", CreatedAt: now, UpdatedAt: now},
		{ID: "cli-seed-02", FirstName: "Marcus", LastName: "Lee", Phone: "555-0102", CreatedAt: now, UpdatedAt: now},
		{ID: "cli-seed-03", FirstName: "Priya", LastName: "Nair", Phone: "555-0103", Notes: "prefers afternoon visits", CreatedAt: now, UpdatedAt: now},
	}

	stylists := []domain.Stylist{
		{ID: "sty-seed-01", Name: "Alexis Romero", Phone: "555-0201", CommissionRate: 0.40, Active: true, CreatedAt: now},
		{ID: "sty-seed-02", Name: "Jordan Blake", Phone: "555-0202", CommissionRate: 0.35, Active: true, CreatedAt: now},
	}

	services := []domain.Service{
		{ID: "svc-seed-01", Name: "Haircut", PriceCents: 3000, Luxury: false, Active: true, CreatedAt: now},
		{ID: "svc-seed-02", Name: "Blowout", PriceCents: 4500, Luxury: false, Active: true, CreatedAt: now},
		{ID: "svc-seed-03", Name: "Full Color", PriceCents: 9500, Luxury: false, Active: true, CreatedAt: now},
		{ID: "svc-seed-04", Name: "Keratin Treatment", PriceCents: 8500, Luxury: true, Active: true, CreatedAt: now},
		{ID: "svc-seed-05", Name: "Balayage", PriceCents: 16000, Luxury: true, Active: true, CreatedAt: now},
	}

	inventory := []domain.InventoryItem{
		{ID: "inv-seed-01", SKU: "SKU-SHAMPOO-01", Name: "Repair Shampoo 250ml", PriceCents: 2500, Quantity: 30, ReorderLevel: 6, CreatedAt: now, UpdatedAt: now},
		{ID: "inv-seed-02", SKU: "SKU-CONDITIONER-01", Name: "Hydrating Conditioner 250ml", PriceCents: 2200, Quantity: 24, ReorderLevel: 6, CreatedAt: now, UpdatedAt: now},
		{ID: "inv-seed-03", SKU: "SKU-SERUM-01", Name: "Argan Serum 50ml", PriceCents: 3800, Quantity: 12, ReorderLevel: 4, CreatedAt: now, UpdatedAt: now},
		{ID: "inv-seed-04", SKU: "SKU-SPRAY-01", Name: "Finishing Spray 200ml", PriceCents: 1800, Quantity: 18, ReorderLevel: 5, CreatedAt: now, UpdatedAt: now},
		{ID: "inv-seed-05", SKU: "SKU-DEVELOPER-01", Name: "Color Developer 1L", PriceCents: 2900, Quantity: 8, ReorderLevel: 4, BackBar: true, CreatedAt: now, UpdatedAt: now},
	}

	clientMap := make(map[string]domain.Client, len(clients))
	for _, c := range clients {
		clientMap[c.ID] = c
	}
	stylistMap := make(map[string]domain.Stylist, len(stylists))
	for _, st := range stylists {
		stylistMap[st.ID] = st
	}
	serviceMap := make(map[string]domain.Service, len(services))
	for _, svc := range services {
		serviceMap[svc.ID] = svc
	}
	inventoryMap := make(map[string]domain.InventoryItem, len(inventory))
	for _, item := range inventory {
		inventoryMap[item.SKU] = item
	}

	return &Store{
		clients:         clientMap,
		stylists:        stylistMap,
		services:        serviceMap,
		inventoryBySKU:  inventoryMap,
		salesByID:       make(map[string]*domain.Sale),
		auditLogs:       make([]domain.AuditLog, 0, 128),
		usersByUsername: seedUsers(),
	}
}

func (s *Store) ListClients(_ context.Context) ([]domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]domain.Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}

	slices.SortFunc(clients, func(a, b domain.Client) int {
		if a.LastName == b.LastName {
			return cmpString(a.FirstName, b.FirstName)
		}
		return cmpString(a.LastName, b.LastName)
	})

	return clients, nil
}

func (s *Store) CreateClient(_ context.Context, client domain.Client) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client.FirstName == "" || client.LastName == "" || client.Phone == "" {
		return nil, store.ErrInvalidSale
	}
	if client.ID == "" {
		client.ID = xid.New("cli")
	}
	if _, exists := s.clients[client.ID]; exists {
		return nil, store.ErrInvalidSale
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC()
	}
	client.UpdatedAt = client.CreatedAt

	s.clients[client.ID] = client
	created := client
	return &created, nil
}

func (s *Store) GetClientByID(_ context.Context, id string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, exists := s.clients[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyClient := client
	return &copyClient, nil
}

func (s *Store) UpdateClient(_ context.Context, client domain.Client) (*domain.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if client.ID == "" || client.FirstName == "" || client.LastName == "" || client.Phone == "" {
		return nil, store.ErrInvalidSale
	}
	if _, exists := s.clients[client.ID]; !exists {
		return nil, store.ErrNotFound
	}

	client.UpdatedAt = time.Now().UTC()
	s.clients[client.ID] = client
	updated := client
	return &updated, nil
}

func (s *Store) ListStylists(_ context.Context) ([]domain.Stylist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stylists := make([]domain.Stylist, 0, len(s.stylists))
	for _, st := range s.stylists {
		stylists = append(stylists, st)
	}

	slices.SortFunc(stylists, func(a, b domain.Stylist) int {
		return cmpString(a.Name, b.Name)
	})

	return stylists, nil
}

func (s *Store) CreateStylist(_ context.Context, stylist domain.Stylist) (*domain.Stylist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stylist.Name == "" {
		return nil, store.ErrInvalidSale
	}
	if stylist.CommissionRate < 0 || stylist.CommissionRate > 1 {
		return nil, store.ErrInvalidSale
	}
	if stylist.ID == "" {
		stylist.ID = xid.New("sty")
	}
	if stylist.CreatedAt.IsZero() {
		stylist.CreatedAt = time.Now().UTC()
	}
	stylist.Active = true

	s.stylists[stylist.ID] = stylist
	created := stylist
	return &created, nil
}

func (s *Store) GetStylistByID(_ context.Context, id string) (*domain.Stylist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stylist, exists := s.stylists[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyStylist := stylist
	return &copyStylist, nil
}

func (s *Store) UpdateStylist(_ context.Context, stylist domain.Stylist) (*domain.Stylist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stylist.ID == "" || stylist.Name == "" {
		return nil, store.ErrInvalidSale
	}
	if stylist.CommissionRate < 0 || stylist.CommissionRate > 1 {
		return nil, store.ErrInvalidSale
	}
	if _, exists := s.stylists[stylist.ID]; !exists {
		return nil, store.ErrNotFound
	}

	s.stylists[stylist.ID] = stylist
	updated := stylist
	return &updated, nil
}

func (s *Store) ListServices(_ context.Context) ([]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services := make([]domain.Service, 0, len(s.services))
	for _, svc := range s.services {
		if !svc.Active {
			continue
		}
		services = append(services, svc)
	}

	slices.SortFunc(services, func(a, b domain.Service) int {
		return cmpString(a.Name, b.Name)
	})

	return services, nil
}

func (s *Store) CreateService(_ context.Context, svc domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.Name == "" || svc.PriceCents < 1 {
		return nil, store.ErrInvalidSale
	}
	if svc.ID == "" {
		svc.ID = xid.New("svc")
	}
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = time.Now().UTC()
	}
	svc.Active = true

	s.services[svc.ID] = svc
	created := svc
	return &created, nil
}

func (s *Store) GetServiceByID(_ context.Context, id string) (*domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, exists := s.services[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copySvc := svc
	return &copySvc, nil
}

func (s *Store) UpdateService(_ context.Context, svc domain.Service) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == "" || svc.Name == "" || svc.PriceCents < 1 {
		return nil, store.ErrInvalidSale
	}
	if _, exists := s.services[svc.ID]; !exists {
		return nil, store.ErrNotFound
	}

	s.services[svc.ID] = svc
	updated := svc
	return &updated, nil
}

func (s *Store) GetServicesByIDs(_ context.Context, ids []string) (map[string]domain.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]domain.Service, len(ids))
	for _, id := range ids {
		if svc, ok := s.services[id]; ok && svc.Active {
			result[id] = svc
		}
	}
	return result, nil
}

func (s *Store) ListInventoryItems(_ context.Context) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.InventoryItem, 0, len(s.inventoryBySKU))
	for _, item := range s.inventoryBySKU {
		items = append(items, item)
	}

	slices.SortFunc(items, func(a, b domain.InventoryItem) int {
		return cmpString(a.Name, b.Name)
	})

	return items, nil
}

func (s *Store) CreateInventoryItem(_ context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.SKU = strings.ToUpper(strings.TrimSpace(item.SKU))
	if item.SKU == "" || item.Name == "" || item.PriceCents < 1 || item.Quantity < 0 {
		return nil, store.ErrInvalidSale
	}
	if _, exists := s.inventoryBySKU[item.SKU]; exists {
		return nil, store.ErrInvalidSale
	}
	if item.ID == "" {
		item.ID = xid.New("inv")
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	item.UpdatedAt = item.CreatedAt

	s.inventoryBySKU[item.SKU] = item
	created := item
	return &created, nil
}

func (s *Store) GetInventoryItemBySKU(_ context.Context, sku string) (*domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.inventoryBySKU[strings.ToUpper(strings.TrimSpace(sku))]
	if !exists {
		return nil, store.ErrNotFound
	}
	copyItem := item
	return &copyItem, nil
}

func (s *Store) GetInventoryItemByID(_ context.Context, id string) (*domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.inventoryBySKU {
		if item.ID == id {
			copyItem := item
			return &copyItem, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetInventoryItemsBySKUs(_ context.Context, skus []string) (map[string]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]domain.InventoryItem, len(skus))
	for _, sku := range skus {
		if item, ok := s.inventoryBySKU[sku]; ok {
			result[sku] = item
		}
	}
	return result, nil
}

func (s *Store) AdjustInventory(_ context.Context, sku string, delta int, at time.Time) (*domain.InventoryItem, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" || delta == 0 {
		return nil, store.ErrInvalidSale
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.inventoryBySKU[sku]
	if !exists {
		return nil, store.ErrNotFound
	}
	next := item.Quantity + delta
	if next < 0 {
		return nil, fmt.Errorf("%w: sku %s has %d, adjustment needs %d", store.ErrInsufficientStock, sku, item.Quantity, -delta)
	}

	item.Quantity = next
	item.UpdatedAt = at
	s.inventoryBySKU[sku] = item
	updated := item
	return &updated, nil
}

func (s *Store) ListLowStockItems(_ context.Context) ([]domain.LowStockItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.LowStockItem, 0, 16)
	for _, item := range s.inventoryBySKU {
		if item.Quantity > item.ReorderLevel {
			continue
		}
		suggested := item.ReorderLevel*2 - item.Quantity
		if suggested < 1 {
			suggested = 1
		}
		items = append(items, domain.LowStockItem{
			SKU:          item.SKU,
			Name:         item.Name,
			Quantity:     item.Quantity,
			ReorderLevel: item.ReorderLevel,
			SuggestedQty: suggested,
		})
	}

	slices.SortFunc(items, func(a, b domain.LowStockItem) int {
		if a.Quantity == b.Quantity {
			return cmpString(a.Name, b.Name)
		}
		if a.Quantity < b.Quantity {
			return -1
		}
		return 1
	})

	return items, nil
}

func (s *Store) CompleteSale(_ context.Context, sale domain.Sale) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(sale.Items) == 0 {
		return nil, store.ErrInvalidSale
	}
	// Empty client id means a walk-in sale; a stylist is always required.
	if sale.StylistID == "" {
		return nil, store.ErrInvalidSale
	}

	needed := make(map[string]int)
	for _, item := range sale.Items {
		if item.Qty < 1 {
			return nil, store.ErrInvalidSale
		}
		if item.Category == domain.LineCategoryProduct {
			needed[item.SKU] += item.Qty
		}
	}

	for sku, qty := range needed {
		item, exists := s.inventoryBySKU[sku]
		if !exists {
			return nil, fmt.Errorf("%w: sku %s", store.ErrNotFound, sku)
		}
		if item.Quantity < qty {
			return nil, fmt.Errorf("%w: sku %s has %d, sale needs %d", store.ErrInsufficientStock, sku, item.Quantity, qty)
		}
	}

	if sale.ID == "" {
		sale.ID = xid.New("sale")
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}
	if sale.Status == "" {
		sale.Status = domain.SaleStatusCompleted
	}

	for sku, qty := range needed {
		item := s.inventoryBySKU[sku]
		item.Quantity -= qty
		item.UpdatedAt = sale.CreatedAt
		s.inventoryBySKU[sku] = item
	}

	saleCopy := cloneSale(&sale)
	s.salesByID[sale.ID] = saleCopy

	return cloneSale(saleCopy), nil
}

func (s *Store) GetSaleByID(_ context.Context, id string) (*domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := s.salesByID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneSale(sale), nil
}

func (s *Store) VoidSale(_ context.Context, id string, reason string, at time.Time) (*domain.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sale, ok := s.salesByID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if sale.Status == domain.SaleStatusVoided {
		return nil, store.ErrAlreadyVoided
	}
	if sale.Status != domain.SaleStatusCompleted {
		return nil, store.ErrInvalidSale
	}

	for _, item := range sale.Items {
		if item.Category != domain.LineCategoryProduct || item.SKU == "" {
			continue
		}
		inv, exists := s.inventoryBySKU[item.SKU]
		if !exists {
			continue
		}
		inv.Quantity += item.Qty
		inv.UpdatedAt = at
		s.inventoryBySKU[item.SKU] = inv
	}

	sale.Status = domain.SaleStatusVoided
	sale.VoidReason = reason
	sale.VoidedAt = &at

	return cloneSale(sale), nil
}

func (s *Store) ListSalesByClient(_ context.Context, clientID string, from time.Time, to time.Time) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Sale, 0, 16)
	for _, sale := range s.salesByID {
		if sale.ClientID != clientID {
			continue
		}
		if sale.CreatedAt.Before(from) || !sale.CreatedAt.Before(to) {
			continue
		}
		result = append(result, *cloneSale(sale))
	}

	slices.SortFunc(result, func(a, b domain.Sale) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})

	return result, nil
}

func (s *Store) GetStylistSalesReport(_ context.Context, stylistID string, from time.Time, to time.Time) (domain.StylistSalesReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := domain.StylistSalesReport{
		StylistID: stylistID,
		From:      from.UTC().Format(time.RFC3339),
		To:        to.UTC().Format(time.RFC3339),
	}

	stylist, exists := s.stylists[stylistID]
	if !exists {
		return report, store.ErrNotFound
	}
	report.StylistName = stylist.Name

	breakdown := map[string]*domain.ServiceBreakdownEntry{}
	sales := make([]*domain.Sale, 0, 32)
	for _, sale := range s.salesByID {
		if sale.StylistID != stylistID {
			continue
		}
		if sale.CreatedAt.Before(from) || !sale.CreatedAt.Before(to) {
			continue
		}
		if sale.Status == domain.SaleStatusVoided {
			continue
		}
		sales = append(sales, sale)
	}

	slices.SortFunc(sales, func(a, b *domain.Sale) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(a.ID, b.ID)
		}
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		return 1
	})

	for _, sale := range sales {
		report.Rows = append(report.Rows, domain.StylistSaleRow{
			SaleID:        sale.ID,
			ClientID:      sale.ClientID,
			PaymentMethod: sale.PaymentMethod,
			SubtotalCents: sale.SubtotalCents,
			TipCents:      sale.TipCents,
			TotalCents:    sale.TotalCents,
			CreatedAt:     sale.CreatedAt.UTC().Format(time.RFC3339),
		})
		report.Sales++
		report.RevenueCents += sale.TotalCents
		report.TipCents += sale.TipCents

		for _, item := range sale.Items {
			if item.Category != domain.LineCategoryService && item.Category != domain.LineCategoryLuxuryService {
				continue
			}
			key := item.ServiceID + "::" + item.Name
			entry := breakdown[key]
			if entry == nil {
				entry = &domain.ServiceBreakdownEntry{ServiceID: item.ServiceID, Name: item.Name}
				breakdown[key] = entry
			}
			entry.Count += int64(item.Qty)
			entry.RevenueCents += int64(item.Qty) * item.UnitPriceCents
		}
	}

	for _, entry := range breakdown {
		report.ServiceBreakdown = append(report.ServiceBreakdown, *entry)
	}
	slices.SortFunc(report.ServiceBreakdown, func(a, b domain.ServiceBreakdownEntry) int {
		return cmpString(a.Name, b.Name)
	})

	return report, nil
}

func (s *Store) GetTaxReport(_ context.Context, from time.Time, to time.Time) (domain.TaxReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := domain.TaxReport{
		From: from.UTC().Format(time.RFC3339),
		To:   to.UTC().Format(time.RFC3339),
	}

	for _, sale := range s.salesByID {
		if sale.CreatedAt.Before(from) || !sale.CreatedAt.Before(to) {
			continue
		}
		if sale.Status == domain.SaleStatusVoided {
			continue
		}
		report.Sales++
		report.TaxCollectedCents += sale.TaxCents
		report.TipTotalCents += sale.TipCents
		for _, item := range sale.Items {
			line := int64(item.Qty) * item.UnitPriceCents
			switch item.Category {
			case domain.LineCategoryProduct:
				report.ProductTaxableCents += line
			case domain.LineCategoryLuxuryService:
				report.LuxuryTaxableCents += line
			}
		}
	}

	return report, nil
}

func (s *Store) GetVoidedSalesReport(_ context.Context, from time.Time, to time.Time) (domain.VoidedSalesReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := domain.VoidedSalesReport{
		From: from.UTC().Format(time.RFC3339),
		To:   to.UTC().Format(time.RFC3339),
	}

	for _, sale := range s.salesByID {
		if sale.Status != domain.SaleStatusVoided || sale.VoidedAt == nil {
			continue
		}
		if sale.VoidedAt.Before(from) || !sale.VoidedAt.Before(to) {
			continue
		}
		report.Sales = append(report.Sales, *cloneSale(sale))
		report.Count++
		report.VoidedTotalCents += sale.TotalCents
	}

	slices.SortFunc(report.Sales, func(a, b domain.Sale) int {
		if a.VoidedAt.Equal(*b.VoidedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.VoidedAt.After(*b.VoidedAt) {
			return -1
		}
		return 1
	})

	return report, nil
}

func (s *Store) CreateAuditLog(_ context.Context, entry domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.auditLogs = append(s.auditLogs, entry)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.AuditLog, 0, 64)
	for _, entry := range s.auditLogs {
		if entry.CreatedAt.Before(from) || !entry.CreatedAt.Before(to) {
			continue
		}
		result = append(result, entry)
	}

	slices.SortFunc(result, func(a, b domain.AuditLog) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return cmpString(b.ID, a.ID)
		}
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.ToLower(strings.TrimSpace(user.Username))
	if username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidSale
	}
	if _, exists := s.usersByUsername[username]; exists {
		return store.ErrInvalidSale
	}
	user.Username = username
	if user.Role == "" {
		user.Role = domain.RoleFrontDesk
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Active = true
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, user := range s.usersByUsername {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return cmpString(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidSale
	}
	user, exists := s.usersByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}

func cmpString(a string, b string) int {
	if a == b {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func cloneSale(src *domain.Sale) *domain.Sale {
	if src == nil {
		return nil
	}
	dup := *src
	dupItems := make([]domain.SaleItem, len(src.Items))
	copy(dupItems, src.Items)
	dup.Items = dupItems
	if src.VoidedAt != nil {
		at := *src.VoidedAt
		dup.VoidedAt = &at
	}
	return &dup
}
