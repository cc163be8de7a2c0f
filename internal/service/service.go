package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"salonpos/backend/internal/cache"
	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/pricing"
	"salonpos/backend/internal/store"
	"salonpos/backend/internal/xid"
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Service struct {
	repo      store.Repository
	reports   cache.ReportCache
	reportTTL time.Duration
	taxRate   float64
}

func New(repo store.Repository, reports cache.ReportCache, reportTTL time.Duration, taxRate float64) *Service {
	if reports == nil {
		reports = cache.NoopReportCache{}
	}
	if reportTTL <= 0 {
		reportTTL = 30 * time.Second
	}
	if taxRate < 0 || taxRate > 1 {
		taxRate = 0
	}

	return &Service{
		repo:      repo,
		reports:   reports,
		reportTTL: reportTTL,
		taxRate:   taxRate,
	}
}

func (s *Service) TaxRate() float64 {
	return s.taxRate
}

func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.repo.ListClients(ctx)
}

func (s *Service) CreateClient(ctx context.Context, req domain.ClientCreateRequest) (domain.Client, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.FirstName == "" || req.LastName == "" || req.Phone == "" {
		return domain.Client{}, store.ErrInvalidSale
	}

	client := domain.Client{
		ID:        xid.New("cli"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     strings.TrimSpace(req.Email),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		return domain.Client{}, err
	}

	s.logAudit(ctx, "client_create", "client", created.ID, created.FirstName+" "+created.LastName)

	return *created, nil
}

func (s *Service) GetClient(ctx context.Context, id string) (domain.Client, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Client{}, store.ErrInvalidSale
	}
	client, err := s.repo.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}
	return *client, nil
}

func (s *Service) UpdateClient(ctx context.Context, id string, req domain.ClientUpdateRequest) (domain.Client, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Client{}, store.ErrInvalidSale
	}

	existing, err := s.repo.GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	updated := *existing
	if req.FirstName != nil {
		name := strings.TrimSpace(*req.FirstName)
		if name == "" {
			return domain.Client{}, store.ErrInvalidSale
		}
		updated.FirstName = name
	}
	if req.LastName != nil {
		name := strings.TrimSpace(*req.LastName)
		if name == "" {
			return domain.Client{}, store.ErrInvalidSale
		}
		updated.LastName = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			return domain.Client{}, store.ErrInvalidSale
		}
		updated.Phone = phone
	}
	if req.Email != nil {
		updated.Email = strings.TrimSpace(*req.Email)
	}
	if req.Notes != nil {
		updated.Notes = strings.TrimSpace(*req.Notes)
	}

	saved, err := s.repo.UpdateClient(ctx, updated)
	if err != nil {
		return domain.Client{}, err
	}

	s.logAudit(ctx, "client_update", "client", saved.ID, saved.FirstName+" "+saved.LastName)

	return *saved, nil
}

func (s *Service) ListStylists(ctx context.Context) ([]domain.Stylist, error) {
	return s.repo.ListStylists(ctx)
}

func (s *Service) CreateStylist(ctx context.Context, req domain.StylistCreateRequest) (domain.Stylist, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleManager {
		return domain.Stylist{}, fmt.Errorf("manager role required")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return domain.Stylist{}, store.ErrInvalidSale
	}
	if req.CommissionRate < 0 || req.CommissionRate > 1 {
		return domain.Stylist{}, store.ErrInvalidSale
	}

	stylist := domain.Stylist{
		ID:             xid.New("sty"),
		Name:           req.Name,
		Phone:          strings.TrimSpace(req.Phone),
		CommissionRate: req.CommissionRate,
		Active:         true,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.repo.CreateStylist(ctx, stylist)
	if err != nil {
		return domain.Stylist{}, err
	}

	s.logAudit(ctx, "stylist_create", "stylist", created.ID, created.Name)

	return *created, nil
}

func (s *Service) UpdateStylist(ctx context.Context, id string, req domain.StylistUpdateRequest) (domain.Stylist, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleManager {
		return domain.Stylist{}, fmt.Errorf("manager role required")
	}
	if strings.TrimSpace(id) == "" {
		return domain.Stylist{}, store.ErrInvalidSale
	}

	existing, err := s.repo.GetStylistByID(ctx, id)
	if err != nil {
		return domain.Stylist{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Stylist{}, store.ErrInvalidSale
		}
		updated.Name = name
	}
	if req.Phone != nil {
		updated.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.CommissionRate != nil {
		if *req.CommissionRate < 0 || *req.CommissionRate > 1 {
			return domain.Stylist{}, store.ErrInvalidSale
		}
		updated.CommissionRate = *req.CommissionRate
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	saved, err := s.repo.UpdateStylist(ctx, updated)
	if err != nil {
		return domain.Stylist{}, err
	}

	s.logAudit(ctx, "stylist_update", "stylist", saved.ID, fmt.Sprintf("active=%t,commission=%.2f", saved.Active, saved.CommissionRate))

	return *saved, nil
}

func (s *Service) ListServices(ctx context.Context) ([]domain.Service, error) {
	return s.repo.ListServices(ctx)
}

func (s *Service) CreateService(ctx context.Context, req domain.ServiceCreateRequest) (domain.Service, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleManager {
		return domain.Service{}, fmt.Errorf("manager role required")
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.PriceCents < 1 {
		return domain.Service{}, store.ErrInvalidSale
	}

	svc := domain.Service{
		ID:         xid.New("svc"),
		Name:       req.Name,
		PriceCents: req.PriceCents,
		Luxury:     req.Luxury,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.CreateService(ctx, svc)
	if err != nil {
		return domain.Service{}, err
	}

	s.logAudit(ctx, "service_create", "service", created.ID, fmt.Sprintf("name=%s,price=%d,luxury=%t", created.Name, created.PriceCents, created.Luxury))

	return *created, nil
}

func (s *Service) UpdateService(ctx context.Context, id string, req domain.ServiceUpdateRequest) (domain.Service, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleManager {
		return domain.Service{}, fmt.Errorf("manager role required")
	}
	if strings.TrimSpace(id) == "" {
		return domain.Service{}, store.ErrInvalidSale
	}

	existing, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}

	updated := *existing
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Service{}, store.ErrInvalidSale
		}
		updated.Name = name
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 1 {
			return domain.Service{}, store.ErrInvalidSale
		}
		updated.PriceCents = *req.PriceCents
	}
	if req.Luxury != nil {
		updated.Luxury = *req.Luxury
	}
	if req.Active != nil {
		updated.Active = *req.Active
	}

	saved, err := s.repo.UpdateService(ctx, updated)
	if err != nil {
		return domain.Service{}, err
	}

	s.logAudit(ctx, "service_update", "service", saved.ID, fmt.Sprintf("active=%t,price=%d,luxury=%t", saved.Active, saved.PriceCents, saved.Luxury))

	return *saved, nil
}

func (s *Service) ListInventoryItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.ListInventoryItems(ctx)
}

func (s *Service) CreateInventoryItem(ctx context.Context, req domain.InventoryItemCreateRequest) (domain.InventoryItem, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleManager {
		return domain.InventoryItem{}, fmt.Errorf("manager role required")
	}

	req.SKU = strings.ToUpper(strings.TrimSpace(req.SKU))
	req.Name = strings.TrimSpace(req.Name)
	if req.SKU == "" || req.Name == "" || req.PriceCents < 1 || req.InitialQty < 0 || req.ReorderLevel < 0 {
		return domain.InventoryItem{}, store.ErrInvalidSale
	}

	item := domain.InventoryItem{
		ID:           xid.New("inv"),
		SKU:          req.SKU,
		Name:         req.Name,
		PriceCents:   req.PriceCents,
		Quantity:     req.InitialQty,
		ReorderLevel: req.ReorderLevel,
		BackBar:      req.BackBar,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.CreateInventoryItem(ctx, item)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	s.logAudit(ctx, "inventory_create", "inventory_item", created.SKU, fmt.Sprintf("name=%s,qty=%d,price=%d", created.Name, created.Quantity, created.PriceCents))

	return *created, nil
}

func (s *Service) AdjustInventory(ctx context.Context, req domain.InventoryAdjustRequest) (domain.InventoryAdjustResponse, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleManager {
		return domain.InventoryAdjustResponse{}, fmt.Errorf("manager role required")
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	req.Reason = strings.TrimSpace(req.Reason)
	if sku == "" {
		// The item may be named by record id instead of SKU.
		itemID := strings.TrimSpace(req.ItemID)
		if itemID == "" {
			return domain.InventoryAdjustResponse{}, store.ErrInvalidSale
		}
		item, err := s.repo.GetInventoryItemByID(ctx, itemID)
		if err != nil {
			return domain.InventoryAdjustResponse{}, err
		}
		sku = item.SKU
	}
	if req.Delta == 0 {
		return domain.InventoryAdjustResponse{}, store.ErrInvalidSale
	}
	if req.Delta < 0 && req.Reason == "" {
		return domain.InventoryAdjustResponse{}, store.ErrInvalidSale
	}

	updated, err := s.repo.AdjustInventory(ctx, sku, req.Delta, time.Now().UTC())
	if err != nil {
		return domain.InventoryAdjustResponse{}, err
	}

	action := "inventory_receive"
	if req.Delta < 0 {
		action = "inventory_adjust"
		if req.BackBar {
			action = "inventory_back_bar_use"
		}
	}
	s.logAudit(ctx, action, "inventory_item", updated.SKU, fmt.Sprintf("delta=%d,qty=%d,reason=%s", req.Delta, updated.Quantity, req.Reason))

	return domain.InventoryAdjustResponse{SKU: updated.SKU, Quantity: updated.Quantity}, nil
}

func (s *Service) ListLowStockItems(ctx context.Context) (domain.LowStockResponse, error) {
	items, err := s.repo.ListLowStockItems(ctx)
	if err != nil {
		return domain.LowStockResponse{}, err
	}
	return domain.LowStockResponse{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Items:       items,
	}, nil
}

func (s *Service) CompleteSale(ctx context.Context, req domain.CompleteSaleRequest) (domain.CompleteSaleResponse, error) {
	if !isSupportedPaymentMethod(req.PaymentMethod) {
		return domain.CompleteSaleResponse{}, store.ErrInvalidSale
	}
	if req.TipCents < 0 {
		return domain.CompleteSaleResponse{}, store.ErrInvalidSale
	}

	serviceLines := normalizeServiceLines(req.ServiceLines)
	productLines := normalizeProductLines(req.ProductLines)
	if len(serviceLines) == 0 && len(productLines) == 0 {
		return domain.CompleteSaleResponse{}, store.ErrInvalidSale
	}

	// An empty client id is a walk-in sale; only verify the record when
	// the ticket names one.
	clientID := strings.TrimSpace(req.ClientID)
	if clientID != "" {
		client, err := s.repo.GetClientByID(ctx, clientID)
		if err != nil {
			return domain.CompleteSaleResponse{}, err
		}
		clientID = client.ID
	}

	stylist, err := s.repo.GetStylistByID(ctx, strings.TrimSpace(req.StylistID))
	if err != nil {
		return domain.CompleteSaleResponse{}, err
	}
	if !stylist.Active {
		return domain.CompleteSaleResponse{}, fmt.Errorf("%w: stylist %s is inactive", store.ErrInvalidSale, stylist.ID)
	}

	items := make([]domain.SaleItem, 0, len(serviceLines)+len(productLines))

	if len(serviceLines) > 0 {
		ids := make([]string, 0, len(serviceLines))
		for _, line := range serviceLines {
			ids = append(ids, line.ServiceID)
		}
		services, err := s.repo.GetServicesByIDs(ctx, ids)
		if err != nil {
			return domain.CompleteSaleResponse{}, err
		}
		for _, line := range serviceLines {
			svc, exists := services[line.ServiceID]
			if !exists {
				return domain.CompleteSaleResponse{}, fmt.Errorf("%w: service %s", store.ErrNotFound, line.ServiceID)
			}
			category := domain.LineCategoryService
			if svc.Luxury {
				category = domain.LineCategoryLuxuryService
			}
			price := svc.PriceCents
			if line.UnitPriceCents != nil {
				if *line.UnitPriceCents < 0 {
					return domain.CompleteSaleResponse{}, fmt.Errorf("%w: negative price override for service %s", store.ErrInvalidSale, line.ServiceID)
				}
				price = *line.UnitPriceCents
			}
			items = append(items, domain.SaleItem{
				Category:       category,
				ServiceID:      svc.ID,
				Name:           svc.Name,
				Qty:            line.Qty,
				UnitPriceCents: price,
			})
		}
	}

	if len(productLines) > 0 {
		skus := make([]string, 0, len(productLines))
		for _, line := range productLines {
			skus = append(skus, line.SKU)
		}
		products, err := s.repo.GetInventoryItemsBySKUs(ctx, skus)
		if err != nil {
			return domain.CompleteSaleResponse{}, err
		}
		for _, line := range productLines {
			product, exists := products[line.SKU]
			if !exists {
				return domain.CompleteSaleResponse{}, fmt.Errorf("%w: sku %s", store.ErrNotFound, line.SKU)
			}
			price := product.PriceCents
			if line.UnitPriceCents != nil {
				if *line.UnitPriceCents < 0 {
					return domain.CompleteSaleResponse{}, fmt.Errorf("%w: negative price override for sku %s", store.ErrInvalidSale, line.SKU)
				}
				price = *line.UnitPriceCents
			}
			items = append(items, domain.SaleItem{
				Category:       domain.LineCategoryProduct,
				SKU:            product.SKU,
				Name:           product.Name,
				Qty:            line.Qty,
				UnitPriceCents: price,
			})
		}
	}

	totals := pricing.Compute(items, s.taxRate, req.TipCents)

	actor, _ := ActorFromContext(ctx)

	sale := domain.Sale{
		ID:            xid.New("sale"),
		ClientID:      clientID,
		StylistID:     stylist.ID,
		PaymentMethod: req.PaymentMethod,
		SubtotalCents: totals.SubtotalCents,
		TaxRate:       s.taxRate,
		TaxCents:      totals.TaxCents,
		TipCents:      req.TipCents,
		TotalCents:    totals.TotalCents,
		Status:        domain.SaleStatusCompleted,
		CompletedBy:   actor.Username,
		CreatedAt:     time.Now().UTC(),
		Items:         items,
	}

	created, err := s.repo.CompleteSale(ctx, sale)
	if err != nil {
		return domain.CompleteSaleResponse{}, err
	}

	s.logAudit(ctx, "sale_complete", "sale", created.ID, fmt.Sprintf("total=%d,tax=%d,tip=%d,payment=%s,stylist=%s", created.TotalCents, created.TaxCents, created.TipCents, created.PaymentMethod, created.StylistID))

	return toCompleteSaleResponse(created), nil
}

func (s *Service) GetSale(ctx context.Context, id string) (domain.Sale, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Sale{}, store.ErrInvalidSale
	}
	sale, err := s.repo.GetSaleByID(ctx, id)
	if err != nil {
		return domain.Sale{}, err
	}
	return *sale, nil
}

func (s *Service) VoidSale(ctx context.Context, saleID string, req domain.VoidSaleRequest) (domain.VoidSaleResponse, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.Role != domain.RoleManager {
		return domain.VoidSaleResponse{}, fmt.Errorf("manager role required")
	}
	if strings.TrimSpace(saleID) == "" {
		return domain.VoidSaleResponse{}, store.ErrInvalidSale
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = "unspecified"
	}

	voidedAt := time.Now().UTC()
	sale, err := s.repo.VoidSale(ctx, saleID, reason, voidedAt)
	if err != nil {
		return domain.VoidSaleResponse{}, err
	}

	s.logAudit(ctx, "sale_void", "sale", sale.ID, reason)

	return domain.VoidSaleResponse{
		SaleID:   sale.ID,
		Status:   sale.Status,
		VoidedAt: voidedAt.Format(time.RFC3339),
	}, nil
}

func (s *Service) ListClientSales(ctx context.Context, clientID string, fromDate string, toDate string) (domain.ClientSalesResponse, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return domain.ClientSalesResponse{}, store.ErrInvalidSale
	}
	if _, err := s.repo.GetClientByID(ctx, clientID); err != nil {
		return domain.ClientSalesResponse{}, err
	}

	from, to, err := parseReportRange(fromDate, toDate)
	if err != nil {
		return domain.ClientSalesResponse{}, err
	}

	sales, err := s.repo.ListSalesByClient(ctx, clientID, from, to)
	if err != nil {
		return domain.ClientSalesResponse{}, err
	}

	return domain.ClientSalesResponse{ClientID: clientID, Sales: sales}, nil
}

func (s *Service) GetStylistSalesReport(ctx context.Context, stylistID string, fromDate string, toDate string) (domain.StylistSalesReport, error) {
	stylistID = strings.TrimSpace(stylistID)
	if stylistID == "" {
		return domain.StylistSalesReport{}, store.ErrInvalidSale
	}

	from, to, err := parseReportRange(fromDate, toDate)
	if err != nil {
		return domain.StylistSalesReport{}, err
	}

	cacheKey := fmt.Sprintf("report:stylist:%s:%d:%d", stylistID, from.Unix(), to.Unix())
	if cached, ok, err := s.reports.Get(ctx, cacheKey); err == nil && ok {
		return *cached, nil
	} else if err != nil {
		log.Printf("[service] WARN: report cache read failed key=%s: %v", cacheKey, err)
	}

	report, err := s.repo.GetStylistSalesReport(ctx, stylistID, from, to)
	if err != nil {
		return domain.StylistSalesReport{}, err
	}

	if err := s.reports.Set(ctx, cacheKey, &report, s.reportTTL); err != nil {
		log.Printf("[service] WARN: report cache write failed key=%s: %v", cacheKey, err)
	}

	return report, nil
}

func (s *Service) GetTaxReport(ctx context.Context, fromDate string, toDate string) (domain.TaxReport, error) {
	from, to, err := parseReportRange(fromDate, toDate)
	if err != nil {
		return domain.TaxReport{}, err
	}
	return s.repo.GetTaxReport(ctx, from, to)
}

func (s *Service) GetVoidedSalesReport(ctx context.Context, fromDate string, toDate string) (domain.VoidedSalesReport, error) {
	from, to, err := parseReportRange(fromDate, toDate)
	if err != nil {
		return domain.VoidedSalesReport{}, err
	}
	return s.repo.GetVoidedSalesReport(ctx, from, to)
}

func (s *Service) ListAuditLogs(ctx context.Context, date string, limit int) ([]domain.AuditLog, error) {
	if limit < 1 {
		limit = 100
	}

	var from time.Time
	if strings.TrimSpace(date) == "" {
		from = time.Now().UTC().Add(-24 * time.Hour)
	} else {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, store.ErrInvalidSale
		}
		from = parsed.UTC()
	}
	to := from.Add(24 * time.Hour)

	return s.repo.ListAuditLogs(ctx, from, to, limit)
}

func (s *Service) logAudit(ctx context.Context, action string, entityType string, entityID string, detail string) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		actor = domain.Actor{Username: "system", Role: "system"}
	}

	if err := s.repo.CreateAuditLog(ctx, domain.AuditLog{
		ID:            xid.New("audit"),
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    entityType,
		EntityID:      entityID,
		Detail:        detail,
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		log.Printf("[audit] WARN: failed to write audit log action=%s entity=%s/%s: %v", action, entityType, entityID, err)
	}
}

// parseReportRange turns from/to date strings (2006-01-02) into a half-open
// UTC interval. An empty range defaults to the trailing 30 days; the end date
// is inclusive on the calendar day.
func parseReportRange(fromDate string, toDate string) (time.Time, time.Time, error) {
	now := time.Now().UTC()

	if strings.TrimSpace(fromDate) == "" && strings.TrimSpace(toDate) == "" {
		return now.Add(-30 * 24 * time.Hour), now, nil
	}

	from, err := time.Parse("2006-01-02", strings.TrimSpace(fromDate))
	if err != nil {
		return time.Time{}, time.Time{}, store.ErrInvalidSale
	}
	from = from.UTC()

	to := now
	if strings.TrimSpace(toDate) != "" {
		parsed, err := time.Parse("2006-01-02", strings.TrimSpace(toDate))
		if err != nil {
			return time.Time{}, time.Time{}, store.ErrInvalidSale
		}
		to = parsed.UTC().Add(24 * time.Hour)
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, store.ErrInvalidSale
	}

	return from, to, nil
}

func toCompleteSaleResponse(sale *domain.Sale) domain.CompleteSaleResponse {
	itemCount := 0
	for _, item := range sale.Items {
		itemCount += item.Qty
	}

	return domain.CompleteSaleResponse{
		SaleID:        sale.ID,
		Status:        sale.Status,
		PaymentMethod: sale.PaymentMethod,
		SubtotalCents: sale.SubtotalCents,
		TaxCents:      sale.TaxCents,
		TipCents:      sale.TipCents,
		TotalCents:    sale.TotalCents,
		ItemCount:     itemCount,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
		Items:         sale.Items,
	}
}

// lineKey keeps lines for the same catalog entry separate when they carry
// different price overrides, so an adjusted line never merges into a
// full-price one.
func lineKey(id string, override *int64) string {
	if override == nil {
		return id
	}
	return fmt.Sprintf("%s@%d", id, *override)
}

func normalizeServiceLines(lines []domain.ServiceLine) []domain.ServiceLine {
	agg := make(map[string]domain.ServiceLine, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		id := strings.TrimSpace(line.ServiceID)
		if id == "" || line.Qty < 1 {
			continue
		}
		key := lineKey(id, line.UnitPriceCents)
		existing, seen := agg[key]
		if !seen {
			order = append(order, key)
			existing = domain.ServiceLine{ServiceID: id, UnitPriceCents: line.UnitPriceCents}
		}
		existing.Qty += line.Qty
		agg[key] = existing
	}

	normalized := make([]domain.ServiceLine, 0, len(agg))
	for _, key := range order {
		normalized = append(normalized, agg[key])
	}
	return normalized
}

func normalizeProductLines(lines []domain.ProductLine) []domain.ProductLine {
	agg := make(map[string]domain.ProductLine, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		sku := strings.ToUpper(strings.TrimSpace(line.SKU))
		if sku == "" || line.Qty < 1 {
			continue
		}
		key := lineKey(sku, line.UnitPriceCents)
		existing, seen := agg[key]
		if !seen {
			order = append(order, key)
			existing = domain.ProductLine{SKU: sku, UnitPriceCents: line.UnitPriceCents}
		}
		existing.Qty += line.Qty
		agg[key] = existing
	}

	normalized := make([]domain.ProductLine, 0, len(agg))
	for _, key := range order {
		normalized = append(normalized, agg[key])
	}
	return normalized
}

func isSupportedPaymentMethod(method string) bool {
	switch method {
	case domain.PaymentCash, domain.PaymentCreditCard, domain.PaymentDebitCard, domain.PaymentCheck:
		return true
	default:
		return false
	}
}
