package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/store"
	"salonpos/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, first_name, last_name, phone, COALESCE(email,''), COALESCE(notes,''), created_at, updated_at
		FROM clients
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]domain.Client, 0, 128)
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.CreatedAt = c.CreatedAt.UTC()
		c.UpdatedAt = c.UpdatedAt.UTC()
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return clients, nil
}

func (s *Store) CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	if client.FirstName == "" || client.LastName == "" || client.Phone == "" {
		return nil, store.ErrInvalidSale
	}
	if client.ID == "" {
		client.ID = xid.New("cli")
	}
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now().UTC()
	}
	client.UpdatedAt = client.CreatedAt

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clients (id, first_name, last_name, phone, email, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, client.ID, client.FirstName, client.LastName, client.Phone, nullIfEmpty(client.Email), nullIfEmpty(client.Notes), client.CreatedAt, client.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidSale
		}
		return nil, err
	}

	created := client
	return &created, nil
}

func (s *Store) GetClientByID(ctx context.Context, id string) (*domain.Client, error) {
	var client domain.Client
	err := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, phone, COALESCE(email,''), COALESCE(notes,''), created_at, updated_at
		FROM clients
		WHERE id = $1
	`, id).Scan(&client.ID, &client.FirstName, &client.LastName, &client.Phone, &client.Email, &client.Notes, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	client.CreatedAt = client.CreatedAt.UTC()
	client.UpdatedAt = client.UpdatedAt.UTC()
	return &client, nil
}

func (s *Store) UpdateClient(ctx context.Context, client domain.Client) (*domain.Client, error) {
	if client.ID == "" || client.FirstName == "" || client.LastName == "" || client.Phone == "" {
		return nil, store.ErrInvalidSale
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE clients
		SET first_name = $2, last_name = $3, phone = $4, email = $5, notes = $6, updated_at = now()
		WHERE id = $1
	`, client.ID, client.FirstName, client.LastName, client.Phone, nullIfEmpty(client.Email), nullIfEmpty(client.Notes))
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := client
	updated.UpdatedAt = time.Now().UTC()
	return &updated, nil
}

func (s *Store) ListStylists(ctx context.Context) ([]domain.Stylist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, commission_rate, active, created_at
		FROM stylists
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stylists := make([]domain.Stylist, 0, 32)
	for rows.Next() {
		var st domain.Stylist
		if err := rows.Scan(&st.ID, &st.Name, &st.Phone, &st.CommissionRate, &st.Active, &st.CreatedAt); err != nil {
			return nil, err
		}
		st.CreatedAt = st.CreatedAt.UTC()
		stylists = append(stylists, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stylists, nil
}

func (s *Store) CreateStylist(ctx context.Context, stylist domain.Stylist) (*domain.Stylist, error) {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stylists (id, name, phone, commission_rate, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, stylist.ID, stylist.Name, stylist.Phone, stylist.CommissionRate, stylist.Active, stylist.CreatedAt)
	if err != nil {
		return nil, err
	}

	created := stylist
	return &created, nil
}

func (s *Store) GetStylistByID(ctx context.Context, id string) (*domain.Stylist, error) {
	var stylist domain.Stylist
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, phone, commission_rate, active, created_at
		FROM stylists
		WHERE id = $1
	`, id).Scan(&stylist.ID, &stylist.Name, &stylist.Phone, &stylist.CommissionRate, &stylist.Active, &stylist.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	stylist.CreatedAt = stylist.CreatedAt.UTC()
	return &stylist, nil
}

func (s *Store) UpdateStylist(ctx context.Context, stylist domain.Stylist) (*domain.Stylist, error) {
	if stylist.ID == "" || stylist.Name == "" {
		return nil, store.ErrInvalidSale
	}
	if stylist.CommissionRate < 0 || stylist.CommissionRate > 1 {
		return nil, store.ErrInvalidSale
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE stylists
		SET name = $2, phone = $3, commission_rate = $4, active = $5, updated_at = now()
		WHERE id = $1
	`, stylist.ID, stylist.Name, stylist.Phone, stylist.CommissionRate, stylist.Active)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := stylist
	return &updated, nil
}

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price_cents, luxury, active, created_at
		FROM services
		WHERE active = true
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]domain.Service, 0, 64)
	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.PriceCents, &svc.Luxury, &svc.Active, &svc.CreatedAt); err != nil {
			return nil, err
		}
		svc.CreatedAt = svc.CreatedAt.UTC()
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (s *Store) CreateService(ctx context.Context, svc domain.Service) (*domain.Service, error) {
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO services (id, name, price_cents, luxury, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, svc.ID, svc.Name, svc.PriceCents, svc.Luxury, svc.Active, svc.CreatedAt)
	if err != nil {
		return nil, err
	}

	created := svc
	return &created, nil
}

func (s *Store) GetServiceByID(ctx context.Context, id string) (*domain.Service, error) {
	var svc domain.Service
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, price_cents, luxury, active, created_at
		FROM services
		WHERE id = $1
	`, id).Scan(&svc.ID, &svc.Name, &svc.PriceCents, &svc.Luxury, &svc.Active, &svc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	svc.CreatedAt = svc.CreatedAt.UTC()
	return &svc, nil
}

func (s *Store) UpdateService(ctx context.Context, svc domain.Service) (*domain.Service, error) {
	if svc.ID == "" || svc.Name == "" || svc.PriceCents < 1 {
		return nil, store.ErrInvalidSale
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE services
		SET name = $2, price_cents = $3, luxury = $4, active = $5, updated_at = now()
		WHERE id = $1
	`, svc.ID, svc.Name, svc.PriceCents, svc.Luxury, svc.Active)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := svc
	return &updated, nil
}

func (s *Store) GetServicesByIDs(ctx context.Context, ids []string) (map[string]domain.Service, error) {
	result := make(map[string]domain.Service, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price_cents, luxury, active, created_at
		FROM services
		WHERE active = true AND id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(&svc.ID, &svc.Name, &svc.PriceCents, &svc.Luxury, &svc.Active, &svc.CreatedAt); err != nil {
			return nil, err
		}
		result[svc.ID] = svc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Store) ListInventoryItems(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sku, name, price_cents, quantity, reorder_level, back_bar, created_at, updated_at
		FROM inventory_items
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0, 128)
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.SKU, &item.Name, &item.PriceCents, &item.Quantity, &item.ReorderLevel, &item.BackBar, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		item.CreatedAt = item.CreatedAt.UTC()
		item.UpdatedAt = item.UpdatedAt.UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Store) CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if item.SKU == "" || item.Name == "" || item.PriceCents < 1 || item.Quantity < 0 {
		return nil, store.ErrInvalidSale
	}
	if item.ID == "" {
		item.ID = xid.New("inv")
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	item.UpdatedAt = item.CreatedAt
	item.SKU = strings.ToUpper(strings.TrimSpace(item.SKU))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory_items (id, sku, name, price_cents, quantity, reorder_level, back_bar, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, item.ID, item.SKU, item.Name, item.PriceCents, item.Quantity, item.ReorderLevel, item.BackBar, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidSale
		}
		return nil, err
	}

	created := item
	return &created, nil
}

func (s *Store) GetInventoryItemBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, sku, name, price_cents, quantity, reorder_level, back_bar, created_at, updated_at
		FROM inventory_items
		WHERE sku = $1
	`, strings.ToUpper(strings.TrimSpace(sku))).Scan(&item.ID, &item.SKU, &item.Name, &item.PriceCents, &item.Quantity, &item.ReorderLevel, &item.BackBar, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	return &item, nil
}

func (s *Store) GetInventoryItemByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := s.db.QueryRowContext(ctx, `
		SELECT id, sku, name, price_cents, quantity, reorder_level, back_bar, created_at, updated_at
		FROM inventory_items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.SKU, &item.Name, &item.PriceCents, &item.Quantity, &item.ReorderLevel, &item.BackBar, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
	return &item, nil
}

func (s *Store) GetInventoryItemsBySKUs(ctx context.Context, skus []string) (map[string]domain.InventoryItem, error) {
	result := make(map[string]domain.InventoryItem, len(skus))
	if len(skus) == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sku, name, price_cents, quantity, reorder_level, back_bar, created_at, updated_at
		FROM inventory_items
		WHERE sku = ANY($1)
	`, skus)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.SKU, &item.Name, &item.PriceCents, &item.Quantity, &item.ReorderLevel, &item.BackBar, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result[item.SKU] = item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Store) AdjustInventory(ctx context.Context, sku string, delta int, at time.Time) (*domain.InventoryItem, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" || delta == 0 {
		return nil, store.ErrInvalidSale
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var item domain.InventoryItem
	err = tx.QueryRowContext(ctx, `
		SELECT id, sku, name, price_cents, quantity, reorder_level, back_bar, created_at
		FROM inventory_items
		WHERE sku = $1
		FOR UPDATE
	`, sku).Scan(&item.ID, &item.SKU, &item.Name, &item.PriceCents, &item.Quantity, &item.ReorderLevel, &item.BackBar, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	next := item.Quantity + delta
	if next < 0 {
		return nil, fmt.Errorf("%w: sku %s has %d, adjustment needs %d", store.ErrInsufficientStock, sku, item.Quantity, -delta)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE inventory_items
		SET quantity = $2, updated_at = $3
		WHERE sku = $1
	`, sku, next, at)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	item.Quantity = next
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = at
	return &item, nil
}

func (s *Store) ListLowStockItems(ctx context.Context) ([]domain.LowStockItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sku, name, quantity, reorder_level
		FROM inventory_items
		WHERE quantity <= reorder_level
		ORDER BY quantity ASC, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.LowStockItem, 0, 16)
	for rows.Next() {
		var item domain.LowStockItem
		if err := rows.Scan(&item.SKU, &item.Name, &item.Quantity, &item.ReorderLevel); err != nil {
			return nil, err
		}
		item.SuggestedQty = item.ReorderLevel*2 - item.Quantity
		if item.SuggestedQty < 1 {
			item.SuggestedQty = 1
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CompleteSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error) {
	if len(sale.Items) == 0 {
		return nil, store.ErrInvalidSale
	}
	// Empty client id means a walk-in sale; a stylist is always required.
	if sale.StylistID == "" {
		return nil, store.ErrInvalidSale
	}
	for _, item := range sale.Items {
		if item.Qty < 1 {
			return nil, store.ErrInvalidSale
		}
	}

	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = pgTx.Rollback() }()

	skus := uniqueProductSKUs(sale.Items)
	if len(skus) > 0 {
		stockRows, err := pgTx.QueryContext(ctx, `
			SELECT sku, quantity
			FROM inventory_items
			WHERE sku = ANY($1)
			FOR UPDATE
		`, skus)
		if err != nil {
			return nil, err
		}
		stockMap := make(map[string]int, len(skus))
		for stockRows.Next() {
			var sku string
			var qty int
			if err := stockRows.Scan(&sku, &qty); err != nil {
				_ = stockRows.Close()
				return nil, err
			}
			stockMap[sku] = qty
		}
		if err := stockRows.Err(); err != nil {
			_ = stockRows.Close()
			return nil, err
		}
		_ = stockRows.Close()

		needed := make(map[string]int, len(skus))
		for _, item := range sale.Items {
			if item.Category != domain.LineCategoryProduct {
				continue
			}
			needed[item.SKU] += item.Qty
		}

		for _, sku := range skus {
			have, exists := stockMap[sku]
			if !exists {
				return nil, fmt.Errorf("%w: sku %s", store.ErrNotFound, sku)
			}
			if have < needed[sku] {
				return nil, fmt.Errorf("%w: sku %s has %d, sale needs %d", store.ErrInsufficientStock, sku, have, needed[sku])
			}
		}

		for _, sku := range skus {
			_, err = pgTx.ExecContext(ctx, `
				UPDATE inventory_items
				SET quantity = quantity - $1, updated_at = now()
				WHERE sku = $2
			`, needed[sku], sku)
			if err != nil {
				return nil, err
			}
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

	_, err = pgTx.ExecContext(ctx, `
		INSERT INTO sales (
			id, client_id, stylist_id, payment_method, subtotal_cents, tax_rate,
			tax_cents, tip_cents, total_cents, status, void_reason, voided_at,
			completed_by, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`, sale.ID, nullIfEmpty(sale.ClientID), sale.StylistID, sale.PaymentMethod, sale.SubtotalCents, sale.TaxRate,
		sale.TaxCents, sale.TipCents, sale.TotalCents, sale.Status,
		nullIfEmpty(sale.VoidReason), nullTime(sale.VoidedAt), sale.CompletedBy, sale.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, item := range sale.Items {
		_, err := pgTx.ExecContext(ctx, `
			INSERT INTO sale_items (sale_id, category, service_id, sku, name, qty, unit_price_cents)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, sale.ID, item.Category, nullIfEmpty(item.ServiceID), nullIfEmpty(item.SKU), item.Name, item.Qty, item.UnitPriceCents)
		if err != nil {
			return nil, err
		}
	}

	if err := pgTx.Commit(); err != nil {
		return nil, err
	}

	return &sale, nil
}

func (s *Store) GetSaleByID(ctx context.Context, id string) (*domain.Sale, error) {
	var sale domain.Sale
	var voidReason sql.NullString
	var voidedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(client_id,''), stylist_id, payment_method, subtotal_cents, tax_rate,
			tax_cents, tip_cents, total_cents, status, void_reason, voided_at,
			completed_by, created_at
		FROM sales
		WHERE id = $1
	`, id).Scan(
		&sale.ID,
		&sale.ClientID,
		&sale.StylistID,
		&sale.PaymentMethod,
		&sale.SubtotalCents,
		&sale.TaxRate,
		&sale.TaxCents,
		&sale.TipCents,
		&sale.TotalCents,
		&sale.Status,
		&voidReason,
		&voidedAt,
		&sale.CompletedBy,
		&sale.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if voidReason.Valid {
		sale.VoidReason = voidReason.String
	}
	if voidedAt.Valid {
		at := voidedAt.Time.UTC()
		sale.VoidedAt = &at
	}
	sale.CreatedAt = sale.CreatedAt.UTC()

	items, err := s.saleItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return &sale, nil
}

func (s *Store) saleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COALESCE(service_id,''), COALESCE(sku,''), name, qty, unit_price_cents
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id ASC
	`, saleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.SaleItem, 0, 8)
	for rows.Next() {
		var item domain.SaleItem
		if err := rows.Scan(&item.Category, &item.ServiceID, &item.SKU, &item.Name, &item.Qty, &item.UnitPriceCents); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) VoidSale(ctx context.Context, id string, reason string, at time.Time) (*domain.Sale, error) {
	pgTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = pgTx.Rollback() }()

	var sale domain.Sale
	err = pgTx.QueryRowContext(ctx, `
		SELECT id, COALESCE(client_id,''), stylist_id, total_cents, status
		FROM sales
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&sale.ID, &sale.ClientID, &sale.StylistID, &sale.TotalCents, &sale.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	if sale.Status == domain.SaleStatusVoided {
		return nil, store.ErrAlreadyVoided
	}
	if sale.Status != domain.SaleStatusCompleted {
		return nil, store.ErrInvalidSale
	}

	itemRows, err := pgTx.QueryContext(ctx, `
		SELECT COALESCE(sku,''), qty
		FROM sale_items
		WHERE sale_id = $1 AND category = $2
	`, id, domain.LineCategoryProduct)
	if err != nil {
		return nil, err
	}
	type restock struct {
		sku string
		qty int
	}
	restocks := make([]restock, 0, 8)
	for itemRows.Next() {
		var r restock
		if err := itemRows.Scan(&r.sku, &r.qty); err != nil {
			_ = itemRows.Close()
			return nil, err
		}
		restocks = append(restocks, r)
	}
	if err := itemRows.Err(); err != nil {
		_ = itemRows.Close()
		return nil, err
	}
	_ = itemRows.Close()

	_, err = pgTx.ExecContext(ctx, `
		UPDATE sales
		SET status = $2, void_reason = $3, voided_at = $4
		WHERE id = $1 AND status = $5
	`, id, domain.SaleStatusVoided, reason, at, domain.SaleStatusCompleted)
	if err != nil {
		return nil, err
	}

	for _, r := range restocks {
		if r.sku == "" || r.qty < 1 {
			continue
		}
		_, err := pgTx.ExecContext(ctx, `
			UPDATE inventory_items
			SET quantity = quantity + $1, updated_at = now()
			WHERE sku = $2
		`, r.qty, r.sku)
		if err != nil {
			return nil, err
		}
	}

	if err := pgTx.Commit(); err != nil {
		return nil, err
	}

	sale.Status = domain.SaleStatusVoided
	sale.VoidReason = reason
	sale.VoidedAt = &at
	return &sale, nil
}

func (s *Store) ListSalesByClient(ctx context.Context, clientID string, from time.Time, to time.Time) ([]domain.Sale, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(client_id,''), stylist_id, payment_method, subtotal_cents, tax_rate,
			tax_cents, tip_cents, total_cents, status, void_reason, voided_at,
			completed_by, created_at
		FROM sales
		WHERE client_id = $1
			AND created_at >= $2
			AND created_at < $3
		ORDER BY created_at DESC
	`, clientID, from, to)
	if err != nil {
		return nil, err
	}
	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}

	for i := range sales {
		items, err := s.saleItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}

	return sales, nil
}

func (s *Store) GetStylistSalesReport(ctx context.Context, stylistID string, from time.Time, to time.Time) (domain.StylistSalesReport, error) {
	report := domain.StylistSalesReport{
		StylistID: stylistID,
		From:      from.UTC().Format(time.RFC3339),
		To:        to.UTC().Format(time.RFC3339),
	}

	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT name FROM stylists WHERE id = $1
	`, stylistID).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return report, store.ErrNotFound
		}
		return report, err
	}
	report.StylistName = name

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(client_id,''), payment_method, subtotal_cents, tip_cents, total_cents, created_at
		FROM sales
		WHERE stylist_id = $1
			AND created_at >= $2
			AND created_at < $3
			AND status <> $4
		ORDER BY created_at ASC
	`, stylistID, from, to, domain.SaleStatusVoided)
	if err != nil {
		return report, err
	}
	for rows.Next() {
		var row domain.StylistSaleRow
		var createdAt time.Time
		if err := rows.Scan(&row.SaleID, &row.ClientID, &row.PaymentMethod, &row.SubtotalCents, &row.TipCents, &row.TotalCents, &createdAt); err != nil {
			_ = rows.Close()
			return report, err
		}
		row.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		report.Rows = append(report.Rows, row)
		report.Sales++
		report.RevenueCents += row.TotalCents
		report.TipCents += row.TipCents
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, err
	}
	_ = rows.Close()

	breakdownRows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(si.service_id,''), si.name,
			COALESCE(SUM(si.qty),0)::bigint,
			COALESCE(SUM(si.qty * si.unit_price_cents),0)::bigint
		FROM sale_items si
		JOIN sales sa ON sa.id = si.sale_id
		WHERE sa.stylist_id = $1
			AND sa.created_at >= $2
			AND sa.created_at < $3
			AND sa.status <> $4
			AND si.category IN ($5, $6)
		GROUP BY si.service_id, si.name
		ORDER BY si.name
	`, stylistID, from, to, domain.SaleStatusVoided, domain.LineCategoryService, domain.LineCategoryLuxuryService)
	if err != nil {
		return report, err
	}
	for breakdownRows.Next() {
		var entry domain.ServiceBreakdownEntry
		if err := breakdownRows.Scan(&entry.ServiceID, &entry.Name, &entry.Count, &entry.RevenueCents); err != nil {
			_ = breakdownRows.Close()
			return report, err
		}
		report.ServiceBreakdown = append(report.ServiceBreakdown, entry)
	}
	if err := breakdownRows.Err(); err != nil {
		_ = breakdownRows.Close()
		return report, err
	}
	_ = breakdownRows.Close()

	return report, nil
}

func (s *Store) GetTaxReport(ctx context.Context, from time.Time, to time.Time) (domain.TaxReport, error) {
	report := domain.TaxReport{
		From: from.UTC().Format(time.RFC3339),
		To:   to.UTC().Format(time.RFC3339),
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)::bigint,
			COALESCE(SUM(tax_cents),0)::bigint,
			COALESCE(SUM(tip_cents),0)::bigint
		FROM sales
		WHERE created_at >= $1
			AND created_at < $2
			AND status <> $3
	`, from, to, domain.SaleStatusVoided).Scan(&report.Sales, &report.TaxCollectedCents, &report.TipTotalCents)
	if err != nil {
		return report, err
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN si.category = $4 THEN si.qty * si.unit_price_cents ELSE 0 END),0)::bigint,
			COALESCE(SUM(CASE WHEN si.category = $5 THEN si.qty * si.unit_price_cents ELSE 0 END),0)::bigint
		FROM sale_items si
		JOIN sales sa ON sa.id = si.sale_id
		WHERE sa.created_at >= $1
			AND sa.created_at < $2
			AND sa.status <> $3
	`, from, to, domain.SaleStatusVoided, domain.LineCategoryProduct, domain.LineCategoryLuxuryService).
		Scan(&report.ProductTaxableCents, &report.LuxuryTaxableCents)
	if err != nil {
		return report, err
	}

	return report, nil
}

func (s *Store) GetVoidedSalesReport(ctx context.Context, from time.Time, to time.Time) (domain.VoidedSalesReport, error) {
	report := domain.VoidedSalesReport{
		From: from.UTC().Format(time.RFC3339),
		To:   to.UTC().Format(time.RFC3339),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, COALESCE(client_id,''), stylist_id, payment_method, subtotal_cents, tax_rate,
			tax_cents, tip_cents, total_cents, status, void_reason, voided_at,
			completed_by, created_at
		FROM sales
		WHERE status = $1
			AND voided_at >= $2
			AND voided_at < $3
		ORDER BY voided_at DESC
	`, domain.SaleStatusVoided, from, to)
	if err != nil {
		return report, err
	}
	sales, err := scanSales(rows)
	if err != nil {
		return report, err
	}

	report.Sales = sales
	for _, sale := range sales {
		report.Count++
		report.VoidedTotalCents += sale.TotalCents
	}

	return report, nil
}

func scanSales(rows *sql.Rows) ([]domain.Sale, error) {
	defer rows.Close()

	sales := make([]domain.Sale, 0, 32)
	for rows.Next() {
		var sale domain.Sale
		var voidReason sql.NullString
		var voidedAt sql.NullTime
		if err := rows.Scan(
			&sale.ID,
			&sale.ClientID,
			&sale.StylistID,
			&sale.PaymentMethod,
			&sale.SubtotalCents,
			&sale.TaxRate,
			&sale.TaxCents,
			&sale.TipCents,
			&sale.TotalCents,
			&sale.Status,
			&voidReason,
			&voidedAt,
			&sale.CompletedBy,
			&sale.CreatedAt,
		); err != nil {
			return nil, err
		}
		if voidReason.Valid {
			sale.VoidReason = voidReason.String
		}
		if voidedAt.Valid {
			at := voidedAt.Time.UTC()
			sale.VoidedAt = &at
		}
		sale.CreatedAt = sale.CreatedAt.UTC()
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

func (s *Store) CreateAuditLog(ctx context.Context, entry domain.AuditLog) error {
	if entry.ID == "" {
		entry.ID = xid.New("audit")
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (
			id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, entry.ID, entry.ActorUsername, entry.ActorRole, entry.Action, entry.EntityType, entry.EntityID, entry.Detail, entry.CreatedAt)
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error) {
	if limit < 1 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, actor_username, actor_role, action, entity_type, entity_id, detail, created_at
		FROM audit_logs
		WHERE created_at >= $1
			AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3
	`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.AuditLog, 0, limit)
	for rows.Next() {
		var entry domain.AuditLog
		if err := rows.Scan(&entry.ID, &entry.ActorUsername, &entry.ActorRole, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = entry.CreatedAt.UTC()
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *Store) CreateUser(ctx context.Context, user domain.UserAccount) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	if user.Username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidSale
	}
	if user.Role == "" {
		user.Role = domain.RoleFrontDesk
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_users (username, password, role, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, user.Username, user.Password, user.Role, user.Active, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrInvalidSale
		}
		return err
	}
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT username, password, role, active, created_at
		FROM app_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.UserAccount, 0, 16)
	for rows.Next() {
		var user domain.UserAccount
		if err := rows.Scan(&user.Username, &user.Password, &user.Role, &user.Active, &user.CreatedAt); err != nil {
			return nil, err
		}
		user.CreatedAt = user.CreatedAt.UTC()
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, username string, password string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidSale
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE app_users
		SET password = $2, updated_at = now()
		WHERE username = $1
	`, username, password)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func uniqueProductSKUs(items []domain.SaleItem) []string {
	if len(items) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.Category != domain.LineCategoryProduct || item.SKU == "" {
			continue
		}
		set[item.SKU] = struct{}{}
	}

	skus := make([]string, 0, len(set))
	for sku := range set {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}

func nullTime(val *time.Time) any {
	if val == nil {
		return nil
	}
	return *val
}
