package store

import (
	"context"
	"errors"
	"time"

	"salonpos/backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyVoided     = errors.New("sale already voided")
	ErrInvalidSale       = errors.New("invalid sale")
)

type Repository interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	CreateClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	GetClientByID(ctx context.Context, id string) (*domain.Client, error)
	UpdateClient(ctx context.Context, client domain.Client) (*domain.Client, error)
	ListStylists(ctx context.Context) ([]domain.Stylist, error)
	CreateStylist(ctx context.Context, stylist domain.Stylist) (*domain.Stylist, error)
	GetStylistByID(ctx context.Context, id string) (*domain.Stylist, error)
	UpdateStylist(ctx context.Context, stylist domain.Stylist) (*domain.Stylist, error)
	ListServices(ctx context.Context) ([]domain.Service, error)
	CreateService(ctx context.Context, svc domain.Service) (*domain.Service, error)
	GetServiceByID(ctx context.Context, id string) (*domain.Service, error)
	UpdateService(ctx context.Context, svc domain.Service) (*domain.Service, error)
	GetServicesByIDs(ctx context.Context, ids []string) (map[string]domain.Service, error)
	ListInventoryItems(ctx context.Context) ([]domain.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	GetInventoryItemBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	GetInventoryItemByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	GetInventoryItemsBySKUs(ctx context.Context, skus []string) (map[string]domain.InventoryItem, error)
	AdjustInventory(ctx context.Context, sku string, delta int, at time.Time) (*domain.InventoryItem, error)
	ListLowStockItems(ctx context.Context) ([]domain.LowStockItem, error)
	CompleteSale(ctx context.Context, sale domain.Sale) (*domain.Sale, error)
	GetSaleByID(ctx context.Context, id string) (*domain.Sale, error)
	VoidSale(ctx context.Context, id string, reason string, at time.Time) (*domain.Sale, error)
	ListSalesByClient(ctx context.Context, clientID string, from time.Time, to time.Time) ([]domain.Sale, error)
	GetStylistSalesReport(ctx context.Context, stylistID string, from time.Time, to time.Time) (domain.StylistSalesReport, error)
	GetTaxReport(ctx context.Context, from time.Time, to time.Time) (domain.TaxReport, error)
	GetVoidedSalesReport(ctx context.Context, from time.Time, to time.Time) (domain.VoidedSalesReport, error)
	CreateAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, from time.Time, to time.Time, limit int) ([]domain.AuditLog, error)
	CreateUser(ctx context.Context, user domain.UserAccount) error
	ListUsers(ctx context.Context) ([]domain.UserAccount, error)
	UpdateUserPassword(ctx context.Context, username string, password string) error
}
