package domain

import "time"

type Client struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClientCreateRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

type ClientUpdateRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

type Stylist struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	CommissionRate float64   `json:"commission_rate"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

type StylistCreateRequest struct {
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	CommissionRate float64 `json:"commission_rate"`
}

type StylistUpdateRequest struct {
	Name           *string  `json:"name,omitempty"`
	Phone          *string  `json:"phone,omitempty"`
	CommissionRate *float64 `json:"commission_rate,omitempty"`
	Active         *bool    `json:"active,omitempty"`
}

type Service struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Luxury     bool      `json:"luxury"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

type ServiceCreateRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Luxury     bool   `json:"luxury"`
}

type ServiceUpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	PriceCents *int64  `json:"price_cents,omitempty"`
	Luxury     *bool   `json:"luxury,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

type InventoryItem struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorder_level"`
	BackBar      bool      `json:"back_bar"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type InventoryItemCreateRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	PriceCents   int64  `json:"price_cents"`
	InitialQty   int    `json:"initial_qty"`
	ReorderLevel int    `json:"reorder_level"`
	BackBar      bool   `json:"back_bar"`
}

type InventoryAdjustRequest struct {
	SKU     string `json:"sku,omitempty"`
	ItemID  string `json:"inventory_id,omitempty"`
	Delta   int    `json:"delta"`
	Reason  string `json:"reason"`
	BackBar bool   `json:"back_bar"`
}

type InventoryAdjustResponse struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type LowStockItem struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
	SuggestedQty int    `json:"suggested_qty"`
}

type LowStockResponse struct {
	GeneratedAt string         `json:"generated_at"`
	Items       []LowStockItem `json:"items"`
}

// UnitPriceCents on a line, when set, replaces the catalog price for that
// line only (a front-desk price adjustment); the recorded sale item keeps
// whichever price was charged.
type ServiceLine struct {
	ServiceID      string `json:"service_id"`
	Qty            int    `json:"qty"`
	UnitPriceCents *int64 `json:"unit_price_cents,omitempty"`
}

type ProductLine struct {
	SKU            string `json:"sku"`
	Qty            int    `json:"qty"`
	UnitPriceCents *int64 `json:"unit_price_cents,omitempty"`
}

type SaleItem struct {
	Category       string `json:"category"`
	ServiceID      string `json:"service_id,omitempty"`
	SKU            string `json:"sku,omitempty"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type Sale struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"client_id,omitempty"`
	StylistID     string     `json:"stylist_id"`
	PaymentMethod string     `json:"payment_method"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxRate       float64    `json:"tax_rate"`
	TaxCents      int64      `json:"tax_cents"`
	TipCents      int64      `json:"tip_cents"`
	TotalCents    int64      `json:"total_cents"`
	Status        string     `json:"status"`
	VoidReason    string     `json:"void_reason,omitempty"`
	VoidedAt      *time.Time `json:"voided_at,omitempty"`
	CompletedBy   string     `json:"completed_by"`
	CreatedAt     time.Time  `json:"created_at"`
	Items         []SaleItem `json:"items"`
}

// ClientID is optional: an empty value records a walk-in sale with no
// client on file.
type CompleteSaleRequest struct {
	ClientID      string        `json:"client_id,omitempty"`
	StylistID     string        `json:"stylist_id"`
	ServiceLines  []ServiceLine `json:"service_lines"`
	ProductLines  []ProductLine `json:"product_lines"`
	TipCents      int64         `json:"tip_cents"`
	PaymentMethod string        `json:"payment_method"`
}

type CompleteSaleResponse struct {
	SaleID        string     `json:"sale_id"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"payment_method"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxCents      int64      `json:"tax_cents"`
	TipCents      int64      `json:"tip_cents"`
	TotalCents    int64      `json:"total_cents"`
	ItemCount     int        `json:"item_count"`
	CreatedAt     string     `json:"created_at"`
	Items         []SaleItem `json:"items"`
}

type VoidSaleRequest struct {
	Reason     string `json:"reason"`
	ManagerPIN string `json:"manager_pin,omitempty"`
}

type VoidSaleResponse struct {
	SaleID   string `json:"sale_id"`
	Status   string `json:"status"`
	VoidedAt string `json:"voided_at"`
}

type StylistSaleRow struct {
	SaleID        string `json:"sale_id"`
	ClientID      string `json:"client_id"`
	PaymentMethod string `json:"payment_method"`
	SubtotalCents int64  `json:"subtotal_cents"`
	TipCents      int64  `json:"tip_cents"`
	TotalCents    int64  `json:"total_cents"`
	CreatedAt     string `json:"created_at"`
}

type ServiceBreakdownEntry struct {
	ServiceID    string `json:"service_id"`
	Name         string `json:"name"`
	Count        int64  `json:"count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type StylistSalesReport struct {
	StylistID        string                  `json:"stylist_id"`
	StylistName      string                  `json:"stylist_name"`
	From             string                  `json:"from"`
	To               string                  `json:"to"`
	Sales            int64                   `json:"sales"`
	RevenueCents     int64                   `json:"revenue_cents"`
	TipCents         int64                   `json:"tip_cents"`
	Rows             []StylistSaleRow        `json:"rows"`
	ServiceBreakdown []ServiceBreakdownEntry `json:"service_breakdown"`
}

type TaxReport struct {
	From                string `json:"from"`
	To                  string `json:"to"`
	Sales               int64  `json:"sales"`
	ProductTaxableCents int64  `json:"product_taxable_cents"`
	LuxuryTaxableCents  int64  `json:"luxury_taxable_cents"`
	TaxCollectedCents   int64  `json:"tax_collected_cents"`
	TipTotalCents       int64  `json:"tip_total_cents"`
}

type VoidedSalesReport struct {
	From             string `json:"from"`
	To               string `json:"to"`
	Count            int64  `json:"count"`
	VoidedTotalCents int64  `json:"voided_total_cents"`
	Sales            []Sale `json:"sales"`
}

type ClientSalesResponse struct {
	ClientID string `json:"client_id"`
	Sales    []Sale `json:"sales"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

type StaffCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type StaffUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

type AuditLog struct {
	ID            string    `json:"id"`
	ActorUsername string    `json:"actor_username"`
	ActorRole     string    `json:"actor_role"`
	Action        string    `json:"action"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Detail        string    `json:"detail"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	PaymentCash       = "Cash"
	PaymentCreditCard = "Credit Card"
	PaymentDebitCard  = "Debit Card"
	PaymentCheck      = "Check"
)

const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

const (
	LineCategoryService       = "service"
	LineCategoryLuxuryService = "luxury_service"
	LineCategoryProduct       = "product"
)

const (
	RoleManager   = "manager"
	RoleFrontDesk = "frontdesk"
)
