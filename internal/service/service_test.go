package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salonpos/backend/internal/cache"
	"salonpos/backend/internal/domain"
	"salonpos/backend/internal/store"
	"salonpos/backend/internal/store/memory"
)

func newTestService() *Service {
	repo := memory.NewSeeded()
	return New(repo, cache.NoopReportCache{}, 5*time.Second, 0.08)
}

func frontDeskCtx() context.Context {
	return WithActor(context.Background(), domain.Actor{
		Username: "frontdesk",
		Role:     domain.RoleFrontDesk,
	})
}

func managerCtx() context.Context {
	return WithActor(context.Background(), domain.Actor{
		Username: "manager",
		Role:     domain.RoleManager,
	})
}

func TestCompleteSaleMixedTicket(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	resp, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:  "cli-seed-01",
		StylistID: "sty-seed-01",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-01", Qty: 1},
		},
		ProductLines: []domain.ProductLine{
			{SKU: "SKU-SHAMPOO-01", Qty: 1},
		},
		TipCents:      500,
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("complete sale failed: %v", err)
	}

	if resp.SubtotalCents != 5500 {
		t.Fatalf("expected subtotal 5500, got %d", resp.SubtotalCents)
	}
	if resp.TaxCents != 200 {
		t.Fatalf("expected tax 200 (8%% of shampoo only), got %d", resp.TaxCents)
	}
	if resp.TipCents != 500 {
		t.Fatalf("expected tip 500, got %d", resp.TipCents)
	}
	if resp.TotalCents != 6200 {
		t.Fatalf("expected total 6200, got %d", resp.TotalCents)
	}
	if resp.Status != domain.SaleStatusCompleted {
		t.Fatalf("expected completed status, got %s", resp.Status)
	}
	if resp.ItemCount != 2 {
		t.Fatalf("expected 2 items, got %d", resp.ItemCount)
	}

	items, err := svc.ListInventoryItems(ctx)
	if err != nil {
		t.Fatalf("list inventory failed: %v", err)
	}
	for _, item := range items {
		if item.SKU == "SKU-SHAMPOO-01" && item.Quantity != 29 {
			t.Fatalf("expected shampoo quantity 29 after sale, got %d", item.Quantity)
		}
	}
}

func TestCompleteSaleLuxuryServiceTaxed(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CompleteSale(frontDeskCtx(), domain.CompleteSaleRequest{
		ClientID:  "cli-seed-02",
		StylistID: "sty-seed-02",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-04", Qty: 1},
		},
		PaymentMethod: domain.PaymentCreditCard,
	})
	if err != nil {
		t.Fatalf("complete sale failed: %v", err)
	}

	if resp.SubtotalCents != 8500 {
		t.Fatalf("expected subtotal 8500, got %d", resp.SubtotalCents)
	}
	if resp.TaxCents != 680 {
		t.Fatalf("expected tax 680 on luxury service, got %d", resp.TaxCents)
	}
	if resp.TotalCents != 9180 {
		t.Fatalf("expected total 9180, got %d", resp.TotalCents)
	}
}

func TestCompleteSaleRegularServiceUntaxed(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CompleteSale(frontDeskCtx(), domain.CompleteSaleRequest{
		ClientID:  "cli-seed-01",
		StylistID: "sty-seed-01",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-02", Qty: 1},
			{ServiceID: "svc-seed-03", Qty: 1},
		},
		PaymentMethod: domain.PaymentCheck,
	})
	if err != nil {
		t.Fatalf("complete sale failed: %v", err)
	}
	if resp.TaxCents != 0 {
		t.Fatalf("expected no tax on regular services, got %d", resp.TaxCents)
	}
	if resp.TotalCents != 14000 {
		t.Fatalf("expected total 14000, got %d", resp.TotalCents)
	}
}

func TestCompleteSaleValidation(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	_, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-01",
		StylistID:     "sty-seed-01",
		PaymentMethod: "Bitcoin",
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-01", Qty: 1}},
	})
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected invalid sale for unsupported payment method, got %v", err)
	}

	_, err = svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-01",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
	})
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected invalid sale for empty ticket, got %v", err)
	}

	_, err = svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-01",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
		TipCents:      -100,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-01", Qty: 1}},
	})
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected invalid sale for negative tip, got %v", err)
	}

	_, err = svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-missing",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-01", Qty: 1}},
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for unknown client, got %v", err)
	}
}

func TestCompleteSaleInsufficientStockLeavesInventoryUntouched(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	// SKU-DEVELOPER-01 is seeded with 8 units.
	_, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:  "cli-seed-01",
		StylistID: "sty-seed-01",
		ProductLines: []domain.ProductLine{
			{SKU: "SKU-DEVELOPER-01", Qty: 9},
		},
		PaymentMethod: domain.PaymentCash,
	})
	if !errors.Is(err, store.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}

	items, err := svc.ListInventoryItems(ctx)
	if err != nil {
		t.Fatalf("list inventory failed: %v", err)
	}
	for _, item := range items {
		if item.SKU == "SKU-DEVELOPER-01" && item.Quantity != 8 {
			t.Fatalf("expected quantity unchanged at 8, got %d", item.Quantity)
		}
	}
}

func TestCompleteSaleInactiveStylistRejected(t *testing.T) {
	svc := newTestService()

	inactive := false
	_, err := svc.UpdateStylist(managerCtx(), "sty-seed-02", domain.StylistUpdateRequest{Active: &inactive})
	if err != nil {
		t.Fatalf("deactivate stylist failed: %v", err)
	}

	_, err = svc.CompleteSale(frontDeskCtx(), domain.CompleteSaleRequest{
		ClientID:      "cli-seed-01",
		StylistID:     "sty-seed-02",
		PaymentMethod: domain.PaymentCash,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-01", Qty: 1}},
	})
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected invalid sale for inactive stylist, got %v", err)
	}
}

func TestConcurrentSaleOfLastUnit(t *testing.T) {
	svc := newTestService()
	mgr := managerCtx()

	// Draw SKU-SERUM-01 down to a single unit.
	adjusted, err := svc.AdjustInventory(mgr, domain.InventoryAdjustRequest{
		SKU:    "SKU-SERUM-01",
		Delta:  -11,
		Reason: "shrinkage count",
	})
	if err != nil {
		t.Fatalf("adjust inventory failed: %v", err)
	}
	if adjusted.Quantity != 1 {
		t.Fatalf("expected quantity 1 after adjustment, got %d", adjusted.Quantity)
	}

	ctx := frontDeskCtx()
	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, saleErr := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
				ClientID:      "cli-seed-01",
				StylistID:     "sty-seed-01",
				PaymentMethod: domain.PaymentCash,
				ProductLines:  []domain.ProductLine{{SKU: "SKU-SERUM-01", Qty: 1}},
			})
			results <- saleErr
		}()
	}
	wg.Wait()
	close(results)

	succeeded, failed := 0, 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if errors.Is(err, store.ErrInsufficientStock) {
			failed++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || failed != 1 {
		t.Fatalf("expected exactly one sale of the last unit, got %d success / %d insufficient", succeeded, failed)
	}
}

func TestVoidSaleRestoresProductStock(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	resp, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:  "cli-seed-03",
		StylistID: "sty-seed-01",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-01", Qty: 1},
		},
		ProductLines: []domain.ProductLine{
			{SKU: "SKU-SPRAY-01", Qty: 2},
		},
		PaymentMethod: domain.PaymentDebitCard,
	})
	if err != nil {
		t.Fatalf("complete sale failed: %v", err)
	}

	voidResp, err := svc.VoidSale(managerCtx(), resp.SaleID, domain.VoidSaleRequest{Reason: "client dispute"})
	if err != nil {
		t.Fatalf("void failed: %v", err)
	}
	if voidResp.Status != domain.SaleStatusVoided {
		t.Fatalf("expected voided status, got %s", voidResp.Status)
	}

	items, err := svc.ListInventoryItems(ctx)
	if err != nil {
		t.Fatalf("list inventory failed: %v", err)
	}
	for _, item := range items {
		if item.SKU == "SKU-SPRAY-01" && item.Quantity != 18 {
			t.Fatalf("expected spray quantity restored to 18, got %d", item.Quantity)
		}
	}

	_, err = svc.VoidSale(managerCtx(), resp.SaleID, domain.VoidSaleRequest{Reason: "again"})
	if !errors.Is(err, store.ErrAlreadyVoided) {
		t.Fatalf("expected already voided, got %v", err)
	}
}

func TestVoidSaleRequiresManager(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	resp, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-01",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-01", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("complete sale failed: %v", err)
	}

	if _, err := svc.VoidSale(ctx, resp.SaleID, domain.VoidSaleRequest{Reason: "oops"}); err == nil {
		t.Fatalf("expected front desk void to fail without manager role")
	}
}

func TestAdjustInventoryRequiresManagerAndReason(t *testing.T) {
	svc := newTestService()

	_, err := svc.AdjustInventory(frontDeskCtx(), domain.InventoryAdjustRequest{
		SKU: "SKU-SPRAY-01", Delta: 5,
	})
	if err == nil {
		t.Fatalf("expected front desk adjustment to fail")
	}

	_, err = svc.AdjustInventory(managerCtx(), domain.InventoryAdjustRequest{
		SKU: "SKU-SPRAY-01", Delta: -3,
	})
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected negative adjustment without reason to fail, got %v", err)
	}

	resp, err := svc.AdjustInventory(managerCtx(), domain.InventoryAdjustRequest{
		SKU: "SKU-SPRAY-01", Delta: -3, Reason: "color bar usage", BackBar: true,
	})
	if err != nil {
		t.Fatalf("back-bar adjustment failed: %v", err)
	}
	if resp.Quantity != 15 {
		t.Fatalf("expected quantity 15, got %d", resp.Quantity)
	}
}

func TestLowStockUsesReorderLevel(t *testing.T) {
	svc := newTestService()
	mgr := managerCtx()

	// SKU-SERUM-01 starts at 12 on hand; draw it below its reorder level.
	if _, err := svc.AdjustInventory(mgr, domain.InventoryAdjustRequest{
		SKU: "SKU-SERUM-01", Delta: -8, Reason: "damaged case",
	}); err != nil {
		t.Fatalf("adjust inventory failed: %v", err)
	}

	resp, err := svc.ListLowStockItems(mgr)
	if err != nil {
		t.Fatalf("low stock failed: %v", err)
	}

	found := false
	for _, item := range resp.Items {
		if item.SKU == "SKU-SERUM-01" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected serum to be flagged low stock")
	}
}

func TestStylistSalesReportExcludesVoided(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	first, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-01",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
		TipCents:      400,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-01", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("first sale failed: %v", err)
	}

	second, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-02",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-02", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("second sale failed: %v", err)
	}

	if _, err := svc.VoidSale(managerCtx(), second.SaleID, domain.VoidSaleRequest{Reason: "redo"}); err != nil {
		t.Fatalf("void failed: %v", err)
	}

	report, err := svc.GetStylistSalesReport(ctx, "sty-seed-01", "", "")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if report.Sales != 1 {
		t.Fatalf("expected 1 completed sale in report, got %d", report.Sales)
	}
	if report.RevenueCents != first.TotalCents {
		t.Fatalf("expected revenue %d, got %d", first.TotalCents, report.RevenueCents)
	}
	if report.TipCents != 400 {
		t.Fatalf("expected tips 400, got %d", report.TipCents)
	}
	if len(report.ServiceBreakdown) != 1 || report.ServiceBreakdown[0].ServiceID != "svc-seed-01" {
		t.Fatalf("expected haircut in service breakdown, got %+v", report.ServiceBreakdown)
	}
}

func TestTaxReportSeparatesBases(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	_, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-01",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
		TipCents:      1000,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-04", Qty: 1}},
		ProductLines:  []domain.ProductLine{{SKU: "SKU-SHAMPOO-01", Qty: 2}},
	})
	if err != nil {
		t.Fatalf("sale failed: %v", err)
	}

	report, err := svc.GetTaxReport(ctx, "", "")
	if err != nil {
		t.Fatalf("tax report failed: %v", err)
	}
	if report.Sales != 1 {
		t.Fatalf("expected 1 sale, got %d", report.Sales)
	}
	if report.ProductTaxableCents != 5000 {
		t.Fatalf("expected product taxable 5000, got %d", report.ProductTaxableCents)
	}
	if report.LuxuryTaxableCents != 8500 {
		t.Fatalf("expected luxury taxable 8500, got %d", report.LuxuryTaxableCents)
	}
	// 8% of 13500 taxable cents.
	if report.TaxCollectedCents != 1080 {
		t.Fatalf("expected tax collected 1080, got %d", report.TaxCollectedCents)
	}
	if report.TipTotalCents != 1000 {
		t.Fatalf("expected tips 1000, got %d", report.TipTotalCents)
	}
}

func TestVoidedSalesReport(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	resp, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-03",
		StylistID:     "sty-seed-02",
		PaymentMethod: domain.PaymentCash,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-05", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("sale failed: %v", err)
	}
	if _, err := svc.VoidSale(managerCtx(), resp.SaleID, domain.VoidSaleRequest{Reason: "pricing error"}); err != nil {
		t.Fatalf("void failed: %v", err)
	}

	report, err := svc.GetVoidedSalesReport(ctx, "", "")
	if err != nil {
		t.Fatalf("voided sales report failed: %v", err)
	}
	if report.Count != 1 {
		t.Fatalf("expected 1 voided sale, got %d", report.Count)
	}
	if report.VoidedTotalCents != resp.TotalCents {
		t.Fatalf("expected voided total %d, got %d", resp.TotalCents, report.VoidedTotalCents)
	}
	if len(report.Sales) != 1 || report.Sales[0].VoidReason != "pricing error" {
		t.Fatalf("expected void reason recorded, got %+v", report.Sales)
	}
}

func TestListClientSales(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	resp, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		ClientID:      "cli-seed-02",
		StylistID:     "sty-seed-01",
		PaymentMethod: domain.PaymentCash,
		ServiceLines:  []domain.ServiceLine{{ServiceID: "svc-seed-01", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("sale failed: %v", err)
	}

	history, err := svc.ListClientSales(ctx, "cli-seed-02", "", "")
	if err != nil {
		t.Fatalf("client sales failed: %v", err)
	}
	if len(history.Sales) != 1 || history.Sales[0].ID != resp.SaleID {
		t.Fatalf("expected sale %s in client history, got %+v", resp.SaleID, history.Sales)
	}
}

func TestCatalogMutationsRequireManager(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	if _, err := svc.CreateStylist(ctx, domain.StylistCreateRequest{Name: "New Stylist"}); err == nil {
		t.Fatalf("expected front desk stylist create to fail")
	}
	if _, err := svc.CreateService(ctx, domain.ServiceCreateRequest{Name: "Perm", PriceCents: 7500}); err == nil {
		t.Fatalf("expected front desk service create to fail")
	}
	if _, err := svc.CreateInventoryItem(ctx, domain.InventoryItemCreateRequest{
		SKU: "SKU-MASK-01", Name: "Repair Mask", PriceCents: 3200, InitialQty: 10,
	}); err == nil {
		t.Fatalf("expected front desk inventory create to fail")
	}
}

func TestAuditLogsRecordActions(t *testing.T) {
	svc := newTestService()
	mgr := managerCtx()

	if _, err := svc.CreateService(mgr, domain.ServiceCreateRequest{
		Name: "Deep Conditioning", PriceCents: 5500, Luxury: true,
	}); err != nil {
		t.Fatalf("create service failed: %v", err)
	}

	logs, err := svc.ListAuditLogs(mgr, "", 50)
	if err != nil {
		t.Fatalf("list audit logs failed: %v", err)
	}

	found := false
	for _, entry := range logs {
		if entry.Action == "service_create" && entry.ActorUsername == "manager" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected service_create audit entry")
	}
}

func TestUpdateClientPartialFields(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	phone := "555-0142"
	updated, err := svc.UpdateClient(ctx, "cli-seed-01", domain.ClientUpdateRequest{Phone: &phone})
	if err != nil {
		t.Fatalf("update client failed: %v", err)
	}
	if updated.Phone != "555-0142" {
		t.Fatalf("expected phone updated, got %s", updated.Phone)
	}
	if updated.FirstName == "" {
		t.Fatalf("expected untouched fields preserved")
	}
}

func centsPtr(v int64) *int64 {
	return &v
}

func TestCompleteSalePriceOverrideReplacesCatalogPrice(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CompleteSale(frontDeskCtx(), domain.CompleteSaleRequest{
		ClientID:  "cli-seed-01",
		StylistID: "sty-seed-01",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-01", Qty: 1, UnitPriceCents: centsPtr(2500)},
		},
		ProductLines: []domain.ProductLine{
			{SKU: "SKU-SHAMPOO-01", Qty: 1, UnitPriceCents: centsPtr(2000)},
		},
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("complete sale failed: %v", err)
	}

	if resp.SubtotalCents != 4500 {
		t.Fatalf("expected subtotal 4500 with overridden prices, got %d", resp.SubtotalCents)
	}
	if resp.TaxCents != 160 {
		t.Fatalf("expected tax 160 (8%% of overridden product price), got %d", resp.TaxCents)
	}
	if resp.TotalCents != 4660 {
		t.Fatalf("expected total 4660, got %d", resp.TotalCents)
	}
	for _, item := range resp.Items {
		switch {
		case item.ServiceID == "svc-seed-01" && item.UnitPriceCents != 2500:
			t.Fatalf("expected service line to record overridden price 2500, got %d", item.UnitPriceCents)
		case item.SKU == "SKU-SHAMPOO-01" && item.UnitPriceCents != 2000:
			t.Fatalf("expected product line to record overridden price 2000, got %d", item.UnitPriceCents)
		}
	}
}

func TestCompleteSaleOverriddenLineKeptSeparate(t *testing.T) {
	svc := newTestService()

	resp, err := svc.CompleteSale(frontDeskCtx(), domain.CompleteSaleRequest{
		ClientID:  "cli-seed-01",
		StylistID: "sty-seed-01",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-01", Qty: 1},
			{ServiceID: "svc-seed-01", Qty: 1, UnitPriceCents: centsPtr(1500)},
		},
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("complete sale failed: %v", err)
	}

	if resp.ItemCount != 2 {
		t.Fatalf("expected discounted line to stay separate, got %d items", resp.ItemCount)
	}
	if resp.SubtotalCents != 4500 {
		t.Fatalf("expected subtotal 4500 (3000 catalog + 1500 adjusted), got %d", resp.SubtotalCents)
	}
}

func TestCompleteSaleNegativePriceOverrideRejected(t *testing.T) {
	svc := newTestService()

	_, err := svc.CompleteSale(frontDeskCtx(), domain.CompleteSaleRequest{
		ClientID:  "cli-seed-01",
		StylistID: "sty-seed-01",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-01", Qty: 1, UnitPriceCents: centsPtr(-100)},
		},
		PaymentMethod: domain.PaymentCash,
	})
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected invalid sale for negative price override, got %v", err)
	}
}

func TestCompleteSaleWalkInClient(t *testing.T) {
	svc := newTestService()
	ctx := frontDeskCtx()

	resp, err := svc.CompleteSale(ctx, domain.CompleteSaleRequest{
		StylistID: "sty-seed-01",
		ServiceLines: []domain.ServiceLine{
			{ServiceID: "svc-seed-02", Qty: 1},
		},
		ProductLines: []domain.ProductLine{
			{SKU: "SKU-SPRAY-01", Qty: 1},
		},
		PaymentMethod: domain.PaymentCash,
	})
	if err != nil {
		t.Fatalf("walk-in sale failed: %v", err)
	}
	if resp.TotalCents != 6444 {
		t.Fatalf("expected total 6444, got %d", resp.TotalCents)
	}

	sale, err := svc.GetSale(ctx, resp.SaleID)
	if err != nil {
		t.Fatalf("get sale failed: %v", err)
	}
	if sale.ClientID != "" {
		t.Fatalf("expected empty client id on walk-in sale, got %s", sale.ClientID)
	}

	items, err := svc.ListInventoryItems(ctx)
	if err != nil {
		t.Fatalf("list inventory failed: %v", err)
	}
	for _, item := range items {
		if item.SKU == "SKU-SPRAY-01" && item.Quantity != 17 {
			t.Fatalf("expected spray quantity 17 after walk-in sale, got %d", item.Quantity)
		}
	}
}

func TestAdjustInventoryByItemID(t *testing.T) {
	svc := newTestService()
	ctx := managerCtx()

	resp, err := svc.AdjustInventory(ctx, domain.InventoryAdjustRequest{
		ItemID: "inv-seed-01",
		Delta:  5,
	})
	if err != nil {
		t.Fatalf("adjust by item id failed: %v", err)
	}
	if resp.SKU != "SKU-SHAMPOO-01" {
		t.Fatalf("expected item id to resolve to SKU-SHAMPOO-01, got %s", resp.SKU)
	}
	if resp.Quantity != 35 {
		t.Fatalf("expected quantity 35, got %d", resp.Quantity)
	}

	_, err = svc.AdjustInventory(ctx, domain.InventoryAdjustRequest{
		ItemID: "inv-missing",
		Delta:  5,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found for unknown item id, got %v", err)
	}

	_, err = svc.AdjustInventory(ctx, domain.InventoryAdjustRequest{Delta: 5})
	if !errors.Is(err, store.ErrInvalidSale) {
		t.Fatalf("expected invalid request without sku or item id, got %v", err)
	}
}
