package cache

import (
	"context"
	"time"

	"salonpos/backend/internal/domain"
)

type ReportCache interface {
	Get(ctx context.Context, key string) (*domain.StylistSalesReport, bool, error)
	Set(ctx context.Context, key string, value *domain.StylistSalesReport, ttl time.Duration) error
}

type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) (*domain.StylistSalesReport, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ *domain.StylistSalesReport, _ time.Duration) error {
	return nil
}
