package dashboard

import (
	"context"
	"time"
)

type Repository interface {
	PatientCounts(ctx context.Context) (total, active int, err error)
	StaffCount(ctx context.Context) (int, error)
	DeliveryPersonCount(ctx context.Context) (int, error)
	PreparationStatusCounts(ctx context.Context) (map[string]int, error)
	DeliveryStatusCounts(ctx context.Context) (map[string]int, error)
	// DeliveredSince counts deliveries completed at or after cutoff.
	DeliveredSince(ctx context.Context, cutoff time.Time) (int, error)
}
