package sheetpos

import (
	"context"
	"fmt"
)

// SyncReport summarizes a reconciliation run.
type SyncReport struct {
	Added   int // seed items appended
	Skipped int // seed items already present by (name, volume)
}

// SyncProducts reconciles the products table against a canonical seed list:
// items whose (name, volume) key is absent are appended in one batched
// write, existing items are left alone. A fully-present seed short-circuits
// without any write.
func (s *Store) SyncProducts(ctx context.Context, seed []Product) (SyncReport, error) {
	if err := s.writable(); err != nil {
		return SyncReport{}, err
	}

	existing, err := s.Products(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("sync products: %w", err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		present[p.Key()] = struct{}{}
	}

	var missing [][]string
	report := SyncReport{}
	for _, p := range seed {
		if _, ok := present[p.Key()]; ok {
			report.Skipped++
			continue
		}
		present[p.Key()] = struct{}{} // dedupe inside the seed itself
		missing = append(missing, s.codec.encodeProduct(p))
		report.Added++
	}

	if len(missing) == 0 {
		s.log.Info("product seed already reconciled", "skipped", report.Skipped)
		return report, nil
	}

	if err := s.backend.AppendRows(ctx, s.products.fullRange(), missing); err != nil {
		return SyncReport{}, fmt.Errorf("append %d seed products: %w", len(missing), err)
	}
	s.log.Info("product seed reconciled", "added", report.Added, "skipped", report.Skipped)
	return report, nil
}
