package main

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/cableworks/storefront-api/internal/model"
	"github.com/cableworks/storefront-api/internal/repository"
)

// seedProducts fills an empty catalog so a fresh install has something to
// sell. An already-populated catalog is left alone.
func seedProducts(ctx context.Context, repo repository.ProductRepository, log *slog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []model.Product{
		{
			Name:        "USB-C to USB-C Cable 1m",
			Description: "Durable 1 meter USB-C to USB-C cable, supports fast charging and data transfer.",
			Price:       decimal.NewFromFloat(9.99),
			Image:       "https://via.placeholder.com/150?text=USB-C+1m",
		},
		{
			Name:        "USB-C to USB-A Cable 2m",
			Description: "2 meter cable for connecting USB-C devices to USB-A ports.",
			Price:       decimal.NewFromFloat(12.99),
			Image:       "https://via.placeholder.com/150?text=USB-C+to+A+2m",
		},
		{
			Name:        "Braided USB-C Cable 1.5m",
			Description: "Braided 1.5 meter USB-C cable for extra durability.",
			Price:       decimal.NewFromFloat(14.99),
			Image:       "https://via.placeholder.com/150?text=Braided+USB-C+1.5m",
		},
	}

	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			return err
		}
	}
	log.Info("seeded products", "count", len(seed))
	return nil
}
