package repository

import (
	"context"

	"github.com/sandeepkv93/product-catalog-service/internal/observability"
)

func recordRepositoryOperation(ctx context.Context, entity, op, status string) {
	observability.RecordRepositoryOperation(ctx, entity, op, status)
}
