package connector

import (
	"context"

	"github.com/Konsultn-Engineering/enquery/dialect"
)

type Provider interface {
	Connect(ctx context.Context, config Config) (Connection, error)
	Dialect() dialect.Dialect
}
