package connector

import (
	"context"

	"github.com/Konsultn-Engineering/enquery/database"
	"github.com/Konsultn-Engineering/enquery/dialect"
)

type Connection interface {
	Database() database.Database
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() ConnectionStats
	Close() error
}

type Connector interface {
	Connect(ctx context.Context) (Connection, error)
	Close() error
}
