package mysql

import (
	"context"
	"database/sql"
	"net"
	"strconv"

	"github.com/Konsultn-Engineering/enquery/connector"
	"github.com/Konsultn-Engineering/enquery/dialect"
	driver "github.com/go-sql-driver/mysql"
)

type Provider struct {
	dialect dialect.Dialect
}

func init() {
	connector.Register("mysql", &Provider{dialect: dialect.NewMySQLDialect()})
	connector.Register("mariadb", &Provider{dialect: dialect.NewMySQLDialect()})
	connector.Register("tidb", &Provider{dialect: dialect.NewTiDBDialect()})
}

// DSN renders cfg in the go-sql-driver format.
func (p *Provider) DSN(cfg connector.Config) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	c := driver.NewConfig()
	c.User = cfg.Username
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
	c.DBName = cfg.Database
	c.ParseTime = true
	if cfg.ConnectTimeout > 0 {
		c.Timeout = cfg.ConnectTimeout
	}
	if len(cfg.Params) > 0 {
		c.Params = make(map[string]string, len(cfg.Params))
		for k, v := range cfg.Params {
			c.Params[k] = v
		}
	}
	return c.FormatDSN()
}

func (p *Provider) Connect(ctx context.Context, cfg connector.Config) (connector.Connection, error) {
	db, err := sql.Open("mysql", p.DSN(cfg))
	if err != nil {
		return nil, err
	}
	return connector.NewSQLConnection(db, p.dialect, cfg), nil
}

func (p *Provider) Dialect() dialect.Dialect {
	return p.dialect
}
