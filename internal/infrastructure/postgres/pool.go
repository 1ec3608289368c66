package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/labinventaris/pkg/config"
)

// resolveFunc devuelve la IPv4 de host.
type resolveFunc func(ctx context.Context, host string) (string, error)

// NewPool abre el pool y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	var resolve resolveFunc
	if cfg.ForceIPv4 {
		resolve = ipv4Resolver(cfg.FallbackDNS)
	}
	poolConfig, err := buildPoolConfig(ctx, cfg, resolve)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// buildPoolConfig arma la configuración del pool. Con resolve != nil el host del DSN se
// reemplaza por su IPv4 y el dial usa tcp4.
func buildPoolConfig(ctx context.Context, cfg config.DBConfig, resolve resolveFunc) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	if resolve != nil {
		dsn = withIPv4Host(ctx, dsn, resolve)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if resolve != nil {
		poolConfig.ConnConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
			var d net.Dialer
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ip, err := resolve(ctx, host)
			if err != nil {
				return d.DialContext(ctx, network, addr)
			}
			return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
		}
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	return poolConfig, nil
}

// ipv4Resolver consulta el resolver del sistema y, si no hay registro A, el de fallback
// (vacío = sin fallback).
func ipv4Resolver(fallback string) resolveFunc {
	resolvers := []*net.Resolver{net.DefaultResolver}
	if fallback != "" {
		resolvers = append(resolvers, &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, "udp", fallback)
			},
		})
	}
	return func(ctx context.Context, host string) (string, error) {
		if ip := net.ParseIP(host); ip != nil {
			if ip.To4() == nil {
				return "", fmt.Errorf("%s no es IPv4", host)
			}
			return host, nil
		}
		var lastErr error
		for _, r := range resolvers {
			ips, err := r.LookupIP(ctx, "ip4", host)
			if err != nil {
				lastErr = err
				continue
			}
			if len(ips) > 0 {
				return ips[0].String(), nil
			}
		}
		if lastErr == nil {
			lastErr = fmt.Errorf("%s sin registro A", host)
		}
		return "", lastErr
	}
}

// withIPv4Host reemplaza el host de la URL por su IPv4. Si la URL no se puede parsear o
// el host no resuelve, devuelve el DSN original.
func withIPv4Host(ctx context.Context, dsn string, resolve resolveFunc) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Hostname() == "" {
		return dsn
	}
	ip, err := resolve(ctx, u.Hostname())
	if err != nil {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}
