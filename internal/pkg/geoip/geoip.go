package geoip

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"

	"log/slog"

	"github.com/oschwald/geoip2-golang"
)

// Location is the subset of a GeoIP2 City record the analytics pipeline
// stores. CountryCode is the two-letter ISO code.
type Location struct {
	CountryCode string
	City        string
	Region      string
	Latitude    float64
	Longitude   float64
	Timezone    string
}

// Locator resolves an IP address to a location. Implementations must be
// safe for concurrent use; a nil lookup result with a nil error means
// the address could not be attributed.
type Locator interface {
	Locate(ctx context.Context, ipAddress string) (*Location, error)
	Close() error
}

// MaxMindLocator reads a GeoLite2 City database from disk. The database
// file is optional: NewMaxMindLocator returns a nil locator (not an
// error) when the file is absent, so deployments without the download
// simply record NULL geo fields.
type MaxMindLocator struct {
	mu     sync.RWMutex
	reader *geoip2.Reader
	logger *slog.Logger
	path   string
}

// NewMaxMindLocator opens the GeoLite2 City database at path.
func NewMaxMindLocator(path string, logger *slog.Logger) (*MaxMindLocator, error) {
	if path == "" {
		logger.Debug("GeoIP database path not configured - geo enrichment disabled")
		return nil, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("GeoLite2 database not found - geo enrichment disabled",
			slog.String("path", path),
			slog.String("hint", "Download from https://www.maxmind.com/en/geolite2/signup"))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat GeoLite2 database: %w", err)
	}

	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoLite2 database: %w", err)
	}

	logger.Info("GeoLite2 database initialized",
		slog.String("path", path),
		slog.String("db_type", "GeoIP2-City"))

	return &MaxMindLocator{reader: reader, logger: logger, path: path}, nil
}

// Locate resolves ipAddress against the City database. Private and
// unparseable addresses resolve to nil without error.
func (l *MaxMindLocator) Locate(ctx context.Context, ipAddress string) (*Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ip := net.ParseIP(ipAddress)
	if ip == nil || ip.IsPrivate() || ip.IsLoopback() {
		return nil, nil
	}

	l.mu.RLock()
	reader := l.reader
	l.mu.RUnlock()
	if reader == nil {
		return nil, nil
	}

	record, err := reader.City(ip)
	if err != nil {
		return nil, fmt.Errorf("city lookup failed: %w", err)
	}

	location := &Location{
		CountryCode: record.Country.IsoCode,
		City:        record.City.Names["en"],
		Latitude:    record.Location.Latitude,
		Longitude:   record.Location.Longitude,
		Timezone:    record.Location.TimeZone,
	}
	if len(record.Subdivisions) > 0 {
		location.Region = record.Subdivisions[0].Names["en"]
	}
	if location.CountryCode == "" {
		return nil, nil
	}

	return location, nil
}

// Reload reopens the database from disk. Call after downloading a
// refreshed GeoLite2 file.
func (l *MaxMindLocator) Reload() error {
	reader, err := geoip2.Open(l.path)
	if err != nil {
		return fmt.Errorf("failed to reopen GeoLite2 database: %w", err)
	}

	l.mu.Lock()
	old := l.reader
	l.reader = reader
	l.mu.Unlock()

	if old != nil {
		old.Close()
	}
	l.logger.Info("GeoLite2 database reloaded", slog.String("path", l.path))
	return nil
}

func (l *MaxMindLocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.reader == nil {
		return nil
	}
	err := l.reader.Close()
	l.reader = nil
	return err
}
