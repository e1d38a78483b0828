// Package metrics computes dashboard analytics from raw page views.
// Nothing here is precomputed or cached: every request re-reads the
// window and re-derives the bundle, so the dashboard is always a pure
// function of the event table.
package metrics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"log/slog"

	"github.com/karloscodes/cartridge"
	"gorm.io/gorm"

	"complymetrics/internal/config"
	"complymetrics/internal/events"
	"complymetrics/internal/pkg/async"
)

const unknownValue = "unknown"

// Sub-query names, also used as the fixed error-reporting order.
const (
	taskTotalViews = "total_views"
	taskTopPages   = "top_pages"
	taskDevices    = "device_distribution"
	taskBrowsers   = "browser_stats"
	taskOS         = "os_stats"
	taskReferrers  = "referrer_sources"
	taskGeographic = "geographic_data"
	taskTimeline   = "timeline_data"
)

var taskOrder = []string{
	taskTotalViews, taskTopPages, taskDevices, taskBrowsers,
	taskOS, taskReferrers, taskGeographic, taskTimeline,
}

type clientKey struct {
	Name    string
	Version string
}

type geoKey struct {
	Country string
	City    string
}

type clientRow struct {
	Name    *string
	Version *string
}

type geoRow struct {
	Country string
	City    *string
}

type Aggregator struct {
	dbManager cartridge.DBManager
	logger    *slog.Logger
}

func NewAggregator(dbManager cartridge.DBManager, logger *slog.Logger) *Aggregator {
	return &Aggregator{dbManager: dbManager, logger: logger}
}

// Aggregate computes the metrics bundle for [now - days, now]. The
// eight scoped reads run concurrently and are not required to observe
// a single snapshot; concurrent inserts may skew individual counts by
// a few events. Any sub-query failure fails the whole bundle.
func (a *Aggregator) Aggregate(ctx context.Context, days int) (*Bundle, error) {
	if days <= 0 {
		return nil, fmt.Errorf("invalid metrics window: %d days", days)
	}

	timeout := time.Duration(config.GetConfig().GetMetricsQueryTimeout()) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	since := time.Now().UTC().AddDate(0, 0, -days)
	db := a.dbManager.GetConnection()

	// Each task gets its own session; multi-row reads are ordered by id
	// so tie-breaking is reproducible for a fixed table state.
	scoped := func(taskCtx context.Context) *gorm.DB {
		return db.WithContext(taskCtx).
			Model(&events.PageView{}).
			Where("timestamp >= ?", since)
	}

	tasks := []async.Task{
		{Name: taskTotalViews, Execute: func(taskCtx context.Context) (interface{}, error) {
			var total int64
			err := scoped(taskCtx).Count(&total).Error
			return total, err
		}},
		{Name: taskTopPages, Execute: func(taskCtx context.Context) (interface{}, error) {
			var paths []string
			err := scoped(taskCtx).Order("id").Pluck("path", &paths).Error
			return paths, err
		}},
		{Name: taskDevices, Execute: func(taskCtx context.Context) (interface{}, error) {
			var deviceTypes []string
			err := scoped(taskCtx).Order("id").Pluck("device_type", &deviceTypes).Error
			return deviceTypes, err
		}},
		{Name: taskBrowsers, Execute: func(taskCtx context.Context) (interface{}, error) {
			var rows []clientRow
			err := scoped(taskCtx).
				Select("browser_name AS name, browser_version AS version").
				Order("id").Scan(&rows).Error
			return rows, err
		}},
		{Name: taskOS, Execute: func(taskCtx context.Context) (interface{}, error) {
			var rows []clientRow
			err := scoped(taskCtx).
				Select("os_name AS name, os_version AS version").
				Order("id").Scan(&rows).Error
			return rows, err
		}},
		{Name: taskReferrers, Execute: func(taskCtx context.Context) (interface{}, error) {
			var sources []string
			err := scoped(taskCtx).Order("id").Pluck("referrer_source", &sources).Error
			return sources, err
		}},
		{Name: taskGeographic, Execute: func(taskCtx context.Context) (interface{}, error) {
			var rows []geoRow
			err := scoped(taskCtx).
				Select("country, city").
				Where("country IS NOT NULL").
				Order("id").Scan(&rows).Error
			return rows, err
		}},
		{Name: taskTimeline, Execute: func(taskCtx context.Context) (interface{}, error) {
			var timestamps []time.Time
			err := scoped(taskCtx).Order("id").Pluck("timestamp", &timestamps).Error
			return timestamps, err
		}},
	}

	results := async.Run(ctx, len(tasks), tasks)

	for _, name := range taskOrder {
		if result := results[name]; result.Err != nil {
			a.logger.Error("Metrics sub-query failed",
				slog.String("query", name),
				slog.Int("days", days),
				slog.Any("error", result.Err))
			return nil, fmt.Errorf("%s query failed: %w", name, result.Err)
		}
	}

	bundle := emptyBundle()
	bundle.TotalViews = results[taskTotalViews].Data.(int64)

	for _, entry := range rankByCount(results[taskTopPages].Data.([]string), 10) {
		bundle.TopPages = append(bundle.TopPages, PageEntry{Path: entry.Key, Views: entry.Count})
	}

	for _, entry := range rankByCount(results[taskDevices].Data.([]string), 0) {
		bundle.DeviceDistribution = append(bundle.DeviceDistribution, DeviceEntry{DeviceType: entry.Key, Count: entry.Count})
	}

	bundle.BrowserStats = rankClients(results[taskBrowsers].Data.([]clientRow))
	bundle.OSStats = rankClients(results[taskOS].Data.([]clientRow))

	referrerSources := results[taskReferrers].Data.([]string)
	for i, source := range referrerSources {
		if source == "" {
			referrerSources[i] = events.SourceDirect
		}
	}
	for _, entry := range rankByCount(referrerSources, 0) {
		bundle.ReferrerSources = append(bundle.ReferrerSources, ReferrerEntry{ReferrerSource: entry.Key, Count: entry.Count})
	}

	geoRows := results[taskGeographic].Data.([]geoRow)
	geoKeys := make([]geoKey, 0, len(geoRows))
	distinctCountries := make(map[string]struct{})
	for _, row := range geoRows {
		key := geoKey{Country: row.Country, City: "Unknown"}
		if row.City != nil && *row.City != "" {
			key.City = *row.City
		}
		geoKeys = append(geoKeys, key)
		distinctCountries[row.Country] = struct{}{}
	}
	for _, entry := range rankByCount(geoKeys, 20) {
		bundle.GeographicData = append(bundle.GeographicData, GeoEntry{Country: entry.Key.Country, City: entry.Key.City, Views: entry.Count})
	}
	bundle.UniqueCountries = len(distinctCountries)

	timestamps := results[taskTimeline].Data.([]time.Time)
	dates := make([]string, 0, len(timestamps))
	for _, timestamp := range timestamps {
		dates = append(dates, timestamp.UTC().Format("2006-01-02"))
	}
	for _, entry := range rankByCount(dates, 0) {
		bundle.TimelineData = append(bundle.TimelineData, TimelineEntry{Date: entry.Key, Views: entry.Count})
	}
	sort.Slice(bundle.TimelineData, func(i, j int) bool {
		return bundle.TimelineData[i].Date < bundle.TimelineData[j].Date
	})

	return bundle, nil
}

// rankClients builds a browser or OS leaderboard. Rows whose event had
// no parsed name or version land in the "unknown" bucket instead of
// being dropped.
func rankClients(rows []clientRow) []ClientEntry {
	keys := make([]clientKey, 0, len(rows))
	for _, row := range rows {
		key := clientKey{Name: unknownValue, Version: unknownValue}
		if row.Name != nil && *row.Name != "" {
			key.Name = *row.Name
		}
		if row.Version != nil && *row.Version != "" {
			key.Version = *row.Version
		}
		keys = append(keys, key)
	}

	entries := make([]ClientEntry, 0, 10)
	for _, entry := range rankByCount(keys, 10) {
		entries = append(entries, ClientEntry{Name: entry.Key.Name, Version: entry.Key.Version, Count: entry.Count})
	}
	return entries
}
