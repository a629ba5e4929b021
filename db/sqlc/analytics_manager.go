package sqlc

import (
	"context"
	"database/sql"
	"errors"
	"net"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager records per-server counters. A nil querier turns every
// call into a no-op so the game server can run without a database.
type AnalyticsManager struct {
	queries Querier
}

type ServerStats struct {
	GamesCreated       int64 `json:"games_created"`
	GamesWonByComputer int64 `json:"games_won_by_computer"`
	ComputerShotsFired int64 `json:"computer_shots_fired"`
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func NewInet(ipnet net.IPNet) pqtype.Inet {
	return pqtype.Inet{IPNet: ipnet, Valid: ipnet.IP != nil}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.AnalyticsIncrementGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) IncrementComputerWinsCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.AnalyticsIncrementComputerWinsCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) AddComputerShots(ctx context.Context, serverIpNet pqtype.Inet, shots int) error {
	if !a.Enabled() || shots == 0 {
		return nil
	}
	return a.queries.AnalyticsAddComputerShots(ctx, AnalyticsAddComputerShotsParams{
		ServerIp:           serverIpNet,
		ComputerShotsFired: int64(shots),
	})
}

// GetServerStats returns zero counters for a server with no row yet.
func (a *AnalyticsManager) GetServerStats(ctx context.Context, serverIpNet pqtype.Inet) (ServerStats, error) {
	if !a.Enabled() {
		return ServerStats{}, nil
	}

	row, err := a.queries.AnalyticsGetServerStats(ctx, serverIpNet)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ServerStats{}, nil
		}
		return ServerStats{}, err
	}

	return ServerStats{
		GamesCreated:       row.GamesCreated,
		GamesWonByComputer: row.GamesWonByComputer,
		ComputerShotsFired: row.ComputerShotsFired,
	}, nil
}
