package sqlc

import (
	"context"
	"database/sql"
	"net"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var testIpNet = net.IPNet{IP: net.ParseIP("10.0.0.7").To4(), Mask: net.CIDRMask(32, 32)}

func newTestAnalytics(t *testing.T) (*AnalyticsManager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	return NewDbManager(New(db)).Analytics, mock
}

func TestAnalyticsIncrements(t *testing.T) {
	analytics, mock := newTestAnalytics(t)
	inet := NewInet(testIpNet)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_created)")).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, games_won_by_computer)")).
		WithArgs(inet).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_server_analytics (server_ip, computer_shots_fired)")).
		WithArgs(inet, int64(57)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := analytics.IncrementGamesCreatedCount(ctx, inet); err != nil {
		t.Fatalf("failed to increment games created: %v", err)
	}
	if err := analytics.IncrementComputerWinsCount(ctx, inet); err != nil {
		t.Fatalf("failed to increment computer wins: %v", err)
	}
	if err := analytics.AddComputerShots(ctx, inet, 57); err != nil {
		t.Fatalf("failed to add computer shots: %v", err)
	}
	// zero shots must not hit the database
	if err := analytics.AddComputerShots(ctx, inet, 0); err != nil {
		t.Fatalf("failed to add zero computer shots: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestAnalyticsGetServerStats(t *testing.T) {
	analytics, mock := newTestAnalytics(t)
	inet := NewInet(testIpNet)
	statsQuery := regexp.QuoteMeta("SELECT games_created, games_won_by_computer, computer_shots_fired FROM game_server_analytics WHERE server_ip = $1")

	mock.ExpectQuery(statsQuery).
		WithArgs(inet).
		WillReturnRows(sqlmock.NewRows([]string{"games_created", "games_won_by_computer", "computer_shots_fired"}).AddRow(3, 1, 140))
	mock.ExpectQuery(statsQuery).
		WithArgs(inet).
		WillReturnError(sql.ErrNoRows)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	stats, err := analytics.GetServerStats(ctx, inet)
	if err != nil {
		t.Fatal(err)
	}
	expected := ServerStats{GamesCreated: 3, GamesWonByComputer: 1, ComputerShotsFired: 140}
	if stats != expected {
		t.Fatalf("expected stats: %+v\tgot: %+v", expected, stats)
	}

	stats, err = analytics.GetServerStats(ctx, inet)
	if err != nil {
		t.Fatalf("no rows must not be an error: %v", err)
	}
	if stats != (ServerStats{}) {
		t.Fatalf("expected zero stats got: %+v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

func TestAnalyticsDisabled(t *testing.T) {
	analytics := NewAnalyticsManager(nil)
	if analytics.Enabled() {
		t.Fatal("analytics without querier must be disabled")
	}

	ctx := context.Background()
	inet := NewInet(testIpNet)
	if err := analytics.IncrementGamesCreatedCount(ctx, inet); err != nil {
		t.Fatal(err)
	}
	if _, err := analytics.GetServerStats(ctx, inet); err != nil {
		t.Fatal(err)
	}
}
