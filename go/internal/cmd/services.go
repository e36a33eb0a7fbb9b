package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamroll/go/internal/draft"
	"github.com/mcdev12/teamroll/go/internal/gateway"
	"github.com/mcdev12/teamroll/go/internal/outbox"
	"github.com/mcdev12/teamroll/go/internal/rosters"
	"github.com/mcdev12/teamroll/go/internal/teams"
)

type Services struct {
	Teams   *teams.Service
	Draft   *draft.Service
	Gateway *gateway.Service

	ConnectionManager *gateway.ConnectionManager
	OutboxRepo        *outbox.Repository
}

func setupServices(database *sql.DB) *Services {
	// Database layer -> Repository layer -> App layer -> Service layer
	clock := clockwork.NewRealClock()

	teamsRepo := teams.NewRepository(database)
	teamsApp := teams.NewApp(teamsRepo)
	teamsService := teams.NewService(teamsApp)

	rostersRepo := rosters.NewRepository(database)
	rostersApp := rosters.NewApp(rostersRepo)

	txRunner := draft.NewSQLTxRunner(database)
	draftApp := draft.NewApp(txRunner, rostersApp, clock)
	draftService := draft.NewService(draftApp)

	connectionManager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	gatewayService := gateway.NewService(connectionManager)

	return &Services{
		Teams:             teamsService,
		Draft:             draftService,
		Gateway:           gatewayService,
		ConnectionManager: connectionManager,
		OutboxRepo:        outbox.NewRepository(database),
	}
}
