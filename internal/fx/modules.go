package fx

import (
	"linewar-tracker/internal/api"
	"linewar-tracker/internal/config"
	"linewar-tracker/internal/database"
	"linewar-tracker/internal/logger"
	"linewar-tracker/internal/metrics"
	"linewar-tracker/internal/repository"
	"linewar-tracker/internal/resolver"
	"linewar-tracker/internal/scrape"
	"linewar-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(database.NewRunLock),
	fx.Provide(metrics.New),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewLeaderboardRepository, fx.As(new(service.LeaderboardStore))),
		fx.Annotate(repository.NewAssociationRepository, fx.As(new(service.AssociationStore))),
	),
	// api clients
	fx.Provide(
		api.NewHTTPClient,
		fx.Annotate(api.NewSession, fx.As(new(resolver.Searcher), new(service.Handshaker))),
		fx.Annotate(api.NewVanityResolver, fx.As(new(resolver.HandleResolver))),
		fx.Annotate(api.NewLeaderboardClient, fx.As(new(service.LeaderboardFetcher))),
	),
	// parsing + resolution
	fx.Provide(
		fx.Annotate(scrape.NewExtractor, fx.As(new(resolver.CandidateExtractor), new(service.LeaderboardParser))),
		fx.Annotate(resolver.New, fx.As(new(service.PlayerResolver))),
	),
	// svc
	fx.Provide(service.NewAssociationService),
	fx.Provide(service.NewScrapeService),
	fx.Provide(service.NewLookupService),
)
