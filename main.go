package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"flatbot/internal/adapters/discord"
	"flatbot/internal/adapters/maps"
	"flatbot/internal/adapters/storage"
	"flatbot/internal/adapters/trademe"
	"flatbot/internal/core/domain"
	"flatbot/internal/core/domain/command"
	"flatbot/internal/core/port"
	"flatbot/internal/core/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const registrationBackoff = 10 * time.Second

func main() {
	log.Info().Msg("starting flatbot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var roster domain.Roster
	if err := viper.UnmarshalKey("flat.flatmates", &roster); err != nil {
		log.Fatal().Err(err).Msg("could not load flatmate roster from config")
	}
	if len(roster) == 0 {
		log.Fatal().Msg("flatmate roster is empty")
	}

	store, err := storage.Open(viper.GetString("bot.database_path"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed opening bill store")
	}
	defer store.Close()

	geocoder := maps.NewGoogle(
		viper.GetString("maps.endpoint"),
		viper.GetString("maps.api_key"),
		viper.GetStringSlice("maps.destinations"))

	listings := trademe.NewClient(viper.GetString("trademe.base_url"))

	registry := &command.Registry{}

	mustRegister(registry, domain.KindCommand, command.NewPayHandler(store, roster))
	mustRegister(registry, domain.KindComponent, command.NewPaidHandler(store, roster))
	mustRegister(registry, domain.KindCommand, command.NewDistanceHandler(geocoder))
	mustRegister(registry, domain.KindCommand, command.NewShopHandler(listings))
	mustRegister(registry, domain.KindAutocomplete, command.NewShopAutocompleteHandler(listings))
	mustRegister(registry, domain.KindCommand, command.NewSayHandler(roster))
	mustRegister(registry, domain.KindCommand, command.NewPingHandler())

	closeTimeout, err := time.ParseDuration(viper.GetString("discord.close_timeout"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid close timeout in config")
	}

	gateway, err := discord.NewGateway(viper.GetString("discord.bot_token"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing discord gateway")
	}

	supervisor := service.NewSupervisor(registry, gateway, gateway, registrationBackoff, closeTimeout)
	reactor := service.NewListingReactor(listings, geocoder, gateway)

	gateway.Attach(ctx, supervisor, reactor)

	if err := gateway.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed connecting to discord")
	}

	log.Info().Msg("bot listening")
	<-ctx.Done()

	log.Info().Msg("shutting down...")
	supervisor.Shutdown()

	if err := gateway.Close(); err != nil {
		log.Warn().Err(err).Msg("failed closing discord gateway")
	}
}

func mustRegister(registry *command.Registry, kind domain.InteractionKind, handler port.Handler) {
	if err := registry.Register(kind, handler); err != nil {
		log.Fatal().Err(err).Msg("failed registering command handler")
	}
}
