package cmd

import (
	"fmt"
	"time"

	daemonclient "github.com/bnema/modelwatch/internal/adapters/daemon"
	"github.com/bnema/modelwatch/internal/adapters/repo/jsonfile"
	"github.com/bnema/modelwatch/internal/application"
	"github.com/bnema/modelwatch/internal/config"
	"github.com/bnema/modelwatch/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	settings config.Settings
	tracker  *application.Tracker
	clock    ports.Clock
	now      func() time.Time
}

func wireApp() (*app, error) {
	settings, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire settings: %w", err)
	}

	clock := ports.SystemClock{}

	repo, err := jsonfile.NewRepository(settings.HistoryPath, settings.Retention(), clock)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	source := daemonclient.NewClient(settings.DaemonHost, settings.DaemonPort, settings.FetchTimeout, clock)

	return &app{
		settings: settings,
		tracker:  application.NewTracker(source, repo, clock),
		clock:    clock,
		now:      time.Now,
	}, nil
}
