package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered once on the default registry, which is what
// promhttp.Handler serves.
var (
	AccountsRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecast_accounts_registered_total",
		Help: "Total number of accounts registered",
	})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	BallotsCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_ballots_cast_total",
		Help: "Ballots cast, updated or withdrawn, by kind",
	}, []string{"kind"})

	TallyBumps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forecast_tally_bumps_total",
		Help: "Counter increments applied through the bump endpoints, by category",
	}, []string{"category"})

	AwaitingResolution = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "forecast_predictions_awaiting_resolution",
		Help: "Pending predictions whose timeframe has passed",
	})
)

const (
	LoginSucceeded = "success"
	LoginFailed    = "failure"

	BallotPrediction = "prediction"
	BallotComment    = "comment"
	BallotWithdrawn  = "withdrawn"
)
