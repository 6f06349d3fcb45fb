package interop

import "github.com/sirupsen/logrus"

// Trace describes how a single test contributed to a run's score.
type Trace struct {
	TestID string
	Status Status
	Passes uint32
	Total  uint32
}

// Observer receives a Trace for every scored test. With parallel scoring
// Observe may be called from several goroutines at once.
type Observer interface {
	Observe(Trace)
}

type ObserverFunc func(Trace)

func (f ObserverFunc) Observe(t Trace) { f(t) }

type NopObserver struct{}

func (NopObserver) Observe(Trace) {}

type logObserver struct {
	logger logrus.FieldLogger
}

// LogObserver writes each trace as a debug entry on logger.
func LogObserver(logger logrus.FieldLogger) Observer {
	return &logObserver{logger: logger}
}

func (o *logObserver) Observe(t Trace) {
	o.logger.WithFields(logrus.Fields{
		"test":   t.TestID,
		"status": t.Status.String(),
		"passes": t.Passes,
		"total":  t.Total,
	}).Debug("scored test")
}
