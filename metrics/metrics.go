package metrics

import (
	"fmt"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"
)

const statsdNamespace = "skip_checkout."

// Client is a no-op until Init connects to an agent.
var Client statsd.ClientInterface = &statsd.NoOpClient{}
var runtimeGlobalTags = make([]string, 0)

// Init connects to the statsd agent at addr. An empty addr keeps metrics off.
func Init(addr string, env string) {
	if addr == "" {
		log.Info().Msg("STATSD_ADDR not set => metrics will noop")
		return
	}
	c, err := statsd.New(addr,
		statsd.WithNamespace(statsdNamespace),
		statsd.WithTags([]string{fmt.Sprintf("env:%s", env)}),
	)
	if err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("failed connecting to datadog agent => metrics will noop")
		return
	}
	Client = c
	log.Info().Str("addr", addr).Msg("successfully connected to datadog agent")
}

// Close flushes and closes the client
func Close() error {
	return Client.Close()
}

func AddGlobalTags(tags []string) {
	runtimeGlobalTags = append(runtimeGlobalTags, tags...)
}

func withGlobal(tags []string) []string {
	all := make([]string, 0, len(runtimeGlobalTags)+len(tags))
	all = append(all, runtimeGlobalTags...)
	return append(all, tags...)
}

func Incr(name string, tags []string) error {
	return Client.Incr(name, withGlobal(tags), 1.0 /* rate */)
}

func Gauge(name string, value float64, tags []string) error {
	return Client.Gauge(name, value, withGlobal(tags), 1.0 /* rate */)
}

func Distribution(name string, value float64, tags []string) error {
	return Client.Distribution(name, value, withGlobal(tags), 1.0 /* rate */)
}

func BenchmarkMethod(startTime time.Time, methodName string, tags []string) {
	elapsed := time.Since(startTime)
	metricName := fmt.Sprintf("%s.elapsed_ms", methodName)
	Distribution(metricName, float64(elapsed.Milliseconds()), tags)
}
