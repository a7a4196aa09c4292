package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/p2pmarket/base/log"
)

const (
	ddPort = 8125
	// counters buffered before a flush to the agent
	bufferMetrics = 10
)

// sink is the part of statsd.ClientInterface the bumps use
type sink interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	Timing(name string, value time.Duration, tags []string, rate float64) error
}

var (
	sinkOnce   sync.Once
	sharedSink sink
)

// getSink creates the shared client on first use, so datadog_host is read
// after the config is loaded
func getSink() sink {
	sinkOnce.Do(func() {
		sharedSink = newSink(viper.GetString("datadog_host"))
	})
	return sharedSink
}

func newSink(host string) sink {
	if host == "" {
		log.Log().Info("datadog_host not set, metrics are logged")
		return logSink{}
	}
	addr := fmt.Sprintf("%s:%d", host, ddPort)
	client, err := statsd.New(addr, statsd.WithMaxMessagesPerPayload(bufferMetrics))
	if err != nil {
		log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic("can't talk to datadog agent")
	}
	log.Log().WithField("addr", addr).Info("datadog agent connected")
	return client
}

// logSink writes metrics to the debug log
type logSink struct{}

func (logSink) Gauge(name string, value float64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric gauge")
	return nil
}

func (logSink) Count(name string, value int64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric count")
	return nil
}

func (logSink) Histogram(name string, value float64, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "val": value, "tags": tags}).Debug("metric histogram")
	return nil
}

func (logSink) Timing(name string, value time.Duration, tags []string, rate float64) error {
	log.Log().WithFields(log.Fields{"key": name, "time_ms": value.Milliseconds(), "tags": tags}).Debug("metric time")
	return nil
}
