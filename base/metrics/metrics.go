/*
Package metrics records service metrics through the datadog agent.
Naming convention of keys:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/p2pmarket/base/env"
	"github.com/x-xyz/p2pmarket/base/log"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	withPodName bool
	sampleRate  float64
}

// WithoutPodName drops the pod tag, which otherwise creates one series per pod
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// WithSampleRate sends only the given fraction (0, 1] of the bumps
func WithSampleRate(rate float64) Option {
	return func(o *opt) {
		if rate > 0 && rate <= 1 {
			o.sampleRate = rate
		}
	}
}

// New creates a metric client prefixing every key with prefix
func New(prefix string, options ...Option) Service {
	o := opt{
		withPodName: true,
		sampleRate:  1,
	}
	for _, option := range options {
		option(&o)
	}

	// an empty host tag drops the host level tags the agent would attach
	tags := []string{"host:"}
	if o.withPodName {
		tags = append(tags, "pod:"+env.PodName())
	}
	tags = append(tags,
		"env:"+viper.GetString("env_name"),
		"app:"+viper.GetString("app_name"),
	)

	return &metrics{
		prefix:     prefix,
		sampleRate: o.sampleRate,
		baseTags:   tags,
	}
}

type metrics struct {
	prefix     string
	sampleRate float64
	baseTags   []string
}

func (m *metrics) key(key string) string {
	return m.prefix + "." + key
}

// tags pairs up key value tags. An odd count panics and is counted by guard.
func (m *metrics) tags(kvs []string) []string {
	if len(kvs)%2 != 0 {
		panic("tag length needs to be multiple of 2")
	}
	res := make([]string, 0, len(m.baseTags)+len(kvs)/2)
	res = append(res, m.baseTags...)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, kvs[i]+":"+kvs[i+1])
	}
	return res
}

func (m *metrics) guard(fn, key string, tags []string) {
	if err := recover(); err != nil {
		_ = getSink().Count(fn+".panic", 1, append(m.baseTags, "tag:"+m.key(key)+"#"+strings.Join(tags, "#")), 1)
	}
}

func (m *metrics) report(fn, key string, err error) {
	if err != nil {
		log.Log().WithFields(log.Fields{"err": err, "key": m.key(key), "func": fn}).Error("Bump fail")
	}
}

// BumpAvg records a gauge, datadog averages gauges over the flush interval
func (m *metrics) BumpAvg(key string, val float64, tags ...string) {
	defer m.guard("bumpavg", key, tags)
	m.report("BumpAvg", key, getSink().Gauge(m.key(key), val, m.tags(tags), m.sampleRate))
}

func (m *metrics) BumpSum(key string, val float64, tags ...string) {
	defer m.guard("bumpsum", key, tags)
	m.report("BumpSum", key, getSink().Count(m.key(key), int64(val), m.tags(tags), m.sampleRate))
}

func (m *metrics) BumpHistogram(key string, val float64, tags ...string) {
	defer m.guard("bumphistogram", key, tags)
	m.report("BumpHistogram", key, getSink().Histogram(m.key(key), val, m.tags(tags), m.sampleRate))
}

// BumpTime starts a timer and returns a value on which End() records the
// elapsed time, e.g.
//
//	defer s.BumpTime("my.function").End()
func (m *metrics) BumpTime(key string, tags ...string) Ender {
	return &timer{m: m, key: key, tags: tags, start: time.Now()}
}

type timer struct {
	m     *metrics
	key   string
	tags  []string
	start time.Time
}

func (t *timer) End() {
	defer t.m.guard("bumptime", t.key, t.tags)
	t.m.report("BumpTime", t.key, getSink().Timing(t.m.key(t.key), time.Since(t.start), t.m.tags(t.tags), t.m.sampleRate))
}
