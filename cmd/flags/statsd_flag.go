package flags

import (
	"io"
	"net"
	"strconv"
	"time"

	"github.com/cactus/go-statsd-client/statsd"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/metrics"
	"github.com/orgacl/aclview/pkg/metrics/statsdx"
)

type StatsDFlag struct {
	Hostname      string        `long:"hostname" description:"Hostname used to connect to StatsD server"`
	Port          int           `long:"port" description:"Port used to connect to StatsD server" default:"8125"`
	Prefix        string        `long:"prefix" description:"Prefix prepended to every metric name" default:"aclview"`
	FlushInterval time.Duration `long:"flush-interval" description:"How often buffered metrics are sent" default:"1s"`
}

// Statter discards metrics when no StatsD host is configured.
func (f StatsDFlag) Statter(logger logx.Logger) (metrics.Statter, io.Closer, error) {
	if f.Hostname == "" {
		return metrics.Discard, nopCloser{}, nil
	}

	addr := net.JoinHostPort(f.Hostname, strconv.Itoa(f.Port))
	client, err := statsd.NewBufferedClient(addr, f.Prefix, f.FlushInterval, 0)
	if err != nil {
		logger.Error(failedToConnectToStatsD, err, logx.Data{Key: "addr", Value: addr})
		return nil, nil, err
	}

	return statsdx.NewStatter(logger, client), client, nil
}
