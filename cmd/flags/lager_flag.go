package flags

import (
	"fmt"
	"io"
	"os"

	"code.cloudfoundry.org/lager"
	"github.com/orgacl/aclview/pkg/ioutilx"
	"github.com/orgacl/aclview/pkg/logx"
	"github.com/orgacl/aclview/pkg/logx/lagerx"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelError LogLevel = "error"
	LogLevelFatal LogLevel = "fatal"
)

// LagerFlag logs to stderr by default so that command output on stdout stays
// machine readable.
type LagerFlag struct {
	LogLevel LogLevel `long:"log-level" default:"info" choice:"debug" choice:"info" choice:"error" choice:"fatal" description:"Minimum level of logs to see."`
	LogFile  string   `long:"log-file" description:"Append logs to this file instead of stderr"`
}

func (f LagerFlag) Logger(component string) (logx.Logger, io.Closer, error) {
	var minLagerLogLevel lager.LogLevel
	switch f.LogLevel {
	case LogLevelDebug:
		minLagerLogLevel = lager.DEBUG
	case LogLevelInfo, "":
		minLagerLogLevel = lager.INFO
	case LogLevelError:
		minLagerLogLevel = lager.ERROR
	case LogLevelFatal:
		minLagerLogLevel = lager.FATAL
	default:
		panic(fmt.Sprintf("unknown log level: %s", f.LogLevel))
	}

	var (
		writer io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)

	if f.LogFile != "" {
		file, err := ioutilx.OpenLogFile(f.LogFile)
		if err != nil {
			return nil, nil, err
		}

		writer = file
		closer = file
	}

	logger := lager.NewLogger(component)

	sink := lager.NewReconfigurableSink(lager.NewWriterSink(writer, lager.DEBUG), minLagerLogLevel)
	logger.RegisterSink(sink)

	return lagerx.NewLogger(logger), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
