package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"stockbot/internal/components/telemetry"
	"stockbot/internal/stockdata"

	"gopkg.in/natefinch/lumberjack.v2"
)

// session is everything a command needs that is derived from the
// persistent flags.
type session struct {
	ticker  stockdata.Ticker
	config  Config
	tel     telemetry.API
	output  telemetry.InstrumentOutput
	otel    telemetry.Telemetry
	logFile *lumberjack.Logger
}

func openLog(path string) (*lumberjack.Logger, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("log directory: %s is not a directory", dir)
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}, nil
}

func openSession(ctx context.Context) (session, error) {
	ticker, err := stockdata.ParseTicker(rootFlags.mode)
	if err != nil {
		return session{}, err
	}

	logFile, err := openLog(rootFlags.log)
	if err != nil {
		return session{}, err
	}
	telemetry.InitSlog(rootFlags.verbose, logFile)

	s := session{
		ticker:  ticker,
		tel:     telemetry.NewSlogAPI(),
		logFile: logFile,
	}

	s.config, err = readConfig(rootFlags.config)
	if err != nil {
		s.Close()
		return session{}, err
	}

	s.otel, err = telemetry.Setup(ctx, "stockbot", s.config.Telemetry)
	if err != nil {
		s.Close()
		return session{}, fmt.Errorf("setup telemetry: %w", err)
	}

	if rootFlags.dumpHttp != "" {
		output, err := telemetry.NewFilesystemOutput(rootFlags.dumpHttp)
		if err != nil {
			s.Close()
			return session{}, err
		}
		s.output = output
		slog.Info("writing http dumps", "dir", output.Dir())
	}

	slog.Info("starting", "ticker", ticker, "send", rootFlags.send)
	return s, nil
}

func (s session) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err := s.otel.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
	if s.logFile != nil {
		s.logFile.Close()
	}
}
