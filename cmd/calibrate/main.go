package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	dbm "github.com/cometbft/cometbft-db"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"

	"github.com/CosmWasm/costmodel"
	"github.com/CosmWasm/costmodel/internal/bench"
	"github.com/CosmWasm/costmodel/types"
)

var (
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Path the TOML cost table artifact is written to",
		Value: "costmodels.toml",
	}
	dbDirFlag = cli.StringFlag{
		Name:  "db-dir",
		Usage: "Directory of the cost table database; empty skips the database artifact",
	}
	iterationsFlag = cli.UintFlag{
		Name:  "iterations",
		Usage: "Timed runs averaged into one sample",
		Value: uint(types.DefaultCalibrationConfig().Iterations),
	}
	warmupFlag = cli.UintFlag{
		Name:  "warmup",
		Usage: "Untimed runs before each measurement",
		Value: uint(types.DefaultCalibrationConfig().Warmup),
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logging",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "calibrate"
	app.Usage = "Benchmark the host's primitive operations and produce the cost model table consumed by the metering layer"
	app.Flags = []cli.Flag{outFlag, dbDirFlag, iterationsFlag, warmupFlag, verboseFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := zerolog.InfoLevel
	if c.GlobalBool(verboseFlag.Name) {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := types.DefaultCalibrationConfig()
	cfg.Iterations = uint32(c.GlobalUint(iterationsFlag.Name))
	cfg.Warmup = uint32(c.GlobalUint(warmupFlag.Name))

	calibrator := costmodel.NewCalibrator(cfg, logger)
	table, failures, err := calibrator.Run(ctx, bench.All(cfg))
	if err != nil {
		return err
	}
	for op, opErr := range failures {
		logger.Error().Err(opErr).Str("op", string(op)).Msg("operation left uncalibrated")
	}
	logger.Info().Int("calibrated", table.Len()).Int("failed", len(failures)).Msg("calibration finished")
	if table.Len() == 0 {
		return fmt.Errorf("calibration produced no usable cost models")
	}

	doc, err := costmodel.ExportTOML(table)
	if err != nil {
		return err
	}
	outPath := c.GlobalString(outFlag.Name)
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return err
	}
	logger.Info().Str("path", outPath).Msg("wrote cost table document")

	if dir := c.GlobalString(dbDirFlag.Name); dir != "" {
		db, err := dbm.NewDB("costmodels", dbm.GoLevelDBBackend, dir)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := costmodel.SaveTable(db, table); err != nil {
			return err
		}
		logger.Info().Str("dir", dir).Msg("wrote cost table database")
	}

	// A calibration run with failed operations still writes the artifacts for
	// the ones that worked, but exits non-zero so automation notices.
	if len(failures) > 0 {
		return fmt.Errorf("%d operation(s) failed to calibrate", len(failures))
	}
	return nil
}
