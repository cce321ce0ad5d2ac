package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brocaar/chirpstack-device-region/internal/band"
	"github.com/brocaar/chirpstack-device-region/internal/config"
	"github.com/brocaar/chirpstack-device-region/internal/monitoring"
	"github.com/brocaar/chirpstack-device-region/internal/radio"
	"github.com/brocaar/chirpstack-device-region/internal/radio/mqtt"
	"github.com/brocaar/chirpstack-device-region/internal/simulator"
)

var deviceRadio radio.Radio

func run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		log.WithField("signal", s).Info("signal received, stopping simulation")
		cancel()
	}()

	tasks := []func() error{
		setLogLevel,
		setupBand,
		printStartMessage,
		setupMonitoring,
		setupRadio(ctx),
	}

	for _, t := range tasks {
		if err := t(); err != nil {
			log.Fatal(err)
		}
	}
	defer deviceRadio.Close()

	sim, err := simulator.New(band.Plan(), deviceRadio, config.C, time.Now())
	if err != nil {
		return errors.Wrap(err, "new simulator error")
	}

	if _, err := sim.Run(ctx); err != nil && errors.Cause(err) != context.Canceled {
		return errors.Wrap(err, "run simulator error")
	}

	return nil
}

func setupBand() error {
	if err := band.Setup(config.C); err != nil {
		return errors.Wrap(err, "setup band error")
	}
	return nil
}

func printStartMessage() error {
	log.WithFields(log.Fields{
		"version": version,
		"region":  config.C.Region.Name,
		"radio":   config.C.Radio.Type,
	}).Info("starting ChirpStack Device Region")
	return nil
}

func setupMonitoring() error {
	if err := monitoring.Setup(config.C); err != nil {
		return errors.Wrap(err, "setup monitoring error")
	}
	return nil
}

func setupRadio(ctx context.Context) func() error {
	return func() error {
		switch config.C.Radio.Type {
		case "log":
			deviceRadio = radio.NewLogRadio()
		case "mqtt":
			r, err := mqtt.NewBackend(ctx, band.Plan().Name(), config.C)
			if err != nil {
				return errors.Wrap(err, "setup mqtt radio error")
			}
			deviceRadio = r
		default:
			return errors.Errorf("unknown radio type: %s", config.C.Radio.Type)
		}
		return nil
	}
}
