package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brocaar/chirpstack-device-region/internal/band"
	"github.com/brocaar/chirpstack-device-region/internal/config"
	"github.com/brocaar/chirpstack-device-region/internal/maccommand"
	"github.com/brocaar/chirpstack-device-region/internal/region"
)

var macCommandCmd = &cobra.Command{
	Use:     "mac-command [hex]...",
	Short:   "Apply hex encoded mac-command blocks to the configured region and print the answers",
	Example: "chirpstack-device-region mac-command 0380000000 03010000",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range []func() error{setLogLevel, setupBand} {
			if err := t(); err != nil {
				return err
			}
		}

		p := band.Plan()
		st := maccommand.NewState(p)
		if dr := region.DataRate(config.C.Simulator.DataRate); p.ValidDataRate(dr) {
			st.DataRate = dr
		}

		for _, arg := range args {
			b, err := hex.DecodeString(arg)
			if err != nil {
				return errors.Wrapf(err, "decode %s error", arg)
			}

			cmds, err := maccommand.Decode(b)
			if err != nil {
				log.WithError(err).WithField("mac_commands", arg).Warning("mac-commands partially decoded")
			}

			answers, err := maccommand.Encode(maccommand.Handle(p, &st, cmds))
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%s: %s\n", arg, hex.EncodeToString(answers))
		}

		fmt.Fprintf(os.Stdout, "data-rate: %s, tx power index: %d, nb trans: %d, rx1 dr offset: %d, rx2: %d Hz %s, max duty-cycle: %d\n",
			st.DataRate, st.TXPowerIndex, st.NbTrans, st.RX1DROffset, st.RX2Frequency, st.RX2DataRate, p.DutyCycle().MaxDutyCycle())
		printChannels(p)
		return nil
	},
}
