package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/brocaar/chirpstack-device-region/internal/band"
	"github.com/brocaar/chirpstack-device-region/internal/region"
)

var channelsCmd = &cobra.Command{
	Use:   "channels",
	Short: "Print the channel table of the configured region",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range []func() error{setLogLevel, setupBand} {
			if err := t(); err != nil {
				return err
			}
		}

		printChannels(band.Plan())
		return nil
	},
}

func printChannels(p *region.Plan) {
	channels := p.Channels()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Index", "Frequency", "RX1 frequency", "Data-rates", "Band", "Duty-cycle", "Mandatory", "Active"})

	for i, c := range channels.Channels() {
		if !c.Enabled {
			continue
		}

		bandName, dutyCycle := "-", "-"
		if _, b, err := p.Band(c.Frequency); err == nil {
			bandName = b.Name
			dutyCycle = b.DutyCycle.String()
		}

		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%d", c.Frequency),
			fmt.Sprintf("%d", c.RX1Frequency()),
			fmt.Sprintf("%s-%s", c.MinDR, c.MaxDR),
			bandName,
			dutyCycle,
			fmt.Sprintf("%t", channels.Mandatory(i)),
			fmt.Sprintf("%t", channels.Active(i)),
		})
	}

	table.Render()
}
