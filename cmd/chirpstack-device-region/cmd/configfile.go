package cmd

import (
	"os"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brocaar/chirpstack-device-region/internal/config"
)

const configTemplate = `[general]
# Log level
#
# debug=5, info=4, warning=3, error=2, fatal=1, panic=0
log_level={{ .General.LogLevel }}


# Region configuration.
[region]
# Region name.
#
# Currently only EU868 is supported.
name="{{ .Region.Name }}"

# Uplink max EIRP (dBm).
#
# Overrides the max EIRP of the region, used as TX power index 0.
# Set this to -1 to use the default of the region.
uplink_max_eirp={{ .Region.UplinkMaxEIRP }}

# Aggregated duty-cycle limit.
#
# The aggregated duty-cycle is limited to 1 / 2^max_duty_cycle.
# 0 = no limit, valid values are 0 - 15.
max_duty_cycle={{ .Region.MaxDutyCycle }}

# Extra channels.
#
# Channels installed after the default channels of the region.
#
# Example:
# [[region.extra_channels]]
# frequency=867100000
# min_dr=0
# max_dr=5
{{ range $index, $element := .Region.ExtraChannels }}
[[region.extra_channels]]
frequency={{ $element.Frequency }}
min_dr={{ $element.MinDR }}
max_dr={{ $element.MaxDR }}
{{ end }}

# Uplink simulation.
[simulator]
# Number of uplinks to send.
uplinks={{ .Simulator.Uplinks }}

# Application payload size (bytes).
payload_size={{ .Simulator.PayloadSize }}

# Initial data-rate and TX power index.
data_rate={{ .Simulator.DataRate }}
tx_power_index={{ .Simulator.TXPowerIndex }}

# Interval between the end of an uplink and the next uplink attempt.
interval="{{ .Simulator.Interval }}"

# Wait in real-time for the duty-cycle off-time.
#
# When set to false, a virtual clock is used.
real_time={{ .Simulator.RealTime }}

# Mac-command downlinks (hex encoded).
#
# Every item is handled after an uplink, starting after the uplink
# mac_commands_at (0 = first uplink). The answers are sent with the next
# uplink.
mac_commands=[{{ range $index, $element := .Simulator.MACCommands }}{{ if $index }}, {{ end }}"{{ $element }}"{{ end }}]
mac_commands_at={{ .Simulator.MACCommandsAt }}


# Radio configuration.
[radio]
# Radio type.
#
# Valid options are:
#   * log
#   * mqtt
type="{{ .Radio.Type }}"

  # MQTT radio.
  [radio.mqtt]
  # Topic template.
  #
  # Available fields are the fields of the published frame, e.g.
  # .Region, .Band, .Channel.
  topic_template="{{ .Radio.MQTT.TopicTemplate }}"

  # MQTT server (e.g. scheme://host:port where scheme is tcp, ssl or ws)
  server="{{ .Radio.MQTT.Server }}"

  # Connect with the given username (optional)
  username="{{ .Radio.MQTT.Username }}"

  # Connect with the given password (optional)
  password="{{ .Radio.MQTT.Password }}"

  # Quality of service level
  #
  # 0: at most once
  # 1: at least once
  # 2: exactly once
  qos={{ .Radio.MQTT.QOS }}

  # Clean session
  clean_session={{ .Radio.MQTT.CleanSession }}

  # Client ID
  #
  # A random ID is generated when left blank.
  client_id="{{ .Radio.MQTT.ClientID }}"

  # Maximum interval that will be waited between reconnection attempts.
  max_reconnect_interval="{{ .Radio.MQTT.MaxReconnectInterval }}"

  # CA certificate file (optional)
  ca_cert="{{ .Radio.MQTT.CACert }}"

  # TLS certificate file (optional)
  tls_cert="{{ .Radio.MQTT.TLSCert }}"

  # TLS key file (optional)
  tls_key="{{ .Radio.MQTT.TLSKey }}"


# Monitoring settings.
[monitoring]
# IP:port to bind the monitoring endpoint to.
#
# When left blank, the monitoring endpoint will be disabled.
bind="{{ .Monitoring.Bind }}"

# Prometheus metrics endpoint.
#
# When set to true, Prometheus metrics will be served at '/metrics'.
prometheus_endpoint={{ .Monitoring.PrometheusEndpoint }}

# Healthcheck endpoint.
#
# When set to true, the healthcheck endpoint will be served at '/health'.
healthcheck_endpoint={{ .Monitoring.HealthcheckEndpoint }}
`

var configCmd = &cobra.Command{
	Use:   "configfile",
	Short: "Print the ChirpStack Device Region configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		t := template.Must(template.New("config").Parse(configTemplate))
		err := t.Execute(os.Stdout, &config.C)
		if err != nil {
			return errors.Wrap(err, "execute config template error")
		}
		return nil
	},
}
