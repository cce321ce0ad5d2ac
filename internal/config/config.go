package config

import (
	"time"
)

// Version defines the ChirpStack Device Region version.
var Version string

// C holds the global configuration.
var C Config

// Config defines the configuration structure.
type Config struct {
	General struct {
		LogLevel int `mapstructure:"log_level"`
	}

	Region struct {
		Name          string `mapstructure:"name"`
		UplinkMaxEIRP int    `mapstructure:"uplink_max_eirp"`
		MaxDutyCycle  uint8  `mapstructure:"max_duty_cycle"`

		ExtraChannels []ExtraChannel `mapstructure:"extra_channels"`
	} `mapstructure:"region"`

	Simulator struct {
		Uplinks       int           `mapstructure:"uplinks"`
		PayloadSize   int           `mapstructure:"payload_size"`
		DataRate      int           `mapstructure:"data_rate"`
		TXPowerIndex  uint8         `mapstructure:"tx_power_index"`
		Interval      time.Duration `mapstructure:"interval"`
		RealTime      bool          `mapstructure:"real_time"`
		MACCommands   []string      `mapstructure:"mac_commands"`
		MACCommandsAt int           `mapstructure:"mac_commands_at"`
	} `mapstructure:"simulator"`

	Radio struct {
		Type string `mapstructure:"type"`

		MQTT struct {
			Server               string        `mapstructure:"server"`
			Username             string        `mapstructure:"username"`
			Password             string        `mapstructure:"password"`
			QOS                  uint8         `mapstructure:"qos"`
			CleanSession         bool          `mapstructure:"clean_session"`
			ClientID             string        `mapstructure:"client_id"`
			CACert               string        `mapstructure:"ca_cert"`
			TLSCert              string        `mapstructure:"tls_cert"`
			TLSKey               string        `mapstructure:"tls_key"`
			MaxReconnectInterval time.Duration `mapstructure:"max_reconnect_interval"`
			TopicTemplate        string        `mapstructure:"topic_template"`
		} `mapstructure:"mqtt"`
	} `mapstructure:"radio"`

	Monitoring struct {
		Bind                string `mapstructure:"bind"`
		PrometheusEndpoint  bool   `mapstructure:"prometheus_endpoint"`
		HealthcheckEndpoint bool   `mapstructure:"healthcheck_endpoint"`
	} `mapstructure:"monitoring"`
}

// ExtraChannel defines an uplink channel installed on top of the default
// channels of the region.
type ExtraChannel struct {
	Frequency uint32 `mapstructure:"frequency"`
	MinDR     int    `mapstructure:"min_dr"`
	MaxDR     int    `mapstructure:"max_dr"`
}
