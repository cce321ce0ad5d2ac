package cmd

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brocaar/chirpstack-device-region/internal/config"
)

var (
	cfgFile string
	version string
)

var rootCmd = &cobra.Command{
	Use:   "chirpstack-device-region",
	Short: "ChirpStack Device Region",
	Long: `ChirpStack Device Region simulates a LoRaWAN end-device honoring the channel, data-rate and duty-cycle rules of its region
	> source & copyright information: https://github.com/brocaar/chirpstack-device-region/`,
	RunE: run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to configuration file (optional)")
	rootCmd.PersistentFlags().Int("log-level", 4, "debug=5, info=4, error=2, fatal=1, panic=0")

	viper.BindPFlag("general.log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	// default values
	viper.SetDefault("region.name", "EU868")
	viper.SetDefault("region.uplink_max_eirp", -1)
	viper.SetDefault("region.max_duty_cycle", 0)

	viper.SetDefault("simulator.uplinks", 10)
	viper.SetDefault("simulator.payload_size", 13)
	viper.SetDefault("simulator.data_rate", 5)
	viper.SetDefault("simulator.interval", 10*time.Second)

	viper.SetDefault("radio.type", "log")
	viper.SetDefault("radio.mqtt.server", "tcp://localhost:1883")
	viper.SetDefault("radio.mqtt.clean_session", true)
	viper.SetDefault("radio.mqtt.max_reconnect_interval", time.Minute)
	viper.SetDefault("radio.mqtt.topic_template", "device/{{ .Region }}/frame/{{ .Band }}")

	viper.SetDefault("monitoring.prometheus_endpoint", true)
	viper.SetDefault("monitoring.healthcheck_endpoint", true)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(channelsCmd)
	rootCmd.AddCommand(macCommandCmd)
}

// Execute executes the root command.
func Execute(v string) {
	version = v

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func initConfig() {
	config.Version = version

	if cfgFile != "" {
		b, err := ioutil.ReadFile(cfgFile)
		if err != nil {
			log.WithError(err).WithField("config", cfgFile).Fatal("error loading config file")
		}
		viper.SetConfigType("toml")
		if err := viper.ReadConfig(bytes.NewBuffer(b)); err != nil {
			log.WithError(err).WithField("config", cfgFile).Fatal("error loading config file")
		}
	} else {
		viper.SetConfigName("chirpstack-device-region")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/chirpstack-device-region")
		viper.AddConfigPath("/etc/chirpstack-device-region")
		if err := viper.ReadInConfig(); err != nil {
			switch err.(type) {
			case viper.ConfigFileNotFoundError:
				log.Warning("No configuration file found, using defaults.")
			default:
				log.WithError(err).Fatal("read configuration file error")
			}
		}
	}

	viperBindEnvs(config.C)

	viperHooks := mapstructure.ComposeDecodeHookFunc(
		viperDecodeJSONSlice,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	if err := viper.Unmarshal(&config.C, viper.DecodeHook(viperHooks)); err != nil {
		log.WithError(err).Fatal("unmarshal config error")
	}
}

// viperBindEnvs binds the double underscore version of every config key,
// e.g. REGION__NAME for region.name.
func viperBindEnvs(iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			tv = strings.ToLower(t.Name)
		}
		if tv == "-" {
			continue
		}

		switch v.Kind() {
		case reflect.Struct:
			viperBindEnvs(v.Interface(), append(parts, tv)...)
		default:
			keyDot := strings.Join(append(parts, tv), ".")
			keyUnderscore := strings.Join(append(parts, tv), "__")
			viper.BindEnv(keyDot, strings.ToUpper(keyUnderscore))
		}
	}
}

// viperDecodeJSONSlice decodes a JSON list given as string (e.g. through an
// env variable) into a slice, used for region.extra_channels.
func viperDecodeJSONSlice(rf reflect.Kind, rt reflect.Kind, data interface{}) (interface{}, error) {
	if rf != reflect.String || rt != reflect.Slice {
		return data, nil
	}

	raw := data.(string)
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return data, nil
	}

	var out []map[string]interface{}
	err := json.Unmarshal([]byte(raw), &out)

	return out, err
}

func setLogLevel() error {
	log.SetLevel(log.Level(uint8(config.C.General.LogLevel)))
	return nil
}
