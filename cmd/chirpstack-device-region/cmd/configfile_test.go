package cmd

import (
	"bytes"
	"testing"
	"text/template"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/brocaar/chirpstack-device-region/internal/config"
)

func TestConfigTemplate(t *testing.T) {
	assert := require.New(t)

	var conf config.Config
	conf.Region.Name = "EU868"
	conf.Region.UplinkMaxEIRP = -1
	conf.Region.ExtraChannels = []config.ExtraChannel{
		{Frequency: 867100000, MinDR: 0, MaxDR: 5},
	}
	conf.Simulator.MACCommands = []string{"0380000000", "03010000"}
	conf.Radio.Type = "log"

	var buf bytes.Buffer
	tmpl := template.Must(template.New("config").Parse(configTemplate))
	assert.NoError(tmpl.Execute(&buf, &conf))

	v := viper.New()
	v.SetConfigType("toml")
	assert.NoError(v.ReadConfig(&buf))

	var out config.Config
	assert.NoError(v.Unmarshal(&out))
	assert.Equal(conf.Region.Name, out.Region.Name)
	assert.Equal(conf.Region.UplinkMaxEIRP, out.Region.UplinkMaxEIRP)
	assert.Equal(conf.Region.ExtraChannels, out.Region.ExtraChannels)
	assert.Equal(conf.Simulator.MACCommands, out.Simulator.MACCommands)
	assert.Equal("log", out.Radio.Type)
}
