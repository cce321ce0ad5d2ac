package mqtt

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"text/template"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/brocaar/chirpstack-device-region/internal/config"
	"github.com/brocaar/chirpstack-device-region/internal/radio"
	"github.com/brocaar/chirpstack-device-region/internal/region"
)

func TestTopic(t *testing.T) {
	assert := require.New(t)

	b := Backend{
		topicTemplate: template.Must(template.New("topic").Parse("device/{{ .Region }}/band/{{ .Band }}/channel/{{ .Channel }}")),
	}
	topic, err := b.topic(radio.Frame{Region: "EU868", Band: "g1", Channel: 2})
	assert.NoError(err)
	assert.Equal("device/EU868/band/g1/channel/2", topic)
}

func TestNewTLSConfig(t *testing.T) {
	assert := require.New(t)

	conf, err := newTLSConfig("", "", "")
	assert.NoError(err)
	assert.Nil(conf)

	_, err = newTLSConfig("/does/not/exist.pem", "", "")
	assert.Error(err)
}

type BackendTestSuite struct {
	suite.Suite

	backend    *Backend
	mqttClient paho.Client
	frames     chan radio.Frame
}

func (ts *BackendTestSuite) SetupSuite() {
	assert := require.New(ts.T())

	server := os.Getenv("TEST_MQTT_SERVER")
	if server == "" {
		ts.T().Skip("TEST_MQTT_SERVER is not set")
	}

	var conf config.Config
	conf.Radio.MQTT.Server = server
	conf.Radio.MQTT.CleanSession = true
	conf.Radio.MQTT.TopicTemplate = "device/{{ .Region }}/frame"

	ts.frames = make(chan radio.Frame, 1)
	ts.mqttClient = paho.NewClient(paho.NewClientOptions().AddBroker(server))
	token := ts.mqttClient.Connect()
	token.Wait()
	assert.NoError(token.Error())

	token = ts.mqttClient.Subscribe("device/EU868/frame", 0, func(c paho.Client, msg paho.Message) {
		var f radio.Frame
		if err := json.Unmarshal(msg.Payload(), &f); err == nil {
			ts.frames <- f
		}
	})
	token.Wait()
	assert.NoError(token.Error())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	ts.backend, err = NewBackend(ctx, "EU868", conf)
	assert.NoError(err)
}

func (ts *BackendTestSuite) TearDownSuite() {
	if ts.backend != nil {
		ts.backend.Close()
	}
	if ts.mqttClient != nil {
		ts.mqttClient.Disconnect(0)
	}
}

func (ts *BackendTestSuite) TestTransmit() {
	assert := require.New(ts.T())

	params := region.TXParams{
		Channel:   0,
		Frequency: region.EU868F1,
		DataRate:  region.DR5,
		RPS:       region.MakeRPS(region.SF7, region.BW125, region.CR4_5),
		PowerDBm:  14,
		Band:      "g1",
	}
	assert.NoError(ts.backend.Transmit(context.Background(), params, []byte{1, 2, 3}))

	select {
	case f := <-ts.frames:
		assert.Equal(uint32(868100000), f.Frequency)
		assert.Equal(5, f.DataRate)
		assert.Equal("g1", f.Band)
		assert.Equal([]byte{1, 2, 3}, f.Payload)
	case <-time.After(5 * time.Second):
		ts.T().Fatal("timeout waiting for frame")
	}
}

func TestBackend(t *testing.T) {
	suite.Run(t, new(BackendTestSuite))
}
