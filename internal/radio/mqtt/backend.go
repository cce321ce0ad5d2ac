// Package mqtt implements a radio which publishes the transmitted frames
// to a MQTT broker.
package mqtt

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io/ioutil"
	"text/template"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/brocaar/chirpstack-device-region/internal/config"
	"github.com/brocaar/chirpstack-device-region/internal/logging"
	"github.com/brocaar/chirpstack-device-region/internal/radio"
	"github.com/brocaar/chirpstack-device-region/internal/region"
)

// Backend implements a MQTT radio.
type Backend struct {
	conn          paho.Client
	region        string
	qos           uint8
	topicTemplate *template.Template
}

// NewBackend creates a new Backend and connects to the MQTT broker. It
// retries until connected or until the context is cancelled.
func NewBackend(ctx context.Context, regionName string, conf config.Config) (*Backend, error) {
	c := conf.Radio.MQTT

	b := Backend{
		region: regionName,
		qos:    c.QOS,
	}

	var err error
	b.topicTemplate, err = template.New("topic").Parse(c.TopicTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "radio/mqtt: parse topic template error")
	}

	clientID := c.ClientID
	if clientID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, errors.Wrap(err, "radio/mqtt: new client id error")
		}
		clientID = "chirpstack-device-region-" + id.String()
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(c.Server)
	opts.SetUsername(c.Username)
	opts.SetPassword(c.Password)
	opts.SetCleanSession(c.CleanSession)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetOnConnectHandler(b.onConnected)
	opts.SetConnectionLostHandler(b.onConnectionLost)
	if c.MaxReconnectInterval != 0 {
		opts.SetMaxReconnectInterval(c.MaxReconnectInterval)
	}

	tlsconfig, err := newTLSConfig(c.CACert, c.TLSCert, c.TLSKey)
	if err != nil {
		return nil, errors.Wrap(err, "radio/mqtt: load tls certificate files error")
	}
	if tlsconfig != nil {
		opts.SetTLSConfig(tlsconfig)
	}

	log.WithFields(log.Fields{
		"server":    c.Server,
		"client_id": clientID,
	}).Info("radio/mqtt: connecting to mqtt broker")
	b.conn = paho.NewClient(opts)
	for {
		token := b.conn.Connect()
		if token.Wait() && token.Error() == nil {
			break
		}
		log.WithError(token.Error()).Error("radio/mqtt: connecting to mqtt broker failed, will retry in 2s")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	return &b, nil
}

// Transmit publishes the frame as JSON.
func (b *Backend) Transmit(ctx context.Context, params region.TXParams, payload []byte) error {
	frame, err := radio.NewFrame(b.region, params, payload, time.Now())
	if err != nil {
		return errors.Wrap(err, "radio/mqtt: new frame error")
	}

	topic, err := b.topic(frame)
	if err != nil {
		return err
	}

	bb, err := json.Marshal(frame)
	if err != nil {
		return errors.Wrap(err, "radio/mqtt: marshal frame error")
	}

	logging.WithContext(ctx).WithFields(log.Fields{
		"topic":    topic,
		"qos":      b.qos,
		"frame_id": frame.ID,
	}).Info("radio/mqtt: publishing frame")

	token := b.conn.Publish(topic, b.qos, false, bb)
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
	}
	if err := token.Error(); err != nil {
		return errors.Wrap(err, "radio/mqtt: publish frame error")
	}

	mqttFrameCounter(frame.Band).Inc()
	return nil
}

// Close closes the connection with the MQTT broker.
func (b *Backend) Close() error {
	log.Info("radio/mqtt: closing backend")
	b.conn.Disconnect(250)
	return nil
}

func (b *Backend) topic(frame radio.Frame) (string, error) {
	topic := bytes.NewBuffer(nil)
	if err := b.topicTemplate.Execute(topic, frame); err != nil {
		return "", errors.Wrap(err, "radio/mqtt: execute topic template error")
	}
	return topic.String(), nil
}

func (b *Backend) onConnected(c paho.Client) {
	mqttConnectCounter().Inc()
	log.Info("radio/mqtt: connected to mqtt broker")
}

func (b *Backend) onConnectionLost(c paho.Client, reason error) {
	mqttDisconnectCounter().Inc()
	log.WithError(reason).Error("radio/mqtt: mqtt connection error")
}

func newTLSConfig(cafile, certFile, certKeyFile string) (*tls.Config, error) {
	if cafile == "" && certFile == "" && certKeyFile == "" {
		return nil, nil
	}

	tlsConfig := &tls.Config{}

	if cafile != "" {
		cacert, err := ioutil.ReadFile(cafile)
		if err != nil {
			return nil, errors.Wrap(err, "load ca certificate error")
		}
		certpool := x509.NewCertPool()
		certpool.AppendCertsFromPEM(cacert)

		tlsConfig.RootCAs = certpool
	}

	if certFile != "" && certKeyFile != "" {
		kp, err := tls.LoadX509KeyPair(certFile, certKeyFile)
		if err != nil {
			return nil, errors.Wrap(err, "load tls key-pair error")
		}
		tlsConfig.Certificates = []tls.Certificate{kp}
	}

	return tlsConfig, nil
}
