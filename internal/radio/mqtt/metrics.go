package mqtt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fc = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "radio_mqtt_frame_count",
		Help: "The number of frames published by the MQTT radio (per band).",
	}, []string{"band"})

	mqttc = promauto.NewCounter(prometheus.CounterOpts{
		Name: "radio_mqtt_connect_count",
		Help: "The number of times the MQTT radio connected to the MQTT broker.",
	})

	mqttd = promauto.NewCounter(prometheus.CounterOpts{
		Name: "radio_mqtt_disconnect_count",
		Help: "The number of times the MQTT radio disconnected from the MQTT broker.",
	})
)

func mqttFrameCounter(band string) prometheus.Counter {
	return fc.With(prometheus.Labels{"band": band})
}

func mqttConnectCounter() prometheus.Counter {
	return mqttc
}

func mqttDisconnectCounter() prometheus.Counter {
	return mqttd
}
