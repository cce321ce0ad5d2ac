package maccommand

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/brocaar/lorawan"
)

var (
	mca = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maccommand_answer_count",
		Help: "The number of handled mac-commands (per cid and ack).",
	}, []string{"cid", "ack"})
)

func answered(cid lorawan.CID, ack bool) prometheus.Counter {
	return mca.With(prometheus.Labels{"cid": fmt.Sprintf("%v", cid), "ack": strconv.FormatBool(ack)})
}
