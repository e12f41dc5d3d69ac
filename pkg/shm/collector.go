package shm

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

type collector struct {
	registry *Registry
	capacity *prometheus.Desc
	payload  *prometheus.Desc
	live     *prometheus.Desc
}

// NewCollector exports the capacity and current payload size of every live
// segment in r. Collecting reads each segment once.
func NewCollector(r *Registry) prometheus.Collector {
	labels := []string{"name", "creator"}
	return &collector{
		registry: r,
		capacity: prometheus.NewDesc("shmseg_segment_capacity_bytes",
			"Configured capacity of a mapped segment.", labels, nil),
		payload: prometheus.NewDesc("shmseg_segment_payload_bytes",
			"Bytes up to the last non-zero byte of a mapped segment.", labels, nil),
		live: prometheus.NewDesc("shmseg_segments_live",
			"Segments currently mapped by this process.", nil, nil),
	}
}

func (c *collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.payload
	ch <- c.live
}

func (c *collector) Collect(ch chan<- prometheus.Metric) {
	live := c.registry.Live()
	ch <- prometheus.MustNewConstMetric(c.live, prometheus.GaugeValue, float64(len(live)))
	for _, s := range live {
		creator := strconv.FormatBool(s.creator)
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.capacity), s.name, creator)
		ch <- prometheus.MustNewConstMetric(c.payload, prometheus.GaugeValue, float64(s.payloadSize()), s.name, creator)
	}
}
