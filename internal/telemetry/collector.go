package telemetry

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exports every field of its groups as a gauge named
// <namespace>_<group>_<field>.
type Collector struct {
	groups []*Group
	descs  [][]*prometheus.Desc
}

func NewCollector(namespace string, groups ...*Group) *Collector {
	c := &Collector{groups: groups, descs: make([][]*prometheus.Desc, len(groups))}
	for i, g := range groups {
		for _, v := range g.vars {
			help := "Telemetry field " + g.name + "." + v.name + " (" + v.kind.String() + ")."
			name := prometheus.BuildFQName(namespace, sanitize(g.name), sanitize(v.name))
			c.descs[i] = append(c.descs[i], prometheus.NewDesc(name, help, nil, nil))
		}
	}
	return c
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, ds := range c.descs {
		for _, d := range ds {
			ch <- d
		}
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for i, g := range c.groups {
		for j, v := range g.vars {
			ch <- prometheus.MustNewConstMetric(c.descs[i][j], prometheus.GaugeValue, v.Value())
		}
	}
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return '_'
	}, s)
}
