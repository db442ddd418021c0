package metrics

import "github.com/prometheus/client_golang/prometheus"

var reg = prometheus.DefaultRegisterer

func Registerer() prometheus.Registerer { return reg }

// UseRegisterer swaps the registerer; call it before the first App() or Kafka() call.
func UseRegisterer(r prometheus.Registerer) {
	if r != nil {
		reg = r
	}
}
