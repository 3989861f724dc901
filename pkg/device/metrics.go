// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package device

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments the transport. One instance may be shared by
// several devices; series split on the device label.
type Metrics struct {
	requests  *prometheus.CounterVec
	failovers *prometheus.CounterVec
}

// NewMetrics builds and registers the transport collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panfw",
			Name:      "api_requests_total",
			Help:      "API requests by device, request type and outcome.",
		}, []string{"device", "type", "outcome"}),
		failovers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "panfw",
			Name:      "ha_failovers_total",
			Help:      "HA failovers triggered by connection-class errors.",
		}, []string{"device"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.failovers)
	}
	return m
}

func (f *Firewall) countRequest(reqType, outcome string) {
	if f.metrics == nil {
		return
	}
	f.metrics.requests.WithLabelValues(f.cfg.Name, reqType, outcome).Inc()
}

func (f *Firewall) countFailover() {
	if f.metrics == nil {
		return
	}
	f.metrics.failovers.WithLabelValues(f.cfg.Name).Inc()
}
