// Package health aggregates the status of the gateway's dependencies for
// the /health endpoint.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type ServiceStatus struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Target  string `json:"target,omitempty"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency,omitempty"`
}

type Response struct {
	Status    string          `json:"status"`
	Timestamp string          `json:"timestamp"`
	Uptime    string          `json:"uptime"`
	Services  []ServiceStatus `json:"services"`
	Summary   struct {
		Total     int `json:"total"`
		Healthy   int `json:"healthy"`
		Unhealthy int `json:"unhealthy"`
	} `json:"summary"`
}

// Check probes one dependency
type Check func(ctx context.Context) ServiceStatus

// Checker runs every check on each request
type Checker struct {
	checks  []Check
	timeout time.Duration
	started time.Time
	now     func() time.Time
}

func NewChecker(timeout time.Duration, checks ...Check) *Checker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Checker{
		checks:  checks,
		timeout: timeout,
		started: time.Now(),
		now:     time.Now,
	}
}

// Run executes the checks concurrently and summarises them. The overall
// status is degraded when any check fails and unhealthy when more than half
// fail.
func (c *Checker) Run(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	services := make([]ServiceStatus, len(c.checks))
	done := make(chan struct{})
	for i, check := range c.checks {
		go func(i int, check Check) {
			services[i] = check(ctx)
			done <- struct{}{}
		}(i, check)
	}
	for range c.checks {
		<-done
	}

	healthy, unhealthy := 0, 0
	for _, s := range services {
		if s.Status == "healthy" {
			healthy++
		} else {
			unhealthy++
		}
	}

	overall := "healthy"
	if unhealthy > 0 {
		overall = "degraded"
	}
	if unhealthy > len(services)/2 {
		overall = "unhealthy"
	}

	now := c.now()
	resp := Response{
		Status:    overall,
		Timestamp: now.UTC().Format(time.RFC3339),
		Uptime:    fmt.Sprintf("%.0fs", now.Sub(c.started).Seconds()),
		Services:  services,
	}
	resp.Summary.Total = len(services)
	resp.Summary.Healthy = healthy
	resp.Summary.Unhealthy = unhealthy
	return resp
}

func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := c.Run(r.Context())

	statusCode := http.StatusOK
	if resp.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// GRPCCheck asks a backend's grpc.health.v1 service whether service is
// serving. The call uses the proto codec even on connections defaulting to
// JSON.
func GRPCCheck(name string, conn grpc.ClientConnInterface, service string) Check {
	client := healthpb.NewHealthClient(conn)
	return func(ctx context.Context) ServiceStatus {
		start := time.Now()
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service}, grpc.CallContentSubtype("proto"))
		st := ServiceStatus{Service: name, Target: service, Latency: time.Since(start).String()}
		switch {
		case err != nil:
			st.Status = "unhealthy"
			st.Error = err.Error()
		case resp.GetStatus() != healthpb.HealthCheckResponse_SERVING:
			st.Status = "unhealthy"
			st.Error = resp.GetStatus().String()
		default:
			st.Status = "healthy"
		}
		return st
	}
}

// TCPCheck reports whether addr accepts TCP connections
func TCPCheck(name, addr string) Check {
	return func(ctx context.Context) ServiceStatus {
		start := time.Now()
		conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
		st := ServiceStatus{Service: name, Target: addr, Latency: time.Since(start).String()}
		if err != nil {
			st.Status = "unhealthy"
			st.Error = err.Error()
			return st
		}
		conn.Close()
		st.Status = "healthy"
		return st
	}
}
