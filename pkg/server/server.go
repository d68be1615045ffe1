// Package server wires the detection engine into the HTTP surface: routes,
// CORS, panic recovery and response assembly.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/netpulse/go-netpulse/pkg/clientip"
	"github.com/netpulse/go-netpulse/pkg/engine"
	"github.com/netpulse/go-netpulse/pkg/models"
	"github.com/netpulse/go-netpulse/pkg/rating"
)

// verdictNote accompanies every verdict: header heuristics and third-party
// lookups are best-effort signals, not authoritative detection.
const verdictNote = "Heuristic best-effort detection. Signals are advisory and may produce false positives or negatives."

// CheckResponse is the success body of GET /api/v1/check.
type CheckResponse struct {
	Success    bool           `json:"success"`
	Timestamp  string         `json:"timestamp"`
	Connection ConnectionInfo `json:"connection"`
	Client     ClientInfo     `json:"client"`
	ProxyCheck ProxyCheckInfo `json:"proxyCheck"`
}

// ConnectionInfo reports the speed rating derived from handler time.
type ConnectionInfo struct {
	Speed          string `json:"speed"`
	Score          int    `json:"score"`
	ResponseTime   string `json:"responseTime"`
	Emoji          string `json:"emoji"`
	Recommendation string `json:"recommendation"`
}

// ClientInfo echoes the request metadata the verdict was derived from.
type ClientInfo struct {
	IP           string `json:"ip"`
	UserAgent    string `json:"userAgent"`
	Host         string `json:"host"`
	ForwardedFor string `json:"forwardedFor"`
	RemoteAddr   string `json:"remoteAddr"`
}

// ProxyCheckInfo carries the verdict and its supporting reasons.
type ProxyCheckInfo struct {
	IsProxy bool           `json:"isProxy"`
	IsVPN   bool           `json:"isVPN"`
	Reasons []string       `json:"reasons"`
	IPInfo  *models.IPInfo `json:"ipinfo"`
	Note    string         `json:"note"`
}

// Server holds the HTTP-facing dependencies.
type Server struct {
	engine *engine.Engine
	log    zerolog.Logger
}

func New(eng *engine.Engine, log zerolog.Logger) *Server {
	return &Server{engine: eng, log: log}
}

// Router builds the gin engine with all middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprint(recovered),
		})
	}))

	// The contract promises these headers on every response, Origin header
	// or not, so this stays a plain middleware instead of gin-contrib/cors
	// (which only answers requests that carry an Origin).
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	})

	r.GET("/api/v1/check", s.handleCheck)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func (s *Server) handleCheck(c *gin.Context) {
	start := time.Now()

	sig := clientip.FromRequest(c.Request)
	verdict := s.engine.Check(c.Request.Context(), sig)

	// Elapsed time is measured from handler entry to just before the rating
	// is computed, so lookup latency is part of the reported "speed".
	elapsed := time.Since(start)
	tier := rating.FromElapsed(elapsed)

	s.log.Info().
		Str("ip", sig.IP).
		Dur("elapsed", elapsed).
		Bool("isProxy", verdict.IsProxy).
		Bool("isVPN", verdict.IsVPN).
		Int("reasons", len(verdict.Reasons)).
		Msg("check")

	c.JSON(http.StatusOK, CheckResponse{
		Success:   true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Connection: ConnectionInfo{
			Speed:          tier.Speed,
			Score:          tier.Score,
			ResponseTime:   fmt.Sprintf("%dms", elapsed.Milliseconds()),
			Emoji:          tier.Emoji,
			Recommendation: tier.Recommendation,
		},
		Client: ClientInfo{
			IP:           sig.IP,
			UserAgent:    sig.UserAgent,
			Host:         c.Request.Host,
			ForwardedFor: sig.RawForwardedFor,
			RemoteAddr:   sig.SocketAddress,
		},
		ProxyCheck: ProxyCheckInfo{
			IsProxy: verdict.IsProxy,
			IsVPN:   verdict.IsVPN,
			Reasons: verdict.Reasons,
			IPInfo:  verdict.IPInfo,
			Note:    verdictNote,
		},
	})
}
