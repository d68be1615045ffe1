package main

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/netpulse/go-netpulse/pkg/cache"
	"github.com/netpulse/go-netpulse/pkg/config"
	"github.com/netpulse/go-netpulse/pkg/engine"
	"github.com/netpulse/go-netpulse/pkg/enrich"
	"github.com/netpulse/go-netpulse/pkg/rules"
	"github.com/netpulse/go-netpulse/pkg/server"
)

func main() {
	cfg := config.FromEnv()
	log := newLogger(cfg.LogLevel)

	// 1. Lookup cache: shared Redis when configured, bounded memory otherwise.
	var store cache.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		store = cache.NewRedis(client, cfg.CacheTTL, log)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis lookup cache")
	} else {
		store = cache.NewMemory(cfg.CacheMaxEntries, cfg.CacheTTL)
	}

	// 2. Enrichment providers. Proxycheck runs even without a key (anonymous
	// mode); the org lookup needs either a token or a local ASN database.
	var proxyLookup enrich.ProxyLookup = enrich.NewCachedProxyLookup(
		enrich.NewProxycheck(cfg.ProxycheckKey, cfg.LookupTimeout, log), store)

	var orgLookup enrich.OrgLookup
	switch {
	case cfg.IPInfoToken != "":
		orgLookup = enrich.NewCachedOrgLookup(
			enrich.NewIPInfo(cfg.IPInfoToken, cfg.LookupTimeout, log), store)
	case cfg.ASNDatabase != "":
		db, err := enrich.OpenASNDB(cfg.ASNDatabase)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ASNDatabase).Msg("asn database")
		}
		defer db.Close()
		orgLookup = enrich.NewCachedOrgLookup(db, store)
	default:
		log.Info().Msg("no IPINFO_TOKEN or GEOIP_ASN_DB; organization lookup disabled")
	}

	// 3. Engine and rules.
	eng := engine.New(proxyLookup, orgLookup, log)
	configureRules(eng)

	// 4. HTTP server.
	gin.SetMode(gin.ReleaseMode)
	srv := server.New(eng, log)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := srv.Router().Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// configureRules registers the detection rules. Registration order fixes the
// order of the reasons list: header heuristics first, then the external
// lookup rules.
func configureRules(eng *engine.Engine) {
	eng.AddRule(rules.NewMultiHopRule())
	eng.AddRule(rules.NewPrivateChainRule())
	eng.AddRule(rules.NewHeaderPresenceRule())
	eng.AddRule(rules.DefaultScriptedUARule())
	eng.AddRule(rules.NewProxyTypeRule())
	eng.AddRule(rules.DefaultHostingProviderRule())
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
