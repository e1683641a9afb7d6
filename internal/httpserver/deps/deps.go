package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/stickybar/internal/domain"
	"github.com/MrSnakeDoc/stickybar/internal/logger"
	"github.com/MrSnakeDoc/stickybar/internal/metrics"
)

// Check is a named dependency probe used by /readyz and /infra.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access admin and ops routes
	AllowedCIDRS []string         // IPs allowed to access admin and ops routes
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	SiteTitle    string
	StoreBackend string // "redis" | "memory"
	PostsBackend string // "catalog" | "postgres"

	Resolver  *domain.Resolver
	Options   *domain.OptionsEditor
	Selection *domain.SelectionEditor
	Posts     domain.PostFinder
	PostList  domain.PostLister
	Links     domain.LinkBuilder
	Metrics   *metrics.Metrics // nil disables /metrics
	Checks    []Check

	ReloadTrigger chan struct{} // Channel to trigger a manual catalog reload (nil when posts come from postgres)

	CSRFKey            []byte
	CSRFTrustedOrigins []string

	RateLimitBurst   int
	RateLimitRefill  int
	RateLimitEntries int
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
