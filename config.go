package xhr

import (
	"errors"
	"net/url"

	"github.com/jub0bs/xhr/internal/origins"
	"github.com/jub0bs/xhr/internal/util"
	"go.uber.org/zap"
)

// A Config configures an [XMLHttpRequest].
// Attempts to use settings described as "required" without specifying
// them result in a failure to build the desired object.
//
// # DocumentURL
//
// DocumentURL (required) is the absolute URL of the document on behalf of
// which requests are made. Relative URLs passed to [XMLHttpRequest.Open] are
// resolved against it, it is sent as the Referer of every request, and its
// origin decides which requests are cross-origin:
//
//	DocumentURL: "https://example.com/app/index.html",
//
// # Transport
//
// Transport (required) performs the network round trips.
// [HTTPTransport] is a ready-made implementation backed by [net/http].
//
// # Features
//
// Features (optional) is consulted at each decision point where browsers
// historically disagree; see the Feature* constants. A nil value enables no
// feature. [NewFeatureSet] builds a static set.
//
// # SyncPolicy
//
// SyncPolicy (optional) decides, at send time, whether a request is processed
// synchronously (on the caller's goroutine) or asynchronously (on a
// background goroutine). A nil value honours the async flag passed to
// [XMLHttpRequest.Open].
//
// # Parser
//
// Parser (optional) builds the document returned by
// [XMLHttpRequest.ResponseXML]. A nil value disables that accessor.
//
// # Logger
//
// Logger (optional) receives debug-level records about dropped headers,
// rejected methods, and CORS decisions. A nil value disables logging.
type Config struct {
	DocumentURL string
	Transport   Transport
	Features    Features
	SyncPolicy  SyncPolicy
	Parser      DocumentParser
	Logger      *zap.Logger
}

// A SyncPolicy decides whether a request is processed synchronously.
// Implementations must be safe for concurrent use.
type SyncPolicy interface {
	// ProcessSynchronously reports whether req, which was opened with
	// the specified async flag, must be processed synchronously.
	ProcessSynchronously(req *Request, async bool) bool
}

// The SyncPolicyFunc type is an adapter to allow the use of ordinary
// functions as synchronization policies.
type SyncPolicyFunc func(req *Request, async bool) bool

// ProcessSynchronously calls f(req, async).
func (f SyncPolicyFunc) ProcessSynchronously(req *Request, async bool) bool {
	return f(req, async)
}

var defaultSyncPolicy = SyncPolicyFunc(func(_ *Request, async bool) bool {
	return !async
})

type internalConfig struct {
	docURL     *url.URL
	docOrigin  origins.Origin
	transport  Transport
	features   Features
	syncPolicy SyncPolicy
	parser     DocumentParser
	logger     *zap.Logger
	policy     OriginPolicy
}

func newInternalConfig(cfg *Config) (*internalConfig, error) {
	icfg := internalConfig{
		transport:  cfg.Transport,
		features:   cfg.Features,
		syncPolicy: cfg.SyncPolicy,
		parser:     cfg.Parser,
		logger:     cfg.Logger,
	}

	// Accumulate errors in a slice so as to call errors.Join at most once.
	var errs []error
	errs = icfg.validateDocumentURL(errs, cfg.DocumentURL)
	if cfg.Transport == nil {
		errs = append(errs, util.NewError("a transport is required"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if icfg.features == nil {
		icfg.features = noFeatures{}
	}
	if icfg.syncPolicy == nil {
		icfg.syncPolicy = defaultSyncPolicy
	}
	if icfg.logger == nil {
		icfg.logger = zap.NewNop()
	}
	icfg.logger = icfg.logger.Named("xhr")
	icfg.policy = OriginPolicy{Features: icfg.features}
	return &icfg, nil
}

func (icfg *internalConfig) validateDocumentURL(errs []error, raw string) []error {
	if raw == "" {
		return append(errs, util.NewError("a document URL is required"))
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return append(errs, util.Errorf("invalid document URL %q", raw))
	}
	u.Fragment = ""
	u.RawFragment = ""
	icfg.docURL = u
	icfg.docOrigin = origins.FromURL(u)
	return errs
}
