// README: Intent classifier; asks the language model whether a message is a route request.
package intent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"nusavarta/internal/ai"
	"nusavarta/internal/logger"
	"nusavarta/internal/metrics"
	"nusavarta/internal/modules/sites"
)

// SiteMatcher finds gazetteer entries named in a message.
type SiteMatcher interface {
	Match(ctx context.Context, text string) []sites.Site
}

type Classifier struct {
	oracle  ai.JSONGenerator
	sites   SiteMatcher
	schema  *gojsonschema.Schema
	timeout time.Duration
	log     *zap.Logger
}

// NewClassifier bounds each oracle call by timeout; zero leaves it to the caller's context.
func NewClassifier(oracle ai.JSONGenerator, matcher SiteMatcher, timeout time.Duration, log *zap.Logger) (*Classifier, error) {
	schema, err := compileDecisionSchema()
	if err != nil {
		return nil, err
	}
	return &Classifier{
		oracle:  oracle,
		sites:   matcher,
		schema:  schema,
		timeout: timeout,
		log:     logger.OrNop(log).Named("intent"),
	}, nil
}

// Classify never fails: any oracle or parsing problem yields NotRouteRequest.
func (c *Classifier) Classify(ctx context.Context, message string) Decision {
	var known []sites.Site
	if c.sites != nil {
		known = c.sites.Match(ctx, message)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.oracle.GenerateJSON(ctx, buildPrompt(message, known))
	if err != nil {
		metrics.OracleRequests.WithLabelValues("classify", "error").Inc()
		c.log.Warn("oracle call failed, treating message as not a route request", zap.Error(err))
		return NotRouteRequest
	}

	d, err := c.parse(raw)
	if err != nil {
		metrics.OracleRequests.WithLabelValues("classify", "invalid").Inc()
		c.log.Warn("unusable classification, treating message as not a route request",
			zap.Error(err),
			zap.String("raw", raw),
		)
		return NotRouteRequest
	}
	metrics.OracleRequests.WithLabelValues("classify", "ok").Inc()
	return d
}

func (c *Classifier) parse(raw string) (Decision, error) {
	doc := ai.CleanJSON(raw)
	if err := validateDecision(c.schema, doc); err != nil {
		return Decision{}, err
	}

	// Nulls are allowed by the schema; decode through pointers.
	var wire struct {
		IsRouteRequest bool    `json:"isRouteRequest"`
		Origin         *string `json:"origin"`
		Destination    *string `json:"destination"`
		AIReply        *string `json:"aiReply"`
	}
	if err := json.Unmarshal([]byte(doc), &wire); err != nil {
		return Decision{}, err
	}
	if !wire.IsRouteRequest {
		return NotRouteRequest, nil
	}
	return Decision{
		IsRouteRequest: true,
		Origin:         strings.TrimSpace(deref(wire.Origin)),
		Destination:    strings.TrimSpace(deref(wire.Destination)),
		AIReply:        strings.TrimSpace(deref(wire.AIReply)),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
