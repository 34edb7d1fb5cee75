// README: Fallback Q&A; answers cultural questions in the Garudie persona.
package guide

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"nusavarta/internal/ai"
	"nusavarta/internal/logger"
	"nusavarta/internal/metrics"
	"nusavarta/internal/modules/sites"
)

// Apology is returned whenever the model cannot produce an answer.
const Apology = "Aduh, maaf! Sepertinya saya sedang butuh istirahat sejenak. Boleh coba lagi?"

type SiteMatcher interface {
	Match(ctx context.Context, text string) []sites.Site
}

type Guide struct {
	oracle  ai.TextGenerator
	sites   SiteMatcher
	timeout time.Duration
	log     *zap.Logger
}

func New(oracle ai.TextGenerator, matcher SiteMatcher, timeout time.Duration, log *zap.Logger) *Guide {
	return &Guide{
		oracle:  oracle,
		sites:   matcher,
		timeout: timeout,
		log:     logger.OrNop(log).Named("guide"),
	}
}

// Answer always returns something to show the user.
func (g *Guide) Answer(ctx context.Context, message string) string {
	var known []sites.Site
	if g.sites != nil {
		known = g.sites.Match(ctx, message)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.oracle.GenerateText(ctx, buildPrompt(message, known))
	if err != nil {
		metrics.OracleRequests.WithLabelValues("answer", "error").Inc()
		g.log.Warn("oracle call failed", zap.Error(err))
		return Apology
	}
	text = strings.TrimSpace(text)
	if text == "" {
		metrics.OracleRequests.WithLabelValues("answer", "empty").Inc()
		g.log.Warn("oracle returned an empty answer")
		return Apology
	}
	metrics.OracleRequests.WithLabelValues("answer", "ok").Inc()
	return text
}
