package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nusavarta/internal/logger"
	"nusavarta/internal/metrics"
	"nusavarta/internal/modules/confirm"
	"nusavarta/internal/modules/history"
	"nusavarta/internal/modules/intent"
	"nusavarta/internal/modules/route"
	"nusavarta/internal/modules/session"
)

// User-facing replies for route failures.
const (
	locationNotFoundReply = "Maaf, saya tidak dapat menemukan lokasi %q. Bisa sebutkan nama tempatnya dengan lebih lengkap?"
	noRouteReply          = "Maaf, saya tidak menemukan rute dari %s ke %s. Mungkin coba tujuan lain?"
	routingFailedReply    = "Maaf, layanan peta sedang bermasalah sehingga rute dari %s ke %s belum bisa dibuat. Boleh coba lagi sebentar lagi?"
)

type Classifier interface {
	Classify(ctx context.Context, message string) intent.Decision
}

type RouteBuilder interface {
	Build(ctx context.Context, origin, destination string, includeCulturalWaypoints bool) (*route.Result, error)
}

type Answerer interface {
	Answer(ctx context.Context, message string) string
}

// Reply is exactly one of a text answer or a built route.
type Reply struct {
	Text  string
	Route *route.Result
}

type RelayDeps struct {
	Sessions   session.Store
	Locker     session.Locker
	Classifier Classifier
	Routes     RouteBuilder
	Guide      Answerer
	History    history.Recorder
	Log        *zap.Logger
	Now        func() time.Time
}

// Relay runs one chat turn: answer a pending route offer, make a new one, or
// fall back to general Q&A.
type Relay struct {
	sessions   session.Store
	locker     session.Locker
	classifier Classifier
	routes     RouteBuilder
	guide      Answerer
	history    history.Recorder
	log        *zap.Logger
	now        func() time.Time
}

func NewRelay(d RelayDeps) *Relay {
	r := &Relay{
		sessions:   d.Sessions,
		locker:     d.Locker,
		classifier: d.Classifier,
		routes:     d.Routes,
		guide:      d.Guide,
		history:    d.History,
		log:        logger.OrNop(d.Log).Named("relay"),
		now:        d.Now,
	}
	if r.locker == nil {
		r.locker = session.NewKeyedMutex()
	}
	if r.history == nil {
		r.history = history.NopRecorder{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Handle processes one message. Turns of the same user are serialized. Only
// session failures are returned as errors; provider failures become replies.
func (r *Relay) Handle(ctx context.Context, userID, message string) (Reply, error) {
	unlock, err := r.locker.Lock(ctx, userID)
	if err != nil {
		metrics.ChatMessages.WithLabelValues(metrics.OutcomeError).Inc()
		return Reply{}, fmt.Errorf("lock session %s: %w", userID, err)
	}
	defer unlock()

	r.record(ctx, userID, history.SenderUser, message)

	pending, ok, err := r.sessions.Take(ctx, userID)
	if err != nil {
		metrics.ChatMessages.WithLabelValues(metrics.OutcomeError).Inc()
		return Reply{}, fmt.Errorf("load session %s: %w", userID, err)
	}

	var reply Reply
	if ok && pending.Pending() {
		reply = r.confirmRoute(ctx, userID, pending, message)
	} else {
		reply, err = r.converse(ctx, userID, message)
		if err != nil {
			metrics.ChatMessages.WithLabelValues(metrics.OutcomeError).Inc()
			return Reply{}, err
		}
	}

	r.record(ctx, userID, history.SenderAI, transcript(reply))
	return reply, nil
}

func (r *Relay) confirmRoute(ctx context.Context, userID string, pending session.Context, message string) Reply {
	verdict := confirm.Resolve(message)
	r.log.Debug("route offer answered",
		zap.String("user_id", userID),
		zap.Stringer("verdict", verdict),
	)

	res, err := r.routes.Build(ctx, pending.Origin, pending.Destination, verdict.IncludeCulturalWaypoints())
	if err != nil {
		r.log.Warn("route build failed",
			zap.String("user_id", userID),
			zap.String("origin", pending.Origin),
			zap.String("destination", pending.Destination),
			zap.Error(err),
		)
		metrics.ChatMessages.WithLabelValues(metrics.OutcomeApology).Inc()
		return Reply{Text: routeApology(pending, err)}
	}
	metrics.ChatMessages.WithLabelValues(metrics.OutcomeRoute).Inc()
	return Reply{Route: res}
}

func (r *Relay) converse(ctx context.Context, userID, message string) (Reply, error) {
	d := r.classifier.Classify(ctx, message)
	if d.IsRouteRequest {
		offer := session.Context{AwaitingConfirmation: true, Origin: d.Origin, Destination: d.Destination}
		if err := r.sessions.Set(ctx, userID, offer); err != nil {
			return Reply{}, fmt.Errorf("save session %s: %w", userID, err)
		}
		metrics.ChatMessages.WithLabelValues(metrics.OutcomeClarify).Inc()
		return Reply{Text: d.AIReply}, nil
	}

	metrics.ChatMessages.WithLabelValues(metrics.OutcomeAnswer).Inc()
	return Reply{Text: r.guide.Answer(ctx, message)}, nil
}

func routeApology(pending session.Context, err error) string {
	var nf *route.LocationNotFoundError
	switch {
	case errors.As(err, &nf):
		return fmt.Sprintf(locationNotFoundReply, nf.Query)
	case errors.Is(err, route.ErrNoRoute):
		return fmt.Sprintf(noRouteReply, pending.Origin, pending.Destination)
	default:
		return fmt.Sprintf(routingFailedReply, pending.Origin, pending.Destination)
	}
}

// transcript is the history text for a reply.
func transcript(reply Reply) string {
	if reply.Route == nil {
		return reply.Text
	}
	m := reply.Route.Markers
	if len(m) < 2 {
		return "Rute siap."
	}
	return fmt.Sprintf("Rute dari %s ke %s dengan %d titik singgah.", m[0].Title, m[len(m)-1].Title, len(m)-2)
}

func (r *Relay) record(ctx context.Context, userID string, sender history.Sender, text string) {
	msg := history.NewMessage(userID, sender, text, r.now())
	if err := r.history.Record(ctx, msg); err != nil {
		r.log.Warn("failed to record chat message",
			zap.String("user_id", userID),
			zap.String("sender", string(sender)),
			zap.Error(err),
		)
	}
}
