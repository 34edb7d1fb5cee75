package intent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"nusavarta/internal/modules/sites"
)

type stubOracle struct {
	reply   string
	err     error
	prompts []string
	block   bool
}

func (s *stubOracle) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func newClassifier(t *testing.T, oracle *stubOracle) *Classifier {
	t.Helper()
	catalog := sites.NewCatalog(sites.NewStaticStore(), 0, nil)
	c, err := NewClassifier(oracle, catalog, time.Second, zaptest.NewLogger(t))
	require.NoError(t, err)
	return c
}

func TestClassify_RouteRequest(t *testing.T) {
	oracle := &stubOracle{reply: "```json\n" + `{"isRouteRequest": true, "origin": " Stasiun Bandung ", "destination": "Gedung Sate", "aiReply": "Tentu! Mau sekalian rute budaya?"}` + "\n```"}
	c := newClassifier(t, oracle)

	d := c.Classify(context.Background(), "Gimana cara ke Gedung Sate dari Stasiun Bandung?")

	assert.Equal(t, Decision{
		IsRouteRequest: true,
		Origin:         "Stasiun Bandung",
		Destination:    "Gedung Sate",
		AIReply:        "Tentu! Mau sekalian rute budaya?",
	}, d)
	require.Len(t, oracle.prompts, 1)
	assert.Contains(t, oracle.prompts[0], "Gedung Sate (Bandung, Jawa Barat)", "known sites ground the prompt")
	assert.Contains(t, oracle.prompts[0], "Gimana cara ke Gedung Sate dari Stasiun Bandung?")
}

func TestClassify_NotRouteRequestClearsFields(t *testing.T) {
	oracle := &stubOracle{reply: `{"isRouteRequest": false, "origin": "x", "destination": null, "aiReply": "halo"}`}
	c := newClassifier(t, oracle)

	assert.Equal(t, NotRouteRequest, c.Classify(context.Background(), "Apa itu angklung?"))
}

func TestClassify_FailsOpen(t *testing.T) {
	tests := []struct {
		name   string
		oracle *stubOracle
	}{
		{"oracle error", &stubOracle{err: errors.New("quota exceeded")}},
		{"not json", &stubOracle{reply: "Maaf, saya tidak mengerti"}},
		{"fence only", &stubOracle{reply: "```json\n```"}},
		{"json array", &stubOracle{reply: `[true]`}},
		{"wrong types", &stubOracle{reply: `{"isRouteRequest": "yes", "origin": "A", "destination": "B", "aiReply": "C"}`}},
		{"missing destination", &stubOracle{reply: `{"isRouteRequest": true, "origin": "A", "aiReply": "C"}`}},
		{"blank origin", &stubOracle{reply: `{"isRouteRequest": true, "origin": "  ", "destination": "B", "aiReply": "C"}`}},
		{"missing flag", &stubOracle{reply: `{"origin": "A", "destination": "B"}`}},
		{"timeout", &stubOracle{block: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClassifier(t, tt.oracle)
			if tt.oracle.block {
				c.timeout = 20 * time.Millisecond
			}
			assert.Equal(t, NotRouteRequest, c.Classify(context.Background(), "ke Monas dari Kota Tua"))
		})
	}
}

func TestBuildPrompt_NoKnownSites(t *testing.T) {
	p := buildPrompt(`dari "A" ke B`, nil)
	assert.NotContains(t, p, "Tempat budaya yang dikenal")
	assert.True(t, strings.Contains(p, `"dari \"A\" ke B"`), "message must be quoted safely")
}
