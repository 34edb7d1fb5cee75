package guide

import (
	"context"
	"errors"
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
	block   bool
	prompts []string
}

func (s *stubOracle) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func newGuide(t *testing.T, oracle *stubOracle, timeout time.Duration) *Guide {
	catalog := sites.NewCatalog(sites.NewStaticStore(), 0, nil)
	return New(oracle, catalog, timeout, zaptest.NewLogger(t))
}

func TestAnswer_GroundedInMentionedSites(t *testing.T) {
	oracle := &stubOracle{reply: "  Gedung Sate dibangun tahun 1920.  "}
	g := newGuide(t, oracle, time.Second)

	got := g.Answer(context.Background(), "Ceritakan tentang gedung sate dong")

	assert.Equal(t, "Gedung Sate dibangun tahun 1920.", got)
	require.Len(t, oracle.prompts, 1)
	p := oracle.prompts[0]
	assert.Contains(t, p, `Anda adalah "Garudie"`)
	assert.Contains(t, p, "Nama: Gedung Sate\nDeskripsi: Gedung Sate adalah ikon kota Bandung")
	assert.Contains(t, p, "Ceritakan tentang gedung sate dong")
	assert.NotContains(t, p, noContext)
}

func TestAnswer_NoContext(t *testing.T) {
	oracle := &stubOracle{reply: "Halo!"}
	g := newGuide(t, oracle, time.Second)

	assert.Equal(t, "Halo!", g.Answer(context.Background(), "halo"))
	assert.Contains(t, oracle.prompts[0], noContext)
}

func TestAnswer_Apologises(t *testing.T) {
	tests := []struct {
		name   string
		oracle *stubOracle
	}{
		{"oracle error", &stubOracle{err: errors.New("503")}},
		{"blank answer", &stubOracle{reply: " \n "}},
		{"timeout", &stubOracle{block: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGuide(t, tt.oracle, 20*time.Millisecond)
			assert.Equal(t, Apology, g.Answer(context.Background(), "Apa itu wayang?"))
		})
	}
}

func TestGroundingContext_JoinsBlocks(t *testing.T) {
	got := groundingContext([]sites.Site{
		{Name: "Borobudur", Description: "Candi Buddha."},
		{Name: "Mendut", Description: "Candi kecil."},
	})
	assert.Equal(t, "Nama: Borobudur\nDeskripsi: Candi Buddha.\n\nNama: Mendut\nDeskripsi: Candi kecil.", got)
}
