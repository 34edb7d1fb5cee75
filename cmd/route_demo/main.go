package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"nusavarta/internal/ai"
	"nusavarta/internal/config"
	"nusavarta/internal/logger"
	"nusavarta/internal/maps"
	"nusavarta/internal/modules/confirm"
	"nusavarta/internal/modules/intent"
	"nusavarta/internal/modules/route"
	"nusavarta/internal/modules/sites"
)

func main() {
	message := flag.String("message", "Bagaimana rute dari Stasiun Bandung ke Saung Angklung Udjo?", "chat message to classify")
	answer := flag.String("answer", "ya boleh", "reply to the cultural detour offer; empty skips building the route")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Gemini.APIKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	zl := logger.New("warn", "console")
	provider, err := ai.NewGeminiProvider(ctx, ai.GeminiOptions{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	catalog := sites.NewCatalog(sites.NewStaticStore(), 0, zl)
	classifier, err := intent.NewClassifier(provider, catalog, cfg.Gemini.Timeout, zl)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("User: %s\n", *message)
	d := classifier.Classify(ctx, *message)
	fmt.Printf("Route request: %v\n", d.IsRouteRequest)
	if !d.IsRouteRequest {
		return
	}
	fmt.Printf("Origin: %s\nDestination: %s\nAI Reply: %s\n", d.Origin, d.Destination, d.AIReply)

	if *answer == "" || cfg.Maps.APIKey == "" {
		return
	}
	verdict := confirm.Resolve(*answer)
	fmt.Printf("User: %s (%s)\n", *answer, verdict)

	client, err := maps.NewClient(cfg.Maps.APIKey)
	if err != nil {
		log.Fatal(err)
	}
	opts := maps.Options{Region: cfg.Maps.Region, Language: cfg.Maps.Language}
	builder := route.NewBuilder(
		maps.NewGeocoder(client, maps.NewPlacesService(client, opts), opts),
		maps.NewRouteService(client, opts),
		catalog,
		route.Config{MaxWaypoints: cfg.Route.MaxWaypoints, Timeout: cfg.Maps.Timeout},
		zl,
	)
	res, err := builder.Build(ctx, d.Origin, d.Destination, verdict.IncludeCulturalWaypoints())
	if err != nil {
		log.Fatalf("Error building route: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(res)
}
