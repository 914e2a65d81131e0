package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/toxguard-ai/toxguard/internal/config"
	"github.com/toxguard-ai/toxguard/internal/toxguard"
)

func main() {
	cfgPath := flag.String("config", "toxguard.yaml", "path to config yaml")
	n := flag.Int("n", 200, "number of iterations")
	text := flag.String("text", "you are a worthless idiot and everyone hates you", "text to classify")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	detector := toxguard.NewDetector(toxguard.Options{
		ModelDir: cfg.Model.Dir,
		SeqLen:   cfg.Model.SeqLen,
	})
	defer detector.Dispose()

	ctx := context.Background()
	if err := detector.EnsureReady(ctx); err != nil {
		log.Fatalf("load session: %v", err)
	}

	// Warmup
	for i := 0; i < 5; i++ {
		if res := detector.DetectToxicity(ctx, *text); res.HasError {
			log.Fatalf("warmup classification failed")
		}
	}

	if *n <= 0 {
		*n = 1
	}

	durations := make([]time.Duration, 0, *n)
	for i := 0; i < *n; i++ {
		start := time.Now()
		if res := detector.DetectToxicity(ctx, *text); res.HasError {
			log.Fatalf("classification failed")
		}
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	var total time.Duration
	for _, d := range durations {
		total += d
	}

	avg := float64(total.Microseconds()) / 1000.0 / float64(len(durations))
	p50 := float64(durations[len(durations)/2].Microseconds()) / 1000.0
	p95 := float64(durations[int(float64(len(durations))*0.95)].Microseconds()) / 1000.0

	fmt.Printf("bench: n=%d avg_ms=%.2f p50_ms=%.2f p95_ms=%.2f model_dir=%s\n",
		len(durations), avg, p50, p95, cfg.Model.Dir)
}
