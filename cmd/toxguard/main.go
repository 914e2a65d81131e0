package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/toxguard-ai/toxguard/internal/config"
	"github.com/toxguard-ai/toxguard/internal/server"
	"github.com/toxguard-ai/toxguard/internal/toxguard"
)

func main() {
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	configPath := flag.String("config", "toxguard.yaml", "Path to toxguard config file")
	text := flag.String("text", "", "Classify a single text and exit instead of serving")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if !toxguard.ModelDirLooksValid(cfg.Model.Dir) {
		log.Printf("warning: %s is missing model.onnx or vocab.txt; the first classification will fail", cfg.Model.Dir)
	}

	detector := toxguard.NewDetector(toxguard.Options{
		ModelDir: cfg.Model.Dir,
		SeqLen:   cfg.Model.SeqLen,
	})

	if *text != "" {
		runOnce(detector, cfg, *text)
		return
	}

	addr := cfg.Server.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}

	srv := server.New(cfg, detector)

	log.Printf("Starting toxguard on %s...", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runOnce(detector *toxguard.Detector, cfg *config.Config, text string) {
	ctx := context.Background()
	result := detector.DetectToxicity(ctx, text)
	defer detector.Dispose()

	out := struct {
		toxguard.Result
		IsToxic bool `json:"is_toxic"`
	}{
		Result:  result,
		IsToxic: result.Toxic || result.Exceeds(cfg.Model.Threshold),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode result: %v", err)
	}
	if result.HasError {
		os.Exit(1)
	}
}
