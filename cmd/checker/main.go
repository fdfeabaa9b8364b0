package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/callguard/spam-checker/internal/config"
	"github.com/callguard/spam-checker/internal/platform/storage/memory"
	"github.com/callguard/spam-checker/internal/platform/twilio"
	"github.com/callguard/spam-checker/internal/service"
)

// One-off operational tool: check a single number against the provider and
// print the rendered analysis report.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	phonePtr := flag.String("phone", "", "The phone number to check (E.164 format)")
	flag.Parse()

	if *phonePtr == "" {
		log.Fatal("❌ Error: You must provide a phone number.\nUsage: go run cmd/checker/main.go -phone=+12345678901")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	store := memory.NewStore()
	provider := twilio.NewClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	svc := service.NewLookupService(store, provider)

	ctx := context.Background()

	result, err := svc.CheckNumber(ctx, *phonePtr)
	if err != nil {
		log.Fatalf("❌ Check failed: %v", err)
	}

	report, err := svc.Fetch(ctx, result.ID)
	if err != nil {
		log.Fatalf("❌ Report rendering failed: %v", err)
	}

	fmt.Println(report.Text)
	log.Printf("✅ Done. %s scored %d (%s)", result.MaskedNumber, result.SpamScore, result.Reputation)
}
