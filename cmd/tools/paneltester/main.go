// Command paneltester exercises the focus-group engine end to end against
// real model credentials: a group question with no history, a follow-up fed
// the returned history, and a direct question to one persona.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/synthpanel/focusgroup/internal/config"
	"github.com/synthpanel/focusgroup/internal/model/conversation"
	"github.com/synthpanel/focusgroup/internal/model/persona"
	"github.com/synthpanel/focusgroup/internal/service/ai"
	"github.com/synthpanel/focusgroup/internal/service/focusgroup"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] no .env file, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if !cfg.AI.Enabled() {
		log.Fatal("Ark credentials not configured; set ARK_API_KEY + ARK_MODEL or the AK/SK pair")
	}

	audienceID := flag.String("audience", "premium_chocolate", "audience id to test against")
	question := flag.String("question", "What comes to mind when you think of premium chocolate?", "opening group question")
	followUp := flag.String("followup", "How does that compare to grocery store chocolate?", "follow-up group question")
	directID := flag.Int("persona", 1, "persona id for the direct question")
	directQ := flag.String("direct", "Tell me more about what shaped your preferences", "direct question text")
	timeout := flag.Duration("timeout", 3*time.Minute, "overall timeout")
	flag.Parse()

	var catalog persona.Catalog
	if _, err := os.Stat(cfg.Catalog.Path); err == nil {
		catalog = persona.NewFileCatalog(cfg.Catalog.Path)
	} else {
		catalog = persona.NewMemoryCatalog(persona.Seed())
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	aiSvc, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize AI service: %v", err)
	}
	svc := focusgroup.NewService(catalog, aiSvc)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("1. Group question (no history)")
	fmt.Printf("   Q: %s\n", *question)

	responses, history, err := svc.Ask(ctx, *audienceID, *question, nil)
	if err != nil {
		log.Fatalf("group ask failed: %v", err)
	}
	printResponses(responses)
	fmt.Printf("\n   [History now has %d messages]\n", len(history))

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("2. Follow-up question (with history)")
	fmt.Printf("   Q: %s\n", *followUp)

	responses, history, err = svc.Ask(ctx, *audienceID, *followUp, history)
	if err != nil {
		log.Fatalf("follow-up ask failed: %v", err)
	}
	printResponses(responses)
	fmt.Printf("\n   [History now has %d messages]\n", len(history))

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("3. Direct question to persona %d\n", *directID)
	fmt.Printf("   Q: %s\n", *directQ)

	response, history, err := svc.AskPersona(ctx, *audienceID, *directID, *directQ, history)
	if err != nil {
		log.Fatalf("direct ask failed: %v", err)
	}
	fmt.Printf("\n%s:\n   %s\n", strings.ToUpper(response.PersonaName), response.Text)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("FINAL TRANSCRIPT")
	for _, entry := range history {
		if entry.Role == conversation.RoleModerator {
			fmt.Printf("\nMODERATOR: %s\n", entry.Text)
		} else {
			fmt.Printf("\n%s: %s\n", strings.ToUpper(entry.PersonaName), entry.Text)
		}
	}
}

func printResponses(responses []conversation.Response) {
	for _, r := range responses {
		fmt.Printf("\n%s:\n   %s\n", strings.ToUpper(r.PersonaName), r.Text)
	}
}
