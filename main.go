package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/wordlearn/internal/bot"
	"github.com/example/wordlearn/internal/database"
	"github.com/example/wordlearn/internal/excel"
	"github.com/example/wordlearn/internal/practice"
	"github.com/example/wordlearn/internal/reminder"
)

func main() {
	importFile := flag.String("import", "", "import word pairs from an xlsx/csv file and exit")
	flag.Parse()

	// Missing .env is fine; plain environment variables still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := database.NewStore(db)

	if *importFile != "" {
		runImport(store, *importFile)
		return
	}

	cfg := practice.DefaultConfig()
	cfg.ApplyEnv()
	engine := practice.New(store, cfg)

	b, err := bot.New(engine)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Warning: invalid timezone %q, using UTC", cfg.Timezone)
		loc = time.UTC
	}
	reminders := reminder.New(store, b, loc)
	reminders.Start()
	defer reminders.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		b.Stop()
		cancel()
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	if err := b.Start(ctx); err != nil && err != context.Canceled {
		log.Printf("Bot error: %v", err)
	}
	log.Println("Bot stopped")
}

func runImport(store *database.Store, path string) {
	result, err := excel.ImportWords(context.Background(), store, excel.DefaultImportConfig(path))
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Import finished: %d processed, %d created, %d skipped",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("Import error: %s", e)
	}
}
