// Seeds the stock boards. Safe to run repeatedly: existing boards keep their
// threads and only get their title/description refreshed.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/nanashi-dev/nanashi/internal/config"
	"github.com/nanashi-dev/nanashi/internal/storage/pg"
)

var stockBoards = []struct {
	slug        string
	title       string
	description string
}{
	{"news", "News", "Breaking news and current events."},
	{"tech", "Technology & Programming", "Software, hardware and programming talk."},
	{"chat", "Random", "Anything goes. Be nice."},
}

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Print("no .env file found, using system env vars")
	}
	cfg := config.MustLoad(configFolder)

	db, err := pg.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to db: %s", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	for _, b := range stockBoards {
		_, err := db.Exec(`
		INSERT INTO boards(id, slug, title, description, activity_at, created_at)
		VALUES($1, $2, $3, $4, $5, $5)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description`,
			uuid.NewString(), b.slug, b.title, b.description, now)
		if err != nil {
			log.Fatalf("failed to seed board %s: %s", b.slug, err)
		}
		log.Printf("Board ready: %s", b.title)
	}
}
