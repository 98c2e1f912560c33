package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk2023060901/youtube-searcher-backend/internal/conf"
	"github.com/lk2023060901/youtube-searcher-backend/internal/data"
	"github.com/lk2023060901/youtube-searcher-backend/internal/pkg/logger"
	storagedata "github.com/lk2023060901/youtube-searcher-backend/internal/storage/data"
)

var (
	configFile = flag.String("config", "config.yaml", "config file path")
)

// Reports the row counts of the two storage tables.
func main() {
	flag.Parse()

	config, err := conf.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  "warn",
		Format: "console",
		Output: "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	d, cleanup, err := data.NewData(config, log, data.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	var responses, snippets int64
	if err := d.DB.Model(&storagedata.ResponsePO{}).Count(&responses).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to count responses: %v\n", err)
		os.Exit(1)
	}
	if err := d.DB.Model(&storagedata.SnippetPO{}).Count(&snippets).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to count snippets: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("responses: %d\nsnippets:  %d\n", responses, snippets)
}
