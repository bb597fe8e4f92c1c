package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"mobiadvisor-be/internal/config"
	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/implementation"
	"mobiadvisor-be/internal/service"
	"mobiadvisor-be/pkg/database"
	"mobiadvisor-be/pkg/embedding"

	"github.com/fatih/color"
)

// Column headers as they appear in the source dataset.
const (
	colCompany      = "Company Name"
	colModel        = "Model Name"
	colProcessor    = "Processor"
	colLaunchedYear = "Launched Year"
	colRating       = "User Rating.1"
	colReview       = "User Review.1"
	colCameraRt     = "User Camera Rating"
	colBatteryRt    = "User Battery Life Rating"
	colDesignRt     = "User Design Rating"
	colDisplayRt    = "User Display Rating"
	colPerfRt       = "User Performance Rating"
	colMemory       = "Memory (GB)"
	colWeight       = "Mobile Weight (g)"
	colRam          = "RAM (GB)"
	colFrontCam     = "Front Camera (MP)"
	colBackCam      = "Back Camera (MP)"
	colBattery      = "Battery Capacity (mAh)"
	colPrice        = "Launched Price (INR)"
	colScreen       = "Screen Size (inches)"
)

func main() {
	filePath := flag.String("file", "data/phones.csv", "path to the catalog CSV")
	reindex := flag.Bool("reindex", false, "rebuild the embedding index after import")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	color.Cyan("Importing phone catalog from %s", *filePath)

	phones, skipped, err := readCatalog(*filePath)
	if err != nil {
		color.Red("Import failed: %v", err)
		os.Exit(1)
	}

	phoneRepo := implementation.NewPhoneRepository(db)
	ctx := context.Background()

	if err := phoneRepo.CreateBulk(ctx, phones); err != nil {
		color.Red("Insert failed: %v", err)
		os.Exit(1)
	}

	color.Green("Imported %d phones (%d rows skipped)", len(phones), skipped)

	if !*reindex {
		return
	}

	var embedder embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	case "openai":
		embedder = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIBaseURL, cfg.Ai.EmbeddingModel)
	default:
		color.Yellow("No embedding provider configured, skipping reindex")
		return
	}

	color.Cyan("Rebuilding embedding index...")

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	indexer := service.NewIndexerService(
		nil, // no subscriber needed for a one-shot rebuild
		cfg.Advisor.IndexPhoneTopic,
		phoneRepo,
		implementation.NewPhoneEmbeddingRepository(db),
		embedder,
		sysLogger,
	)

	if err := indexer.RebuildAll(ctx); err != nil {
		color.Red("Reindex failed: %v", err)
		os.Exit(1)
	}

	color.Green("Embedding index rebuilt")
}

func readCatalog(path string) ([]*entity.Phone, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, 0, err
	}
	if len(rows) < 2 {
		return nil, 0, nil
	}

	header := map[string]int{}
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	var phones []*entity.Phone
	skipped := 0

	for _, row := range rows[1:] {
		get := func(col string) string {
			idx, ok := header[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		company := get(colCompany)
		model := get(colModel)
		price := parseInt(get(colPrice))
		if company == "" || model == "" || price <= 0 {
			skipped++
			continue
		}

		phones = append(phones, &entity.Phone{
			CompanyName:       company,
			ModelName:         model,
			Processor:         get(colProcessor),
			LaunchedYear:      parseInt(get(colLaunchedYear)),
			UserRating:        parseFloat(get(colRating)),
			UserReview:        get(colReview),
			CameraRating:      parseFloat(get(colCameraRt)),
			BatteryRating:     parseFloat(get(colBatteryRt)),
			DesignRating:      parseFloat(get(colDesignRt)),
			DisplayRating:     parseFloat(get(colDisplayRt)),
			PerformanceRating: parseFloat(get(colPerfRt)),
			MemoryGb:          parseInt(get(colMemory)),
			WeightG:           parseFloat(get(colWeight)),
			RamGb:             parseFloat(get(colRam)),
			FrontCameraMp:     parseFloat(get(colFrontCam)),
			BackCameraMp:      parseFloat(get(colBackCam)),
			BatteryMah:        parseInt(get(colBattery)),
			PriceInr:          price,
			ScreenSize:        parseFloat(get(colScreen)),
		})
	}

	return phones, skipped, nil
}

// parseInt tolerates unit suffixes and thousand separators found in the
// dataset ("8GB", "5,000 mAh", "INR 79,999").
func parseInt(s string) int {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(v)
}

func parseFloat(s string) float64 {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

func cleanNumeric(s string) string {
	var b strings.Builder
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' && !seenDot:
			seenDot = true
			b.WriteRune(r)
		}
	}
	return b.String()
}
