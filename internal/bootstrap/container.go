package bootstrap

import (
	"context"
	"log"

	"mobiadvisor-be/internal/config"
	"mobiadvisor-be/internal/controller"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/internal/repository/implementation"
	"mobiadvisor-be/internal/service"
	"mobiadvisor-be/pkg/advisor/correction"
	"mobiadvisor-be/pkg/advisor/intent"
	"mobiadvisor-be/pkg/advisor/recovery"
	"mobiadvisor-be/pkg/advisor/response"
	"mobiadvisor-be/pkg/advisor/retrieval"
	"mobiadvisor-be/pkg/advisor/similarity"
	"mobiadvisor-be/pkg/embedding"
	"mobiadvisor-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AdvisorController controller.IAdvisorController
	PhoneController   controller.IPhoneController

	// Background Services (Exposed for main.go to run)
	IndexerService service.IIndexerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	phoneRepo := implementation.NewPhoneRepository(db)
	embeddingRepo := implementation.NewPhoneEmbeddingRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	apiKey := cfg.Ai.OpenAIAPIKey
	baseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		baseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, cfg.Ai.LLMModel, baseURL, apiKey)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.OpenAIBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	default:
		log.Printf("[INFO] Embedding Provider disabled, similarity falls back to edit distance")
	}

	// 4. Similarity Strategy
	// Picked once at startup: vectors when an embedder is configured and the
	// index holds data, otherwise an in-memory edit-distance vocabulary.
	matcher := buildMatcher(embeddingProvider, embeddingRepo, phoneRepo, sysLogger)

	// 5. Engine Components
	classifier := intent.NewClassifier(llmProvider, sysLogger)
	corrector := correction.NewCorrector(matcher, retrieval.DefaultAliasTable(), sysLogger)

	retrievalCfg := retrieval.DefaultConfig()
	if cfg.Advisor.SemanticTopK > 0 {
		retrievalCfg.SemanticTopK = cfg.Advisor.SemanticTopK
	}
	retriever := retrieval.NewOrchestrator(phoneRepo, matcher, llmProvider, retrieval.DefaultAliasTable(), retrievalCfg, sysLogger)

	generator := response.NewGenerator(llmProvider, sysLogger)
	recoverer := recovery.NewRecoverer(phoneRepo, sysLogger)

	// 6. Services
	advisorService := service.NewAdvisorService(
		classifier,
		corrector,
		retriever,
		generator,
		recoverer,
		phoneRepo,
		sysLogger,
	)
	catalogService := service.NewCatalogService(phoneRepo, sysLogger)
	publisherService := service.NewPublisherService(pubSub, cfg.Advisor.IndexPhoneTopic, sysLogger)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.Advisor.IndexPhoneTopic,
		phoneRepo,
		embeddingRepo,
		embeddingProvider,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		AdvisorController: controller.NewAdvisorController(advisorService, sysLogger),
		PhoneController:   controller.NewPhoneController(catalogService, indexerService, publisherService),

		IndexerService: indexerService,
	}
}

func buildMatcher(
	embedder embedding.EmbeddingProvider,
	embeddings contract.PhoneEmbeddingRepository,
	phones contract.PhoneRepository,
	sysLogger logger.ILogger,
) similarity.Matcher {
	ctx := context.Background()

	if embedder != nil {
		count, err := embeddings.Count(ctx)
		if err != nil {
			log.Printf("[WARN] Could not inspect embedding index: %v", err)
		}
		if count > 0 {
			log.Printf("[INFO] Similarity strategy: VECTOR (%d vectors)", count)
			return similarity.NewVectorMatcher(embedder, embeddings, sysLogger)
		}
		log.Printf("[WARN] Embedding index is empty, falling back to edit distance")
	}

	brands, err := phones.ListBrands(ctx)
	if err != nil {
		log.Printf("[WARN] Could not load brand vocabulary: %v", err)
	}

	var models []similarity.ModelEntry
	rows, err := phones.ListModels(ctx, 0)
	if err != nil {
		log.Printf("[WARN] Could not load model vocabulary: %v", err)
	}
	for _, row := range rows {
		models = append(models, similarity.ModelEntry{
			Name:    row.ModelName,
			Brand:   row.CompanyName,
			PhoneId: row.Id,
		})
	}

	log.Printf("[INFO] Similarity strategy: EDIT DISTANCE (%d brands, %d models)", len(brands), len(models))
	return similarity.NewEditDistanceMatcher(brands, models, sysLogger)
}
