package main

import (
	"log"
	"net/url"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/vectorstores/qdrant"

	"github.com/mkravets/jobscout/internal/config"
	"github.com/mkravets/jobscout/internal/database"
	"github.com/mkravets/jobscout/internal/handlers"
	"github.com/mkravets/jobscout/internal/services"
	"github.com/mkravets/jobscout/internal/storage"
	"github.com/mkravets/jobscout/internal/vectorstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[api] no .env file, relying on the environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("[api] config: ", err)
	}

	// Chat history is optional: without a database the chat still works,
	// it just forgets each exchange.
	var history *services.HistoryService
	if cfg.DatabaseURL == "" {
		log.Println("[api] DATABASE_URL not set, chat history disabled")
	} else {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[api] database unavailable, chat history disabled: %v", err)
		} else {
			history = services.NewHistoryService(db)
		}
	}

	records, err := storage.LoadEnriched(cfg.EnrichedCSVPath)
	if err != nil {
		log.Printf("[api] could not load enriched dataset: %v", err)
	}
	log.Printf("[api] serving %d enriched listings", len(records))
	dataset := services.NewDatasetService(records)

	chatLLM, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.ChatModel),
	)
	if err != nil {
		log.Fatal("[api] create chat client: ", err)
	}

	qdrantClient := vectorstore.New(cfg.QdrantURL, cfg.QdrantAPIKey)

	var searcher services.SimilaritySearcher
	if cfg.ChatTopK > 0 {
		searcher, err = buildSearcher(cfg)
		if err != nil {
			log.Printf("[api] top-k retrieval unavailable, falling back to scroll: %v", err)
		}
	}

	chat := services.NewChatService(chatLLM, qdrantClient, searcher, cfg)

	vacancyHandler := handlers.NewVacancyHandler(dataset)
	chatHandler := handlers.NewChatHandler(chat, history)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.LoadHTMLGlob("templates/*.html")

	r.GET("/", vacancyHandler.Home)
	r.GET("/vacancies", vacancyHandler.List)
	r.GET("/chat", chatHandler.Page)
	r.POST("/chat", chatHandler.Post)

	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/chat", chatHandler.PostJSON)
		api.GET("/rooms", chatHandler.Rooms)
		api.DELETE("/rooms/:name", chatHandler.DeleteRoom)
	}

	log.Printf("[api] server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("[api] server failed: ", err)
	}
}

// buildSearcher wires the langchaingo qdrant store used by the top-k
// retrieval mode. The bulk scroll mode talks to qdrant directly instead.
func buildSearcher(cfg *config.Config) (services.SimilaritySearcher, error) {
	embedLLM, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(embedLLM)
	if err != nil {
		return nil, err
	}

	qdrantURL, err := url.Parse(cfg.QdrantURL)
	if err != nil {
		return nil, err
	}

	store, err := qdrant.New(
		qdrant.WithURL(*qdrantURL),
		qdrant.WithAPIKey(cfg.QdrantAPIKey),
		qdrant.WithCollectionName(cfg.QdrantCollection),
		qdrant.WithEmbedder(embedder),
		qdrant.WithContentKey("page_content"),
	)
	if err != nil {
		return nil, err
	}
	return store, nil
}
