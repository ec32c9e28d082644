// Command reactord is a minimal demo server for the ReAct engine: it
// drives a full Think-Act-Observe run against a canned LLM client and a
// canned tool executor, and streams progress over Server-Sent Events.
// It exists to exercise pkg/engine end to end over HTTP; a production
// deployment would swap the demo LLM client and tool executor for
// provider-backed implementations.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/loopworks/reactor/pkg/config"
	"github.com/loopworks/reactor/pkg/engine"
	"github.com/loopworks/reactor/pkg/events"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	configPath := flag.String("config", getEnv("REACTORD_CONFIG", ""), "path to a ReAct config YAML file (optional)")
	httpPort := flag.String("port", getEnv("REACTORD_PORT", "8080"), "HTTP port to listen on")
	ginMode := flag.String("gin-mode", getEnv("GIN_MODE", gin.ReleaseMode), "gin mode: debug, release, or test")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	gin.SetMode(*ginMode)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}

	publisher := newSSEPublisher()

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/run", func(c *gin.Context) {
		handleRun(c, cfg, publisher)
	})

	router.GET("/events/:id", func(c *gin.Context) {
		handleEvents(c, publisher)
	})

	log.Printf("reactord listening on :%s", *httpPort)
	if err := router.Run(":" + *httpPort); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

type runRequest struct {
	Query string `json:"query" binding:"required"`
}

func handleRun(c *gin.Context, cfg engine.Config, publisher events.Publisher) {
	var req runRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eng := engine.WithConfig(newDemoLLMClient("search"), newDemoToolExecutor(), publisher, cfg)

	resp := eng.Run(c.Request.Context(), req.Query)

	c.JSON(http.StatusOK, gin.H{
		"session_id":           resp.SessionID,
		"final_answer":         resp.FinalAnswer,
		"termination_reason":   resp.TerminatedReason,
		"total_duration_secs":  resp.TotalDuration.Seconds(),
		"total_tools_executed": resp.TotalToolsExecuted,
		"iterations":           resp.Iterations,
	})
}

func handleEvents(c *gin.Context, publisher *ssePublisher) {
	sessionID := c.Param("id")

	ch := publisher.subscribe(sessionID)
	defer publisher.unsubscribe(sessionID, ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case data, ok := <-ch:
			if !ok {
				return false
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			return true
		case <-c.Request.Context().Done():
			return false
		case <-time.After(30 * time.Second):
			fmt.Fprint(w, ": keepalive\n\n")
			return true
		}
	})
}
