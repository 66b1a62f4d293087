// Command check-integrations smoke-tests the Azure credentials used by the
// client: an OpenAI chat turn and a report upload round-trip to Blob Storage.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/assistant"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/export"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/report"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	openaiEndpoint := os.Getenv("AZURE_OPENAI_ENDPOINT")
	openaiKey := os.Getenv("AZURE_OPENAI_API_KEY")
	openaiDeployment := os.Getenv("AZURE_OPENAI_DEPLOYMENT")

	storageAccountName := os.Getenv("AZURE_STORAGE_ACCOUNT_NAME")
	storageAccountKey := os.Getenv("AZURE_STORAGE_ACCOUNT_KEY")
	reportContainer := os.Getenv("AZURE_STORAGE_REPORT_CONTAINER")
	if reportContainer == "" {
		reportContainer = "health-reports"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	failed := false

	if openaiEndpoint == "" || openaiKey == "" || openaiDeployment == "" {
		logger.Warn("skipping Azure OpenAI check, set AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_API_KEY and AZURE_OPENAI_DEPLOYMENT")
	} else if err := checkAssistant(ctx, openaiEndpoint, openaiKey, openaiDeployment, logger); err != nil {
		logger.Error("Azure OpenAI check failed", zap.Error(err))
		failed = true
	} else {
		logger.Info("Azure OpenAI check passed")
	}

	if storageAccountName == "" || storageAccountKey == "" {
		logger.Warn("skipping Blob Storage check, set AZURE_STORAGE_ACCOUNT_NAME and AZURE_STORAGE_ACCOUNT_KEY")
	} else if err := checkReportUpload(ctx, storageAccountName, storageAccountKey, reportContainer, logger); err != nil {
		logger.Error("Blob Storage check failed", zap.Error(err))
		failed = true
	} else {
		logger.Info("Blob Storage check passed")
	}

	if failed {
		os.Exit(1)
	}
}

func checkAssistant(ctx context.Context, endpoint, apiKey, deployment string, logger *zap.Logger) error {
	client, err := assistant.NewClient(endpoint, apiKey, deployment, logger)
	if err != nil {
		return fmt.Errorf("failed to create assistant client: %w", err)
	}

	msg, err := client.Chat(ctx, &model.ChatRequest{Prompt: "Reply with a one sentence tip about staying hydrated."})
	if err != nil {
		return fmt.Errorf("chat completion failed: %w", err)
	}

	logger.Info("assistant response received",
		zap.String("model", msg.Model),
		zap.Int("response_length", len(msg.Response)),
		zap.Int64("total_tokens", msg.Usage.TotalTokens),
	)
	return nil
}

func checkReportUpload(ctx context.Context, accountName, accountKey, container string, logger *zap.Logger) error {
	sink, err := export.NewBlobSink(accountName, accountKey, container, logger)
	if err != nil {
		return fmt.Errorf("failed to create blob sink: %w", err)
	}

	pdf, err := report.NewGenerator(logger).Generate(&report.Data{
		UserName:  "Integration Check",
		DateRange: "all time",
	})
	if err != nil {
		return fmt.Errorf("failed to generate sample report: %w", err)
	}

	filename := fmt.Sprintf("integration-check-%s.pdf", time.Now().UTC().Format("20060102-150405"))
	location, err := sink.Upload(ctx, filename, pdf)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	downloaded, err := sink.Download(ctx, location)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if !bytes.Equal(pdf, downloaded) {
		return fmt.Errorf("downloaded report differs from upload: %d != %d bytes", len(downloaded), len(pdf))
	}

	logger.Info("report round-trip completed",
		zap.String("location", location),
		zap.Int("size_bytes", len(pdf)),
	)
	return nil
}
