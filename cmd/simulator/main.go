// Демо-прогон: сеет заказ, создает доставку через REST и запускает симуляцию
// движения, печатая статус до терминального состояния. Используется для ручной
// проверки стенда и нагрузочных сценариев.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"tracking/internal/entities"
	"tracking/internal/handlers/rest/dto"
	"tracking/internal/pkg/config"
	"tracking/internal/pkg/dotenv"
	"tracking/internal/pkg/postgres"
	"tracking/pkg/logger"
	"tracking/pkg/logger/zap_adapter"
)

const (
	pollInterval = time.Second
	runTimeout   = 5 * time.Minute
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	if _, err := os.Stat(".env"); err == nil {
		if err := dotenv.Load(); err != nil {
			mainLog.Error("failed to load .env file", logger.NewField("error", err))
			return
		}
	}

	if err := run(context.Background(), appLogger); err != nil {
		mainLog.Error("simulator run failed", logger.NewField("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger) error {
	runLog := log.With()

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	serviceURL := os.Getenv("SERVICE_URL")
	if serviceURL == "" {
		serviceURL = fmt.Sprintf("http://localhost:%s", os.Getenv("PORT"))
	}

	orderID, err := seedOrder(ctx, log)
	if err != nil {
		return fmt.Errorf("seed order: %w", err)
	}
	runLog.Info("order seeded", logger.NewField("order_id", orderID))

	client := &http.Client{Timeout: 10 * time.Second}

	delivery, err := createDelivery(ctx, client, serviceURL, orderID)
	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	runLog.Info("delivery created", logger.NewField("delivery_id", delivery.ID))

	if err := startSimulation(ctx, client, serviceURL, delivery.ID); err != nil {
		return fmt.Errorf("start simulation: %w", err)
	}

	return pollUntilTerminal(ctx, runLog, client, serviceURL, delivery.ID)
}

// seedOrder вставляет заказ напрямую в базу: у сервиса нет CRUD заказов,
// его источник заказов внешний.
func seedOrder(ctx context.Context, log logger.Logger) (string, error) {
	dbCfg := &config.Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}

	pool, err := postgres.NewConnPool(ctx, log, dbCfg)
	if err != nil {
		return "", fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	orderID := "demo-" + uuid.NewString()[:8]
	_, err = pool.Exec(ctx,
		`INSERT INTO orders (id, status) VALUES ($1, $2)`,
		orderID, entities.OrderCreated.String(),
	)
	if err != nil {
		return "", err
	}

	return orderID, nil
}

func createDelivery(ctx context.Context, client *http.Client, serviceURL, orderID string) (*dto.Delivery, error) {
	destinationLat := 55.7887
	destinationLng := 37.6496

	body, err := json.Marshal(dto.CreateDeliveryRequest{
		OrderID:        orderID,
		DestinationLat: &destinationLat,
		DestinationLng: &destinationLng,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serviceURL+"/delivery", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var delivery dto.Delivery
	if err := json.NewDecoder(resp.Body).Decode(&delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}

func startSimulation(ctx context.Context, client *http.Client, serviceURL string, deliveryID int64) error {
	url := fmt.Sprintf("%s/delivery/%d/simulate", serviceURL, deliveryID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func pollUntilTerminal(ctx context.Context, runLog logger.Logger, client *http.Client, serviceURL string, deliveryID int64) error {
	url := fmt.Sprintf("%s/delivery/%d", serviceURL, deliveryID)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}

		var delivery dto.Delivery
		err = json.NewDecoder(resp.Body).Decode(&delivery)
		resp.Body.Close()
		if err != nil {
			return err
		}

		fields := []logger.Field{
			logger.NewField("status", delivery.Status),
		}
		if delivery.CurrentLat != nil && delivery.CurrentLng != nil {
			fields = append(fields,
				logger.NewField("lat", *delivery.CurrentLat),
				logger.NewField("lng", *delivery.CurrentLng),
			)
		}
		runLog.Info("delivery progress", fields...)

		if entities.DeliveryStatusType(delivery.Status).Terminal() {
			runLog.Info("simulation finished", logger.NewField("status", delivery.Status))
			return nil
		}
	}
}
