// Генератор нагрузки: шлет точки геопозиции в tracking-service и отдает
// свои метрики для Prometheus на :2112.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики
var (
	samplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "traffic_location_samples_total",
		Help: "Отправленные точки геопозиции по коду ответа",
	}, []string{"status"})

	sampleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "traffic_location_sample_duration_seconds",
		Help:    "Длительность запроса отправки точки",
		Buckets: []float64{0.1, 0.3, 0.5, 1, 2},
	})
)

type locationSample struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Speed float64 `json:"speed"`
}

func sendSample(client *http.Client, url string, lat, lng float64) {
	start := time.Now()
	defer func() {
		sampleDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(locationSample{
		Lat:   lat,
		Lng:   lng,
		Speed: 10 + rand.Float64()*20,
	})
	if err != nil {
		log.Printf("marshal sample: %v", err)
		return
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		samplesTotal.WithLabelValues("error").Inc()
		log.Printf("send sample: %v", err)
		return
	}
	defer resp.Body.Close()

	samplesTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
}

func main() {
	rand.Seed(time.Now().UnixNano())

	serviceURL := os.Getenv("SERVICE_URL")
	if serviceURL == "" {
		serviceURL = "http://localhost:8080"
	}
	deliveryID := os.Getenv("DELIVERY_ID")
	if deliveryID == "" {
		deliveryID = "1"
	}
	url := fmt.Sprintf("%s/delivery/%s/location", serviceURL, deliveryID)

	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":2112", nil)

	client := &http.Client{Timeout: 5 * time.Second}

	// случайное блуждание вокруг центра Москвы
	lat, lng := 55.7558, 37.6173
	for {
		lat += (rand.Float64() - 0.5) * 0.001
		lng += (rand.Float64() - 0.5) * 0.001
		sendSample(client, url, lat, lng)
		time.Sleep(5 * time.Second)
	}
}
