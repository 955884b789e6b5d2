package cmd

import "time"

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GroqBaseURL string
	GroqAPIKey  string
	GroqModel   string

	GPSCacheTTL           time.Duration
	IdleSpeedThresholdKmh float64
	CleanupRetention      time.Duration
	AutoAssignDelivery    bool
	AutoProcessMaxValue   float64
	WarehouseLat          float64
	WarehouseLng          float64
}
