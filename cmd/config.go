package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	KafkaHost              string
	KafkaOrderPlacedTopic  string
	KafkaOrderChangedTopic string

	TaxRate                 float64
	DeliveryFee             float64
	DeliveryEstimateMinutes int
}
