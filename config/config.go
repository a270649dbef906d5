package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	// load .env before the config snapshot below is taken
	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
)

type Config struct {
	postgresHost string
	postgresPort string
	postgresUser string
	postgresPass string
	postgresDB   string

	redisAddr string

	razorpayKeyID     string
	razorpayKeySecret string

	s3Bucket     string
	s3Region     string
	awsAccessKey string
	awsSecretKey string

	joinFee       decimal.Decimal
	signingSecret []byte
	logLevel      string
	env           string
}

var (
	config Config
)

func init() {
	signingSecret, err := base64.StdEncoding.DecodeString(os.Getenv("SIGNING_SECRET"))
	if err != nil {
		panic("can't decode signing secret")
	}
	config = Config{
		postgresHost: os.Getenv("POSTGRES_HOST"),
		postgresPort: os.Getenv("POSTGRES_PORT"),
		postgresUser: os.Getenv("POSTGRES_USER"),
		postgresPass: os.Getenv("POSTGRES_PASS"),
		postgresDB:   os.Getenv("POSTGRES_DB"),

		redisAddr: getEnvOrDefault("REDIS_ADDR", "localhost:6379"),

		razorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		razorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		s3Bucket:     os.Getenv("S3_BUCKET"),
		s3Region:     getEnvOrDefault("S3_REGION", "ap-south-1"),
		awsAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		awsSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),

		signingSecret: signingSecret,
		logLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		env:           getEnvOrDefault("ENV", "LOCAL"),
	}

	fee := getEnvOrDefault("QUEUE_JOIN_FEE", "0")
	joinFee, err := decimal.NewFromString(fee)
	if err != nil {
		panic(fmt.Sprintf("can't parse QUEUE_JOIN_FEE %q", fee))
	}
	config.joinFee = joinFee
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetSigningSecret() []byte {
	return config.signingSecret
}

func GetRedisAddr() string {
	return config.redisAddr
}

func GetRazorpayKeys() (keyID string, keySecret string) {
	return config.razorpayKeyID, config.razorpayKeySecret
}

func GetS3Bucket() string {
	return config.s3Bucket
}

func GetS3Region() string {
	return config.s3Region
}

func GetAWSKeys() (accessKey string, secretKey string) {
	return config.awsAccessKey, config.awsSecretKey
}

// GetJoinFee returns the fee (in rupees) charged on paid queue joins.
// Zero means joining is free and no payment verification happens.
func GetJoinFee() decimal.Decimal {
	return config.joinFee
}

func GetLogLevel() string {
	return config.logLevel
}

func GetDBString() string {
	switch strings.ToUpper(config.env) {
	case "LOCAL":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s connect_timeout=5 sslmode=disable",
			config.postgresHost, config.postgresPort, config.postgresUser, config.postgresPass, config.postgresDB)
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s connect_timeout=5",
			config.postgresHost, config.postgresPort, config.postgresUser, config.postgresPass, config.postgresDB)
	}
}
