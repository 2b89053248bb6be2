package configs

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

func loadEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, reading environment directly")
		}
	})
}

func EnvMongoURI() string {
	loadEnv()
	return os.Getenv("MONGOURI")
}

func EnvSSLStoreID() string {
	loadEnv()
	return os.Getenv("SSL_STORE_ID")
}

func EnvSSLStorePassword() string {
	loadEnv()
	return os.Getenv("SSL_STORE_PASSWD")
}

// EnvSSLIsLive selects the live SSLCommerz endpoints; anything but the
// string "true" keeps the sandbox.
func EnvSSLIsLive() bool {
	loadEnv()
	return os.Getenv("SSL_IS_LIVE") == "true"
}

// EnvServerURL is this server's public base URL, used to build the
// gateway callback URLs.
func EnvServerURL() string {
	loadEnv()
	return os.Getenv("SERVER_URL")
}

// EnvClientURL is the client application's base URL, the target of the
// post-payment redirects.
func EnvClientURL() string {
	loadEnv()
	return os.Getenv("CLIENT_URL")
}

func EnvJWTSecret() string {
	loadEnv()
	return os.Getenv("JWT_SECRET")
}
