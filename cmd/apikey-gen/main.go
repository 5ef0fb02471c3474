package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"autoserve.backend/pkg/crypto"
)

// Generates an API key and the hash to place in the STATIC_API_KEYS env
// entry or the api_keys table. The raw key is printed once; only the hash
// is ever stored.
func main() {
	name := flag.String("name", "bootstrap", "key name for the config entry")
	perms := flag.String("perms", "*", "pipe-separated permissions, e.g. bookings|customers")
	rateLimit := flag.Int("rate-limit", 1000, "requests per hour, 0 uses the server default")
	flag.Parse()

	rawKey, err := crypto.GenerateAPIKey()
	if err != nil {
		log.Fatalf("failed to generate api key: %v", err)
	}
	hash := crypto.HashAPIKey(rawKey)

	fmt.Println("Generated API key (shown once, store only the hash)")
	fmt.Printf("API_KEY=%s\n", rawKey)
	fmt.Printf("KEY_HASH=%s\n", hash)
	fmt.Printf("STATIC_API_KEYS entry: %s:%s:%s:%d\n", hash, *name, strings.TrimSpace(*perms), *rateLimit)
}
