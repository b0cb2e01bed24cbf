//go:build ignore

// Generates random secrets for JWT signing and kiosk API keys.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func randomKey(length int) string {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
		os.Exit(1)
	}
	return base64.StdEncoding.EncodeToString(bytes)
}

func main() {
	fmt.Println("=== POS Checkout Service Key Generator ===")
	fmt.Println()
	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("# JWT Configuration")
	fmt.Printf("JWT_SECRET_KEY=%s\n", randomKey(32))
	fmt.Printf("JWT_REFRESH_SECRET_KEY=%s\n", randomKey(32))
	fmt.Println()
	fmt.Println("# Per-device API key for kiosks (comma-separate to add more)")
	fmt.Printf("API_KEYS=%s\n", randomKey(24))
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Use different keys for each environment (dev, staging, prod)")
	fmt.Println("- Store production keys in a secure secret manager")
}
