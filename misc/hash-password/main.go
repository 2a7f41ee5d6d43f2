// Generates the bcrypt hash for OPS_PASSWORD_HASH. Run it once when setting
// up the ops dashboard password and paste the output into the .env file.
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run main.go <password>")
	}
	password := os.Args[1]
	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Printf("OPS_PASSWORD_HASH=%s\n", hash)
}
