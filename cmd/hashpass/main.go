// Command hashpass generates the bcrypt hash for ADMIN_PASSWORD_HASH.
//
// Usage:
//
//	go run ./cmd/hashpass 'your-admin-password'
//
// The printed hash goes into the environment (or .env); the plaintext
// password is never stored anywhere.
package main

import (
	"fmt"
	"os"

	"github.com/sakif/portfolio-server/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <password>\n", os.Args[0])
		os.Exit(2)
	}

	hash, err := auth.NewPasswordService().Hash(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
}
