package main

import (
	"fmt"
	"log"
	"os"

	"github.com/dimitrije/frame-nest/internal/config"
	"github.com/dimitrije/frame-nest/internal/models"
	"github.com/dimitrije/frame-nest/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: issue-token <principal>")
		os.Exit(1)
	}

	principal := models.Principal(os.Args[1])
	if err := services.ValidatePrincipal(principal); err != nil {
		log.Fatalf("Invalid principal: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)

	token, err := jwtService.GenerateAccessToken(principal)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Token for %s expires in %ds\n", principal, token.ExpiresIn)
	fmt.Println(token.Token)
}
