// Command devtoken mints access tokens for local testing. With -intent and
// -confirmation it also prints the payment signature the verify endpoint
// expects.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Vinayyy19/Furnista/common/auth"
	"github.com/Vinayyy19/Furnista/config"
	"github.com/Vinayyy19/Furnista/payment"
)

func main() {
	var (
		subject, role          string
		ttl                    time.Duration
		intentID, confirmation string
	)
	flag.StringVar(&subject, "sub", "", "user id to embed in the token")
	flag.StringVar(&role, "role", auth.RoleUser, "user or admin")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flag.StringVar(&intentID, "intent", "", "payment intent id to sign")
	flag.StringVar(&confirmation, "confirmation", "", "confirmation id to sign")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if subject != "" {
		if role != auth.RoleUser && role != auth.RoleAdmin {
			log.Fatalf("unknown role %q", role)
		}
		token, err := auth.NewTokenManager(cfg.JWTSecret).Issue(subject, role, ttl)
		if err != nil {
			log.Fatalf("issue token: %v", err)
		}
		fmt.Println("token:", token)
	}

	if intentID != "" || confirmation != "" {
		if intentID == "" || confirmation == "" {
			log.Fatal("-intent and -confirmation go together")
		}
		fmt.Println("signature:", payment.NewSigner(cfg.PaymentSigningSecret).Sign(intentID, confirmation))
	}

	if subject == "" && intentID == "" {
		flag.Usage()
	}
}
