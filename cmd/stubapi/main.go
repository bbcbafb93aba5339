// stubapi serves an in-memory stand-in for the SecureSpot business API on
// localhost, so the CLI can be exercised without the hosted services.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/securespot/securespot-go/internal/stub"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := flag.Int("port", 8080, "listen port")
	seed := flag.Bool("seed", true, "seed a demo account (demo@securespot.dev / demo123)")
	flag.Parse()

	server := stub.NewServer()
	if *seed {
		token := server.SeedAccount("Demo User", "demo@securespot.dev", "demo123")
		log.Info().Str("token", token).Msg("seeded demo account demo@securespot.dev / demo123")
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Info().Str("addr", addr).Msg("stub api listening")
	if err := http.ListenAndServe(addr, server.Routes()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
