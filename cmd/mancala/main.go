package main

import (
	"github.com/rs/zerolog/log"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}
