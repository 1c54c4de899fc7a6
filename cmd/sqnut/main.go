// Command sqnut generates DIN 557 and DIN 562 square nuts as STL meshes.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("sqnut failed")
		os.Exit(1)
	}
}
