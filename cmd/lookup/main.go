// Command lookup fetches one pokemon from PokeAPI, enriches it with the
// requested sub-records and prints the result as JSON.
//
//	lookup -config ./config.yaml -species -evolution deoxys-attack
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	pokemonrepo "github.com/heartmarshall/pokedex-backend/internal/adapter/memory/pokemon"
	"github.com/heartmarshall/pokedex-backend/internal/adapter/provider/pokeapi"
	"github.com/heartmarshall/pokedex-backend/internal/app"
	"github.com/heartmarshall/pokedex-backend/internal/config"
	"github.com/heartmarshall/pokedex-backend/internal/domain"
	"github.com/heartmarshall/pokedex-backend/internal/service/pokedex"
)

type output struct {
	Name       string          `json:"name"`
	Contents   domain.Contents `json:"contents"`
	Details    *domain.Details `json:"details,omitempty"`
	FlavorText string          `json:"flavor_text,omitempty"`
	Evolution  []string        `json:"evolution,omitempty"`
}

func main() {
	species := flag.Bool("species", false, "load species data")
	evolution := flag.Bool("evolution", false, "load the evolution chain (implies -species)")
	lang := flag.String("lang", domain.DefaultLanguage, "flavor text language")
	configPath := flag.String("config", "", "path to config.yaml (default: $CONFIG_PATH or ./config.yaml)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lookup [-config path] [-species] [-evolution] [-lang en] <name>")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	prov := pokeapi.NewProvider(cfg.PokeAPI, logger)
	prov.SetUserAgent(app.UserAgent())
	svc := pokedex.NewService(logger, pokemonrepo.New(), prov)

	p, err := svc.FetchPokemon(ctx, flag.Arg(0),
		pokedex.Facets{Details: true, Species: *species, EvolutionChain: *evolution},
		pokedex.Options{},
	)
	if err != nil {
		logger.Error("lookup failed", slog.String("pokemon", flag.Arg(0)), slog.String("error", err.Error()))
		os.Exit(1)
	}

	out := output{Name: p.Name(), Contents: p.Contains()}
	out.Details, _ = p.Details()
	out.FlavorText, _ = p.FlavorText(*lang)
	if chain := p.EvolutionChain(); chain != nil {
		chain.LinkMap(func(link domain.Link, stage *domain.Pokemon) {
			out.Evolution = append(out.Evolution, fmt.Sprintf("%d:%s", link.Phase, stage.Name()))
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
