package main

import (
	"flag"
	"log"

	"github.com/tveita/femctl/internal/config"
)

func main() {
	kind := flag.String("kind", "build", "config kind: build|plot")
	output := flag.String("output", "", "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to per-kind path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		path := *input
		if path == "" {
			switch *kind {
			case "build":
				path = "cmd/buildctl/config.toml"
			case "plot":
				path = "cmd/plotctl/config.toml"
			default:
				log.Fatalf("unknown kind: %s", *kind)
			}
		}

		switch *kind {
		case "build":
			if _, err := config.LoadBuildConfig(path); err != nil {
				log.Fatal(err)
			}
		case "plot":
			if _, err := config.LoadPlotConfig(path); err != nil {
				log.Fatal(err)
			}
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
		log.Printf("Validated %s config at %s", *kind, path)
		return
	}

	target := *output
	if target == "" {
		switch *kind {
		case "build":
			target = "cmd/buildctl/config.toml"
		case "plot":
			target = "cmd/plotctl/config.toml"
		default:
			log.Fatalf("unknown kind: %s", *kind)
		}
	}

	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s config template to %s", *kind, target)
}
