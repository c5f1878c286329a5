package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-curatorform"
	"github.com/goliatone/go-curatorform/internal/config"
	"github.com/goliatone/go-curatorform/pkg/curator"
	"github.com/goliatone/go-curatorform/pkg/renderers/tui"
)

func main() {
	format := flag.String("format", "json", "output format for the submitted profile (json, yaml, pretty)")
	configPath := flag.String("config", "", "form configuration YAML file")
	output := flag.String("output", "", "output file (stdout if empty)")
	renderer := flag.String("render", "", "print the empty form with this renderer (vanilla, json) instead of prompting")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	formCfg, err := config.LoadFormConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load form config: %v", err)
	}

	var submitted curator.Profile
	form, err := curatorform.NewForm(formCfg, func(_ context.Context, profile curator.Profile) error {
		submitted = profile
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	var out []byte
	if *renderer != "" {
		out, err = curatorform.Render(ctx, form, *renderer, curatorform.RenderOptions{})
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
	} else {
		outputFormat, err := tui.ParseOutputFormat(*format)
		if err != nil {
			log.Fatalf("Invalid format: %v", err)
		}
		filler, err := tui.New(tui.WithOutputFormat(outputFormat))
		if err != nil {
			log.Fatalf("Failed to configure prompts: %v", err)
		}
		if err := filler.Fill(ctx, form); err != nil {
			log.Fatalf("Failed to fill form: %v", err)
		}
		out, err = filler.Encode(submitted)
		if err != nil {
			log.Fatalf("Failed to encode profile: %v", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o600); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Written to %s\n", *output)
		return
	}
	fmt.Print(string(out))
}
