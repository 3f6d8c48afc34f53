package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/freeeve/quiet-conquest/internal/model"
	"github.com/freeeve/quiet-conquest/pkg/conquest"
)

// schemaTarget pairs one wire type with its output file.
type schemaTarget struct {
	file        string
	title       string
	description string
	value       any
}

var targets = []schemaTarget{
	{
		file:        "order.json",
		title:       "Fleet Order",
		description: "A single fleet launch submitted by a player for one turn.",
		value:       conquest.Order{},
	},
	{
		file:        "player_view.json",
		title:       "Player View",
		description: "The fog-of-war-filtered game state one player can see.",
		value:       conquest.PlayerView{},
	},
	{
		file:        "event_log.json",
		title:       "Event Log",
		description: "Combat, hyperspace loss, arrival, and rebellion events grouped per turn.",
		value:       conquest.EventLog{},
	},
	{
		file:        "match.json",
		title:       "Match Record",
		description: "A finished selfplay match with final standings, as stored and exported.",
		value:       model.Match{},
	},
}

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "docs/schema", "output directory for JSON schemas")
	flag.Parse()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("schema: create output dir: %v", err)
	}

	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}

	for _, t := range targets {
		schema := reflector.ReflectFromType(reflect.TypeOf(t.value))
		if schema == nil {
			log.Fatalf("schema: failed to reflect %s", t.file)
		}
		schema.Title = t.title
		schema.Description = t.description

		data, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			log.Fatalf("schema: marshal %s: %v", t.file, err)
		}
		data = append(data, '\n')

		path := filepath.Join(outDir, t.file)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("schema: write %s: %v", path, err)
		}
		log.Printf("schema: wrote %s", path)
	}
}
