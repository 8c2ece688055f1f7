// Command curie applies a configured pre-transform chain to data records
// and reports (or exports) the resulting tensors.
//
// Each positional argument describes one record as comma-separated
// key=path pairs:
//
//	curie -config pipeline.yml image=scan.png,label=mask.png
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/curie-ml/curie/internal/config"
	"github.com/curie-ml/curie/internal/export"
	"github.com/curie-ml/curie/internal/imaging"
	"github.com/curie-ml/curie/internal/logging"
	"github.com/curie-ml/curie/internal/pipeline"
	"github.com/curie-ml/curie/internal/record"
	"github.com/curie-ml/curie/internal/transform"
)

func main() {
	logging.InitFromEnv()

	cfgPath := flag.String("config", "", "pipeline config YAML")
	dump := flag.Bool("dump", false, "pretty-print transformed records")
	outDir := flag.String("out", "", "write transformed records as SafeTensors files into this directory")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Configure(logging.Options{Level: cfg.Logging.Level, JSON: cfg.Logging.JSON})

	if flag.NArg() == 0 {
		log.Fatal("no records given; expected key=path[,key=path...] arguments")
	}
	recs, err := parseRecords(flag.Args())
	if err != nil {
		log.Fatalf("records: %v", err)
	}

	chain, err := buildChain(cfg)
	if err != nil {
		log.Fatalf("chain: %v", err)
	}

	logging.L().Info("running pipeline",
		"records", len(recs), "image_keys", cfg.ImageKeys, "label_keys", cfg.LabelKeys)

	results := pipeline.NewRunner(chain, cfg.Workers).Run(recs)

	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "record %d: %v\n", i, res.Err)
			continue
		}
		if *dump {
			spew.Dump(res.Record)
		} else {
			printSummary(i, res.Record)
		}
		if *outDir != "" {
			if err := exportRecord(*outDir, i, res.Record); err != nil {
				log.Fatalf("export record %d: %v", i, err)
			}
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// buildChain assembles the transform chain from the config: file loading
// for every key, then label normalization.
func buildChain(cfg config.Pipeline) (transform.Transform, error) {
	keys := transform.Keys(append(append([]string{}, cfg.ImageKeys...), cfg.LabelKeys...))
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	reader, err := resolveReader(cfg.Reader)
	if err != nil {
		return nil, err
	}

	chain := transform.Compose{transform.NewExtendedFileLoader(keys, reader)}
	if len(cfg.LabelKeys) > 0 {
		chain = append(chain, &transform.NormalizeLabel{
			Keys:  transform.Keys(cfg.LabelKeys),
			Value: cfg.LabelValue,
		})
	}
	return chain, nil
}

// resolveReader maps the config reader hint to a concrete reader. Empty
// means registry dispatch on the file extension.
func resolveReader(name string) (imaging.Reader, error) {
	switch name {
	case "":
		return nil, nil
	case "std":
		return imaging.NewStdReader(), nil
	default:
		return nil, fmt.Errorf("unknown reader %q (supported: std)", name)
	}
}

// parseRecords turns "key=path,key=path" arguments into records.
func parseRecords(args []string) ([]record.Record, error) {
	recs := make([]record.Record, 0, len(args))
	for _, arg := range args {
		rec := record.Record{}
		for _, pair := range strings.Split(arg, ",") {
			key, path, ok := strings.Cut(pair, "=")
			if !ok || key == "" || path == "" {
				return nil, fmt.Errorf("malformed record entry %q (want key=path)", pair)
			}
			rec[key] = record.Path(path)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func printSummary(i int, rec record.Record) {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("record %d:\n", i)
	for _, k := range keys {
		switch v := rec[k].(type) {
		case record.Tensor:
			fmt.Printf("  %-12s tensor %v %s spatial=%v\n", k, v.Shape(), v.DType(), v.Meta.SpatialShape)
		case record.Raw:
			fmt.Printf("  %-12s array  %v %s\n", k, v.Shape(), v.DType())
		case record.Path:
			fmt.Printf("  %-12s path   %s\n", k, string(v))
		case record.MetaEntry:
			// Shown with its image key above.
		}
	}
}

func exportRecord(dir string, i int, rec record.Record) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tensors, metadata := export.RecordTensors(rec)
	path := filepath.Join(dir, fmt.Sprintf("record_%04d.safetensors", i))
	return export.WriteSafeTensors(path, tensors, metadata)
}
