package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deepankarm/docfields/pkg/document"
	"github.com/deepankarm/docfields/pkg/schemagen"
	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
	"gopkg.in/yaml.v3"
)

var (
	errSchemaFlag    = errors.New("--schema is required")
	errInvalidRecord = errors.New("some records are invalid")
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "validate FILE...",
		Short:   "Validate JSON or YAML records",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: requireSchemaFlag,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := document.LoadYAMLFile(schemaPath)
			if err != nil {
				return err
			}
			invalid := 0
			for _, path := range args {
				recs, err := readRecords(schema, path)
				if err != nil {
					return err
				}
				for i, rec := range recs {
					label := fmt.Sprintf("%s[%d]", path, i)
					if err := schema.Validate(schema.ApplyDefaults(rec)); err != nil {
						invalid++
						report(label, err)
						continue
					}
					fmt.Fprintf(out, "%s: ok\n", label)
				}
			}
			if invalid > 0 {
				return fmt.Errorf("%w: %d", errInvalidRecord, invalid)
			}
			return nil
		},
	}
}

func newJSONSchemaCmd() *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:     "jsonschema",
		Short:   "Print the JSON Schema of the definition",
		Args:    cobra.NoArgs,
		PreRunE: requireSchemaFlag,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := document.LoadYAMLFile(schemaPath)
			if err != nil {
				return err
			}
			js := schemagen.GenerateWithOptions(schema, schemagen.Options{Title: title})
			data, err := json.MarshalIndent(js, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Override the schema title")
	return cmd
}

func newStoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "store FILE",
		Short:   "Print records as the documents kept in the store, in relaxed Extended JSON",
		Args:    cobra.ExactArgs(1),
		PreRunE: requireSchemaFlag,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := document.LoadYAMLFile(schemaPath)
			if err != nil {
				return err
			}
			recs, err := readRecords(schema, args[0])
			if err != nil {
				return err
			}
			for i, rec := range recs {
				rec = schema.ApplyDefaults(rec)
				if err := schema.Validate(rec); err != nil {
					report(fmt.Sprintf("%s[%d]", args[0], i), err)
					return errInvalidRecord
				}
				doc, err := schema.ToStore(rec)
				if err != nil {
					return err
				}
				data, err := bson.MarshalExtJSON(doc, false, false)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}
}

func report(label string, err error) {
	var errs document.ValidationErrors
	if !errors.As(err, &errs) {
		fmt.Fprintf(out, "%s: %v\n", label, err)
		return
	}
	for _, e := range errs {
		fmt.Fprintf(out, "%s: %s (%s)\n", label, e.Error(), e.Type)
	}
}

// readRecords reads one record, or a list of records, from a JSON or YAML file.
func readRecords(schema *document.Schema, path string) ([]document.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Verbose("reading records from", path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlRecords(data, path)
	case ".json":
		return jsonRecords(schema, data, path)
	}
	return nil, fmt.Errorf("%s: unsupported file type, want .json, .yaml or .yml", path)
}

func jsonRecords(schema *document.Schema, data []byte, path string) ([]document.Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		items = []json.RawMessage{data}
	}
	recs := make([]document.Record, 0, len(items))
	for i, item := range items {
		rec, err := schema.DecodeJSON(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func yamlRecords(data []byte, path string) ([]document.Record, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var items []map[string]any
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		recs := make([]document.Record, len(items))
		for i, item := range items {
			recs[i] = document.Record(item)
		}
		return recs, nil
	}
	var item map[string]any
	if err := root.Decode(&item); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return []document.Record{item}, nil
}
