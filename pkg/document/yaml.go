package document

import (
	"fmt"
	"os"
	"time"

	"github.com/deepankarm/docfields/pkg/fields"
	"github.com/untillpro/goutils/logger"
	"gopkg.in/yaml.v3"
)

// Definition is the declarative form of a schema, as read by LoadYAML.
//
//	name: users
//	strict: true
//	fields:
//	  - name: email
//	    type: email
//	    required: true
//	  - name: role
//	    type: string
//	    choices: [admin, user]
//	    default: user
type Definition struct {
	Name   string     `yaml:"name"`
	Strict bool       `yaml:"strict"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef declares one field. Keys that do not apply to Type are ignored.
type FieldDef struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required"`
	Source      string `yaml:"source"`
	Description string `yaml:"description"`
	Default     any    `yaml:"default"`
	// DefaultFunc names a built-in producer: "uuid", "objectid" or "now".
	DefaultFunc string `yaml:"default_func"`

	MinLength *int   `yaml:"min_length"`
	MaxLength *int   `yaml:"max_length"`
	Pattern   string `yaml:"pattern"`
	Format    string `yaml:"format"`
	Choices   any    `yaml:"choices"`

	Minimum any `yaml:"minimum"`
	Maximum any `yaml:"maximum"`

	AutoNowOnInsert bool   `yaml:"auto_now_on_insert"`
	AutoNowOnUpdate bool   `yaml:"auto_now_on_update"`
	Location        string `yaml:"location"`

	Collection string     `yaml:"collection"`
	Items      *FieldDef  `yaml:"items"`
	MinItems   *int       `yaml:"min_items"`
	MaxItems   *int       `yaml:"max_items"`
	MaxBytes   *int       `yaml:"max_bytes"`
	Fields     []FieldDef `yaml:"fields"`
}

// LoadYAML builds a schema from a YAML definition.
func LoadYAML(data []byte) (*Schema, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	s, err := def.Build()
	if err != nil {
		return nil, err
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("loaded schema %q with %d fields", s.Name(), s.Len()))
	}
	return s, nil
}

// LoadYAMLFile reads and builds the YAML definition at path.
func LoadYAMLFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema definition: %w", err)
	}
	s, err := LoadYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Build turns the definition into a schema.
func (d Definition) Build() (*Schema, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("schema definition has no name")
	}
	b := New(d.Name)
	if d.Strict {
		b.Strict()
	}
	for _, fd := range d.Fields {
		f, err := fd.field()
		if err != nil {
			return nil, fmt.Errorf("schema %q: field %q: %w", d.Name, fd.Name, err)
		}
		b.Field(fd.Name, f)
	}
	return b.Build()
}

func (fd FieldDef) common() ([]fields.Option, error) {
	var opts []fields.Option
	if fd.Required {
		opts = append(opts, fields.Required())
	}
	if fd.Source != "" {
		opts = append(opts, fields.SourceName(fd.Source))
	}
	if fd.Description != "" {
		opts = append(opts, fields.Description(fd.Description))
	}
	if fd.Default != nil {
		opts = append(opts, fields.Default(fd.Default))
	}
	switch fd.DefaultFunc {
	case "":
	case "uuid":
		opts = append(opts, fields.DefaultFunc(fields.NewUUID))
	case "objectid":
		opts = append(opts, fields.DefaultFunc(fields.NewObjectID))
	case "now":
		opts = append(opts, fields.DefaultFunc(func() any { return time.Now().UTC() }))
	default:
		return nil, fmt.Errorf("unknown default_func %q", fd.DefaultFunc)
	}
	return opts, nil
}

func (fd FieldDef) field() (fields.Field, error) {
	common, err := fd.common()
	if err != nil {
		return nil, err
	}

	switch fd.Type {
	case "string", "email", "url":
		opts := make([]fields.StringOption, 0, len(common)+5)
		for _, o := range common {
			opts = append(opts, o)
		}
		opts = append(opts, fd.stringOptions()...)
		switch fd.Type {
		case "email":
			return fields.Email(opts...), nil
		case "url":
			return fields.URL(opts...), nil
		}
		return fields.String(opts...), nil

	case fields.KindInt:
		opts := make([]fields.IntOption, 0, len(common)+2)
		for _, o := range common {
			opts = append(opts, o)
		}
		if fd.Minimum != nil {
			n, ok := fd.Minimum.(int)
			if !ok {
				return nil, fmt.Errorf("minimum must be an integer, got %T", fd.Minimum)
			}
			opts = append(opts, fields.MinInt(int64(n)))
		}
		if fd.Maximum != nil {
			n, ok := fd.Maximum.(int)
			if !ok {
				return nil, fmt.Errorf("maximum must be an integer, got %T", fd.Maximum)
			}
			opts = append(opts, fields.MaxInt(int64(n)))
		}
		return fields.Int(opts...), nil

	case fields.KindFloat:
		opts := make([]fields.FloatOption, 0, len(common)+2)
		for _, o := range common {
			opts = append(opts, o)
		}
		if fd.Minimum != nil {
			v, ok := number(fd.Minimum)
			if !ok {
				return nil, fmt.Errorf("minimum must be a number, got %T", fd.Minimum)
			}
			opts = append(opts, fields.MinFloat(v))
		}
		if fd.Maximum != nil {
			v, ok := number(fd.Maximum)
			if !ok {
				return nil, fmt.Errorf("maximum must be a number, got %T", fd.Maximum)
			}
			opts = append(opts, fields.MaxFloat(v))
		}
		return fields.Float(opts...), nil

	case fields.KindDecimal:
		opts := make([]fields.DecimalOption, 0, len(common)+2)
		for _, o := range common {
			opts = append(opts, o)
		}
		if fd.Minimum != nil {
			opts = append(opts, fields.MinDecimal(fmt.Sprint(fd.Minimum)))
		}
		if fd.Maximum != nil {
			opts = append(opts, fields.MaxDecimal(fmt.Sprint(fd.Maximum)))
		}
		return fields.Decimal(opts...), nil

	case fields.KindBoolean:
		return fields.Boolean(common...), nil

	case fields.KindDateTime:
		opts := make([]fields.DateTimeOption, 0, len(common)+3)
		for _, o := range common {
			opts = append(opts, o)
		}
		if fd.AutoNowOnInsert {
			opts = append(opts, fields.AutoNowOnInsert())
		}
		if fd.AutoNowOnUpdate {
			opts = append(opts, fields.AutoNowOnUpdate())
		}
		if fd.Location != "" {
			loc, err := time.LoadLocation(fd.Location)
			if err != nil {
				return nil, err
			}
			opts = append(opts, fields.Location(loc))
		}
		return fields.DateTime(opts...), nil

	case fields.KindUUID:
		return fields.UUID(common...), nil

	case fields.KindObjectID:
		return fields.ObjectID(common...), nil

	case fields.KindReference:
		return fields.Reference(fd.Collection, common...), nil

	case fields.KindList:
		if fd.Items == nil {
			return nil, fmt.Errorf("list field needs items")
		}
		item, err := fd.Items.field()
		if err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
		opts := make([]fields.ListOption, 0, len(common)+2)
		for _, o := range common {
			opts = append(opts, o)
		}
		if fd.MinItems != nil {
			opts = append(opts, fields.MinItems(*fd.MinItems))
		}
		if fd.MaxItems != nil {
			opts = append(opts, fields.MaxItems(*fd.MaxItems))
		}
		return fields.List(item, opts...), nil

	case fields.KindJSON:
		return fields.JSON(common...), nil

	case fields.KindBinary:
		opts := make([]fields.BinaryOption, 0, len(common)+1)
		for _, o := range common {
			opts = append(opts, o)
		}
		if fd.MaxBytes != nil {
			opts = append(opts, fields.MaxBytes(*fd.MaxBytes))
		}
		return fields.Binary(opts...), nil

	case fields.KindEmbedded:
		nested, err := Definition{Name: fd.Name, Fields: fd.Fields}.Build()
		if err != nil {
			return nil, err
		}
		return Embedded(nested, common...), nil
	}
	return nil, fmt.Errorf("unknown field type %q", fd.Type)
}

func (fd FieldDef) stringOptions() []fields.StringOption {
	var opts []fields.StringOption
	if fd.MinLength != nil {
		opts = append(opts, fields.MinLength(*fd.MinLength))
	}
	if fd.MaxLength != nil {
		opts = append(opts, fields.MaxLength(*fd.MaxLength))
	}
	if fd.Pattern != "" {
		opts = append(opts, fields.Pattern(fd.Pattern))
	}
	if fd.Format != "" {
		opts = append(opts, fields.Format(fd.Format))
	}
	// A scalar here is a definition mistake, reported as a configuration
	// error by the string field.
	if fd.Choices != nil {
		opts = append(opts, fields.ChoicesFrom(fd.Choices))
	}
	return opts
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
