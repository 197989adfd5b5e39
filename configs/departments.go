package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Department is a routing target: a team and the file listing its recipients.
type Department struct {
	Key            string `yaml:"key" json:"key"`
	Name           string `yaml:"name" json:"name"`
	RecipientsFile string `yaml:"recipients_file" json:"recipientsFile"`
}

// Departments accepts either:
//  1. mapping form (preferred):
//     inst: CMemails.txt
//     icss: {name: ICSS, recipients_file: CM-ICSS-emails.txt}
//  2. list form:
//     - key: inst
//     recipients_file: CMemails.txt
type Departments struct {
	Items []Department
}

func (d *Departments) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case yaml.MappingNode:
		items := make([]Department, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := strings.ToLower(strings.TrimSpace(value.Content[i].Value))
			v := value.Content[i+1]
			if key == "" {
				continue
			}
			switch v.Kind {
			case yaml.ScalarNode:
				file := strings.TrimSpace(v.Value)
				if file == "" {
					continue
				}
				items = append(items, Department{Key: key, Name: strings.ToUpper(key), RecipientsFile: file})
			case yaml.MappingNode:
				var tmp Department
				if err := v.Decode(&tmp); err != nil {
					return err
				}
				tmp.Key = key
				if strings.TrimSpace(tmp.Name) == "" {
					tmp.Name = strings.ToUpper(key)
				}
				if strings.TrimSpace(tmp.RecipientsFile) == "" {
					continue
				}
				items = append(items, tmp)
			}
		}
		d.Items = items
		return nil
	case yaml.SequenceNode:
		var items []Department
		if err := value.Decode(&items); err != nil {
			return err
		}
		for i := range items {
			items[i].Key = strings.ToLower(strings.TrimSpace(items[i].Key))
			if items[i].Name == "" {
				items[i].Name = strings.ToUpper(items[i].Key)
			}
		}
		d.Items = items
		return nil
	default:
		return nil
	}
}

// Lookup finds a department by key, case-insensitively.
func (d Departments) Lookup(key string) (Department, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, dep := range d.Items {
		if dep.Key == key {
			return dep, true
		}
	}
	return Department{}, false
}

func (d Departments) Keys() []string {
	keys := make([]string, 0, len(d.Items))
	for _, dep := range d.Items {
		keys = append(keys, dep.Key)
	}
	sort.Strings(keys)
	return keys
}

// DefaultDepartments is the routing used when no departments file exists.
func DefaultDepartments() Departments {
	return Departments{Items: []Department{
		{Key: "inst", Name: "INST", RecipientsFile: "CMemails.txt"},
		{Key: "icss", Name: "ICSS", RecipientsFile: "CM-ICSS-emails.txt"},
	}}
}

// LoadDepartments reads the routing file, falling back to the defaults when it
// does not exist.
func LoadDepartments(path string) (Departments, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("ℹ️ %s not found, using default INST/ICSS routing", path)
		return DefaultDepartments(), nil
	}
	if err != nil {
		return Departments{}, err
	}
	var d Departments
	if err := yaml.Unmarshal(b, &d); err != nil {
		return Departments{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(d.Items) == 0 {
		return Departments{}, fmt.Errorf("%s defines no departments", path)
	}
	return d, nil
}
