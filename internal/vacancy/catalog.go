package vacancy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vacancy is one open position shown to candidates.
type Vacancy struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Catalog is a read-only list of open positions. It is immutable after load.
type Catalog struct {
	items []Vacancy
}

type catalogFile struct {
	Vacancies []Vacancy `yaml:"vacancies"`
}

// Default returns the built-in openings used when no catalog file is
// configured.
func Default() *Catalog {
	return &Catalog{items: []Vacancy{
		{
			ID:          "backend",
			Title:       "Backend-разработчик (Go)",
			Description: "Разработка внутренних сервисов найма: интеграции, очереди, хранилища. Опыт с Go от двух лет.",
		},
		{
			ID:          "recruiter",
			Title:       "IT-рекрутер",
			Description: "Полный цикл подбора: скрининг, интервью, сопровождение кандидата до оффера.",
		},
	}}
}

// Load reads a catalog from a YAML file. An empty path returns the built-in
// catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vacancies file %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML catalog payload.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding vacancies: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Vacancies))
	for i, v := range file.Vacancies {
		if strings.TrimSpace(v.ID) == "" {
			return nil, fmt.Errorf("vacancy #%d: id is required", i+1)
		}
		if strings.TrimSpace(v.Title) == "" {
			return nil, fmt.Errorf("vacancy %q: title is required", v.ID)
		}
		if _, ok := seen[v.ID]; ok {
			return nil, fmt.Errorf("vacancy %q: duplicate id", v.ID)
		}
		seen[v.ID] = struct{}{}
	}

	return &Catalog{items: file.Vacancies}, nil
}

// All returns the openings in catalog order.
func (c *Catalog) All() []Vacancy {
	return c.items
}

// Len returns the number of openings.
func (c *Catalog) Len() int {
	return len(c.items)
}

// FindByID returns the opening with the given id, or nil when it is not in
// the catalog (for example a stale button from a removed opening).
func (c *Catalog) FindByID(id string) *Vacancy {
	for i := range c.items {
		if c.items[i].ID == id {
			return &c.items[i]
		}
	}
	return nil
}
