// Package seed generates fake records for resource collections. The
// engine consumes it as a black box: schema plus count in, records
// with fresh ids out.
package seed

import (
	"fmt"
	mathrand "math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mockforge/mockforge/pkg/definition"
	"github.com/mockforge/mockforge/pkg/records"
)

// Generator produces count records for a field schema. pools maps
// related resource names to candidate ids for relation fields; a
// relation with no pool entry stays empty.
type Generator interface {
	Generate(fields []definition.Field, count int, pools map[string][]string) []records.Record
}

// Faker is the default Generator, built on small word lists.
type Faker struct {
	rng *mathrand.Rand
}

// NewFaker creates a Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{rng: mathrand.New(mathrand.NewPCG(mathrand.Uint64(), mathrand.Uint64()))}
}

// NewSeededFaker creates a Faker with a fixed seed for deterministic
// output.
func NewSeededFaker(s uint64) *Faker {
	return &Faker{rng: mathrand.New(mathrand.NewPCG(s, 0))}
}

// Generate builds count records for the schema.
func (f *Faker) Generate(fields []definition.Field, count int, pools map[string][]string) []records.Record {
	out := make([]records.Record, 0, count)
	for i := 0; i < count; i++ {
		rec := records.Record{
			"id":        uuid.NewString(),
			"createdAt": time.Now().Format(time.RFC3339),
		}
		for _, field := range fields {
			if field.Name == "id" || field.Name == "createdAt" {
				continue
			}
			rec[field.Name] = f.value(field, pools)
		}
		out = append(out, rec)
	}
	return out
}

// value produces one field value by type and hint.
func (f *Faker) value(field definition.Field, pools map[string][]string) any {
	switch field.Type {
	case definition.FieldString:
		return f.stringValue(field.Hint)
	case definition.FieldNumber:
		return f.numberValue(field.Hint)
	case definition.FieldBoolean:
		return f.rng.IntN(2) == 1
	case definition.FieldDate:
		return f.pastDate().Format(time.RFC3339)
	case definition.FieldEmail:
		return f.email()
	case definition.FieldUUID:
		return uuid.NewString()
	case definition.FieldImage:
		return fmt.Sprintf("https://picsum.photos/seed/%d/400/300", f.rng.IntN(100000))
	case definition.FieldRelation:
		pool := pools[field.Hint]
		if len(pool) == 0 {
			return nil
		}
		return pool[f.rng.IntN(len(pool))]
	default:
		return nil
	}
}

func (f *Faker) stringValue(hint string) string {
	switch hint {
	case "firstName":
		return f.pick(firstNames)
	case "lastName":
		return f.pick(lastNames)
	case "fullName", "name":
		return f.pick(firstNames) + " " + f.pick(lastNames)
	case "city":
		return f.pick(cities)
	case "company":
		return f.pick(companyAdjectives) + " " + f.pick(companyNouns)
	case "sentence":
		return f.sentence()
	default:
		return f.pick(words) + " " + f.pick(words)
	}
}

func (f *Faker) numberValue(hint string) any {
	switch hint {
	case "price":
		// two-decimal float
		return float64(f.rng.IntN(99900)+100) / 100
	case "age":
		return float64(f.rng.IntN(62) + 18)
	default:
		return float64(f.rng.IntN(1000) + 1)
	}
}

func (f *Faker) email() string {
	return strings.ToLower(f.pick(firstNames)) + "." +
		strings.ToLower(f.pick(lastNames)) + "@" + f.pick(domains)
}

func (f *Faker) pastDate() time.Time {
	offset := time.Duration(f.rng.Int64N(int64(365 * 24 * time.Hour)))
	return time.Now().Add(-offset)
}

func (f *Faker) sentence() string {
	n := f.rng.IntN(5) + 4
	parts := make([]string, n)
	for i := range parts {
		parts[i] = f.pick(words)
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func (f *Faker) pick(list []string) string {
	return list[f.rng.IntN(len(list))]
}
