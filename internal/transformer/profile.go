package transformer

import (
	"fmt"

	"csvetl/internal/config"
	"csvetl/internal/transformer/builtin"
	"csvetl/pkg/records"
)

// Profile returns the rule chain for a named transform profile.
func Profile(name string) (Chain, error) {
	switch name {
	case config.ProfileBasic:
		return Chain{upperName()}, nil
	case config.ProfilePlus:
		return Chain{
			headers(builtin.HeaderLower),
			ageFilter(),
			bonus(),
			renameName(),
		}, nil
	case config.ProfileSQLite:
		return Chain{
			dropNulls(),
			headers(builtin.HeaderSnake),
			titleName(),
			dateNormalize(),
		}, nil
	case config.ProfileStrict:
		return Chain{
			headers(builtin.HeaderSnake),
			dropNulls(),
			ageFilter(),
			bonus(),
			renameName(),
			dateNormalize(),
		}, nil
	default:
		return nil, fmt.Errorf("transformer: unknown profile %q", name)
	}
}

func headers(mode builtin.HeaderMode) Rule {
	return Rule{Name: "normalize_headers", Do: builtin.NormalizeHeaders{Mode: mode}}
}

func dropNulls() Rule {
	return Rule{Name: "drop_nulls", Do: builtin.Require{}, Destructive: true}
}

func ageFilter() Rule {
	return Rule{
		Name: "age_filter",
		When: HasColumn("age"),
		Do: Seq{
			builtin.Coerce{Types: map[string]records.Kind{"age": records.KindFloat}},
			builtin.KeepAbove{Field: "age", Threshold: 25},
		},
		Skip:        "Warning: 'age' column not found. Skipping age filter.",
		Destructive: true,
		Report:      "Filtered out %d rows with age <= 25 or invalid age. Remaining rows: %d",
	}
}

func bonus() Rule {
	return Rule{
		Name: "bonus",
		When: HasColumn("salary"),
		Do: Seq{
			builtin.Coerce{Types: map[string]records.Kind{"salary": records.KindFloat}},
			builtin.Scale{Source: "salary", Target: "bonus", Factor: 0.1},
		},
		Skip: "Warning: 'salary' column not found. Skipping bonus calculation.",
	}
}

func renameName() Rule {
	return Rule{
		Name: "rename_name",
		When: HasColumn("name"),
		Do:   builtin.Rename{From: "name", To: "full_name"},
		Skip: "Info: 'name' column not found. No renaming applied.",
	}
}

func upperName() Rule {
	return Rule{
		Name: "name_uppercase",
		When: HasColumn("name"),
		Do:   builtin.Upper{Field: "name", Target: "name_uppercase"},
	}
}

func titleName() Rule {
	return Rule{
		Name: "title_name",
		When: HasColumn("name"),
		Do:   builtin.Title{Field: "name"},
	}
}

func dateNormalize() Rule {
	return Rule{
		Name:        "normalize_date",
		When:        HasColumn("date"),
		Do:          builtin.NormalizeDate{Field: "date"},
		Destructive: true,
	}
}
