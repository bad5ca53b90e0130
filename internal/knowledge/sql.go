package knowledge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const selectConditions = `SELECT name, keywords, attributes FROM conditions ORDER BY id`

// Querier is satisfied by *sql.DB.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// LoadSQL reads conditions from the conditions table. keywords is a JSON
// array of strings, attributes a JSON object (nullable). Like LoadFile it
// returns an empty Base on failure.
func LoadSQL(ctx context.Context, db Querier) (*Base, error) {
	rows, err := db.QueryContext(ctx, selectConditions)
	if err != nil {
		return Empty(), fmt.Errorf("query conditions: %w", err)
	}
	defer rows.Close()

	var conditions []Condition
	for rows.Next() {
		var (
			c          Condition
			keywords   []byte
			attributes []byte
		)
		if err := rows.Scan(&c.Name, &keywords, &attributes); err != nil {
			return Empty(), fmt.Errorf("scan condition: %w", err)
		}
		if err := json.Unmarshal(keywords, &c.Keywords); err != nil {
			return Empty(), fmt.Errorf("condition %q keywords: %w", c.Name, err)
		}
		if len(attributes) > 0 {
			if err := json.Unmarshal(attributes, &c.Attributes); err != nil {
				return Empty(), fmt.Errorf("condition %q attributes: %w", c.Name, err)
			}
			delete(c.Attributes, fieldCondition)
			delete(c.Attributes, fieldKeywords)
		}
		conditions = append(conditions, c)
	}
	if err := rows.Err(); err != nil {
		return Empty(), fmt.Errorf("iterate conditions: %w", err)
	}

	return &Base{conditions: conditions}, nil
}
