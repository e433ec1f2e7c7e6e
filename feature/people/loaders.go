package people

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"data-correlator/core/database"
	"data-correlator/core/storage"
	"data-correlator/core/utils"

	"github.com/minio/minio-go/v7"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// ErrSchemaMismatch reports a table lacking columns Person maps.
var ErrSchemaMismatch = errors.New("schema mismatch")

// LoadFromDB reads every person from table, ordered by id.
func LoadFromDB(ctx context.Context, db *gorm.DB, table string) ([]Person, error) {
	if db == nil {
		return nil, errors.New("database is not connected")
	}
	people := []Person{}
	if err := db.WithContext(ctx).Table(table).Order("id").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("failed to load people from %s: %w", table, err)
	}
	return people, nil
}

// VerifyTable checks that table carries every column in Columns.
func VerifyTable(db *gorm.DB, table string) error {
	if db == nil {
		return errors.New("database is not connected")
	}
	missing, err := database.MissingColumns(db, table, Columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: table %s lacks %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}

// LoadFromStorage reads a list of people from an exported object. Objects
// ending in .yaml or .yml are decoded as YAML, anything else as JSON. Values
// are converted loosely since exports rarely agree on types.
func LoadFromStorage(ctx context.Context, client storage.Client, bucket, object string) ([]Person, error) {
	if client == nil {
		return nil, errors.New("storage is not configured")
	}
	obj, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", object, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", object, err)
	}

	rows, err := decodeRows(object, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", object, err)
	}

	people := make([]Person, len(rows))
	for i, row := range rows {
		p, err := FromMap(row)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", object, i, err)
		}
		people[i] = p
	}
	return people, nil
}

func decodeRows(object string, data []byte) ([]map[string]any, error) {
	var rows []map[string]any
	switch strings.ToLower(path.Ext(object)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// FromMap builds a Person from a decoded row keyed by column name. Missing
// keys leave the attribute absent.
func FromMap(row map[string]any) (Person, error) {
	var p Person
	var err error

	p.ID = utils.ToInt(row["id"])
	p.FirstName = str(row, "first_name")
	p.LastName = str(row, "last_name")
	p.Description = str(row, "description")
	p.Email = str(row, "email")
	p.Address = str(row, "address")
	p.Active = utils.ToBool(row["active"])
	p.AccountID = utils.ToInt(row["account_id"])
	if p.CreatedAt, err = timestamp(row, "created_at"); err != nil {
		return Person{}, err
	}
	if p.UpdatedAt, err = timestamp(row, "updated_at"); err != nil {
		return Person{}, err
	}
	return p, nil
}

func str(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

func timestamp(row map[string]any, key string) (time.Time, error) {
	t, err := utils.ToTime(row[key])
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}
