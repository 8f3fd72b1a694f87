package gormlisting

import (
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func parseSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	if model == nil {
		return nil, errors.New("model is nil")
	}
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "failed to parse schema for model")
	}
	return stmt.Schema, nil
}

// checkModelType rejects T that gorm cannot scan listing rows into.
func checkModelType[T any]() error {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() == reflect.Struct || (rt.Kind() == reflect.Ptr && rt.Elem().Kind() == reflect.Struct) {
		return nil
	}
	return errors.Errorf("invalid model type %s: T must be a struct or struct pointer", rt)
}

// applyModel sets T as the statement model unless one is set already.
func applyModel[T any](db *gorm.DB) *gorm.DB {
	if db.Statement.Model != nil {
		return db
	}
	modelType := reflect.TypeOf((*T)(nil)).Elem()
	if modelType.Kind() == reflect.Ptr {
		return db.Model(reflect.New(modelType.Elem()).Interface())
	}
	var t T
	return db.Model(&t)
}
