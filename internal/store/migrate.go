package store

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	entschema "entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	"github.com/abhisek/vectortutor/ent/schema"
)

// migrate creates or updates the journal tables through ent's migration
// engine, using the entity declarations in ent/schema.
func migrate(ctx context.Context, db *sql.DB) error {
	tables, err := journalTables()
	if err != nil {
		return err
	}
	m, err := entschema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, tables...)
}

// journalTables converts the APICallEvent schema, mixins included, into a
// migration table.
func journalTables() ([]*entschema.Table, error) {
	def := schema.APICallEvent{}

	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, def.Fields()...)
	indexes = append(indexes, def.Indexes()...)

	t := entschema.NewTable(apiCallTable).
		AddPrimary(&entschema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("field %s: %w", d.Name, d.Err)
		}
		col := &entschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		}
		// Function defaults such as time.Now are applied on insert.
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			col.Default = d.Default
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(indexName(d.Fields), d.Unique, d.Fields)
	}
	return []*entschema.Table{t}, nil
}

// indexName follows ent's generated naming, e.g. apicallevent_action.
func indexName(fields []string) string {
	return "apicallevent_" + strings.Join(fields, "_")
}
