package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Journal tables. Both carry the shared event columns (sequence, ts_ms)
// followed by their own fields.
var (
	reviewEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "ts_ms", Type: field.TypeInt64},
		{Name: "card_filename", Type: field.TypeString},
		{Name: "topic", Type: field.TypeString, Default: ""},
		{Name: "rating", Type: field.TypeInt},
		{Name: "quiz_answered", Type: field.TypeBool, Default: false},
		{Name: "quiz_correct", Type: field.TypeBool, Default: false},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	reviewEventsTable = &schema.Table{
		Name:       "review_events",
		Columns:    reviewEventsColumns,
		PrimaryKey: []*schema.Column{reviewEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reviewevent_ts_ms", Unique: false, Columns: []*schema.Column{reviewEventsColumns[2]}},
			{Name: "reviewevent_card_filename", Unique: false, Columns: []*schema.Column{reviewEventsColumns[3]}},
		},
	}

	requestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "ts_ms", Type: field.TypeInt64},
		{Name: "endpoint", Type: field.TypeString},
		{Name: "method", Type: field.TypeString},
		{Name: "status", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
	}
	requestEventsTable = &schema.Table{
		Name:       "request_events",
		Columns:    requestEventsColumns,
		PrimaryKey: []*schema.Column{requestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "requestevent_ts_ms", Unique: false, Columns: []*schema.Column{requestEventsColumns[2]}},
			{Name: "requestevent_endpoint", Unique: false, Columns: []*schema.Column{requestEventsColumns[3]}},
		},
	}

	journalTables = []*schema.Table{reviewEventsTable, requestEventsTable}
)
