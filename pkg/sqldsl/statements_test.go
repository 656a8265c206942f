package sqldsl

import (
	"strings"
	"testing"
)

func TestBuildQuery(t *testing.T) {
	byCreator := TableIndex{KeyName: "by_creator", Columns: []string{"creator_id"}}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			"select",
			BuildQuerySelect("records", nil, Eq("record_id", 1), "LIMIT 1"),
			"SELECT * FROM `records` WHERE `record_id` = 1 LIMIT 1",
		},
		{
			"select without where",
			BuildQuerySelect("records", []string{"a"}, nil),
			"SELECT `a` FROM `records`",
		},
		{
			"select trims suffix",
			BuildQuerySelect("t", nil, nil, "  ORDER BY `a`  "),
			"SELECT * FROM `t` ORDER BY `a`",
		},
		{
			"count",
			BuildQueryCount("records", "", Eq("creator_id", 7), ""),
			"SELECT COUNT(*) AS `count` FROM `records` WHERE `creator_id` = 7",
		},
		{
			"count alias",
			BuildQueryCount("records", "DISTINCT `creator_id`", nil, "n"),
			"SELECT COUNT(DISTINCT `creator_id`) AS `n` FROM `records`",
		},
		{
			"insert",
			BuildQueryInsert("records", Values{{Name: "creator_id", Value: 7}, {Name: "deleted", Value: false}}),
			"INSERT INTO `records` (`creator_id`, `deleted`) VALUES (7, 0)",
		},
		{
			"insert returning",
			Postgres.BuildQueryInsert("records", Values{{Name: "creator_id", Value: 7}}, Postgres.Returning("record_id")),
			`INSERT INTO "records" ("creator_id") VALUES (7) RETURNING "record_id"`,
		},
		{
			"insert defaults",
			SQLite.BuildQueryInsert("records", nil),
			`INSERT INTO "records" DEFAULT VALUES`,
		},
		{
			"insert defaults mysql",
			BuildQueryInsert("records", nil),
			"INSERT INTO `records` () VALUES ()",
		},
		{
			"update",
			BuildQueryUpdate("records", Values{{Name: "deleted", Value: 1}}, Eq("record_id", 3)),
			"UPDATE `records` SET `deleted` = 1 WHERE `record_id` = 3",
		},
		{
			"delete",
			BuildQueryDelete("records", Eq("record_id", 3)),
			"DELETE FROM `records` WHERE `record_id` = 3",
		},
		{
			"create table",
			BuildQueryCreateTable("t", []ColumnDef{{Name: "id", Type: "INT"}, {Name: "name", Type: "TEXT"}}, ""),
			"CREATE TABLE `t` ( `id` INT, `name` TEXT )",
		},
		{
			"create table from ref",
			BuildQueryCreateTable("copy", nil, "records"),
			"CREATE TABLE `copy` AS SELECT * FROM `records` LIMIT 0",
		},
		{"show columns", BuildQueryShowColumns("t"), "SHOW COLUMNS FROM `t`"},
		{"has column", BuildQueryHasColumn("t", "deleted"), "SHOW COLUMNS FROM `t` LIKE 'deleted'"},
		{"show index", BuildQueryShowIndex("t"), "SHOW INDEX FROM `t`"},
		{
			"add index",
			BuildQueryAddIndex("t", byCreator),
			"ALTER TABLE `t` ADD INDEX `by_creator` (`creator_id`)",
		},
		{
			"add multi-column index",
			BuildQueryAddIndex("t", TableIndex{KeyName: "k", Columns: []string{"a", "b"}}),
			"ALTER TABLE `t` ADD INDEX `k` (`a`, `b`)",
		},
		{
			"postgres add index",
			Postgres.BuildQueryAddIndex("t", byCreator),
			`CREATE INDEX "t_by_creator" ON "t" ("creator_id")`,
		},
		{"drop index", BuildQueryDropIndex("t", "by_creator"), "ALTER TABLE `t` DROP INDEX `by_creator`"},
		{"sqlite drop index", SQLite.BuildQueryDropIndex("t", "by_creator"), `DROP INDEX "t_by_creator"`},
		{
			"alter add",
			BuildQueryAlterTable("t", AlterAdd, "note", "TEXT"),
			"ALTER TABLE `t` ADD COLUMN `note` TEXT",
		},
		{
			"alter drop",
			BuildQueryAlterTable("t", AlterDrop, "note", ""),
			"ALTER TABLE `t` DROP COLUMN `note`",
		},
		{
			"postgres alter modify",
			Postgres.BuildQueryAlterTable("t", AlterModify, "note", "VARCHAR(20)"),
			`ALTER TABLE "t" ALTER COLUMN "note" TYPE VARCHAR(20)`,
		},
		{"drop table", BuildQueryDropTable("t"), "DROP TABLE `t`"},
		{"limit", string(Limit(1)), "LIMIT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestBuildQueryIntrospection_NonMySQL(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		contains []string
	}{
		{
			"postgres has column",
			Postgres.BuildQueryHasColumn("records", "deleted"),
			[]string{"information_schema.columns", "table_name = 'records'", "column_name = 'deleted'", `AS "Field"`},
		},
		{
			"sqlite show columns",
			SQLite.BuildQueryShowColumns("records"),
			[]string{"pragma_table_info('records')", `AS "Field"`, "ORDER BY cid"},
		},
		{
			"sqlite show index",
			SQLite.BuildQueryShowIndex("records"),
			[]string{"pragma_index_list('records')", "pragma_index_info(il.name)", `AS "Key_name"`, `AS "Column_name"`},
		},
		{
			"postgres show index",
			Postgres.BuildQueryShowIndex("records"),
			[]string{"pg_index", "t.relname = 'records'", "'PRIMARY'", `AS "Column_name"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				if !strings.Contains(tt.got, want) {
					t.Errorf("query %q does not contain %q", tt.got, want)
				}
			}
		})
	}
}

func TestAlterOp_Valid(t *testing.T) {
	for _, op := range []AlterOp{AlterAdd, AlterDrop, AlterModify} {
		if !op.Valid() {
			t.Errorf("%q should be valid", op)
		}
	}
	if AlterOp("RENAME").Valid() {
		t.Error("RENAME should not be valid")
	}
}

func TestHasLimit(t *testing.T) {
	tests := []struct {
		name string
		more []Suffix
		want bool
	}{
		{"none", nil, false},
		{"limit helper", []Suffix{Limit(1)}, true},
		{"lower case", []Suffix{"ORDER BY `a` limit 5"}, true},
		{"second suffix", []Suffix{"ORDER BY `a`", "LIMIT 2 OFFSET 4"}, true},
		{"column named like the keyword", []Suffix{"ORDER BY `limit`"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLimit(tt.more...); got != tt.want {
				t.Errorf("HasLimit(%q) = %v, want %v", tt.more, got, tt.want)
			}
		})
	}
}
