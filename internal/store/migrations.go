package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	frequency    TEXT NOT NULL DEFAULT 'daily',
	target_count INTEGER NOT NULL DEFAULT 1,
	color        TEXT NOT NULL DEFAULT '',
	icon         TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS habit_logs (
	id        TEXT PRIMARY KEY,
	habit_id  TEXT NOT NULL DEFAULT '',
	date      TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
	notes     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_habit_logs_date ON habit_logs(date);
CREATE INDEX IF NOT EXISTS idx_habit_logs_habit_id ON habit_logs(habit_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS sync_state (
	collection TEXT PRIMARY KEY,
	synced_at  INTEGER NOT NULL
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
