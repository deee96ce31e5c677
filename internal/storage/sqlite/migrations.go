package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// IMPORTANT: trips must be created before everything else; participants and
// families reference each other, so families.head_id is enforced while
// participants.family_id is left as a plain column (the head is created
// before its family and linked afterwards).
const schema = `
CREATE TABLE IF NOT EXISTS trips (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    destination TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    budget REAL NOT NULL DEFAULT 0,
    currency TEXT NOT NULL DEFAULT 'USD',
    status TEXT NOT NULL DEFAULT 'upcoming',
    access_code_hash TEXT NOT NULL,
    recovery_question TEXT,
    recovery_answer TEXT,
    security_question TEXT,
    security_answer TEXT,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS places (
    id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'historical',
    estimated_duration INTEGER,
    address TEXT,
    notes TEXT,
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL,
    name TEXT NOT NULL,
    family_id TEXT,
    is_head INTEGER NOT NULL DEFAULT 1,
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS families (
    id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL,
    name TEXT NOT NULL,
    head_id TEXT NOT NULL,
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
    FOREIGN KEY (head_id) REFERENCES participants(id)
);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL,
    description TEXT NOT NULL,
    amount REAL NOT NULL,
    currency TEXT NOT NULL DEFAULT 'INR',
    payment_time INTEGER NOT NULL,
    paid_by_participant TEXT,
    place_id TEXT,
    mode_of_payment TEXT NOT NULL DEFAULT 'UPI',
    is_personal INTEGER NOT NULL DEFAULT 0,
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE,
    FOREIGN KEY (place_id) REFERENCES places(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS expense_splits (
    expense_id TEXT NOT NULL,
    participant_id TEXT NOT NULL,
    PRIMARY KEY (expense_id, participant_id),
    FOREIGN KEY (expense_id) REFERENCES expenses(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS day_plans (
    id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL,
    date TEXT NOT NULL,
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS day_plan_places (
    id TEXT PRIMARY KEY,
    day_plan_id TEXT NOT NULL,
    place_id TEXT NOT NULL,
    start_time TEXT,
    end_time TEXT,
    order_index INTEGER NOT NULL DEFAULT 0,
    travel_time_to_next TEXT,
    FOREIGN KEY (day_plan_id) REFERENCES day_plans(id) ON DELETE CASCADE,
    FOREIGN KEY (place_id) REFERENCES places(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_places_trip_id ON places(trip_id);
CREATE INDEX IF NOT EXISTS idx_participants_trip_id ON participants(trip_id);
CREATE INDEX IF NOT EXISTS idx_participants_family_id ON participants(family_id);
CREATE INDEX IF NOT EXISTS idx_families_trip_id ON families(trip_id);
CREATE INDEX IF NOT EXISTS idx_expenses_trip_id ON expenses(trip_id);
CREATE INDEX IF NOT EXISTS idx_expense_splits_expense_id ON expense_splits(expense_id);
CREATE INDEX IF NOT EXISTS idx_day_plans_trip_id ON day_plans(trip_id);
CREATE INDEX IF NOT EXISTS idx_day_plan_places_day_plan_id ON day_plan_places(day_plan_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
