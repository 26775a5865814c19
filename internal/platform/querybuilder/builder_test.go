package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("t.id", "t.name", "COUNT(tp.player_id) AS current_players").
		From("teams t").
		LeftJoin("team_players tp", "tp.team_id = t.id").
		Where(Eq("t.sport", "Football"), IsNotNull("t.coach_id")).
		GroupBy("t.id").
		OrderBy("t.name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT t.id, t.name, COUNT(tp.player_id) AS current_players FROM teams t LEFT JOIN team_players tp ON tp.team_id = t.id WHERE t.sport = $1 AND t.coach_id IS NOT NULL GROUP BY t.id ORDER BY t.name LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "Football" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForShare(t *testing.T) {
	query, args, err := Select("id", "status").
		From("users").
		Where(In("id", []string{"p1", "p2"})).
		ForShare().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, status FROM users WHERE id IN ($1, $2) FOR SHARE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForUpdateAndIn(t *testing.T) {
	query, args, err := Select("id").
		From("users").
		Where(Eq("role", "admin"), In("status", []string{"active", "inactive"})).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM users WHERE role = $1 AND status IN ($2, $3) FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("users").Where(In("id", []string{})).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM users WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("team_players").
		Columns("team_id", "player_id", "jersey_number").
		Values("t1", "p1", 7).
		Values("t1", "p2", nil).
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO team_players (team_id, player_id, jersey_number) VALUES ($1, $2, $3), ($4, $5, $6)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[2] != 7 || args[5] != nil {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("users").
		Set("status", "inactive").
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "u1"), Expr("role IN (?, ?)", "player", "coach")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2 AND role IN ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "inactive" || args[1] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := DeleteFrom("team_players").ToSQL(); err == nil {
		t.Fatalf("expected error for unbounded delete")
	}

	query, args, err := DeleteFrom("team_players").Where(Eq("player_id", "p1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM team_players WHERE player_id = $1" || len(args) != 1 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertModel(t *testing.T) {
	type venueRow struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		Capacity int    `db:"capacity"`
		internal string
	}

	query, args, err := InsertModel("venues", venueRow{ID: "v1", Name: "Riverside", Capacity: 500, internal: "x"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO venues (id, name, capacity) VALUES ($1, $2, $3)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 3 || args[2] != 500 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
