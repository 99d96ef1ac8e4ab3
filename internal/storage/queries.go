package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/doddemo/analyzer/internal/analysis"
	"github.com/doddemo/analyzer/internal/container"
	"github.com/doddemo/analyzer/internal/projection"
	"github.com/doddemo/analyzer/internal/report"
)

// DemoMeta is the opaque demo_info passthrough (spec.md §6) plus the
// analysis parameters applied, persisted alongside the demo row.
type DemoMeta struct {
	Path              string
	Hash              string // hex-encoded content hash, used for hash-prefix lookups
	MatchType         string // free-text label, e.g. "scrim", "league", "pub"
	Header            container.Header
	MaxNormalDuration time.Duration
}

// DemoExists returns true if a demo at the given path is already stored.
func (db *DB) DemoExists(path string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM demos WHERE path = ?", path).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveAnalysis persists one demo's full analysis result: the demo row,
// every player and their weapon breakdown, every round, and the team-score
// timeline. Runs in a single transaction so a partially-written demo never
// appears in reads.
func SaveAnalysis(db *DB, meta DemoMeta, state *analysis.State) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT OR REPLACE INTO demos(path, hash, match_type, map_name, demo_protocol, network_protocol, max_normal_duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		meta.Path, meta.Hash, meta.MatchType, meta.Header.MapName, meta.Header.DemoProtocol, meta.Header.NetworkProtocol,
		meta.MaxNormalDuration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: insert demo: %w", err)
	}
	demoID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: demo id: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM players WHERE demo_id = ?`, demoID); err != nil {
		return 0, fmt.Errorf("storage: clear players: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM rounds WHERE demo_id = ?`, demoID); err != nil {
		return 0, fmt.Errorf("storage: clear rounds: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM team_score_timeline WHERE demo_id = ?`, demoID); err != nil {
		return 0, fmt.Errorf("storage: clear team scores: %w", err)
	}

	playerIDs, err := insertPlayers(tx, demoID, state)
	if err != nil {
		return 0, err
	}
	if err := insertPlayerRoundKills(tx, state, playerIDs); err != nil {
		return 0, err
	}
	if err := insertRounds(tx, demoID, state); err != nil {
		return 0, err
	}
	if err := insertTeamScores(tx, demoID, state); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: commit: %w", err)
	}
	return demoID, nil
}

// insertPlayers inserts the demo's roster and each player's weapon
// breakdown, returning the assigned row id for each PlayerGlobalId so
// insertPlayerRoundKills can attach kill-timeline rows to the right player.
func insertPlayers(tx *sql.Tx, demoID int64, state *analysis.State) (map[analysis.PlayerGlobalId]int64, error) {
	playerStmt, err := tx.Prepare(`
		INSERT INTO players(demo_id, player_global_id, name, team, class, score, kills, deaths)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("storage: prepare players: %w", err)
	}
	defer playerStmt.Close()

	weaponStmt, err := tx.Prepare(`
		INSERT INTO player_weapons(player_id, weapon, kills, teamkills)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("storage: prepare weapons: %w", err)
	}
	defer weaponStmt.Close()

	ids := make(map[analysis.PlayerGlobalId]int64, len(state.Players))
	for _, p := range state.Players {
		team, class := "", ""
		if p.Team != nil {
			team = p.Team.String()
		}
		if p.Class != nil {
			class = p.Class.String()
		}
		res, err := playerStmt.Exec(demoID, string(p.ID), p.Name, team, class, p.Score, p.Kills, p.Deaths)
		if err != nil {
			return nil, fmt.Errorf("storage: insert player %s: %w", p.ID, err)
		}
		playerID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("storage: player id: %w", err)
		}
		ids[p.ID] = playerID
		for weapon, tally := range p.WeaponBreakdown {
			if _, err := weaponStmt.Exec(playerID, weapon.String(), tally.Kills, tally.TeamKills); err != nil {
				return nil, fmt.Errorf("storage: insert weapon tally: %w", err)
			}
		}
	}
	return ids, nil
}

// insertPlayerRoundKills flattens each player's kill-streaks into one row
// per recorded kill, tagged with the round it happened in.
func insertPlayerRoundKills(tx *sql.Tx, state *analysis.State, playerIDs map[analysis.PlayerGlobalId]int64) error {
	stmt, err := tx.Prepare(`
		INSERT INTO player_round_kills(player_id, round_seq, weapon, time_ms)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: prepare round kills: %w", err)
	}
	defer stmt.Close()

	for _, p := range state.Players {
		playerID := playerIDs[p.ID]
		for _, streak := range p.KillStreaks {
			for _, kill := range streak {
				roundSeq := state.RoundIndexAt(kill.Time)
				if roundSeq < 0 {
					continue
				}
				if _, err := stmt.Exec(playerID, roundSeq, kill.Weapon.String(), kill.Time.ViewdemoOffset.Milliseconds()); err != nil {
					return fmt.Errorf("storage: insert round kill: %w", err)
				}
			}
		}
	}
	return nil
}

func insertRounds(tx *sql.Tx, demoID int64, state *analysis.State) error {
	stmt, err := tx.Prepare(`
		INSERT INTO rounds(demo_id, seq, start_ms, end_ms, winner, winner_kills)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: prepare rounds: %w", err)
	}
	defer stmt.Close()

	for seq, r := range state.Rounds {
		var endMs sql.NullInt64
		var winner sql.NullString
		var winnerKills int32
		if !r.IsActive {
			endMs = sql.NullInt64{Int64: r.EndTime.ViewdemoOffset.Milliseconds(), Valid: true}
		}
		if r.Winner != nil {
			winner = sql.NullString{String: r.Winner.Winner.String(), Valid: true}
			winnerKills = r.Winner.WinnerKills
		}
		if _, err := stmt.Exec(demoID, seq, r.StartTime.ViewdemoOffset.Milliseconds(), endMs, winner, winnerKills); err != nil {
			return fmt.Errorf("storage: insert round %d: %w", seq, err)
		}
	}
	return nil
}

func insertTeamScores(tx *sql.Tx, demoID int64, state *analysis.State) error {
	stmt, err := tx.Prepare(`
		INSERT INTO team_score_timeline(demo_id, seq, time_ms, team, points)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage: prepare team scores: %w", err)
	}
	defer stmt.Close()

	for seq, entry := range state.TeamScoreEntries() {
		if _, err := stmt.Exec(demoID, seq, entry.Time.ViewdemoOffset.Milliseconds(), entry.Team.String(), entry.Points); err != nil {
			return fmt.Errorf("storage: insert team score %d: %w", seq, err)
		}
	}
	return nil
}

// ListDemosRow is one row of the `list` command's output.
type ListDemosRow struct {
	ID        int64
	Path      string
	Hash      string
	MatchType string
	MapName   string
	Analyzed  string
}

// ListDemos returns all stored demos, most recently analyzed first.
func (db *DB) ListDemos() ([]ListDemosRow, error) {
	rows, err := db.conn.Query(`SELECT id, path, hash, match_type, map_name, analyzed_at FROM demos ORDER BY analyzed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListDemosRow
	for rows.Next() {
		var r ListDemosRow
		if err := rows.Scan(&r.ID, &r.Path, &r.Hash, &r.MatchType, &r.MapName, &r.Analyzed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetDemoByPrefix finds the unique stored demo whose hash starts with
// prefix. Returns (0, "", false, nil) if none match; an ambiguous prefix
// matching more than one demo is reported as an error.
func (db *DB) GetDemoByPrefix(prefix string) (int64, string, bool, error) {
	rows, err := db.conn.Query(`SELECT id, map_name FROM demos WHERE hash LIKE ? || '%'`, prefix)
	if err != nil {
		return 0, "", false, err
	}
	defer rows.Close()

	var id int64
	var mapName string
	found := 0
	for rows.Next() {
		if err := rows.Scan(&id, &mapName); err != nil {
			return 0, "", false, err
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return 0, "", false, err
	}
	if found == 0 {
		return 0, "", false, nil
	}
	if found > 1 {
		return 0, "", false, fmt.Errorf("storage: hash prefix %q is ambiguous (%d matches)", prefix, found)
	}
	return id, mapName, true, nil
}

// LoadResult reconstructs a report.Result for a stored demo directly from
// its rows, without re-running the analysis pipeline.
func LoadResult(db *DB, demoID int64, mapName string) (report.Result, error) {
	result := report.Result{MapName: mapName}

	playerRows, err := db.conn.Query(`
		SELECT id, player_global_id, team, name, class, score, kills, deaths
		FROM players WHERE demo_id = ? ORDER BY id`, demoID)
	if err != nil {
		return result, fmt.Errorf("storage: query players: %w", err)
	}
	defer playerRows.Close()

	type playerRef struct {
		id  int64
		row report.PlayerRow
	}
	var players []playerRef
	for playerRows.Next() {
		var ref playerRef
		var globalID string
		if err := playerRows.Scan(&ref.id, &globalID, &ref.row.Team, &ref.row.Name, &ref.row.Class,
			&ref.row.Score, &ref.row.Kills, &ref.row.Deaths); err != nil {
			return result, fmt.Errorf("storage: scan player: %w", err)
		}
		ref.row.SteamID = globalID
		if steamID, ok := projection.SteamID(globalID); ok {
			ref.row.SteamID = steamID
		}
		ref.row.Connected = true // connection status is not persisted; see DESIGN.md
		players = append(players, ref)
	}
	if err := playerRows.Err(); err != nil {
		return result, err
	}

	for i := range players {
		weaponRows, err := db.conn.Query(`SELECT weapon, kills, teamkills FROM player_weapons WHERE player_id = ? ORDER BY weapon`, players[i].id)
		if err != nil {
			return result, fmt.Errorf("storage: query weapons: %w", err)
		}
		for weaponRows.Next() {
			var wr report.WeaponRow
			if err := weaponRows.Scan(&wr.Weapon, &wr.Kills, &wr.TeamKills); err != nil {
				weaponRows.Close()
				return result, fmt.Errorf("storage: scan weapon: %w", err)
			}
			players[i].row.Weapons = append(players[i].row.Weapons, wr)
		}
		err = weaponRows.Err()
		weaponRows.Close()
		if err != nil {
			return result, err
		}
		result.Players = append(result.Players, players[i].row)
	}

	var allies, axis sql.NullInt64
	_ = db.conn.QueryRow(`
		SELECT points FROM team_score_timeline WHERE demo_id = ? AND team = 'Allies' ORDER BY seq DESC LIMIT 1`, demoID).
		Scan(&allies)
	_ = db.conn.QueryRow(`
		SELECT points FROM team_score_timeline WHERE demo_id = ? AND team = 'Axis' ORDER BY seq DESC LIMIT 1`, demoID).
		Scan(&axis)
	result.AlliesScore = int32(allies.Int64)
	result.AxisScore = int32(axis.Int64)

	roundRows, err := db.conn.Query(`
		SELECT start_ms, end_ms, winner, winner_kills FROM rounds WHERE demo_id = ? ORDER BY seq`, demoID)
	if err != nil {
		return result, fmt.Errorf("storage: query rounds: %w", err)
	}
	defer roundRows.Close()
	for roundRows.Next() {
		var startMs int64
		var endMs sql.NullInt64
		var winner sql.NullString
		var winnerKills int
		if err := roundRows.Scan(&startMs, &endMs, &winner, &winnerKills); err != nil {
			return result, fmt.Errorf("storage: scan round: %w", err)
		}
		row := report.RoundRow{Winner: "-"}
		if !endMs.Valid {
			row.Active = true
			row.Duration = "in progress"
		} else {
			row.Duration = fmt.Sprintf("%d:%02d", (endMs.Int64-startMs)/1000/60, (endMs.Int64-startMs)/1000%60)
		}
		if winner.Valid {
			row.Winner = winner.String
			row.WinnerKills = winnerKills
		}
		result.Rounds = append(result.Rounds, row)
	}
	if err := roundRows.Err(); err != nil {
		return result, err
	}

	scoreRows, err := db.conn.Query(`
		SELECT time_ms, team, points FROM team_score_timeline WHERE demo_id = ? ORDER BY seq`, demoID)
	if err != nil {
		return result, fmt.Errorf("storage: query team scores: %w", err)
	}
	defer scoreRows.Close()
	for scoreRows.Next() {
		var timeMs int64
		var row report.TeamScoreRow
		if err := scoreRows.Scan(&timeMs, &row.Team, &row.Points); err != nil {
			return result, fmt.Errorf("storage: scan team score: %w", err)
		}
		row.Time = fmt.Sprintf("%d:%02d", timeMs/1000/60, timeMs/1000%60)
		result.TeamScores = append(result.TeamScores, row)
	}
	return result, scoreRows.Err()
}

// FindPlayer resolves a player by exact name, PlayerGlobalId, or rendered
// STEAM_0:Y:Z string within one demo. Returns (0, "", false, nil) if no player matches.
func (db *DB) FindPlayer(demoID int64, identifier string) (int64, string, bool, error) {
	globalID := identifier
	var y, z uint64
	if n, _ := fmt.Sscanf(identifier, "STEAM_0:%d:%d", &y, &z); n == 2 {
		globalID = strconv.FormatUint(76561197960265728+z*2+y, 10) // back to the id64 form
	}
	var id int64
	var name string
	err := db.conn.QueryRow(`
		SELECT id, name FROM players WHERE demo_id = ? AND (player_global_id = ? OR name = ?)
		LIMIT 1`, demoID, globalID, identifier).Scan(&id, &name)
	if err == sql.ErrNoRows {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}
	return id, name, true, nil
}

// RoundKillRow is one entry of a player's per-round kill drill-down.
type RoundKillRow struct {
	RoundSeq int
	TimeMs   int64
	Weapon   string
}

// GetPlayerRoundKills returns every recorded kill for one player, ordered by
// round then time.
func (db *DB) GetPlayerRoundKills(playerID int64) ([]RoundKillRow, error) {
	rows, err := db.conn.Query(`
		SELECT round_seq, time_ms, weapon FROM player_round_kills
		WHERE player_id = ? ORDER BY round_seq, time_ms`, playerID)
	if err != nil {
		return nil, fmt.Errorf("storage: query round kills: %w", err)
	}
	defer rows.Close()

	var out []RoundKillRow
	for rows.Next() {
		var r RoundKillRow
		if err := rows.Scan(&r.RoundSeq, &r.TimeMs, &r.Weapon); err != nil {
			return nil, fmt.Errorf("storage: scan round kill: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
