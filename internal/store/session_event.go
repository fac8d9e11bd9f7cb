package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) StartSession(ctx context.Context, data SessionStartData) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, digits_operand1, digits_operand2, answers_per_minute, required_successes, timing_policy, termination_policy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.ID,
		data.StartedAt.UTC().Format(timeLayout),
		data.DigitsOperand1,
		data.DigitsOperand2,
		data.AnswersPerMinute,
		data.RequiredSuccesses,
		data.TimingPolicy,
		data.TerminationPolicy,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	ratio := sql.NullFloat64{Float64: data.Ratio, Valid: !math.IsInf(data.Ratio, 0) && !math.IsNaN(data.Ratio)}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO answers (session_id, seq, operand_a, operand_b, submitted, outcome, elapsed_ms, allowed_ms, ratio, answered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.SessionID,
		data.Seq,
		data.OperandA,
		data.OperandB,
		data.Submitted,
		data.Outcome,
		data.ElapsedMs,
		data.AllowedMs,
		ratio,
		data.AnsweredAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *sessionRepo) FinishSession(ctx context.Context, data SessionEndData) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET ended_at = ?, questions = ?, correct = ?, slow = ?, incorrect = ?, succeeded = ?, duration_ms = ?
		 WHERE id = ?`,
		data.EndedAt.UTC().Format(timeLayout),
		data.Questions,
		data.Correct,
		data.Slow,
		data.Incorrect,
		boolToInt(data.Succeeded),
		data.DurationMs,
		data.ID,
	)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish session: unknown session %q", data.ID)
	}
	return nil
}

func (r *sessionRepo) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	query := `SELECT id, started_at, ended_at, digits_operand1, digits_operand2, answers_per_minute, required_successes,
			timing_policy, termination_policy, questions, correct, slow, incorrect, succeeded, duration_ms
		FROM sessions ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec       SessionRecord
			started   string
			ended     sql.NullString
			succeeded int
		)
		if err := rows.Scan(&rec.ID, &started, &ended, &rec.DigitsOperand1, &rec.DigitsOperand2,
			&rec.AnswersPerMinute, &rec.RequiredSuccesses, &rec.TimingPolicy, &rec.TerminationPolicy,
			&rec.Questions, &rec.Correct, &rec.Slow, &rec.Incorrect, &succeeded, &rec.DurationMs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if rec.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if ended.Valid {
			if rec.EndedAt, err = time.Parse(timeLayout, ended.String); err != nil {
				return nil, fmt.Errorf("parse ended_at: %w", err)
			}
		}
		rec.Succeeded = succeeded != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) HardestPairs(ctx context.Context, limit int) ([]PairStats, error) {
	query := `SELECT MIN(operand_a, operand_b) AS a, MAX(operand_a, operand_b) AS b,
			COUNT(*),
			SUM(CASE WHEN outcome = 'incorrect' THEN 1 ELSE 0 END),
			SUM(CASE WHEN outcome = 'slow' THEN 1 ELSE 0 END)
		FROM answers
		GROUP BY a, b
		HAVING SUM(CASE WHEN outcome = 'fast' THEN 0 ELSE 1 END) > 0
		ORDER BY SUM(CASE WHEN outcome = 'fast' THEN 0 ELSE 1 END) DESC, COUNT(*) DESC, a, b`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query hardest pairs: %w", err)
	}
	defer rows.Close()

	var out []PairStats
	for rows.Next() {
		var ps PairStats
		if err := rows.Scan(&ps.A, &ps.B, &ps.Attempts, &ps.Incorrect, &ps.Slow); err != nil {
			return nil, fmt.Errorf("scan pair stats: %w", err)
		}
		out = append(out, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query hardest pairs: %w", err)
	}
	return out, nil
}

func (r *sessionRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() {
		if err != nil {
			// Best-effort rollback.
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{`DELETE FROM answers`, `DELETE FROM sessions`} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset history: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
