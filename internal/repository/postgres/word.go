package postgres

import (
	"context"
	"database/sql"
	"errors"

	"cardbot/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sqlx.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sqlx.DB) *WordRepo {
	return &WordRepo{db: db}
}

// FindVisibleWord returns a global or linked word with the given English text
func (r *WordRepo) FindVisibleWord(ctx context.Context, userID int64, english string) (*domain.Word, error) {
	var w domain.Word
	query := `
		SELECT w.id, w.english_word, w.russian_word, w.user_id
		FROM words w
		WHERE w.english_word = $2
			AND (w.user_id IS NULL OR EXISTS (
				SELECT 1 FROM user_words uw WHERE uw.word_id = w.id AND uw.user_id = $1
			))
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &w, query, userID, english)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.StoreError{Op: "find word", Err: err}
	}

	return &w, nil
}

// AddUserWord inserts a word owned by the user and links it to the user.
// Both rows are written in one transaction.
func (r *WordRepo) AddUserWord(ctx context.Context, userID int64, english, russian string) (*domain.Word, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, &domain.StoreError{Op: "begin add word", Err: err}
	}
	// No-op once committed
	defer tx.Rollback()

	w := domain.Word{English: english, Russian: russian, OwnerID: &userID}

	insertWord := `
		INSERT INTO words (english_word, russian_word, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRowxContext(ctx, insertWord, english, russian, userID).Scan(&w.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateWord
		}
		return nil, &domain.StoreError{Op: "insert word", Err: err}
	}

	linkWord := `INSERT INTO user_words (user_id, word_id) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, linkWord, userID, w.ID); err != nil {
		return nil, &domain.StoreError{Op: "link word", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &domain.StoreError{Op: "commit add word", Err: err}
	}

	return &w, nil
}

// AddGlobalWord inserts a word visible to every user
func (r *WordRepo) AddGlobalWord(ctx context.Context, english, russian string) (bool, error) {
	query := `
		INSERT INTO words (english_word, russian_word)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, english, russian)
	if err != nil {
		return false, &domain.StoreError{Op: "insert global word", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, &domain.StoreError{Op: "insert global word", Err: err}
	}

	return n > 0, nil
}

// DeleteUserWord unlinks the word from the user. Words owned by the user are
// deleted as well; global words are left in place.
func (r *WordRepo) DeleteUserWord(ctx context.Context, userID int64, english string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, &domain.StoreError{Op: "begin delete word", Err: err}
	}
	defer tx.Rollback()

	var unlinked []domain.Word
	unlink := `
		DELETE FROM user_words uw
		USING words w
		WHERE uw.word_id = w.id AND uw.user_id = $1 AND w.english_word = $2
		RETURNING w.id, w.user_id
	`
	if err := tx.SelectContext(ctx, &unlinked, unlink, userID, english); err != nil {
		return false, &domain.StoreError{Op: "unlink word", Err: err}
	}

	for _, w := range unlinked {
		if w.IsGlobal() || *w.OwnerID != userID {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, w.ID); err != nil {
			return false, &domain.StoreError{Op: "delete word", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, &domain.StoreError{Op: "commit delete word", Err: err}
	}

	return len(unlinked) > 0, nil
}

// SampleWords returns up to count random words visible to the user.
// A user's own word wins over a global word with the same English text.
func (r *WordRepo) SampleWords(ctx context.Context, userID int64, count int) ([]domain.Word, error) {
	query := `
		SELECT id, english_word, russian_word, user_id
		FROM (
			SELECT DISTINCT ON (w.english_word) w.id, w.english_word, w.russian_word, w.user_id
			FROM words w
			LEFT JOIN user_words uw ON uw.word_id = w.id AND uw.user_id = $1
			WHERE w.user_id IS NULL OR uw.user_id IS NOT NULL
			ORDER BY w.english_word, w.user_id NULLS LAST
		) visible
		ORDER BY RANDOM()
		LIMIT $2
	`

	var words []domain.Word
	if err := r.db.SelectContext(ctx, &words, query, userID, count); err != nil {
		return nil, &domain.StoreError{Op: "sample words", Err: err}
	}

	return words, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
