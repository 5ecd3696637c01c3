package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pribylovaa/hobby-sections/internal/keys"
	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/storage"
)

// sectionColumns — единый список колонок таблицы sections,
// используемый в SELECT/RETURNING, чтобы гарантировать одинаковый порядок сканирования.
const sectionColumns = `owner_id, id, name, description, categories, city, address, working_time, price`

// scanSection сканирует строку секции; NULL в categories/city сохраняется как nil.
func scanSection(row pgx.Row) (*models.Section, error) {
	var rec models.SectionRecord
	var price int32

	if err := row.Scan(
		&rec.OwnerID,
		&rec.ID,
		&rec.Name,
		&rec.Description,
		&rec.Categories,
		&rec.City,
		&rec.Address,
		&rec.WorkingTime,
		&price,
	); err != nil {
		return nil, err
	}

	rec.Price = int(price)

	return models.SectionFromRecord(rec), nil
}

// NextSectionID выделяет id из глобальной последовательности:
// глобальная уникальность влечёт уникальность в пределах владельца.
func (s *Storage) NextSectionID(ctx context.Context, _ string) (int64, error) {
	const op = "storage/postgres/sections/NextSectionID"

	var id int64
	if err := s.db.QueryRow(ctx, `SELECT nextval('sections_id_seq')`).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// CreateSection вставляет новую секцию.
// price передаётся как int без приведения: pgx сам проверяет диапазон int4
// и возвращает ошибку вместо усечения.
// Ошибки: storage.ErrAlreadyExists при конфликте (owner_id, id), иные — как есть.
func (s *Storage) CreateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	const op = "storage/postgres/sections/CreateSection"

	rec := section.Record()

	q := `
	INSERT INTO sections (owner_id, id, name, description, categories, city, address, working_time, price)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + sectionColumns

	result, err := scanSection(s.db.QueryRow(ctx, q,
		rec.OwnerID,
		rec.ID,
		rec.Name,
		rec.Description,
		rec.Categories,
		rec.City,
		rec.Address,
		rec.WorkingTime,
		rec.Price,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// SectionByKey возвращает секцию по ключу Profile(owner)/Section(id).
// Ошибки: storage.ErrNotFoundSection (в том числе для ключа чужого вида).
func (s *Storage) SectionByKey(ctx context.Context, key keys.Key) (*models.Section, error) {
	const op = "storage/postgres/sections/SectionByKey"

	ownerID, id, ok := storage.SectionKeyParts(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
	}

	q := `SELECT ` + sectionColumns + ` FROM sections WHERE owner_id = $1 AND id = $2`

	result, err := scanSection(s.db.QueryRow(ctx, q, ownerID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// UpdateSection перезаписывает изменяемые поля; owner_id и id не трогаются.
// Всегда сдвигает updated_at = now().
// Ошибки: storage.ErrNotFoundSection при отсутствии записи.
func (s *Storage) UpdateSection(ctx context.Context, section *models.Section) (*models.Section, error) {
	const op = "storage/postgres/sections/UpdateSection"

	rec := section.Record()

	q := `
	UPDATE sections
	SET name = $3, description = $4, categories = $5, city = $6,
	    address = $7, working_time = $8, price = $9, updated_at = now()
	WHERE owner_id = $1 AND id = $2
	RETURNING ` + sectionColumns

	result, err := scanSection(s.db.QueryRow(ctx, q,
		rec.OwnerID,
		rec.ID,
		rec.Name,
		rec.Description,
		rec.Categories,
		rec.City,
		rec.Address,
		rec.WorkingTime,
		rec.Price,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// DeleteSection удаляет секцию по ключу.
// Ошибки: storage.ErrNotFoundSection, если удалять нечего.
func (s *Storage) DeleteSection(ctx context.Context, key keys.Key) error {
	const op = "storage/postgres/sections/DeleteSection"

	ownerID, id, ok := storage.SectionKeyParts(key)
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM sections WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFoundSection)
	}

	return nil
}

// listQuery собирает SELECT по непустым полям фильтра.
func (s *Storage) listQuery(filter storage.SectionFilter) (string, []any, error) {
	qb := s.sb.Select(sectionColumns).From("sections").OrderBy("owner_id", "id")

	if filter.OwnerID != "" {
		qb = qb.Where(sq.Eq{"owner_id": filter.OwnerID})
	}

	if filter.City != "" {
		qb = qb.Where(sq.Eq{"city": filter.City})
	}

	if filter.Category != "" {
		qb = qb.Where(sq.Expr("? = ANY(categories)", filter.Category))
	}

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	return qb.ToSql()
}

// ListSections возвращает секции по фильтру в порядке (owner_id, id).
func (s *Storage) ListSections(ctx context.Context, filter storage.SectionFilter) ([]*models.Section, error) {
	const op = "storage/postgres/sections/ListSections"

	q, args, err := s.listQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		result = append(result, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
