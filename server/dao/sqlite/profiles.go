package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/sterling/server/dao"
	"github.com/google/uuid"
)

func NewProfilesDBConn(file string) (*ProfilesDB, error) {
	repo := &ProfilesDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init(false)
}

type ProfilesDB struct {
	db *sql.DB
}

func (repo *ProfilesDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS profiles (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		name TEXT NOT NULL,
		settings TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL,
		UNIQUE(user_id, name)
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *ProfilesDB) Create(ctx context.Context, p dao.Profile) (dao.Profile, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Profile{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO profiles (id, user_id, name, settings, created, modified) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Profile{}, wrapDBError(err)
	}
	now := time.Now()

	settingsData := rezi.EncBinary(dao.ProfileSettings{
		Language:   p.Language,
		WordLists:  p.WordLists,
		Properties: p.Properties,
	})
	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(p.UserID),
		p.Name,
		convertToDB_ByteSlice(settingsData),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Profile{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *ProfilesDB) GetAll(ctx context.Context) ([]dao.Profile, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, user_id, name, settings, created, modified FROM profiles;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	return repo.scanAll(rows)
}

func (repo *ProfilesDB) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]dao.Profile, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, user_id, name, settings, created, modified FROM profiles WHERE user_id = ?;`,
		convertToDB_UUID(userID),
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	return repo.scanAll(rows)
}

func (repo *ProfilesDB) scanAll(rows *sql.Rows) ([]dao.Profile, error) {
	var all []dao.Profile

	for rows.Next() {
		var p dao.Profile
		var id string
		var userID string
		var settings string
		var created int64
		var modified int64
		err := rows.Scan(
			&id,
			&userID,
			&p.Name,
			&settings,
			&created,
			&modified,
		)

		if err != nil {
			return nil, wrapDBError(err)
		}

		err = convertFromDB_UUID(id, &p.ID)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
		}
		err = convertFromDB_UUID(userID, &p.UserID)
		if err != nil {
			return all, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
		}
		err = repo.decodeSettings(settings, &p)
		if err != nil {
			return all, fmt.Errorf("stored settings for %s are invalid: %w", p.ID.String(), err)
		}
		convertFromDB_Time(created, &p.Created)
		convertFromDB_Time(modified, &p.Modified)

		all = append(all, p)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ProfilesDB) Update(ctx context.Context, id uuid.UUID, p dao.Profile) (dao.Profile, error) {
	settingsData := rezi.EncBinary(dao.ProfileSettings{
		Language:   p.Language,
		WordLists:  p.WordLists,
		Properties: p.Properties,
	})

	// deliberately not updating created
	res, err := repo.db.ExecContext(ctx, `UPDATE profiles SET id=?, user_id=?, name=?, settings=?, modified=? WHERE id=?;`,
		convertToDB_UUID(p.ID),
		convertToDB_UUID(p.UserID),
		p.Name,
		convertToDB_ByteSlice(settingsData),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return dao.Profile{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return dao.Profile{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return dao.Profile{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, p.ID)
}

func (repo *ProfilesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Profile, error) {
	p := dao.Profile{
		ID: id,
	}
	var userID string
	var settings string
	var created int64
	var modified int64

	row := repo.db.QueryRowContext(ctx, `SELECT user_id, name, settings, created, modified FROM profiles WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(
		&userID,
		&p.Name,
		&settings,
		&created,
		&modified,
	)

	if err != nil {
		return p, wrapDBError(err)
	}

	err = convertFromDB_UUID(userID, &p.UserID)
	if err != nil {
		return p, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	err = repo.decodeSettings(settings, &p)
	if err != nil {
		return p, fmt.Errorf("stored settings for %s are invalid: %w", p.ID.String(), err)
	}
	convertFromDB_Time(created, &p.Created)
	convertFromDB_Time(modified, &p.Modified)

	return p, nil
}

func (repo *ProfilesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Profile, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *ProfilesDB) decodeSettings(stored string, p *dao.Profile) error {
	var data []byte
	if err := convertFromDB_ByteSlice(stored, &data); err != nil {
		return err
	}

	var settings dao.ProfileSettings
	if _, err := rezi.DecBinary(data, &settings); err != nil {
		return err
	}

	p.Language = settings.Language
	p.WordLists = settings.WordLists
	p.Properties = settings.Properties
	return nil
}

func (repo *ProfilesDB) Close() error {
	return repo.db.Close()
}
